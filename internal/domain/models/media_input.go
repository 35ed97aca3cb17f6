package model

import "io"

type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}
