package model

import "time"

type CreatePostDTO struct {
	Title      string       `json:"title"`
	Text       string       `json:"text"`
	PubDate    time.Time    `json:"pub_date"`
	CategoryID *int64       `json:"category_id,omitempty"`
	LocationID *int64       `json:"location_id,omitempty"`
	Image      *ImageUpload `json:"-"`
}
