package model

import "time"

// UpdatePostDTO replaces the editable fields of a post. Image is only touched
// when a new upload is present or ClearImage is set.
type UpdatePostDTO struct {
	Title      string       `json:"title"`
	Text       string       `json:"text"`
	PubDate    time.Time    `json:"pub_date"`
	CategoryID *int64       `json:"category_id,omitempty"`
	LocationID *int64       `json:"location_id,omitempty"`
	Image      *ImageUpload `json:"-"`
	ClearImage bool         `json:"clear_image"`
}

// PostUpdate is what the repository writes once the image has been stored.
type PostUpdate struct {
	Title      string
	Text       string
	PubDate    time.Time
	CategoryID *int64
	LocationID *int64
	Image      *string
	SetImage   bool
}
