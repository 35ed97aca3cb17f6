package model

import "time"

type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	PubDate     time.Time `json:"pub_date"`
	AuthorID    int64     `json:"author_id"`
	LocationID  *int64    `json:"location_id,omitempty"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	Image       *string   `json:"image,omitempty"`
}

func (p *Post) GetAuthorID() int64 {
	return p.AuthorID
}
