package model

import "time"

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) GetAuthorID() int64 {
	return c.AuthorID
}

type CommentDetailed struct {
	Comment *Comment `json:"comment"`
	Author  *User    `json:"author,omitempty"`
}
