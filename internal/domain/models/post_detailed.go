package model

// PostDetailed is a post together with the rows it references. Category and
// Location are nil when the post has none.
type PostDetailed struct {
	Post         *Post     `json:"post"`
	Author       *User     `json:"author,omitempty"`
	Category     *Category `json:"category,omitempty"`
	Location     *Location `json:"location,omitempty"`
	CommentCount int       `json:"comment_count"`
}

func (p *PostDetailed) GetAuthorID() int64 {
	return p.Post.AuthorID
}
