package model

type PostPage struct {
	Posts      []*PostDetailed `json:"posts"`
	Number     int             `json:"number"`
	TotalPages int             `json:"total_pages"`
	TotalCount int             `json:"total_count"`
	PageSize   int             `json:"page_size"`
}

func (p *PostPage) HasPrev() bool {
	return p.Number > 1
}

func (p *PostPage) HasNext() bool {
	return p.Number < p.TotalPages
}

func (p *PostPage) PrevNumber() int {
	return p.Number - 1
}

func (p *PostPage) NextNumber() int {
	return p.Number + 1
}

type CategoryFeed struct {
	Category *Category `json:"category"`
	Page     *PostPage `json:"page"`
}

type ProfileFeed struct {
	Profile *User     `json:"profile"`
	Page    *PostPage `json:"page"`
	IsOwner bool      `json:"is_owner"`
}
