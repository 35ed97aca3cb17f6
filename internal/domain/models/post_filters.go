package model

import "time"

type PostFilters struct {
	AuthorID   *int64
	CategoryID *int64
	// PublicOnly keeps posts that are published, not scheduled after Now and
	// not in an unpublished category.
	PublicOnly bool
	Now        time.Time
	Limit      *int
	Offset     *int
}
