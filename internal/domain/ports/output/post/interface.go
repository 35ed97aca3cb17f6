package post_repository

import (
	"context"

	model "blogicum/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/post --outpkg mocks --filename PostRepository.go
type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	GetDetailedByID(ctx context.Context, id int64) (*model.PostDetailed, error)
	Update(ctx context.Context, id int64, update *model.PostUpdate) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
	// List returns one page of posts matching filters, newest pub date first,
	// each with its live comment count, plus the number of matching posts.
	List(ctx context.Context, filters model.PostFilters) ([]*model.PostDetailed, int, error)
}
