package category_repository

import (
	"context"

	model "blogicum/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/category --outpkg mocks --filename CategoryRepository.go
type Repository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	Delete(ctx context.Context, id int64) error
}
