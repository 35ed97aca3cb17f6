package location_repository

import (
	"context"

	model "blogicum/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/location --outpkg mocks --filename LocationRepository.go
type Repository interface {
	Create(ctx context.Context, location *model.Location) (*model.Location, error)
	GetByID(ctx context.Context, id int64) (*model.Location, error)
	List(ctx context.Context) ([]*model.Location, error)
	Delete(ctx context.Context, id int64) error
}
