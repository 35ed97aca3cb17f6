package user_repository

import (
	"context"

	model "blogicum/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/user --outpkg mocks --filename UserRepository.go
type Repository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, id int64, update *model.UpdateProfileDTO) (*model.User, error)
	// Delete removes the user together with their posts and comments.
	Delete(ctx context.Context, id int64) error
}
