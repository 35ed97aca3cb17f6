package user_service

import (
	"context"
	"time"

	model "blogicum/internal/domain/models"
)

type Service interface {
	Register(ctx context.Context, dto *model.RegisterUserDTO) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
	ResolveActor(ctx context.Context, token string) (model.Actor, error)
	GetProfileForEdit(ctx context.Context, actor model.Actor, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, actor model.Actor, username string, dto *model.UpdateProfileDTO) (*model.User, error)
}
