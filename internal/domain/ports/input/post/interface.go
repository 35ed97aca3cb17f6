package post_service

import (
	"context"

	model "blogicum/internal/domain/models"
)

//go:generate mockery --name Service --dir . --output ../../../../../mocks/service --outpkg mocks --filename PostService.go
type Service interface {
	CreatePost(ctx context.Context, actor model.Actor, post *model.CreatePostDTO) (*model.Post, error)
	ViewPost(ctx context.Context, viewer model.Actor, id int64) (*model.PostDetailed, error)
	GetPostForEdit(ctx context.Context, actor model.Actor, id int64) (*model.PostDetailed, error)
	UpdatePost(ctx context.Context, actor model.Actor, id int64, post *model.UpdatePostDTO) error
	DeletePost(ctx context.Context, actor model.Actor, id int64) error
	ListChoices(ctx context.Context) ([]*model.Category, []*model.Location, error)
}
