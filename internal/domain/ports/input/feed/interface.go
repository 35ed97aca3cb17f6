package feed_service

import (
	"context"

	model "blogicum/internal/domain/models"
)

type Service interface {
	GlobalFeed(ctx context.Context, page int) (*model.PostPage, error)
	CategoryFeed(ctx context.Context, slug string, page int) (*model.CategoryFeed, error)
	ProfileFeed(ctx context.Context, viewer model.Actor, username string, page int) (*model.ProfileFeed, error)
}
