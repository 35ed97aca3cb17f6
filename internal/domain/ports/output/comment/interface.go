package comment_repository

import (
	"context"

	model "blogicum/internal/domain/models"
)

//go:generate mockery --name Repository --dir . --output ../../../../../mocks/comment --outpkg mocks --filename CommentRepository.go
type Repository interface {
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*model.CommentDetailed, error)
	Update(ctx context.Context, id int64, text string) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}
