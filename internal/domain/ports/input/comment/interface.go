package comment_service

import (
	"context"

	model "blogicum/internal/domain/models"
)

type Service interface {
	AddComment(ctx context.Context, actor model.Actor, postID int64, text string) (*model.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]*model.CommentDetailed, error)
	GetCommentForEdit(ctx context.Context, actor model.Actor, postID, commentID int64) (*model.Comment, error)
	UpdateComment(ctx context.Context, actor model.Actor, postID, commentID int64, text string) error
	DeleteComment(ctx context.Context, actor model.Actor, postID, commentID int64) error
}
