package comment_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/domain/ports/output/cache"
	comment_repository "blogicum/internal/domain/ports/output/comment"
	"blogicum/internal/domain/visibility"
)

type CommentService struct {
	commentRepo comment_repository.Repository
	uow         ports.UnitOfWork
	postCache   cache.PostCache
	log         ports.Logger
	metrics     ports.MetricsProvider
	now         func() time.Time
}

// NewCommentService builds the service. postCache may be nil when post
// details are not cached.
func NewCommentService(
	commentRepo comment_repository.Repository,
	uow ports.UnitOfWork,
	postCache cache.PostCache,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		uow:         uow,
		postCache:   postCache,
		log:         log,
		metrics:     metrics,
		now:         time.Now,
	}
}

func (s *CommentService) AddComment(ctx context.Context, actor model.Actor, postID int64, text string) (result *model.Comment, err error) {
	defer func() { s.metrics.IncrementCommentOperations("create", err == nil) }()

	if !actor.IsAuthenticated() {
		return nil, custom_errors.ErrUnauthenticated
	}
	if strings.TrimSpace(text) == "" {
		return nil, custom_errors.ErrInvalidInput
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	var txCommitted bool
	defer func() {
		if !txCommitted {
			s.rollback(ctx, tx)
		}
	}()

	post, err := tx.PostRepository().GetDetailedByID(ctx, postID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Comment on missing post", slog.Int64("post_id", postID))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to load post for comment", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if !visibility.CanView(post, actor, s.now()) {
		s.log.Debug("Comment on hidden post", slog.Int64("post_id", postID), slog.Int64("actor_id", actor.UserID))
		return nil, custom_errors.ErrPostNotFound
	}

	created, err := tx.CommentRepository().Create(ctx, &model.Comment{
		PostID:   postID,
		AuthorID: actor.UserID,
		Text:     text,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to create comment", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	s.invalidatePost(ctx, postID)
	s.log.Info("Comment added", slog.Int64("id", created.ID), slog.Int64("post_id", postID))
	return created, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID int64) ([]*model.CommentDetailed, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		s.log.Error("Failed to list comments", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return comments, nil
}

func (s *CommentService) GetCommentForEdit(ctx context.Context, actor model.Actor, postID, commentID int64) (*model.Comment, error) {
	return s.authorize(ctx, s.commentRepo, actor, postID, commentID)
}

func (s *CommentService) UpdateComment(ctx context.Context, actor model.Actor, postID, commentID int64, text string) (err error) {
	defer func() { s.metrics.IncrementCommentOperations("update", err == nil) }()

	if strings.TrimSpace(text) == "" {
		return custom_errors.ErrInvalidInput
	}
	return s.inTx(ctx, func(repo comment_repository.Repository) error {
		if _, err := s.authorize(ctx, repo, actor, postID, commentID); err != nil {
			return err
		}
		if _, err := repo.Update(ctx, commentID, text); err != nil {
			return s.translate(err, commentID)
		}
		return nil
	})
}

func (s *CommentService) DeleteComment(ctx context.Context, actor model.Actor, postID, commentID int64) (err error) {
	defer func() { s.metrics.IncrementCommentOperations("delete", err == nil) }()

	err = s.inTx(ctx, func(repo comment_repository.Repository) error {
		if _, err := s.authorize(ctx, repo, actor, postID, commentID); err != nil {
			return err
		}
		if err := repo.Delete(ctx, commentID); err != nil {
			return s.translate(err, commentID)
		}
		return nil
	})
	if err == nil {
		s.invalidatePost(ctx, postID)
	}
	return err
}

// authorize loads the comment and checks it belongs to postID and to actor.
func (s *CommentService) authorize(ctx context.Context, repo comment_repository.Repository, actor model.Actor, postID, commentID int64) (*model.Comment, error) {
	comment, err := repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, s.translate(err, commentID)
	}
	if comment.PostID != postID {
		s.log.Debug("Comment belongs to another post", slog.Int64("id", commentID), slog.Int64("post_id", postID))
		return nil, custom_errors.ErrCommentNotFound
	}
	if !visibility.CanMutate(comment, actor) {
		s.log.Debug("Actor is not the comment author", slog.Int64("id", commentID), slog.Int64("actor_id", actor.UserID))
		return nil, custom_errors.ErrForbidden
	}
	return comment, nil
}

func (s *CommentService) inTx(ctx context.Context, fn func(repo comment_repository.Repository) error) error {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	var txCommitted bool
	defer func() {
		if !txCommitted {
			s.rollback(ctx, tx)
		}
	}()

	if err := fn(tx.CommentRepository()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true
	return nil
}

func (s *CommentService) translate(err error, commentID int64) error {
	if errors.Is(err, custom_errors.ErrCommentNotFound) {
		s.log.Debug("Comment not found", slog.Int64("id", commentID))
		return custom_errors.ErrCommentNotFound
	}
	s.log.Error("Comment storage failure", slog.Int64("id", commentID), slog.String("error", err.Error()))
	return custom_errors.ErrDatabaseQuery
}

func (s *CommentService) rollback(ctx context.Context, tx ports.Transaction) {
	if err := tx.Rollback(ctx); err != nil {
		if strings.Contains(err.Error(), "tx is closed") {
			return
		}
		s.log.Error("Failed to rollback transaction", slog.String("error", err.Error()))
	}
}

func (s *CommentService) invalidatePost(ctx context.Context, postID int64) {
	if s.postCache == nil {
		return
	}
	if err := s.postCache.DeletePost(ctx, postID); err != nil {
		s.log.Warn("Failed to invalidate post cache", slog.Int64("post_id", postID), slog.String("error", err.Error()))
	}
}
