package post_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
	category_repository "blogicum/internal/domain/ports/output/category"
	location_repository "blogicum/internal/domain/ports/output/location"
	"blogicum/internal/domain/ports/output/media"
	post_repository "blogicum/internal/domain/ports/output/post"
	"blogicum/internal/domain/visibility"
)

type PostService struct {
	postRepo     post_repository.Repository
	categoryRepo category_repository.Repository
	locationRepo location_repository.Repository
	uow          ports.UnitOfWork
	media        media.Storage
	log          ports.Logger
	metrics      ports.MetricsProvider
	now          func() time.Time
}

func NewPostService(
	postRepo post_repository.Repository,
	categoryRepo category_repository.Repository,
	locationRepo location_repository.Repository,
	uow ports.UnitOfWork,
	media media.Storage,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		uow:          uow,
		media:        media,
		log:          log,
		metrics:      metrics,
		now:          time.Now,
	}
}

func (s *PostService) CreatePost(ctx context.Context, actor model.Actor, post *model.CreatePostDTO) (result *model.Post, err error) {
	defer func() { s.metrics.IncrementPostOperations("create", err == nil) }()

	if !actor.IsAuthenticated() {
		return nil, custom_errors.ErrUnauthenticated
	}
	if err := s.checkReferences(ctx, post.CategoryID, post.LocationID); err != nil {
		return nil, err
	}

	newPost := &model.Post{
		Title:       post.Title,
		Text:        post.Text,
		PubDate:     post.PubDate,
		AuthorID:    actor.UserID,
		CategoryID:  post.CategoryID,
		LocationID:  post.LocationID,
		IsPublished: true,
	}

	if post.Image != nil {
		path, err := s.saveImage(ctx, post.Image)
		if err != nil {
			s.log.Debug("Failed to store post image", slog.Int64("author_id", actor.UserID), slog.String("error", err.Error()))
			return nil, err
		}
		newPost.Image = &path
	}

	created, err := s.postRepo.Create(ctx, newPost)
	if err != nil {
		s.discardImage(ctx, newPost.Image)
		if errors.Is(err, custom_errors.ErrInvalidInput) {
			return nil, custom_errors.ErrInvalidInput
		}
		s.log.Error("Failed to create post", slog.Int64("author_id", actor.UserID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.log.Info("Post created", slog.Int64("id", created.ID), slog.Int64("author_id", created.AuthorID))
	return created, nil
}

func (s *PostService) ViewPost(ctx context.Context, viewer model.Actor, id int64) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetDetailedByID(ctx, id)
	if err != nil {
		return nil, s.translateNotFound(err, id)
	}
	if !visibility.CanView(post, viewer, s.now()) {
		s.log.Debug("Post hidden from viewer", slog.Int64("id", id), slog.Int64("viewer_id", viewer.UserID))
		return nil, custom_errors.ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) GetPostForEdit(ctx context.Context, actor model.Actor, id int64) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetDetailedByID(ctx, id)
	if err != nil {
		return nil, s.translateNotFound(err, id)
	}
	if !visibility.CanMutate(post, actor) {
		s.log.Debug("Actor is not the author", slog.Int64("id", id), slog.Int64("actor_id", actor.UserID))
		return nil, custom_errors.ErrForbidden
	}
	return post, nil
}

func (s *PostService) UpdatePost(ctx context.Context, actor model.Actor, id int64, update *model.UpdatePostDTO) (err error) {
	defer func() { s.metrics.IncrementPostOperations("update", err == nil) }()

	if err := s.checkReferences(ctx, update.CategoryID, update.LocationID); err != nil {
		return err
	}

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

	postRepo := tx.PostRepository()
	existing, err := postRepo.GetByID(ctx, id)
	if err != nil {
		return s.translateNotFound(err, id)
	}
	if !visibility.CanMutate(existing, actor) {
		s.log.Debug("Rejected update by non-author", slog.Int64("id", id), slog.Int64("actor_id", actor.UserID))
		return custom_errors.ErrForbidden
	}

	patch := &model.PostUpdate{
		Title:      update.Title,
		Text:       update.Text,
		PubDate:    update.PubDate,
		CategoryID: update.CategoryID,
		LocationID: update.LocationID,
	}
	switch {
	case update.Image != nil:
		path, err := s.saveImage(ctx, update.Image)
		if err != nil {
			return err
		}
		patch.Image = &path
		patch.SetImage = true
	case update.ClearImage:
		patch.SetImage = true
	}

	if _, err := postRepo.Update(ctx, id, patch); err != nil {
		s.discardImage(ctx, patch.Image)
		if errors.Is(err, custom_errors.ErrInvalidInput) {
			return custom_errors.ErrInvalidInput
		}
		return s.translateNotFound(err, id)
	}

	if err := tx.Commit(ctx); err != nil {
		s.discardImage(ctx, patch.Image)
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	if patch.SetImage {
		s.discardImage(ctx, existing.Image)
	}
	s.log.Info("Post updated", slog.Int64("id", id))
	return nil
}

func (s *PostService) DeletePost(ctx context.Context, actor model.Actor, id int64) (err error) {
	defer func() { s.metrics.IncrementPostOperations("delete", err == nil) }()

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

	postRepo := tx.PostRepository()
	existing, err := postRepo.GetByID(ctx, id)
	if err != nil {
		return s.translateNotFound(err, id)
	}
	if !visibility.CanMutate(existing, actor) {
		s.log.Debug("Rejected delete by non-author", slog.Int64("id", id), slog.Int64("actor_id", actor.UserID))
		return custom_errors.ErrForbidden
	}

	if err := postRepo.Delete(ctx, id); err != nil {
		return s.translateNotFound(err, id)
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	s.discardImage(ctx, existing.Image)
	s.log.Info("Post deleted", slog.Int64("id", id), slog.Int64("author_id", actor.UserID))
	return nil
}

func (s *PostService) ListChoices(ctx context.Context) ([]*model.Category, []*model.Location, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list categories", slog.String("error", err.Error()))
		return nil, nil, custom_errors.ErrDatabaseQuery
	}
	locations, err := s.locationRepo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list locations", slog.String("error", err.Error()))
		return nil, nil, custom_errors.ErrDatabaseQuery
	}
	return categories, locations, nil
}

func (s *PostService) checkReferences(ctx context.Context, categoryID, locationID *int64) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *categoryID); err != nil {
			if errors.Is(err, custom_errors.ErrCategoryNotFound) {
				return custom_errors.ErrCategoryNotFound
			}
			return custom_errors.ErrDatabaseQuery
		}
	}
	if locationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *locationID); err != nil {
			if errors.Is(err, custom_errors.ErrLocationNotFound) {
				return custom_errors.ErrLocationNotFound
			}
			return custom_errors.ErrDatabaseQuery
		}
	}
	return nil
}

func (s *PostService) translateNotFound(err error, id int64) error {
	if errors.Is(err, custom_errors.ErrPostNotFound) {
		s.log.Debug("Post not found", slog.Int64("id", id))
		return custom_errors.ErrPostNotFound
	}
	s.log.Error("Post storage failure", slog.Int64("id", id), slog.String("error", err.Error()))
	return custom_errors.ErrDatabaseQuery
}

func (s *PostService) rollback(ctx context.Context, tx ports.Transaction) {
	if err := tx.Rollback(ctx); err != nil {
		if strings.Contains(err.Error(), "tx is closed") {
			s.log.Debug("Transaction already closed during rollback", slog.String("error", err.Error()))
			return
		}
		s.log.Error("Failed to rollback transaction", slog.String("error", err.Error()))
	}
}

func (s *PostService) saveImage(ctx context.Context, upload *model.ImageUpload) (string, error) {
	path, err := s.media.Save(ctx, upload)
	s.metrics.IncrementImageUploads(err == nil)
	return path, err
}

func (s *PostService) discardImage(ctx context.Context, path *string) {
	if path == nil || *path == "" {
		return
	}
	if err := s.media.Delete(ctx, *path); err != nil {
		s.log.Warn("Failed to remove image", slog.String("path", *path), slog.String("error", err.Error()))
	}
}
