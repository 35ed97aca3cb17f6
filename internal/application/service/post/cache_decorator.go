package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	post_service "blogicum/internal/domain/ports/input/post"
	output "blogicum/internal/domain/ports/output"
	"blogicum/internal/domain/ports/output/cache"
	category_repository "blogicum/internal/domain/ports/output/category"
	location_repository "blogicum/internal/domain/ports/output/location"
	"blogicum/internal/domain/visibility"
)

// PostServiceCacheDecorator serves post detail pages from the post cache.
// Cached entries hold the post, its author and comment count. Category and
// location rows are read again on every hit, and visibility is decided
// against the current time and viewer.
type PostServiceCacheDecorator struct {
	service      post_service.Service
	postCache    cache.PostCache
	categoryRepo category_repository.Repository
	locationRepo location_repository.Repository
	log          output.Logger
	now          func() time.Time
}

func NewPostServiceCacheDecorator(
	service post_service.Service,
	postCache cache.PostCache,
	categoryRepo category_repository.Repository,
	locationRepo location_repository.Repository,
	log output.Logger,
) post_service.Service {
	return &PostServiceCacheDecorator{
		service:      service,
		postCache:    postCache,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		log:          log,
		now:          time.Now,
	}
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, actor model.Actor, post *model.CreatePostDTO) (*model.Post, error) {
	return d.service.CreatePost(ctx, actor, post)
}

func (d *PostServiceCacheDecorator) ViewPost(ctx context.Context, viewer model.Actor, id int64) (*model.PostDetailed, error) {
	cachedPost, err := d.postCache.GetPost(ctx, id)
	if err == nil {
		cachedPost, err = d.refreshReferences(ctx, cachedPost)
	}
	if err == nil {
		if !visibility.CanView(cachedPost, viewer, d.now()) {
			return nil, custom_errors.ErrPostNotFound
		}
		d.log.Debug("Post found in cache", slog.Int64("post_id", id))
		return cachedPost, nil
	}
	if !errors.Is(err, custom_errors.ErrCacheMiss) {
		d.log.Warn("Failed to get post from cache",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}

	post, err := d.service.ViewPost(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if err := d.postCache.SetPost(ctx, post); err != nil {
		d.log.Warn("Failed to cache post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	return post, nil
}

func (d *PostServiceCacheDecorator) GetPostForEdit(ctx context.Context, actor model.Actor, id int64) (*model.PostDetailed, error) {
	return d.service.GetPostForEdit(ctx, actor, id)
}

func (d *PostServiceCacheDecorator) UpdatePost(ctx context.Context, actor model.Actor, id int64, post *model.UpdatePostDTO) error {
	if err := d.service.UpdatePost(ctx, actor, id, post); err != nil {
		return err
	}
	d.invalidate(ctx, id)
	return nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, actor model.Actor, id int64) error {
	if err := d.service.DeletePost(ctx, actor, id); err != nil {
		return err
	}
	d.invalidate(ctx, id)
	return nil
}

func (d *PostServiceCacheDecorator) ListChoices(ctx context.Context) ([]*model.Category, []*model.Location, error) {
	return d.service.ListChoices(ctx)
}

func (d *PostServiceCacheDecorator) invalidate(ctx context.Context, id int64) {
	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Failed to invalidate post cache",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
}

// refreshReferences replaces the cached category and location with their
// current rows. A row deleted since caching is dropped the way the foreign
// key's SET NULL drops it from the post.
func (d *PostServiceCacheDecorator) refreshReferences(ctx context.Context, cached *model.PostDetailed) (*model.PostDetailed, error) {
	post := *cached.Post
	fresh := *cached
	fresh.Post = &post

	if post.CategoryID != nil {
		category, err := d.categoryRepo.GetByID(ctx, *post.CategoryID)
		switch {
		case err == nil:
			fresh.Category = category
		case errors.Is(err, custom_errors.ErrCategoryNotFound):
			post.CategoryID = nil
			fresh.Category = nil
		default:
			return nil, err
		}
	}
	if post.LocationID != nil {
		location, err := d.locationRepo.GetByID(ctx, *post.LocationID)
		switch {
		case err == nil:
			fresh.Location = location
		case errors.Is(err, custom_errors.ErrLocationNotFound):
			post.LocationID = nil
			fresh.Location = nil
		default:
			return nil, err
		}
	}
	return &fresh, nil
}
