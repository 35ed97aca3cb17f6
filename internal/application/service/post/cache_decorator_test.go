package post_service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	"blogicum/internal/infrastructure/logger"
	cache_mock "blogicum/mocks/cache"
	category_repository_mock "blogicum/mocks/category"
	location_repository_mock "blogicum/mocks/location"
	service_mock "blogicum/mocks/service"
)

type decoratorMocks struct {
	categoryRepo *category_repository_mock.Repository
	locationRepo *location_repository_mock.Repository
}

func newTestDecorator(now time.Time) (*PostServiceCacheDecorator, *service_mock.Service, *cache_mock.PostCache) {
	d, inner, postCache, _ := newTestDecoratorWithRefs(now)
	return d, inner, postCache
}

func newTestDecoratorWithRefs(now time.Time) (*PostServiceCacheDecorator, *service_mock.Service, *cache_mock.PostCache, *decoratorMocks) {
	inner := new(service_mock.Service)
	postCache := new(cache_mock.PostCache)
	refs := &decoratorMocks{
		categoryRepo: new(category_repository_mock.Repository),
		locationRepo: new(location_repository_mock.Repository),
	}
	d := NewPostServiceCacheDecorator(inner, postCache, refs.categoryRepo, refs.locationRepo, logger.New("test")).(*PostServiceCacheDecorator)
	d.now = func() time.Time { return now }
	return d, inner, postCache, refs
}

func TestPostServiceCacheDecorator_ViewPost(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	owner := model.Actor{UserID: 1}
	public := &model.PostDetailed{Post: &model.Post{ID: 1, AuthorID: 1, IsPublished: true, PubDate: now.Add(-time.Hour)}}
	scheduled := &model.PostDetailed{Post: &model.Post{ID: 2, AuthorID: 1, IsPublished: true, PubDate: now.Add(time.Hour)}}

	t.Run("hit is served without the service", func(t *testing.T) {
		d, inner, postCache := newTestDecorator(now)
		postCache.On("GetPost", mock.Anything, int64(1)).Return(public, nil)

		got, err := d.ViewPost(context.Background(), model.Anonymous(), 1)
		require.NoError(t, err)
		assert.Equal(t, public, got)
		inner.AssertNotCalled(t, "ViewPost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("hit still applies visibility", func(t *testing.T) {
		d, inner, postCache := newTestDecorator(now)
		postCache.On("GetPost", mock.Anything, int64(2)).Return(scheduled, nil)

		_, err := d.ViewPost(context.Background(), model.Actor{UserID: 9}, 2)
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

		got, err := d.ViewPost(context.Background(), owner, 2)
		require.NoError(t, err)
		assert.Equal(t, scheduled, got)
		inner.AssertNotCalled(t, "ViewPost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("miss loads and stores", func(t *testing.T) {
		d, inner, postCache := newTestDecorator(now)
		postCache.On("GetPost", mock.Anything, int64(1)).Return(nil, custom_errors.ErrCacheMiss)
		inner.On("ViewPost", mock.Anything, model.Anonymous(), int64(1)).Return(public, nil)
		postCache.On("SetPost", mock.Anything, public).Return(nil)

		got, err := d.ViewPost(context.Background(), model.Anonymous(), 1)
		require.NoError(t, err)
		assert.Equal(t, public, got)
		postCache.AssertExpectations(t)
	})

	t.Run("hidden posts are not cached", func(t *testing.T) {
		d, inner, postCache := newTestDecorator(now)
		postCache.On("GetPost", mock.Anything, int64(2)).Return(nil, custom_errors.ErrCacheMiss)
		inner.On("ViewPost", mock.Anything, model.Anonymous(), int64(2)).Return(nil, custom_errors.ErrPostNotFound)

		_, err := d.ViewPost(context.Background(), model.Anonymous(), 2)
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
		postCache.AssertNotCalled(t, "SetPost", mock.Anything, mock.Anything)
	})

	t.Run("cache failure falls back to the service", func(t *testing.T) {
		d, inner, postCache := newTestDecorator(now)
		postCache.On("GetPost", mock.Anything, int64(1)).Return(nil, assert.AnError)
		inner.On("ViewPost", mock.Anything, model.Anonymous(), int64(1)).Return(public, nil)
		postCache.On("SetPost", mock.Anything, public).Return(assert.AnError)

		got, err := d.ViewPost(context.Background(), model.Anonymous(), 1)
		require.NoError(t, err)
		assert.Equal(t, public, got)
	})
}

func TestPostServiceCacheDecorator_HitRereadsReferences(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	owner := model.Actor{UserID: 1}
	cachedPost := func() *model.PostDetailed {
		return &model.PostDetailed{
			Post: &model.Post{
				ID: 5, AuthorID: 1, IsPublished: true, PubDate: now.Add(-time.Hour),
				CategoryID: int64Ptr(3), LocationID: int64Ptr(8),
			},
			Category: &model.Category{ID: 3, Slug: "travel", IsPublished: true},
			Location: &model.Location{ID: 8, Name: "Moon", IsPublished: true},
		}
	}

	t.Run("category unpublished since caching", func(t *testing.T) {
		d, inner, postCache, refs := newTestDecoratorWithRefs(now)
		postCache.On("GetPost", mock.Anything, int64(5)).Return(cachedPost(), nil)
		refs.categoryRepo.On("GetByID", mock.Anything, int64(3)).Return(&model.Category{ID: 3, Slug: "travel", IsPublished: false}, nil)
		refs.locationRepo.On("GetByID", mock.Anything, int64(8)).Return(&model.Location{ID: 8, Name: "Moon", IsPublished: true}, nil)

		_, err := d.ViewPost(context.Background(), model.Anonymous(), 5)
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

		got, err := d.ViewPost(context.Background(), owner, 5)
		require.NoError(t, err)
		assert.False(t, got.Category.IsPublished)
		inner.AssertNotCalled(t, "ViewPost", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("location deleted since caching", func(t *testing.T) {
		d, _, postCache, refs := newTestDecoratorWithRefs(now)
		postCache.On("GetPost", mock.Anything, int64(5)).Return(cachedPost(), nil)
		refs.categoryRepo.On("GetByID", mock.Anything, int64(3)).Return(&model.Category{ID: 3, Slug: "travel", IsPublished: true}, nil)
		refs.locationRepo.On("GetByID", mock.Anything, int64(8)).Return(nil, custom_errors.ErrLocationNotFound)

		got, err := d.ViewPost(context.Background(), model.Anonymous(), 5)
		require.NoError(t, err)
		assert.Nil(t, got.Location)
		assert.Nil(t, got.Post.LocationID)
	})

	t.Run("reference lookup failure falls back to the service", func(t *testing.T) {
		d, inner, postCache, refs := newTestDecoratorWithRefs(now)
		fresh := cachedPost()
		postCache.On("GetPost", mock.Anything, int64(5)).Return(cachedPost(), nil)
		refs.categoryRepo.On("GetByID", mock.Anything, int64(3)).Return(nil, assert.AnError)
		inner.On("ViewPost", mock.Anything, model.Anonymous(), int64(5)).Return(fresh, nil)
		postCache.On("SetPost", mock.Anything, fresh).Return(nil)

		got, err := d.ViewPost(context.Background(), model.Anonymous(), 5)
		require.NoError(t, err)
		assert.Same(t, fresh, got)
	})
}

func TestPostServiceCacheDecorator_Invalidation(t *testing.T) {
	actor := model.Actor{UserID: 1}

	t.Run("update invalidates", func(t *testing.T) {
		d, inner, postCache := newTestDecorator(time.Now())
		dto := &model.UpdatePostDTO{Title: "t"}
		inner.On("UpdatePost", mock.Anything, actor, int64(4), dto).Return(nil)
		postCache.On("DeletePost", mock.Anything, int64(4)).Return(nil)

		require.NoError(t, d.UpdatePost(context.Background(), actor, 4, dto))
		postCache.AssertExpectations(t)
	})

	t.Run("delete invalidates", func(t *testing.T) {
		d, inner, postCache := newTestDecorator(time.Now())
		inner.On("DeletePost", mock.Anything, actor, int64(4)).Return(nil)
		postCache.On("DeletePost", mock.Anything, int64(4)).Return(assert.AnError)

		require.NoError(t, d.DeletePost(context.Background(), actor, 4))
		postCache.AssertExpectations(t)
	})

	t.Run("failed update keeps the entry", func(t *testing.T) {
		d, inner, postCache := newTestDecorator(time.Now())
		dto := &model.UpdatePostDTO{Title: "t"}
		inner.On("UpdatePost", mock.Anything, model.Actor{UserID: 2}, int64(4), dto).Return(custom_errors.ErrForbidden)

		err := d.UpdatePost(context.Background(), model.Actor{UserID: 2}, 4, dto)
		assert.ErrorIs(t, err, custom_errors.ErrForbidden)
		postCache.AssertNotCalled(t, "DeletePost", mock.Anything, mock.Anything)
	})
}
