package feed_service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
	category_repository "blogicum/internal/domain/ports/output/category"
	post_repository "blogicum/internal/domain/ports/output/post"
	user_repository "blogicum/internal/domain/ports/output/user"
)

const PageSize = 10

// maxPage keeps (page-1)*PageSize inside int; anything above it is past the
// end of any real listing anyway.
const maxPage = math.MaxInt / PageSize

type FeedService struct {
	postRepo     post_repository.Repository
	categoryRepo category_repository.Repository
	userRepo     user_repository.Repository
	log          ports.Logger
	now          func() time.Time
}

func NewFeedService(
	postRepo post_repository.Repository,
	categoryRepo category_repository.Repository,
	userRepo user_repository.Repository,
	log ports.Logger,
) *FeedService {
	return &FeedService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		log:          log,
		now:          time.Now,
	}
}

func (s *FeedService) GlobalFeed(ctx context.Context, page int) (*model.PostPage, error) {
	return s.paginate(ctx, model.PostFilters{PublicOnly: true, Now: s.now()}, page)
}

func (s *FeedService) CategoryFeed(ctx context.Context, slug string, page int) (*model.CategoryFeed, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCategoryNotFound) {
			s.log.Debug("Category not found", slog.String("slug", slug))
			return nil, custom_errors.ErrCategoryNotFound
		}
		s.log.Error("Failed to load category", slog.String("slug", slug), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if !category.IsPublished {
		s.log.Debug("Category is unpublished", slog.String("slug", slug))
		return nil, custom_errors.ErrCategoryNotFound
	}

	categoryID := category.ID
	posts, err := s.paginate(ctx, model.PostFilters{CategoryID: &categoryID, PublicOnly: true, Now: s.now()}, page)
	if err != nil {
		return nil, err
	}
	return &model.CategoryFeed{Category: category, Page: posts}, nil
}

func (s *FeedService) ProfileFeed(ctx context.Context, viewer model.Actor, username string, page int) (*model.ProfileFeed, error) {
	profile, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Profile not found", slog.String("username", username))
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to load profile", slog.String("username", username), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	isOwner := viewer.IsAuthenticated() && viewer.UserID == profile.ID
	authorID := profile.ID
	filters := model.PostFilters{AuthorID: &authorID}
	if !isOwner {
		filters.PublicOnly = true
		filters.Now = s.now()
	}

	posts, err := s.paginate(ctx, filters, page)
	if err != nil {
		return nil, err
	}
	return &model.ProfileFeed{Profile: profile, Page: posts, IsOwner: isOwner}, nil
}

// paginate fetches the requested page. Out of range page numbers are clamped
// to the nearest existing page, so the query is repeated when the requested
// page lies past the end.
func (s *FeedService) paginate(ctx context.Context, filters model.PostFilters, page int) (*model.PostPage, error) {
	number := min(max(page, 1), maxPage)

	posts, total, err := s.list(ctx, filters, number)
	if err != nil {
		return nil, err
	}

	totalPages := TotalPages(total)
	if number > totalPages {
		number = totalPages
		posts, total, err = s.list(ctx, filters, number)
		if err != nil {
			return nil, err
		}
		totalPages = TotalPages(total)
	}

	return &model.PostPage{
		Posts:      posts,
		Number:     number,
		TotalPages: totalPages,
		TotalCount: total,
		PageSize:   PageSize,
	}, nil
}

func (s *FeedService) list(ctx context.Context, filters model.PostFilters, number int) ([]*model.PostDetailed, int, error) {
	limit := PageSize
	offset := (number - 1) * PageSize
	filters.Limit = &limit
	filters.Offset = &offset

	posts, total, err := s.postRepo.List(ctx, filters)
	if err != nil {
		s.log.Error("Failed to list posts", slog.Int("page", number), slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}
	return posts, total, nil
}

// TotalPages is the number of pages for total items; an empty listing still
// has one page.
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}
