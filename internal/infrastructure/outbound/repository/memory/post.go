package memory

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
)

type PostRepository struct {
	log   ports.Logger
	store *Store
}

func NewPostRepository(store *Store, log ports.Logger) *PostRepository {
	return &PostRepository{log: log, store: store}
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.log.Debug("Creating new post (memory impl)", slog.Int64("author_id", post.AuthorID), slog.String("title", post.Title))

	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[post.AuthorID]; !ok {
		return nil, custom_errors.ErrInvalidInput
	}
	if post.CategoryID != nil {
		if _, ok := s.categories[*post.CategoryID]; !ok {
			return nil, custom_errors.ErrInvalidInput
		}
	}
	if post.LocationID != nil {
		if _, ok := s.locations[*post.LocationID]; !ok {
			return nil, custom_errors.ErrInvalidInput
		}
	}

	createdAt := post.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	newPost := &model.Post{
		ID:          s.nextPostID,
		Title:       post.Title,
		Text:        post.Text,
		PubDate:     post.PubDate,
		AuthorID:    post.AuthorID,
		LocationID:  copyInt64(post.LocationID),
		CategoryID:  copyInt64(post.CategoryID),
		IsPublished: post.IsPublished,
		CreatedAt:   createdAt,
		Image:       copyString(post.Image),
	}
	s.nextPostID++
	s.posts[newPost.ID] = newPost

	p.log.Debug("Successfully created post (memory impl)", slog.Int64("id", newPost.ID))
	result := *newPost
	return &result, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	s := p.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}
	result := *post
	return &result, nil
}

func (p *PostRepository) GetDetailedByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	s := p.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		p.log.Debug("Post not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrPostNotFound
	}
	return s.detailLocked(post), nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.PostUpdate) (*model.Post, error) {
	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, custom_errors.ErrPostNotFound
	}
	if update.CategoryID != nil {
		if _, ok := s.categories[*update.CategoryID]; !ok {
			return nil, custom_errors.ErrInvalidInput
		}
	}
	if update.LocationID != nil {
		if _, ok := s.locations[*update.LocationID]; !ok {
			return nil, custom_errors.ErrInvalidInput
		}
	}

	post.Title = update.Title
	post.Text = update.Text
	post.PubDate = update.PubDate
	post.CategoryID = copyInt64(update.CategoryID)
	post.LocationID = copyInt64(update.LocationID)
	if update.SetImage {
		post.Image = copyString(update.Image)
	}

	result := *post
	return &result, nil
}

// SetPublished toggles the moderation flag. Only administrators do this, so
// the flag is not part of PostUpdate.
func (p *PostRepository) SetPublished(id int64, published bool) error {
	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return custom_errors.ErrPostNotFound
	}
	post.IsPublished = published
	return nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	s := p.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		p.log.Debug("Post not found during deletion", slog.Int64("id", id))
		return custom_errors.ErrPostNotFound
	}
	s.deletePostLocked(id)
	return nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.PostDetailed, int, error) {
	s := p.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*model.Post, 0)
	for _, post := range s.posts {
		if filters.AuthorID != nil && post.AuthorID != *filters.AuthorID {
			continue
		}
		if filters.CategoryID != nil && (post.CategoryID == nil || *post.CategoryID != *filters.CategoryID) {
			continue
		}
		if filters.PublicOnly && !s.publicLocked(post, filters.Now) {
			continue
		}
		matched = append(matched, post)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].PubDate.Equal(matched[j].PubDate) {
			return matched[i].PubDate.After(matched[j].PubDate)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	start := 0
	if filters.Offset != nil {
		start = min(max(*filters.Offset, 0), total)
	}
	end := total
	if filters.Limit != nil {
		end = min(start+max(*filters.Limit, 0), total)
	}

	result := make([]*model.PostDetailed, 0, end-start)
	for _, post := range matched[start:end] {
		result = append(result, s.detailLocked(post))
	}
	return result, total, nil
}

func (s *Store) publicLocked(post *model.Post, now time.Time) bool {
	if !post.IsPublished || post.PubDate.After(now) {
		return false
	}
	if post.CategoryID == nil {
		return true
	}
	category, ok := s.categories[*post.CategoryID]
	return ok && category.IsPublished
}
