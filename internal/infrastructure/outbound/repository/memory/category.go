package memory

import (
	"context"
	"sort"
	"time"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
)

type CategoryRepository struct {
	log   ports.Logger
	store *Store
}

func NewCategoryRepository(store *Store, log ports.Logger) *CategoryRepository {
	return &CategoryRepository{log: log, store: store}
}

func (c *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.categories {
		if existing.Slug == category.Slug {
			return nil, custom_errors.ErrSlugTaken
		}
	}

	created := *category
	created.ID = s.nextCategoryID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	s.nextCategoryID++
	s.categories[created.ID] = &created

	result := created
	return &result, nil
}

func (c *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return nil, custom_errors.ErrCategoryNotFound
	}
	result := *category
	return &result, nil
}

func (c *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, category := range s.categories {
		if category.Slug == slug {
			result := *category
			return &result, nil
		}
	}
	return nil, custom_errors.ErrCategoryNotFound
}

func (c *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categoryCopy := *category
		result = append(result, &categoryCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Title != result[j].Title {
			return result[i].Title < result[j].Title
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// SetPublished hides or shows a category and with it every post inside.
func (c *CategoryRepository) SetPublished(id int64, published bool) error {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return custom_errors.ErrCategoryNotFound
	}
	category.IsPublished = published
	return nil
}

func (c *CategoryRepository) Delete(ctx context.Context, id int64) error {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return custom_errors.ErrCategoryNotFound
	}
	delete(s.categories, id)
	for _, post := range s.posts {
		if post.CategoryID != nil && *post.CategoryID == id {
			post.CategoryID = nil
		}
	}
	return nil
}
