package memory

import (
	"context"
	"sort"
	"time"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
)

type LocationRepository struct {
	log   ports.Logger
	store *Store
}

func NewLocationRepository(store *Store, log ports.Logger) *LocationRepository {
	return &LocationRepository{log: log, store: store}
}

func (l *LocationRepository) Create(ctx context.Context, location *model.Location) (*model.Location, error) {
	s := l.store
	s.mu.Lock()
	defer s.mu.Unlock()

	created := *location
	created.ID = s.nextLocationID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	s.nextLocationID++
	s.locations[created.ID] = &created

	result := created
	return &result, nil
}

func (l *LocationRepository) GetByID(ctx context.Context, id int64) (*model.Location, error) {
	s := l.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	location, ok := s.locations[id]
	if !ok {
		return nil, custom_errors.ErrLocationNotFound
	}
	result := *location
	return &result, nil
}

func (l *LocationRepository) List(ctx context.Context) ([]*model.Location, error) {
	s := l.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Location, 0, len(s.locations))
	for _, location := range s.locations {
		locationCopy := *location
		result = append(result, &locationCopy)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (l *LocationRepository) Delete(ctx context.Context, id int64) error {
	s := l.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.locations[id]; !ok {
		return custom_errors.ErrLocationNotFound
	}
	delete(s.locations, id)
	for _, post := range s.posts {
		if post.LocationID != nil && *post.LocationID == id {
			post.LocationID = nil
		}
	}
	return nil
}
