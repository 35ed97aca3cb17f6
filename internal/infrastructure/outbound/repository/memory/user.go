package memory

import (
	"context"
	"log/slog"
	"time"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
)

type UserRepository struct {
	log   ports.Logger
	store *Store
}

func NewUserRepository(store *Store, log ports.Logger) *UserRepository {
	return &UserRepository{log: log, store: store}
}

func (u *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			u.log.Debug("Username already taken", slog.String("username", user.Username))
			return nil, custom_errors.ErrUsernameTaken
		}
	}

	created := *user
	created.ID = s.nextUserID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	s.nextUserID++
	s.users[created.ID] = &created

	result := created
	return &result, nil
}

func (u *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s := u.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, custom_errors.ErrUserNotFound
	}
	result := *user
	return &result, nil
}

func (u *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	s := u.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			result := *user
			return &result, nil
		}
	}
	return nil, custom_errors.ErrUserNotFound
}

func (u *UserRepository) Update(ctx context.Context, id int64, update *model.UpdateProfileDTO) (*model.User, error) {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, custom_errors.ErrUserNotFound
	}
	for _, existing := range s.users {
		if existing.ID != id && existing.Username == update.Username {
			return nil, custom_errors.ErrUsernameTaken
		}
	}

	user.Username = update.Username
	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.Email = update.Email

	result := *user
	return &result, nil
}

func (u *UserRepository) Delete(ctx context.Context, id int64) error {
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return custom_errors.ErrUserNotFound
	}
	delete(s.users, id)
	for postID, post := range s.posts {
		if post.AuthorID == id {
			s.deletePostLocked(postID)
		}
	}
	for commentID, comment := range s.comments {
		if comment.AuthorID == id {
			delete(s.comments, commentID)
		}
	}
	return nil
}
