package user_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/domain/ports/output/auth"
	"blogicum/internal/domain/ports/output/cache"
	user_repository "blogicum/internal/domain/ports/output/user"
)

type UserService struct {
	userRepo   user_repository.Repository
	uow        ports.UnitOfWork
	userCache  cache.UserCache
	tokens     auth.TokenManager
	log        ports.Logger
	metrics    ports.MetricsProvider
	bcryptCost int
}

// NewUserService builds the service. userCache may be nil.
func NewUserService(
	userRepo user_repository.Repository,
	uow ports.UnitOfWork,
	userCache cache.UserCache,
	tokens auth.TokenManager,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		uow:        uow,
		userCache:  userCache,
		tokens:     tokens,
		log:        log,
		metrics:    metrics,
		bcryptCost: bcrypt.DefaultCost,
	}
}

func (s *UserService) Register(ctx context.Context, dto *model.RegisterUserDTO) (result *model.User, err error) {
	defer func() { s.metrics.IncrementUserOperations("register", err == nil) }()

	if strings.TrimSpace(dto.Username) == "" || dto.Password == "" {
		return nil, custom_errors.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, custom_errors.ErrInternalServiceError
	}

	created, err := s.userRepo.Create(ctx, &model.User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrUsernameTaken) {
			return nil, custom_errors.ErrUsernameTaken
		}
		s.log.Error("Failed to create user", slog.String("username", dto.Username), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	s.log.Info("User registered", slog.Int64("id", created.ID), slog.String("username", created.Username))
	return created, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error) {
	defer func() { s.metrics.IncrementUserOperations("login", err == nil) }()

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Login for unknown user", slog.String("username", username))
			return "", time.Time{}, custom_errors.ErrInvalidCredentials
		}
		s.log.Error("Failed to load user for login", slog.String("username", username), slog.String("error", err.Error()))
		return "", time.Time{}, custom_errors.ErrDatabaseQuery
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Debug("Password mismatch", slog.String("username", username))
		return "", time.Time{}, custom_errors.ErrInvalidCredentials
	}

	token, expiresAt, err = s.tokens.Issue(user.ID)
	if err != nil {
		return "", time.Time{}, custom_errors.ErrTokenIssueFailed
	}
	return token, expiresAt, nil
}

// ResolveActor maps a session token to the acting user. Any failure yields
// the anonymous actor along with the reason.
func (s *UserService) ResolveActor(ctx context.Context, token string) (model.Actor, error) {
	if token == "" {
		return model.Anonymous(), custom_errors.ErrUnauthenticated
	}
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return model.Anonymous(), custom_errors.ErrInvalidToken
	}

	if s.userCache != nil {
		cached, err := s.userCache.GetUser(ctx, userID)
		if err == nil {
			return model.ActorFor(cached), nil
		}
		if !errors.Is(err, custom_errors.ErrCacheMiss) {
			s.log.Warn("Failed to read user cache", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Token for deleted user", slog.Int64("user_id", userID))
			return model.Anonymous(), custom_errors.ErrInvalidToken
		}
		s.log.Error("Failed to load user for token", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return model.Anonymous(), custom_errors.ErrDatabaseQuery
	}

	if s.userCache != nil {
		if err := s.userCache.SetUser(ctx, user); err != nil {
			s.log.Warn("Failed to cache user", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		}
	}
	return model.ActorFor(user), nil
}

func (s *UserService) GetProfileForEdit(ctx context.Context, actor model.Actor, username string) (*model.User, error) {
	return s.authorizeProfile(ctx, s.userRepo, actor, username)
}

func (s *UserService) UpdateProfile(ctx context.Context, actor model.Actor, username string, dto *model.UpdateProfileDTO) (result *model.User, err error) {
	defer func() { s.metrics.IncrementUserOperations("update_profile", err == nil) }()

	if strings.TrimSpace(dto.Username) == "" {
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
			if rbErr := tx.Rollback(ctx); rbErr != nil && !strings.Contains(rbErr.Error(), "tx is closed") {
				s.log.Error("Failed to rollback transaction", slog.String("error", rbErr.Error()))
			}
		}
	}()

	repo := tx.UserRepository()
	if _, err := s.authorizeProfile(ctx, repo, actor, username); err != nil {
		return nil, err
	}

	updated, err := repo.Update(ctx, actor.UserID, dto)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrUsernameTaken):
			return nil, custom_errors.ErrUsernameTaken
		case errors.Is(err, custom_errors.ErrUserNotFound):
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to update profile", slog.Int64("user_id", actor.UserID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	if s.userCache != nil {
		if err := s.userCache.DeleteUser(ctx, actor.UserID); err != nil {
			s.log.Warn("Failed to invalidate user cache", slog.Int64("user_id", actor.UserID), slog.String("error", err.Error()))
		}
	}
	s.log.Info("Profile updated", slog.Int64("user_id", updated.ID))
	return updated, nil
}

// authorizeProfile allows editing only the actor's own profile. Asking for
// anyone else's yields ErrForbidden, whether or not that user exists.
func (s *UserService) authorizeProfile(ctx context.Context, repo user_repository.Repository, actor model.Actor, username string) (*model.User, error) {
	if !actor.IsAuthenticated() {
		return nil, custom_errors.ErrUnauthenticated
	}
	user, err := repo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			return nil, custom_errors.ErrUnauthenticated
		}
		s.log.Error("Failed to load actor", slog.Int64("user_id", actor.UserID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if user.Username != username {
		s.log.Debug("Profile edit for another user", slog.String("username", username), slog.Int64("actor_id", actor.UserID))
		return nil, custom_errors.ErrForbidden
	}
	return user, nil
}
