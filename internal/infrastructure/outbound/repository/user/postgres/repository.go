package user_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/outbound/repository/postgres/db"
)

const userColumns = `id, username, first_name, last_name, email, password_hash, created_at`

type UserRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewUserRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *UserRepository {
	return &UserRepository{db: db, log: log, metrics: metrics}
}

func (r *UserRepository) observe(queryType string, start time.Time, success bool) {
	r.metrics.IncrementDatabaseQueries(queryType, success)
	r.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	start := time.Now()
	r.log.Debug("Creating user", slog.String("username", user.Username))

	args := pgx.NamedArgs{
		"username":      user.Username,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
	}
	query := `
		INSERT INTO users (username, first_name, last_name, email, password_hash)
		VALUES (@username, @first_name, @last_name, @email, @password_hash)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(ctx, query, args))
	if err != nil {
		r.observe("user_create", start, false)
		if db.IsUniqueViolation(err) {
			r.log.Debug("Username already taken", slog.String("username", user.Username))
			return nil, custom_errors.ErrUsernameTaken
		}
		r.log.Error("Error creating user", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe("user_create", start, true)
	r.log.Debug("Successfully created user", slog.Int64("id", created.ID))
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, "user_get_by_id", `SELECT `+userColumns+` FROM users WHERE id = @id`,
		pgx.NamedArgs{"id": id}, slog.Int64("id", id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, "user_get_by_username", `SELECT `+userColumns+` FROM users WHERE username = @username`,
		pgx.NamedArgs{"username": username}, slog.String("username", username))
}

func (r *UserRepository) getOne(ctx context.Context, queryType, query string, args pgx.NamedArgs, key slog.Attr) (*model.User, error) {
	start := time.Now()

	user, err := scanUser(r.db.QueryRow(ctx, query, args))
	if err != nil {
		r.observe(queryType, start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug("User not found", key)
			return nil, custom_errors.ErrUserNotFound
		}
		r.log.Error("Error getting user", key, slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe(queryType, start, true)
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, update *model.UpdateProfileDTO) (*model.User, error) {
	start := time.Now()
	r.log.Debug("Updating user profile", slog.Int64("id", id))

	args := pgx.NamedArgs{
		"id":         id,
		"username":   update.Username,
		"first_name": update.FirstName,
		"last_name":  update.LastName,
		"email":      update.Email,
	}
	query := `
		UPDATE users
		SET username = @username, first_name = @first_name, last_name = @last_name, email = @email
		WHERE id = @id
		RETURNING ` + userColumns

	updated, err := scanUser(r.db.QueryRow(ctx, query, args))
	if err != nil {
		r.observe("user_update", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrUserNotFound
		}
		if db.IsUniqueViolation(err) {
			r.log.Debug("Username already taken", slog.String("username", update.Username))
			return nil, custom_errors.ErrUsernameTaken
		}
		r.log.Error("Error updating user", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe("user_update", start, true)
	return updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	r.log.Debug("Deleting user", slog.Int64("id", id))

	result, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		r.observe("user_delete", start, false)
		r.log.Error("Error deleting user", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		r.observe("user_delete", start, false)
		return custom_errors.ErrUserNotFound
	}

	r.observe("user_delete", start, true)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*model.User, error) {
	var user model.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
