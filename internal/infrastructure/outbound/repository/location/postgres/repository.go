package location_repository_postgres

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

type LocationRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewLocationRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *LocationRepository {
	return &LocationRepository{db: db, log: log, metrics: metrics}
}

func (r *LocationRepository) observe(queryType string, start time.Time, success bool) {
	r.metrics.IncrementDatabaseQueries(queryType, success)
	r.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (r *LocationRepository) Create(ctx context.Context, location *model.Location) (*model.Location, error) {
	start := time.Now()

	var created model.Location
	err := r.db.QueryRow(ctx, `
		INSERT INTO locations (name, is_published)
		VALUES (@name, @is_published)
		RETURNING id, name, is_published, created_at`,
		pgx.NamedArgs{"name": location.Name, "is_published": location.IsPublished},
	).Scan(&created.ID, &created.Name, &created.IsPublished, &created.CreatedAt)
	if err != nil {
		r.observe("location_create", start, false)
		r.log.Error("Error creating location", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe("location_create", start, true)
	return &created, nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*model.Location, error) {
	start := time.Now()

	var location model.Location
	err := r.db.QueryRow(ctx,
		`SELECT id, name, is_published, created_at FROM locations WHERE id = @id`,
		pgx.NamedArgs{"id": id},
	).Scan(&location.ID, &location.Name, &location.IsPublished, &location.CreatedAt)
	if err != nil {
		r.observe("location_get_by_id", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug("Location not found", slog.Int64("id", id))
			return nil, custom_errors.ErrLocationNotFound
		}
		r.log.Error("Error getting location", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe("location_get_by_id", start, true)
	return &location, nil
}

func (r *LocationRepository) List(ctx context.Context) ([]*model.Location, error) {
	start := time.Now()

	rows, err := r.db.Query(ctx, `SELECT id, name, is_published, created_at FROM locations ORDER BY name ASC, id ASC`)
	if err != nil {
		r.observe("location_list", start, false)
		r.log.Error("Error listing locations", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	locations := make([]*model.Location, 0)
	for rows.Next() {
		var location model.Location
		if err := rows.Scan(&location.ID, &location.Name, &location.IsPublished, &location.CreatedAt); err != nil {
			r.observe("location_list", start, false)
			r.log.Error("Error scanning location", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		locations = append(locations, &location)
	}
	if err := rows.Err(); err != nil {
		r.observe("location_list", start, false)
		r.log.Error("Error iterating locations", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe("location_list", start, true)
	return locations, nil
}

func (r *LocationRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	result, err := r.db.Exec(ctx, `DELETE FROM locations WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		r.observe("location_delete", start, false)
		r.log.Error("Error deleting location", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		r.observe("location_delete", start, false)
		return custom_errors.ErrLocationNotFound
	}

	r.observe("location_delete", start, true)
	return nil
}
