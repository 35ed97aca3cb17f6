package category_repository_postgres

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

const categoryColumns = `id, title, description, slug, is_published, created_at`

type CategoryRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewCategoryRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *CategoryRepository {
	return &CategoryRepository{db: db, log: log, metrics: metrics}
}

func (r *CategoryRepository) observe(queryType string, start time.Time, success bool) {
	r.metrics.IncrementDatabaseQueries(queryType, success)
	r.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	start := time.Now()
	r.log.Debug("Creating category", slog.String("slug", category.Slug))

	args := pgx.NamedArgs{
		"title":        category.Title,
		"description":  category.Description,
		"slug":         category.Slug,
		"is_published": category.IsPublished,
	}
	query := `
		INSERT INTO categories (title, description, slug, is_published)
		VALUES (@title, @description, @slug, @is_published)
		RETURNING ` + categoryColumns

	created, err := scanCategory(r.db.QueryRow(ctx, query, args))
	if err != nil {
		r.observe("category_create", start, false)
		if db.IsUniqueViolation(err) {
			r.log.Debug("Category slug already taken", slog.String("slug", category.Slug))
			return nil, custom_errors.ErrSlugTaken
		}
		r.log.Error("Error creating category", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe("category_create", start, true)
	return created, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	return r.getOne(ctx, "category_get_by_id", `SELECT `+categoryColumns+` FROM categories WHERE id = @id`,
		pgx.NamedArgs{"id": id}, slog.Int64("id", id))
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	return r.getOne(ctx, "category_get_by_slug", `SELECT `+categoryColumns+` FROM categories WHERE slug = @slug`,
		pgx.NamedArgs{"slug": slug}, slog.String("slug", slug))
}

func (r *CategoryRepository) getOne(ctx context.Context, queryType, query string, args pgx.NamedArgs, key slog.Attr) (*model.Category, error) {
	start := time.Now()

	category, err := scanCategory(r.db.QueryRow(ctx, query, args))
	if err != nil {
		r.observe(queryType, start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug("Category not found", key)
			return nil, custom_errors.ErrCategoryNotFound
		}
		r.log.Error("Error getting category", key, slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe(queryType, start, true)
	return category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	start := time.Now()

	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY title ASC, id ASC`)
	if err != nil {
		r.observe("category_list", start, false)
		r.log.Error("Error listing categories", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	categories := make([]*model.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			r.observe("category_list", start, false)
			r.log.Error("Error scanning category", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		r.observe("category_list", start, false)
		r.log.Error("Error iterating categories", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe("category_list", start, true)
	return categories, nil
}

// Delete removes the category; posts referencing it keep existing with a null category.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	result, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		r.observe("category_delete", start, false)
		r.log.Error("Error deleting category", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		r.observe("category_delete", start, false)
		return custom_errors.ErrCategoryNotFound
	}

	r.observe("category_delete", start, true)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (*model.Category, error) {
	var category model.Category
	if err := row.Scan(
		&category.ID,
		&category.Title,
		&category.Description,
		&category.Slug,
		&category.IsPublished,
		&category.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}
