package post_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/outbound/repository/postgres/db"
)

const postColumns = `p.id, p.title, p.text, p.pub_date, p.author_id, p.location_id, p.category_id,
	p.is_published, p.created_at, p.image`

const detailedSelect = `SELECT ` + postColumns + `,
	u.id, u.username, u.first_name, u.last_name, u.email, u.created_at,
	c.id, c.title, c.description, c.slug, c.is_published, c.created_at,
	l.id, l.name, l.is_published, l.created_at,
	(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS comment_count
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN locations l ON l.id = p.location_id`

type PostRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewPostRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *PostRepository {
	return &PostRepository{db: db, log: log, metrics: metrics}
}

func (p *PostRepository) observe(queryType string, start time.Time, success bool) {
	p.metrics.IncrementDatabaseQueries(queryType, success)
	p.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Creating new post", slog.Int64("author_id", post.AuthorID), slog.String("title", post.Title))

	args := pgx.NamedArgs{
		"title":        post.Title,
		"text":         post.Text,
		"pub_date":     post.PubDate,
		"author_id":    post.AuthorID,
		"location_id":  post.LocationID,
		"category_id":  post.CategoryID,
		"is_published": post.IsPublished,
		"image":        post.Image,
	}

	query := `
		INSERT INTO posts AS p (title, text, pub_date, author_id, location_id, category_id, is_published, image)
		VALUES (@title, @text, @pub_date, @author_id, @location_id, @category_id, @is_published, @image)
		RETURNING ` + postColumns

	createdPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_create", start, false)
		if db.IsForeignKeyViolation(err) {
			p.log.Debug("Post references a missing row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrInvalidInput
		}
		p.log.Error("Error creating post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_create", start, true)
	p.log.Debug("Successfully created post", slog.Int64("id", createdPost.ID), slog.Int64("author_id", createdPost.AuthorID))
	return createdPost, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Getting post by ID", slog.Int64("id", id))

	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.id = @id`
	post, err := scanPost(p.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		p.observe("post_get_by_id", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_get_by_id", start, true)
	return post, nil
}

func (p *PostRepository) GetDetailedByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	start := time.Now()
	p.log.Debug("Getting detailed post by ID", slog.Int64("id", id))

	query := detailedSelect + ` WHERE p.id = @id`
	post, err := scanPostDetailed(p.db.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		p.observe("post_get_detailed", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		p.log.Error("Error getting detailed post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_get_detailed", start, true)
	return post, nil
}

func (p *PostRepository) Update(ctx context.Context, id int64, update *model.PostUpdate) (*model.Post, error) {
	start := time.Now()
	p.log.Debug("Updating post", slog.Int64("id", id), slog.Bool("set_image", update.SetImage))

	setClauses := []string{
		"title = @title",
		"text = @text",
		"pub_date = @pub_date",
		"category_id = @category_id",
		"location_id = @location_id",
	}
	args := pgx.NamedArgs{
		"id":          id,
		"title":       update.Title,
		"text":        update.Text,
		"pub_date":    update.PubDate,
		"category_id": update.CategoryID,
		"location_id": update.LocationID,
	}
	if update.SetImage {
		setClauses = append(setClauses, "image = @image")
		args["image"] = update.Image
	}

	query := "UPDATE posts AS p SET " + strings.Join(setClauses, ", ") + " WHERE p.id = @id RETURNING " + postColumns

	updatedPost, err := scanPost(p.db.QueryRow(ctx, query, args))
	if err != nil {
		p.observe("post_update", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			p.log.Debug("Post not found by id during Update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		if db.IsForeignKeyViolation(err) {
			p.log.Debug("Post update references a missing row", slog.Int64("id", id), slog.String("error", err.Error()))
			return nil, custom_errors.ErrInvalidInput
		}
		p.log.Error("Error updating post", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_update", start, true)
	p.log.Debug("Successfully updated post", slog.Int64("id", updatedPost.ID))
	return updatedPost, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	p.log.Debug("Deleting post", slog.Int64("id", id))

	result, err := p.db.Exec(ctx, `DELETE FROM posts WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		p.observe("post_delete", start, false)
		p.log.Error("Error deleting post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		p.observe("post_delete", start, false)
		p.log.Debug("Post not found during deletion", slog.Int64("id", id))
		return custom_errors.ErrPostNotFound
	}

	p.observe("post_delete", start, true)
	p.log.Debug("Successfully deleted post", slog.Int64("id", id))
	return nil
}

func (p *PostRepository) List(ctx context.Context, filters model.PostFilters) ([]*model.PostDetailed, int, error) {
	start := time.Now()
	p.log.Debug("Listing posts with filters",
		slog.Any("author_id", filters.AuthorID),
		slog.Any("category_id", filters.CategoryID),
		slog.Bool("public_only", filters.PublicOnly),
		slog.Any("limit", filters.Limit),
		slog.Any("offset", filters.Offset))

	args := pgx.NamedArgs{}
	whereClauses := []string{}

	if filters.AuthorID != nil {
		whereClauses = append(whereClauses, "p.author_id = @author_id")
		args["author_id"] = *filters.AuthorID
	}
	if filters.CategoryID != nil {
		whereClauses = append(whereClauses, "p.category_id = @category_id")
		args["category_id"] = *filters.CategoryID
	}
	if filters.PublicOnly {
		whereClauses = append(whereClauses,
			"p.is_published = TRUE",
			"p.pub_date <= @now",
			"(p.category_id IS NULL OR c.is_published = TRUE)")
		args["now"] = pgtype.Timestamptz{Time: filters.Now, Valid: true}
	}

	condition := ""
	if len(whereClauses) > 0 {
		condition = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM posts p LEFT JOIN categories c ON c.id = p.category_id` + condition
	if err := p.db.QueryRow(ctx, countQuery, args).Scan(&total); err != nil {
		p.observe("post_list", start, false)
		p.log.Error("Error counting posts", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}

	query := detailedSelect + condition + " ORDER BY p.pub_date DESC, p.id DESC"
	pageArgs := make(pgx.NamedArgs, len(args)+2)
	for k, v := range args {
		pageArgs[k] = v
	}
	if filters.Limit != nil {
		query += " LIMIT @limit"
		pageArgs["limit"] = *filters.Limit
	}
	if filters.Offset != nil {
		query += " OFFSET @offset"
		pageArgs["offset"] = *filters.Offset
	}

	p.log.Debug("Executing list query", slog.String("query", query))
	rows, err := p.db.Query(ctx, query, pageArgs)
	if err != nil {
		p.observe("post_list", start, false)
		p.log.Error("Error listing posts", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	posts := make([]*model.PostDetailed, 0)
	for rows.Next() {
		post, err := scanPostDetailed(rows)
		if err != nil {
			p.observe("post_list", start, false)
			p.log.Error("Error scanning post during List", slog.String("error", err.Error()))
			return nil, 0, custom_errors.ErrDatabaseQuery
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		p.observe("post_list", start, false)
		p.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}

	p.observe("post_list", start, true)
	p.log.Debug("Retrieved posts in List", slog.Int("count", len(posts)), slog.Int("total", total))
	return posts, total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*model.Post, error) {
	var (
		post       model.Post
		locationID pgtype.Int8
		categoryID pgtype.Int8
		image      pgtype.Text
	)
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Text,
		&post.PubDate,
		&post.AuthorID,
		&locationID,
		&categoryID,
		&post.IsPublished,
		&post.CreatedAt,
		&image,
	)
	if err != nil {
		return nil, err
	}
	post.LocationID = int8Ptr(locationID)
	post.CategoryID = int8Ptr(categoryID)
	post.Image = textPtr(image)
	return &post, nil
}

func scanPostDetailed(row scanner) (*model.PostDetailed, error) {
	var (
		post       model.Post
		author     model.User
		locationID pgtype.Int8
		categoryID pgtype.Int8
		image      pgtype.Text

		catID          pgtype.Int8
		catTitle       pgtype.Text
		catDescription pgtype.Text
		catSlug        pgtype.Text
		catPublished   pgtype.Bool
		catCreatedAt   pgtype.Timestamptz

		locID        pgtype.Int8
		locName      pgtype.Text
		locPublished pgtype.Bool
		locCreatedAt pgtype.Timestamptz

		commentCount int
	)
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Text,
		&post.PubDate,
		&post.AuthorID,
		&locationID,
		&categoryID,
		&post.IsPublished,
		&post.CreatedAt,
		&image,
		&author.ID,
		&author.Username,
		&author.FirstName,
		&author.LastName,
		&author.Email,
		&author.CreatedAt,
		&catID,
		&catTitle,
		&catDescription,
		&catSlug,
		&catPublished,
		&catCreatedAt,
		&locID,
		&locName,
		&locPublished,
		&locCreatedAt,
		&commentCount,
	)
	if err != nil {
		return nil, err
	}
	post.LocationID = int8Ptr(locationID)
	post.CategoryID = int8Ptr(categoryID)
	post.Image = textPtr(image)

	detailed := &model.PostDetailed{
		Post:         &post,
		Author:       &author,
		CommentCount: commentCount,
	}
	if catID.Valid {
		detailed.Category = &model.Category{
			ID:          catID.Int64,
			Title:       catTitle.String,
			Description: catDescription.String,
			Slug:        catSlug.String,
			IsPublished: catPublished.Bool,
			CreatedAt:   catCreatedAt.Time,
		}
	}
	if locID.Valid {
		detailed.Location = &model.Location{
			ID:          locID.Int64,
			Name:        locName.String,
			IsPublished: locPublished.Bool,
			CreatedAt:   locCreatedAt.Time,
		}
	}
	return detailed, nil
}

func int8Ptr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func textPtr(v pgtype.Text) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
