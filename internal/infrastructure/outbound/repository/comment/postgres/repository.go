package comment_repository_postgres

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

type CommentRepository struct {
	log     ports.Logger
	db      db.PgDB
	metrics ports.MetricsProvider
}

func NewCommentRepository(db db.PgDB, log ports.Logger, metrics ports.MetricsProvider) *CommentRepository {
	return &CommentRepository{db: db, log: log, metrics: metrics}
}

func (r *CommentRepository) observe(queryType string, start time.Time, success bool) {
	r.metrics.IncrementDatabaseQueries(queryType, success)
	r.metrics.RecordDatabaseQueryDuration(queryType, time.Since(start))
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	start := time.Now()
	r.log.Debug("Creating comment", slog.Int64("post_id", comment.PostID), slog.Int64("author_id", comment.AuthorID))

	args := pgx.NamedArgs{
		"post_id":   comment.PostID,
		"author_id": comment.AuthorID,
		"text":      comment.Text,
	}
	query := `
		INSERT INTO comments (post_id, author_id, text)
		VALUES (@post_id, @author_id, @text)
		RETURNING id, post_id, author_id, text, created_at`

	var created model.Comment
	err := r.db.QueryRow(ctx, query, args).Scan(
		&created.ID,
		&created.PostID,
		&created.AuthorID,
		&created.Text,
		&created.CreatedAt,
	)
	if err != nil {
		r.observe("comment_create", start, false)
		if db.IsForeignKeyViolation(err) {
			r.log.Debug("Comment references a missing post", slog.Int64("post_id", comment.PostID))
			return nil, custom_errors.ErrPostNotFound
		}
		r.log.Error("Error creating comment", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe("comment_create", start, true)
	r.log.Debug("Successfully created comment", slog.Int64("id", created.ID))
	return &created, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	start := time.Now()

	var comment model.Comment
	err := r.db.QueryRow(ctx,
		`SELECT id, post_id, author_id, text, created_at FROM comments WHERE id = @id`,
		pgx.NamedArgs{"id": id},
	).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Text,
		&comment.CreatedAt,
	)
	if err != nil {
		r.observe("comment_get_by_id", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug("Comment not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrCommentNotFound
		}
		r.log.Error("Error getting comment by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe("comment_get_by_id", start, true)
	return &comment, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*model.CommentDetailed, error) {
	start := time.Now()
	r.log.Debug("Listing comments by post", slog.Int64("post_id", postID))

	query := `
		SELECT cm.id, cm.post_id, cm.author_id, cm.text, cm.created_at,
			u.id, u.username, u.first_name, u.last_name, u.email, u.created_at
		FROM comments cm
		JOIN users u ON u.id = cm.author_id
		WHERE cm.post_id = @post_id
		ORDER BY cm.created_at ASC, cm.id ASC`

	rows, err := r.db.Query(ctx, query, pgx.NamedArgs{"post_id": postID})
	if err != nil {
		r.observe("comment_list_by_post", start, false)
		r.log.Error("Error listing comments", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	comments := make([]*model.CommentDetailed, 0)
	for rows.Next() {
		var (
			comment model.Comment
			author  model.User
		)
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Text,
			&comment.CreatedAt,
			&author.ID,
			&author.Username,
			&author.FirstName,
			&author.LastName,
			&author.Email,
			&author.CreatedAt,
		); err != nil {
			r.observe("comment_list_by_post", start, false)
			r.log.Error("Error scanning comment", slog.Int64("post_id", postID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		comments = append(comments, &model.CommentDetailed{Comment: &comment, Author: &author})
	}
	if err := rows.Err(); err != nil {
		r.observe("comment_list_by_post", start, false)
		r.log.Error("Error iterating comments", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe("comment_list_by_post", start, true)
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, id int64, text string) (*model.Comment, error) {
	start := time.Now()
	r.log.Debug("Updating comment", slog.Int64("id", id))

	var comment model.Comment
	err := r.db.QueryRow(ctx,
		`UPDATE comments SET text = @text WHERE id = @id
		RETURNING id, post_id, author_id, text, created_at`,
		pgx.NamedArgs{"id": id, "text": text},
	).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Text,
		&comment.CreatedAt,
	)
	if err != nil {
		r.observe("comment_update", start, false)
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Debug("Comment not found during update", slog.Int64("id", id))
			return nil, custom_errors.ErrCommentNotFound
		}
		r.log.Error("Error updating comment", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	r.observe("comment_update", start, true)
	return &comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	r.log.Debug("Deleting comment", slog.Int64("id", id))

	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		r.observe("comment_delete", start, false)
		r.log.Error("Error deleting comment", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	if result.RowsAffected() == 0 {
		r.observe("comment_delete", start, false)
		r.log.Debug("Comment not found during deletion", slog.Int64("id", id))
		return custom_errors.ErrCommentNotFound
	}

	r.observe("comment_delete", start, true)
	return nil
}
