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

type CommentRepository struct {
	log   ports.Logger
	store *Store
}

func NewCommentRepository(store *Store, log ports.Logger) *CommentRepository {
	return &CommentRepository{log: log, store: store}
}

func (c *CommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[comment.PostID]; !ok {
		c.log.Debug("Comment references a missing post", slog.Int64("post_id", comment.PostID))
		return nil, custom_errors.ErrPostNotFound
	}
	if _, ok := s.users[comment.AuthorID]; !ok {
		return nil, custom_errors.ErrInvalidInput
	}

	createdAt := comment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	created := &model.Comment{
		ID:        s.nextCommentID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Text:      comment.Text,
		CreatedAt: createdAt,
	}
	s.nextCommentID++
	s.comments[created.ID] = created

	result := *created
	return &result, nil
}

func (c *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, custom_errors.ErrCommentNotFound
	}
	result := *comment
	return &result, nil
}

func (c *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*model.CommentDetailed, error) {
	s := c.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.CommentDetailed, 0)
	for _, comment := range s.comments {
		if comment.PostID != postID {
			continue
		}
		commentCopy := *comment
		detailed := &model.CommentDetailed{Comment: &commentCopy}
		if author, ok := s.users[comment.AuthorID]; ok {
			authorCopy := *author
			detailed.Author = &authorCopy
		}
		result = append(result, detailed)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Comment, result[j].Comment
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (c *CommentRepository) Update(ctx context.Context, id int64, text string) (*model.Comment, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, custom_errors.ErrCommentNotFound
	}
	comment.Text = text
	result := *comment
	return &result, nil
}

func (c *CommentRepository) Delete(ctx context.Context, id int64) error {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return custom_errors.ErrCommentNotFound
	}
	delete(s.comments, id)
	return nil
}
