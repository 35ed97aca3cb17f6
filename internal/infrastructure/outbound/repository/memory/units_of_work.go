package memory

import (
	"context"

	ports "blogicum/internal/domain/ports/output"
	comment_repository "blogicum/internal/domain/ports/output/comment"
	post_repository "blogicum/internal/domain/ports/output/post"
	user_repository "blogicum/internal/domain/ports/output/user"
)

// UnitOfWork hands out repositories over the shared store. Writes are applied
// immediately, so Commit and Rollback have nothing to do.
type UnitOfWork struct {
	repos *Repositories
}

func NewUnitOfWork(repos *Repositories) ports.UnitOfWork {
	return &UnitOfWork{repos: repos}
}

func (u *UnitOfWork) Begin(ctx context.Context) (ports.Transaction, error) {
	return &transaction{repos: u.repos}, nil
}

type transaction struct {
	repos *Repositories
}

func (t *transaction) PostRepository() post_repository.Repository {
	return t.repos.Posts
}

func (t *transaction) CommentRepository() comment_repository.Repository {
	return t.repos.Comments
}

func (t *transaction) UserRepository() user_repository.Repository {
	return t.repos.Users
}

func (t *transaction) Commit(ctx context.Context) error {
	return nil
}

func (t *transaction) Rollback(ctx context.Context) error {
	return nil
}
