package memory

import (
	"context"

	comment_repository "yatube-api/internal/repository/comment"
	follow_repository "yatube-api/internal/repository/follow"
	group_repository "yatube-api/internal/repository/group"
	post_repository "yatube-api/internal/repository/post"
	"yatube-api/internal/repository/postgres"
)

// UnitOfWork hands the shared in-memory repositories to services in
// place of a real transaction. Commit and Rollback are no-ops: the
// memory repositories apply each call immediately.
type UnitOfWork struct {
	Posts    post_repository.Repository
	Comments comment_repository.Repository
	Groups   group_repository.Repository
	Follows  follow_repository.Repository
}

func NewUnitOfWork(
	posts post_repository.Repository,
	comments comment_repository.Repository,
	groups group_repository.Repository,
	follows follow_repository.Repository,
) *UnitOfWork {
	return &UnitOfWork{
		Posts:    posts,
		Comments: comments,
		Groups:   groups,
		Follows:  follows,
	}
}

var _ postgres.UnitOfWork = (*UnitOfWork)(nil)

func (u *UnitOfWork) Begin(ctx context.Context) (postgres.Transaction, error) {
	return &transaction{uow: u}, nil
}

type transaction struct {
	uow *UnitOfWork
}

func (t *transaction) Commit(ctx context.Context) error   { return nil }
func (t *transaction) Rollback(ctx context.Context) error { return nil }

func (t *transaction) PostRepository() post_repository.Repository {
	return t.uow.Posts
}

func (t *transaction) CommentRepository() comment_repository.Repository {
	return t.uow.Comments
}

func (t *transaction) GroupRepository() group_repository.Repository {
	return t.uow.Groups
}

func (t *transaction) FollowRepository() follow_repository.Repository {
	return t.uow.Follows
}
