package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"yatube-api/internal/logger"
	"yatube-api/internal/metrics"
	comment_repository "yatube-api/internal/repository/comment"
	comment_repository_postgres "yatube-api/internal/repository/comment/postgres"
	follow_repository "yatube-api/internal/repository/follow"
	follow_repository_postgres "yatube-api/internal/repository/follow/postgres"
	group_repository "yatube-api/internal/repository/group"
	group_repository_postgres "yatube-api/internal/repository/group/postgres"
	post_repository "yatube-api/internal/repository/post"
	post_repository_postgres "yatube-api/internal/repository/post/postgres"
)

type UnitOfWork interface {
	Begin(ctx context.Context) (Transaction, error)
}

type Transaction interface {
	PostRepository() post_repository.Repository
	CommentRepository() comment_repository.Repository
	GroupRepository() group_repository.Repository
	FollowRepository() follow_repository.Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type PostgresUnitOfWork struct {
	pool    *pgxpool.Pool
	log     *logger.Logger
	metrics metrics.MetricsProvider
}

func NewPostgresUOW(pool *pgxpool.Pool, log *logger.Logger, metrics metrics.MetricsProvider) UnitOfWork {
	return &PostgresUnitOfWork{pool: pool, log: log, metrics: metrics}
}

func (uow *PostgresUnitOfWork) Begin(ctx context.Context) (Transaction, error) {
	tx, err := uow.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return &PostgresTransaction{tx: tx, log: uow.log, metrics: uow.metrics}, nil
}

type PostgresTransaction struct {
	tx      pgx.Tx
	log     *logger.Logger
	metrics metrics.MetricsProvider
}

func (t *PostgresTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *PostgresTransaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *PostgresTransaction) PostRepository() post_repository.Repository {
	return post_repository_postgres.NewPostRepository(t.tx, t.log, t.metrics)
}

func (t *PostgresTransaction) CommentRepository() comment_repository.Repository {
	return comment_repository_postgres.NewCommentRepository(t.tx, t.log, t.metrics)
}

func (t *PostgresTransaction) GroupRepository() group_repository.Repository {
	return group_repository_postgres.NewGroupRepository(t.tx, t.log, t.metrics)
}

func (t *PostgresTransaction) FollowRepository() follow_repository.Repository {
	return follow_repository_postgres.NewFollowRepository(t.tx, t.log, t.metrics)
}
