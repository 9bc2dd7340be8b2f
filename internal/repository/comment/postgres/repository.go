package comment_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/metrics"
	"yatube-api/internal/model"
	"yatube-api/internal/repository/postgres/db"
)

type CommentRepository struct {
	log     *logger.Logger
	db      db.PgDB
	metrics metrics.MetricsProvider
}

func NewCommentRepository(db db.PgDB, log *logger.Logger, metrics metrics.MetricsProvider) *CommentRepository {
	return &CommentRepository{db: db, log: log, metrics: metrics}
}

func (c *CommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	start := time.Now()
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"author_id": comment.AuthorID,
		"post_id":   comment.PostID,
		"text":      comment.Text,
		"created":   now,
	}

	query := `
		INSERT INTO comments (author_id, post_id, text, created)
		VALUES (@author_id, @post_id, @text, @created)
		RETURNING id, author_id, post_id, text, created`

	var createdComment model.Comment
	err := c.db.QueryRow(ctx, query, args).Scan(
		&createdComment.ID,
		&createdComment.AuthorID,
		&createdComment.PostID,
		&createdComment.Text,
		&createdComment.Created,
	)

	if err != nil {
		c.metrics.IncrementDatabaseQueries("comment_create", false)
		c.metrics.RecordDatabaseQueryDuration("comment_create", time.Since(start))
		c.log.Error("Error creating comment", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	c.metrics.IncrementDatabaseQueries("comment_create", true)
	c.metrics.RecordDatabaseQueryDuration("comment_create", time.Since(start))
	return &createdComment, nil
}

func (c *CommentRepository) GetForPost(ctx context.Context, postID, id int64) (*model.Comment, error) {
	start := time.Now()

	args := pgx.NamedArgs{"post_id": postID, "id": id}
	query := `SELECT id, author_id, post_id, text, created
				FROM comments WHERE id = @id AND post_id = @post_id`

	comment := &model.Comment{}
	err := c.db.QueryRow(ctx, query, args).Scan(
		&comment.ID,
		&comment.AuthorID,
		&comment.PostID,
		&comment.Text,
		&comment.Created,
	)
	if err != nil {
		c.metrics.IncrementDatabaseQueries("comment_get_for_post", false)
		c.metrics.RecordDatabaseQueryDuration("comment_get_for_post", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			c.log.Debug("Comment not found for post", slog.Int64("post_id", postID), slog.Int64("id", id))
			return nil, custom_errors.ErrCommentNotFound
		}
		c.log.Error("Error getting comment", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	c.metrics.IncrementDatabaseQueries("comment_get_for_post", true)
	c.metrics.RecordDatabaseQueryDuration("comment_get_for_post", time.Since(start))
	return comment, nil
}

func (c *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*model.Comment, error) {
	start := time.Now()

	args := pgx.NamedArgs{"post_id": postID}
	query := `SELECT id, author_id, post_id, text, created
				FROM comments WHERE post_id = @post_id ORDER BY id`

	rows, err := c.db.Query(ctx, query, args)
	if err != nil {
		c.metrics.IncrementDatabaseQueries("comment_list_by_post", false)
		c.metrics.RecordDatabaseQueryDuration("comment_list_by_post", time.Since(start))
		c.log.Error("Error listing comments by post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.AuthorID,
			&comment.PostID,
			&comment.Text,
			&comment.Created,
		)
		if err != nil {
			c.metrics.IncrementDatabaseQueries("comment_list_by_post", false)
			c.metrics.RecordDatabaseQueryDuration("comment_list_by_post", time.Since(start))
			c.log.Error("Error scanning comment during ListByPost", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		comments = append(comments, &comment)
	}

	if err = rows.Err(); err != nil {
		c.metrics.IncrementDatabaseQueries("comment_list_by_post", false)
		c.metrics.RecordDatabaseQueryDuration("comment_list_by_post", time.Since(start))
		c.log.Error("Error iterating rows during ListByPost", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	c.metrics.IncrementDatabaseQueries("comment_list_by_post", true)
	c.metrics.RecordDatabaseQueryDuration("comment_list_by_post", time.Since(start))
	return comments, nil
}

func (c *CommentRepository) Update(ctx context.Context, id int64, update *model.UpdateCommentDTO) (*model.Comment, error) {
	start := time.Now()

	if update.Text == nil {
		args := pgx.NamedArgs{"id": id}
		query := `SELECT id, author_id, post_id, text, created FROM comments WHERE id = @id`
		comment := &model.Comment{}
		err := c.db.QueryRow(ctx, query, args).Scan(
			&comment.ID, &comment.AuthorID, &comment.PostID, &comment.Text, &comment.Created,
		)
		if err != nil {
			c.metrics.IncrementDatabaseQueries("comment_update", false)
			c.metrics.RecordDatabaseQueryDuration("comment_update", time.Since(start))
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, custom_errors.ErrCommentNotFound
			}
			c.log.Error("Error getting comment during Update", slog.Int64("id", id), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		c.metrics.IncrementDatabaseQueries("comment_update", true)
		c.metrics.RecordDatabaseQueryDuration("comment_update", time.Since(start))
		return comment, nil
	}

	args := pgx.NamedArgs{"id": id, "text": *update.Text}
	query := `UPDATE comments SET text = @text
				WHERE id = @id RETURNING id, author_id, post_id, text, created`

	var updatedComment model.Comment
	err := c.db.QueryRow(ctx, query, args).Scan(
		&updatedComment.ID,
		&updatedComment.AuthorID,
		&updatedComment.PostID,
		&updatedComment.Text,
		&updatedComment.Created,
	)

	if err != nil {
		c.metrics.IncrementDatabaseQueries("comment_update", false)
		c.metrics.RecordDatabaseQueryDuration("comment_update", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			c.log.Debug("Comment not found by id during Update", slog.Int64("id", id))
			return nil, custom_errors.ErrCommentNotFound
		}
		c.log.Error("Error updating comment", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	c.metrics.IncrementDatabaseQueries("comment_update", true)
	c.metrics.RecordDatabaseQueryDuration("comment_update", time.Since(start))
	return &updatedComment, nil
}

func (c *CommentRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()

	args := pgx.NamedArgs{"id": id}
	query := `DELETE FROM comments WHERE id = @id`

	result, err := c.db.Exec(ctx, query, args)
	if err != nil {
		c.metrics.IncrementDatabaseQueries("comment_delete", false)
		c.metrics.RecordDatabaseQueryDuration("comment_delete", time.Since(start))
		c.log.Error("Error deleting comment", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	c.metrics.IncrementDatabaseQueries("comment_delete", true)
	c.metrics.RecordDatabaseQueryDuration("comment_delete", time.Since(start))
	if result.RowsAffected() == 0 {
		return custom_errors.ErrCommentNotFound
	}
	return nil
}
