package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/model"
)

type CommentRepository struct {
	log      *logger.Logger
	mu       sync.RWMutex
	comments map[int64]*model.Comment
	nextID   int64
}

func NewCommentRepository(log *logger.Logger) *CommentRepository {
	return &CommentRepository{
		log:      log,
		comments: make(map[int64]*model.Comment),
		nextID:   1,
	}
}

func (c *CommentRepository) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	newComment := &model.Comment{
		ID:       c.nextID,
		AuthorID: comment.AuthorID,
		PostID:   comment.PostID,
		Text:     comment.Text,
		Created:  now,
	}
	c.nextID++

	c.comments[newComment.ID] = newComment

	result := *newComment
	return &result, nil
}

func (c *CommentRepository) GetForPost(ctx context.Context, postID, id int64) (*model.Comment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	comment, exists := c.comments[id]
	if !exists || comment.PostID != postID {
		c.log.Debug("Comment not found for post", slog.Int64("post_id", postID), slog.Int64("id", id))
		return nil, custom_errors.ErrCommentNotFound
	}

	result := *comment
	return &result, nil
}

func (c *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]*model.Comment, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []*model.Comment
	for _, comment := range c.comments {
		if comment.PostID == postID {
			commentCopy := *comment
			result = append(result, &commentCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (c *CommentRepository) Update(ctx context.Context, id int64, update *model.UpdateCommentDTO) (*model.Comment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	comment, exists := c.comments[id]
	if !exists {
		return nil, custom_errors.ErrCommentNotFound
	}

	if update.Text != nil {
		comment.Text = *update.Text
	}

	result := *comment
	return &result, nil
}

func (c *CommentRepository) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.comments[id]; !exists {
		return custom_errors.ErrCommentNotFound
	}

	delete(c.comments, id)
	return nil
}
