package comment_repository

import (
	"context"

	"yatube-api/internal/model"
)

// Repository persists comments. GetForPost scopes the lookup to a
// post id so a comment fetched through the wrong post yields not-found.
type Repository interface {
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	GetForPost(ctx context.Context, postID, id int64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*model.Comment, error)
	Update(ctx context.Context, id int64, update *model.UpdateCommentDTO) (*model.Comment, error)
	Delete(ctx context.Context, id int64) error
}
