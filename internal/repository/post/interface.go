package post_repository

import (
	"context"

	"yatube-api/internal/model"
)

// Repository persists posts. List reports the unfiltered total
// alongside the window so the delivery layer can build a page envelope.
type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	Update(ctx context.Context, id int64, update *model.UpdatePostDTO) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters model.ListFilters) ([]*model.Post, int, error)
}
