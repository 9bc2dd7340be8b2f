package group_repository

import (
	"context"

	"yatube-api/internal/model"
)

// Groups are created and managed outside this API surface; only reads
// are exposed. List reports the unfiltered total alongside the window.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*model.Group, error)
	List(ctx context.Context, filters model.ListFilters) ([]*model.Group, int, error)
}
