package user_repository

import (
	"context"

	"yatube-api/internal/model"
)

// Users are provisioned outside this API; the service only reads them
// to resolve authors, follow targets and login credentials.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
