package follow_repository

import (
	"context"

	"yatube-api/internal/model"
)

// Repository persists follow edges. Create must surface the storage
// uniqueness constraint on (user_id, following_id) as
// custom_errors.ErrAlreadyFollowing, so concurrent duplicate creates
// cannot both succeed.
type Repository interface {
	Create(ctx context.Context, userID, followingID int64) (*model.Follow, error)
	Exists(ctx context.Context, userID, followingID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Follow, error)
}
