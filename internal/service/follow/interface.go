package follow_service

import (
	"context"

	"yatube-api/internal/model"
)

type Service interface {
	// CreateFollow validates the target username before any other rule:
	// unknown user, then self-follow, then duplicate edge.
	CreateFollow(ctx context.Context, userID int64, followingUsername string) (*model.FollowDetailed, error)
	// ListFollows returns the caller's outgoing follows, optionally
	// narrowed by a case-insensitive username substring search.
	ListFollows(ctx context.Context, userID int64, search string) ([]*model.FollowDetailed, error)
}
