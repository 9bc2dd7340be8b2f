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

type FollowRepository struct {
	log     *logger.Logger
	mu      sync.RWMutex
	follows map[int64]*model.Follow
	nextID  int64
}

func NewFollowRepository(log *logger.Logger) *FollowRepository {
	return &FollowRepository{
		log:     log,
		follows: make(map[int64]*model.Follow),
		nextID:  1,
	}
}

func (f *FollowRepository) Create(ctx context.Context, userID, followingID int64) (*model.Follow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Mirrors the UNIQUE(user_id, following_id) constraint.
	for _, follow := range f.follows {
		if follow.UserID == userID && follow.FollowingID == followingID {
			f.log.Debug("Duplicate follow rejected",
				slog.Int64("user_id", userID),
				slog.Int64("following_id", followingID))
			return nil, custom_errors.ErrAlreadyFollowing
		}
	}

	newFollow := &model.Follow{
		ID:          f.nextID,
		UserID:      userID,
		FollowingID: followingID,
		CreatedAt:   pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	f.nextID++

	f.follows[newFollow.ID] = newFollow

	result := *newFollow
	return &result, nil
}

func (f *FollowRepository) Exists(ctx context.Context, userID, followingID int64) (bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, follow := range f.follows {
		if follow.UserID == userID && follow.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (f *FollowRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Follow, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var result []*model.Follow
	for _, follow := range f.follows {
		if follow.UserID == userID {
			followCopy := *follow
			result = append(result, &followCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}
