package memory

import (
	"context"
	"log/slog"
	"sync"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/model"
)

type UserRepository struct {
	log    *logger.Logger
	mu     sync.RWMutex
	users  map[int64]*model.User
	nextID int64
}

func NewUserRepository(log *logger.Logger) *UserRepository {
	return &UserRepository{
		log:    log,
		users:  make(map[int64]*model.User),
		nextID: 1,
	}
}

// Add seeds a user the way the external identity service would.
func (u *UserRepository) Add(user *model.User) *model.User {
	u.mu.Lock()
	defer u.mu.Unlock()

	newUser := &model.User{
		ID:           u.nextID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
	}
	u.nextID++
	u.users[newUser.ID] = newUser

	result := *newUser
	return &result
}

func (u *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	user, exists := u.users[id]
	if !exists {
		u.log.Debug("User not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrUserNotFound
	}

	result := *user
	return &result, nil
}

func (u *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	for _, user := range u.users {
		if user.Username == username {
			result := *user
			return &result, nil
		}
	}

	u.log.Debug("User not found by username", slog.String("username", username))
	return nil, custom_errors.ErrUserNotFound
}
