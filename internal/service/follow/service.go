package follow_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/model"
	follow_repository "yatube-api/internal/repository/follow"
	"yatube-api/internal/repository/postgres"
	user_repository "yatube-api/internal/repository/user"
)

var _ Service = (*FollowService)(nil)

type FollowService struct {
	followRepo follow_repository.Repository
	userRepo   user_repository.Repository
	uow        postgres.UnitOfWork
	log        *logger.Logger
}

func NewFollowService(
	followRepo follow_repository.Repository,
	userRepo user_repository.Repository,
	uow postgres.UnitOfWork,
	log *logger.Logger,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		uow:        uow,
		log:        log,
	}
}

func (s *FollowService) CreateFollow(ctx context.Context, userID int64, followingUsername string) (result *model.FollowDetailed, err error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		// A valid token whose account row is gone must not leak a
		// "target does not exist" answer about the wrong user.
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Follower account no longer exists", slog.Int64("user_id", userID))
			return nil, custom_errors.ErrInvalidCredentials
		}
		s.log.Error("Failed to get follower", slog.String("error", err.Error()), slog.Int64("user_id", userID))
		return nil, custom_errors.ErrDatabaseQuery
	}

	// Target existence is checked before the self-follow and duplicate
	// rules, so a bad username always wins.
	following, err := s.userRepo.GetByUsername(ctx, followingUsername)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Follow target does not exist", slog.String("username", followingUsername))
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to resolve follow target", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if following.ID == userID {
		s.log.Debug("Self-follow rejected", slog.Int64("user_id", userID))
		return nil, custom_errors.ErrSelfFollow
	}

	exists, err := s.followRepo.Exists(ctx, userID, following.ID)
	if err != nil {
		s.log.Error("Failed to check existing follow", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if exists {
		s.log.Debug("Duplicate follow rejected",
			slog.Int64("user_id", userID),
			slog.Int64("following_id", following.ID))
		return nil, custom_errors.ErrAlreadyFollowing
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.log.Debug("Transaction rollback after failed follow create", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	// The unique constraint backstops the Exists check above, so a
	// concurrent duplicate still comes back as ErrAlreadyFollowing.
	follow, err := tx.FollowRepository().Create(ctx, userID, following.ID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrAlreadyFollowing) {
			return nil, custom_errors.ErrAlreadyFollowing
		}
		s.log.Error("Failed to create follow", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return &model.FollowDetailed{Follow: follow, User: user, Following: following}, nil
}

func (s *FollowService) ListFollows(ctx context.Context, userID int64, search string) ([]*model.FollowDetailed, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Follower account no longer exists", slog.Int64("user_id", userID))
			return nil, custom_errors.ErrInvalidCredentials
		}
		s.log.Error("Failed to get follower", slog.String("error", err.Error()), slog.Int64("user_id", userID))
		return nil, custom_errors.ErrDatabaseQuery
	}

	follows, err := s.followRepo.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("Failed to list follows", slog.String("error", err.Error()), slog.Int64("user_id", userID))
		return nil, custom_errors.ErrDatabaseQuery
	}

	needle := strings.ToLower(search)
	result := make([]*model.FollowDetailed, 0, len(follows))
	for _, follow := range follows {
		following, err := s.userRepo.GetByID(ctx, follow.FollowingID)
		if err != nil {
			s.log.Error("Failed to get followed user during ListFollows",
				slog.String("error", err.Error()),
				slog.Int64("following_id", follow.FollowingID))
			return nil, err
		}
		if needle != "" && !strings.Contains(strings.ToLower(following.Username), needle) {
			continue
		}
		result = append(result, &model.FollowDetailed{Follow: follow, User: user, Following: following})
	}
	return result, nil
}
