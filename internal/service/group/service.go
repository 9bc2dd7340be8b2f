package group_service

import (
	"context"
	"errors"
	"log/slog"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/model"
	group_repository "yatube-api/internal/repository/group"
)

var _ Service = (*GroupService)(nil)

type GroupService struct {
	groupRepo group_repository.Repository
	log       *logger.Logger
}

func NewGroupService(groupRepo group_repository.Repository, log *logger.Logger) *GroupService {
	return &GroupService{groupRepo: groupRepo, log: log}
}

func (s *GroupService) GetGroupByID(ctx context.Context, id int64) (*model.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrGroupNotFound) {
			s.log.Debug("Group not found", slog.Int64("id", id))
			return nil, custom_errors.ErrGroupNotFound
		}
		s.log.Error("Failed to get group", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return group, nil
}

func (s *GroupService) ListGroups(ctx context.Context, filters model.ListFilters) ([]*model.Group, int, error) {
	groups, total, err := s.groupRepo.List(ctx, filters)
	if err != nil {
		s.log.Error("Failed to list groups", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}
	return groups, total, nil
}
