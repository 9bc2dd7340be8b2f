package group_service

import (
	"context"

	"yatube-api/internal/model"
)

type Service interface {
	GetGroupByID(ctx context.Context, id int64) (*model.Group, error)
	ListGroups(ctx context.Context, filters model.ListFilters) ([]*model.Group, int, error)
}
