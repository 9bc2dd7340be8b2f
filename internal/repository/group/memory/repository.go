package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/model"
)

type GroupRepository struct {
	log    *logger.Logger
	mu     sync.RWMutex
	groups map[int64]*model.Group
	nextID int64
}

func NewGroupRepository(log *logger.Logger) *GroupRepository {
	return &GroupRepository{
		log:    log,
		groups: make(map[int64]*model.Group),
		nextID: 1,
	}
}

// Add seeds a group the way the external admin tooling would.
func (g *GroupRepository) Add(group *model.Group) *model.Group {
	g.mu.Lock()
	defer g.mu.Unlock()

	newGroup := &model.Group{
		ID:          g.nextID,
		Title:       group.Title,
		Slug:        group.Slug,
		Description: group.Description,
	}
	g.nextID++
	g.groups[newGroup.ID] = newGroup

	result := *newGroup
	return &result
}

func (g *GroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	group, exists := g.groups[id]
	if !exists {
		g.log.Debug("Group not found by id", slog.Int64("id", id))
		return nil, custom_errors.ErrGroupNotFound
	}

	result := *group
	return &result, nil
}

func (g *GroupRepository) List(ctx context.Context, filters model.ListFilters) ([]*model.Group, int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]*model.Group, 0, len(g.groups))
	for _, group := range g.groups {
		groupCopy := *group
		result = append(result, &groupCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	total := len(result)

	if filters.Offset != nil {
		offset := *filters.Offset
		if offset >= len(result) {
			return []*model.Group{}, total, nil
		}
		result = result[offset:]
	}

	if filters.Limit != nil {
		limit := *filters.Limit
		if limit < len(result) {
			result = result[:limit]
		}
	}

	return result, total, nil
}
