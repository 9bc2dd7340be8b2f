package group_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/metrics"
	"yatube-api/internal/model"
	"yatube-api/internal/repository/postgres/db"
)

type GroupRepository struct {
	log     *logger.Logger
	db      db.PgDB
	metrics metrics.MetricsProvider
}

func NewGroupRepository(db db.PgDB, log *logger.Logger, metrics metrics.MetricsProvider) *GroupRepository {
	return &GroupRepository{db: db, log: log, metrics: metrics}
}

func (g *GroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	start := time.Now()

	args := pgx.NamedArgs{"id": id}
	query := `SELECT id, title, slug, description FROM groups WHERE id = @id`

	group := &model.Group{}
	err := g.db.QueryRow(ctx, query, args).Scan(&group.ID, &group.Title, &group.Slug, &group.Description)
	if err != nil {
		g.metrics.IncrementDatabaseQueries("group_get_by_id", false)
		g.metrics.RecordDatabaseQueryDuration("group_get_by_id", time.Since(start))
		if errors.Is(err, pgx.ErrNoRows) {
			g.log.Debug("Group not found by id", slog.Int64("id", id))
			return nil, custom_errors.ErrGroupNotFound
		}
		g.log.Error("Error getting group by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	g.metrics.IncrementDatabaseQueries("group_get_by_id", true)
	g.metrics.RecordDatabaseQueryDuration("group_get_by_id", time.Since(start))
	return group, nil
}

func (g *GroupRepository) List(ctx context.Context, filters model.ListFilters) ([]*model.Group, int, error) {
	start := time.Now()

	var total int
	if err := g.db.QueryRow(ctx, `SELECT count(*) FROM groups`).Scan(&total); err != nil {
		g.metrics.IncrementDatabaseQueries("group_list", false)
		g.metrics.RecordDatabaseQueryDuration("group_list", time.Since(start))
		g.log.Error("Error counting groups", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}

	args := pgx.NamedArgs{}
	query := `SELECT id, title, slug, description FROM groups ORDER BY id`
	if filters.Limit != nil {
		query += " LIMIT @limit"
		args["limit"] = *filters.Limit
	}
	if filters.Offset != nil {
		query += " OFFSET @offset"
		args["offset"] = *filters.Offset
	}

	rows, err := g.db.Query(ctx, query, args)
	if err != nil {
		g.metrics.IncrementDatabaseQueries("group_list", false)
		g.metrics.RecordDatabaseQueryDuration("group_list", time.Since(start))
		g.log.Error("Error listing groups", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var groups []*model.Group
	for rows.Next() {
		var group model.Group
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			g.metrics.IncrementDatabaseQueries("group_list", false)
			g.metrics.RecordDatabaseQueryDuration("group_list", time.Since(start))
			g.log.Error("Error scanning group during List", slog.String("error", err.Error()))
			return nil, 0, custom_errors.ErrDatabaseScan
		}
		groups = append(groups, &group)
	}

	if err = rows.Err(); err != nil {
		g.metrics.IncrementDatabaseQueries("group_list", false)
		g.metrics.RecordDatabaseQueryDuration("group_list", time.Since(start))
		g.log.Error("Error iterating rows during List", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}

	g.metrics.IncrementDatabaseQueries("group_list", true)
	g.metrics.RecordDatabaseQueryDuration("group_list", time.Since(start))
	return groups, total, nil
}
