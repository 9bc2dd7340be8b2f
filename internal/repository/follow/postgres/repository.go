package follow_repository_postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/metrics"
	"yatube-api/internal/model"
	"yatube-api/internal/repository/postgres/db"
)

// PostgreSQL unique violation error code.
const uniqueViolationCode = "23505"

type FollowRepository struct {
	log     *logger.Logger
	db      db.PgDB
	metrics metrics.MetricsProvider
}

func NewFollowRepository(db db.PgDB, log *logger.Logger, metrics metrics.MetricsProvider) *FollowRepository {
	return &FollowRepository{db: db, log: log, metrics: metrics}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func (f *FollowRepository) Create(ctx context.Context, userID, followingID int64) (*model.Follow, error) {
	start := time.Now()
	now := pgtype.Timestamptz{Time: time.Now(), Valid: true}

	args := pgx.NamedArgs{
		"user_id":      userID,
		"following_id": followingID,
		"created_at":   now,
	}

	query := `
		INSERT INTO follows (user_id, following_id, created_at)
		VALUES (@user_id, @following_id, @created_at)
		RETURNING id, user_id, following_id, created_at`

	var createdFollow model.Follow
	err := f.db.QueryRow(ctx, query, args).Scan(
		&createdFollow.ID,
		&createdFollow.UserID,
		&createdFollow.FollowingID,
		&createdFollow.CreatedAt,
	)

	if err != nil {
		f.metrics.IncrementDatabaseQueries("follow_create", false)
		f.metrics.RecordDatabaseQueryDuration("follow_create", time.Since(start))
		if isUniqueViolation(err) {
			f.log.Debug("Duplicate follow rejected by unique constraint",
				slog.Int64("user_id", userID),
				slog.Int64("following_id", followingID))
			return nil, custom_errors.ErrAlreadyFollowing
		}
		f.log.Error("Error creating follow", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	f.metrics.IncrementDatabaseQueries("follow_create", true)
	f.metrics.RecordDatabaseQueryDuration("follow_create", time.Since(start))
	return &createdFollow, nil
}

func (f *FollowRepository) Exists(ctx context.Context, userID, followingID int64) (bool, error) {
	start := time.Now()

	args := pgx.NamedArgs{"user_id": userID, "following_id": followingID}
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = @user_id AND following_id = @following_id)`

	var exists bool
	if err := f.db.QueryRow(ctx, query, args).Scan(&exists); err != nil {
		f.metrics.IncrementDatabaseQueries("follow_exists", false)
		f.metrics.RecordDatabaseQueryDuration("follow_exists", time.Since(start))
		f.log.Error("Error checking follow existence", slog.String("error", err.Error()))
		return false, custom_errors.ErrDatabaseQuery
	}

	f.metrics.IncrementDatabaseQueries("follow_exists", true)
	f.metrics.RecordDatabaseQueryDuration("follow_exists", time.Since(start))
	return exists, nil
}

func (f *FollowRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Follow, error) {
	start := time.Now()

	args := pgx.NamedArgs{"user_id": userID}
	query := `SELECT id, user_id, following_id, created_at
				FROM follows WHERE user_id = @user_id ORDER BY id`

	rows, err := f.db.Query(ctx, query, args)
	if err != nil {
		f.metrics.IncrementDatabaseQueries("follow_list_by_user", false)
		f.metrics.RecordDatabaseQueryDuration("follow_list_by_user", time.Since(start))
		f.log.Error("Error listing follows", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var follows []*model.Follow
	for rows.Next() {
		var follow model.Follow
		err := rows.Scan(
			&follow.ID,
			&follow.UserID,
			&follow.FollowingID,
			&follow.CreatedAt,
		)
		if err != nil {
			f.metrics.IncrementDatabaseQueries("follow_list_by_user", false)
			f.metrics.RecordDatabaseQueryDuration("follow_list_by_user", time.Since(start))
			f.log.Error("Error scanning follow during ListByUser", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		follows = append(follows, &follow)
	}

	if err = rows.Err(); err != nil {
		f.metrics.IncrementDatabaseQueries("follow_list_by_user", false)
		f.metrics.RecordDatabaseQueryDuration("follow_list_by_user", time.Since(start))
		f.log.Error("Error iterating rows during ListByUser", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	f.metrics.IncrementDatabaseQueries("follow_list_by_user", true)
	f.metrics.RecordDatabaseQueryDuration("follow_list_by_user", time.Since(start))
	return follows, nil
}
