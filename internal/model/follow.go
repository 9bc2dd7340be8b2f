package model

import "github.com/jackc/pgx/v5/pgtype"

// Follow is a directed edge: UserID follows FollowingID.
type Follow struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"user_id"`
	FollowingID int64              `json:"following_id"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}
