package model

import "github.com/jackc/pgx/v5/pgtype"

type Comment struct {
	ID       int64              `json:"id"`
	AuthorID int64              `json:"author_id"`
	PostID   int64              `json:"post_id"`
	Text     string             `json:"text"`
	Created  pgtype.Timestamptz `json:"created"`
}
