package model

import "github.com/jackc/pgx/v5/pgtype"

type Post struct {
	ID        int64              `json:"id"`
	AuthorID  int64              `json:"author_id"`
	Text      string             `json:"text"`
	Image     *string            `json:"image,omitempty"`
	GroupID   *int64             `json:"group_id,omitempty"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}
