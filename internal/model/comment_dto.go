package model

type CreateCommentDTO struct {
	AuthorID int64  `json:"author_id"`
	PostID   int64  `json:"post_id"`
	Text     string `json:"text"`
}

type UpdateCommentDTO struct {
	Text *string `json:"text,omitempty"`
}
