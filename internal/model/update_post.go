package model

type UpdatePostDTO struct {
	Text    *string `json:"text,omitempty"`
	Image   *string `json:"image,omitempty"`
	GroupID *int64  `json:"group_id,omitempty"`
}
