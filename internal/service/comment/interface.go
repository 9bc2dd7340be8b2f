package comment_service

import (
	"context"

	"yatube-api/internal/model"
)

type Service interface {
	CreateComment(ctx context.Context, comment *model.CreateCommentDTO) (*model.CommentDetailed, error)
	GetComment(ctx context.Context, postID, id int64) (*model.CommentDetailed, error)
	ListComments(ctx context.Context, postID int64) ([]*model.CommentDetailed, error)
	UpdateComment(ctx context.Context, userID, postID, id int64, update *model.UpdateCommentDTO) (*model.CommentDetailed, error)
	DeleteComment(ctx context.Context, userID, postID, id int64) error
}
