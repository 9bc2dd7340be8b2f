package post_service

import (
	"context"

	"yatube-api/internal/model"
)

type Service interface {
	CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error)
	GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error)
	ListPosts(ctx context.Context, filters *model.ListFilters) ([]*model.PostDetailed, int, error)
	UpdatePost(ctx context.Context, userID, id int64, post *model.UpdatePostDTO) (*model.PostDetailed, error)
	DeletePost(ctx context.Context, userID, id int64) error
}
