package cache

import (
	"context"
	"time"

	"yatube-api/internal/model"
)

// Cache is the generic key/value port. Get returns
// custom_errors.ErrCacheMiss when the key is absent.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
}

// PostCache holds rendered post aggregates keyed by post id, plus
// whole listing pages keyed by their paging window. List entries are
// invalidated together since any write can reshuffle every page.
type PostCache interface {
	GetPost(ctx context.Context, postID int64) (*model.PostDetailed, error)
	SetPost(ctx context.Context, post *model.PostDetailed) error
	DeletePost(ctx context.Context, postID int64) error

	GetPostPage(ctx context.Context, filters *model.ListFilters) (*model.PostPage, error)
	SetPostPage(ctx context.Context, filters *model.ListFilters, page *model.PostPage) error
	DeletePostPages(ctx context.Context) error
}
