package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"yatube-api/internal/cache"
	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/model"
)

const (
	postCacheKeyPrefix = "post:"
	postPageKeyPrefix  = "post:list:"
	postPagePattern    = postPageKeyPrefix + "*"
	postCacheTTL       = 30 * time.Minute
	postPageTTL        = 5 * time.Minute
)

type PostCache struct {
	client *Client
	log    *logger.Logger
}

var _ cache.PostCache = (*PostCache)(nil)

func NewPostCache(client *Client, log *logger.Logger) *PostCache {
	return &PostCache{
		client: client,
		log:    log,
	}
}

func (p *PostCache) GetPost(ctx context.Context, postID int64) (*model.PostDetailed, error) {
	key := p.getPostKey(postID)

	var post model.PostDetailed
	err := p.client.Get(ctx, key, &post)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			p.log.Debug("Post cache miss", slog.Int64("post_id", postID))
			return nil, custom_errors.ErrCacheMiss
		}
		p.log.Error("Failed to get post from cache",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get post from cache: %w", err)
	}

	p.log.Debug("Post cache hit", slog.Int64("post_id", postID))
	return &post, nil
}

func (p *PostCache) SetPost(ctx context.Context, post *model.PostDetailed) error {
	if post == nil || post.Post == nil {
		return fmt.Errorf("post cannot be nil")
	}

	key := p.getPostKey(post.Post.ID)

	if err := p.client.Set(ctx, key, post, postCacheTTL); err != nil {
		p.log.Error("Failed to set post cache",
			slog.Int64("post_id", post.Post.ID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set post cache: %w", err)
	}

	p.log.Debug("Post cached successfully",
		slog.Int64("post_id", post.Post.ID),
		slog.Duration("ttl", postCacheTTL))
	return nil
}

func (p *PostCache) DeletePost(ctx context.Context, postID int64) error {
	key := p.getPostKey(postID)

	if err := p.client.Delete(ctx, key); err != nil {
		p.log.Error("Failed to delete post from cache",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete post from cache: %w", err)
	}

	p.log.Debug("Post deleted from cache", slog.Int64("post_id", postID))
	return nil
}

func (p *PostCache) GetPostPage(ctx context.Context, filters *model.ListFilters) (*model.PostPage, error) {
	key := p.getPostPageKey(filters)

	var page model.PostPage
	err := p.client.Get(ctx, key, &page)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			p.log.Debug("Post page cache miss", slog.String("key", key))
			return nil, custom_errors.ErrCacheMiss
		}
		p.log.Error("Failed to get post page from cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get post page from cache: %w", err)
	}

	p.log.Debug("Post page cache hit", slog.String("key", key))
	return &page, nil
}

func (p *PostCache) SetPostPage(ctx context.Context, filters *model.ListFilters, page *model.PostPage) error {
	if page == nil {
		return fmt.Errorf("post page cannot be nil")
	}

	key := p.getPostPageKey(filters)

	if err := p.client.Set(ctx, key, page, postPageTTL); err != nil {
		p.log.Error("Failed to set post page cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set post page cache: %w", err)
	}

	p.log.Debug("Post page cached successfully",
		slog.String("key", key),
		slog.Duration("ttl", postPageTTL))
	return nil
}

func (p *PostCache) DeletePostPages(ctx context.Context) error {
	if err := p.client.DeletePattern(ctx, postPagePattern); err != nil {
		p.log.Error("Failed to delete post pages from cache",
			slog.String("pattern", postPagePattern),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete post pages from cache: %w", err)
	}

	p.log.Debug("Post pages deleted from cache", slog.String("pattern", postPagePattern))
	return nil
}

func (p *PostCache) getPostKey(postID int64) string {
	return postCacheKeyPrefix + strconv.FormatInt(postID, 10)
}

// getPostPageKey renders the paging window into the key so distinct
// windows never collide. Nil filters address the unwindowed listing.
func (p *PostCache) getPostPageKey(filters *model.ListFilters) string {
	limit, offset := "all", "all"
	if filters != nil && filters.Limit != nil {
		limit = strconv.Itoa(*filters.Limit)
	}
	if filters != nil && filters.Offset != nil {
		offset = strconv.Itoa(*filters.Offset)
	}
	return postPageKeyPrefix + limit + ":" + offset
}
