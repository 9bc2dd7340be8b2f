package post_service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"yatube-api/internal/cache"
	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/metrics"
	"yatube-api/internal/model"
)

// CacheDecorator wraps a post Service with a read-through cache for
// single-post lookups and listing pages, invalidating both on every
// write.
type CacheDecorator struct {
	service   Service
	postCache cache.PostCache
	log       *logger.Logger
	metrics   metrics.MetricsProvider
}

func NewCacheDecorator(
	service Service,
	postCache cache.PostCache,
	log *logger.Logger,
	metricsProvider metrics.MetricsProvider,
) Service {
	return &CacheDecorator{
		service:   service,
		postCache: postCache,
		log:       log,
		metrics:   metricsProvider,
	}
}

func (d *CacheDecorator) CreatePost(ctx context.Context, post *model.CreatePostDTO) (*model.PostDetailed, error) {
	result, err := d.service.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := d.postCache.SetPost(ctx, result); err != nil {
		d.log.Warn("Failed to cache created post",
			slog.Int64("post_id", result.Post.ID),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(start))
	d.invalidatePages(ctx)

	return result, nil
}

func (d *CacheDecorator) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	start := time.Now()
	cachedPost, err := d.postCache.GetPost(ctx, id)
	d.metrics.RecordCacheOperationDuration("post_get", time.Since(start))
	if err == nil {
		d.log.Debug("Post found in cache", slog.Int64("post_id", id))
		d.metrics.IncrementCacheHits()
		return cachedPost, nil
	}

	if errors.Is(err, custom_errors.ErrCacheMiss) {
		d.metrics.IncrementCacheMisses()
	} else {
		d.log.Warn("Failed to get post from cache",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}

	post, err := d.service.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	setStart := time.Now()
	if err := d.postCache.SetPost(ctx, post); err != nil {
		d.log.Warn("Failed to cache post",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(setStart))

	return post, nil
}

func (d *CacheDecorator) ListPosts(ctx context.Context, filters *model.ListFilters) ([]*model.PostDetailed, int, error) {
	start := time.Now()
	cachedPage, err := d.postCache.GetPostPage(ctx, filters)
	d.metrics.RecordCacheOperationDuration("post_page_get", time.Since(start))
	if err == nil {
		d.metrics.IncrementCacheHits()
		return cachedPage.Posts, cachedPage.Total, nil
	}

	if errors.Is(err, custom_errors.ErrCacheMiss) {
		d.metrics.IncrementCacheMisses()
	} else {
		d.log.Warn("Failed to get post page from cache", slog.String("error", err.Error()))
	}

	posts, total, err := d.service.ListPosts(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	setStart := time.Now()
	if err := d.postCache.SetPostPage(ctx, filters, &model.PostPage{Posts: posts, Total: total}); err != nil {
		d.log.Warn("Failed to cache post page", slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_page_set", time.Since(setStart))

	return posts, total, nil
}

// invalidatePages drops every cached listing window. Any write can
// shift paging boundaries, so per-window invalidation is not viable.
func (d *CacheDecorator) invalidatePages(ctx context.Context) {
	start := time.Now()
	if err := d.postCache.DeletePostPages(ctx); err != nil {
		d.log.Warn("Failed to invalidate post page cache", slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_page_delete", time.Since(start))
}

func (d *CacheDecorator) UpdatePost(ctx context.Context, userID, id int64, post *model.UpdatePostDTO) (*model.PostDetailed, error) {
	result, err := d.service.UpdatePost(ctx, userID, id, post)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Failed to invalidate post cache after update",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_delete", time.Since(start))
	d.invalidatePages(ctx)

	return result, nil
}

func (d *CacheDecorator) DeletePost(ctx context.Context, userID, id int64) error {
	if err := d.service.DeletePost(ctx, userID, id); err != nil {
		return err
	}

	start := time.Now()
	if err := d.postCache.DeletePost(ctx, id); err != nil {
		d.log.Warn("Failed to invalidate post cache after deletion",
			slog.Int64("post_id", id),
			slog.String("error", err.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_delete", time.Since(start))
	d.invalidatePages(ctx)

	return nil
}
