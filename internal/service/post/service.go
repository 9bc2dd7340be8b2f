package post_service

import (
	"context"
	"errors"
	"log/slog"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/model"
	post_repository "yatube-api/internal/repository/post"
	"yatube-api/internal/repository/postgres"
	user_repository "yatube-api/internal/repository/user"
	"yatube-api/internal/service/ownership"
)

var _ Service = (*PostService)(nil)

type PostService struct {
	postRepo post_repository.Repository
	userRepo user_repository.Repository
	uow      postgres.UnitOfWork
	log      *logger.Logger
}

func NewPostService(
	postRepo post_repository.Repository,
	userRepo user_repository.Repository,
	uow postgres.UnitOfWork,
	log *logger.Logger,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		uow:      uow,
		log:      log,
	}
}

func (s *PostService) CreatePost(ctx context.Context, post *model.CreatePostDTO) (result *model.PostDetailed, err error) {
	author, err := s.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		s.log.Error("Failed to get author for post create", slog.String("error", err.Error()))
		return nil, err
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.log.Debug("Transaction rollback after failed create", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	if post.GroupID != nil {
		if _, err := tx.GroupRepository().GetByID(ctx, *post.GroupID); err != nil {
			if errors.Is(err, custom_errors.ErrGroupNotFound) {
				s.log.Debug("Group not found for post create", slog.Int64("group_id", *post.GroupID))
				return nil, custom_errors.ErrGroupNotFound
			}
			s.log.Error("Failed to check group for post create", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	newPost := &model.Post{
		AuthorID: post.AuthorID,
		Text:     post.Text,
		Image:    post.Image,
		GroupID:  post.GroupID,
	}
	createdPost, err := tx.PostRepository().Create(ctx, newPost)
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return &model.PostDetailed{Post: createdPost, Author: author}, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*model.PostDetailed, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			s.log.Debug("Post not found", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		default:
			s.log.Error("Failed to get post by id",
				slog.String("error", err.Error()),
				slog.Int64("id", id))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	author, err := s.userRepo.GetByID(ctx, post.AuthorID)
	if err != nil {
		s.log.Error("Failed to get author",
			slog.String("error", err.Error()),
			slog.Int64("author_id", post.AuthorID))
		return nil, err
	}

	return &model.PostDetailed{Post: post, Author: author}, nil
}

func (s *PostService) ListPosts(ctx context.Context, filters *model.ListFilters) ([]*model.PostDetailed, int, error) {
	posts, total, err := s.postRepo.List(ctx, *filters)
	if err != nil {
		s.log.Error("Failed to list posts", slog.String("error", err.Error()))
		return nil, 0, custom_errors.ErrDatabaseQuery
	}

	result := make([]*model.PostDetailed, 0, len(posts))
	for _, post := range posts {
		author, err := s.userRepo.GetByID(ctx, post.AuthorID)
		if err != nil {
			s.log.Error("Failed to get author during ListPosts",
				slog.String("error", err.Error()),
				slog.Int64("author_id", post.AuthorID))
			return nil, 0, err
		}
		result = append(result, &model.PostDetailed{Post: post, Author: author})
	}
	return result, total, nil
}

func (s *PostService) UpdatePost(ctx context.Context, userID, id int64, post *model.UpdatePostDTO) (result *model.PostDetailed, err error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.log.Debug("Transaction rollback after failed update", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()

	existingPost, err := postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for update", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for update", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if !ownership.IsOwner(existingPost.AuthorID, userID) {
		s.log.Debug("User is not author of post",
			slog.Int64("user_id", userID),
			slog.Int64("author_id", existingPost.AuthorID))
		return nil, custom_errors.ErrForbidden
	}

	if post.GroupID != nil {
		if _, err := tx.GroupRepository().GetByID(ctx, *post.GroupID); err != nil {
			if errors.Is(err, custom_errors.ErrGroupNotFound) {
				s.log.Debug("Group not found for post update", slog.Int64("group_id", *post.GroupID))
				return nil, custom_errors.ErrGroupNotFound
			}
			s.log.Error("Failed to check group for post update", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	updatedPost, err := postRepo.Update(ctx, id, post)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to update post", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	author, err := s.userRepo.GetByID(ctx, updatedPost.AuthorID)
	if err != nil {
		s.log.Error("Failed to get author after update", slog.String("error", err.Error()))
		return nil, err
	}

	return &model.PostDetailed{Post: updatedPost, Author: author}, nil
}

func (s *PostService) DeletePost(ctx context.Context, userID, id int64) (err error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.log.Debug("Transaction rollback after failed delete", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()

	post, err := postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for delete", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for delete", slog.String("error", err.Error()), slog.Int64("id", id))
		return custom_errors.ErrDatabaseQuery
	}
	if !ownership.IsOwner(post.AuthorID, userID) {
		s.log.Debug("User is not author of post",
			slog.Int64("user_id", userID),
			slog.Int64("author_id", post.AuthorID))
		return custom_errors.ErrForbidden
	}

	// Comments go with the post via ON DELETE CASCADE.
	if err = postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to delete post", slog.String("error", err.Error()), slog.Int64("id", id))
		return custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true
	return nil
}
