package comment_service

import (
	"context"
	"errors"
	"log/slog"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/model"
	comment_repository "yatube-api/internal/repository/comment"
	"yatube-api/internal/repository/postgres"
	user_repository "yatube-api/internal/repository/user"
	"yatube-api/internal/service/ownership"
)

var _ Service = (*CommentService)(nil)

type CommentService struct {
	commentRepo comment_repository.Repository
	userRepo    user_repository.Repository
	uow         postgres.UnitOfWork
	log         *logger.Logger
}

func NewCommentService(
	commentRepo comment_repository.Repository,
	userRepo user_repository.Repository,
	uow postgres.UnitOfWork,
	log *logger.Logger,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		uow:         uow,
		log:         log,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, comment *model.CreateCommentDTO) (result *model.CommentDetailed, err error) {
	author, err := s.userRepo.GetByID(ctx, comment.AuthorID)
	if err != nil {
		s.log.Error("Failed to get author for comment create", slog.String("error", err.Error()))
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
				s.log.Debug("Transaction rollback after failed comment create", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	// The parent post comes from the URL path and must exist.
	if _, err := tx.PostRepository().GetByID(ctx, comment.PostID); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for comment create", slog.Int64("post_id", comment.PostID))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to check post for comment create", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	newComment := &model.Comment{
		AuthorID: comment.AuthorID,
		PostID:   comment.PostID,
		Text:     comment.Text,
	}
	createdComment, err := tx.CommentRepository().Create(ctx, newComment)
	if err != nil {
		s.log.Error("Failed to create comment", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return &model.CommentDetailed{Comment: createdComment, Author: author}, nil
}

func (s *CommentService) GetComment(ctx context.Context, postID, id int64) (*model.CommentDetailed, error) {
	comment, err := s.commentRepo.GetForPost(ctx, postID, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCommentNotFound) {
			s.log.Debug("Comment not found", slog.Int64("post_id", postID), slog.Int64("id", id))
			return nil, custom_errors.ErrCommentNotFound
		}
		s.log.Error("Failed to get comment", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}

	author, err := s.userRepo.GetByID(ctx, comment.AuthorID)
	if err != nil {
		s.log.Error("Failed to get comment author", slog.String("error", err.Error()))
		return nil, err
	}

	return &model.CommentDetailed{Comment: comment, Author: author}, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID int64) ([]*model.CommentDetailed, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		s.log.Error("Failed to list comments", slog.String("error", err.Error()), slog.Int64("post_id", postID))
		return nil, custom_errors.ErrDatabaseQuery
	}

	result := make([]*model.CommentDetailed, 0, len(comments))
	for _, comment := range comments {
		author, err := s.userRepo.GetByID(ctx, comment.AuthorID)
		if err != nil {
			s.log.Error("Failed to get author during ListComments",
				slog.String("error", err.Error()),
				slog.Int64("author_id", comment.AuthorID))
			return nil, err
		}
		result = append(result, &model.CommentDetailed{Comment: comment, Author: author})
	}
	return result, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, userID, postID, id int64, update *model.UpdateCommentDTO) (result *model.CommentDetailed, err error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.log.Debug("Transaction rollback after failed comment update", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	commentRepo := tx.CommentRepository()

	existingComment, err := commentRepo.GetForPost(ctx, postID, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCommentNotFound) {
			s.log.Debug("Comment not found for update", slog.Int64("post_id", postID), slog.Int64("id", id))
			return nil, custom_errors.ErrCommentNotFound
		}
		s.log.Error("Failed to get comment for update", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if !ownership.IsOwner(existingComment.AuthorID, userID) {
		s.log.Debug("User is not author of comment",
			slog.Int64("user_id", userID),
			slog.Int64("author_id", existingComment.AuthorID))
		return nil, custom_errors.ErrForbidden
	}

	updatedComment, err := commentRepo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCommentNotFound) {
			return nil, custom_errors.ErrCommentNotFound
		}
		s.log.Error("Failed to update comment", slog.String("error", err.Error()), slog.Int64("id", id))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	author, err := s.userRepo.GetByID(ctx, updatedComment.AuthorID)
	if err != nil {
		s.log.Error("Failed to get comment author after update", slog.String("error", err.Error()))
		return nil, err
	}

	return &model.CommentDetailed{Comment: updatedComment, Author: author}, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, userID, postID, id int64) (err error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.log.Debug("Transaction rollback after failed comment delete", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	commentRepo := tx.CommentRepository()

	comment, err := commentRepo.GetForPost(ctx, postID, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCommentNotFound) {
			s.log.Debug("Comment not found for delete", slog.Int64("post_id", postID), slog.Int64("id", id))
			return custom_errors.ErrCommentNotFound
		}
		s.log.Error("Failed to get comment for delete", slog.String("error", err.Error()), slog.Int64("id", id))
		return custom_errors.ErrDatabaseQuery
	}
	if !ownership.IsOwner(comment.AuthorID, userID) {
		s.log.Debug("User is not author of comment",
			slog.Int64("user_id", userID),
			slog.Int64("author_id", comment.AuthorID))
		return custom_errors.ErrForbidden
	}

	if err = commentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, custom_errors.ErrCommentNotFound) {
			return custom_errors.ErrCommentNotFound
		}
		s.log.Error("Failed to delete comment", slog.String("error", err.Error()), slog.Int64("id", id))
		return custom_errors.ErrDatabaseQuery
	}

	if err = tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true
	return nil
}
