package delivery_http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/delivery/http/middleware"
	"yatube-api/internal/logger"
	"yatube-api/internal/model"
	comment_service "yatube-api/internal/service/comment"
)

type CommentHandler struct {
	comments comment_service.Service
	validate *validator.Validate
	log      *logger.Logger
}

func NewCommentHandler(comments comment_service.Service, log *logger.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		validate: validator.New(),
		log:      log,
	}
}

// List returns every comment on a post. Comment listings are never
// paginated, whatever query parameters arrive.
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	postID, ok := postID(w, r)
	if !ok {
		return
	}

	comments, err := h.comments.ListComments(r.Context(), postID)
	if err != nil {
		h.log.Error("Failed to list comments", slog.String("error", err.Error()), slog.Int64("post_id", postID))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newCommentResponseList(comments))
}

func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, ok := postID(w, r)
	if !ok {
		return
	}
	id, ok := commentID(w, r)
	if !ok {
		return
	}

	comment, err := h.comments.GetComment(r.Context(), postID, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCommentNotFound) {
			RespondWithDetail(w, r, http.StatusNotFound, "Comment not found.")
			return
		}
		h.log.Error("Failed to get comment", slog.String("error", err.Error()), slog.Int64("id", id))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newCommentResponse(comment))
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r)
	if !ok {
		RespondWithDetail(w, r, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}
	postID, ok := postID(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithDetail(w, r, http.StatusBadRequest, "Malformed request body.")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		if field, ok := firstInvalidField(err); ok {
			RespondWithField(w, r, http.StatusBadRequest, field, "This field is required.")
			return
		}
		RespondWithDetail(w, r, http.StatusBadRequest, "Invalid request.")
		return
	}

	comment, err := h.comments.CreateComment(r.Context(), &model.CreateCommentDTO{
		AuthorID: caller.UserID,
		PostID:   postID,
		Text:     req.Text,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			RespondWithDetail(w, r, http.StatusNotFound, "Post not found.")
			return
		}
		h.log.Error("Failed to create comment", slog.String("error", err.Error()), slog.Int64("post_id", postID))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, newCommentResponse(comment))
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r)
	if !ok {
		RespondWithDetail(w, r, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}
	postID, ok := postID(w, r)
	if !ok {
		return
	}
	id, ok := commentID(w, r)
	if !ok {
		return
	}

	var req CommentUpdateRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithDetail(w, r, http.StatusBadRequest, "Malformed request body.")
		return
	}

	comment, err := h.comments.UpdateComment(r.Context(), caller.UserID, postID, id, &model.UpdateCommentDTO{
		Text: req.Text,
	})
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrCommentNotFound):
			RespondWithDetail(w, r, http.StatusNotFound, "Comment not found.")
		case errors.Is(err, custom_errors.ErrForbidden):
			RespondWithDetail(w, r, http.StatusForbidden, "You cannot update another author's comment.")
		default:
			h.log.Error("Failed to update comment", slog.String("error", err.Error()), slog.Int64("id", id))
			RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		}
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newCommentResponse(comment))
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r)
	if !ok {
		RespondWithDetail(w, r, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}
	postID, ok := postID(w, r)
	if !ok {
		return
	}
	id, ok := commentID(w, r)
	if !ok {
		return
	}

	if err := h.comments.DeleteComment(r.Context(), caller.UserID, postID, id); err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrCommentNotFound):
			RespondWithDetail(w, r, http.StatusNotFound, "Comment not found.")
		case errors.Is(err, custom_errors.ErrForbidden):
			RespondWithDetail(w, r, http.StatusForbidden, "You cannot delete another author's comment.")
		default:
			h.log.Error("Failed to delete comment", slog.String("error", err.Error()), slog.Int64("id", id))
			RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func commentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		RespondWithDetail(w, r, http.StatusNotFound, "Comment not found.")
		return 0, false
	}
	return id, true
}
