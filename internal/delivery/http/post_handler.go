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
	post_service "yatube-api/internal/service/post"
)

type PostHandler struct {
	posts    post_service.Service
	validate *validator.Validate
	log      *logger.Logger
}

func NewPostHandler(posts post_service.Service, log *logger.Logger) *PostHandler {
	return &PostHandler{
		posts:    posts,
		validate: validator.New(),
		log:      log,
	}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parsePageParams(r)
	if err != nil {
		RespondWithDetail(w, r, http.StatusBadRequest, "Invalid page.")
		return
	}

	posts, total, err := h.posts.ListPosts(r.Context(), params.filters())
	if err != nil {
		h.log.Error("Failed to list posts", slog.String("error", err.Error()))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	results := newPostResponseList(posts)
	if !params.paged {
		RespondWithJSON(w, r, http.StatusOK, results)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, newPageEnvelope(r, params, total, results))
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}

	post, err := h.posts.GetPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			RespondWithDetail(w, r, http.StatusNotFound, "Post not found.")
			return
		}
		h.log.Error("Failed to get post", slog.String("error", err.Error()), slog.Int64("id", id))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newPostResponse(post))
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r)
	if !ok {
		RespondWithDetail(w, r, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req PostRequest
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

	post, err := h.posts.CreatePost(r.Context(), &model.CreatePostDTO{
		AuthorID: caller.UserID,
		Text:     req.Text,
		Image:    req.Image,
		GroupID:  req.Group,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrGroupNotFound) {
			RespondWithField(w, r, http.StatusBadRequest, "group", "Group does not exist.")
			return
		}
		h.log.Error("Failed to create post", slog.String("error", err.Error()))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, newPostResponse(post))
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r)
	if !ok {
		RespondWithDetail(w, r, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}
	id, ok := postID(w, r)
	if !ok {
		return
	}

	var req PostUpdateRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithDetail(w, r, http.StatusBadRequest, "Malformed request body.")
		return
	}

	post, err := h.posts.UpdatePost(r.Context(), caller.UserID, id, &model.UpdatePostDTO{
		Text:    req.Text,
		Image:   req.Image,
		GroupID: req.Group,
	})
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			RespondWithDetail(w, r, http.StatusNotFound, "Post not found.")
		case errors.Is(err, custom_errors.ErrForbidden):
			RespondWithDetail(w, r, http.StatusForbidden, "You cannot update another author's post.")
		case errors.Is(err, custom_errors.ErrGroupNotFound):
			RespondWithField(w, r, http.StatusBadRequest, "group", "Group does not exist.")
		default:
			h.log.Error("Failed to update post", slog.String("error", err.Error()), slog.Int64("id", id))
			RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		}
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newPostResponse(post))
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r)
	if !ok {
		RespondWithDetail(w, r, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}
	id, ok := postID(w, r)
	if !ok {
		return
	}

	if err := h.posts.DeletePost(r.Context(), caller.UserID, id); err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrPostNotFound):
			RespondWithDetail(w, r, http.StatusNotFound, "Post not found.")
		case errors.Is(err, custom_errors.ErrForbidden):
			RespondWithDetail(w, r, http.StatusForbidden, "You cannot delete another author's post.")
		default:
			h.log.Error("Failed to delete post", slog.String("error", err.Error()), slog.Int64("id", id))
			RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// postID parses the {post_id} URL segment, answering 404 for anything
// that cannot name an existing post.
func postID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "post_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		RespondWithDetail(w, r, http.StatusNotFound, "Post not found.")
		return 0, false
	}
	return id, true
}
