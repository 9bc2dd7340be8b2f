package delivery_http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/delivery/http/middleware"
	"yatube-api/internal/logger"
	follow_service "yatube-api/internal/service/follow"
)

type FollowHandler struct {
	follows  follow_service.Service
	validate *validator.Validate
	log      *logger.Logger
}

func NewFollowHandler(follows follow_service.Service, log *logger.Logger) *FollowHandler {
	return &FollowHandler{
		follows:  follows,
		validate: validator.New(),
		log:      log,
	}
}

// List returns the caller's follows. The search query parameter narrows
// the listing by a case-insensitive substring match on the followed
// username.
func (h *FollowHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r)
	if !ok {
		RespondWithDetail(w, r, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	follows, err := h.follows.ListFollows(r.Context(), caller.UserID, r.URL.Query().Get("search"))
	if err != nil {
		if errors.Is(err, custom_errors.ErrInvalidCredentials) {
			RespondWithDetail(w, r, http.StatusUnauthorized, "No active account found with the given credentials.")
			return
		}
		h.log.Error("Failed to list follows", slog.String("error", err.Error()), slog.Int64("user_id", caller.UserID))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newFollowResponseList(follows))
}

func (h *FollowHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.Caller(r)
	if !ok {
		RespondWithDetail(w, r, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	var req FollowRequest
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

	follow, err := h.follows.CreateFollow(r.Context(), caller.UserID, req.Following)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrUserNotFound):
			RespondWithDetail(w, r, http.StatusBadRequest,
				fmt.Sprintf("User '%s' does not exist.", req.Following))
		case errors.Is(err, custom_errors.ErrSelfFollow):
			RespondWithDetail(w, r, http.StatusBadRequest, "You cannot follow yourself.")
		case errors.Is(err, custom_errors.ErrAlreadyFollowing):
			RespondWithDetail(w, r, http.StatusBadRequest, "You are already following this user.")
		case errors.Is(err, custom_errors.ErrInvalidCredentials):
			RespondWithDetail(w, r, http.StatusUnauthorized, "No active account found with the given credentials.")
		default:
			h.log.Error("Failed to create follow", slog.String("error", err.Error()), slog.Int64("user_id", caller.UserID))
			RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		}
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, newFollowResponse(follow))
}
