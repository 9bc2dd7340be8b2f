package delivery_http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"yatube-api/internal/auth"
	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	user_repository "yatube-api/internal/repository/user"
)

type AuthHandler struct {
	users    user_repository.Repository
	tokens   auth.TokenService
	verifier auth.PasswordVerifier
	validate *validator.Validate
	log      *logger.Logger
}

func NewAuthHandler(
	users user_repository.Repository,
	tokens auth.TokenService,
	verifier auth.PasswordVerifier,
	log *logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:    users,
		tokens:   tokens,
		verifier: verifier,
		validate: validator.New(),
		log:      log,
	}
}

// CreateToken exchanges username/password credentials for a token pair.
func (h *AuthHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
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

	user, err := h.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			RespondWithDetail(w, r, http.StatusUnauthorized, "No active account found with the given credentials.")
			return
		}
		h.log.Error("Failed to look up user for token create", slog.String("error", err.Error()))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	if err := h.verifier.Compare(user.PasswordHash, req.Password); err != nil {
		RespondWithDetail(w, r, http.StatusUnauthorized, "No active account found with the given credentials.")
		return
	}

	access, err := h.tokens.GenerateToken(r.Context(), user)
	if err != nil {
		h.log.Error("Failed to generate access token", slog.String("error", err.Error()), slog.Int64("user_id", user.ID))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}
	refresh, err := h.tokens.GenerateRefreshToken(r.Context(), user)
	if err != nil {
		h.log.Error("Failed to generate refresh token", slog.String("error", err.Error()), slog.Int64("user_id", user.ID))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TokenResponse{Access: access, Refresh: refresh})
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
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

	claims, err := h.tokens.ValidateRefreshToken(r.Context(), req.Refresh)
	if err != nil {
		switch {
		case errors.Is(err, custom_errors.ErrExpiredToken):
			RespondWithDetail(w, r, http.StatusUnauthorized, "Token has expired.")
		case errors.Is(err, custom_errors.ErrInvalidToken), errors.Is(err, custom_errors.ErrWrongTokenType):
			RespondWithDetail(w, r, http.StatusUnauthorized, "Token is invalid.")
		default:
			h.log.Error("Failed to validate refresh token", slog.String("error", err.Error()))
			RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		}
		return
	}

	user, err := h.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			RespondWithDetail(w, r, http.StatusUnauthorized, "Token is invalid.")
			return
		}
		h.log.Error("Failed to look up user for token refresh", slog.String("error", err.Error()))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	access, err := h.tokens.GenerateToken(r.Context(), user)
	if err != nil {
		h.log.Error("Failed to generate access token", slog.String("error", err.Error()), slog.Int64("user_id", user.ID))
		RespondWithDetail(w, r, http.StatusInternalServerError, "Internal server error.")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, AccessResponse{Access: access})
}
