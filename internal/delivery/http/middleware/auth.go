package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"yatube-api/internal/auth"
	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
)

type contextKey string

const callerContextKey contextKey = "caller"

// AuthMiddleware validates bearer tokens and stores the caller identity
// in the request context for handlers behind it.
type AuthMiddleware struct {
	tokens auth.TokenService
	log    *logger.Logger
}

func NewAuthMiddleware(tokens auth.TokenService, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, log: log}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondDetail(w, http.StatusUnauthorized, "Invalid authorization header format.")
			return
		}

		claims, err := m.tokens.ValidateToken(r.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, custom_errors.ErrExpiredToken):
				respondDetail(w, http.StatusUnauthorized, "Token has expired.")
			case errors.Is(err, custom_errors.ErrInvalidToken), errors.Is(err, custom_errors.ErrWrongTokenType):
				respondDetail(w, http.StatusUnauthorized, "Token is invalid.")
			default:
				m.log.Error("Failed to validate token", slog.String("error", err.Error()))
				respondDetail(w, http.StatusInternalServerError, "Authentication error.")
			}
			return
		}

		ctx := context.WithValue(r.Context(), callerContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Caller extracts the authenticated identity stored by RequireAuth.
func Caller(r *http.Request) (*auth.Claims, bool) {
	claims, ok := r.Context().Value(callerContextKey).(*auth.Claims)
	return claims, ok
}

// respondDetail mirrors the delivery package's detail-keyed error body.
// The middleware package cannot import it without a cycle.
func respondDetail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": message})
}
