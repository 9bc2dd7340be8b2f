package delivery_http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"

	"yatube-api/internal/delivery/http/middleware"
	"yatube-api/internal/metrics"
)

// NewRouter assembles the API surface. Reads on posts, comments and
// groups are public; every write and the follow endpoints require a
// bearer token.
func NewRouter(
	posts *PostHandler,
	comments *CommentHandler,
	groups *GroupHandler,
	follows *FollowHandler,
	authHandler *AuthHandler,
	authMW *middleware.AuthMiddleware,
	metricsProvider metrics.MetricsProvider,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chi_middleware.RequestID)
	r.Use(chi_middleware.RealIP)
	r.Use(chi_middleware.Recoverer)
	r.Use(middleware.Metrics(metricsProvider))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		RespondWithJSON(w, req, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/jwt/create/", authHandler.CreateToken)
		r.Post("/jwt/refresh/", authHandler.RefreshToken)

		r.Get("/posts/", posts.List)
		r.Get("/posts/{post_id}/", posts.Get)
		r.Get("/posts/{post_id}/comments/", comments.List)
		r.Get("/posts/{post_id}/comments/{id}/", comments.Get)
		r.Get("/groups/", groups.List)
		r.Get("/groups/{id}/", groups.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMW.RequireAuth)

			r.Post("/posts/", posts.Create)
			r.Put("/posts/{post_id}/", posts.Update)
			r.Patch("/posts/{post_id}/", posts.Update)
			r.Delete("/posts/{post_id}/", posts.Delete)

			r.Post("/posts/{post_id}/comments/", comments.Create)
			r.Put("/posts/{post_id}/comments/{id}/", comments.Update)
			r.Patch("/posts/{post_id}/comments/{id}/", comments.Update)
			r.Delete("/posts/{post_id}/comments/{id}/", comments.Delete)

			r.Get("/follow/", follows.List)
			r.Post("/follow/", follows.Create)
		})
	})

	return r
}
