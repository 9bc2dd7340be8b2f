package delivery_http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"yatube-api/internal/auth"
	"yatube-api/internal/config"
	delivery_http "yatube-api/internal/delivery/http"
	"yatube-api/internal/delivery/http/middleware"
	"yatube-api/internal/logger"
	prometheus_metrics "yatube-api/internal/metrics/prometheus"
	"yatube-api/internal/model"
	comment_memory "yatube-api/internal/repository/comment/memory"
	follow_memory "yatube-api/internal/repository/follow/memory"
	group_memory "yatube-api/internal/repository/group/memory"
	"yatube-api/internal/repository/memory"
	post_memory "yatube-api/internal/repository/post/memory"
	user_memory "yatube-api/internal/repository/user/memory"
	comment_service "yatube-api/internal/service/comment"
	follow_service "yatube-api/internal/service/follow"
	group_service "yatube-api/internal/service/group"
	post_service "yatube-api/internal/service/post"
)

// testAPI wires the full router over the in-memory repositories so
// handler tests exercise routing, auth and serialization together.
type testAPI struct {
	handler http.Handler
	users   *user_memory.UserRepository
	groups  *group_memory.GroupRepository
	posts   *post_memory.PostRepository
	tokens  auth.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := logger.New("test")

	users := user_memory.NewUserRepository(log)
	groups := group_memory.NewGroupRepository(log)
	posts := post_memory.NewPostRepository(log)
	comments := comment_memory.NewCommentRepository(log)
	follows := follow_memory.NewFollowRepository(log)
	uow := memory.NewUnitOfWork(posts, comments, groups, follows)

	tokens, err := auth.NewTokenService(config.Auth{
		JWTSecret:              "test-secret-key-0123456789abcdefghij",
		AccessTokenTTLMinutes:  60,
		RefreshTokenTTLMinutes: 60 * 24,
	})
	require.NoError(t, err)

	postSvc := post_service.NewPostService(posts, users, uow, log)
	commentSvc := comment_service.NewCommentService(comments, users, uow, log)
	groupSvc := group_service.NewGroupService(groups, log)
	followSvc := follow_service.NewFollowService(follows, users, uow, log)

	handler := delivery_http.NewRouter(
		delivery_http.NewPostHandler(postSvc, log),
		delivery_http.NewCommentHandler(commentSvc, log),
		delivery_http.NewGroupHandler(groupSvc, log),
		delivery_http.NewFollowHandler(followSvc, log),
		delivery_http.NewAuthHandler(users, tokens, auth.NewBcryptVerifier(), log),
		middleware.NewAuthMiddleware(tokens, log),
		prometheus_metrics.NewPrometheusMetricsProvider(),
	)

	return &testAPI{
		handler: handler,
		users:   users,
		groups:  groups,
		posts:   posts,
		tokens:  tokens,
	}
}

func (a *testAPI) seedUser(t *testing.T, username string) *model.User {
	t.Helper()
	return a.users.Add(&model.User{Username: username})
}

func (a *testAPI) tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := a.tokens.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	return token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}
