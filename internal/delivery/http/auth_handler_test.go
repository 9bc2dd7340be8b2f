package delivery_http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube-api/internal/auth"
	delivery_http "yatube-api/internal/delivery/http"
	"yatube-api/internal/model"
)

func seedCredentials(t *testing.T, api *testAPI, username, password string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return api.users.Add(&model.User{Username: username, PasswordHash: hash})
}

func TestCreateTokenEndpoint(t *testing.T) {
	t.Run("valid credentials return a token pair", func(t *testing.T) {
		api := newTestAPI(t)
		seedCredentials(t, api, "leo", "correct horse")

		resp := api.do(t, http.MethodPost, "/api/v1/jwt/create/", "",
			map[string]string{"username": "leo", "password": "correct horse"})
		require.Equal(t, http.StatusOK, resp.Code)

		var body delivery_http.TokenResponse
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Access)
		assert.NotEmpty(t, body.Refresh)

		// The access token must be accepted by a protected endpoint.
		postResp := api.do(t, http.MethodPost, "/api/v1/posts/", body.Access,
			map[string]string{"text": "via login"})
		assert.Equal(t, http.StatusCreated, postResp.Code)
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		api := newTestAPI(t)
		seedCredentials(t, api, "leo", "correct horse")

		resp := api.do(t, http.MethodPost, "/api/v1/jwt/create/", "",
			map[string]string{"username": "leo", "password": "battery staple"})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("unknown username returns 401", func(t *testing.T) {
		api := newTestAPI(t)

		resp := api.do(t, http.MethodPost, "/api/v1/jwt/create/", "",
			map[string]string{"username": "ghost", "password": "whatever"})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("missing password returns field-keyed 400", func(t *testing.T) {
		api := newTestAPI(t)

		resp := api.do(t, http.MethodPost, "/api/v1/jwt/create/", "",
			map[string]string{"username": "leo"})
		require.Equal(t, http.StatusBadRequest, resp.Code)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "This field is required.", body["password"])
	})
}

func TestRefreshTokenEndpoint(t *testing.T) {
	t.Run("refresh token yields a fresh access token", func(t *testing.T) {
		api := newTestAPI(t)
		seedCredentials(t, api, "leo", "correct horse")

		resp := api.do(t, http.MethodPost, "/api/v1/jwt/create/", "",
			map[string]string{"username": "leo", "password": "correct horse"})
		require.Equal(t, http.StatusOK, resp.Code)

		var pair delivery_http.TokenResponse
		decodeBody(t, resp, &pair)

		resp = api.do(t, http.MethodPost, "/api/v1/jwt/refresh/", "",
			map[string]string{"refresh": pair.Refresh})
		require.Equal(t, http.StatusOK, resp.Code)

		var body delivery_http.AccessResponse
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body.Access)
	})

	t.Run("access token is rejected as refresh token", func(t *testing.T) {
		api := newTestAPI(t)
		seedCredentials(t, api, "leo", "correct horse")

		resp := api.do(t, http.MethodPost, "/api/v1/jwt/create/", "",
			map[string]string{"username": "leo", "password": "correct horse"})
		require.Equal(t, http.StatusOK, resp.Code)

		var pair delivery_http.TokenResponse
		decodeBody(t, resp, &pair)

		resp = api.do(t, http.MethodPost, "/api/v1/jwt/refresh/", "",
			map[string]string{"refresh": pair.Access})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		api := newTestAPI(t)

		resp := api.do(t, http.MethodPost, "/api/v1/jwt/refresh/", "",
			map[string]string{"refresh": "not-a-token"})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}
