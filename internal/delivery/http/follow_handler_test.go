package delivery_http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	delivery_http "yatube-api/internal/delivery/http"
	"yatube-api/internal/model"
)

func TestCreateFollowEndpoint(t *testing.T) {
	t.Run("creates follow and renders usernames", func(t *testing.T) {
		api := newTestAPI(t)
		alice := api.seedUser(t, "alice")
		api.seedUser(t, "bob")

		resp := api.do(t, http.MethodPost, "/api/v1/follow/", api.tokenFor(t, alice),
			map[string]string{"following": "bob"})
		require.Equal(t, http.StatusCreated, resp.Code)

		var body delivery_http.FollowResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "alice", body.User)
		assert.Equal(t, "bob", body.Following)
	})

	t.Run("missing following field returns field-keyed 400", func(t *testing.T) {
		api := newTestAPI(t)
		alice := api.seedUser(t, "alice")

		resp := api.do(t, http.MethodPost, "/api/v1/follow/", api.tokenFor(t, alice),
			map[string]string{})
		require.Equal(t, http.StatusBadRequest, resp.Code)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "This field is required.", body["following"])
	})

	t.Run("unknown user message names the username", func(t *testing.T) {
		api := newTestAPI(t)
		alice := api.seedUser(t, "alice")

		resp := api.do(t, http.MethodPost, "/api/v1/follow/", api.tokenFor(t, alice),
			map[string]string{"following": "ghost"})
		require.Equal(t, http.StatusBadRequest, resp.Code)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "User 'ghost' does not exist.", body["detail"])
	})

	t.Run("self-follow is rejected", func(t *testing.T) {
		api := newTestAPI(t)
		alice := api.seedUser(t, "alice")

		resp := api.do(t, http.MethodPost, "/api/v1/follow/", api.tokenFor(t, alice),
			map[string]string{"following": "alice"})
		require.Equal(t, http.StatusBadRequest, resp.Code)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "You cannot follow yourself.", body["detail"])
	})

	t.Run("duplicate follow is rejected", func(t *testing.T) {
		api := newTestAPI(t)
		alice := api.seedUser(t, "alice")
		api.seedUser(t, "bob")

		token := api.tokenFor(t, alice)
		resp := api.do(t, http.MethodPost, "/api/v1/follow/", token, map[string]string{"following": "bob"})
		require.Equal(t, http.StatusCreated, resp.Code)

		resp = api.do(t, http.MethodPost, "/api/v1/follow/", token, map[string]string{"following": "bob"})
		require.Equal(t, http.StatusBadRequest, resp.Code)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "You are already following this user.", body["detail"])
	})

	t.Run("valid token for a removed account returns 401", func(t *testing.T) {
		api := newTestAPI(t)
		api.seedUser(t, "bob")

		ghost := &model.User{ID: 999, Username: "ghost"}
		resp := api.do(t, http.MethodPost, "/api/v1/follow/", api.tokenFor(t, ghost),
			map[string]string{"following": "bob"})
		require.Equal(t, http.StatusUnauthorized, resp.Code)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "No active account found with the given credentials.", body["detail"])
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		api := newTestAPI(t)
		api.seedUser(t, "bob")

		resp := api.do(t, http.MethodPost, "/api/v1/follow/", "", map[string]string{"following": "bob"})
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestListFollowsEndpoint(t *testing.T) {
	api := newTestAPI(t)
	alice := api.seedUser(t, "alice")
	bob := api.seedUser(t, "bob")
	api.seedUser(t, "bobby")
	api.seedUser(t, "carol")

	aliceToken := api.tokenFor(t, alice)
	for _, name := range []string{"bob", "bobby", "carol"} {
		resp := api.do(t, http.MethodPost, "/api/v1/follow/", aliceToken, map[string]string{"following": name})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	t.Run("lists only the caller's follows", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/api/v1/follow/", api.tokenFor(t, bob), nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var body []delivery_http.FollowResponse
		decodeBody(t, resp, &body)
		assert.Empty(t, body)
	})

	t.Run("search filters by username substring", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/api/v1/follow/?search=bob", aliceToken, nil)
		require.Equal(t, http.StatusOK, resp.Code)

		var body []delivery_http.FollowResponse
		decodeBody(t, resp, &body)
		require.Len(t, body, 2)
		assert.Equal(t, "bob", body[0].Following)
		assert.Equal(t, "bobby", body[1].Following)
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		resp := api.do(t, http.MethodGet, "/api/v1/follow/", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}
