package follow_service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube-api/internal/custom_errors"
	"yatube-api/internal/logger"
	"yatube-api/internal/model"
	comment_memory "yatube-api/internal/repository/comment/memory"
	follow_memory "yatube-api/internal/repository/follow/memory"
	group_memory "yatube-api/internal/repository/group/memory"
	"yatube-api/internal/repository/memory"
	post_memory "yatube-api/internal/repository/post/memory"
	user_memory "yatube-api/internal/repository/user/memory"
	follow_service "yatube-api/internal/service/follow"
)

type followServiceFixture struct {
	service *follow_service.FollowService
	users   *user_memory.UserRepository
}

func newFollowServiceFixture(t *testing.T) *followServiceFixture {
	t.Helper()
	log := logger.New("test")

	users := user_memory.NewUserRepository(log)
	groups := group_memory.NewGroupRepository(log)
	posts := post_memory.NewPostRepository(log)
	comments := comment_memory.NewCommentRepository(log)
	follows := follow_memory.NewFollowRepository(log)
	uow := memory.NewUnitOfWork(posts, comments, groups, follows)

	return &followServiceFixture{
		service: follow_service.NewFollowService(follows, users, uow, log),
		users:   users,
	}
}

func TestCreateFollow(t *testing.T) {
	ctx := context.Background()

	t.Run("creates follow edge", func(t *testing.T) {
		f := newFollowServiceFixture(t)
		alice := f.users.Add(&model.User{Username: "alice"})
		bob := f.users.Add(&model.User{Username: "bob"})

		created, err := f.service.CreateFollow(ctx, alice.ID, "bob")
		require.NoError(t, err)
		assert.Equal(t, "alice", created.User.Username)
		assert.Equal(t, "bob", created.Following.Username)
		assert.Equal(t, bob.ID, created.Follow.FollowingID)
	})

	t.Run("unknown target wins over every other rule", func(t *testing.T) {
		f := newFollowServiceFixture(t)
		alice := f.users.Add(&model.User{Username: "alice"})

		_, err := f.service.CreateFollow(ctx, alice.ID, "nobody")
		assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
	})

	t.Run("self-follow is rejected", func(t *testing.T) {
		f := newFollowServiceFixture(t)
		alice := f.users.Add(&model.User{Username: "alice"})

		_, err := f.service.CreateFollow(ctx, alice.ID, "alice")
		assert.ErrorIs(t, err, custom_errors.ErrSelfFollow)
	})

	t.Run("missing caller account maps to invalid credentials", func(t *testing.T) {
		f := newFollowServiceFixture(t)
		f.users.Add(&model.User{Username: "bob"})

		_, err := f.service.CreateFollow(ctx, 999, "bob")
		assert.ErrorIs(t, err, custom_errors.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, custom_errors.ErrUserNotFound)
	})

	t.Run("duplicate follow is rejected", func(t *testing.T) {
		f := newFollowServiceFixture(t)
		alice := f.users.Add(&model.User{Username: "alice"})
		f.users.Add(&model.User{Username: "bob"})

		_, err := f.service.CreateFollow(ctx, alice.ID, "bob")
		require.NoError(t, err)

		_, err = f.service.CreateFollow(ctx, alice.ID, "bob")
		assert.ErrorIs(t, err, custom_errors.ErrAlreadyFollowing)
	})
}

func TestListFollows(t *testing.T) {
	ctx := context.Background()
	f := newFollowServiceFixture(t)
	alice := f.users.Add(&model.User{Username: "alice"})
	f.users.Add(&model.User{Username: "bob"})
	f.users.Add(&model.User{Username: "bobby"})
	f.users.Add(&model.User{Username: "carol"})

	for _, name := range []string{"bob", "bobby", "carol"} {
		_, err := f.service.CreateFollow(ctx, alice.ID, name)
		require.NoError(t, err)
	}

	t.Run("lists only the caller's follows", func(t *testing.T) {
		follows, err := f.service.ListFollows(ctx, alice.ID, "")
		require.NoError(t, err)
		assert.Len(t, follows, 3)
		for _, fd := range follows {
			assert.Equal(t, "alice", fd.User.Username)
		}
	})

	t.Run("search narrows by substring, ignoring case", func(t *testing.T) {
		follows, err := f.service.ListFollows(ctx, alice.ID, "BOB")
		require.NoError(t, err)
		require.Len(t, follows, 2)
		assert.Equal(t, "bob", follows[0].Following.Username)
		assert.Equal(t, "bobby", follows[1].Following.Username)
	})

	t.Run("no matches yields empty list", func(t *testing.T) {
		follows, err := f.service.ListFollows(ctx, alice.ID, "zed")
		require.NoError(t, err)
		assert.Empty(t, follows)
	})

	t.Run("missing caller account maps to invalid credentials", func(t *testing.T) {
		_, err := f.service.ListFollows(ctx, 999, "")
		assert.ErrorIs(t, err, custom_errors.ErrInvalidCredentials)
	})
}
