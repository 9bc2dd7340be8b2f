package post_service_test

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
	post_service "yatube-api/internal/service/post"
)

type postServiceFixture struct {
	service *post_service.PostService
	users   *user_memory.UserRepository
	groups  *group_memory.GroupRepository
	posts   *post_memory.PostRepository
}

func newPostServiceFixture(t *testing.T) *postServiceFixture {
	t.Helper()
	log := logger.New("test")

	users := user_memory.NewUserRepository(log)
	groups := group_memory.NewGroupRepository(log)
	posts := post_memory.NewPostRepository(log)
	comments := comment_memory.NewCommentRepository(log)
	follows := follow_memory.NewFollowRepository(log)
	uow := memory.NewUnitOfWork(posts, comments, groups, follows)

	return &postServiceFixture{
		service: post_service.NewPostService(posts, users, uow, log),
		users:   users,
		groups:  groups,
		posts:   posts,
	}
}

func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("creates post without group", func(t *testing.T) {
		f := newPostServiceFixture(t)
		author := f.users.Add(&model.User{Username: "leo"})

		created, err := f.service.CreatePost(ctx, &model.CreatePostDTO{
			AuthorID: author.ID,
			Text:     "first post",
		})
		require.NoError(t, err)
		assert.Equal(t, "first post", created.Post.Text)
		assert.Equal(t, "leo", created.Author.Username)
		assert.Nil(t, created.Post.GroupID)
	})

	t.Run("creates post in existing group", func(t *testing.T) {
		f := newPostServiceFixture(t)
		author := f.users.Add(&model.User{Username: "leo"})
		group := f.groups.Add(&model.Group{Title: "Cats", Slug: "cats"})

		created, err := f.service.CreatePost(ctx, &model.CreatePostDTO{
			AuthorID: author.ID,
			Text:     "group post",
			GroupID:  &group.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, created.Post.GroupID)
		assert.Equal(t, group.ID, *created.Post.GroupID)
	})

	t.Run("rejects unknown group", func(t *testing.T) {
		f := newPostServiceFixture(t)
		author := f.users.Add(&model.User{Username: "leo"})

		_, err := f.service.CreatePost(ctx, &model.CreatePostDTO{
			AuthorID: author.ID,
			Text:     "bad group",
			GroupID:  int64Ptr(999),
		})
		assert.ErrorIs(t, err, custom_errors.ErrGroupNotFound)
	})
}

func TestGetPostByID(t *testing.T) {
	ctx := context.Background()
	f := newPostServiceFixture(t)
	author := f.users.Add(&model.User{Username: "leo"})

	created, err := f.service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: author.ID, Text: "hello"})
	require.NoError(t, err)

	t.Run("returns existing post with author", func(t *testing.T) {
		got, err := f.service.GetPostByID(ctx, created.Post.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Post.Text)
		assert.Equal(t, "leo", got.Author.Username)
	})

	t.Run("unknown id yields not found", func(t *testing.T) {
		_, err := f.service.GetPostByID(ctx, 404)
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
	})
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()
	f := newPostServiceFixture(t)
	author := f.users.Add(&model.User{Username: "leo"})

	for i := 0; i < 5; i++ {
		_, err := f.service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: author.ID, Text: "post"})
		require.NoError(t, err)
	}

	t.Run("unbounded listing returns everything", func(t *testing.T) {
		posts, total, err := f.service.ListPosts(ctx, &model.ListFilters{})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Len(t, posts, 5)
	})

	t.Run("window keeps the unfiltered total", func(t *testing.T) {
		limit, offset := 2, 2
		posts, total, err := f.service.ListPosts(ctx, &model.ListFilters{Limit: &limit, Offset: &offset})
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Len(t, posts, 2)
	})
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		caller   string
		update   *model.UpdatePostDTO
		wantErr  error
		wantText string
	}{
		{
			name:     "author updates own post",
			caller:   "owner",
			update:   &model.UpdatePostDTO{Text: strPtr("edited")},
			wantText: "edited",
		},
		{
			name:    "other user is rejected",
			caller:  "intruder",
			update:  &model.UpdatePostDTO{Text: strPtr("hijacked")},
			wantErr: custom_errors.ErrForbidden,
		},
		{
			name:    "unknown group is rejected",
			caller:  "owner",
			update:  &model.UpdatePostDTO{GroupID: int64Ptr(999)},
			wantErr: custom_errors.ErrGroupNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPostServiceFixture(t)
			owner := f.users.Add(&model.User{Username: "owner"})
			intruder := f.users.Add(&model.User{Username: "intruder"})

			created, err := f.service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: owner.ID, Text: "original"})
			require.NoError(t, err)

			callerID := owner.ID
			if tt.caller == "intruder" {
				callerID = intruder.ID
			}

			updated, err := f.service.UpdatePost(ctx, callerID, created.Post.ID, tt.update)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, updated.Post.Text)
		})
	}

	t.Run("unknown post yields not found", func(t *testing.T) {
		f := newPostServiceFixture(t)
		owner := f.users.Add(&model.User{Username: "owner"})

		_, err := f.service.UpdatePost(ctx, owner.ID, 404, &model.UpdatePostDTO{Text: strPtr("x")})
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
	})
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("author deletes own post", func(t *testing.T) {
		f := newPostServiceFixture(t)
		owner := f.users.Add(&model.User{Username: "owner"})

		created, err := f.service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: owner.ID, Text: "bye"})
		require.NoError(t, err)

		require.NoError(t, f.service.DeletePost(ctx, owner.ID, created.Post.ID))

		_, err = f.service.GetPostByID(ctx, created.Post.ID)
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
	})

	t.Run("other user is rejected and post survives", func(t *testing.T) {
		f := newPostServiceFixture(t)
		owner := f.users.Add(&model.User{Username: "owner"})
		intruder := f.users.Add(&model.User{Username: "intruder"})

		created, err := f.service.CreatePost(ctx, &model.CreatePostDTO{AuthorID: owner.ID, Text: "keep"})
		require.NoError(t, err)

		err = f.service.DeletePost(ctx, intruder.ID, created.Post.ID)
		assert.ErrorIs(t, err, custom_errors.ErrForbidden)

		got, err := f.service.GetPostByID(ctx, created.Post.ID)
		require.NoError(t, err)
		assert.Equal(t, "keep", got.Post.Text)
	})
}
