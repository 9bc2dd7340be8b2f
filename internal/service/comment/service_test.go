package comment_service_test

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
	comment_service "yatube-api/internal/service/comment"
)

type commentServiceFixture struct {
	service *comment_service.CommentService
	users   *user_memory.UserRepository
	posts   *post_memory.PostRepository
}

func newCommentServiceFixture(t *testing.T) *commentServiceFixture {
	t.Helper()
	log := logger.New("test")

	users := user_memory.NewUserRepository(log)
	groups := group_memory.NewGroupRepository(log)
	posts := post_memory.NewPostRepository(log)
	comments := comment_memory.NewCommentRepository(log)
	follows := follow_memory.NewFollowRepository(log)
	uow := memory.NewUnitOfWork(posts, comments, groups, follows)

	return &commentServiceFixture{
		service: comment_service.NewCommentService(comments, users, uow, log),
		users:   users,
		posts:   posts,
	}
}

func (f *commentServiceFixture) seedPost(t *testing.T, authorID int64) *model.Post {
	t.Helper()
	post, err := f.posts.Create(context.Background(), &model.Post{AuthorID: authorID, Text: "a post"})
	require.NoError(t, err)
	return post
}

func strPtr(s string) *string { return &s }

func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates comment on existing post", func(t *testing.T) {
		f := newCommentServiceFixture(t)
		author := f.users.Add(&model.User{Username: "leo"})
		post := f.seedPost(t, author.ID)

		created, err := f.service.CreateComment(ctx, &model.CreateCommentDTO{
			AuthorID: author.ID,
			PostID:   post.ID,
			Text:     "nice post",
		})
		require.NoError(t, err)
		assert.Equal(t, "nice post", created.Comment.Text)
		assert.Equal(t, post.ID, created.Comment.PostID)
		assert.Equal(t, "leo", created.Author.Username)
	})

	t.Run("rejects comment on missing post", func(t *testing.T) {
		f := newCommentServiceFixture(t)
		author := f.users.Add(&model.User{Username: "leo"})

		_, err := f.service.CreateComment(ctx, &model.CreateCommentDTO{
			AuthorID: author.ID,
			PostID:   404,
			Text:     "into the void",
		})
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
	})
}

func TestGetComment(t *testing.T) {
	ctx := context.Background()
	f := newCommentServiceFixture(t)
	author := f.users.Add(&model.User{Username: "leo"})
	post := f.seedPost(t, author.ID)
	otherPost := f.seedPost(t, author.ID)

	created, err := f.service.CreateComment(ctx, &model.CreateCommentDTO{
		AuthorID: author.ID, PostID: post.ID, Text: "hi",
	})
	require.NoError(t, err)

	t.Run("finds comment through its own post", func(t *testing.T) {
		got, err := f.service.GetComment(ctx, post.ID, created.Comment.ID)
		require.NoError(t, err)
		assert.Equal(t, "hi", got.Comment.Text)
	})

	t.Run("comment is invisible through another post", func(t *testing.T) {
		_, err := f.service.GetComment(ctx, otherPost.ID, created.Comment.ID)
		assert.ErrorIs(t, err, custom_errors.ErrCommentNotFound)
	})
}

func TestListComments(t *testing.T) {
	ctx := context.Background()
	f := newCommentServiceFixture(t)
	author := f.users.Add(&model.User{Username: "leo"})
	post := f.seedPost(t, author.ID)
	other := f.seedPost(t, author.ID)

	for i := 0; i < 3; i++ {
		_, err := f.service.CreateComment(ctx, &model.CreateCommentDTO{
			AuthorID: author.ID, PostID: post.ID, Text: "c",
		})
		require.NoError(t, err)
	}
	_, err := f.service.CreateComment(ctx, &model.CreateCommentDTO{
		AuthorID: author.ID, PostID: other.ID, Text: "elsewhere",
	})
	require.NoError(t, err)

	comments, err := f.service.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 3)
	for _, c := range comments {
		assert.Equal(t, post.ID, c.Comment.PostID)
		assert.Equal(t, "leo", c.Author.Username)
	}
}

func TestUpdateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("author edits own comment", func(t *testing.T) {
		f := newCommentServiceFixture(t)
		author := f.users.Add(&model.User{Username: "leo"})
		post := f.seedPost(t, author.ID)

		created, err := f.service.CreateComment(ctx, &model.CreateCommentDTO{
			AuthorID: author.ID, PostID: post.ID, Text: "tpyo",
		})
		require.NoError(t, err)

		updated, err := f.service.UpdateComment(ctx, author.ID, post.ID, created.Comment.ID,
			&model.UpdateCommentDTO{Text: strPtr("typo")})
		require.NoError(t, err)
		assert.Equal(t, "typo", updated.Comment.Text)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		f := newCommentServiceFixture(t)
		author := f.users.Add(&model.User{Username: "leo"})
		intruder := f.users.Add(&model.User{Username: "intruder"})
		post := f.seedPost(t, author.ID)

		created, err := f.service.CreateComment(ctx, &model.CreateCommentDTO{
			AuthorID: author.ID, PostID: post.ID, Text: "mine",
		})
		require.NoError(t, err)

		_, err = f.service.UpdateComment(ctx, intruder.ID, post.ID, created.Comment.ID,
			&model.UpdateCommentDTO{Text: strPtr("stolen")})
		assert.ErrorIs(t, err, custom_errors.ErrForbidden)
	})
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("author deletes own comment", func(t *testing.T) {
		f := newCommentServiceFixture(t)
		author := f.users.Add(&model.User{Username: "leo"})
		post := f.seedPost(t, author.ID)

		created, err := f.service.CreateComment(ctx, &model.CreateCommentDTO{
			AuthorID: author.ID, PostID: post.ID, Text: "gone soon",
		})
		require.NoError(t, err)

		require.NoError(t, f.service.DeleteComment(ctx, author.ID, post.ID, created.Comment.ID))

		_, err = f.service.GetComment(ctx, post.ID, created.Comment.ID)
		assert.ErrorIs(t, err, custom_errors.ErrCommentNotFound)
	})

	t.Run("other user is rejected", func(t *testing.T) {
		f := newCommentServiceFixture(t)
		author := f.users.Add(&model.User{Username: "leo"})
		intruder := f.users.Add(&model.User{Username: "intruder"})
		post := f.seedPost(t, author.ID)

		created, err := f.service.CreateComment(ctx, &model.CreateCommentDTO{
			AuthorID: author.ID, PostID: post.ID, Text: "stays",
		})
		require.NoError(t, err)

		err = f.service.DeleteComment(ctx, intruder.ID, post.ID, created.Comment.ID)
		assert.ErrorIs(t, err, custom_errors.ErrForbidden)
	})
}
