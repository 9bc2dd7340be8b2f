package memory_test

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
)

func TestTransactionSharesRepositories(t *testing.T) {
	log := logger.New("test")
	ctx := context.Background()

	posts := post_memory.NewPostRepository(log)
	comments := comment_memory.NewCommentRepository(log)
	groups := group_memory.NewGroupRepository(log)
	follows := follow_memory.NewFollowRepository(log)
	uow := memory.NewUnitOfWork(posts, comments, groups, follows)

	tx, err := uow.Begin(ctx)
	require.NoError(t, err)

	created, err := tx.PostRepository().Create(ctx, &model.Post{AuthorID: 1, Text: "in tx"})
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	// Writes through the transaction land in the shared repository.
	got, err := posts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "in tx", got.Text)
}

func TestFollowUniquenessAtStorage(t *testing.T) {
	log := logger.New("test")
	ctx := context.Background()
	follows := follow_memory.NewFollowRepository(log)

	_, err := follows.Create(ctx, 1, 2)
	require.NoError(t, err)

	_, err = follows.Create(ctx, 1, 2)
	assert.ErrorIs(t, err, custom_errors.ErrAlreadyFollowing)

	// The reverse edge is a distinct relationship.
	_, err = follows.Create(ctx, 2, 1)
	assert.NoError(t, err)
}

func TestCommentPostScopingAtStorage(t *testing.T) {
	log := logger.New("test")
	ctx := context.Background()
	comments := comment_memory.NewCommentRepository(log)

	created, err := comments.Create(ctx, &model.Comment{AuthorID: 1, PostID: 7, Text: "scoped"})
	require.NoError(t, err)

	_, err = comments.GetForPost(ctx, 7, created.ID)
	assert.NoError(t, err)

	_, err = comments.GetForPost(ctx, 8, created.ID)
	assert.ErrorIs(t, err, custom_errors.ErrCommentNotFound)
}
