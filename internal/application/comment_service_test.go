package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/pagination"
	"github.com/chirper-app/chirper/pkg/apperror"
)

func TestCommentService_CommentPost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice", false)
	bob := f.seedUser(t, "bob", true)
	postID := f.seedPost(t, alice, "parent")

	t.Run("comment links to parent", func(t *testing.T) {
		dto, err := f.commentSvc.CommentPost(ctx, bob, postID, CreatePostInput{Content: "nice"})
		require.NoError(t, err)
		assert.Equal(t, postID, dto.ParentID)

		stored, err := f.posts.GetByID(ctx, dto.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, entity.PostTypeComment, stored.Type)
	})

	t.Run("missing parent is not found", func(t *testing.T) {
		_, err := f.commentSvc.CommentPost(ctx, bob, "nope", CreatePostInput{Content: "?"})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "got %v", err)
	})

	t.Run("hidden parent is not found", func(t *testing.T) {
		hidden := f.seedPost(t, bob, "private parent")
		_, err := f.commentSvc.CommentPost(ctx, alice, hidden, CreatePostInput{Content: "?"})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "got %v", err)
	})

	t.Run("image rules match posts", func(t *testing.T) {
		_, err := f.commentSvc.CommentPost(ctx, bob, postID, CreatePostInput{
			Content: "pic",
			Images:  []string{"x.bmp"},
		})
		assert.True(t, apperror.IsKind(err, apperror.KindUnsupportedMedia), "got %v", err)
	})
}

func TestCommentService_GetCommentsByPost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice", false)
	bob := f.seedUser(t, "bob", false)
	postID := f.seedPost(t, alice, "parent")

	_, err := f.commentSvc.CommentPost(ctx, bob, postID, CreatePostInput{Content: "first"})
	require.NoError(t, err)
	_, err = f.commentSvc.CommentPost(ctx, alice, postID, CreatePostInput{Content: "second"})
	require.NoError(t, err)

	comments, err := f.commentSvc.GetCommentsByPost(ctx, bob, postID, cursorNone())
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	t.Run("parent counts its comments", func(t *testing.T) {
		parent, err := f.postSvc.GetPost(ctx, alice, postID)
		require.NoError(t, err)
		assert.Equal(t, 2, parent.QtyComments)
	})

	t.Run("after cursor skips the cursor comment", func(t *testing.T) {
		page, err := f.commentSvc.GetCommentsByPost(ctx, bob, postID, pagination.Cursor{After: comments[0].ID, Limit: 10})
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, comments[1].ID, page[0].ID)
	})
}

func TestCommentService_GetCommentsByUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	alice := f.seedUser(t, "alice", false)
	bob := f.seedUser(t, "bob", true)
	postID := f.seedPost(t, alice, "parent")

	_, err := f.commentSvc.CommentPost(ctx, bob, postID, CreatePostInput{Content: "from bob"})
	require.NoError(t, err)

	t.Run("private commenter hidden from strangers", func(t *testing.T) {
		_, err := f.commentSvc.GetCommentsByUser(ctx, alice, bob)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound), "got %v", err)
	})

	t.Run("visible to follower", func(t *testing.T) {
		require.NoError(t, f.follows.Follow(ctx, alice, bob))
		comments, err := f.commentSvc.GetCommentsByUser(ctx, alice, bob)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "from bob", comments[0].Content)
	})
}
