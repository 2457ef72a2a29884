package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewkatson/positiveonly/internal/domain"
)

func newThread(postID uuid.UUID, root *domain.Comment) *domain.CommentThread {
	return &domain.CommentThread{
		ID:        uuid.New(),
		PostID:    postID,
		CreatedAt: time.Now(),
		Comments:  []*domain.Comment{root},
	}
}

func rootComment(author uuid.UUID) *domain.Comment {
	now := time.Now()
	return &domain.Comment{
		ID:             uuid.New(),
		AuthorID:       author,
		AuthorUsername: "author",
		Body:           "root",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestThreadRepoComments(t *testing.T) {
	ctx := context.Background()
	repo := NewThreadRepo(NewStore())

	author := uuid.New()
	root := rootComment(author)
	thread := newThread(uuid.New(), root)
	require.NoError(t, repo.Create(ctx, thread))

	reply := rootComment(author)
	reply.Body = "reply"
	require.NoError(t, repo.AppendComment(ctx, thread.ID, reply))

	got, err := repo.GetByID(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, 1, got.ReplyCount())

	// Create and AppendComment initialize the like and report maps.
	fan := uuid.New()
	require.NoError(t, repo.AddCommentLike(ctx, thread.ID, root.ID, fan))
	require.NoError(t, repo.AddCommentLike(ctx, thread.ID, reply.ID, fan))

	require.NoError(t, repo.RemoveComment(ctx, thread.ID, reply.ID))
	got, err = repo.GetByID(ctx, thread.ID)
	require.NoError(t, err)
	assert.Len(t, got.Comments, 1)

	assert.ErrorIs(t, repo.RemoveComment(ctx, thread.ID, reply.ID), ErrMissingRecord)
}

func TestThreadRepoCommentModeration(t *testing.T) {
	ctx := context.Background()
	repo := NewThreadRepo(NewStore())

	root := rootComment(uuid.New())
	thread := newThread(uuid.New(), root)
	require.NoError(t, repo.Create(ctx, thread))

	reporter := uuid.New()
	n, err := repo.AddCommentReport(ctx, thread.ID, root.ID, domain.Report{ReporterID: reporter, Reason: "spam"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = repo.AddCommentReport(ctx, thread.ID, root.ID, domain.Report{ReporterID: reporter, Reason: "spam"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repo.SetCommentHidden(ctx, thread.ID, root.ID))
	got, err := repo.GetComment(ctx, thread.ID, root.ID)
	require.NoError(t, err)
	assert.True(t, got.Hidden)
}

func TestThreadRepoDeleteByPosts(t *testing.T) {
	ctx := context.Background()
	repo := NewThreadRepo(NewStore())

	postA := uuid.New()
	postB := uuid.New()
	onA := newThread(postA, rootComment(uuid.New()))
	alsoOnA := newThread(postA, rootComment(uuid.New()))
	onB := newThread(postB, rootComment(uuid.New()))
	require.NoError(t, repo.Create(ctx, onA))
	require.NoError(t, repo.Create(ctx, alsoOnA))
	require.NoError(t, repo.Create(ctx, onB))

	require.NoError(t, repo.DeleteByPosts(ctx, []uuid.UUID{postA}))

	remaining, err := repo.ListByPost(ctx, postA)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	survivor, err := repo.GetByID(ctx, onB.ID)
	require.NoError(t, err)
	require.NotNil(t, survivor)
}
