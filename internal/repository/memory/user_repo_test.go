package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewkatson/positiveonly/internal/domain"
)

func newUser(username string) *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		ResetCode: domain.ResetCodeUnset,
		CreatedAt: time.Now(),
	}
}

func TestUserRepoLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(NewStore())

	alice := newUser("alice")
	require.NoError(t, repo.Create(ctx, alice))

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Same(t, alice, got)

	got, err = repo.GetByUsernameOrEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Same(t, alice, got)

	got, err = repo.GetByUsernameAndEmail(ctx, "alice", "bob@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepoSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(NewStore())

	caller := newUser("anna")
	require.NoError(t, repo.Create(ctx, caller))
	for i := 0; i < 15; i++ {
		require.NoError(t, repo.Create(ctx, newUser(fmt.Sprintf("anna_%02d", i))))
	}
	require.NoError(t, repo.Create(ctx, newUser("bob")))

	matches, err := repo.Search(ctx, "ANNA", caller.ID, 10)
	require.NoError(t, err)
	require.Len(t, matches, 10, "result capped and caller excluded")
	assert.Equal(t, "anna_00", matches[0].Username, "registration order preserved")

	matches, err = repo.Search(ctx, "ob", caller.ID, 10)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "bob", matches[0].Username)
}

func TestUserRepoFollowSymmetry(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(NewStore())

	a, b := newUser("a_user"), newUser("b_user")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.Follow(ctx, a.ID, b.ID))
	assert.Contains(t, a.Following, b.ID)
	assert.Contains(t, b.Followers, a.ID)

	require.NoError(t, repo.Unfollow(ctx, a.ID, b.ID))
	assert.NotContains(t, a.Following, b.ID)
	assert.NotContains(t, b.Followers, a.ID)
}

func TestUserRepoToggleBlockRemovesFollows(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(NewStore())

	a, b := newUser("a_user"), newUser("b_user")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Follow(ctx, a.ID, b.ID))
	require.NoError(t, repo.Follow(ctx, b.ID, a.ID))

	blocked, err := repo.ToggleBlock(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.Empty(t, a.Following)
	assert.Empty(t, a.Followers)
	assert.Empty(t, b.Following)
	assert.Empty(t, b.Followers)

	blocked, err = repo.ToggleBlock(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
	assert.Empty(t, a.Blocked)
}

func TestUserRepoDeleteScrubsEdges(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepo(NewStore())

	a, b := newUser("a_user"), newUser("b_user")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Follow(ctx, a.ID, b.ID))

	require.NoError(t, repo.Delete(ctx, b.ID))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NotContains(t, a.Following, b.ID)
}
