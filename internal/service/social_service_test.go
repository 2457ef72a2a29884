package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowUnfollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	require.ErrorIs(t, f.social.FollowUser(ctx, alice, "alice"), ErrFollowSelf)
	require.ErrorIs(t, f.social.FollowUser(ctx, alice, "nobody"), ErrUserNotFound)

	require.NoError(t, f.social.FollowUser(ctx, alice, "bob"))
	require.ErrorIs(t, f.social.FollowUser(ctx, alice, "bob"), ErrAlreadyFollowing)

	// Both sides of the edge are visible.
	bobProfile, err := f.social.GetProfileDetails(ctx, alice, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, bobProfile.FollowerCount)
	assert.Equal(t, 0, bobProfile.FollowingCount)
	assert.True(t, bobProfile.IsFollowing)

	aliceProfile, err := f.social.GetProfileDetails(ctx, bob, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, aliceProfile.FollowerCount)
	assert.Equal(t, 1, aliceProfile.FollowingCount)
	assert.False(t, aliceProfile.IsFollowing)

	require.NoError(t, f.social.UnfollowUser(ctx, alice, "bob"))
	require.ErrorIs(t, f.social.UnfollowUser(ctx, alice, "bob"), ErrNotFollowing)

	bobProfile, err = f.social.GetProfileDetails(ctx, alice, "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, bobProfile.FollowerCount)
	assert.False(t, bobProfile.IsFollowing)
}

func TestSearchUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	f.register(t, "alina")
	f.register(t, "ALBERT")
	f.register(t, "bob")

	// Case-insensitive substring match, caller excluded.
	results, err := f.social.SearchUsers(ctx, alice, "al")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "alina", results[0].Username)
	assert.Equal(t, "ALBERT", results[1].Username)

	results, err = f.social.SearchUsers(ctx, alice, "AL")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = f.social.SearchUsers(ctx, alice, "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchUsersCapsResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	caller := f.register(t, "caller")
	for i := 0; i < testBatchSize+5; i++ {
		f.register(t, fmt.Sprintf("match%02d", i))
	}

	results, err := f.social.SearchUsers(ctx, caller, "match")
	require.NoError(t, err)
	assert.Len(t, results, testBatchSize)
}

func TestSearchUsersIdentityFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	require.NoError(t, f.auth.VerifyIdentity(ctx, bob, "1990-06-15"))

	results, err := f.social.SearchUsers(ctx, alice, "bob")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].IdentityVerified)
}

func TestGetProfileDetails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	f.makePost(t, alice, "one")
	f.makePost(t, alice, "two")

	// Works without a token; IsFollowing is simply false.
	profile, err := f.social.GetProfileDetails(ctx, "", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, 2, profile.PostCount)
	assert.False(t, profile.IsFollowing)

	_, err = f.social.GetProfileDetails(ctx, "", "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestToggleBlockRemovesFollowsBothWays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	require.NoError(t, f.social.FollowUser(ctx, alice, "bob"))
	require.NoError(t, f.social.FollowUser(ctx, bob, "alice"))

	result, err := f.social.ToggleBlock(ctx, alice, "bob")
	require.NoError(t, err)
	assert.True(t, result.Blocked)
	assert.Equal(t, "User blocked", result.Message)

	// Blocking severed the follow edges in both directions.
	bobProfile, err := f.social.GetProfileDetails(ctx, alice, "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, bobProfile.FollowerCount)
	assert.Equal(t, 0, bobProfile.FollowingCount)
	assert.False(t, bobProfile.IsFollowing)

	aliceProfile, err := f.social.GetProfileDetails(ctx, bob, "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, aliceProfile.FollowerCount)
	assert.Equal(t, 0, aliceProfile.FollowingCount)

	result, err = f.social.ToggleBlock(ctx, alice, "bob")
	require.NoError(t, err)
	assert.False(t, result.Blocked)
	assert.Equal(t, "User unblocked", result.Message)

	// A block does not permanently bar the other side from following again.
	require.NoError(t, f.social.FollowUser(ctx, bob, "alice"))
}

func TestToggleBlockEdgeCases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")

	_, err := f.social.ToggleBlock(ctx, alice, "alice")
	require.ErrorIs(t, err, ErrBlockSelf)

	_, err = f.social.ToggleBlock(ctx, alice, "nobody")
	require.ErrorIs(t, err, ErrUserDoesNotExist)

	_, err = f.social.ToggleBlock(ctx, "bad-token", "alice")
	require.ErrorIs(t, err, ErrUnauthorized)
}
