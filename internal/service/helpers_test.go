package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrewkatson/positiveonly/internal/repository/memory"
)

const (
	testPassword = "Sunny_Day1"
	testIP       = "10.0.0.1"
	testImageURL = "https://cdn.example.com/sunset.jpg"

	testResetCode     = 123456
	testHideThreshold = 5
	testBatchSize     = 10
)

type fixture struct {
	auth     *AuthService
	posts    *PostService
	comments *CommentService
	social   *SocialService

	users *memory.UserRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureRevoking(t, false)
}

func newFixtureRevoking(t *testing.T, revokeSeriesOnMismatch bool) *fixture {
	t.Helper()

	store := memory.NewStore()
	users := memory.NewUserRepo(store)
	sessions := memory.NewSessionRepo(store)
	cookies := memory.NewCookieRepo(store)
	posts := memory.NewPostRepo(store)
	threads := memory.NewThreadRepo(store)

	auth := NewAuthService(users, sessions, cookies, posts, threads, revokeSeriesOnMismatch)
	auth.SetResetCodeGenerator(func() int { return testResetCode })

	return &fixture{
		auth:     auth,
		posts:    NewPostService(users, sessions, posts, threads, testBatchSize, testHideThreshold),
		comments: NewCommentService(users, sessions, posts, threads, testBatchSize, testBatchSize, testHideThreshold),
		social:   NewSocialService(users, sessions, posts, testBatchSize),
		users:    users,
	}
}

// register creates a user with valid defaults and returns a session token.
func (f *fixture) register(t *testing.T, username string) string {
	t.Helper()
	resp, err := f.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: testPassword,
		IP:       testIP,
	})
	require.NoError(t, err)
	return resp.SessionToken
}

func (f *fixture) makePost(t *testing.T, token, caption string) string {
	t.Helper()
	resp, err := f.posts.MakePost(context.Background(), token, testImageURL, caption)
	require.NoError(t, err)
	return resp.PostID
}

func (f *fixture) comment(t *testing.T, token, postID, text string) *CommentResponse {
	t.Helper()
	resp, err := f.comments.CommentOnPost(context.Background(), token, postID, text)
	require.NoError(t, err)
	return resp
}
