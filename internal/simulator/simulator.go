// Package simulator assembles the in-memory backend behind a single facade.
// One Simulator stands in for the whole deployed service: callers drive it
// through the same operations the real API exposes, and all state lives in
// process memory for exactly as long as the Simulator does.
package simulator

import (
	"context"
	"sync"

	"github.com/andrewkatson/positiveonly/internal/classifier"
	"github.com/andrewkatson/positiveonly/internal/config"
	"github.com/andrewkatson/positiveonly/internal/feedrank"
	"github.com/andrewkatson/positiveonly/internal/logging"
	"github.com/andrewkatson/positiveonly/internal/repository/memory"
	"github.com/andrewkatson/positiveonly/internal/service"
)

// API is the full surface the simulator stands in for. Every operation is
// safe for concurrent use.
type API interface {
	// Accounts and sessions.
	Register(ctx context.Context, input service.RegisterInput) (*service.AuthResponse, error)
	Login(ctx context.Context, input service.LoginInput) (*service.AuthResponse, error)
	LoginWithRememberMe(ctx context.Context, seriesID, cookieToken, ip string) (*service.RefreshResponse, error)
	Logout(ctx context.Context, token string) error
	DeleteUser(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, usernameOrEmail string) error
	VerifyPasswordReset(ctx context.Context, usernameOrEmail string, code int) error
	ResetPassword(ctx context.Context, username, email, password string) error
	VerifyIdentity(ctx context.Context, token, dateOfBirth string) error

	// Posts.
	MakePost(ctx context.Context, token, imageURL, caption string) (*service.CreatePostResponse, error)
	DeletePost(ctx context.Context, token, postID string) error
	LikePost(ctx context.Context, token, postID string) error
	UnlikePost(ctx context.Context, token, postID string) error
	ReportPost(ctx context.Context, token, postID, reason string) error
	GetPostsInFeed(ctx context.Context, token string, batchIndex int) ([]service.PostSummary, error)
	GetFollowedPosts(ctx context.Context, token string, batchIndex int) ([]service.PostSummary, error)
	GetPostsForUser(ctx context.Context, token, username string, batchIndex int) ([]service.PostSummary, error)
	GetPostDetails(ctx context.Context, postID string) (*service.PostSummary, error)

	// Comments.
	CommentOnPost(ctx context.Context, token, postID, text string) (*service.CommentResponse, error)
	ReplyToThread(ctx context.Context, token, postID, threadID, text string) (*service.CommentResponse, error)
	LikeComment(ctx context.Context, token, postID, threadID, commentID string) error
	UnlikeComment(ctx context.Context, token, postID, threadID, commentID string) error
	DeleteComment(ctx context.Context, token, postID, threadID, commentID string) error
	ReportComment(ctx context.Context, token, postID, threadID, commentID, reason string) error
	GetCommentsForPost(ctx context.Context, postID string, batchIndex int) ([]service.ThreadSummary, error)
	GetCommentsForThread(ctx context.Context, threadID string, batchIndex int) ([]service.CommentInfo, error)

	// Social graph.
	FollowUser(ctx context.Context, token, username string) error
	UnfollowUser(ctx context.Context, token, username string) error
	SearchUsers(ctx context.Context, token, fragment string) ([]service.UserSummary, error)
	GetProfileDetails(ctx context.Context, token, username string) (*service.ProfileDetails, error)
	ToggleBlock(ctx context.Context, token, username string) (*service.BlockResult, error)
}

// Simulator owns the store and services. A single mutex serializes whole
// operations, so each call observes and produces a consistent snapshot even
// when driven from many goroutines at once.
type Simulator struct {
	mu sync.Mutex

	auth     *service.AuthService
	posts    *service.PostService
	comments *service.CommentService
	social   *service.SocialService

	log logging.Logger
}

var _ API = (*Simulator)(nil)

func New(cfg *config.Config) *Simulator {
	store := memory.NewStore()
	users := memory.NewUserRepo(store)
	sessions := memory.NewSessionRepo(store)
	cookies := memory.NewCookieRepo(store)
	posts := memory.NewPostRepo(store)
	threads := memory.NewThreadRepo(store)

	postSvc := service.NewPostService(users, sessions, posts, threads, cfg.PostBatchSize, cfg.HidePostThreshold)
	commentSvc := service.NewCommentService(users, sessions, posts, threads, cfg.ThreadBatchSize, cfg.CommentBatchSize, cfg.HideCommentThreshold)

	filter := classifier.NewWordFilter(cfg.BannedWords...)
	postSvc.SetClassifier(filter)
	commentSvc.SetClassifier(filter)

	return &Simulator{
		auth:     service.NewAuthService(users, sessions, cookies, posts, threads, cfg.RevokeSeriesOnMismatch),
		posts:    postSvc,
		comments: commentSvc,
		social:   service.NewSocialService(users, sessions, posts, cfg.MaxSearchResults),
		log:      logging.Nop{},
	}
}

func (s *Simulator) SetLogger(log logging.Logger) {
	s.log = log.With("component", "simulator")
}

// SetClassifier swaps the positivity filter on every text-accepting
// operation.
func (s *Simulator) SetClassifier(c classifier.Classifier) {
	s.posts.SetClassifier(c)
	s.comments.SetClassifier(c)
}

// SetRanker swaps the ordering for all listing operations.
func (s *Simulator) SetRanker(r feedrank.Ranker) {
	s.posts.SetRanker(r)
	s.comments.SetRanker(r)
}

// SetResetCodeGenerator replaces the password-reset code source so a test
// harness can observe the code that would otherwise go out by email.
func (s *Simulator) SetResetCodeGenerator(gen func() int) {
	s.auth.SetResetCodeGenerator(gen)
}

// observe logs the outcome and passes the error through unchanged.
func (s *Simulator) observe(ctx context.Context, op string, err error) error {
	if err != nil {
		s.log.Debug(ctx, "operation rejected", "op", op, "error", err)
	}
	return err
}

func (s *Simulator) Register(ctx context.Context, input service.RegisterInput) (*service.AuthResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.auth.Register(ctx, input)
	return resp, s.observe(ctx, "register", err)
}

func (s *Simulator) Login(ctx context.Context, input service.LoginInput) (*service.AuthResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.auth.Login(ctx, input)
	return resp, s.observe(ctx, "login", err)
}

func (s *Simulator) LoginWithRememberMe(ctx context.Context, seriesID, cookieToken, ip string) (*service.RefreshResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.auth.LoginWithRememberMe(ctx, seriesID, cookieToken, ip)
	return resp, s.observe(ctx, "login_with_remember_me", err)
}

func (s *Simulator) Logout(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "logout", s.auth.Logout(ctx, token))
}

func (s *Simulator) DeleteUser(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "delete_user", s.auth.DeleteUser(ctx, token))
}

func (s *Simulator) RequestPasswordReset(ctx context.Context, usernameOrEmail string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "request_password_reset", s.auth.RequestPasswordReset(ctx, usernameOrEmail))
}

func (s *Simulator) VerifyPasswordReset(ctx context.Context, usernameOrEmail string, code int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "verify_password_reset", s.auth.VerifyPasswordReset(ctx, usernameOrEmail, code))
}

func (s *Simulator) ResetPassword(ctx context.Context, username, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "reset_password", s.auth.ResetPassword(ctx, username, email, password))
}

func (s *Simulator) VerifyIdentity(ctx context.Context, token, dateOfBirth string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "verify_identity", s.auth.VerifyIdentity(ctx, token, dateOfBirth))
}

func (s *Simulator) MakePost(ctx context.Context, token, imageURL, caption string) (*service.CreatePostResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.posts.MakePost(ctx, token, imageURL, caption)
	return resp, s.observe(ctx, "make_post", err)
}

func (s *Simulator) DeletePost(ctx context.Context, token, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "delete_post", s.posts.DeletePost(ctx, token, postID))
}

func (s *Simulator) LikePost(ctx context.Context, token, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "like_post", s.posts.LikePost(ctx, token, postID))
}

func (s *Simulator) UnlikePost(ctx context.Context, token, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "unlike_post", s.posts.UnlikePost(ctx, token, postID))
}

func (s *Simulator) ReportPost(ctx context.Context, token, postID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "report_post", s.posts.ReportPost(ctx, token, postID, reason))
}

func (s *Simulator) GetPostsInFeed(ctx context.Context, token string, batchIndex int) ([]service.PostSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.posts.GetPostsInFeed(ctx, token, batchIndex)
	return resp, s.observe(ctx, "get_posts_in_feed", err)
}

func (s *Simulator) GetFollowedPosts(ctx context.Context, token string, batchIndex int) ([]service.PostSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.posts.GetFollowedPosts(ctx, token, batchIndex)
	return resp, s.observe(ctx, "get_followed_posts", err)
}

func (s *Simulator) GetPostsForUser(ctx context.Context, token, username string, batchIndex int) ([]service.PostSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.posts.GetPostsForUser(ctx, token, username, batchIndex)
	return resp, s.observe(ctx, "get_posts_for_user", err)
}

func (s *Simulator) GetPostDetails(ctx context.Context, postID string) (*service.PostSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.posts.GetPostDetails(ctx, postID)
	return resp, s.observe(ctx, "get_post_details", err)
}

func (s *Simulator) CommentOnPost(ctx context.Context, token, postID, text string) (*service.CommentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.comments.CommentOnPost(ctx, token, postID, text)
	return resp, s.observe(ctx, "comment_on_post", err)
}

func (s *Simulator) ReplyToThread(ctx context.Context, token, postID, threadID, text string) (*service.CommentResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.comments.ReplyToThread(ctx, token, postID, threadID, text)
	return resp, s.observe(ctx, "reply_to_thread", err)
}

func (s *Simulator) LikeComment(ctx context.Context, token, postID, threadID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "like_comment", s.comments.LikeComment(ctx, token, postID, threadID, commentID))
}

func (s *Simulator) UnlikeComment(ctx context.Context, token, postID, threadID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "unlike_comment", s.comments.UnlikeComment(ctx, token, postID, threadID, commentID))
}

func (s *Simulator) DeleteComment(ctx context.Context, token, postID, threadID, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "delete_comment", s.comments.DeleteComment(ctx, token, postID, threadID, commentID))
}

func (s *Simulator) ReportComment(ctx context.Context, token, postID, threadID, commentID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "report_comment", s.comments.ReportComment(ctx, token, postID, threadID, commentID, reason))
}

func (s *Simulator) GetCommentsForPost(ctx context.Context, postID string, batchIndex int) ([]service.ThreadSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.comments.GetCommentsForPost(ctx, postID, batchIndex)
	return resp, s.observe(ctx, "get_comments_for_post", err)
}

func (s *Simulator) GetCommentsForThread(ctx context.Context, threadID string, batchIndex int) ([]service.CommentInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.comments.GetCommentsForThread(ctx, threadID, batchIndex)
	return resp, s.observe(ctx, "get_comments_for_thread", err)
}

func (s *Simulator) FollowUser(ctx context.Context, token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "follow_user", s.social.FollowUser(ctx, token, username))
}

func (s *Simulator) UnfollowUser(ctx context.Context, token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.observe(ctx, "unfollow_user", s.social.UnfollowUser(ctx, token, username))
}

func (s *Simulator) SearchUsers(ctx context.Context, token, fragment string) ([]service.UserSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.social.SearchUsers(ctx, token, fragment)
	return resp, s.observe(ctx, "search_users", err)
}

func (s *Simulator) GetProfileDetails(ctx context.Context, token, username string) (*service.ProfileDetails, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.social.GetProfileDetails(ctx, token, username)
	return resp, s.observe(ctx, "get_profile_details", err)
}

func (s *Simulator) ToggleBlock(ctx context.Context, token, username string) (*service.BlockResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.social.ToggleBlock(ctx, token, username)
	return resp, s.observe(ctx, "toggle_block", err)
}
