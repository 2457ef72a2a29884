package service

import (
	"context"

	"github.com/andrewkatson/positiveonly/internal/domain"
	"github.com/andrewkatson/positiveonly/internal/repository"
)

var (
	ErrUserNotFound     = &domain.Error{Kind: domain.KindNotFound, Message: "User not found"}
	ErrUserDoesNotExist = &domain.Error{Kind: domain.KindNotFound, Message: "User does not exist"}
	ErrFollowSelf       = &domain.Error{Kind: domain.KindRuleViolation, Message: "Cannot follow self"}
	ErrAlreadyFollowing = &domain.Error{Kind: domain.KindRuleViolation, Message: "Already following user"}
	ErrNotFollowing     = &domain.Error{Kind: domain.KindRuleViolation, Message: "Not following user"}
	ErrBlockSelf        = &domain.Error{Kind: domain.KindRuleViolation, Message: "Cannot block self"}
)

type SocialService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	posts    repository.PostRepository

	maxSearchResults int
}

func NewSocialService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	posts repository.PostRepository,
	maxSearchResults int,
) *SocialService {
	return &SocialService{
		users:            users,
		sessions:         sessions,
		posts:            posts,
		maxSearchResults: maxSearchResults,
	}
}

type UserSummary struct {
	Username         string `json:"username"`
	IdentityVerified bool   `json:"identity_is_verified"`
}

type ProfileDetails struct {
	Username       string `json:"username"`
	PostCount      int    `json:"post_count"`
	FollowerCount  int    `json:"follower_count"`
	FollowingCount int    `json:"following_count"`
	IsFollowing    bool   `json:"is_following"`
}

type BlockResult struct {
	Blocked bool   `json:"blocked"`
	Message string `json:"message"`
}

func (s *SocialService) FollowUser(ctx context.Context, token, username string) error {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return err
	}

	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if target.ID == user.ID {
		return ErrFollowSelf
	}
	if _, following := user.Following[target.ID]; following {
		return ErrAlreadyFollowing
	}

	return s.users.Follow(ctx, user.ID, target.ID)
}

func (s *SocialService) UnfollowUser(ctx context.Context, token, username string) error {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return err
	}

	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if _, following := user.Following[target.ID]; !following {
		return ErrNotFollowing
	}

	return s.users.Unfollow(ctx, user.ID, target.ID)
}

// SearchUsers matches usernames by case-insensitive substring, never
// returns the caller, and caps the result size.
func (s *SocialService) SearchUsers(ctx context.Context, token, fragment string) ([]UserSummary, error) {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return nil, err
	}

	matches, err := s.users.Search(ctx, fragment, user.ID, s.maxSearchResults)
	if err != nil {
		return nil, err
	}

	out := make([]UserSummary, 0, len(matches))
	for _, m := range matches {
		out = append(out, UserSummary{Username: m.Username, IdentityVerified: m.IdentityVerified})
	}
	return out, nil
}

// GetProfileDetails aggregates a user's public profile. The token is
// optional: without a resolvable caller, IsFollowing is simply false.
func (s *SocialService) GetProfileDetails(ctx context.Context, token, username string) (*ProfileDetails, error) {
	viewer, _ := resolveUser(ctx, s.sessions, s.users, token)

	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	postCount, err := s.posts.CountByAuthor(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewer != nil {
		_, isFollowing = viewer.Following[target.ID]
	}

	return &ProfileDetails{
		Username:       target.Username,
		PostCount:      postCount,
		FollowerCount:  len(target.Followers),
		FollowingCount: len(target.Following),
		IsFollowing:    isFollowing,
	}, nil
}

// ToggleBlock blocks the target if not blocked, unblocks otherwise.
// Blocking tears down follow relationships in both directions; it does not
// stop the blocked user from following again later.
func (s *SocialService) ToggleBlock(ctx context.Context, token, username string) (*BlockResult, error) {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return nil, err
	}

	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserDoesNotExist
	}
	if target.ID == user.ID {
		return nil, ErrBlockSelf
	}

	blocked, err := s.users.ToggleBlock(ctx, user.ID, target.ID)
	if err != nil {
		return nil, err
	}

	msg := "User unblocked"
	if blocked {
		msg = "User blocked"
	}
	return &BlockResult{Blocked: blocked, Message: msg}, nil
}
