package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrewkatson/positiveonly/internal/classifier"
	"github.com/andrewkatson/positiveonly/internal/domain"
	"github.com/andrewkatson/positiveonly/internal/feedrank"
	"github.com/andrewkatson/positiveonly/internal/repository"
	"github.com/andrewkatson/positiveonly/pkg/batch"
	"github.com/andrewkatson/positiveonly/pkg/validator"
)

var (
	ErrPostNotFound        = &domain.Error{Kind: domain.KindNotFound, Message: "No post with that identifier"}
	ErrTextNotPositive     = &domain.Error{Kind: domain.KindValidation, Message: "Text is not positive"}
	ErrLikeOwnPost         = &domain.Error{Kind: domain.KindRuleViolation, Message: "Cannot like own post"}
	ErrAlreadyLikedPost    = &domain.Error{Kind: domain.KindRuleViolation, Message: "Already liked post"}
	ErrPostNotLiked        = &domain.Error{Kind: domain.KindRuleViolation, Message: "Post not liked yet"}
	ErrReportOwnPost       = &domain.Error{Kind: domain.KindRuleViolation, Message: "Cannot report own post"}
	ErrAlreadyReportedPost = &domain.Error{Kind: domain.KindRuleViolation, Message: "Cannot report post twice"}
)

type PostService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	posts    repository.PostRepository
	threads  repository.ThreadRepository

	classifier    classifier.Classifier
	ranker        feedrank.Ranker
	batchSize     int
	hideThreshold int
}

func NewPostService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	posts repository.PostRepository,
	threads repository.ThreadRepository,
	batchSize, hideThreshold int,
) *PostService {
	return &PostService{
		users:         users,
		sessions:      sessions,
		posts:         posts,
		threads:       threads,
		classifier:    classifier.NewWordFilter(),
		ranker:        feedrank.NewChronological(),
		batchSize:     batchSize,
		hideThreshold: hideThreshold,
	}
}

// SetClassifier swaps the positivity filter (the production one is an
// external model).
func (s *PostService) SetClassifier(c classifier.Classifier) {
	s.classifier = c
}

// SetRanker swaps the feed ordering algorithm.
func (s *PostService) SetRanker(r feedrank.Ranker) {
	s.ranker = r
}

type CreatePostResponse struct {
	PostID string `json:"post_identifier"`
}

type PostSummary struct {
	PostID         string `json:"post_identifier"`
	ImageURL       string `json:"image_url"`
	Caption        string `json:"caption"`
	AuthorUsername string `json:"author_username"`
	Likes          int    `json:"post_likes"`
}

func (s *PostService) MakePost(ctx context.Context, token, imageURL, caption string) (*CreatePostResponse, error) {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return nil, err
	}

	if errs := validator.ValidateImageURL(imageURL); errs.HasErrors() {
		return nil, validationError(errs)
	}
	if !s.classifier.IsPositive(caption) {
		return nil, ErrTextNotPositive
	}

	post := &domain.Post{
		ID:        uuid.New(),
		AuthorID:  user.ID,
		ImageURL:  imageURL,
		Caption:   caption,
		CreatedAt: time.Now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	return &CreatePostResponse{PostID: post.ID.String()}, nil
}

// DeletePost removes the caller's post and its comment threads. A missing
// post and a post owned by someone else surface as the same error so the
// caller cannot probe for other users' post ids; the internal reason keeps
// the two apart for diagnostics.
func (s *PostService) DeletePost(ctx context.Context, token, postID string) error {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return err
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return &domain.Error{Kind: domain.KindNotFound, Message: ErrPostNotFound.Message, Reason: "missing"}
	}
	if post.AuthorID != user.ID {
		return &domain.Error{Kind: domain.KindNotFound, Message: ErrPostNotFound.Message, Reason: "not_owner"}
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return err
	}
	return s.threads.DeleteByPosts(ctx, []uuid.UUID{post.ID})
}

func (s *PostService) LikePost(ctx context.Context, token, postID string) error {
	user, post, err := s.resolveUserAndPost(ctx, token, postID)
	if err != nil {
		return err
	}

	if post.AuthorID == user.ID {
		return ErrLikeOwnPost
	}
	if _, liked := post.Likes[user.ID]; liked {
		return ErrAlreadyLikedPost
	}

	return s.posts.AddLike(ctx, post.ID, user.ID)
}

func (s *PostService) UnlikePost(ctx context.Context, token, postID string) error {
	user, post, err := s.resolveUserAndPost(ctx, token, postID)
	if err != nil {
		return err
	}

	if _, liked := post.Likes[user.ID]; !liked {
		return ErrPostNotLiked
	}

	return s.posts.RemoveLike(ctx, post.ID, user.ID)
}

func (s *PostService) ReportPost(ctx context.Context, token, postID, reason string) error {
	user, post, err := s.resolveUserAndPost(ctx, token, postID)
	if err != nil {
		return err
	}

	if post.AuthorID == user.ID {
		return ErrReportOwnPost
	}
	if _, reported := post.Reports[user.ID]; reported {
		return ErrAlreadyReportedPost
	}

	count, err := s.posts.AddReport(ctx, post.ID, domain.Report{
		ReporterID: user.ID,
		Reason:     reason,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return err
	}
	if count > s.hideThreshold {
		return s.posts.SetHidden(ctx, post.ID)
	}
	return nil
}

// GetPostsInFeed returns one page of the discovery feed: visible posts by
// other users, ordered by the ranker.
func (s *PostService) GetPostsInFeed(ctx context.Context, token string, batchIndex int) ([]PostSummary, error) {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return nil, err
	}

	all, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ranked := s.ranker.RankFeed(user.ID, visiblePosts(all))
	return s.summarize(ctx, batch.Page(ranked, batchIndex, s.batchSize))
}

// GetFollowedPosts returns one page of visible posts by users the caller
// follows, newest first.
func (s *PostService) GetFollowedPosts(ctx context.Context, token string, batchIndex int) ([]PostSummary, error) {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return nil, err
	}

	all, err := s.posts.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var followed []*domain.Post
	for _, p := range visiblePosts(all) {
		if _, ok := user.Following[p.AuthorID]; ok {
			followed = append(followed, p)
		}
	}

	return s.summarize(ctx, batch.Page(feedrank.NewestFirst(followed), batchIndex, s.batchSize))
}

// GetPostsForUser returns one page of a single user's visible posts,
// newest first.
func (s *PostService) GetPostsForUser(ctx context.Context, token, username string, batchIndex int) ([]PostSummary, error) {
	if _, err := resolveUser(ctx, s.sessions, s.users, token); err != nil {
		return nil, err
	}

	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	authored, err := s.posts.ListByAuthor(ctx, target.ID)
	if err != nil {
		return nil, err
	}

	return s.summarize(ctx, batch.Page(feedrank.NewestFirst(visiblePosts(authored)), batchIndex, s.batchSize))
}

// GetPostDetails resolves a post by id without a token. Hidden posts stay
// reachable here even though they are excluded from every listing, so the
// author and moderation tooling can still inspect them.
func (s *PostService) GetPostDetails(ctx context.Context, postID string) (*PostSummary, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	summaries, err := s.summarize(ctx, []*domain.Post{post})
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

func (s *PostService) resolveUserAndPost(ctx context.Context, token, postID string) (*domain.User, *domain.Post, error) {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return nil, nil, err
	}
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	if post == nil {
		return nil, nil, ErrPostNotFound
	}
	return user, post, nil
}

func (s *PostService) getPost(ctx context.Context, postID string) (*domain.Post, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, nil
	}
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) summarize(ctx context.Context, posts []*domain.Post) ([]PostSummary, error) {
	out := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		author, err := s.users.GetByID(ctx, p.AuthorID)
		if err != nil {
			return nil, err
		}
		username := ""
		if author != nil {
			username = author.Username
		}
		out = append(out, PostSummary{
			PostID:         p.ID.String(),
			ImageURL:       p.ImageURL,
			Caption:        p.Caption,
			AuthorUsername: username,
			Likes:          len(p.Likes),
		})
	}
	return out, nil
}

func visiblePosts(posts []*domain.Post) []*domain.Post {
	out := make([]*domain.Post, 0, len(posts))
	for _, p := range posts {
		if !p.Hidden {
			out = append(out, p)
		}
	}
	return out
}
