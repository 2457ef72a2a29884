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
)

var (
	ErrThreadNotFound         = &domain.Error{Kind: domain.KindNotFound, Message: "Thread not found"}
	ErrCommentNotFound        = &domain.Error{Kind: domain.KindNotFound, Message: "Comment not found"}
	ErrLikeOwnComment         = &domain.Error{Kind: domain.KindRuleViolation, Message: "Cannot like own comment"}
	ErrAlreadyLikedComment    = &domain.Error{Kind: domain.KindRuleViolation, Message: "Already liked comment"}
	ErrCommentNotLiked        = &domain.Error{Kind: domain.KindRuleViolation, Message: "Comment not liked yet"}
	ErrReportOwnComment       = &domain.Error{Kind: domain.KindRuleViolation, Message: "Cannot report own comment"}
	ErrAlreadyReportedComment = &domain.Error{Kind: domain.KindRuleViolation, Message: "Cannot report comment twice"}
	ErrNotCommentAuthor       = &domain.Error{Kind: domain.KindAuth, Message: "Not authorized"}
)

type CommentService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	posts    repository.PostRepository
	threads  repository.ThreadRepository

	classifier       classifier.Classifier
	ranker           feedrank.Ranker
	threadBatchSize  int
	commentBatchSize int
	hideThreshold    int
}

func NewCommentService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	posts repository.PostRepository,
	threads repository.ThreadRepository,
	threadBatchSize, commentBatchSize, hideThreshold int,
) *CommentService {
	return &CommentService{
		users:            users,
		sessions:         sessions,
		posts:            posts,
		threads:          threads,
		classifier:       classifier.NewWordFilter(),
		ranker:           feedrank.NewChronological(),
		threadBatchSize:  threadBatchSize,
		commentBatchSize: commentBatchSize,
		hideThreshold:    hideThreshold,
	}
}

func (s *CommentService) SetClassifier(c classifier.Classifier) {
	s.classifier = c
}

func (s *CommentService) SetRanker(r feedrank.Ranker) {
	s.ranker = r
}

type CommentResponse struct {
	ThreadID  string `json:"comment_thread_identifier,omitempty"`
	CommentID string `json:"comment_identifier"`
}

type ThreadSummary struct {
	ThreadID   string `json:"comment_thread_identifier"`
	ReplyCount int    `json:"reply_count"`
}

type CommentInfo struct {
	CommentID      string    `json:"comment_identifier"`
	Body           string    `json:"body"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"creation_time"`
	UpdatedAt      time.Time `json:"updated_time"`
	Likes          int       `json:"comment_likes"`
}

// CommentOnPost starts a new thread under the post: one thread per
// top-level comment, with the new comment as its root.
func (s *CommentService) CommentOnPost(ctx context.Context, token, postID, text string) (*CommentResponse, error) {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return nil, err
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if !s.classifier.IsPositive(text) {
		return nil, ErrTextNotPositive
	}

	now := time.Now()
	thread := &domain.CommentThread{
		ID:        uuid.New(),
		PostID:    post.ID,
		CreatedAt: now,
	}
	root := newComment(thread.ID, user, text, now)
	thread.Comments = []*domain.Comment{root}

	if err := s.threads.Create(ctx, thread); err != nil {
		return nil, fmt.Errorf("creating comment thread: %w", err)
	}

	return &CommentResponse{ThreadID: thread.ID.String(), CommentID: root.ID.String()}, nil
}

// ReplyToThread appends a comment to an existing thread. Replies are flat:
// they always target the thread's root, never another reply.
func (s *CommentService) ReplyToThread(ctx context.Context, token, postID, threadID, text string) (*CommentResponse, error) {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return nil, err
	}

	thread, err := s.getThreadForPost(ctx, postID, threadID)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}

	if !s.classifier.IsPositive(text) {
		return nil, ErrTextNotPositive
	}

	reply := newComment(thread.ID, user, text, time.Now())
	if err := s.threads.AppendComment(ctx, thread.ID, reply); err != nil {
		return nil, fmt.Errorf("appending comment: %w", err)
	}

	return &CommentResponse{ThreadID: thread.ID.String(), CommentID: reply.ID.String()}, nil
}

func (s *CommentService) LikeComment(ctx context.Context, token, postID, threadID, commentID string) error {
	user, comment, err := s.resolveUserAndComment(ctx, token, postID, threadID, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID == user.ID {
		return ErrLikeOwnComment
	}
	if _, liked := comment.Likes[user.ID]; liked {
		return ErrAlreadyLikedComment
	}

	return s.threads.AddCommentLike(ctx, comment.ThreadID, comment.ID, user.ID)
}

func (s *CommentService) UnlikeComment(ctx context.Context, token, postID, threadID, commentID string) error {
	user, comment, err := s.resolveUserAndComment(ctx, token, postID, threadID, commentID)
	if err != nil {
		return err
	}

	if _, liked := comment.Likes[user.ID]; !liked {
		return ErrCommentNotLiked
	}

	return s.threads.RemoveCommentLike(ctx, comment.ThreadID, comment.ID, user.ID)
}

func (s *CommentService) DeleteComment(ctx context.Context, token, postID, threadID, commentID string) error {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return err
	}

	thread, err := s.getThreadForPost(ctx, postID, threadID)
	if err != nil {
		return err
	}
	if thread == nil {
		return ErrThreadNotFound
	}

	comment, err := s.getComment(ctx, thread, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID != user.ID {
		return ErrNotCommentAuthor
	}

	return s.threads.RemoveComment(ctx, thread.ID, comment.ID)
}

func (s *CommentService) ReportComment(ctx context.Context, token, postID, threadID, commentID, reason string) error {
	user, comment, err := s.resolveUserAndComment(ctx, token, postID, threadID, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID == user.ID {
		return ErrReportOwnComment
	}
	if _, reported := comment.Reports[user.ID]; reported {
		return ErrAlreadyReportedComment
	}

	count, err := s.threads.AddCommentReport(ctx, comment.ThreadID, comment.ID, domain.Report{
		ReporterID: user.ID,
		Reason:     reason,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		return err
	}
	if count > s.hideThreshold {
		return s.threads.SetCommentHidden(ctx, comment.ThreadID, comment.ID)
	}
	return nil
}

// GetCommentsForPost lists one page of the post's threads, oldest first.
func (s *CommentService) GetCommentsForPost(ctx context.Context, postID string, batchIndex int) ([]ThreadSummary, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	threads, err := s.threads.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	page := batch.Page(s.ranker.RankThreads(threads), batchIndex, s.threadBatchSize)
	out := make([]ThreadSummary, 0, len(page))
	for _, t := range page {
		out = append(out, ThreadSummary{ThreadID: t.ID.String(), ReplyCount: t.ReplyCount()})
	}
	return out, nil
}

// GetCommentsForThread lists one page of a thread's visible comments in
// chronological read order, root first.
func (s *CommentService) GetCommentsForThread(ctx context.Context, threadID string, batchIndex int) ([]CommentInfo, error) {
	thread, err := s.getThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}

	visible := make([]*domain.Comment, 0, len(thread.Comments))
	for _, c := range thread.Comments {
		if !c.Hidden {
			visible = append(visible, c)
		}
	}

	page := batch.Page(s.ranker.RankComments(visible), batchIndex, s.commentBatchSize)
	out := make([]CommentInfo, 0, len(page))
	for _, c := range page {
		out = append(out, CommentInfo{
			CommentID:      c.ID.String(),
			Body:           c.Body,
			AuthorUsername: c.AuthorUsername,
			CreatedAt:      c.CreatedAt,
			UpdatedAt:      c.UpdatedAt,
			Likes:          len(c.Likes),
		})
	}
	return out, nil
}

func (s *CommentService) resolveUserAndComment(ctx context.Context, token, postID, threadID, commentID string) (*domain.User, *domain.Comment, error) {
	user, err := resolveUser(ctx, s.sessions, s.users, token)
	if err != nil {
		return nil, nil, err
	}

	thread, err := s.getThreadForPost(ctx, postID, threadID)
	if err != nil {
		return nil, nil, err
	}
	if thread == nil {
		return nil, nil, ErrCommentNotFound
	}

	comment, err := s.getComment(ctx, thread, commentID)
	if err != nil {
		return nil, nil, err
	}
	if comment == nil {
		return nil, nil, ErrCommentNotFound
	}
	return user, comment, nil
}

func (s *CommentService) getPost(ctx context.Context, postID string) (*domain.Post, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, nil
	}
	return s.posts.GetByID(ctx, id)
}

func (s *CommentService) getThread(ctx context.Context, threadID string) (*domain.CommentThread, error) {
	id, err := uuid.Parse(threadID)
	if err != nil {
		return nil, nil
	}
	return s.threads.GetByID(ctx, id)
}

// getThreadForPost resolves a thread and checks it hangs off the given
// post; a thread reached through the wrong post does not exist as far as
// the caller is concerned.
func (s *CommentService) getThreadForPost(ctx context.Context, postID, threadID string) (*domain.CommentThread, error) {
	post, err := uuid.Parse(postID)
	if err != nil {
		return nil, nil
	}
	thread, err := s.getThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if thread == nil || thread.PostID != post {
		return nil, nil
	}
	return thread, nil
}

func (s *CommentService) getComment(ctx context.Context, thread *domain.CommentThread, commentID string) (*domain.Comment, error) {
	id, err := uuid.Parse(commentID)
	if err != nil {
		return nil, nil
	}
	return s.threads.GetComment(ctx, thread.ID, id)
}

func newComment(threadID uuid.UUID, author *domain.User, body string, now time.Time) *domain.Comment {
	return &domain.Comment{
		ID:             uuid.New(),
		ThreadID:       threadID,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		Body:           body,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
