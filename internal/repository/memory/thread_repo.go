package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrewkatson/positiveonly/internal/domain"
)

type ThreadRepo struct {
	store *Store
}

func NewThreadRepo(store *Store) *ThreadRepo {
	return &ThreadRepo{store: store}
}

func (r *ThreadRepo) Create(ctx context.Context, thread *domain.CommentThread) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, c := range thread.Comments {
		initComment(c)
	}
	r.store.threads = append(r.store.threads, thread)
	return nil
}

func (r *ThreadRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CommentThread, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.findByID(id), nil
}

func (r *ThreadRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.CommentThread, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*domain.CommentThread
	for _, t := range r.store.threads {
		if t.PostID == postID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *ThreadRepo) AppendComment(ctx context.Context, threadID uuid.UUID, comment *domain.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t := r.findByID(threadID)
	if t == nil {
		return ErrMissingRecord
	}
	initComment(comment)
	t.Comments = append(t.Comments, comment)
	return nil
}

func (r *ThreadRepo) GetComment(ctx context.Context, threadID, commentID uuid.UUID) (*domain.Comment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	t := r.findByID(threadID)
	if t == nil {
		return nil, nil
	}
	for _, c := range t.Comments {
		if c.ID == commentID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *ThreadRepo) RemoveComment(ctx context.Context, threadID, commentID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t := r.findByID(threadID)
	if t == nil {
		return ErrMissingRecord
	}
	for i, c := range t.Comments {
		if c.ID == commentID {
			t.Comments = append(t.Comments[:i], t.Comments[i+1:]...)
			return nil
		}
	}
	return ErrMissingRecord
}

func (r *ThreadRepo) AddCommentLike(ctx context.Context, threadID, commentID, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c := r.findComment(threadID, commentID)
	if c == nil {
		return ErrMissingRecord
	}
	c.Likes[userID] = struct{}{}
	return nil
}

func (r *ThreadRepo) RemoveCommentLike(ctx context.Context, threadID, commentID, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c := r.findComment(threadID, commentID)
	if c == nil {
		return ErrMissingRecord
	}
	delete(c.Likes, userID)
	return nil
}

func (r *ThreadRepo) AddCommentReport(ctx context.Context, threadID, commentID uuid.UUID, report domain.Report) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c := r.findComment(threadID, commentID)
	if c == nil {
		return 0, ErrMissingRecord
	}
	c.Reports[report.ReporterID] = report
	return len(c.Reports), nil
}

func (r *ThreadRepo) SetCommentHidden(ctx context.Context, threadID, commentID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c := r.findComment(threadID, commentID)
	if c == nil {
		return ErrMissingRecord
	}
	c.Hidden = true
	return nil
}

// DeleteByPosts drops every thread belonging to the given posts, mirroring
// the backend's foreign-key cascade from posts to comment threads.
func (r *ThreadRepo) DeleteByPosts(ctx context.Context, postIDs []uuid.UUID) error {
	if len(postIDs) == 0 {
		return nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	doomed := make(map[uuid.UUID]struct{}, len(postIDs))
	for _, id := range postIDs {
		doomed[id] = struct{}{}
	}

	kept := r.store.threads[:0]
	for _, t := range r.store.threads {
		if _, gone := doomed[t.PostID]; !gone {
			kept = append(kept, t)
		}
	}
	r.store.threads = kept
	return nil
}

func (r *ThreadRepo) findByID(id uuid.UUID) *domain.CommentThread {
	for _, t := range r.store.threads {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (r *ThreadRepo) findComment(threadID, commentID uuid.UUID) *domain.Comment {
	t := r.findByID(threadID)
	if t == nil {
		return nil
	}
	for _, c := range t.Comments {
		if c.ID == commentID {
			return c
		}
	}
	return nil
}

func initComment(c *domain.Comment) {
	if c.Likes == nil {
		c.Likes = make(map[uuid.UUID]struct{})
	}
	if c.Reports == nil {
		c.Reports = make(map[uuid.UUID]domain.Report)
	}
}
