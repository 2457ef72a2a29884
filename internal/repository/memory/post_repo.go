package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrewkatson/positiveonly/internal/domain"
)

type PostRepo struct {
	store *Store
}

func NewPostRepo(store *Store) *PostRepo {
	return &PostRepo{store: store}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if post.Likes == nil {
		post.Likes = make(map[uuid.UUID]struct{})
	}
	if post.Reports == nil {
		post.Reports = make(map[uuid.UUID]domain.Report)
	}
	r.store.posts = append(r.store.posts, post)
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.findByID(id), nil
}

func (r *PostRepo) ListAll(ctx context.Context) ([]*domain.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return append([]*domain.Post(nil), r.store.posts...), nil
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Post, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*domain.Post
	for _, p := range r.store.posts {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *PostRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := 0
	for _, p := range r.store.posts {
		if p.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (r *PostRepo) AddLike(ctx context.Context, postID, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p := r.findByID(postID)
	if p == nil {
		return ErrMissingRecord
	}
	p.Likes[userID] = struct{}{}
	return nil
}

func (r *PostRepo) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p := r.findByID(postID)
	if p == nil {
		return ErrMissingRecord
	}
	delete(p.Likes, userID)
	return nil
}

func (r *PostRepo) AddReport(ctx context.Context, postID uuid.UUID, report domain.Report) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p := r.findByID(postID)
	if p == nil {
		return 0, ErrMissingRecord
	}
	p.Reports[report.ReporterID] = report
	return len(p.Reports), nil
}

func (r *PostRepo) SetHidden(ctx context.Context, postID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p := r.findByID(postID)
	if p == nil {
		return ErrMissingRecord
	}
	p.Hidden = true
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, p := range r.store.posts {
		if p.ID == id {
			r.store.posts = append(r.store.posts[:i], r.store.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *PostRepo) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var removed []uuid.UUID
	kept := r.store.posts[:0]
	for _, p := range r.store.posts {
		if p.AuthorID == authorID {
			removed = append(removed, p.ID)
			continue
		}
		kept = append(kept, p)
	}
	r.store.posts = kept
	return removed, nil
}

func (r *PostRepo) findByID(id uuid.UUID) *domain.Post {
	for _, p := range r.store.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}
