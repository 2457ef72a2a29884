package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrewkatson/positiveonly/internal/domain"
)

type CookieRepo struct {
	store *Store
}

func NewCookieRepo(store *Store) *CookieRepo {
	return &CookieRepo{store: store}
}

func (r *CookieRepo) Create(ctx context.Context, cookie *domain.LoginCookie) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.cookies = append(r.store.cookies, cookie)
	return nil
}

func (r *CookieRepo) GetBySeries(ctx context.Context, seriesID uuid.UUID) (*domain.LoginCookie, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, c := range r.store.cookies {
		if c.SeriesID == seriesID {
			return c, nil
		}
	}
	return nil, nil
}

// RotateToken swaps in a fresh cookie token for the series. The series
// identifier itself never changes.
func (r *CookieRepo) RotateToken(ctx context.Context, seriesID uuid.UUID, newToken string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, c := range r.store.cookies {
		if c.SeriesID == seriesID {
			c.Token = newToken
			return nil
		}
	}
	return ErrMissingRecord
}

func (r *CookieRepo) DeleteBySeries(ctx context.Context, seriesID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, c := range r.store.cookies {
		if c.SeriesID == seriesID {
			r.store.cookies = append(r.store.cookies[:i], r.store.cookies[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *CookieRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.cookies[:0]
	for _, c := range r.store.cookies {
		if c.UserID != userID {
			kept = append(kept, c)
		}
	}
	r.store.cookies = kept
	return nil
}
