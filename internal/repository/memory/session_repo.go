package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrewkatson/positiveonly/internal/domain"
)

type SessionRepo struct {
	store *Store
}

func NewSessionRepo(store *Store) *SessionRepo {
	return &SessionRepo{store: store}
}

func (r *SessionRepo) Create(ctx context.Context, session *domain.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions = append(r.store.sessions, session)
	return nil
}

func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, s := range r.store.sessions {
		if s.Token == token {
			return s, nil
		}
	}
	return nil, nil
}

// DeleteByToken removes exactly the one session with the token. The user's
// other sessions stay valid.
func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, s := range r.store.sessions {
		if s.Token == token {
			r.store.sessions = append(r.store.sessions[:i], r.store.sessions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *SessionRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.sessions[:0]
	for _, s := range r.store.sessions {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	r.store.sessions = kept
	return nil
}
