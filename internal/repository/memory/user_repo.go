package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/andrewkatson/positiveonly/internal/domain"
)

type UserRepo struct {
	store *Store
}

func NewUserRepo(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if user.Following == nil {
		user.Following = make(map[uuid.UUID]struct{})
	}
	if user.Followers == nil {
		user.Followers = make(map[uuid.UUID]struct{})
	}
	if user.Blocked == nil {
		user.Blocked = make(map[uuid.UUID]struct{})
	}
	r.store.users = append(r.store.users, user)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.findByID(id), nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Username == usernameOrEmail || u.Email == usernameOrEmail {
			return u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByUsernameAndEmail(ctx context.Context, username, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Username == username && u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// Search matches usernames by case-insensitive substring, skips the
// excluded user, and stops at limit. Results keep registration order so
// paging is deterministic.
func (r *UserRepo) Search(ctx context.Context, fragment string, exclude uuid.UUID, limit int) ([]*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	needle := strings.ToLower(fragment)
	var out []*domain.User
	for _, u := range r.store.users {
		if u.ID == exclude {
			continue
		}
		if strings.Contains(strings.ToLower(u.Username), needle) {
			out = append(out, u)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *UserRepo) SetPassword(ctx context.Context, id uuid.UUID, hash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u := r.findByID(id)
	if u == nil {
		return ErrMissingRecord
	}
	u.PasswordHash = hash
	return nil
}

func (r *UserRepo) SetResetCode(ctx context.Context, id uuid.UUID, code int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u := r.findByID(id)
	if u == nil {
		return ErrMissingRecord
	}
	u.ResetCode = code
	return nil
}

func (r *UserRepo) SetIdentity(ctx context.Context, id uuid.UUID, verified, adult bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u := r.findByID(id)
	if u == nil {
		return ErrMissingRecord
	}
	u.IdentityVerified = verified
	u.IsAdult = adult
	return nil
}

// Follow records both directions of the edge under one critical section so
// Following and Followers can never disagree.
func (r *UserRepo) Follow(ctx context.Context, follower, target uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	f, t := r.findByID(follower), r.findByID(target)
	if f == nil || t == nil {
		return ErrMissingRecord
	}
	f.Following[target] = struct{}{}
	t.Followers[follower] = struct{}{}
	return nil
}

func (r *UserRepo) Unfollow(ctx context.Context, follower, target uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	f, t := r.findByID(follower), r.findByID(target)
	if f == nil || t == nil {
		return ErrMissingRecord
	}
	delete(f.Following, target)
	delete(t.Followers, follower)
	return nil
}

// ToggleBlock flips the blocker's edge to the target. Blocking also removes
// any follow edges between the two, in both directions.
func (r *UserRepo) ToggleBlock(ctx context.Context, blocker, target uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, t := r.findByID(blocker), r.findByID(target)
	if b == nil || t == nil {
		return false, ErrMissingRecord
	}

	if _, ok := b.Blocked[target]; ok {
		delete(b.Blocked, target)
		return false, nil
	}

	b.Blocked[target] = struct{}{}
	delete(b.Following, target)
	delete(t.Followers, blocker)
	delete(t.Following, blocker)
	delete(b.Followers, target)
	return true, nil
}

// Delete removes the user row and scrubs the user from every other user's
// edge sets. Dependent tables (posts, sessions, cookies) are cascaded by
// their own repositories.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.users[:0]
	for _, u := range r.store.users {
		if u.ID == id {
			continue
		}
		delete(u.Following, id)
		delete(u.Followers, id)
		delete(u.Blocked, id)
		kept = append(kept, u)
	}
	r.store.users = kept
	return nil
}

func (r *UserRepo) findByID(id uuid.UUID) *domain.User {
	for _, u := range r.store.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}
