// Package memory holds every simulator table in process memory. Tables are
// insertion-ordered slices scanned on lookup, the same shape as the real
// backend's rows but without a database underneath. One mutex guards all
// tables so cross-table updates (follow symmetry, cascades) stay coherent
// even when the simulator is driven from several goroutines.
package memory

import (
	"errors"
	"sync"

	"github.com/andrewkatson/positiveonly/internal/domain"
)

// ErrMissingRecord is returned by mutating methods whose target row no
// longer exists. Services validate before mutating, so seeing this error
// outside a race indicates a bug.
var ErrMissingRecord = errors.New("memory: record not found")

// Store owns the tables. Construct the per-entity repositories over a single
// Store so they share the lock.
type Store struct {
	mu sync.RWMutex

	users    []*domain.User
	sessions []*domain.Session
	cookies  []*domain.LoginCookie
	posts    []*domain.Post
	threads  []*domain.CommentThread
}

func NewStore() *Store {
	return &Store{}
}
