package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResetCodeUnset marks a user with no pending password reset.
const ResetCodeUnset = -1

type User struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	ResetCode        int       `json:"-"`
	IdentityVerified bool      `json:"identity_is_verified"`
	IsAdult          bool      `json:"-"`
	CreatedAt        time.Time `json:"created_at"`

	// Follow and block edges, keyed by user id. Following/Followers must
	// never disagree: if A follows B then B.Followers contains A.
	Following map[uuid.UUID]struct{} `json:"-"`
	Followers map[uuid.UUID]struct{} `json:"-"`
	Blocked   map[uuid.UUID]struct{} `json:"-"`
}
