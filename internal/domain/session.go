package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one logged-in device. A user may hold several at once;
// logout removes exactly one.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginCookie is the persistent "remember me" credential. The series
// identifier is issued once and stays stable; the token is rotated on every
// redemption so a replayed old token exposes cookie theft.
type LoginCookie struct {
	SeriesID uuid.UUID `json:"series_identifier"`
	Token    string    `json:"login_cookie_token"`
	UserID   uuid.UUID `json:"user_id"`
}
