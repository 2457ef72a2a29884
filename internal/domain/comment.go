package domain

import (
	"time"

	"github.com/google/uuid"
)

// CommentThread groups a root comment and its flat list of replies. The
// root is always Comments[0]; replies follow in arrival order. There is no
// nesting below that.
type CommentThread struct {
	ID        uuid.UUID  `json:"comment_thread_identifier"`
	PostID    uuid.UUID  `json:"post_id"`
	CreatedAt time.Time  `json:"creation_time"`
	Comments  []*Comment `json:"comments"`
}

// ReplyCount returns the number of replies below the root comment.
func (t *CommentThread) ReplyCount() int {
	if len(t.Comments) == 0 {
		return 0
	}
	return len(t.Comments) - 1
}

type Comment struct {
	ID       uuid.UUID `json:"comment_identifier"`
	ThreadID uuid.UUID `json:"thread_id"`
	AuthorID uuid.UUID `json:"author_id"`
	// AuthorUsername is denormalized so comments survive the author's
	// account deletion as addressable orphans.
	AuthorUsername string    `json:"author_username"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"creation_time"`
	UpdatedAt      time.Time `json:"updated_time"`
	Hidden         bool      `json:"hidden"`

	Likes   map[uuid.UUID]struct{} `json:"-"`
	Reports map[uuid.UUID]Report   `json:"-"`
}
