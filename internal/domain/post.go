package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"post_identifier"`
	AuthorID  uuid.UUID `json:"author_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"creation_time"`
	// Hidden is monotonic: set once the report count crosses the threshold,
	// never cleared.
	Hidden  bool                     `json:"hidden"`
	Likes   map[uuid.UUID]struct{}   `json:"-"`
	Reports map[uuid.UUID]Report     `json:"-"`
}

// Report records one user reporting one piece of content. At most one per
// (reporter, content) pair.
type Report struct {
	ReporterID uuid.UUID `json:"reporter_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"creation_time"`
}
