// Package feedrank orders content for the listing operations. The real
// backend injects its ranking algorithm the same way, so a smarter ranker
// can be swapped in without touching the services.
package feedrank

import (
	"sort"

	"github.com/google/uuid"

	"github.com/andrewkatson/positiveonly/internal/domain"
)

// Ranker orders already-filtered content before pagination. Implementations
// must be deterministic.
type Ranker interface {
	// RankFeed orders posts for the viewer's discovery feed. The viewer's
	// own posts are not part of the feed.
	RankFeed(viewer uuid.UUID, posts []*domain.Post) []*domain.Post
	// RankThreads orders comment threads under a post.
	RankThreads(threads []*domain.CommentThread) []*domain.CommentThread
	// RankComments orders comments within a thread.
	RankComments(comments []*domain.Comment) []*domain.Comment
}

// Chronological is the default ranker: discovery feeds are newest-first,
// conversations oldest-first so a thread reads top to bottom.
type Chronological struct{}

func NewChronological() *Chronological { return &Chronological{} }

func (*Chronological) RankFeed(viewer uuid.UUID, posts []*domain.Post) []*domain.Post {
	out := make([]*domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.AuthorID != viewer {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (*Chronological) RankThreads(threads []*domain.CommentThread) []*domain.CommentThread {
	out := append([]*domain.CommentThread(nil), threads...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (*Chronological) RankComments(comments []*domain.Comment) []*domain.Comment {
	out := append([]*domain.Comment(nil), comments...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// NewestFirst sorts posts newest-first without any viewer filtering. Used
// for per-user and followed-users listings.
func NewestFirst(posts []*domain.Post) []*domain.Post {
	out := append([]*domain.Post(nil), posts...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
