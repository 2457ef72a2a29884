package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrewkatson/positiveonly/internal/domain"
)

// Lookup methods return (nil, nil) when no record matches; services decide
// which error that becomes. Mutating methods fail only when the target row
// is gone, which services rule out by validating first.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error)
	GetByUsernameAndEmail(ctx context.Context, username, email string) (*domain.User, error)
	Search(ctx context.Context, fragment string, exclude uuid.UUID, limit int) ([]*domain.User, error)
	SetPassword(ctx context.Context, id uuid.UUID, hash string) error
	SetResetCode(ctx context.Context, id uuid.UUID, code int) error
	SetIdentity(ctx context.Context, id uuid.UUID, verified, adult bool) error
	Follow(ctx context.Context, follower, target uuid.UUID) error
	Unfollow(ctx context.Context, follower, target uuid.UUID) error
	ToggleBlock(ctx context.Context, blocker, target uuid.UUID) (blocked bool, err error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteByToken(ctx context.Context, token string) (bool, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type CookieRepository interface {
	Create(ctx context.Context, cookie *domain.LoginCookie) error
	GetBySeries(ctx context.Context, seriesID uuid.UUID) (*domain.LoginCookie, error)
	RotateToken(ctx context.Context, seriesID uuid.UUID, newToken string) error
	DeleteBySeries(ctx context.Context, seriesID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListAll(ctx context.Context) ([]*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*domain.Post, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
	AddLike(ctx context.Context, postID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, postID, userID uuid.UUID) error
	// AddReport records the report and returns the distinct reporter count.
	AddReport(ctx context.Context, postID uuid.UUID, report domain.Report) (int, error)
	SetHidden(ctx context.Context, postID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByAuthor removes every post by the author and returns the ids
	// of the removed posts so dependent rows can be cascaded.
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error)
}

type ThreadRepository interface {
	Create(ctx context.Context, thread *domain.CommentThread) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CommentThread, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]*domain.CommentThread, error)
	AppendComment(ctx context.Context, threadID uuid.UUID, comment *domain.Comment) error
	GetComment(ctx context.Context, threadID, commentID uuid.UUID) (*domain.Comment, error)
	RemoveComment(ctx context.Context, threadID, commentID uuid.UUID) error
	AddCommentLike(ctx context.Context, threadID, commentID, userID uuid.UUID) error
	RemoveCommentLike(ctx context.Context, threadID, commentID, userID uuid.UUID) error
	AddCommentReport(ctx context.Context, threadID, commentID uuid.UUID, report domain.Report) (int, error)
	SetCommentHidden(ctx context.Context, threadID, commentID uuid.UUID) error
	DeleteByPosts(ctx context.Context, postIDs []uuid.UUID) error
}
