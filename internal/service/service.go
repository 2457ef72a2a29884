// Package service implements the simulator's business logic: auth and
// session lifecycle, content operations, and the social graph. Each service
// validates every precondition before touching the store, so a failed call
// never leaves a partial mutation behind.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/andrewkatson/positiveonly/internal/domain"
	"github.com/andrewkatson/positiveonly/internal/repository"
	"github.com/andrewkatson/positiveonly/pkg/validator"
)

// ErrUnauthorized is returned whenever a capability token does not resolve
// to a live session.
var ErrUnauthorized = &domain.Error{Kind: domain.KindAuth, Message: "Unauthorized"}

// resolveUser maps a session token to its owning user.
func resolveUser(ctx context.Context, sessions repository.SessionRepository, users repository.UserRepository, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	sess, err := sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrUnauthorized
	}
	user, err := users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

func validationError(errs validator.ValidationErrors) error {
	return &domain.Error{Kind: domain.KindValidation, Message: errs.String()}
}

// newToken mints an opaque credential. Session and cookie tokens are plain
// random identifiers, not self-describing tokens: the server-side tables
// are the source of truth and deleting a row revokes the credential.
func newToken() string {
	return uuid.NewString()
}
