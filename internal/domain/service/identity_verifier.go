package service

import (
	"context"

	"releaf/internal/domain/entity"
	"releaf/internal/errors"
)

// ErrTokenInvalid is returned when a bearer token cannot be verified.
var ErrTokenInvalid = errors.New("identity token invalid")

// IdentityVerifier turns a bearer token into the caller's session.
// Implementations verify Firebase ID tokens in production and locally signed
// tokens in development.
type IdentityVerifier interface {
	// VerifySession validates the token and returns the session it asserts.
	// Returns ErrTokenInvalid (possibly wrapped) for anything unverifiable.
	VerifySession(ctx context.Context, token string) (entity.Session, error)
}
