package service

import (
	"context"

	"releaf/internal/domain/entity"
	"releaf/internal/errors"
)

// ErrBadCredentials is returned for an unknown account or a wrong password.
// Implementations must not reveal which of the two it was.
var ErrBadCredentials = errors.New("bad credentials")

// CredentialAuthenticator exchanges an email/password pair for a bearer token
// and the resolved session. Used by the development identity provider;
// production builds verify hosted identity tokens instead.
type CredentialAuthenticator interface {
	SignIn(ctx context.Context, email, password string) (string, entity.Session, error)
}
