package auth

import (
	"context"
	"log/slog"

	"releaf/config"
	"releaf/internal/domain/entity"
	"releaf/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VerifierParams holds dependencies for the identity verifier, injected by Fx.
type VerifierParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewIdentityVerifier selects the Firebase verifier when a project is
// configured and falls back to locally issued tokens for development installs.
func NewIdentityVerifier(params VerifierParams) (service.IdentityVerifier, error) {
	cfg := params.Config

	if cfg.Firebase != nil && cfg.Firebase.ProjectID != "" {
		params.Logger.Info("Using Firebase identity verifier",
			slog.String("project_id", cfg.Firebase.ProjectID),
		)

		return NewFirebaseVerifier(params.Ctx, cfg.Firebase)
	}

	if cfg.Auth == nil || cfg.Auth.Secret == "" {
		return nil, errors.New("identity verification needs a firebase project or an auth secret")
	}

	params.Logger.Info("Using locally issued tokens for identity verification")

	tokens, err := NewLocalTokenService(cfg.Auth)
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// NewPasswordHasher applies the configured bcrypt cost.
func NewPasswordHasher(cfg *config.Config) service.PasswordHasher {
	cost := 0
	if cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	return NewBcryptHasher(cost)
}

// NewCredentialAuthenticator wires the local accounts file sign-in. Installs
// without an accounts file get an authenticator that rejects everything, so
// the login route stays safe to expose.
func NewCredentialAuthenticator(cfg *config.Config, hasher service.PasswordHasher, logger *slog.Logger) (service.CredentialAuthenticator, error) {
	if cfg.Auth == nil || cfg.Auth.Secret == "" || cfg.Auth.AccountsPath == "" {
		logger.Info("Local sign-in disabled, no accounts file configured")

		return disabledAuthenticator{}, nil
	}

	tokens, err := NewLocalTokenService(cfg.Auth)
	if err != nil {
		return nil, err
	}

	identity, err := NewLocalIdentity(cfg.Auth.AccountsPath, hasher, tokens)
	if err != nil {
		return nil, err
	}

	return identity, nil
}

// disabledAuthenticator rejects every credential pair.
type disabledAuthenticator struct{}

func (disabledAuthenticator) SignIn(context.Context, string, string) (string, entity.Session, error) {
	return "", entity.Anonymous(), errors.WithStack(service.ErrBadCredentials)
}
