package impl

import (
	"context"
	"log/slog"

	domainerrors "releaf/internal/domain/errors"
	"releaf/internal/domain/service"
	"releaf/internal/usecase"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface on top of the credential
// authenticator, for installs running without a hosted identity provider.
type authService struct {
	authenticator service.CredentialAuthenticator
	logger        *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(authenticator service.CredentialAuthenticator, logger *slog.Logger) usecase.AuthUsecase {
	return &authService{
		authenticator: authenticator,
		logger:        logger,
	}
}

// SignIn exchanges credentials for a bearer token. Unknown accounts and wrong
// passwords surface as the same error.
func (srv *authService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SignInOutput, error) {
	if input == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed)
	}

	token, session, err := srv.authenticator.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}

		return nil, errors.Wrap(err, "sign-in failed")
	}

	srv.logger.Info("User signed in", slog.String("user_id", session.UserID))

	return &usecase.SignInOutput{
		Token:  token,
		UserID: session.UserID,
		Name:   session.Name,
		Email:  session.Email,
	}, nil
}
