package auth

import (
	"context"

	"releaf/config"
	"releaf/internal/domain/entity"
	"releaf/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// firebaseVerifier validates Firebase ID tokens minted by the mobile clients.
type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates an identity verifier backed by the Firebase Admin SDK.
func NewFirebaseVerifier(ctx context.Context, cfg *config.FirebaseConfig) (service.IdentityVerifier, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get Firebase auth client")
	}

	return &firebaseVerifier{client: client}, nil
}

// VerifySession validates the ID token and maps its claims onto a session.
func (v *firebaseVerifier) VerifySession(ctx context.Context, token string) (entity.Session, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return entity.Anonymous(), errors.Wrap(service.ErrTokenInvalid, err.Error())
	}

	session := entity.Session{UserID: decoded.UID}
	if name, ok := decoded.Claims["name"].(string); ok {
		session.Name = name
	}
	if email, ok := decoded.Claims["email"].(string); ok {
		session.Email = email
	}

	return session, nil
}
