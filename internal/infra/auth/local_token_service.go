package auth

import (
	"context"
	"time"

	"releaf/config"
	"releaf/internal/domain/entity"
	"releaf/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const defaultTokenTTL = 24 * time.Hour

// localTokenService issues and verifies HS256 session tokens for development
// installs that run without Firebase. Tokens carry the same identity fields the
// Firebase verifier extracts, so the rest of the service cannot tell them apart.
type localTokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewLocalTokenService is the constructor for localTokenService.
func NewLocalTokenService(cfg *config.AuthConfig) (*localTokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth secret must be provided for local tokens")
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &localTokenService{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
	}, nil
}

// IssueToken creates a signed session token for the given identity.
func (s *localTokenService) IssueToken(session entity.Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   session.UserID,
		"name":  session.Name,
		"email": session.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// VerifySession validates a locally issued token and returns the session it asserts.
func (s *localTokenService) VerifySession(_ context.Context, tokenString string) (entity.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return entity.Anonymous(), errors.Wrap(service.ErrTokenInvalid, "token parse failed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.Anonymous(), errors.Wrap(service.ErrTokenInvalid, "unexpected claims shape")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return entity.Anonymous(), errors.Wrap(service.ErrTokenInvalid, "subject missing from token")
	}

	session := entity.Session{UserID: sub}
	if name, ok := claims["name"].(string); ok {
		session.Name = name
	}
	if email, ok := claims["email"].(string); ok {
		session.Email = email
	}

	return session, nil
}
