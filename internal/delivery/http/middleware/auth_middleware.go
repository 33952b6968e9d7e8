// Package middleware contains the HTTP middleware of the delivery layer.
package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "releaf/internal/delivery/context"
	"releaf/internal/delivery/http/response"
	"releaf/internal/domain/entity"
	"releaf/internal/domain/service"
	"releaf/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware resolves the caller session from the bearer token and guards
// teacher-only routes.
type AuthMiddleware struct {
	verifier service.IdentityVerifier
	profiles usecase.ProfileUsecase
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(verifier service.IdentityVerifier, profiles usecase.ProfileUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		profiles: profiles,
		logger:   logger,
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		return "", false
	}

	return token, true
}

// Authenticate requires a valid bearer token and stores the resolved session
// on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, "SIGN_IN_REQUIRED", "Authorization header with a Bearer token is required")
		}

		session, err := m.verifier.VerifySession(c.Request().Context(), token)
		if err != nil {
			m.logger.Debug("Token verification failed", slog.String("error", err.Error()))

			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		deliverycontext.SetSession(c, session)

		return next(c)
	}
}

// OptionalAuthenticate resolves the session when a token is present and falls
// back to the anonymous session otherwise. A token that is present but invalid
// is still rejected.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			deliverycontext.SetSession(c, entity.Anonymous())

			return next(c)
		}

		session, err := m.verifier.VerifySession(c.Request().Context(), token)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		deliverycontext.SetSession(c, session)

		return next(c)
	}
}

// RequireTeacher allows the request through only when the device profile is
// set to the teacher role. It must run after Authenticate.
func (m *AuthMiddleware) RequireTeacher(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		settings, err := m.profiles.GetSettings(c.Request().Context())
		if err != nil {
			return response.HandleAppError(c, err)
		}

		if settings.UserType != entity.RoleTeacher {
			return response.Forbidden(c, "FORBIDDEN", "This action requires the teacher role")
		}

		return next(c)
	}
}
