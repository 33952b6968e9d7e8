package usecase

import "context"

// SignInInput defines the credentials for the local development sign-in.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignInOutput carries the issued bearer token and the resolved identity.
type SignInOutput struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email"`
}

// AuthUsecase exchanges local credentials for a bearer token. Production
// deployments verify Firebase ID tokens instead and never hit this path.
type AuthUsecase interface {
	SignIn(ctx context.Context, input *SignInInput) (*SignInOutput, error)
}
