package usecase

import (
	"context"

	"releaf/internal/domain/entity"
)

// ProfileSettings are the per-device profile values kept in the durable store.
type ProfileSettings struct {
	UserType   entity.Role `json:"userType"`
	UserSchool string      `json:"userSchool"`
}

// UpdateProfileSettingsInput defines a partial settings update; nil fields are
// left unchanged.
type UpdateProfileSettingsInput struct {
	UserType   *string `json:"userType,omitempty" validate:"omitempty,oneof=student teacher"`
	UserSchool *string `json:"userSchool,omitempty"`
}

// ProfileUsecase manages the userType and userSchool settings.
type ProfileUsecase interface {
	GetSettings(ctx context.Context) (*ProfileSettings, error)
	UpdateSettings(ctx context.Context, input *UpdateProfileSettingsInput) (*ProfileSettings, error)
}
