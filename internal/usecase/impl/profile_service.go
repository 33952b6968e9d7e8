package impl

import (
	"context"
	"log/slog"

	"releaf/internal/domain/entity"
	domainerrors "releaf/internal/domain/errors"
	"releaf/internal/domain/repository"
	"releaf/internal/usecase"

	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface. The two settings are
// stored as plain strings under their historical keys.
type profileService struct {
	store  repository.StateStore
	logger *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(store repository.StateStore, logger *slog.Logger) usecase.ProfileUsecase {
	return &profileService{
		store:  store,
		logger: logger,
	}
}

// GetSettings reads userType and userSchool. Unset keys fall back to the
// student role and an empty school name.
func (srv *profileService) GetSettings(ctx context.Context) (*usecase.ProfileSettings, error) {
	settings := &usecase.ProfileSettings{UserType: entity.RoleStudent}

	raw, err := srv.store.Get(ctx, repository.KeyUserType)
	switch {
	case err == nil:
		role := entity.Role(raw)
		if role.IsValid() {
			settings.UserType = role
		} else {
			srv.logger.Warn("Ignoring unknown stored user type", slog.String("value", string(raw)))
		}
	case !errors.Is(err, repository.ErrKeyNotFound):
		return nil, domainerrors.NewStorageExecuteError(err, "failed to read "+repository.KeyUserType)
	}

	raw, err = srv.store.Get(ctx, repository.KeyUserSchool)
	switch {
	case err == nil:
		settings.UserSchool = string(raw)
	case !errors.Is(err, repository.ErrKeyNotFound):
		return nil, domainerrors.NewStorageExecuteError(err, "failed to read "+repository.KeyUserSchool)
	}

	return settings, nil
}

// UpdateSettings applies a partial update; nil fields are left unchanged.
func (srv *profileService) UpdateSettings(ctx context.Context, input *usecase.UpdateProfileSettingsInput) (*usecase.ProfileSettings, error) {
	if input == nil {
		return srv.GetSettings(ctx)
	}

	if input.UserType != nil {
		role := entity.Role(*input.UserType)
		if !role.IsValid() {
			return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("userType must be student or teacher"))
		}
		if err := srv.store.Set(ctx, repository.KeyUserType, []byte(role)); err != nil {
			return nil, domainerrors.NewStorageExecuteError(err, "failed to persist "+repository.KeyUserType)
		}
	}

	if input.UserSchool != nil {
		if err := srv.store.Set(ctx, repository.KeyUserSchool, []byte(*input.UserSchool)); err != nil {
			return nil, domainerrors.NewStorageExecuteError(err, "failed to persist "+repository.KeyUserSchool)
		}
	}

	srv.logger.Info("Profile settings updated")

	return srv.GetSettings(ctx)
}
