package handler

import (
	"log/slog"
	"net/http"

	"releaf/internal/delivery/http/response"
	"releaf/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ProfileHandler holds dependencies for the profile settings handlers.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(profileUC usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUC: profileUC,
		logger:    logger,
	}
}

// GetSettings returns the device profile settings.
func (h *ProfileHandler) GetSettings(c echo.Context) error {
	settings, err := h.profileUC.GetSettings(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, settings, "")
}

// UpdateSettings applies a partial settings update.
func (h *ProfileHandler) UpdateSettings(c echo.Context) error {
	var input usecase.UpdateProfileSettingsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	settings, err := h.profileUC.UpdateSettings(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, settings, "Settings updated")
}
