package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "releaf/internal/delivery/context"
	"releaf/internal/delivery/http/response"
	"releaf/internal/domain/service"
	"releaf/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MissionHandlerParams holds dependencies for MissionHandler, injected by Fx.
type MissionHandlerParams struct {
	fx.In

	ActivityUC usecase.ActivityUsecase
	QRCodeSvc  service.QRCodeService
	Logger     *slog.Logger
}

// MissionHandler holds dependencies for mission-related handlers.
type MissionHandler struct {
	activityUC usecase.ActivityUsecase
	qrcodeSvc  service.QRCodeService
	logger     *slog.Logger
}

// NewMissionHandler is the constructor for MissionHandler.
func NewMissionHandler(params MissionHandlerParams) *MissionHandler {
	return &MissionHandler{
		activityUC: params.ActivityUC,
		qrcodeSvc:  params.QRCodeSvc,
		logger:     params.Logger,
	}
}

// CreateMissionRequest carries the mission description and the teacher's
// coordinates.
type CreateMissionRequest struct {
	Description string   `json:"description" validate:"required"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// Create adds a new active mission at the teacher's position.
func (h *MissionHandler) Create(c echo.Context) error {
	var req CreateMissionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid mission input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	record, err := h.activityUC.CreateMission(
		c.Request().Context(),
		deliverycontext.GetSession(c),
		&usecase.CreateMissionInput{Description: req.Description},
		&requestLocator{latitude: req.Latitude, longitude: req.Longitude},
	)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, record, "Mission created")
}

// Accept marks a mission as taken by the signed-in caller.
func (h *MissionHandler) Accept(c echo.Context) error {
	record, err := h.activityUC.AcceptMission(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, record, "Mission accepted")
}

// Complete marks an accepted mission as done.
func (h *MissionHandler) Complete(c echo.Context) error {
	record, err := h.activityUC.CompleteMission(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, record, "Mission completed")
}

// Expire retires a mission that ran out.
func (h *MissionHandler) Expire(c echo.Context) error {
	record, err := h.activityUC.ExpireMission(c.Request().Context(), deliverycontext.GetSession(c), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, record, "Mission expired")
}

// QR renders a scannable PNG for sharing a mission in the classroom.
func (h *MissionHandler) QR(c echo.Context) error {
	missionID := c.Param("id")

	cols, err := h.activityUC.Load(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	found := false
	for _, mission := range cols.Missions {
		if mission.ID == missionID {
			found = true

			break
		}
	}
	if !found {
		return response.NotFound(c, "MISSION_NOT_FOUND", "Mission not found")
	}

	png, err := h.qrcodeSvc.GenerateMissionQR(missionID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
