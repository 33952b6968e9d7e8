package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "releaf/internal/delivery/context"
	"releaf/internal/delivery/http/response"
	"releaf/internal/domain/entity"
	"releaf/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ActivityHandlerParams holds dependencies for ActivityHandler, injected by Fx.
type ActivityHandlerParams struct {
	fx.In

	ActivityUC usecase.ActivityUsecase
	Logger     *slog.Logger
}

// ActivityHandler holds dependencies for activity-related handlers.
type ActivityHandler struct {
	activityUC usecase.ActivityUsecase
	logger     *slog.Logger
}

// NewActivityHandler is the constructor for ActivityHandler.
func NewActivityHandler(params ActivityHandlerParams) *ActivityHandler {
	return &ActivityHandler{
		activityUC: params.ActivityUC,
		logger:     params.Logger,
	}
}

// PlantTreeRequest carries the sensor readings for a tree planting.
type PlantTreeRequest struct {
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Photo            string   `json:"photo"` // base64; empty means the capture was cancelled
	PhotoContentType string   `json:"photoContentType"`
}

// ReportGarbageRequest carries the sensor readings for a garbage report.
type ReportGarbageRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// List returns all three activity collections.
func (h *ActivityHandler) List(c echo.Context) error {
	cols, err := h.activityUC.Load(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, cols, "")
}

// Stats returns the caller's activity counts.
func (h *ActivityHandler) Stats(c echo.Context) error {
	stats, err := h.activityUC.StatsFor(c.Request().Context(), deliverycontext.GetSession(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// PlantTree records a planted tree from the request's photo and coordinates.
func (h *ActivityHandler) PlantTree(c echo.Context) error {
	var req PlantTreeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid tree planting input")
	}

	record, err := h.activityUC.PlantTree(
		c.Request().Context(),
		deliverycontext.GetSession(c),
		&requestCamera{photo: req.Photo, contentType: req.PhotoContentType},
		&requestLocator{latitude: req.Latitude, longitude: req.Longitude},
	)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, record, "Tree planted")
}

// ReportGarbage records a garbage point at the request's coordinates.
func (h *ActivityHandler) ReportGarbage(c echo.Context) error {
	var req ReportGarbageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid garbage report input")
	}

	record, err := h.activityUC.ReportGarbage(
		c.Request().Context(),
		deliverycontext.GetSession(c),
		&requestLocator{latitude: req.Latitude, longitude: req.Longitude},
	)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, record, "Garbage reported")
}

// CleanupGarbage removes a garbage point. Cleaning an id that is already gone
// succeeds, matching the store's idempotent delete.
func (h *ActivityHandler) CleanupGarbage(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Garbage id is required")
	}

	if err := h.activityUC.CleanupGarbage(c.Request().Context(), deliverycontext.GetSession(c), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Garbage cleaned up")
}

func parseCollection(c echo.Context) (entity.Collection, bool) {
	collection := entity.Collection(c.Param("collection"))

	return collection, collection.IsValid()
}

// RemoveMine removes the caller's records from one collection.
func (h *ActivityHandler) RemoveMine(c echo.Context) error {
	collection, ok := parseCollection(c)
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "Unknown collection")
	}

	if err := h.activityUC.RemoveMine(c.Request().Context(), deliverycontext.GetSession(c), collection); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Your records were removed")
}

// RemoveAll empties one collection.
func (h *ActivityHandler) RemoveAll(c echo.Context) error {
	collection, ok := parseCollection(c)
	if !ok {
		return response.BadRequest(c, "INVALID_INPUT", "Unknown collection")
	}

	if err := h.activityUC.RemoveAll(c.Request().Context(), collection); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Collection cleared")
}
