package handler

import (
	"log/slog"
	"net/http"

	"releaf/internal/delivery/http/response"
	"releaf/internal/usecase"

	"github.com/labstack/echo/v4"
)

// MapFeedHandler holds dependencies for the map feed handler.
type MapFeedHandler struct {
	mapfeedUC usecase.MapFeedUsecase
	logger    *slog.Logger
}

// NewMapFeedHandler is the constructor for MapFeedHandler.
func NewMapFeedHandler(mapfeedUC usecase.MapFeedUsecase, logger *slog.Logger) *MapFeedHandler {
	return &MapFeedHandler{
		mapfeedUC: mapfeedUC,
		logger:    logger,
	}
}

// Features returns the activity collections as bare GeoJSON, the shape the map
// surface consumes directly.
func (h *MapFeedHandler) Features(c echo.Context) error {
	fc, err := h.mapfeedUC.Features(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "application/geo+json", data)
}
