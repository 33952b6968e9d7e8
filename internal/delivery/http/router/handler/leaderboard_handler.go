package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"releaf/internal/delivery/http/response"
	"releaf/internal/usecase"

	"github.com/labstack/echo/v4"
)

// LeaderboardHandler holds dependencies for the leaderboard handler.
type LeaderboardHandler struct {
	leaderboardUC usecase.LeaderboardUsecase
	logger        *slog.Logger
}

// NewLeaderboardHandler is the constructor for LeaderboardHandler.
func NewLeaderboardHandler(leaderboardUC usecase.LeaderboardUsecase, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardUC: leaderboardUC,
		logger:        logger,
	}
}

// Get regenerates the board. The optional size query parameter bounds the
// number of entries.
func (h *LeaderboardHandler) Get(c echo.Context) error {
	size := 0
	if raw := c.QueryParam("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "size must be an integer")
		}
		size = parsed
	}

	entries, err := h.leaderboardUC.Generate(c.Request().Context(), size)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, entries, "")
}
