package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"releaf/internal/delivery/http/validator"
	"releaf/internal/domain/entity"
	"releaf/internal/domain/service"
	"releaf/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// missionCreateRecorder implements only CreateMission; the embedded nil
// interface panics if the handler reaches any other operation.
type missionCreateRecorder struct {
	usecase.ActivityUsecase
	called bool
}

func (r *missionCreateRecorder) CreateMission(_ context.Context, _ entity.Session, input *usecase.CreateMissionInput, _ service.LocationProvider) (*entity.MissionRecord, error) {
	r.called = true

	return &entity.MissionRecord{ID: "m-1", Description: input.Description, Status: entity.MissionActive}, nil
}

func newMissionTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/missions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestMissionHandler_Create_MissingDescriptionRejectedBeforeUsecase(t *testing.T) {
	recorder := &missionCreateRecorder{}
	h := NewMissionHandler(MissionHandlerParams{ActivityUC: recorder, Logger: slog.Default()})

	c, rec := newMissionTestContext(t, `{"latitude": 1.0, "longitude": 2.0}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	assert.False(t, recorder.called)
}

func TestMissionHandler_Create_ValidRequestReachesUsecase(t *testing.T) {
	recorder := &missionCreateRecorder{}
	h := NewMissionHandler(MissionHandlerParams{ActivityUC: recorder, Logger: slog.Default()})

	c, rec := newMissionTestContext(t, `{"description": "Pick up litter", "latitude": 1.0, "longitude": 2.0}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, recorder.called)
}
