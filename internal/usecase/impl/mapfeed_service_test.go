package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"releaf/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFeedService_Features(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	feed := NewMapFeedService(fx.service, logger)

	_, err := fx.service.PlantTree(ctx, studentSession(), &stubCamera{}, workingLocator())
	require.NoError(t, err)
	_, err = fx.service.ReportGarbage(ctx, studentSession(), workingLocator())
	require.NoError(t, err)
	active, err := fx.service.CreateMission(ctx, teacherSession(), &usecase.CreateMissionInput{Description: "Rake leaves"}, workingLocator())
	require.NoError(t, err)
	accepted, err := fx.service.CreateMission(ctx, teacherSession(), &usecase.CreateMissionInput{Description: "Sweep yard"}, workingLocator())
	require.NoError(t, err)
	_, err = fx.service.AcceptMission(ctx, studentSession(), accepted.ID)
	require.NoError(t, err)

	fc, err := feed.Features(ctx)
	require.NoError(t, err)
	require.Len(t, fc.Features, 3, "accepted missions are left off the map")

	kinds := map[string]int{}
	ids := map[interface{}]bool{}
	for _, feature := range fc.Features {
		kind, _ := feature.Properties["kind"].(string)
		kinds[kind]++
		ids[feature.ID] = true
	}
	assert.Equal(t, map[string]int{"tree": 1, "garbage": 1, "mission": 1}, kinds)
	assert.True(t, ids[active.ID])
	assert.False(t, ids[accepted.ID])
}

func TestMapFeedService_Features_EmptyStore(t *testing.T) {
	fx := createTestActivityService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	feed := NewMapFeedService(fx.service, logger)

	fc, err := feed.Features(context.Background())

	require.NoError(t, err)
	assert.Empty(t, fc.Features)
}
