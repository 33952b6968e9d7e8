package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"releaf/internal/domain/entity"
	domainerrors "releaf/internal/domain/errors"
	"releaf/internal/domain/repository"
	"releaf/internal/domain/service"
	"releaf/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// activityFixtures holds all test dependencies for activity service tests.
type activityFixtures struct {
	service usecase.ActivityUsecase
	store   *memStateStore
	photos  *stubPhotoStore
	events  *captureEvents
}

func createTestActivityService(t *testing.T) activityFixtures {
	t.Helper()

	store := newMemStateStore()
	photos := &stubPhotoStore{}
	events := &captureEvents{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewActivityService(store, photos, events, logger)

	return activityFixtures{
		service: svc,
		store:   store,
		photos:  photos,
		events:  events,
	}
}

func studentSession() entity.Session {
	return entity.Session{UserID: "user-a", Name: "Ada", Email: "ada@school.example"}
}

func teacherSession() entity.Session {
	return entity.Session{UserID: "teacher-1", Name: "Ms. Oak", Email: "oak@school.example"}
}

func workingLocator() *stubLocator {
	return &stubLocator{pos: entity.Coordinate{Latitude: 59.437, Longitude: 24.7536}}
}

func TestActivityService_Load_EmptyStore(t *testing.T) {
	fx := createTestActivityService(t)

	cols, err := fx.service.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, cols.Trees)
	assert.Empty(t, cols.Garbage)
	assert.Empty(t, cols.Missions)
	assert.NotNil(t, cols.Trees)
	assert.NotNil(t, cols.Garbage)
	assert.NotNil(t, cols.Missions)
}

func TestActivityService_Load_CorruptBlobRecoversToEmpty(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	require.NoError(t, fx.store.Set(ctx, repository.KeyPlantedTrees, []byte("definitely not a JSON array")))

	cols, err := fx.service.Load(ctx)

	require.NoError(t, err)
	assert.Empty(t, cols.Trees)
}

func TestActivityService_PlantTree_RoundTrip(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()
	locator := workingLocator()

	before, err := fx.service.Load(ctx)
	require.NoError(t, err)

	record, err := fx.service.PlantTree(ctx, studentSession(), &stubCamera{}, locator)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "user-a", record.UserID)
	assert.Equal(t, "Ada", record.Username)
	assert.InDelta(t, 59.437, record.Latitude, 1e-9)
	assert.InDelta(t, 24.7536, record.Longitude, 1e-9)
	assert.Equal(t, "trees/photo-1", record.PhotoKey)

	// A fresh service over the same store must see the new record.
	fresh := NewActivityService(fx.store, fx.photos, fx.events, slog.New(slog.NewTextHandler(io.Discard, nil)))
	after, err := fresh.Load(ctx)
	require.NoError(t, err)
	require.Len(t, after.Trees, len(before.Trees)+1)
	assert.Equal(t, record.ID, after.Trees[0].ID)
	assert.Equal(t, record.Latitude, after.Trees[0].Latitude)
	assert.Equal(t, record.UserID, after.Trees[0].UserID)

	require.Len(t, fx.photos.saved, 1)
	assert.Equal(t, []string{service.EventTreePlanted}, fx.events.types())
}

func TestActivityService_PlantTree_CancelledCaptureHasNoSideEffects(t *testing.T) {
	fx := createTestActivityService(t)
	locator := workingLocator()
	camera := &stubCamera{captureErr: errors.WithStack(service.ErrCaptureCancelled)}

	_, err := fx.service.PlantTree(context.Background(), studentSession(), camera, locator)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCaptureCancelled)
	assert.Zero(t, locator.calls, "location must not be touched after a cancelled capture")
	assert.Empty(t, fx.photos.saved)
	assert.Zero(t, fx.store.writes(repository.KeyPlantedTrees))
	assert.Empty(t, fx.events.events)
}

func TestActivityService_PlantTree_CameraPermissionDenied(t *testing.T) {
	fx := createTestActivityService(t)
	camera := &stubCamera{permErr: errors.WithStack(service.ErrPermissionDenied)}

	_, err := fx.service.PlantTree(context.Background(), studentSession(), camera, workingLocator())

	assert.ErrorIs(t, err, domainerrors.ErrCameraPermissionDenied)
	assert.Zero(t, fx.store.writes(repository.KeyPlantedTrees))
}

func TestActivityService_PlantTree_LocationFailureAborts(t *testing.T) {
	fx := createTestActivityService(t)
	locator := &stubLocator{posErr: errors.WithStack(service.ErrPositionUnavailable)}

	_, err := fx.service.PlantTree(context.Background(), studentSession(), &stubCamera{}, locator)

	assert.ErrorIs(t, err, domainerrors.ErrLocationUnavailable)
	assert.Empty(t, fx.photos.saved, "photo must not be stored when no position fix exists")
	assert.Zero(t, fx.store.writes(repository.KeyPlantedTrees))
}

func TestActivityService_PlantTree_PersistFailureSurfaced(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()
	fx.store.setErr[repository.KeyPlantedTrees] = errors.New("disk full")

	_, err := fx.service.PlantTree(ctx, studentSession(), &stubCamera{}, workingLocator())

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "STORAGE_EXECUTE_FAILED", appErr.ErrorCode())

	// Durable state stays untouched and nothing was announced.
	cols, loadErr := fx.service.Load(ctx)
	require.NoError(t, loadErr)
	assert.Empty(t, cols.Trees)
	assert.Empty(t, fx.events.events)
}

func TestActivityService_ReportGarbage_AnonymousAllowed(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	record, err := fx.service.ReportGarbage(ctx, entity.Anonymous(), workingLocator())

	require.NoError(t, err)
	assert.Empty(t, record.UserID)

	cols, err := fx.service.Load(ctx)
	require.NoError(t, err)
	require.Len(t, cols.Garbage, 1)
	assert.Equal(t, []string{service.EventGarbageReported}, fx.events.types())
}

func TestActivityService_CleanupGarbage_Idempotent(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()
	session := studentSession()

	record, err := fx.service.ReportGarbage(ctx, session, workingLocator())
	require.NoError(t, err)

	require.NoError(t, fx.service.CleanupGarbage(ctx, session, record.ID))
	once, err := fx.service.Load(ctx)
	require.NoError(t, err)

	// Second cleanup of the same id is a no-op, not an error.
	require.NoError(t, fx.service.CleanupGarbage(ctx, session, record.ID))
	twice, err := fx.service.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, once.Garbage, twice.Garbage)
	assert.Empty(t, twice.Garbage)
	assert.Equal(t, []string{service.EventGarbageReported, service.EventGarbageCleaned}, fx.events.types())
}

func TestActivityService_RemoveMine_FiltersOnlyCallersRecords(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	_, err := fx.service.ReportGarbage(ctx, entity.Session{UserID: "user-a", Name: "Ada"}, workingLocator())
	require.NoError(t, err)
	_, err = fx.service.ReportGarbage(ctx, entity.Session{UserID: "user-b", Name: "Bo"}, workingLocator())
	require.NoError(t, err)
	_, err = fx.service.ReportGarbage(ctx, entity.Anonymous(), workingLocator())
	require.NoError(t, err)

	require.NoError(t, fx.service.RemoveMine(ctx, entity.Session{UserID: "user-a"}, entity.CollectionGarbage))

	cols, err := fx.service.Load(ctx)
	require.NoError(t, err)
	require.Len(t, cols.Garbage, 2)
	for _, record := range cols.Garbage {
		assert.NotEqual(t, "user-a", record.UserID)
	}
}

func TestActivityService_RemoveMine_AnonymousRemovesNothing(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	_, err := fx.service.ReportGarbage(ctx, entity.Anonymous(), workingLocator())
	require.NoError(t, err)
	writesBefore := fx.store.writes(repository.KeyGarbagePoints)

	require.NoError(t, fx.service.RemoveMine(ctx, entity.Anonymous(), entity.CollectionGarbage))

	cols, err := fx.service.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, cols.Garbage, 1, "anonymous records are not owned by an anonymous caller")
	assert.Equal(t, writesBefore, fx.store.writes(repository.KeyGarbagePoints), "nothing should be rewritten")
}

func TestActivityService_RemoveAll_EmptiesCollection(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	_, err := fx.service.ReportGarbage(ctx, studentSession(), workingLocator())
	require.NoError(t, err)

	require.NoError(t, fx.service.RemoveAll(ctx, entity.CollectionGarbage))

	cols, err := fx.service.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, cols.Garbage)
}

func TestActivityService_CreateMission_EmptyDescriptionFailsBeforeLocation(t *testing.T) {
	fx := createTestActivityService(t)
	locator := workingLocator()

	for _, description := range []string{"", "   ", "\t\n"} {
		_, err := fx.service.CreateMission(context.Background(), teacherSession(), &usecase.CreateMissionInput{Description: description}, locator)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	}

	assert.Zero(t, locator.calls, "validation must run before any sensor access")
	assert.Zero(t, fx.store.writes(repository.KeyTeacherMissions))
}

func TestActivityService_CreateMission_Success(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	record, err := fx.service.CreateMission(ctx, teacherSession(), &usecase.CreateMissionInput{Description: "  Plant 5 oaks near the gym  "}, workingLocator())

	require.NoError(t, err)
	assert.Equal(t, entity.MissionActive, record.Status)
	assert.Equal(t, "teacher-1", record.TeacherID)
	assert.Equal(t, "Ms. Oak", record.TeacherName)
	assert.Equal(t, "Plant 5 oaks near the gym", record.Description)
	assert.Empty(t, record.AcceptedBy)

	cols, err := fx.service.Load(ctx)
	require.NoError(t, err)
	require.Len(t, cols.Missions, 1)
	assert.Equal(t, []string{service.EventMissionCreated}, fx.events.types())
}

func TestActivityService_AcceptMission_OnlyMatchingRecordChanges(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()
	teacher := teacherSession()

	first, err := fx.service.CreateMission(ctx, teacher, &usecase.CreateMissionInput{Description: "Pick up litter"}, workingLocator())
	require.NoError(t, err)
	second, err := fx.service.CreateMission(ctx, teacher, &usecase.CreateMissionInput{Description: "Water saplings"}, workingLocator())
	require.NoError(t, err)

	before, err := fx.service.Load(ctx)
	require.NoError(t, err)

	accepted, err := fx.service.AcceptMission(ctx, studentSession(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MissionAccepted, accepted.Status)
	assert.Equal(t, "user-a", accepted.AcceptedBy)

	after, err := fx.service.Load(ctx)
	require.NoError(t, err)
	require.Len(t, after.Missions, 2)
	for _, record := range after.Missions {
		if record.ID == second.ID {
			// Untouched records survive byte for byte.
			for _, original := range before.Missions {
				if original.ID == second.ID {
					assert.Equal(t, original, record)
				}
			}
			assert.Equal(t, entity.MissionActive, record.Status)
			assert.Empty(t, record.AcceptedBy)
		}
	}
}

func TestActivityService_AcceptMission_ReacceptRejected(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()

	mission, err := fx.service.CreateMission(ctx, teacherSession(), &usecase.CreateMissionInput{Description: "Pick up litter"}, workingLocator())
	require.NoError(t, err)

	_, err = fx.service.AcceptMission(ctx, entity.Session{UserID: "user-a"}, mission.ID)
	require.NoError(t, err)

	_, err = fx.service.AcceptMission(ctx, entity.Session{UserID: "user-b"}, mission.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrMissionTransition)

	// First acceptance is untouched.
	cols, err := fx.service.Load(ctx)
	require.NoError(t, err)
	require.Len(t, cols.Missions, 1)
	assert.Equal(t, "user-a", cols.Missions[0].AcceptedBy)
}

func TestActivityService_AcceptMission_RequiresSession(t *testing.T) {
	fx := createTestActivityService(t)

	_, err := fx.service.AcceptMission(context.Background(), entity.Anonymous(), "any-id")

	assert.ErrorIs(t, err, domainerrors.ErrSignInRequired)
}

func TestActivityService_AcceptMission_NotFound(t *testing.T) {
	fx := createTestActivityService(t)

	_, err := fx.service.AcceptMission(context.Background(), studentSession(), "missing-id")

	assert.ErrorIs(t, err, domainerrors.ErrMissionNotFound)
}

func TestActivityService_MissionLifecycle_CompleteAndExpire(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()
	teacher := teacherSession()

	mission, err := fx.service.CreateMission(ctx, teacher, &usecase.CreateMissionInput{Description: "Compost drive"}, workingLocator())
	require.NoError(t, err)

	// Completing an active mission skips the accepted step and is rejected.
	_, err = fx.service.CompleteMission(ctx, teacher, mission.ID)
	assert.ErrorIs(t, err, domainerrors.ErrMissionTransition)

	_, err = fx.service.AcceptMission(ctx, studentSession(), mission.ID)
	require.NoError(t, err)

	completed, err := fx.service.CompleteMission(ctx, teacher, mission.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MissionCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	assert.WithinDuration(t, time.Now().UTC(), *completed.CompletedAt, time.Minute)

	// Terminal states reject any further change.
	_, err = fx.service.ExpireMission(ctx, teacher, mission.ID)
	assert.ErrorIs(t, err, domainerrors.ErrMissionTransition)
}

func TestActivityService_StatsFor(t *testing.T) {
	fx := createTestActivityService(t)
	ctx := context.Background()
	ada := entity.Session{UserID: "user-a", Name: "Ada"}
	bo := entity.Session{UserID: "user-b", Name: "Bo"}

	_, err := fx.service.PlantTree(ctx, ada, &stubCamera{}, workingLocator())
	require.NoError(t, err)
	_, err = fx.service.PlantTree(ctx, bo, &stubCamera{}, workingLocator())
	require.NoError(t, err)
	_, err = fx.service.ReportGarbage(ctx, ada, workingLocator())
	require.NoError(t, err)

	stats, err := fx.service.StatsFor(ctx, ada)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Trees)
	assert.Equal(t, 1, stats.Garbage)

	// Anonymous callers get totals across all users.
	totals, err := fx.service.StatsFor(ctx, entity.Anonymous())
	require.NoError(t, err)
	assert.Equal(t, 2, totals.Trees)
	assert.Equal(t, 1, totals.Garbage)
}

func TestActivityService_PublishFailureIsSwallowed(t *testing.T) {
	fx := createTestActivityService(t)
	fx.events.pubErr = errors.New("broker down")

	_, err := fx.service.ReportGarbage(context.Background(), studentSession(), workingLocator())

	require.NoError(t, err, "events are advisory and must not fail the mutation")
}
