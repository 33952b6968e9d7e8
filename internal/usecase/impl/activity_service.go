// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	deliverycontext "releaf/internal/delivery/context"
	"releaf/internal/domain/entity"
	domainerrors "releaf/internal/domain/errors"
	"releaf/internal/domain/repository"
	"releaf/internal/domain/service"
	"releaf/internal/usecase"

	"github.com/pkg/errors"
)

// activityService implements the ActivityUsecase interface. It is the sole
// writer to the three collection keys; mu serializes mutations so the last
// persist never silently discards a concurrent one.
type activityService struct {
	store  repository.StateStore
	photos service.PhotoStore
	events service.EventPublisher
	logger *slog.Logger
	now    func() time.Time

	mu sync.Mutex
}

// NewActivityService is the constructor for activityService.
func NewActivityService(
	store repository.StateStore,
	photos service.PhotoStore,
	events service.EventPublisher,
	logger *slog.Logger,
) usecase.ActivityUsecase {
	return &activityService{
		store:  store,
		photos: photos,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// loadCollection reads and decodes one collection key. A missing key or a blob
// that fails to decode yields an empty collection; neither is surfaced to the
// caller. Storage failures other than absence do propagate.
func loadCollection[T any](ctx context.Context, store repository.StateStore, key string, logger *slog.Logger) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return []T{}, nil
		}

		return nil, domainerrors.NewStorageExecuteError(err, "failed to read "+key)
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		logger.Warn("Discarding unreadable collection blob",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)

		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}

	return records, nil
}

// persistCollection durably replaces one collection key with the given records.
func persistCollection[T any](ctx context.Context, store repository.StateStore, key string, records []T) error {
	if records == nil {
		records = []T{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "failed to serialize "+key)
	}

	if err := store.Set(ctx, key, raw); err != nil {
		return domainerrors.NewStorageExecuteError(err, "failed to persist "+key)
	}

	return nil
}

// publish sends an activity event. Events are advisory: failures are logged
// and never surfaced to the caller.
func (srv *activityService) publish(ctx context.Context, eventType, recordID, userID string, lat, lon float64) {
	event := &service.ActivityEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		Type:      eventType,
		RecordID:  recordID,
		UserID:    userID,
		Latitude:  lat,
		Longitude: lon,
		At:        srv.now().UTC(),
	}

	if err := srv.events.PublishActivityEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to publish activity event",
			slog.String("event_type", eventType),
			slog.String("record_id", recordID),
			slog.String("error", err.Error()),
		)
	}
}

// acquirePosition runs the permission prompt and position fix, mapping sensor
// failures to the domain error taxonomy.
func acquirePosition(ctx context.Context, locator service.LocationProvider) (entity.Coordinate, error) {
	if err := locator.RequestPermission(ctx); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			return entity.Coordinate{}, errors.WithStack(domainerrors.ErrLocationPermissionDenied)
		}

		return entity.Coordinate{}, errors.Wrap(err, "location permission request failed")
	}

	pos, err := locator.CurrentPosition(ctx)
	if err != nil {
		return entity.Coordinate{}, errors.WithStack(domainerrors.ErrLocationUnavailable)
	}

	return pos, nil
}

// Load reads all three collections from the durable store.
func (srv *activityService) Load(ctx context.Context) (*usecase.Collections, error) {
	trees, err := loadCollection[entity.TreeRecord](ctx, srv.store, repository.KeyPlantedTrees, srv.logger)
	if err != nil {
		return nil, err
	}

	garbage, err := loadCollection[entity.GarbageRecord](ctx, srv.store, repository.KeyGarbagePoints, srv.logger)
	if err != nil {
		return nil, err
	}

	missions, err := loadCollection[entity.MissionRecord](ctx, srv.store, repository.KeyTeacherMissions, srv.logger)
	if err != nil {
		return nil, err
	}

	return &usecase.Collections{Trees: trees, Garbage: garbage, Missions: missions}, nil
}

// PlantTree runs the full planting flow: capture, position fix, photo upload,
// record construction, persist. A cancelled capture aborts before any side
// effect; the durable write happens before the result becomes visible.
func (srv *activityService) PlantTree(ctx context.Context, session entity.Session, camera service.Camera, locator service.LocationProvider) (*entity.TreeRecord, error) {
	if err := camera.RequestPermission(ctx); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			return nil, errors.WithStack(domainerrors.ErrCameraPermissionDenied)
		}

		return nil, errors.Wrap(err, "camera permission request failed")
	}

	photo, err := camera.Capture(ctx)
	if err != nil {
		if errors.Is(err, service.ErrCaptureCancelled) {
			return nil, errors.WithStack(domainerrors.ErrCaptureCancelled)
		}

		return nil, errors.Wrap(err, "photo capture failed")
	}

	pos, err := acquirePosition(ctx, locator)
	if err != nil {
		return nil, err
	}

	photoKey, err := srv.photos.SavePhoto(ctx, photo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store tree photo")
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	trees, err := loadCollection[entity.TreeRecord](ctx, srv.store, repository.KeyPlantedTrees, srv.logger)
	if err != nil {
		return nil, err
	}

	record := entity.TreeRecord{
		ID:        entity.NewRecordID(srv.now()),
		UserID:    session.UserID,
		Username:  session.DisplayName(),
		Latitude:  pos.Latitude,
		Longitude: pos.Longitude,
		PhotoKey:  photoKey,
		PlantedAt: srv.now().UTC(),
	}

	if err := persistCollection(ctx, srv.store, repository.KeyPlantedTrees, append([]entity.TreeRecord{record}, trees...)); err != nil {
		return nil, err
	}

	srv.logger.Info("Tree planted",
		slog.String("record_id", record.ID),
		slog.String("user_id", session.UserID),
	)
	srv.publish(ctx, service.EventTreePlanted, record.ID, session.UserID, record.Latitude, record.Longitude)

	return &record, nil
}

// ReportGarbage acquires the current location and appends a garbage record.
func (srv *activityService) ReportGarbage(ctx context.Context, session entity.Session, locator service.LocationProvider) (*entity.GarbageRecord, error) {
	pos, err := acquirePosition(ctx, locator)
	if err != nil {
		return nil, err
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	garbage, err := loadCollection[entity.GarbageRecord](ctx, srv.store, repository.KeyGarbagePoints, srv.logger)
	if err != nil {
		return nil, err
	}

	record := entity.GarbageRecord{
		ID:         entity.NewRecordID(srv.now()),
		UserID:     session.UserID,
		Username:   session.DisplayName(),
		Latitude:   pos.Latitude,
		Longitude:  pos.Longitude,
		ReportedAt: srv.now().UTC(),
	}

	if err := persistCollection(ctx, srv.store, repository.KeyGarbagePoints, append([]entity.GarbageRecord{record}, garbage...)); err != nil {
		return nil, err
	}

	srv.logger.Info("Garbage reported",
		slog.String("record_id", record.ID),
		slog.String("user_id", session.UserID),
	)
	srv.publish(ctx, service.EventGarbageReported, record.ID, session.UserID, record.Latitude, record.Longitude)

	return &record, nil
}

// CleanupGarbage hard-deletes the garbage record with the given id. Cleaning an
// id that is already gone is a no-op.
func (srv *activityService) CleanupGarbage(ctx context.Context, session entity.Session, id string) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	garbage, err := loadCollection[entity.GarbageRecord](ctx, srv.store, repository.KeyGarbagePoints, srv.logger)
	if err != nil {
		return err
	}

	var removed *entity.GarbageRecord
	remaining := make([]entity.GarbageRecord, 0, len(garbage))
	for _, record := range garbage {
		if record.ID == id {
			removed = &record

			continue
		}
		remaining = append(remaining, record)
	}

	if err := persistCollection(ctx, srv.store, repository.KeyGarbagePoints, remaining); err != nil {
		return err
	}

	if removed != nil {
		srv.logger.Info("Garbage cleaned up",
			slog.String("record_id", id),
			slog.String("user_id", session.UserID),
		)
		srv.publish(ctx, service.EventGarbageCleaned, id, session.UserID, removed.Latitude, removed.Longitude)
	}

	return nil
}

// CreateMission validates the description before touching any sensor, then
// acquires the location and appends an active mission.
func (srv *activityService) CreateMission(ctx context.Context, session entity.Session, input *usecase.CreateMissionInput, locator service.LocationProvider) (*entity.MissionRecord, error) {
	if session.IsAnonymous() {
		return nil, errors.WithStack(domainerrors.ErrSignInRequired)
	}
	if input == nil || strings.TrimSpace(input.Description) == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("description must not be empty"))
	}

	pos, err := acquirePosition(ctx, locator)
	if err != nil {
		return nil, err
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	missions, err := loadCollection[entity.MissionRecord](ctx, srv.store, repository.KeyTeacherMissions, srv.logger)
	if err != nil {
		return nil, err
	}

	record := entity.MissionRecord{
		ID:          entity.NewRecordID(srv.now()),
		TeacherID:   session.UserID,
		TeacherName: session.DisplayName(),
		Description: strings.TrimSpace(input.Description),
		Latitude:    pos.Latitude,
		Longitude:   pos.Longitude,
		Status:      entity.MissionActive,
		CreatedAt:   srv.now().UTC(),
	}

	if err := persistCollection(ctx, srv.store, repository.KeyTeacherMissions, append(missions, record)); err != nil {
		return nil, err
	}

	srv.logger.Info("Mission created",
		slog.String("record_id", record.ID),
		slog.String("teacher_id", session.UserID),
	)
	srv.publish(ctx, service.EventMissionCreated, record.ID, session.UserID, record.Latitude, record.Longitude)

	return &record, nil
}

// transitionMission applies fn to the matching mission and persists the full
// collection. Only the matching record changes.
func (srv *activityService) transitionMission(ctx context.Context, missionID string, fn func(*entity.MissionRecord) error) (*entity.MissionRecord, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	missions, err := loadCollection[entity.MissionRecord](ctx, srv.store, repository.KeyTeacherMissions, srv.logger)
	if err != nil {
		return nil, err
	}

	var updated *entity.MissionRecord
	for i := range missions {
		if missions[i].ID != missionID {
			continue
		}

		if err := fn(&missions[i]); err != nil {
			if errors.Is(err, entity.ErrInvalidMissionTransition) {
				return nil, errors.WithStack(domainerrors.ErrMissionTransition.WithDetails(err.Error()))
			}

			return nil, err
		}
		updated = &missions[i]

		break
	}

	if updated == nil {
		return nil, errors.WithStack(domainerrors.ErrMissionNotFound)
	}

	if err := persistCollection(ctx, srv.store, repository.KeyTeacherMissions, missions); err != nil {
		return nil, err
	}

	return updated, nil
}

// AcceptMission transitions a mission to accepted on behalf of the signed-in
// caller. Accepting an already accepted mission is rejected, not overwritten.
func (srv *activityService) AcceptMission(ctx context.Context, session entity.Session, missionID string) (*entity.MissionRecord, error) {
	if session.IsAnonymous() {
		return nil, errors.WithStack(domainerrors.ErrSignInRequired)
	}

	mission, err := srv.transitionMission(ctx, missionID, func(m *entity.MissionRecord) error {
		return m.Accept(session.UserID)
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Mission accepted",
		slog.String("record_id", mission.ID),
		slog.String("user_id", session.UserID),
	)
	srv.publish(ctx, service.EventMissionAccepted, mission.ID, session.UserID, mission.Latitude, mission.Longitude)

	return mission, nil
}

// CompleteMission transitions an accepted mission to completed.
func (srv *activityService) CompleteMission(ctx context.Context, session entity.Session, missionID string) (*entity.MissionRecord, error) {
	if session.IsAnonymous() {
		return nil, errors.WithStack(domainerrors.ErrSignInRequired)
	}

	mission, err := srv.transitionMission(ctx, missionID, func(m *entity.MissionRecord) error {
		return m.Complete(srv.now().UTC())
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Mission completed",
		slog.String("record_id", mission.ID),
		slog.String("user_id", session.UserID),
	)
	srv.publish(ctx, service.EventMissionCompleted, mission.ID, session.UserID, mission.Latitude, mission.Longitude)

	return mission, nil
}

// ExpireMission transitions an active or accepted mission to expired.
func (srv *activityService) ExpireMission(ctx context.Context, session entity.Session, missionID string) (*entity.MissionRecord, error) {
	if session.IsAnonymous() {
		return nil, errors.WithStack(domainerrors.ErrSignInRequired)
	}

	mission, err := srv.transitionMission(ctx, missionID, func(m *entity.MissionRecord) error {
		return m.Expire()
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Mission expired",
		slog.String("record_id", mission.ID),
		slog.String("user_id", session.UserID),
	)
	srv.publish(ctx, service.EventMissionExpired, mission.ID, session.UserID, mission.Latitude, mission.Longitude)

	return mission, nil
}

// RemoveMine removes the caller's records from the given collection. Anonymous
// callers own nothing, so nothing is removed and nothing is written.
func (srv *activityService) RemoveMine(ctx context.Context, session entity.Session, collection entity.Collection) error {
	if session.IsAnonymous() {
		return nil
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	switch collection {
	case entity.CollectionTrees:
		trees, err := loadCollection[entity.TreeRecord](ctx, srv.store, repository.KeyPlantedTrees, srv.logger)
		if err != nil {
			return err
		}
		remaining := make([]entity.TreeRecord, 0, len(trees))
		for _, record := range trees {
			if record.UserID != session.UserID {
				remaining = append(remaining, record)
			}
		}

		return persistCollection(ctx, srv.store, repository.KeyPlantedTrees, remaining)

	case entity.CollectionGarbage:
		garbage, err := loadCollection[entity.GarbageRecord](ctx, srv.store, repository.KeyGarbagePoints, srv.logger)
		if err != nil {
			return err
		}
		remaining := make([]entity.GarbageRecord, 0, len(garbage))
		for _, record := range garbage {
			if record.UserID != session.UserID {
				remaining = append(remaining, record)
			}
		}

		return persistCollection(ctx, srv.store, repository.KeyGarbagePoints, remaining)

	case entity.CollectionMissions:
		missions, err := loadCollection[entity.MissionRecord](ctx, srv.store, repository.KeyTeacherMissions, srv.logger)
		if err != nil {
			return err
		}
		remaining := make([]entity.MissionRecord, 0, len(missions))
		for _, record := range missions {
			if record.TeacherID != session.UserID {
				remaining = append(remaining, record)
			}
		}

		return persistCollection(ctx, srv.store, repository.KeyTeacherMissions, remaining)

	default:
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("unknown collection: " + collection.String()))
	}
}

// RemoveAll replaces the given collection with empty.
func (srv *activityService) RemoveAll(ctx context.Context, collection entity.Collection) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	switch collection {
	case entity.CollectionTrees:
		return persistCollection(ctx, srv.store, repository.KeyPlantedTrees, []entity.TreeRecord{})
	case entity.CollectionGarbage:
		return persistCollection(ctx, srv.store, repository.KeyGarbagePoints, []entity.GarbageRecord{})
	case entity.CollectionMissions:
		return persistCollection(ctx, srv.store, repository.KeyTeacherMissions, []entity.MissionRecord{})
	default:
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("unknown collection: " + collection.String()))
	}
}

// StatsFor counts the caller's tree and garbage records. For an anonymous
// session the ownership filter degrades to totals across all users.
func (srv *activityService) StatsFor(ctx context.Context, session entity.Session) (*usecase.ActivityStats, error) {
	trees, err := loadCollection[entity.TreeRecord](ctx, srv.store, repository.KeyPlantedTrees, srv.logger)
	if err != nil {
		return nil, err
	}

	garbage, err := loadCollection[entity.GarbageRecord](ctx, srv.store, repository.KeyGarbagePoints, srv.logger)
	if err != nil {
		return nil, err
	}

	stats := &usecase.ActivityStats{}
	if session.IsAnonymous() {
		stats.Trees = len(trees)
		stats.Garbage = len(garbage)

		return stats, nil
	}

	for _, record := range trees {
		if record.UserID == session.UserID {
			stats.Trees++
		}
	}
	for _, record := range garbage {
		if record.UserID == session.UserID {
			stats.Garbage++
		}
	}

	return stats, nil
}
