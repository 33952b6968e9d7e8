// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"releaf/internal/domain/entity"
	"releaf/internal/domain/service"
)

// Collections holds the three activity collections as loaded from the durable
// store. Missing or unreadable blobs come back as empty slices, never nil errors.
type Collections struct {
	Trees    []entity.TreeRecord    `json:"trees"`
	Garbage  []entity.GarbageRecord `json:"garbage"`
	Missions []entity.MissionRecord `json:"missions"`
}

// ActivityStats are per-user activity counts. For an anonymous session the
// ownership filter degrades to totals across all users.
type ActivityStats struct {
	Trees   int `json:"trees"`
	Garbage int `json:"garbage"`
}

// CreateMissionInput defines the data required to create a teacher mission.
type CreateMissionInput struct {
	Description string `json:"description" validate:"required"`
}

// ActivityUsecase is the map activity store: the single owner of the tree,
// garbage and mission collections and the sole writer to their durable keys.
// The caller's Session is threaded explicitly into every operation; there is
// no ambient current-user lookup.
//
// Sensor collaborators (Camera, LocationProvider) are passed per call because
// their readings arrive with the triggering request.
type ActivityUsecase interface {
	// Load reads all three collections from the durable store.
	Load(ctx context.Context) (*Collections, error)

	// PlantTree captures a photo, acquires the current location and appends a
	// new tree record. A cancelled capture aborts with no side effects.
	PlantTree(ctx context.Context, session entity.Session, camera service.Camera, locator service.LocationProvider) (*entity.TreeRecord, error)

	// ReportGarbage acquires the current location and appends a garbage record.
	ReportGarbage(ctx context.Context, session entity.Session, locator service.LocationProvider) (*entity.GarbageRecord, error)

	// CleanupGarbage hard-deletes the garbage record with the given id.
	// An absent id is a no-op, not an error.
	CleanupGarbage(ctx context.Context, session entity.Session, id string) error

	// CreateMission validates the description, acquires the current location
	// and appends an active mission.
	CreateMission(ctx context.Context, session entity.Session, input *CreateMissionInput, locator service.LocationProvider) (*entity.MissionRecord, error)

	// AcceptMission transitions the matching mission to accepted on behalf of
	// the signed-in caller. All other records pass through unchanged.
	AcceptMission(ctx context.Context, session entity.Session, missionID string) (*entity.MissionRecord, error)

	// CompleteMission transitions an accepted mission to completed.
	CompleteMission(ctx context.Context, session entity.Session, missionID string) (*entity.MissionRecord, error)

	// ExpireMission transitions an active or accepted mission to expired.
	ExpireMission(ctx context.Context, session entity.Session, missionID string) (*entity.MissionRecord, error)

	// RemoveMine removes the caller's records from the given collection.
	// An anonymous session removes nothing.
	RemoveMine(ctx context.Context, session entity.Session, collection entity.Collection) error

	// RemoveAll replaces the given collection with empty.
	RemoveAll(ctx context.Context, collection entity.Collection) error

	// StatsFor counts the caller's tree and garbage records.
	StatsFor(ctx context.Context, session entity.Session) (*ActivityStats, error)
}
