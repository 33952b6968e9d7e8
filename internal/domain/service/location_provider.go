// Package service defines the contracts for external collaborators consumed by
// the use cases: device sensors, identity, photo storage and event publishing.
package service

import (
	"context"

	"releaf/internal/domain/entity"
	"releaf/internal/errors"
)

// Sentinel errors shared by the sensor contracts.
var (
	// ErrPermissionDenied is returned when the user refused the permission prompt.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrPositionUnavailable is returned when a position fix could not be obtained.
	ErrPositionUnavailable = errors.New("current position unavailable")
)

// LocationProvider supplies the device's current geographic coordinate on request.
// It may fail, or be denied by the user.
type LocationProvider interface {
	// RequestPermission asks for location access. Returns ErrPermissionDenied
	// when refused.
	RequestPermission(ctx context.Context) error

	// CurrentPosition returns the current coordinate, or ErrPositionUnavailable
	// (possibly wrapped) when no fix can be obtained.
	CurrentPosition(ctx context.Context) (entity.Coordinate, error)
}
