package service

import (
	"context"

	"releaf/internal/errors"
)

// ErrCaptureCancelled is returned when the user backs out of the capture step.
var ErrCaptureCancelled = errors.New("photo capture cancelled")

// Photo is a captured image ready to be persisted.
type Photo struct {
	Data        []byte
	ContentType string
}

// Camera models the photo capture step gating tree planting. The capture may be
// cancelled by the user, in which case the whole operation aborts with no side
// effects.
type Camera interface {
	// RequestPermission asks for camera access. Returns ErrPermissionDenied
	// when refused.
	RequestPermission(ctx context.Context) error

	// Capture produces a photo, or ErrCaptureCancelled if the user backed out.
	Capture(ctx context.Context) (*Photo, error)
}
