package service

import (
	"context"
	"time"
)

// Activity event types published after successful mutations.
const (
	EventTreePlanted      = "tree.planted"
	EventGarbageReported  = "garbage.reported"
	EventGarbageCleaned   = "garbage.cleaned"
	EventMissionCreated   = "mission.created"
	EventMissionAccepted  = "mission.accepted"
	EventMissionCompleted = "mission.completed"
	EventMissionExpired   = "mission.expired"
)

// ActivityEvent describes a single successful store mutation. Events are
// advisory: publish failures are logged by the caller and never surfaced.
type ActivityEvent struct {
	RequestID string    `json:"request_id,omitempty"` // For distributed tracing
	Type      string    `json:"type"`
	RecordID  string    `json:"record_id"`
	UserID    string    `json:"user_id,omitempty"`
	Latitude  float64   `json:"latitude,omitempty"`
	Longitude float64   `json:"longitude,omitempty"`
	At        time.Time `json:"at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishActivityEvent publishes an activity event for async processing
	PublishActivityEvent(ctx context.Context, event *ActivityEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
