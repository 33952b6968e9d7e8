package entity

import (
	"time"

	"releaf/internal/errors"
)

// ErrInvalidMissionTransition is returned when a mission status change is not
// allowed by the transition table.
var ErrInvalidMissionTransition = errors.New("invalid mission status transition")

// MissionStatus is the lifecycle state of a teacher mission.
type MissionStatus string

const (
	// MissionActive means the mission is open for students to accept.
	MissionActive MissionStatus = "active"
	// MissionAccepted means a student has taken the mission.
	MissionAccepted MissionStatus = "accepted"
	// MissionCompleted is a terminal state set by the teacher.
	MissionCompleted MissionStatus = "completed"
	// MissionExpired is a terminal state for missions that ran out.
	MissionExpired MissionStatus = "expired"
)

// String returns the string representation of the MissionStatus.
func (s MissionStatus) String() string {
	return string(s)
}

// IsValid checks if the MissionStatus is a valid value.
func (s MissionStatus) IsValid() bool {
	switch s {
	case MissionActive, MissionAccepted, MissionCompleted, MissionExpired:
		return true
	default:
		return false
	}
}

// CanTransition reports whether moving from s to next is allowed.
// Completed and expired are terminal.
func (s MissionStatus) CanTransition(next MissionStatus) bool {
	switch s {
	case MissionActive:
		return next == MissionAccepted || next == MissionExpired
	case MissionAccepted:
		return next == MissionCompleted || next == MissionExpired
	default:
		return false
	}
}

// MissionRecord is a teacher-authored mission anchored to a coordinate.
// Missions are never deleted individually; they only move through statuses.
type MissionRecord struct {
	ID          string        `json:"id"`
	TeacherID   string        `json:"teacherId"`
	TeacherName string        `json:"teacherName"`
	Description string        `json:"description"`
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	Status      MissionStatus `json:"status"`
	AcceptedBy  string        `json:"acceptedBy,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	CompletedAt *time.Time    `json:"completedAt,omitempty"`
}

// Accept transitions the mission to accepted on behalf of userID.
// Re-accepting an already accepted mission is rejected.
func (m *MissionRecord) Accept(userID string) error {
	if !m.Status.CanTransition(MissionAccepted) {
		return errors.Wrapf(ErrInvalidMissionTransition, "cannot accept mission in status %q", m.Status)
	}
	m.Status = MissionAccepted
	m.AcceptedBy = userID

	return nil
}

// Complete transitions the mission to its terminal completed state.
func (m *MissionRecord) Complete(at time.Time) error {
	if !m.Status.CanTransition(MissionCompleted) {
		return errors.Wrapf(ErrInvalidMissionTransition, "cannot complete mission in status %q", m.Status)
	}
	m.Status = MissionCompleted
	m.CompletedAt = &at

	return nil
}

// Expire transitions the mission to its terminal expired state.
func (m *MissionRecord) Expire() error {
	if !m.Status.CanTransition(MissionExpired) {
		return errors.Wrapf(ErrInvalidMissionTransition, "cannot expire mission in status %q", m.Status)
	}
	m.Status = MissionExpired

	return nil
}
