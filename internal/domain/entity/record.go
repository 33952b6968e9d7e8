// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NewRecordID generates an opaque record identifier from the current time plus a
// random suffix. Uniqueness is best-effort, matching the identifiers the mobile
// clients have written historically; it is not cryptographically guaranteed.
func NewRecordID(now time.Time) string {
	return fmt.Sprintf("%d-%04x", now.UnixMilli(), rand.IntN(0x10000))
}

// Coordinate is a geographic position in floating point degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TreeRecord represents a single planted tree. ID and the coordinate are captured
// at creation time and never change afterwards.
type TreeRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Username  string    `json:"username,omitempty"` // Display name or email, presentation only.
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	PhotoKey  string    `json:"photoKey,omitempty"` // Blob store key of the capture, if any.
	PlantedAt time.Time `json:"plantedAt"`
}

// GarbageRecord represents a reported garbage point. Presence in the collection
// means "reported"; cleanup is a hard delete, no cleaned history is kept.
type GarbageRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId,omitempty"`
	Username   string    `json:"username,omitempty"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	ReportedAt time.Time `json:"reportedAt"`
}
