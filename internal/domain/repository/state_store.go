// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"releaf/internal/errors"
)

// Durable store keys. Each collection serializes as a JSON array under a single
// key; the remaining keys hold single strings. The names match what the mobile
// clients have always written, so existing device state loads unchanged.
const (
	KeyPlantedTrees    = "plantedTrees"
	KeyGarbagePoints   = "garbagePoints"
	KeyTeacherMissions = "teacherMissions"
	KeyUserType        = "userType"
	KeyUserSchool      = "userSchool"
)

// ErrKeyNotFound is returned when a key has never been written.
var ErrKeyNotFound = errors.New("state store key not found")

// StateStore is the on-device durable key-value store: a persistent mapping from
// string keys to serialized blobs surviving restarts. Implementations must make
// Set atomic with respect to crashes (no partially written values observable).
type StateStore interface {
	// Get retrieves the blob stored under key.
	// Returns ErrKeyNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set durably replaces the blob stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
