// Package sqlitekv implements the durable state store as a key-value table in a
// single SQLite database file, for installs that prefer one database over a
// directory of JSON files.
package sqlitekv

import (
	"context"
	"log/slog"
	"time"

	"releaf/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// StateEntry is the GORM model for the 'state_entries' table.
type StateEntry struct {
	Key       string `gorm:"primaryKey;type:varchar(255)"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StateEntry) TableName() string {
	return "state_entries"
}

type store struct {
	db *gorm.DB
}

// New opens (creating if needed) the SQLite database at path and migrates the
// state table.
func New(path string, logger *slog.Logger) (repository.StateStore, func() error, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newSlogLogger(logger, gormlogger.Warn),
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open sqlite state store")
	}

	if err := db.AutoMigrate(&StateEntry{}); err != nil {
		return nil, nil, errors.Wrap(err, "failed to migrate state table")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get sqlite sql.DB")
	}

	return &store{db: db}, sqlDB.Close, nil
}

// Get retrieves the blob stored under key.
func (s *store) Get(ctx context.Context, key string) ([]byte, error) {
	var entry StateEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrKeyNotFound
		}

		return nil, errors.Wrapf(err, "failed to read state key %q", key)
	}

	return entry.Value, nil
}

// Set durably replaces the blob stored under key. The upsert runs as a single
// statement, so readers never observe a missing key between delete and insert.
func (s *store) Set(ctx context.Context, key string, value []byte) error {
	entry := StateEntry{Key: key, Value: value, UpdatedAt: time.Now()}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return errors.Wrapf(err, "failed to write state key %q", key)
	}

	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *store) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&StateEntry{}, "key = ?", key).Error; err != nil {
		return errors.Wrapf(err, "failed to delete state key %q", key)
	}

	return nil
}
