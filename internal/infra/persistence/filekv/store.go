// Package filekv implements the durable state store as one file per key.
// Writes go to a temp file first and are renamed into place, so a crash mid-write
// never leaves a partially written value behind.
package filekv

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"releaf/internal/domain/repository"

	"github.com/pkg/errors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

type store struct {
	dir string
}

// New creates a file-backed state store rooted at dir, creating it if needed.
func New(dir string) (repository.StateStore, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, errors.Wrap(err, "failed to create state directory")
	}

	return &store{dir: dir}, nil
}

// Get retrieves the blob stored under key.
func (s *store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrKeyNotFound
		}

		return nil, errors.Wrapf(err, "failed to read state key %q", key)
	}

	return data, nil
}

// Set durably replaces the blob stored under key using write-temp-then-rename.
func (s *store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	target := s.path(key)

	tmp, err := os.CreateTemp(s.dir, sanitize(key)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp state file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrapf(err, "failed to write state key %q", key)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrapf(err, "failed to sync state key %q", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "failed to close temp state file for key %q", key)
	}

	if err := os.Chmod(tmpName, filePerm); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "failed to chmod state key %q", key)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "failed to replace state key %q", key)
	}

	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to delete state key %q", key)
	}

	return nil
}

func (s *store) path(key string) string {
	return filepath.Join(s.dir, sanitize(key)+".json")
}

// sanitize keeps keys usable as file names. The store's well-known keys are
// already plain identifiers; this guards against accidental separators.
func sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '.':
			return '_'
		default:
			return r
		}
	}, key)
}
