// Package blob stores tree photo captures in a gocloud.dev blob bucket, so the
// same code serves local directories in production and in-memory buckets in tests.
package blob

import (
	"context"
	"io"

	"releaf/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	_ "gocloud.dev/blob/fileblob" // file:// bucket URLs
	_ "gocloud.dev/blob/memblob"  // mem:// bucket URLs
)

type photoStore struct {
	bucket *blob.Bucket
}

// New opens the bucket named by bucketURL. The returned close function releases
// the bucket and should be hooked into shutdown.
func New(ctx context.Context, bucketURL string) (service.PhotoStore, func() error, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open photo bucket %q", bucketURL)
	}

	return &photoStore{bucket: bucket}, bucket.Close, nil
}

// SavePhoto writes the photo under a fresh key and returns it.
func (s *photoStore) SavePhoto(ctx context.Context, photo *service.Photo) (string, error) {
	key := "trees/" + uuid.New().String()

	opts := &blob.WriterOptions{ContentType: photo.ContentType}
	if err := s.bucket.WriteAll(ctx, key, photo.Data, opts); err != nil {
		return "", errors.Wrapf(err, "failed to write photo %q", key)
	}

	return key, nil
}

// LoadPhoto reads a previously stored photo by key.
func (s *photoStore) LoadPhoto(ctx context.Context, key string) (*service.Photo, error) {
	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open photo %q", key)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read photo %q", key)
	}

	return &service.Photo{
		Data:        data,
		ContentType: reader.ContentType(),
	}, nil
}

// DeletePhoto removes a stored photo. Removing an absent key is not an error.
func (s *photoStore) DeletePhoto(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete photo %q", key)
	}

	return nil
}
