package blob

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"releaf/config"
	"releaf/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the photo store, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewPhotoStore opens the configured bucket and hooks its release into
// shutdown. Without configuration photos land in a directory next to the
// durable store.
func NewPhotoStore(params Params) (service.PhotoStore, error) {
	bucketURL := ""
	if params.Config.Photos != nil {
		bucketURL = params.Config.Photos.BucketURL
	}
	if bucketURL == "" {
		dir := filepath.Join("data", "photos")
		if s := params.Config.Storage; s != nil && s.Path != "" && filepath.Ext(s.Path) == "" {
			dir = filepath.Join(s.Path, "photos")
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create photo directory")
		}
		bucketURL = "file://" + dir
	}

	store, closeBucket, err := New(params.Ctx, bucketURL)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("Photo store ready", slog.String("bucket", bucketURL))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return closeBucket()
		},
	})

	return store, nil
}
