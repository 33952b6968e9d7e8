package usecase

import (
	"context"

	"github.com/paulmach/orb/geojson"
)

// MapFeedUsecase renders the activity collections as a GeoJSON
// FeatureCollection for the map surface. Only active missions are included.
type MapFeedUsecase interface {
	Features(ctx context.Context) (*geojson.FeatureCollection, error)
}
