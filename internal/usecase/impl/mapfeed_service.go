package impl

import (
	"context"
	"log/slog"

	"releaf/internal/domain/entity"
	"releaf/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// mapfeedService implements the MapFeedUsecase interface. It reads through the
// activity store so the feed always reflects the durable state.
type mapfeedService struct {
	activities usecase.ActivityUsecase
	logger     *slog.Logger
}

// NewMapFeedService is the constructor for mapfeedService.
func NewMapFeedService(activities usecase.ActivityUsecase, logger *slog.Logger) usecase.MapFeedUsecase {
	return &mapfeedService{
		activities: activities,
		logger:     logger,
	}
}

// Features renders trees, garbage points and active missions as GeoJSON point
// features. Accepted or finished missions are left off the map.
func (srv *mapfeedService) Features(ctx context.Context) (*geojson.FeatureCollection, error) {
	cols, err := srv.activities.Load(ctx)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()

	for _, record := range cols.Trees {
		feature := geojson.NewFeature(orb.Point{record.Longitude, record.Latitude})
		feature.ID = record.ID
		feature.Properties = geojson.Properties{
			"kind":      "tree",
			"username":  record.Username,
			"plantedAt": record.PlantedAt,
		}
		if record.PhotoKey != "" {
			feature.Properties["photoKey"] = record.PhotoKey
		}
		fc.Append(feature)
	}

	for _, record := range cols.Garbage {
		feature := geojson.NewFeature(orb.Point{record.Longitude, record.Latitude})
		feature.ID = record.ID
		feature.Properties = geojson.Properties{
			"kind":       "garbage",
			"username":   record.Username,
			"reportedAt": record.ReportedAt,
		}
		fc.Append(feature)
	}

	for _, record := range cols.Missions {
		if record.Status != entity.MissionActive {
			continue
		}
		feature := geojson.NewFeature(orb.Point{record.Longitude, record.Latitude})
		feature.ID = record.ID
		feature.Properties = geojson.Properties{
			"kind":        "mission",
			"teacherName": record.TeacherName,
			"description": record.Description,
			"createdAt":   record.CreatedAt,
		}
		fc.Append(feature)
	}

	return fc, nil
}
