package handler

import (
	"context"
	"encoding/base64"

	"releaf/internal/domain/entity"
	"releaf/internal/domain/service"

	"github.com/pkg/errors"
)

// requestLocator is a request-scoped LocationProvider backed by the
// coordinates that arrived with the request body. A request without
// coordinates behaves like a device without a position fix.
type requestLocator struct {
	latitude  *float64
	longitude *float64
}

func (l *requestLocator) RequestPermission(context.Context) error {
	return nil
}

func (l *requestLocator) CurrentPosition(context.Context) (entity.Coordinate, error) {
	if l.latitude == nil || l.longitude == nil {
		return entity.Coordinate{}, errors.WithStack(service.ErrPositionUnavailable)
	}

	return entity.Coordinate{Latitude: *l.latitude, Longitude: *l.longitude}, nil
}

// requestCamera is a request-scoped Camera backed by a base64 photo payload.
// An empty payload means the user backed out of the capture step.
type requestCamera struct {
	photo       string
	contentType string
}

func (cam *requestCamera) RequestPermission(context.Context) error {
	return nil
}

func (cam *requestCamera) Capture(context.Context) (*service.Photo, error) {
	if cam.photo == "" {
		return nil, errors.WithStack(service.ErrCaptureCancelled)
	}

	data, err := base64.StdEncoding.DecodeString(cam.photo)
	if err != nil {
		return nil, errors.Wrap(err, "photo payload is not valid base64")
	}

	contentType := cam.contentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return &service.Photo{Data: data, ContentType: contentType}, nil
}
