package impl

import (
	"context"
	"sync"

	"releaf/internal/domain/entity"
	"releaf/internal/domain/repository"
	"releaf/internal/domain/service"

	"github.com/pkg/errors"
)

// memStateStore is an in-memory StateStore with per-key write fault injection.
type memStateStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	setErr  map[string]error
	setCnt  map[string]int
	readErr error
}

func newMemStateStore() *memStateStore {
	return &memStateStore{
		data:   make(map[string][]byte),
		setErr: make(map[string]error),
		setCnt: make(map[string]int),
	}
}

func (s *memStateStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.readErr != nil {
		return nil, s.readErr
	}
	raw, ok := s.data[key]
	if !ok {
		return nil, errors.WithStack(repository.ErrKeyNotFound)
	}

	return append([]byte(nil), raw...), nil
}

func (s *memStateStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.setErr[key]; err != nil {
		return err
	}
	s.data[key] = append([]byte(nil), value...)
	s.setCnt[key]++

	return nil
}

func (s *memStateStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *memStateStore) writes(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.setCnt[key]
}

// stubLocator is a LocationProvider returning a fixed coordinate or a fault.
type stubLocator struct {
	pos     entity.Coordinate
	permErr error
	posErr  error
	calls   int
}

func (l *stubLocator) RequestPermission(context.Context) error {
	l.calls++

	return l.permErr
}

func (l *stubLocator) CurrentPosition(context.Context) (entity.Coordinate, error) {
	if l.posErr != nil {
		return entity.Coordinate{}, l.posErr
	}

	return l.pos, nil
}

// stubCamera is a Camera returning a fixed photo or a fault.
type stubCamera struct {
	photo      *service.Photo
	permErr    error
	captureErr error
}

func (c *stubCamera) RequestPermission(context.Context) error {
	return c.permErr
}

func (c *stubCamera) Capture(context.Context) (*service.Photo, error) {
	if c.captureErr != nil {
		return nil, c.captureErr
	}
	if c.photo != nil {
		return c.photo, nil
	}

	return &service.Photo{Data: []byte("jpeg"), ContentType: "image/jpeg"}, nil
}

// stubPhotoStore records saves and hands out sequential keys.
type stubPhotoStore struct {
	saved   []*service.Photo
	saveErr error
}

func (p *stubPhotoStore) SavePhoto(_ context.Context, photo *service.Photo) (string, error) {
	if p.saveErr != nil {
		return "", p.saveErr
	}
	p.saved = append(p.saved, photo)

	return "trees/photo-1", nil
}

func (p *stubPhotoStore) LoadPhoto(context.Context, string) (*service.Photo, error) {
	return nil, errors.New("not implemented")
}

func (p *stubPhotoStore) DeletePhoto(context.Context, string) error {
	return nil
}

// captureEvents records every published activity event.
type captureEvents struct {
	events []*service.ActivityEvent
	pubErr error
}

func (e *captureEvents) PublishActivityEvent(_ context.Context, event *service.ActivityEvent) error {
	if e.pubErr != nil {
		return e.pubErr
	}
	e.events = append(e.events, event)

	return nil
}

func (e *captureEvents) Close() error {
	return nil
}

func (e *captureEvents) types() []string {
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}

	return out
}
