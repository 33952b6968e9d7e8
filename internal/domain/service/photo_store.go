package service

import "context"

// PhotoStore persists captured tree photos and hands back an opaque key that is
// kept on the TreeRecord.
type PhotoStore interface {
	// SavePhoto writes the photo and returns its storage key.
	SavePhoto(ctx context.Context, photo *Photo) (string, error)

	// LoadPhoto reads a previously stored photo by key.
	LoadPhoto(ctx context.Context, key string) (*Photo, error)

	// DeletePhoto removes a stored photo. Removing an absent key is not an error.
	DeletePhoto(ctx context.Context, key string) error
}
