package blob

import (
	"context"
	"strings"
	"testing"

	"releaf/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore(t *testing.T) service.PhotoStore {
	t.Helper()

	store, closeFn, err := New(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	return store
}

func TestPhotoStore_SaveLoadRoundTrip(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()

	photo := &service.Photo{Data: []byte("jpeg bytes"), ContentType: "image/jpeg"}
	key, err := store.SavePhoto(ctx, photo)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "trees/"))

	got, err := store.LoadPhoto(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, photo.Data, got.Data)
	assert.Equal(t, "image/jpeg", got.ContentType)
}

func TestPhotoStore_KeysAreUnique(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()

	photo := &service.Photo{Data: []byte("x"), ContentType: "image/png"}
	first, err := store.SavePhoto(ctx, photo)
	require.NoError(t, err)
	second, err := store.SavePhoto(ctx, photo)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPhotoStore_DeleteIsIdempotent(t *testing.T) {
	store := newMemStore(t)
	ctx := context.Background()

	key, err := store.SavePhoto(ctx, &service.Photo{Data: []byte("x"), ContentType: "image/png"})
	require.NoError(t, err)

	require.NoError(t, store.DeletePhoto(ctx, key))
	require.NoError(t, store.DeletePhoto(ctx, key))

	_, err = store.LoadPhoto(ctx, key)
	assert.Error(t, err)
}
