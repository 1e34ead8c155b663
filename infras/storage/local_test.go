package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"studio/infras/otel/mocks"
	"studio/infras/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) (storage.Store, string) {
	t.Helper()

	dir := t.TempDir()

	store, err := storage.NewLocal(dir, mocks.NewOtel())
	require.NoError(t, err)

	return store, dir
}

func TestLocalSaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	store, dir := newLocal(t)

	require.NoError(t, store.Save(ctx, "gallery/a.jpg", "image/jpeg", strings.NewReader("jpeg-bytes")))
	assert.FileExists(t, filepath.Join(dir, "gallery", "a.jpg"))

	obj, err := store.Open(ctx, "gallery/a.jpg")
	require.NoError(t, err)

	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	require.NoError(t, obj.Body.Close())

	assert.Equal(t, "jpeg-bytes", string(data))
	assert.Equal(t, int64(len("jpeg-bytes")), obj.Size)
	assert.Equal(t, "image/jpeg", obj.ContentType)

	require.NoError(t, store.Delete(ctx, "gallery/a.jpg"))
	assert.NoFileExists(t, filepath.Join(dir, "gallery", "a.jpg"))

	_, err = store.Open(ctx, "gallery/a.jpg")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLocalDeleteMissingIsNoop(t *testing.T) {
	store, _ := newLocal(t)

	assert.NoError(t, store.Delete(context.Background(), "gallery/missing.jpg"))
}

func TestLocalRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store, dir := newLocal(t)

	outside := filepath.Join(filepath.Dir(dir), "outside.txt")
	t.Cleanup(func() { _ = os.Remove(outside) })

	for _, key := range []string{"../outside.txt", "/etc/passwd", "gallery/../../outside.txt", ""} {
		assert.ErrorIs(t, store.Save(ctx, key, "", strings.NewReader("x")), storage.ErrInvalidPath, key)

		_, err := store.Open(ctx, key)
		assert.ErrorIs(t, err, storage.ErrInvalidPath, key)
	}

	assert.NoFileExists(t, outside)
}

func TestLocalOpenDirectoryIsNotFound(t *testing.T) {
	ctx := context.Background()
	store, _ := newLocal(t)

	require.NoError(t, store.Save(ctx, "videos/clip.mp4", "", strings.NewReader("x")))

	_, err := store.Open(ctx, "videos")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCleanKey(t *testing.T) {
	key, err := storage.CleanKey("gallery//./a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "gallery/a.jpg", key)

	_, err = storage.CleanKey("..")
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/jpeg", storage.ContentType("gallery/a.JPG"))
	assert.Equal(t, "application/octet-stream", storage.ContentType("videos/clip"))
}
