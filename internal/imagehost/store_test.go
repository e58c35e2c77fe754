package imagehost

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/photoshare-service/internal/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), config.ImagesConfig{
		BucketURL:        "mem://",
		PublicBaseURL:    "http://localhost:8080/media/",
		TransformBaseURL: "https://res.example.com/demo",
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreUploadImage(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	png, err := RenderQRCode("https://example.com")
	require.NoError(t, err)

	upload, err := store.UploadImage(ctx, FolderPhotos, png)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.PublicID, "photos/"))
	assert.True(t, strings.HasSuffix(upload.PublicID, ".png"))
	assert.Equal(t, "http://localhost:8080/media/"+upload.PublicID, upload.URL)
	assert.Equal(t, "image/png", upload.ContentType)

	obj, err := store.Get(ctx, upload.PublicID)
	require.NoError(t, err)
	assert.Equal(t, png, obj.Data)
	assert.Equal(t, "image/png", obj.ContentType)

	require.NoError(t, store.Delete(ctx, upload.PublicID))
	exists, err := store.Exists(ctx, upload.PublicID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Get(ctx, upload.PublicID)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	assert.NoError(t, store.Delete(ctx, upload.PublicID))
}

func TestStoreRejectsNonImages(t *testing.T) {
	store := newTestStore(t)
	_, err := store.UploadImage(context.Background(), FolderPhotos, []byte("just some text"))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestUploadQRCodeOverwrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.UploadQRCode(ctx, "photo-1", "https://example.com/a")
	require.NoError(t, err)
	second, err := store.UploadQRCode(ctx, "photo-1", "https://example.com/b")
	require.NoError(t, err)

	assert.Equal(t, "qr_codes/photo-1.png", first.PublicID)
	assert.Equal(t, first.PublicID, second.PublicID)

	obj, err := store.Get(ctx, second.PublicID)
	require.NoError(t, err)
	expected, err := RenderQRCode("https://example.com/b")
	require.NoError(t, err)
	assert.Equal(t, expected, obj.Data)
}
