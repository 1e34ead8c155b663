package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studio/config"
	"studio/infras/otel/mocks"
	"studio/infras/storage"
	storageMocks "studio/infras/storage/mocks"
	"studio/internal/domains/media/model"
	"studio/internal/domains/media/service"
	"studio/shared/constant"
	"studio/shared/failure"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func pngImage(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		for y := range height {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func setup(t *testing.T) (service.Media, *config.Config, string) {
	t.Helper()

	root := t.TempDir()

	cfg := &config.Config{}
	cfg.Storage.LocalDir = filepath.Join(root, "uploads")
	cfg.Storage.TempDir = filepath.Join(root, "tmp")
	cfg.App.BaseURL = "https://studio.example.com"

	store, err := storage.NewLocal(cfg.Storage.LocalDir, mocks.NewOtel())
	require.NoError(t, err)

	return service.New(cfg, store, mocks.NewOtel()), cfg, root
}

func tempEntries(t *testing.T, dir string) []os.DirEntry {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	require.NoError(t, err)

	return entries
}

func TestIngestImage(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		maxPixels int64
		transform config.Transform
		wantWidth int
		wantErr   bool
	}{
		{
			name:      "wide image is downsized keeping aspect ratio",
			width:     1600,
			height:    800,
			transform: config.Transform{Width: 1200, Quality: 70},
			wantWidth: 1200,
		},
		{
			name:      "narrow image keeps its width",
			width:     400,
			height:    300,
			transform: config.Transform{Width: 600, Quality: 80},
			wantWidth: 400,
		},
		{
			name:      "image over the pixel limit is rejected before decoding",
			width:     120,
			height:    100,
			maxPixels: 100 * 100,
			transform: config.Transform{Width: 1200, Quality: 70},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			media, cfg, _ := setup(t)
			cfg.Media.MaxPixels = tt.maxPixels

			asset, err := media.IngestImage(context.Background(), bytes.NewReader(pngImage(t, tt.width, tt.height)), service.CategoryGallery, tt.transform)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 500, failure.GetCode(err))
				assert.Equal(t, service.MessageImageProcessing, err.Error())
				assert.Empty(t, tempEntries(t, cfg.Storage.TempDir))
				assert.Empty(t, tempEntries(t, filepath.Join(cfg.Storage.LocalDir, service.CategoryGallery)))

				return
			}

			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(asset.Filename, "compressed-"))
			assert.True(t, strings.HasSuffix(asset.Filename, ".jpg"))
			assert.Equal(t, "gallery/"+asset.Filename, asset.RelativePath)
			assert.Equal(t, "https://studio.example.com/uploads/gallery/"+asset.Filename, asset.URL)

			stored, err := imaging.Open(filepath.Join(cfg.Storage.LocalDir, asset.RelativePath))
			require.NoError(t, err)

			assert.Equal(t, tt.wantWidth, stored.Bounds().Dx())
			assert.Equal(t, tt.wantWidth*tt.height/tt.width, stored.Bounds().Dy())

			assert.Empty(t, tempEntries(t, cfg.Storage.TempDir))
		})
	}
}

func TestIngestImage_InvalidImage(t *testing.T) {
	media, cfg, _ := setup(t)

	_, err := media.IngestImage(context.Background(), strings.NewReader("not an image"), service.CategoryReview, config.Transform{Width: 600, Quality: 80})

	require.Error(t, err)
	assert.Equal(t, 500, failure.GetCode(err))
	assert.Equal(t, service.MessageImageProcessing, err.Error())
	assert.Empty(t, tempEntries(t, cfg.Storage.TempDir))

	stored := tempEntries(t, filepath.Join(cfg.Storage.LocalDir, service.CategoryReview))
	assert.Empty(t, stored)
}

func TestIngestImage_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storageMocks.NewMockStore(ctrl)
	store.EXPECT().
		Save(gomock.Any(), gomock.Any(), "image/jpeg", gomock.Any()).
		Return(errors.New("disk full"))

	cfg := &config.Config{}
	cfg.Storage.TempDir = t.TempDir()

	media := service.New(cfg, store, mocks.NewOtel())

	_, err := media.IngestImage(context.Background(), bytes.NewReader(pngImage(t, 20, 20)), service.CategoryService, config.Transform{Width: 800, Quality: 80})

	assert.True(t, failure.Is(err, 500))
	assert.Empty(t, tempEntries(t, cfg.Storage.TempDir))
}

func TestStoreFile(t *testing.T) {
	media, cfg, _ := setup(t)

	asset, err := media.StoreFile(context.Background(), strings.NewReader("mp4-bytes"), service.CategoryVideo, "Wedding Teaser.MP4")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(asset.Filename, "video-"))
	assert.True(t, strings.HasSuffix(asset.Filename, ".mp4"))

	data, err := os.ReadFile(filepath.Join(cfg.Storage.LocalDir, asset.RelativePath))
	require.NoError(t, err)
	assert.Equal(t, "mp4-bytes", string(data))
}

func TestRemove(t *testing.T) {
	media, cfg, _ := setup(t)

	asset, err := media.StoreFile(context.Background(), strings.NewReader("x"), service.CategoryVideo, "a.mp4")
	require.NoError(t, err)

	media.Remove(context.Background(), asset)
	assert.NoFileExists(t, filepath.Join(cfg.Storage.LocalDir, asset.RelativePath))

	// already gone and external links are both no-ops
	media.Remove(context.Background(), asset)
	media.Remove(context.Background(), model.Asset{URL: "https://youtu.be/x"})
}

func TestBaseURL(t *testing.T) {
	cfg := &config.Config{}
	media := service.New(cfg, nil, mocks.NewOtel())

	ctx := context.WithValue(context.Background(), constant.ContextKeyBaseURL, "http://10.0.0.5:5000")
	assert.Equal(t, "http://10.0.0.5:5000", media.BaseURL(ctx))

	cfg.App.BaseURL = "https://studio.example.com/"
	assert.Equal(t, "https://studio.example.com", media.BaseURL(ctx))
}

func TestSweeper(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.TempDir = t.TempDir()
	cfg.Storage.Sweeper.TTLMinutes = 60

	now := time.Now()

	stale := filepath.Join(cfg.Storage.TempDir, "upload-stale")
	fresh := filepath.Join(cfg.Storage.TempDir, "upload-fresh")
	other := filepath.Join(cfg.Storage.TempDir, "keep.txt")

	for _, name := range []string{stale, fresh, other} {
		require.NoError(t, os.WriteFile(name, []byte("x"), 0o600))
	}

	old := now.Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))
	require.NoError(t, os.Chtimes(other, old, old))

	removed, err := service.NewSweeper(cfg).Sweep(now)
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, other)
}

func TestSweeper_MissingDir(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.TempDir = filepath.Join(t.TempDir(), "missing")

	removed, err := service.NewSweeper(cfg).Sweep(time.Now())

	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestSweeper_StartStop(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.TempDir = t.TempDir()
	cfg.Storage.Sweeper.Schedule = "@every 1h"

	sweeper := service.NewSweeper(cfg)
	require.NoError(t, sweeper.Start())
	sweeper.Stop()

	cfg.Storage.Sweeper.Schedule = "not a schedule"
	assert.Error(t, service.NewSweeper(cfg).Start())
}
