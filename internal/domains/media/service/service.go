package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"studio/config"
	"studio/infras/metrics"
	"studio/infras/otel"
	"studio/infras/storage"
	"studio/internal/domains/media/model"
	"studio/shared/constant"
	"studio/shared/failure"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp" // registers the webp decoder used by imaging.Decode
)

const (
	CategoryGallery = "gallery"
	CategoryReview  = "reviews"
	CategoryService = "services"
	CategoryVideo   = "videos"

	compressedPrefix = "compressed"
	tempPattern      = "upload-*"
	jpegExtension    = ".jpg"
	jpegContentType  = "image/jpeg"

	MessageImageProcessing = "Image processing failed"
	MessageFileStorage     = "File upload failed"
)

var (
	ErrEmptyUpload   = errors.New("upload is empty")
	ErrImageTooLarge = errors.New("image exceeds the pixel limit")
)

type Media interface {
	// IngestImage spools src to the temp dir, downsizes it to transform.Width and stores it as JPEG.
	IngestImage(ctx context.Context, src io.Reader, category string, transform config.Transform) (model.Asset, error)
	// StoreFile stores src unchanged, keeping the extension of originalName.
	StoreFile(ctx context.Context, src io.Reader, category, originalName string) (model.Asset, error)
	// Remove deletes a stored asset. Failures are logged only.
	Remove(ctx context.Context, asset model.Asset)
	// BaseURL is the origin that public asset URLs are built on for this request.
	BaseURL(ctx context.Context) string
}

type serviceImpl struct {
	cfg   *config.Config
	store storage.Store
	otel  otel.Otel
}

func New(cfg *config.Config, store storage.Store, otel otel.Otel) Media {
	return &serviceImpl{
		cfg:   cfg,
		store: store,
		otel:  otel,
	}
}

// NewFilename returns "<prefix>-<unixnano>-<random>.<ext>".
func NewFilename(prefix, extension string) string {
	return fmt.Sprintf("%s-%d-%s%s", prefix, time.Now().UnixNano(), uuid.NewString()[:8], extension)
}

func (s *serviceImpl) IngestImage(ctx context.Context, src io.Reader, category string, transform config.Transform) (asset model.Asset, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".media.IngestImage")
	defer scope.End()
	defer scope.TraceIfError(err)

	started := time.Now()
	defer func() {
		metrics.RecordMediaIngest(category, time.Since(started), err)
	}()

	scope.SetAttributes(map[string]any{
		"media.category": category,
		"media.width":    transform.Width,
		"media.quality":  transform.Quality,
	})

	spooled, err := s.spool(src)
	if err != nil {
		log.Error().Err(err).Msg("failed to spool upload")

		return asset, failure.Processing(MessageImageProcessing)
	}
	defer s.removeTemp(spooled)

	encoded, err := transcode(spooled, transform, s.maxPixels())
	if err != nil {
		log.Error().Err(err).Str("category", category).Msg("failed to transform image")

		return asset, failure.Processing(MessageImageProcessing)
	}

	filename := NewFilename(compressedPrefix, jpegExtension)
	key := path.Join(category, filename)

	if err = s.store.Save(ctx, key, jpegContentType, bytes.NewReader(encoded)); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to store image")

		return asset, failure.Processing(MessageImageProcessing)
	}

	return s.assetFor(ctx, filename, key), nil
}

func (s *serviceImpl) StoreFile(ctx context.Context, src io.Reader, category, originalName string) (asset model.Asset, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".media.StoreFile")
	defer scope.End()
	defer scope.TraceIfError(err)

	started := time.Now()
	defer func() {
		metrics.RecordMediaIngest(category, time.Since(started), err)
	}()

	if src == nil {
		return asset, failure.BadRequest(ErrEmptyUpload)
	}

	extension := strings.ToLower(filepath.Ext(originalName))
	filename := NewFilename(strings.TrimSuffix(category, "s"), extension)
	key := path.Join(category, filename)

	if err = s.store.Save(ctx, key, storage.ContentType(key), src); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to store file")

		return asset, failure.Processing(MessageFileStorage)
	}

	return s.assetFor(ctx, filename, key), nil
}

func (s *serviceImpl) Remove(ctx context.Context, asset model.Asset) {
	if !asset.IsStored() {
		return
	}

	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".media.Remove")
	defer scope.End()

	if err := s.store.Delete(ctx, asset.RelativePath); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("key", asset.RelativePath).Msg("failed to remove stored file")
	}
}

func (s *serviceImpl) BaseURL(ctx context.Context) string {
	if s.cfg.App.BaseURL != "" {
		return strings.TrimRight(s.cfg.App.BaseURL, "/")
	}

	base, _ := ctx.Value(constant.ContextKeyBaseURL).(string)

	return base
}

func (s *serviceImpl) assetFor(ctx context.Context, filename, key string) model.Asset {
	asset := model.Asset{
		Filename:     filename,
		RelativePath: key,
	}
	asset.URL = asset.ResolveURL(s.BaseURL(ctx))

	return asset
}

func (s *serviceImpl) maxPixels() int64 {
	if s.cfg.Media.MaxPixels > 0 {
		return s.cfg.Media.MaxPixels
	}

	return config.DefaultMaxPixels
}

func (s *serviceImpl) spool(src io.Reader) (*os.File, error) {
	if src == nil {
		return nil, ErrEmptyUpload
	}

	if err := os.MkdirAll(s.cfg.Storage.TempDir, 0o750); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.cfg.Storage.TempDir, tempPattern)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	written, err := io.Copy(tmp, src)
	if err == nil && written == 0 {
		err = ErrEmptyUpload
	}

	if err == nil {
		_, err = tmp.Seek(0, io.SeekStart)
	}

	if err != nil {
		s.removeTemp(tmp)

		return nil, fmt.Errorf("spool upload: %w", err)
	}

	return tmp, nil
}

func (s *serviceImpl) removeTemp(file *os.File) {
	if file == nil {
		return
	}

	_ = file.Close()

	if err := os.Remove(file.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("file", file.Name()).Msg("failed to remove temp upload")
	}
}

// transcode decodes src, downsizes it to the target width and encodes it as JPEG.
// Images narrower than the target keep their size. The header is checked against
// maxPixels before any pixel data is decoded.
func transcode(src io.ReadSeeker, transform config.Transform, maxPixels int64) ([]byte, error) {
	header, _, err := image.DecodeConfig(src)
	if err != nil {
		return nil, fmt.Errorf("decode image header: %w", err)
	}

	if int64(header.Width)*int64(header.Height) > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, header.Width, header.Height)
	}

	if _, err = src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if transform.Width > 0 && img.Bounds().Dx() > transform.Width {
		img = imaging.Resize(img, transform.Width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(transform.Quality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	return buf.Bytes(), nil
}
