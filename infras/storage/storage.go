package storage

//go:generate go run go.uber.org/mock/mockgen -source=./storage.go -destination=./mocks/storage_mock.go -package=mocks

import (
	"context"
	"errors"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"studio/config"
	"studio/infras/otel"

	"github.com/rs/zerolog/log"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"

	otelAttrKey = "storage.key"
)

var (
	ErrNotFound    = errors.New("object not found")
	ErrInvalidPath = errors.New("invalid object path")
)

// Object is an open stored file. Body may also implement io.ReadSeeker.
type Object struct {
	Body        io.ReadCloser
	Size        int64
	ModTime     time.Time
	ContentType string
}

// Store keeps uploaded media under slash separated keys such as "gallery/x.jpg".
type Store interface {
	Save(ctx context.Context, key, contentType string, body io.Reader) error
	// Open returns ErrNotFound for a missing key.
	Open(ctx context.Context, key string) (*Object, error)
	// Delete is a no-op for a missing key.
	Delete(ctx context.Context, key string) error
}

func New(cfg *config.Config, ot otel.Otel) Store {
	switch cfg.Storage.Driver {
	case DriverS3:
		return NewS3(cfg, ot)
	case DriverLocal, "":
		store, err := NewLocal(cfg.Storage.LocalDir, ot)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Storage.LocalDir).Msg("Failed to prepare local storage")
		}

		return store
	default:
		log.Fatal().Str("driver", cfg.Storage.Driver).Msg("Unknown storage driver")

		return nil
	}
}

// CleanKey normalizes a key and rejects absolute or parent-escaping paths.
func CleanKey(key string) (string, error) {
	key = strings.ReplaceAll(key, "\\", "/")
	if key == "" || strings.HasPrefix(key, "/") {
		return "", ErrInvalidPath
	}

	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}

	return cleaned, nil
}

// ContentType guesses a media type from the key extension.
func ContentType(key string) string {
	if contentType := mime.TypeByExtension(strings.ToLower(path.Ext(key))); contentType != "" {
		return contentType
	}

	return "application/octet-stream"
}
