package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"studio/infras/otel"
	"studio/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

type localStore struct {
	basePath string
	otel     otel.Otel
}

func NewLocal(basePath string, ot otel.Otel) (Store, error) {
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid base path: %w", err)
	}

	if err = os.MkdirAll(absBase, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &localStore{basePath: absBase, otel: ot}, nil
}

// Save writes to a sibling temp file and renames it, so readers never see a partial file.
func (s *localStore) Save(ctx context.Context, key, _ string, body io.Reader) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".local.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrKey, key)

	target, err := s.safeJoin(key)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	defer func() {
		if err != nil {
			if rerr := os.Remove(tmp.Name()); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
				log.Error().Err(rerr).Str("file", tmp.Name()).Msg("failed to remove partial upload")
			}
		}
	}()

	if _, err = io.Copy(tmp, body); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("failed to write file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err = os.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	return nil
}

func (s *localStore) Open(ctx context.Context, key string) (obj *Object, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".local.Open")
	defer scope.End()

	scope.SetAttribute(otelAttrKey, key)

	target, err := s.safeJoin(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}

		scope.TraceError(err)

		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		_ = file.Close()

		return nil, ErrNotFound
	}

	return &Object{
		Body:        file,
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: ContentType(key),
	}, nil
}

func (s *localStore) Delete(ctx context.Context, key string) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".local.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrKey, key)

	target, err := s.safeJoin(key)
	if err != nil {
		return err
	}

	if rerr := os.Remove(target); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", rerr)
	}

	return nil
}

// safeJoin resolves key under basePath and rejects directory traversal.
func (s *localStore) safeJoin(key string) (string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", err
	}

	absPath := filepath.Join(s.basePath, filepath.FromSlash(cleaned))
	if !strings.HasPrefix(absPath, s.basePath+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}

	return absPath, nil
}
