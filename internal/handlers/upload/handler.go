package upload

import (
	"errors"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"studio/config"
	"studio/infras/otel"
	"studio/infras/storage"
	"studio/shared/constant"
	"studio/shared/failure"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	entityFile    = "File"
	cacheControl  = "public, max-age=86400"
	messageFailed = "Failed to read file"

	headerContentTypeOptions = "X-Content-Type-Options"
	noSniff                  = "nosniff"
)

// Handler serves stored media under /uploads.
type Handler struct {
	store storage.Store
	otel  otel.Otel
	// hidden is the key prefix of the temp directory when it sits inside the local store.
	hidden string
}

func New(store storage.Store, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		store:  store,
		otel:   otel,
		hidden: hiddenPrefix(cfg.Storage.LocalDir, cfg.Storage.TempDir),
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get(constant.UploadsPath+"/*", handler.ServeFile)
}

// ServeFile streams one stored file. Range requests work when the store returns a seekable body.
func (handler *Handler) ServeFile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ServeFile")
	defer scope.End()

	// stored files must never be rendered as a sniffed type
	writer.Header().Set(headerContentTypeOptions, noSniff)

	key, err := storage.CleanKey(chi.URLParam(request, "*"))
	if err != nil {
		response.WithError(writer, failure.BadRequest(err), messageFailed)

		return
	}

	if handler.hidden != "" && (key == handler.hidden || strings.HasPrefix(key, handler.hidden+"/")) {
		response.WithError(writer, failure.NotFound(entityFile), messageFailed)

		return
	}

	object, err := handler.store.Open(ctx, key)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidPath) {
		response.WithError(writer, failure.NotFound(entityFile), messageFailed)

		return
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", key).Msg("failed to open stored file")

		response.WithError(writer, err, messageFailed)

		return
	}
	defer object.Body.Close()

	writer.Header().Set("Content-Type", object.ContentType)
	writer.Header().Set("Cache-Control", cacheControl)

	if seeker, ok := object.Body.(io.ReadSeeker); ok {
		http.ServeContent(writer, request, path.Base(key), object.ModTime, seeker)

		return
	}

	if object.Size > 0 {
		writer.Header().Set("Content-Length", strconv.FormatInt(object.Size, 10))
	}

	writer.WriteHeader(http.StatusOK)

	if request.Method == http.MethodHead {
		return
	}

	if _, err = io.Copy(writer, object.Body); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to stream stored file")
	}
}

func hiddenPrefix(baseDir, tempDir string) string {
	if baseDir == "" || tempDir == "" {
		return ""
	}

	rel, err := filepath.Rel(baseDir, tempDir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}

	return filepath.ToSlash(rel)
}
