package upload_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"studio/config"
	otelMocks "studio/infras/otel/mocks"
	"studio/infras/storage"
	storageMocks "studio/infras/storage/mocks"
	"studio/internal/handlers/upload"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(store storage.Store) http.Handler {
	cfg := &config.Config{}
	cfg.Storage.LocalDir = "uploads"
	cfg.Storage.TempDir = "uploads/tmp"

	handler := upload.New(store, cfg, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func TestHandler_ServeFile_Local(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "gallery"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gallery", "compressed-1.jpg"), []byte("0123456789"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "videos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "videos", "video-1.html"), []byte("<script>alert(1)</script>"), 0o644))

	store, err := storage.NewLocal(dir, otelMocks.NewOtel())
	require.NoError(t, err)

	router := newRouter(store)

	t.Run("whole file", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/uploads/gallery/compressed-1.jpg", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "image/jpeg", recorder.Header().Get("Content-Type"))
		assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "0123456789", recorder.Body.String())
	})

	t.Run("markup upload is never sniffed", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/uploads/videos/video-1.html", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
	})

	t.Run("byte range", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/uploads/gallery/compressed-1.jpg", nil)
		request.Header.Set("Range", "bytes=2-4")

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusPartialContent, recorder.Code)
		assert.Equal(t, "234", recorder.Body.String())
	})

	t.Run("missing file", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/uploads/gallery/nope.jpg", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
	})

	t.Run("directory", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/uploads/gallery", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHandler_ServeFile_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storageMocks.NewMockStore(ctrl)
	router := newRouter(store)

	tests := map[string]int{
		"/uploads/tmp/upload-123":         http.StatusNotFound,
		"/uploads/gallery/../../.env":     http.StatusBadRequest,
		"/uploads/gallery/../tmp/spooled": http.StatusNotFound,
	}

	for target, wantCode := range tests {
		t.Run(target, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, wantCode, recorder.Code)
		})
	}
}

func TestHandler_ServeFile_Stream(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := storageMocks.NewMockStore(ctrl)

	store.EXPECT().Open(gomock.Any(), "videos/clip.mp4").Return(&storage.Object{
		Body:        io.NopCloser(strings.NewReader("frames")),
		Size:        6,
		ModTime:     time.Now(),
		ContentType: "video/mp4",
	}, nil)
	store.EXPECT().Open(gomock.Any(), "videos/broken.mp4").Return(nil, errors.New("access denied"))

	router := newRouter(store)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/uploads/videos/clip.mp4", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "6", recorder.Header().Get("Content-Length"))
	assert.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "frames", recorder.Body.String())

	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/uploads/videos/broken.mp4", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
