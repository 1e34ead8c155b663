package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studio/shared/failure"
	"studio/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		wantCode int
		wantBody string
	}{
		{
			name:     "failure message is returned",
			err:      failure.NotFound("booking"),
			fallback: "Failed to update booking.",
			wantCode: http.StatusNotFound,
			wantBody: `{"message":"booking not found"}`,
		},
		{
			name:     "internal error is hidden behind fallback",
			err:      errors.New("pq: connection refused"),
			fallback: "Failed to load bookings.",
			wantCode: http.StatusInternalServerError,
			wantBody: `{"message":"Failed to load bookings."}`,
		},
		{
			name:     "empty fallback",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"message":"Something went wrong."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err, tt.fallback)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusOK, []map[string]string{{"date": "2026-11-02", "time": ""}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"date":"2026-11-02","time":""}]`, rec.Body.String())
}
