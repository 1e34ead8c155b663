package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusSuccess  = "success"
	StatusFailure  = "failure"
	StatusConflict = "conflict"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status_code"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
		},
		[]string{"method", "route"},
	)

	// Business metrics
	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Total number of booking attempts",
		},
		[]string{"status"}, // success, conflict, failure
	)

	inquiriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inquiries_total",
			Help: "Total number of contact form submissions",
		},
	)

	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"status"},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of notification deliveries",
		},
		[]string{"template", "channel", "status"},
	)

	mediaIngestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_ingest_total",
			Help: "Total number of processed uploads",
		},
		[]string{"category", "status"},
	)

	mediaIngestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_ingest_duration_seconds",
			Help:    "Upload processing duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"category"},
	)

	sweptFilesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "upload_temp_files_swept_total",
			Help: "Total number of stale temporary upload files removed",
		},
	)
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count, latency and response size per chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		statusCode := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, route, statusCode).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route, statusCode).Observe(time.Since(start).Seconds())
		httpResponseSize.WithLabelValues(r.Method, route).Observe(float64(wrapped.size))
	})
}

// responseWriter captures status code and response size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size

	return size, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func statusOf(err error) string {
	if err != nil {
		return StatusFailure
	}

	return StatusSuccess
}

// RecordBooking records the outcome of a booking attempt.
func RecordBooking(status string) {
	bookingsTotal.WithLabelValues(status).Inc()
}

func RecordInquiry() {
	inquiriesTotal.Inc()
}

func RecordAuthAttempt(success bool) {
	status := StatusFailure
	if success {
		status = StatusSuccess
	}

	authAttemptsTotal.WithLabelValues(status).Inc()
}

func RecordNotification(template, channel string, err error) {
	notificationsTotal.WithLabelValues(template, channel, statusOf(err)).Inc()
}

func RecordMediaIngest(category string, duration time.Duration, err error) {
	mediaIngestTotal.WithLabelValues(category, statusOf(err)).Inc()
	mediaIngestDuration.WithLabelValues(category).Observe(duration.Seconds())
}

func RecordSweptFiles(count int) {
	sweptFilesTotal.Add(float64(count))
}
