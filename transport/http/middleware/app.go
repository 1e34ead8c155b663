package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"studio/config"
	"studio/infras/otel"
	"studio/shared/cache"
	"studio/shared/constant"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	BaseURL(next http.Handler) http.Handler
	RateLimit(next http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := a.otel.NewScope(request.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", request.Method, request.URL.Path))
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
			"http.user_agent": request.UserAgent(),
			"http.host":       request.Host,
			"http.source":     request.RemoteAddr,
		})

		wrapped := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(wrapped, request.WithContext(ctx))

		if rctx := chi.RouteContext(ctx); rctx != nil {
			scope.SetAttribute("http.route", rctx.RoutePattern())
		}

		scope.SetAttribute("http.status_code", wrapped.Status())
	})
}

// BaseURL stores the public origin of the request for building asset URLs.
// A configured App.BaseURL wins over the request headers.
func (a *appMiddleware) BaseURL(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		base := strings.TrimRight(a.config.App.BaseURL, "/")
		if base == "" {
			base = RequestOrigin(request)
		}

		ctx := context.WithValue(request.Context(), constant.ContextKeyBaseURL, base)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RequestOrigin is scheme://host of the request as seen by the client, honouring proxy headers.
func RequestOrigin(request *http.Request) string {
	scheme := "http"
	if request.TLS != nil {
		scheme = "https"
	}

	if proto := firstValue(request.Header.Get(constant.RequestHeaderForwardedProto)); proto != "" {
		scheme = proto
	}

	host := request.Host
	if forwarded := firstValue(request.Header.Get(constant.RequestHeaderForwardedHost)); forwarded != "" {
		host = forwarded
	}

	return scheme + "://" + host
}

func firstValue(header string) string {
	value, _, _ := strings.Cut(header, ",")

	return strings.TrimSpace(value)
}
