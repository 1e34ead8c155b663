package router

import (
	"net/http"
	"strings"

	"studio/config"
	_ "studio/docs"
	"studio/infras/metrics"
	"studio/internal/handlers/admin"
	"studio/internal/handlers/booking"
	"studio/internal/handlers/gallery"
	"studio/internal/handlers/inquiry"
	"studio/internal/handlers/offering"
	"studio/internal/handlers/review"
	"studio/internal/handlers/stats"
	"studio/internal/handlers/upload"
	"studio/internal/handlers/video"
	"studio/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	metricsPath = "/metrics"
	swaggerPath = "/swagger/*"
)

type DomainHandlers struct {
	Admin    admin.Handler
	Booking  booking.Handler
	Gallery  gallery.Handler
	Inquiry  inquiry.Handler
	Offering offering.Handler
	Review   review.Handler
	Stats    stats.Handler
	Upload   upload.Handler
	Video    video.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Config         *config.Config
	App            middleware.AppMiddleware
	Auth           middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RealIP, chiMiddleware.Recoverer, metrics.Middleware, r.App.Tracing)

	if corsCfg := r.Config.App.CORS; corsCfg.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsCfg.AllowedOrigins,
			AllowedMethods:   corsCfg.AllowedMethods,
			AllowedHeaders:   corsCfg.AllowedHeaders,
			AllowCredentials: corsCfg.AllowCredentials,
			MaxAge:           corsCfg.MaxAgeSeconds,
		}))
	}

	router.Use(r.App.BaseURL)

	router.Handle(metricsPath, metrics.Handler())
	router.Get(swaggerPath, httpSwagger.Handler())

	r.DomainHandlers.Upload.Router(router)

	router.Route(basePath(r.Config.App.BasePath), func(routerGroup chi.Router) {
		r.DomainHandlers.Admin.Router(routerGroup, r.Auth, r.App)
		r.DomainHandlers.Booking.Router(routerGroup, r.Auth, r.App)
		r.DomainHandlers.Gallery.Router(routerGroup, r.Auth)
		r.DomainHandlers.Inquiry.Router(routerGroup, r.Auth, r.App)
		r.DomainHandlers.Offering.Router(routerGroup, r.Auth)
		r.DomainHandlers.Review.Router(routerGroup, r.Auth)
		r.DomainHandlers.Stats.Router(routerGroup, r.Auth)
		r.DomainHandlers.Video.Router(routerGroup, r.Auth)
	})
}

// basePath normalizes the configured prefix to "/segment" form; empty means root.
func basePath(path string) string {
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")

	return path
}

// Handler builds a fresh mux with every route mounted.
func (r *Router) Handler() http.Handler {
	mux := chi.NewRouter()
	r.SetupRoutes(mux)

	return mux
}

func New(cfg *config.Config, domainHandlers DomainHandlers, app middleware.AppMiddleware, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Config:         cfg,
		App:            app,
		Auth:           auth,
	}
}
