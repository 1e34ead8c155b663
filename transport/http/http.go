package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"studio/config"
	"studio/infras/kafka"
	"studio/infras/otel"
	"studio/infras/postgres"
	mediaService "studio/internal/domains/media/service"
	notificationService "studio/internal/domains/notification/service"
	"studio/shared/constant"
	"studio/transport/http/response"
	"studio/transport/http/router"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	healthPath        = "/health"
	readHeaderTimeout = 10 * time.Second
)

type ServerState int

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config   *config.Config
	Router   router.Router
	State    ServerState
	db       *postgres.Connection
	otel     otel.Otel
	kafka    kafka.Client
	sweeper  mediaService.Sweeper
	notifier notificationService.Notifier
	handler  http.Handler
	server   *http.Server
	once     sync.Once
}

func New(
	cfg *config.Config,
	r router.Router,
	db *postgres.Connection,
	otl otel.Otel,
	client kafka.Client,
	sweeper mediaService.Sweeper,
	notifier notificationService.Notifier,
) *HTTP {
	return &HTTP{
		Config:   cfg,
		Router:   r,
		db:       db,
		otel:     otl,
		kafka:    client,
		sweeper:  sweeper,
		notifier: notifier,
	}
}

func (h *HTTP) Serve() {
	h.setup()
	h.setupGracefulShutdown()

	if err := h.sweeper.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start upload sweeper")
	}

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// ServeHTTP lets the service run behind another server without a listener of its own.
func (h *HTTP) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	h.setup()
	h.handler.ServeHTTP(writer, request)
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		mux := chi.NewRouter()
		mux.Use(h.serverStateMiddleware)

		h.Router.SetupRoutes(mux)
		mux.Get(healthPath, h.healthCheck)

		h.handler = mux
		h.State = ServerStateReady
	})
}

func (h *HTTP) healthCheck(writer http.ResponseWriter, _ *http.Request) {
	if h.State != ServerStateReady {
		response.WithUnhealthy(writer)

		return
	}

	response.WithMessage(writer, http.StatusOK, "OK")
}

func (h *HTTP) serverStateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch h.State {
		case ServerStateReady:
			next.ServeHTTP(writer, request)
		case ServerStateInGracePeriod:
			writer.Header().Set("Connection", "close")
			next.ServeHTTP(writer, request)
		case ServerStateInCleanupPeriod:
			response.WithPreparingShutdown(writer)
		default:
			response.WithUnhealthy(writer)
		}
	})
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	defer os.Exit(0)

	if h.Config.Server.Env == constant.ServerEnvLocal {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")
		h.cleanup()

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.State = ServerStateInGracePeriod

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.State = ServerStateInCleanupPeriod

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if h.server != nil {
		if err := h.server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down HTTP server")
		}
	}

	h.cleanup()

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

func (h *HTTP) cleanup() {
	h.sweeper.Stop()
	h.drainNotifications()

	if err := h.kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close kafka client")
	}

	if err := h.db.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database connections")
	}

	ctx, cancel := context.WithTimeout(context.Background(), readHeaderTimeout)
	defer cancel()

	if err := h.otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}
}

// drainNotifications gives in-flight notifications the cleanup period to finish.
func (h *HTTP) drainNotifications() {
	wait := time.Duration(h.Config.Server.Shutdown.CleanupPeriodSeconds) * time.Second
	if wait <= 0 {
		wait = readHeaderTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := h.notifier.Wait(ctx); err != nil {
		log.Warn().Err(err).Msg("Shutting down with notifications still in flight")
	}
}
