package handler

import (
	"net/http"
	"sync"

	"studio/config"
	"studio/di"
	"studio/shared/logger"
	appHTTP "studio/transport/http"

	"github.com/rs/zerolog/log"
)

var (
	server *appHTTP.HTTP
	once   sync.Once
)

// Handler is the serverless entrypoint. The service graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		var err error

		server, err = di.InitializeService()
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize service")
		}
	})

	if server == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)

		return
	}

	server.ServeHTTP(w, r)
}
