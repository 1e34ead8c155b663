package stats

import (
	"net/http"

	"studio/infras/otel"
	"studio/internal/domains/stats/service"
	"studio/shared/constant"
	"studio/transport/http/middleware"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Stats
	otel    otel.Otel
}

func New(service service.Stats, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth middleware.Auth) {
	router.Route("/admin/stats", func(routerGroup chi.Router) {
		routerGroup.Use(auth.Auth)
		routerGroup.Get("/", handler.GetStats)
	})
}

// GetStats returns the dashboard counters.
// @Summary Dashboard stats
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /admin/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStats(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	stats, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stats")

		response.WithError(writer, err, "Error fetching stats")

		return
	}

	response.WithJSON(writer, http.StatusOK, stats)
}
