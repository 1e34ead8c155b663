package admin

import (
	"net/http"

	"studio/infras/otel"
	"studio/internal/domains/admin/model/dto"
	"studio/internal/domains/admin/service"
	"studio/shared/constant"
	"studio/shared/validator"
	"studio/transport/http/middleware"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const messageServerError = "Server error"

type Handler struct {
	service service.Admin
	otel    otel.Otel
}

func New(service service.Admin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth middleware.Auth, app middleware.AppMiddleware) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.With(app.RateLimit).Post("/register", handler.Register)
		routerGroup.With(app.RateLimit).Post("/login", handler.Login)
		routerGroup.With(auth.Auth).Get("/me", handler.Me)
	})
}

// Register creates an admin account.
// @Summary Register an admin
// @Description Fails with 403 when registration is switched off.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Message "Admin registered successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /admin/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err, messageServerError)

		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register admin")

		response.WithError(w, err, messageServerError)

		return
	}

	scope.AddEvent("Admin registered successfully")

	response.WithMessage(w, http.StatusCreated, dto.MessageRegistered)
}

// Login exchanges admin credentials for a bearer token.
// @Summary Login an admin
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 429 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /admin/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err, messageServerError)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to login admin")

		response.WithError(w, err, messageServerError)

		return
	}

	scope.AddEvent("Admin logged in successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// Me returns the signed-in admin.
// @Summary Current admin
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.AdminResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /admin/me [get]
// @Security BearerAuth
func (handler *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Me")
	defer scope.End()

	res, err := handler.service.Me(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current admin")

		response.WithError(w, err, messageServerError)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
