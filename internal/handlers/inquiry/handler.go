package inquiry

import (
	"net/http"

	"studio/infras/otel"
	"studio/internal/domains/inquiry/model/dto"
	"studio/internal/domains/inquiry/service"
	"studio/shared/constant"
	"studio/shared/failure"
	"studio/shared/validator"
	"studio/transport/http/middleware"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	messageCreateFailed = "Failed to send inquiry"
	messageFetchFailed  = "Failed to fetch inquiries"
	messageUpdateFailed = "Failed to update inquiry"
)

type Handler struct {
	service service.Inquiry
	otel    otel.Otel
}

func New(service service.Inquiry, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth middleware.Auth, app middleware.AppMiddleware) {
	router.Route("/contact", func(routerGroup chi.Router) {
		routerGroup.With(app.RateLimit).Post("/", handler.CreateInquiry)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(auth.Auth)
			protected.Get("/", handler.GetInquiries)
			protected.Put("/{id}/status", handler.UpdateInquiryStatus)
		})
	})
}

// CreateInquiry stores a contact form message and emails the studio and the sender.
// @Summary Send an inquiry
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param request body dto.CreateInquiryRequest true "Create Inquiry Request"
// @Success 201 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 429 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /contact [post]
func (handler *Handler) CreateInquiry(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInquiry")
	defer scope.End()

	req := dto.CreateInquiryRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		if req.Incomplete() {
			err = failure.BadRequestFromString(dto.MessageRequired)
		}

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	inquiry, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create inquiry")

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	scope.AddEvent("Inquiry created " + inquiry.ID)

	response.WithMessage(writer, http.StatusCreated, dto.MessageCreated)
}

// GetInquiries lists every inquiry, newest first.
// @Summary Get inquiries
// @Tags Inquiry
// @Produce json
// @Success 200 {array} dto.InquiryResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /contact [get]
// @Security BearerAuth
func (handler *Handler) GetInquiries(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInquiries")
	defer scope.End()

	inquiries, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inquiries")

		response.WithError(writer, err, messageFetchFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, inquiries)
}

// UpdateInquiryStatus marks an inquiry pending, responded or closed.
// @Summary Update inquiry status
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} dto.InquiryResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /contact/{id}/status [put]
// @Security BearerAuth
func (handler *Handler) UpdateInquiryStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInquiryStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	inquiry, err := handler.service.UpdateStatus(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update inquiry")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, inquiry)
}
