package offering

import (
	"net/http"

	"studio/config"
	"studio/infras/otel"
	"studio/internal/domains/offering/model/dto"
	"studio/internal/domains/offering/service"
	"studio/shared/constant"
	"studio/shared/validator"
	"studio/transport/http/middleware"
	"studio/transport/http/request"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	messageCreateFailed = "Failed to add service"
	messageFetchFailed  = "Failed to fetch services"
	messageUpdateFailed = "Failed to update service"
	messageDeleteFailed = "Failed to delete service"

	formTitle       = "title"
	formDescription = "description"
	formPrice       = "price"
)

type Handler struct {
	service service.Offering
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Offering, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth middleware.Auth) {
	router.Route("/services", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetOfferings)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(auth.Auth)
			protected.Post("/", handler.CreateOffering)
			protected.Put("/{id}", handler.UpdateOffering)
			protected.Delete("/{id}", handler.DeleteOffering)
		})
	})
}

// CreateOffering adds a service listing.
// @Summary Add a service
// @Tags Service
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param price formData number false "Price, not negative"
// @Param image formData file false "Cover image"
// @Success 201 {object} dto.OfferingResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /services [post]
// @Security BearerAuth
func (handler *Handler) CreateOffering(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOffering")
	defer scope.End()
	defer request.Cleanup(r)

	if err := request.ParseMultipart(writer, r, handler.cfg.Media.MaxImageSizeMB); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err, messageCreateFailed)

		return
	}

	file, header, err := request.OptionalFile(r, constant.FormFileImage)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err, messageCreateFailed)

		return
	}

	if file != nil {
		defer file.Close()
	}

	price, err := request.FloatValue(r, formPrice)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err, messageCreateFailed)

		return
	}

	req := dto.CreateOfferingRequest{
		Image:       header,
		Title:       r.FormValue(formTitle),
		Description: r.FormValue(formDescription),
	}

	if price != nil {
		req.Price = *price
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate service")

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	res, err := handler.service.Create(ctx, req, file)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create service")

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetOfferings lists services, newest first.
// @Summary Get services
// @Tags Service
// @Produce json
// @Success 200 {array} dto.OfferingResponse
// @Failure 500 {object} response.Error
// @Router /services [get]
func (handler *Handler) GetOfferings(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOfferings")
	defer scope.End()

	offerings, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get services")

		response.WithError(writer, err, messageFetchFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, offerings)
}

// UpdateOffering changes any of the fields and optionally replaces the cover image.
// @Summary Update a service
// @Tags Service
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Service ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param price formData number false "Price, not negative"
// @Param image formData file false "Replacement cover image"
// @Success 200 {object} dto.OfferingResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /services/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateOffering(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateOffering")
	defer scope.End()
	defer request.Cleanup(r)

	if err := request.ParseMultipart(writer, r, handler.cfg.Media.MaxImageSizeMB); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	file, header, err := request.OptionalFile(r, constant.FormFileImage)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	if file != nil {
		defer file.Close()
	}

	price, err := request.FloatValue(r, formPrice)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	req := dto.UpdateOfferingRequest{
		Image:       header,
		Title:       request.FormValue(r, formTitle),
		Description: request.FormValue(r, formDescription),
		Price:       price,
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate service update")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	res, err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req, file)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update service")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteOffering removes the listing and its cover image.
// @Summary Delete a service
// @Tags Service
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /services/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteOffering(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteOffering")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete service")

		response.WithError(writer, err, messageDeleteFailed)

		return
	}

	response.WithMessage(writer, http.StatusOK, dto.MessageDeleted)
}
