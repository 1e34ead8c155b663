package gallery

import (
	"net/http"
	"strings"

	"studio/config"
	"studio/infras/otel"
	"studio/internal/domains/gallery/model/dto"
	"studio/internal/domains/gallery/service"
	"studio/shared/constant"
	"studio/shared/validator"
	"studio/transport/http/middleware"
	"studio/transport/http/request"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	messageCreateFailed = "Image compression failed"
	messageFetchFailed  = "Failed to fetch gallery"
	messageUpdateFailed = "Failed to update image"
	messageDeleteFailed = "Failed to delete image"
)

type Handler struct {
	service service.Gallery
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Gallery, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth middleware.Auth) {
	router.Route("/gallery", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetImages)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(auth.Auth)
			protected.Post("/", handler.CreateImage)
			protected.Put("/{id}", handler.UpdateImage)
			protected.Delete("/{id}", handler.DeleteImage)
		})
	})
}

// CreateImage uploads a gallery image.
// @Summary Upload a gallery image
// @Description The image is resized and recompressed to JPEG before it is stored.
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Param caption formData string false "Caption"
// @Param category formData string false "Category, defaults to others"
// @Success 201 {object} dto.ImageResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /gallery [post]
// @Security BearerAuth
func (handler *Handler) CreateImage(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateImage")
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

	req := dto.CreateImageRequest{
		Image:    header,
		Caption:  r.FormValue("caption"),
		Category: r.FormValue("category"),
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate gallery upload")

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	res, err := handler.service.Create(ctx, req, file)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create gallery image")

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetImages lists gallery images, newest first.
// @Summary Get gallery images
// @Tags Gallery
// @Produce json
// @Param category query string false "Only images of this category"
// @Success 200 {array} dto.ImageResponse
// @Failure 500 {object} response.Error
// @Router /gallery [get]
func (handler *Handler) GetImages(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImages")
	defer scope.End()

	images, err := handler.service.GetAll(ctx, strings.TrimSpace(r.URL.Query().Get(constant.RequestParamCategory)))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gallery images")

		response.WithError(writer, err, messageFetchFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, images)
}

// UpdateImage changes the caption or category and optionally replaces the file.
// @Summary Update a gallery image
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Image ID"
// @Param image formData file false "Replacement image"
// @Param caption formData string false "Caption"
// @Param category formData string false "Category"
// @Success 200 {object} dto.ImageResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /gallery/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateImage(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateImage")
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

	req := dto.UpdateImageRequest{
		Image:    header,
		Caption:  request.FormValue(r, "caption"),
		Category: request.FormValue(r, "category"),
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate gallery update")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	res, err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req, file)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update gallery image")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteImage removes the record and then its file.
// @Summary Delete a gallery image
// @Tags Gallery
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /gallery/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete gallery image")

		response.WithError(writer, err, messageDeleteFailed)

		return
	}

	response.WithMessage(writer, http.StatusOK, dto.MessageDeleted)
}
