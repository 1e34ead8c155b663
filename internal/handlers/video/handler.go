package video

import (
	"net/http"
	"strings"

	"studio/config"
	"studio/infras/otel"
	"studio/internal/domains/video/model/dto"
	"studio/internal/domains/video/service"
	"studio/shared/constant"
	"studio/shared/validator"
	"studio/transport/http/middleware"
	"studio/transport/http/request"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	messageCreateFailed = "Server error while uploading video"
	messageFetchFailed  = "Failed to fetch videos"
	messageUpdateFailed = "Failed to update video"
	messageDeleteFailed = "Failed to delete video"
)

type Handler struct {
	service service.Video
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Video, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth middleware.Auth) {
	router.Route("/videos", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetVideos)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(auth.Auth)
			protected.Post("/", handler.CreateVideo)
			protected.Put("/{id}", handler.UpdateVideo)
			protected.Delete("/{id}", handler.DeleteVideo)
		})
	})
}

// CreateVideo uploads a video file or registers an external link.
// @Summary Add a video
// @Description Send either a video file or a url. Files are stored unchanged.
// @Tags Video
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param category formData string false "Category, defaults to General"
// @Param video formData file false "Video file, up to 150 MB"
// @Param url formData string false "External link"
// @Success 201 {object} dto.VideoResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /videos [post]
// @Security BearerAuth
func (handler *Handler) CreateVideo(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVideo")
	defer scope.End()
	defer request.Cleanup(r)

	if err := request.ParseMultipart(writer, r, handler.cfg.Media.MaxVideoSizeMB); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err, messageCreateFailed)

		return
	}

	file, header, err := request.OptionalFile(r, constant.FormFileVideo)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err, messageCreateFailed)

		return
	}

	req := dto.CreateVideoRequest{
		Video:    header,
		URL:      strings.TrimSpace(r.FormValue("url")),
		Title:    r.FormValue("title"),
		Category: r.FormValue("category"),
	}

	filename := ""

	if file != nil {
		defer file.Close()

		filename = header.Filename
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate video")

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	res, err := handler.service.Create(ctx, req, file, filename)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create video")

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetVideos lists videos, newest first.
// @Summary Get videos
// @Tags Video
// @Produce json
// @Param category query string false "Only videos of this category"
// @Success 200 {array} dto.VideoResponse
// @Failure 500 {object} response.Error
// @Router /videos [get]
func (handler *Handler) GetVideos(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVideos")
	defer scope.End()

	videos, err := handler.service.GetAll(ctx, strings.TrimSpace(r.URL.Query().Get(constant.RequestParamCategory)))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get videos")

		response.WithError(writer, err, messageFetchFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, videos)
}

// UpdateVideo renames or recategorizes a video.
// @Summary Update a video
// @Tags Video
// @Accept json
// @Produce json
// @Param id path string true "Video ID"
// @Param request body dto.UpdateVideoRequest true "Update Video Request"
// @Success 200 {object} dto.VideoResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /videos/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateVideo(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVideo")
	defer scope.End()

	req := dto.UpdateVideoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	res, err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update video")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteVideo removes the record and, for uploads, the stored file.
// @Summary Delete a video
// @Tags Video
// @Produce json
// @Param id path string true "Video ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /videos/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteVideo(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteVideo")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete video")

		response.WithError(writer, err, messageDeleteFailed)

		return
	}

	response.WithMessage(writer, http.StatusOK, dto.MessageDeleted)
}
