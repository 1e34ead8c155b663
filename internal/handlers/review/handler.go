package review

import (
	"net/http"

	"studio/config"
	"studio/infras/otel"
	"studio/internal/domains/review/model/dto"
	"studio/internal/domains/review/service"
	"studio/shared/constant"
	"studio/shared/validator"
	"studio/transport/http/middleware"
	"studio/transport/http/request"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	messageCreateFailed = "Failed to add review"
	messageFetchFailed  = "Failed to fetch reviews"
	messageUpdateFailed = "Failed to update review"
	messageDeleteFailed = "Failed to delete review"

	formName    = "name"
	formRating  = "rating"
	formComment = "comment"
)

type Handler struct {
	service service.Review
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Review, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth middleware.Auth) {
	router.Route("/reviews", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetReviews)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(auth.Auth)
			protected.Post("/", handler.CreateReview)
			protected.Put("/{id}", handler.UpdateReview)
			protected.Delete("/{id}", handler.DeleteReview)
		})
	})
}

// CreateReview adds a testimonial with an optional photo.
// @Summary Add a review
// @Tags Review
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Reviewer name"
// @Param rating formData int true "Rating from 1 to 5"
// @Param comment formData string true "Comment"
// @Param image formData file false "Reviewer photo"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reviews [post]
// @Security BearerAuth
func (handler *Handler) CreateReview(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
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

	rating, err := request.IntValue(r, formRating)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err, messageCreateFailed)

		return
	}

	req := dto.CreateReviewRequest{
		Image:   header,
		Name:    r.FormValue(formName),
		Comment: r.FormValue(formComment),
	}

	if rating != nil {
		req.Rating = *rating
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate review")

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	res, err := handler.service.Create(ctx, req, file)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create review")

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetReviews lists reviews, newest first.
// @Summary Get reviews
// @Tags Review
// @Produce json
// @Success 200 {array} dto.ReviewResponse
// @Failure 500 {object} response.Error
// @Router /reviews [get]
func (handler *Handler) GetReviews(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviews")
	defer scope.End()

	reviews, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reviews")

		response.WithError(writer, err, messageFetchFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, reviews)
}

// UpdateReview changes any of the fields and optionally replaces the photo.
// @Summary Update a review
// @Tags Review
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Review ID"
// @Param name formData string false "Reviewer name"
// @Param rating formData int false "Rating from 1 to 5"
// @Param comment formData string false "Comment"
// @Param image formData file false "Replacement photo"
// @Success 200 {object} dto.ReviewResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reviews/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateReview(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReview")
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

	rating, err := request.IntValue(r, formRating)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	req := dto.UpdateReviewRequest{
		Image:   header,
		Name:    request.FormValue(r, formName),
		Rating:  rating,
		Comment: request.FormValue(r, formComment),
	}

	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate review update")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	res, err := handler.service.Update(ctx, chi.URLParam(r, constant.RequestParamID), req, file)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update review")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteReview removes the review and its photo.
// @Summary Delete a review
// @Tags Review
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reviews/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReview(writer http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReview")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete review")

		response.WithError(writer, err, messageDeleteFailed)

		return
	}

	response.WithMessage(writer, http.StatusOK, dto.MessageDeleted)
}
