package booking

import (
	"net/http"

	"studio/infras/otel"
	"studio/internal/domains/booking/model/dto"
	"studio/internal/domains/booking/service"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/validator"
	"studio/transport/http/middleware"
	"studio/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	messageCreateFailed   = "Booking failed."
	messageFetchFailed    = "Failed to load bookings."
	messageUpdateFailed   = "Failed to update booking."
	messageSlotsFailed    = "Failed to fetch availability"
	messagePaymentInvalid = "Invalid payment amount"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, auth middleware.Auth, app middleware.AppMiddleware) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.With(app.RateLimit).Post("/", handler.CreateBooking)
		routerGroup.Get("/availability", handler.GetAvailability)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(auth.Auth)
			protected.Get("/", handler.GetBookings)
			protected.Get("/{id}", handler.GetBookingByID)
			protected.Put("/{id}/status", handler.UpdateBookingStatus)
			protected.Put("/{id}/payment", handler.UpdateBookingPayment)
		})
	})
}

// CreateBooking reserves a slot.
// @Summary Create a booking
// @Description Reserve a (date, time) slot. A slot that is already taken is rejected.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.CreateBookingResponse
// @Failure 400 {object} response.Error
// @Failure 429 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err, messageCreateFailed)

		return
	}

	scope.AddEvent("Booking created " + booking.ID)

	response.WithJSON(writer, http.StatusCreated, dto.CreateBookingResponse{
		Message: dto.MessageCreated,
		Booking: booking,
	})
}

// GetBookings lists bookings ten per page, latest slot first.
// @Summary Get bookings
// @Tags Booking
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} dto.GetBookingsResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, dto.PageSize)

	bookings, err := handler.service.GetAll(ctx, queryParams.Page)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err, messageFetchFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetAvailability lists every taken slot.
// @Summary Get booked slots
// @Description Returns the date and time of every booking and nothing else.
// @Tags Booking
// @Produce json
// @Success 200 {array} dto.SlotResponse
// @Failure 500 {object} response.Error
// @Router /bookings/availability [get]
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	slots, err := handler.service.Availability(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(writer, err, messageSlotsFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, slots)
}

// GetBookingByID returns one booking.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(writer, err, messageFetchFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// UpdateBookingStatus sets the status and, optionally, the admin notes.
// @Summary Update booking status
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{id}/status [put]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	req := dto.UpdateStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	booking, err := handler.service.UpdateStatus(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	scope.AddEvent("Booking status updated to " + booking.Status)

	response.WithJSON(writer, http.StatusOK, booking)
}

// UpdateBookingPayment records the amount paid.
// @Summary Update booking payment
// @Description The amount may be a JSON number or a numeric string and must not be negative.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdatePaymentRequest true "Update Payment Request"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /bookings/{id}/payment [put]
// @Security BearerAuth
func (handler *Handler) UpdateBookingPayment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingPayment")
	defer scope.End()

	req := dto.UpdatePaymentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err, messagePaymentInvalid)

		return
	}

	booking, err := handler.service.UpdatePayment(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking payment")

		response.WithError(writer, err, messageUpdateFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}
