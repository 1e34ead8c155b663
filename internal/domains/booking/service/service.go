package service

import (
	"context"
	"errors"
	"fmt"

	"studio/config"
	"studio/infras/metrics"
	"studio/infras/otel"
	"studio/internal/domains/booking/model"
	"studio/internal/domains/booking/model/dto"
	"studio/internal/domains/booking/repository"
	notificationModel "studio/internal/domains/notification/model"
	notificationService "studio/internal/domains/notification/service"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gRepo "studio/shared/repository"
	"studio/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	// Create reserves the (date, time) slot. A taken slot is rejected before anything is written.
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, page int) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.BookingResponse, error)
	UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) (dto.BookingResponse, error)
	Availability(ctx context.Context) ([]dto.SlotResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	cfg      *config.Config
	notifier notificationService.Notifier
	otel     otel.Otel
}

func New(repo repository.Booking, cfg *config.Config, notifier notificationService.Notifier, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		notifier: notifier,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()
	scope.SetAttributes(map[string]any{"booking.date": req.Date, "booking.time": req.Time})

	taken, err := s.repo.Exist(ctx, repository.SlotFilter(req.Date, req.Time))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking slot")
		metrics.RecordBooking(metrics.StatusFailure)

		return res, fmt.Errorf("failed to check booking slot: %w", err)
	}

	if taken {
		metrics.RecordBooking(metrics.StatusConflict)

		return res, failure.SlotTaken(dto.MessageSlotTaken)
	}

	booking := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, booking); err != nil {
		// the unique (date, time) index catches a concurrent reservation that passed the pre-check
		if shared.IsUniqueViolation(err) {
			metrics.RecordBooking(metrics.StatusConflict)

			return res, failure.SlotTaken(dto.MessageSlotTaken)
		}

		log.Error().Err(err).Msg("failed to create booking")
		metrics.RecordBooking(metrics.StatusFailure)

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	metrics.RecordBooking(metrics.StatusSuccess)

	s.notifier.Notify(ctx, s.messages(booking)...)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) messages(booking model.Booking) []notificationModel.Message {
	data := map[string]string{
		notificationModel.KeyName:        booking.Name,
		notificationModel.KeyEmail:       booking.Email,
		notificationModel.KeyPhone:       booking.Phone,
		notificationModel.KeyDate:        booking.Date,
		notificationModel.KeyTime:        booking.Time,
		notificationModel.KeyTypeOfShoot: booking.TypeOfShoot,
		notificationModel.KeyLocation:    booking.Location,
		notificationModel.KeyMessage:     booking.Message,
	}

	messages := []notificationModel.Message{
		notificationModel.Email(notificationModel.TemplateBookingConfirmation, booking.Email, data),
	}

	if studio := s.cfg.Notification.StudioEmail; studio != "" {
		messages = append(messages, notificationModel.Email(notificationModel.TemplateBookingAlert, studio, data))
	}

	if phone := s.cfg.Notification.StudioPhone; phone != "" {
		messages = append(messages, notificationModel.SMS(notificationModel.TemplateBookingAlert, phone, data))
	}

	return messages
}

func (s *serviceImpl) GetAll(ctx context.Context, page int) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		Page:  max(page, constant.DefaultValuePage),
		Limit: dto.PageSize,
		Sort: []gDto.Sort{
			{Field: model.FieldDate, Dir: gDto.SortDirDesc},
			{Field: model.FieldTime, Dir: gDto.SortDirDesc},
		},
	}

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, params.Page)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !req.Status.IsValid() {
		return res, failure.BadRequestFromString("status must be one of pending confirmed rejected completed cancelled")
	}

	return s.update(ctx, id, shared.TransformFields(req, shared.Actor(ctx)))
}

func (s *serviceImpl) UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Payment == nil || *req.Payment < 0 {
		return res, failure.BadRequestFromString("payment must be greater than or equal to 0")
	}

	return s.update(ctx, id, map[string]any{
		model.FieldPayment:       float64(*req.Payment),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.Actor(ctx),
	})
}

func (s *serviceImpl) update(ctx context.Context, id string, fields map[string]any) (res dto.BookingResponse, err error) {
	if !shared.IsValidID(id) {
		return res, failure.NotFound(model.EntityName)
	}

	affected, err := s.repo.Update(ctx, fields, gDto.Eq(model.FieldID, id))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	if affected == 0 {
		return res, failure.NotFound(model.EntityName)
	}

	booking, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Availability(ctx context.Context) (res []dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		Sort: []gDto.Sort{
			{Field: model.FieldDate, Dir: gDto.SortDirAsc},
			{Field: model.FieldTime, Dir: gDto.SortDirAsc},
		},
	}

	bookings, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{}, model.FieldDate, model.FieldTime)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booked slots")

		return nil, fmt.Errorf("failed to get booked slots: %w", err)
	}

	return dto.FromModelsToSlots(bookings), nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Booking, error) {
	if !shared.IsValidID(id) {
		return model.Booking{}, failure.NotFound(model.EntityName)
	}

	booking, err := s.repo.Get(ctx, gDto.Eq(model.FieldID, id))
	if errors.Is(err, gRepo.ErrNotFound) {
		return booking, failure.NotFound(model.EntityName)
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}
