package service

import (
	"context"
	"errors"
	"fmt"

	"studio/config"
	"studio/infras/metrics"
	"studio/infras/otel"
	"studio/internal/domains/inquiry/model"
	"studio/internal/domains/inquiry/model/dto"
	"studio/internal/domains/inquiry/repository"
	notificationModel "studio/internal/domains/notification/model"
	notificationService "studio/internal/domains/notification/service"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gRepo "studio/shared/repository"

	"github.com/rs/zerolog/log"
)

type Inquiry interface {
	// Create stores the inquiry and queues the studio alert and the customer receipt.
	Create(ctx context.Context, req dto.CreateInquiryRequest) (dto.InquiryResponse, error)
	GetAll(ctx context.Context) ([]dto.InquiryResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.InquiryResponse, error)
}

type serviceImpl struct {
	repo     repository.Inquiry
	cfg      *config.Config
	notifier notificationService.Notifier
	otel     otel.Otel
}

func New(repo repository.Inquiry, cfg *config.Config, notifier notificationService.Notifier, otel otel.Otel) Inquiry {
	return &serviceImpl{
		repo:     repo,
		cfg:      cfg,
		notifier: notifier,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInquiryRequest) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inquiry.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	if req.Incomplete() {
		return res, failure.BadRequestFromString(dto.MessageRequired)
	}

	inquiry := req.ToModel(shared.Actor(ctx))

	if err = s.repo.Insert(ctx, inquiry); err != nil {
		log.Error().Err(err).Msg("failed to create inquiry")

		return res, fmt.Errorf("failed to create inquiry: %w", err)
	}

	metrics.RecordInquiry()

	s.notifier.Notify(ctx, s.messages(inquiry)...)

	res.FromModel(inquiry)

	return res, nil
}

func (s *serviceImpl) messages(inquiry model.Inquiry) []notificationModel.Message {
	data := map[string]string{
		notificationModel.KeyName:    inquiry.Name,
		notificationModel.KeyEmail:   inquiry.Email,
		notificationModel.KeyMessage: inquiry.Message,
	}

	messages := make([]notificationModel.Message, 0, 2)

	if studio := s.cfg.Notification.StudioEmail; studio != "" {
		messages = append(messages, notificationModel.Email(notificationModel.TemplateInquiryAlert, studio, data))
	}

	return append(messages, notificationModel.Email(notificationModel.TemplateInquiryReceipt, inquiry.Email, data))
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inquiry.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		Sort: []gDto.Sort{{Field: constant.FieldCreatedAt, Dir: gDto.SortDirDesc}},
	}

	inquiries, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiries")

		return nil, fmt.Errorf("failed to get inquiries: %w", err)
	}

	return dto.FromModels(inquiries), nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inquiry.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !req.Status.IsValid() {
		return res, failure.BadRequestFromString("status must be one of pending responded closed")
	}

	if !shared.IsValidID(id) {
		return res, failure.NotFound(model.EntityName)
	}

	affected, err := s.repo.Update(ctx, shared.TransformFields(req, shared.Actor(ctx)), gDto.Eq(model.FieldID, id))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update inquiry")

		return res, fmt.Errorf("failed to update inquiry: %w", err)
	}

	if affected == 0 {
		return res, failure.NotFound(model.EntityName)
	}

	inquiry, err := s.repo.Get(ctx, gDto.Eq(model.FieldID, id))
	if errors.Is(err, gRepo.ErrNotFound) {
		return res, failure.NotFound(model.EntityName)
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get inquiry")

		return res, fmt.Errorf("failed to get inquiry: %w", err)
	}

	res.FromModel(inquiry)

	return res, nil
}
