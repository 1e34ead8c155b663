package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"

	"studio/config"
	"studio/infras/otel"
	mediaModel "studio/internal/domains/media/model"
	mediaService "studio/internal/domains/media/service"
	"studio/internal/domains/offering/model"
	"studio/internal/domains/offering/model/dto"
	"studio/internal/domains/offering/repository"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gRepo "studio/shared/repository"

	"github.com/rs/zerolog/log"
)

type Offering interface {
	// Create stores a service listing; image may be nil.
	Create(ctx context.Context, req dto.CreateOfferingRequest, image io.Reader) (dto.OfferingResponse, error)
	GetAll(ctx context.Context) ([]dto.OfferingResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateOfferingRequest, image io.Reader) (dto.OfferingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Offering
	media mediaService.Media
	cfg   *config.Config
	otel  otel.Otel
}

func New(repo repository.Offering, media mediaService.Media, cfg *config.Config, otel otel.Otel) Offering {
	return &serviceImpl{
		repo:  repo,
		media: media,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateOfferingRequest, image io.Reader) (res dto.OfferingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offering.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	var asset mediaModel.Asset

	if image != nil {
		asset, err = s.media.IngestImage(ctx, image, mediaService.CategoryService, s.cfg.Media.Service)
		if err != nil {
			return res, err
		}
	}

	offering := req.ToModel(asset, shared.Actor(ctx))

	if err = s.repo.Insert(ctx, offering); err != nil {
		log.Error().Err(err).Msg("failed to create service")
		s.media.Remove(ctx, asset)

		return res, fmt.Errorf("failed to create offering: %w", err)
	}

	res.FromModel(offering, s.media.BaseURL(ctx))

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.OfferingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offering.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		Sort: []gDto.Sort{{Field: constant.FieldCreatedAt, Dir: gDto.SortDirDesc}},
	}

	offerings, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get offerings")

		return nil, fmt.Errorf("failed to get offerings: %w", err)
	}

	return dto.FromModels(offerings, s.media.BaseURL(ctx)), nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateOfferingRequest, image io.Reader) (res dto.OfferingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offering.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	fields := shared.TransformFields(req, shared.Actor(ctx))

	var replacement mediaModel.Asset

	if image != nil {
		replacement, err = s.media.IngestImage(ctx, image, mediaService.CategoryService, s.cfg.Media.Service)
		if err != nil {
			return res, err
		}

		maps.Copy(fields, replacement.Fields())
	}

	if _, err = s.repo.Update(ctx, fields, gDto.Eq(model.FieldID, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update service")
		s.media.Remove(ctx, replacement)

		return res, fmt.Errorf("failed to update offering: %w", err)
	}

	if replacement.IsStored() {
		s.media.Remove(ctx, current.Asset)
	}

	updated, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated, s.media.BaseURL(ctx))

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".offering.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, gDto.Eq(model.FieldID, id))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete service")

		return fmt.Errorf("failed to delete offering: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(model.EntityName)
	}

	s.media.Remove(ctx, current.Asset)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Offering, error) {
	if !shared.IsValidID(id) {
		return model.Offering{}, failure.NotFound(model.EntityName)
	}

	offering, err := s.repo.Get(ctx, gDto.Eq(model.FieldID, id))
	if errors.Is(err, gRepo.ErrNotFound) {
		return offering, failure.NotFound(model.EntityName)
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get service")

		return offering, fmt.Errorf("failed to get offering: %w", err)
	}

	return offering, nil
}
