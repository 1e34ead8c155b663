package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"

	"studio/config"
	"studio/infras/otel"
	"studio/internal/domains/gallery/model"
	"studio/internal/domains/gallery/model/dto"
	"studio/internal/domains/gallery/repository"
	mediaModel "studio/internal/domains/media/model"
	mediaService "studio/internal/domains/media/service"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gRepo "studio/shared/repository"

	"github.com/rs/zerolog/log"
)

type Gallery interface {
	Create(ctx context.Context, req dto.CreateImageRequest, image io.Reader) (dto.ImageResponse, error)
	// GetAll lists images newest first; an empty category lists every image.
	GetAll(ctx context.Context, category string) ([]dto.ImageResponse, error)
	// Update replaces the file only when image is non-nil. The superseded file is removed afterwards.
	Update(ctx context.Context, id string, req dto.UpdateImageRequest, image io.Reader) (dto.ImageResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Gallery
	media mediaService.Media
	cfg   *config.Config
	otel  otel.Otel
}

func New(repo repository.Gallery, media mediaService.Media, cfg *config.Config, otel otel.Otel) Gallery {
	return &serviceImpl{
		repo:  repo,
		media: media,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateImageRequest, image io.Reader) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	asset, err := s.media.IngestImage(ctx, image, mediaService.CategoryGallery, s.cfg.Media.Gallery)
	if err != nil {
		return res, err
	}

	galleryImage := req.ToModel(asset, shared.Actor(ctx))

	if err = s.repo.Insert(ctx, galleryImage); err != nil {
		log.Error().Err(err).Msg("failed to create gallery image")
		s.media.Remove(ctx, asset)

		return res, fmt.Errorf("failed to create gallery image: %w", err)
	}

	res.FromModel(galleryImage, s.media.BaseURL(ctx))

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, category string) (res []dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{}
	if category != "" {
		filter = gDto.Eq(model.FieldCategory, category)
	}

	params := gDto.QueryParams{
		Sort: []gDto.Sort{{Field: constant.FieldCreatedAt, Dir: gDto.SortDirDesc}},
	}

	images, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get gallery images")

		return nil, fmt.Errorf("failed to get gallery images: %w", err)
	}

	return dto.FromModels(images, s.media.BaseURL(ctx)), nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateImageRequest, image io.Reader) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	req.Normalize()
	fields := shared.TransformFields(req, shared.Actor(ctx))

	var replacement mediaModel.Asset

	if image != nil {
		replacement, err = s.media.IngestImage(ctx, image, mediaService.CategoryGallery, s.cfg.Media.Gallery)
		if err != nil {
			return res, err
		}

		maps.Copy(fields, replacement.Fields())
	}

	if _, err = s.repo.Update(ctx, fields, gDto.Eq(model.FieldID, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update gallery image")

		if replacement.IsStored() {
			s.media.Remove(ctx, replacement)
		}

		return res, fmt.Errorf("failed to update gallery image: %w", err)
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
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".gallery.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, gDto.Eq(model.FieldID, id))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete gallery image")

		return fmt.Errorf("failed to delete gallery image: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(model.EntityName)
	}

	s.media.Remove(ctx, current.Asset)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Image, error) {
	if !shared.IsValidID(id) {
		return model.Image{}, failure.NotFound(model.EntityName)
	}

	image, err := s.repo.Get(ctx, gDto.Eq(model.FieldID, id))
	if errors.Is(err, gRepo.ErrNotFound) {
		return image, failure.NotFound(model.EntityName)
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get gallery image")

		return image, fmt.Errorf("failed to get gallery image: %w", err)
	}

	return image, nil
}
