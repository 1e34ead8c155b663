package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"studio/infras/otel"
	mediaModel "studio/internal/domains/media/model"
	mediaService "studio/internal/domains/media/service"
	"studio/internal/domains/video/model"
	"studio/internal/domains/video/model/dto"
	"studio/internal/domains/video/repository"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gRepo "studio/shared/repository"

	"github.com/rs/zerolog/log"
)

type Video interface {
	// Create stores the uploaded file as is, or registers req.URL when file is nil.
	Create(ctx context.Context, req dto.CreateVideoRequest, file io.Reader, filename string) (dto.VideoResponse, error)
	GetAll(ctx context.Context, category string) ([]dto.VideoResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateVideoRequest) (dto.VideoResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Video
	media mediaService.Media
	otel  otel.Otel
}

func New(repo repository.Video, media mediaService.Media, otel otel.Otel) Video {
	return &serviceImpl{
		repo:  repo,
		media: media,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateVideoRequest, file io.Reader, filename string) (res dto.VideoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".video.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	var asset mediaModel.Asset

	switch {
	case file != nil:
		asset, err = s.media.StoreFile(ctx, file, mediaService.CategoryVideo, filename)
		if err != nil {
			return res, err
		}
	case req.URL != "":
		asset = mediaModel.Asset{URL: req.URL}
	default:
		return res, failure.BadRequestFromString(dto.MessageNoContent)
	}

	video := req.ToModel(asset, shared.Actor(ctx))

	if err = s.repo.Insert(ctx, video); err != nil {
		log.Error().Err(err).Msg("failed to create video")
		s.media.Remove(ctx, asset)

		return res, fmt.Errorf("failed to create video: %w", err)
	}

	res.FromModel(video, s.media.BaseURL(ctx))

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, category string) (res []dto.VideoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".video.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{}
	if category != "" {
		filter = gDto.Eq(model.FieldCategory, category)
	}

	params := gDto.QueryParams{
		Sort: []gDto.Sort{{Field: constant.FieldCreatedAt, Dir: gDto.SortDirDesc}},
	}

	videos, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get videos")

		return nil, fmt.Errorf("failed to get videos: %w", err)
	}

	return dto.FromModels(videos, s.media.BaseURL(ctx)), nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateVideoRequest) (res dto.VideoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".video.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !shared.IsValidID(id) {
		return res, failure.NotFound(model.EntityName)
	}

	req.Normalize()

	affected, err := s.repo.Update(ctx, shared.TransformFields(req, shared.Actor(ctx)), gDto.Eq(model.FieldID, id))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update video")

		return res, fmt.Errorf("failed to update video: %w", err)
	}

	if affected == 0 {
		return res, failure.NotFound(model.EntityName)
	}

	video, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(video, s.media.BaseURL(ctx))

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".video.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, gDto.Eq(model.FieldID, id))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete video")

		return fmt.Errorf("failed to delete video: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(model.EntityName)
	}

	// external links have no stored file; Remove skips them
	s.media.Remove(ctx, current.Asset)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Video, error) {
	if !shared.IsValidID(id) {
		return model.Video{}, failure.NotFound(model.EntityName)
	}

	video, err := s.repo.Get(ctx, gDto.Eq(model.FieldID, id))
	if errors.Is(err, gRepo.ErrNotFound) {
		return video, failure.NotFound(model.EntityName)
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get video")

		return video, fmt.Errorf("failed to get video: %w", err)
	}

	return video, nil
}
