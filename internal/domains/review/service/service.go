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
	"studio/internal/domains/review/model"
	"studio/internal/domains/review/model/dto"
	"studio/internal/domains/review/repository"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	gRepo "studio/shared/repository"

	"github.com/rs/zerolog/log"
)

type Review interface {
	// Create stores a review; image may be nil.
	Create(ctx context.Context, req dto.CreateReviewRequest, image io.Reader) (dto.ReviewResponse, error)
	GetAll(ctx context.Context) ([]dto.ReviewResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateReviewRequest, image io.Reader) (dto.ReviewResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Review
	media mediaService.Media
	cfg   *config.Config
	otel  otel.Otel
}

func New(repo repository.Review, media mediaService.Media, cfg *config.Config, otel otel.Otel) Review {
	return &serviceImpl{
		repo:  repo,
		media: media,
		cfg:   cfg,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest, image io.Reader) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	var asset mediaModel.Asset

	if image != nil {
		asset, err = s.media.IngestImage(ctx, image, mediaService.CategoryReview, s.cfg.Media.Review)
		if err != nil {
			return res, err
		}
	}

	review := req.ToModel(asset, shared.Actor(ctx))

	if err = s.repo.Insert(ctx, review); err != nil {
		log.Error().Err(err).Msg("failed to create review")
		s.media.Remove(ctx, asset)

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	res.FromModel(review, s.media.BaseURL(ctx))

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		Sort: []gDto.Sort{{Field: constant.FieldCreatedAt, Dir: gDto.SortDirDesc}},
	}

	reviews, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	return dto.FromModels(reviews, s.media.BaseURL(ctx)), nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateReviewRequest, image io.Reader) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	fields := shared.TransformFields(req, shared.Actor(ctx))

	var replacement mediaModel.Asset

	if image != nil {
		replacement, err = s.media.IngestImage(ctx, image, mediaService.CategoryReview, s.cfg.Media.Review)
		if err != nil {
			return res, err
		}

		maps.Copy(fields, replacement.Fields())
	}

	if _, err = s.repo.Update(ctx, fields, gDto.Eq(model.FieldID, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update review")
		s.media.Remove(ctx, replacement)

		return res, fmt.Errorf("failed to update review: %w", err)
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
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	affected, err := s.repo.Delete(ctx, gDto.Eq(model.FieldID, id))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	if affected == 0 {
		return failure.NotFound(model.EntityName)
	}

	s.media.Remove(ctx, current.Asset)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Review, error) {
	if !shared.IsValidID(id) {
		return model.Review{}, failure.NotFound(model.EntityName)
	}

	review, err := s.repo.Get(ctx, gDto.Eq(model.FieldID, id))
	if errors.Is(err, gRepo.ErrNotFound) {
		return review, failure.NotFound(model.EntityName)
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get review")

		return review, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}
