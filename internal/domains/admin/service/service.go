package service

import (
	"context"
	"errors"
	"fmt"

	"studio/config"
	"studio/infras/jwt"
	"studio/infras/metrics"
	"studio/infras/otel"
	"studio/internal/domains/admin/model"
	"studio/internal/domains/admin/model/dto"
	"studio/internal/domains/admin/repository"
	"studio/shared"
	"studio/shared/constant"
	gDto "studio/shared/dto"
	"studio/shared/failure"
	"studio/shared/password"
	gRepo "studio/shared/repository"

	"github.com/rs/zerolog/log"
)

type Admin interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	// Me returns the admin named by the verified token on ctx.
	Me(ctx context.Context) (dto.AdminResponse, error)
}

type serviceImpl struct {
	repo       repository.Admin
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(repo repository.Admin, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Admin {
	return &serviceImpl{
		repo:       repo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !s.cfg.App.AdminRegistrationEnable {
		return failure.ErrRegistrationClosed
	}

	req.Normalize()

	exists, err := s.repo.Exist(ctx, gDto.Eq(model.FieldEmail, req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if admin exists")

		return fmt.Errorf("failed to check if admin exists: %w", err)
	}

	if exists {
		return failure.BadRequestFromString(dto.MessageAlreadyExists)
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err = s.repo.Insert(ctx, req.ToModel(shared.Actor(ctx), hashedPassword)); err != nil {
		if shared.IsUniqueViolation(err) {
			return failure.BadRequestFromString(dto.MessageAlreadyExists)
		}

		log.Error().Err(err).Msg("failed to create admin")

		return fmt.Errorf("failed to create admin: %w", err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	admin, err := s.repo.Get(ctx, gDto.Eq(model.FieldEmail, req.Email))
	if errors.Is(err, gRepo.ErrNotFound) {
		log.Warn().Str("email", req.Email).Msg("login attempt with unknown email")
		metrics.RecordAuthAttempt(false)

		return res, failure.ErrInvalidCredentials
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if err = password.Verify(req.Password, admin.Password); err != nil {
		if errors.Is(err, password.ErrInvalidPassword) {
			log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")
			metrics.RecordAuthAttempt(false)

			return res, failure.ErrInvalidCredentials
		}

		log.Error().Err(err).Msg("failed to verify password")

		return res, fmt.Errorf("failed to verify password: %w", err)
	}

	token, err := s.jwtService.GenerateToken(ctx, admin.ID, admin.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	metrics.RecordAuthAttempt(true)

	res.FromToken(token)

	return res, nil
}

func (s *serviceImpl) Me(ctx context.Context) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Me")
	defer scope.End()
	defer scope.TraceIfError(err)

	adminID, _ := ctx.Value(constant.ContextKeyAdminID).(string)
	if adminID == "" {
		return res, failure.ErrInvalidToken
	}

	admin, err := s.repo.Get(ctx, gDto.Eq(model.FieldID, adminID), model.FieldID, model.FieldEmail,
		constant.FieldCreatedAt, constant.FieldModifiedAt, constant.FieldCreatedBy, constant.FieldModifiedBy)
	if errors.Is(err, gRepo.ErrNotFound) {
		// the token outlived its admin
		return res, failure.ErrInvalidToken
	}

	if err != nil {
		log.Error().Err(err).Str("id", adminID).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	res.FromModel(admin)

	return res, nil
}
