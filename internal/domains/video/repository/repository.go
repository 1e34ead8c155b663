package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"studio/infras/otel"
	"studio/infras/postgres"
	"studio/internal/domains/video/model"
	gDto "studio/shared/dto"
	gRepo "studio/shared/repository"
)

type Video interface {
	Insert(ctx context.Context, model model.Video) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Video, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Video, error)
	Update(ctx context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Video]
}

func New(db *postgres.Connection, otel otel.Otel) Video {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Video](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
