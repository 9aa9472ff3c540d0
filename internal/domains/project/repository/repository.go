package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"coating/infras/otel"
	"coating/infras/postgres"
	"coating/internal/domains/project/model"
	gDto "coating/shared/dto"
	gRepo "coating/shared/repository"
)

type Project interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Project, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Project, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Project]
}

func New(db *postgres.Connection, otel otel.Otel) Project {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Project](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
