package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"coating/infras/otel"
	"coating/infras/postgres"
	"coating/internal/domains/profile/model"
	gDto "coating/shared/dto"
	gRepo "coating/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Profile interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, profile model.Profile) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Profile, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Profile]
}

func New(db *postgres.Connection, otel otel.Otel) Profile {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Profile](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
