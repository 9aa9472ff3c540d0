package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"coating/infras/otel"
	"coating/infras/postgres"
	"coating/internal/domains/user/model"
	gDto "coating/shared/dto"
	gRepo "coating/shared/repository"

	"github.com/jmoiron/sqlx"
)

type User interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, user model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
