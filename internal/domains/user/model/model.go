package model

import "coating/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID    = "id"
	FieldEmail = "email"

	// EmailConstraint is the unique index on LOWER(email).
	EmailConstraint = "users_email_key"
)

type User struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	model.Metadata
}
