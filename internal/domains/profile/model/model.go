package model

import (
	"coating/shared/constant"
	"coating/shared/model"
)

const (
	TableName  = "profiles"
	EntityName = "profile"

	FieldID     = "id"
	FieldUserID = "user_id"
	FieldRole   = "role"

	MessageNotFound = "Không tìm thấy hồ sơ"
)

type Profile struct {
	ID          string  `db:"id"`
	UserID      string  `db:"user_id"`
	DisplayName string  `db:"display_name"`
	Phone       *string `db:"phone"`
	AvatarURL   *string `db:"avatar_url"`
	Role        string  `db:"role"`
	model.Metadata
}

func (p Profile) IsAdmin() bool {
	return p.Role == constant.RoleAdmin
}
