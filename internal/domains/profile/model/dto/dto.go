package dto

import (
	"strings"

	"coating/internal/domains/profile/model"
	gDto "coating/shared/dto"
	"coating/shared/validator"
)

type ProfileResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Phone       *string `json:"phone"`
	AvatarURL   *string `json:"avatar_url"`
	Role        string  `json:"role"`
	IsAdmin     bool    `json:"is_admin"`
	gDto.Metadata
}

func (r *ProfileResponse) FromModel(m model.Profile) {
	r.ID = m.ID
	r.UserID = m.UserID
	r.DisplayName = m.DisplayName
	r.Phone = m.Phone
	r.AvatarURL = m.AvatarURL
	r.Role = m.Role
	r.IsAdmin = m.IsAdmin()
	r.Metadata.FromModel(m.Metadata)
}

// UpdateProfileRequest patches the caller's profile. Empty fields are left unchanged.
type UpdateProfileRequest struct {
	DisplayName string `db:"display_name" json:"display_name" validate:"max=100"`
	Phone       string `db:"phone"        json:"phone"        validate:"max=20"`
	AvatarURL   string `db:"avatar_url"   json:"avatar_url"   validate:"omitempty,url,max=500"`
}

func (u *UpdateProfileRequest) Normalize() {
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	u.Phone = strings.TrimSpace(u.Phone)
	u.AvatarURL = strings.TrimSpace(u.AvatarURL)
}

func (u *UpdateProfileRequest) ValidationMessages() map[string]string {
	return validator.FieldMessages{
		"display_name": "Tên quá dài",
		"phone":        "Số điện thoại không hợp lệ",
		"avatar_url":   "Đường dẫn ảnh đại diện không hợp lệ",
	}
}

type RoleResponse struct {
	IsAdmin bool `json:"is_admin"`
}
