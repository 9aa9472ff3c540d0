package dto

import (
	"strings"

	"coating/infras/jwt"
	profileModel "coating/internal/domains/profile/model"
	userModel "coating/internal/domains/user/model"
	"coating/shared/constant"
	"coating/shared/identity"
	gModel "coating/shared/model"
	"coating/shared/timezone"
	"coating/shared/validator"

	"github.com/google/uuid"
)

const (
	SignUpTitle        = "Đăng ký thành công!"
	SignUpDescription  = "Bạn đã đăng ký thành công và có thể đăng nhập ngay"
	SignInTitle        = "Đăng nhập thành công!"
	SignInDescription  = "Chào mừng bạn quay trở lại"
	SignOutTitle       = "Đăng xuất thành công"
	SignOutDescription = "Hẹn gặp lại bạn"
)

type SignUpRequest struct {
	DisplayName     string `json:"display_name"     validate:"required,max=100"`
	Email           string `json:"email"            validate:"required,email,max=255"`
	Password        string `json:"password"         validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=Password"`
}

func (r *SignUpRequest) Normalize() {
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *SignUpRequest) ValidationMessages() map[string]string {
	return validator.FieldMessages{
		"display_name.required": "Vui lòng nhập họ tên",
		"display_name.max":      "Tên quá dài",
		"email":                 "Email không hợp lệ",
		"password.max":          "Mật khẩu quá dài",
		"password":              "Mật khẩu phải có ít nhất 6 ký tự",
		"confirm_password":      "Mật khẩu xác nhận không khớp",
	}
}

// ToModels builds the user row and its default profile.
func (r *SignUpRequest) ToModels(passwordHash string) (userModel.User, profileModel.Profile) {
	now := timezone.Now()
	userID := uuid.NewString()

	metadata := gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  constant.ContextSystem,
		ModifiedBy: constant.ContextSystem,
	}

	user := userModel.User{
		ID:           userID,
		Email:        r.Email,
		PasswordHash: passwordHash,
		Metadata:     metadata,
	}

	profile := profileModel.Profile{
		ID:          uuid.NewString(),
		UserID:      userID,
		DisplayName: r.DisplayName,
		Role:        constant.RoleUser,
		Metadata:    metadata,
	}

	return user, profile
}

type SignUpResponse struct {
	UserID string `json:"user_id"`
}

type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (r *SignInRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *SignInRequest) ValidationMessages() map[string]string {
	return validator.FieldMessages{
		"email":    "Email không hợp lệ",
		"password": "Mật khẩu phải có ít nhất 6 ký tự",
	}
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *TokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.TokenType = tokenPair.TokenType
	r.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// SignOutRequest optionally carries the refresh token so it is revoked together with the access token.
type SignOutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type SessionResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
	IsAdmin     bool   `json:"is_admin"`
}

func (r *SessionResponse) FromProfile(id identity.Identity, profile profileModel.Profile) {
	r.UserID = id.UserID
	r.Email = id.Email
	r.DisplayName = profile.DisplayName
	r.Role = profile.Role
	r.IsAdmin = profile.IsAdmin()

	if r.Role == constant.Empty {
		r.Role = constant.RoleUser
	}
}
