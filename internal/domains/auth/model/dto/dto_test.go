package dto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coating/infras/jwt"
	"coating/internal/domains/auth/model/dto"
	profileModel "coating/internal/domains/profile/model"
	"coating/shared/constant"
	"coating/shared/failure"
	"coating/shared/identity"
	"coating/shared/validator"
)

func TestSignUpRequest_Validation(t *testing.T) {
	valid := func() dto.SignUpRequest {
		return dto.SignUpRequest{
			DisplayName:     "Phạm Văn E",
			Email:           "e@example.vn",
			Password:        "secret1",
			ConfirmPassword: "secret1",
		}
	}

	tests := []struct {
		name      string
		mutate    func(r *dto.SignUpRequest)
		wantField string
		wantMsg   string
	}{
		{"valid", func(*dto.SignUpRequest) {}, "", ""},
		{"blank display name", func(r *dto.SignUpRequest) { r.DisplayName = "  " }, "display_name", "Vui lòng nhập họ tên"},
		{"display name too long", func(r *dto.SignUpRequest) { r.DisplayName = strings.Repeat("x", 101) }, "display_name", "Tên quá dài"},
		{"bad email", func(r *dto.SignUpRequest) { r.Email = "e@" }, "email", "Email không hợp lệ"},
		{
			name: "short password",
			mutate: func(r *dto.SignUpRequest) {
				r.Password = "12345"
				r.ConfirmPassword = "12345"
			},
			wantField: "password",
			wantMsg:   "Mật khẩu phải có ít nhất 6 ký tự",
		},
		{"confirmation mismatch", func(r *dto.SignUpRequest) { r.ConfirmPassword = "secret2" }, "confirm_password", "Mật khẩu xác nhận không khớp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantField, failure.GetField(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestSignUpRequest_ToModels(t *testing.T) {
	req := dto.SignUpRequest{DisplayName: " Phạm Văn E ", Email: " E@Example.VN "}
	req.Normalize()

	user, profile := req.ToModels("hash")

	assert.Equal(t, "e@example.vn", user.Email)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, user.ID, profile.UserID)
	assert.NotEqual(t, user.ID, profile.ID)
	assert.Equal(t, "Phạm Văn E", profile.DisplayName)
	assert.Equal(t, constant.RoleUser, profile.Role)
}

func TestTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.TokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestSessionResponse_FromProfile(t *testing.T) {
	id := identity.Identity{UserID: "u-1", Email: "a@b.vn", Role: constant.RoleUser}

	var res dto.SessionResponse
	res.FromProfile(id, profileModel.Profile{DisplayName: "Admin", Role: constant.RoleAdmin})

	assert.Equal(t, "u-1", res.UserID)
	assert.True(t, res.IsAdmin)

	res = dto.SessionResponse{}
	res.FromProfile(id, profileModel.Profile{})
	assert.Equal(t, constant.RoleUser, res.Role)
	assert.False(t, res.IsAdmin)
}
