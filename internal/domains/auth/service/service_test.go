package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	jwtLib "github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"coating/config"
	"coating/infras/jwt"
	jwtMocks "coating/infras/jwt/mocks"
	"coating/infras/otel/mocks"
	txMocks "coating/infras/postgres/mocks"
	"coating/internal/domains/auth/model/dto"
	"coating/internal/domains/auth/revocation"
	revocationMocks "coating/internal/domains/auth/revocation/mocks"
	"coating/internal/domains/auth/service"
	profileMocks "coating/internal/domains/profile/mocks"
	profileModel "coating/internal/domains/profile/model"
	userMocks "coating/internal/domains/user/mocks"
	userModel "coating/internal/domains/user/model"
	"coating/shared/cache"
	"coating/shared/constant"
	"coating/shared/failure"
	"coating/shared/identity"
	"coating/shared/password"
)

type fixture struct {
	users    *userMocks.MockUser
	profiles *profileMocks.MockProfile
	tx       *txMocks.MockTransactor
	revoked  *revocationMocks.MockStore
	jwt      *jwtMocks.MockJWT
	svc      service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.JWT.AccessExpireMin = 15

	f := fixture{
		users:    userMocks.NewMockUser(ctrl),
		profiles: profileMocks.NewMockProfile(ctrl),
		tx:       txMocks.NewMockTransactor(ctrl),
		revoked:  revocationMocks.NewMockStore(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
	}
	f.svc = service.New(f.users, f.profiles, f.tx, f.revoked, f.jwt, cfg, mocks.NewOtel())

	return f
}

func runTx(_ context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

func signUpRequest() dto.SignUpRequest {
	return dto.SignUpRequest{
		DisplayName:     "Phạm Văn E",
		Email:           "E@Example.vn",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestAuthService_SignUp(t *testing.T) {
	t.Run("creates user and profile together", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.users.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, user userModel.User) error {
				assert.Equal(t, "e@example.vn", user.Email)
				assert.NoError(t, password.Verify("secret1", user.PasswordHash))

				return nil
			})
		f.profiles.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, profile profileModel.Profile) error {
				assert.Equal(t, constant.RoleUser, profile.Role)
				assert.Equal(t, "Phạm Văn E", profile.DisplayName)

				return nil
			})

		res, err := f.svc.SignUp(context.Background(), signUpRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, res.UserID)
	})

	t.Run("registered email", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.SignUp(context.Background(), signUpRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, service.MessageEmailTaken, failure.GetMessage(err))
	})

	t.Run("email taken by a concurrent sign up", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.users.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation, Constraint: userModel.EmailConstraint})

		_, err := f.svc.SignUp(context.Background(), signUpRequest())

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("profile insert failure is a store error", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
		f.users.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.profiles.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("fk violation"))

		_, err := f.svc.SignUp(context.Background(), signUpRequest())

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, constant.MessageStoreFailure, failure.GetMessage(err))
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		f := newFixture(t)

		req := signUpRequest()
		req.ConfirmPassword = "secret2"

		_, err := f.svc.SignUp(context.Background(), req)

		assert.Equal(t, "confirm_password", failure.GetField(err))
	})
}

func TestAuthService_SignIn(t *testing.T) {
	hash, err := password.Hash("secret1")
	require.NoError(t, err)

	stored := userModel.User{ID: "u-1", Email: "e@example.vn", PasswordHash: hash}

	tests := []struct {
		name      string
		req       dto.SignInRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "admin receives an admin token",
			req:  dto.SignInRequest{Email: " E@example.vn", Password: "secret1"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.profiles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{UserID: "u-1", Role: constant.RoleAdmin}, nil)
				f.jwt.EXPECT().
					GenerateTokenPair("u-1", "e@example.vn", constant.RoleAdmin).
					Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
			},
		},
		{
			name: "missing profile falls back to user role",
			req:  dto.SignInRequest{Email: "e@example.vn", Password: "secret1"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
				f.profiles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{}, nil)
				f.jwt.EXPECT().
					GenerateTokenPair("u-1", "e@example.vn", constant.RoleUser).
					Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)
			},
		},
		{
			name: "unknown email",
			req:  dto.SignInRequest{Email: "x@example.vn", Password: "secret1"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.SignInRequest{Email: "e@example.vn", Password: "secret2"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "store error",
			req:  dto.SignInRequest{Email: "e@example.vn", Password: "secret1"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("timeout"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name:      "short password never reaches the store",
			req:       dto.SignInRequest{Email: "e@example.vn", Password: "123"},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.SignIn(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantCode == http.StatusUnauthorized {
					assert.Equal(t, service.MessageInvalidCredentials, failure.GetMessage(err))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, "refresh", res.RefreshToken)
		})
	}
}

func refreshClaims(userID, tokenID string) *jwt.Claims {
	return &jwt.Claims{
		UserID:  userID,
		TokenID: tokenID,
		Type:    jwt.RefreshToken,
		RegisteredClaims: jwtLib.RegisteredClaims{
			ExpiresAt: jwtLib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestAuthService_SignOut(t *testing.T) {
	caller := identity.Identity{UserID: "u-1", Role: constant.RoleUser, TokenID: "access-1"}

	t.Run("revokes access and refresh tokens", func(t *testing.T) {
		f := newFixture(t)

		f.revoked.EXPECT().Revoke(gomock.Any(), "access-1", 15*60).Return(nil)
		f.jwt.EXPECT().ValidateToken("refresh-token", jwt.RefreshToken).Return(refreshClaims("u-1", "refresh-1"), nil)
		f.revoked.EXPECT().
			Revoke(gomock.Any(), "refresh-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, ttl int) error {
				assert.Greater(t, ttl, 3500)

				return nil
			})

		err := f.svc.SignOut(identity.WithContext(context.Background(), caller), dto.SignOutRequest{RefreshToken: "refresh-token"})

		assert.NoError(t, err)
	})

	t.Run("refresh token of another user is ignored", func(t *testing.T) {
		f := newFixture(t)

		f.revoked.EXPECT().Revoke(gomock.Any(), "access-1", gomock.Any()).Return(nil)
		f.jwt.EXPECT().ValidateToken(gomock.Any(), jwt.RefreshToken).Return(refreshClaims("u-2", "refresh-2"), nil)

		err := f.svc.SignOut(identity.WithContext(context.Background(), caller), dto.SignOutRequest{RefreshToken: "other"})

		assert.NoError(t, err)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.SignOut(context.Background(), dto.SignOutRequest{})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("revocation store unavailable", func(t *testing.T) {
		f := newFixture(t)

		f.revoked.EXPECT().Revoke(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

		err := f.svc.SignOut(identity.WithContext(context.Background(), caller), dto.SignOutRequest{})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAuthService_Refresh(t *testing.T) {
	pair := &jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}

	t.Run("rotates and retires the used refresh token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().RefreshTokens("refresh-token").Return(pair, refreshClaims("u-1", "refresh-1"), nil)
		f.revoked.EXPECT().Claim(gomock.Any(), "refresh-1", gomock.Any()).Return(true, nil)

		res, err := f.svc.Refresh(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		require.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().RefreshTokens(gomock.Any()).Return(pair, refreshClaims("u-1", "refresh-1"), nil)
		f.revoked.EXPECT().Claim(gomock.Any(), "refresh-1", gomock.Any()).Return(false, nil)

		_, err := f.svc.Refresh(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
		assert.Equal(t, service.MessageSessionExpired, failure.GetMessage(err))
	})

	t.Run("revocation store unavailable", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().RefreshTokens(gomock.Any()).Return(pair, refreshClaims("u-1", "refresh-1"), nil)
		f.revoked.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))

		_, err := f.svc.Refresh(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("expired refresh token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().RefreshTokens(gomock.Any()).Return(nil, nil, jwt.ErrExpiredToken)

		_, err := f.svc.Refresh(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_RefreshTwiceWithSameToken(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	jwtService.EXPECT().
		RefreshTokens("refresh-token").
		Return(&jwt.TokenPair{AccessToken: "new-access"}, refreshClaims("u-1", "refresh-1"), nil).
		Times(2)

	store := revocation.New(cache.NewRedisCache(client, mocks.NewOtel()))
	svc := service.New(userMocks.NewMockUser(ctrl), profileMocks.NewMockProfile(ctrl), txMocks.NewMockTransactor(ctrl),
		store, jwtService, &config.Config{}, mocks.NewOtel())

	errs := make(chan error, 2)

	var wg sync.WaitGroup
	for range 2 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.Refresh(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	var succeeded, rejected int

	for err := range errs {
		if err == nil {
			succeeded++

			continue
		}

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
		assert.Equal(t, service.MessageSessionExpired, failure.GetMessage(err))

		rejected++
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
}

func TestAuthService_Session(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Session(context.Background())
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	f.profiles.EXPECT().Get(gomock.Any(), gomock.Any()).Return(profileModel.Profile{DisplayName: "Quản trị", Role: constant.RoleAdmin}, nil)

	ctx := identity.WithContext(context.Background(), identity.Identity{UserID: "a-1", Email: "admin@example.vn", Role: constant.RoleAdmin})
	res, err := f.svc.Session(ctx)

	require.NoError(t, err)
	assert.Equal(t, "a-1", res.UserID)
	assert.Equal(t, "admin@example.vn", res.Email)
	assert.Equal(t, "Quản trị", res.DisplayName)
	assert.True(t, res.IsAdmin)
}
