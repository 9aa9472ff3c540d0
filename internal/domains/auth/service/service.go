package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"coating/config"
	"coating/infras/jwt"
	"coating/infras/otel"
	"coating/infras/postgres"
	"coating/internal/domains/auth/model/dto"
	"coating/internal/domains/auth/revocation"
	profileModel "coating/internal/domains/profile/model"
	profileRepo "coating/internal/domains/profile/repository"
	userModel "coating/internal/domains/user/model"
	userRepo "coating/internal/domains/user/repository"
	"coating/shared"
	"coating/shared/constant"
	"coating/shared/failure"
	"coating/shared/identity"
	"coating/shared/password"
	"coating/shared/validator"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	MessageEmailTaken         = "Email này đã được đăng ký"
	MessageInvalidCredentials = "Email hoặc mật khẩu không chính xác"
	MessageSessionExpired     = "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại"
)

type Auth interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (dto.SignUpResponse, error)
	SignIn(ctx context.Context, req dto.SignInRequest) (dto.TokenResponse, error)
	SignOut(ctx context.Context, req dto.SignOutRequest) error
	Refresh(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	Session(ctx context.Context) (dto.SessionResponse, error)
}

type serviceImpl struct {
	userRepo    userRepo.User
	profileRepo profileRepo.Profile
	tx          postgres.Transactor
	revoked     revocation.Store
	jwtService  jwt.JWT
	cfg         *config.Config
	otel        otel.Otel
}

func New(userRepo userRepo.User, profileRepo profileRepo.Profile, tx postgres.Transactor, revoked revocation.Store, jwt jwt.JWT, cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tx:          tx,
		revoked:     revoked,
		jwtService:  jwt,
		cfg:         cfg,
		otel:        otel,
	}
}

// SignUp creates the user and its profile in one transaction.
func (s *serviceImpl) SignUp(ctx context.Context, req dto.SignUpRequest) (res dto.SignUpResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.SignUp")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	exists, err := s.userRepo.Exist(ctx, shared.FilterByID(req.Email, userModel.FieldEmail, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, failure.Store(err)
	}

	if exists {
		return res, failure.Conflict(MessageEmailTaken)
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, failure.InternalError(fmt.Errorf("failed to hash password: %w", err))
	}

	user, profile := req.ToModels(hashedPassword)

	err = s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.userRepo.InsertTx(ctx, tx, user); err != nil {
			return err //nolint:wrapcheck
		}

		return s.profileRepo.InsertTx(ctx, tx, profile) //nolint:wrapcheck
	})

	if isEmailTaken(err) {
		return res, failure.Conflict(MessageEmailTaken)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, failure.Store(err)
	}

	res.UserID = user.ID

	return res, nil
}

func isEmailTaken(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation && pqErr.Constraint == userModel.EmailConstraint
}

func (s *serviceImpl) SignIn(ctx context.Context, req dto.SignInRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.SignIn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(req.Email, userModel.FieldEmail, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, failure.Store(err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("sign in attempt with unknown email")

		return res, failure.Unauthorized(MessageInvalidCredentials)
	}

	if err = password.Verify(req.Password, user.PasswordHash); err != nil {
		log.Warn().Str("email", req.Email).Msg("sign in attempt with wrong password")

		return res, failure.Unauthorized(MessageInvalidCredentials)
	}

	profile, err := s.profileRepo.Get(ctx, shared.FilterByID(user.ID, profileModel.FieldUserID, profileModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, failure.Store(err)
	}

	role := profile.Role
	if role == constant.Empty {
		role = constant.RoleUser
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, failure.InternalError(fmt.Errorf("failed to generate tokens: %w", err))
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// SignOut revokes the access token of the current request and, when given, the refresh token of the same user.
func (s *serviceImpl) SignOut(ctx context.Context, req dto.SignOutRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.SignOut")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return failure.Unauthorized(constant.MessageSignInRequired)
	}

	accessTTL := s.cfg.JWT.AccessExpireMin * constant.MinutesToSeconds
	if err = s.revoked.Revoke(ctx, caller.TokenID, accessTTL); err != nil {
		log.Error().Err(err).Msg("failed to revoke access token")

		return failure.Store(err)
	}

	if req.RefreshToken == constant.Empty {
		return nil
	}

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil || claims.UserID != caller.UserID {
		log.Warn().Err(err).Msg("ignoring refresh token on sign out")

		return nil
	}

	if err = s.revoked.Revoke(ctx, claims.TokenID, claims.RemainingSeconds()); err != nil {
		log.Error().Err(err).Msg("failed to revoke refresh token")

		return failure.Store(err)
	}

	return nil
}

// Refresh rotates the token pair. A refresh token can be used once.
func (s *serviceImpl) Refresh(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Refresh")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	tokenPair, claims, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized(MessageSessionExpired)
	}

	claimed, err := s.revoked.Claim(ctx, claims.TokenID, claims.RemainingSeconds())
	if err != nil {
		log.Error().Err(err).Msg("failed to retire refresh token")

		return res, failure.Store(err)
	}

	if !claimed {
		return res, failure.Unauthorized(MessageSessionExpired)
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) Session(ctx context.Context) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Session")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return res, failure.Unauthorized(constant.MessageSignInRequired)
	}

	profile, err := s.profileRepo.Get(ctx, shared.FilterByID(caller.UserID, profileModel.FieldUserID, profileModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, failure.Store(err)
	}

	res.FromProfile(caller, profile)

	return res, nil
}
