package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"coating/infras/otel"
	"coating/internal/domains/profile/model"
	"coating/internal/domains/profile/model/dto"
	"coating/internal/domains/profile/repository"
	"coating/shared"
	"coating/shared/constant"
	"coating/shared/failure"
	"coating/shared/identity"
	gRepo "coating/shared/repository"
	"coating/shared/validator"

	"github.com/rs/zerolog/log"
)

type Profile interface {
	RoleCheck(ctx context.Context) (bool, error)
	Get(ctx context.Context) (dto.ProfileResponse, error)
	Update(ctx context.Context, req dto.UpdateProfileRequest) (dto.ProfileResponse, error)
}

type serviceImpl struct {
	repo repository.Profile
	otel otel.Otel
}

func New(repo repository.Profile, otel otel.Otel) Profile {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) load(ctx context.Context, userID string) (model.Profile, error) {
	profile, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldUserID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to get profile")

		return profile, failure.Store(fmt.Errorf("failed to get profile: %w", err))
	}

	return profile, nil
}

// RoleCheck reports whether the caller's profile carries the admin role.
// Anonymous callers are never admins and cost no lookup.
func (s *serviceImpl) RoleCheck(ctx context.Context) (isAdmin bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".profile.RoleCheck")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return false, nil
	}

	profile, err := s.load(ctx, caller.UserID)
	if err != nil {
		return false, err
	}

	return profile.IsAdmin(), nil
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".profile.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return res, failure.Unauthorized(constant.MessageSignInRequired)
	}

	profile, err := s.load(ctx, caller.UserID)
	if err != nil {
		return res, err
	}

	if profile.ID == constant.Empty {
		return res, failure.NotFound(model.MessageNotFound)
	}

	res.FromModel(profile)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateProfileRequest) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".profile.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return res, failure.Unauthorized(constant.MessageSignInRequired)
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	filter := shared.FilterByID(caller.UserID, model.FieldUserID, model.TableName)

	err = s.repo.Update(ctx, shared.TransformFields(req, caller.Actor()), filter)
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return res, failure.NotFound(model.MessageNotFound)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return res, failure.Store(err)
	}

	return s.Get(ctx)
}
