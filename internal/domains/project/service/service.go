package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"coating/config"
	"coating/infras/otel"
	"coating/infras/s3"
	profileService "coating/internal/domains/profile/service"
	"coating/internal/domains/project/model"
	"coating/internal/domains/project/model/dto"
	"coating/internal/domains/project/repository"
	"coating/shared"
	"coating/shared/cache"
	"coating/shared/constant"
	gDto "coating/shared/dto"
	"coating/shared/failure"
	"coating/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheListProjects = "projects:list"
	cacheGetProject   = "projects:get"
	cacheAllProjects  = "projects:*"
)

type Project interface {
	List(ctx context.Context, category string) (dto.GetProjectsResponse, error)
	Get(ctx context.Context, id string) (dto.ProjectResponse, error)
	UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (dto.UploadImageResponse, error)
	DeleteImage(ctx context.Context, req dto.DeleteImageRequest) error
}

type serviceImpl struct {
	repo     repository.Project
	profiles profileService.Profile
	cfg      *config.Config
	cache    cache.RedisCache
	s3       s3.S3
	otel     otel.Otel
}

func New(repo repository.Project, profiles profileService.Profile, cfg *config.Config, cache cache.RedisCache, s3 s3.S3, otel otel.Otel) Project {
	return &serviceImpl{
		repo:     repo,
		profiles: profiles,
		cfg:      cfg,
		cache:    cache,
		s3:       s3,
		otel:     otel,
	}
}

// List returns active projects, featured first and then newest first.
// An empty category or "all" lists every category.
func (s *serviceImpl) List(ctx context.Context, category string) (res dto.GetProjectsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	category = strings.ToLower(strings.TrimSpace(category))
	if category == constant.Empty {
		category = model.CategoryAll
	}

	if category != model.CategoryAll && !model.Category(category).Known() {
		return res, failure.Validation(constant.RequestParamCategory, "Danh mục không hợp lệ")
	}

	cacheKey := shared.BuildCacheKey(cacheListProjects, category)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for projects")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	if category != model.CategoryAll {
		filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldCategory, Value: category, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	params := gDto.QueryParams{
		Orders: []gDto.Order{
			{Column: model.FieldFeatured, Dir: gDto.SortDirDesc},
			{Column: model.FieldCreatedAt, Dir: gDto.SortDirDesc},
		},
	}

	projects, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get projects")

		return res, failure.Store(err)
	}

	res.FromModels(projects)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProjectResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return res, failure.NotFound(model.MessageNotFound)
	}

	cacheKey := shared.BuildCacheKey(cacheGetProject, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for project")

		return res, nil
	}

	project, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get project")

		return res, failure.Store(fmt.Errorf("failed to get project: %w", err))
	}

	if project.ID == constant.Empty || !project.Active {
		return res, failure.NotFound(model.MessageNotFound)
	}

	res.FromModel(project)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// UploadImage stores a project image and returns its public URL. Admins only.
func (s *serviceImpl) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	isAdmin, err := s.profiles.RoleCheck(ctx)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if !isAdmin {
		return res, failure.AdminAccessDenied
	}

	if err = validator.ValidateFile(constant.FormFile, header, dto.AllowedImageTypes, dto.MaxImageSizeMB); err != nil {
		return res, err //nolint:wrapcheck
	}

	fileName := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))

	url, err := s.s3.UploadFile(ctx, model.TableName, file, header, fileName)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("failed to upload project image")

		return res, failure.InternalError(fmt.Errorf("failed to upload image: %w", err))
	}

	res.URL = url

	s.invalidate(ctx)

	return res, nil
}

// DeleteImage removes an uploaded project image from the bucket. Admins only.
func (s *serviceImpl) DeleteImage(ctx context.Context, req dto.DeleteImageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".project.DeleteImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	isAdmin, err := s.profiles.RoleCheck(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !isAdmin {
		return failure.AdminAccessDenied
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	if !strings.HasPrefix(s.s3.GetObjectKeyFromURL(req.URL), model.TableName+"/") {
		return failure.Validation("url", dto.MessageInvalidImageURL)
	}

	if err = s.s3.DeleteFile(ctx, req.URL); err != nil {
		log.Error().Err(err).Str("url", req.URL).Msg("failed to delete project image")

		return failure.InternalError(fmt.Errorf("failed to delete image: %w", err))
	}

	s.invalidate(ctx)

	return nil
}

// invalidate drops every cached project response after the image set changes.
// A failure only leaves stale entries until their TTL runs out.
func (s *serviceImpl) invalidate(ctx context.Context) {
	if err := s.cache.Clear(ctx, cacheAllProjects); err != nil {
		log.Warn().Err(err).Msg("failed to clear project cache")
	}
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("cacheKey", key).Msg("failed to cache projects")
		}
	}()
}
