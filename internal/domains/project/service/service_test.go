package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"coating/config"
	"coating/infras/otel/mocks"
	s3Mocks "coating/infras/s3/mocks"
	profileMocks "coating/internal/domains/profile/service/mocks"
	projectMocks "coating/internal/domains/project/mocks"
	"coating/internal/domains/project/model"
	"coating/internal/domains/project/model/dto"
	"coating/internal/domains/project/service"
	cacheMocks "coating/shared/cache/mocks"
	"coating/shared/constant"
	gDto "coating/shared/dto"
	"coating/shared/failure"
)

const projectID = "5d4f1d8e-7c1a-4a57-9a3b-2f0e8f6b9c11"

type fixture struct {
	repo     *projectMocks.MockProject
	profiles *profileMocks.MockProfile
	cache    *cacheMocks.MockRedisCache
	s3       *s3Mocks.MockS3
	svc      service.Project
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 300

	f := fixture{
		repo:     projectMocks.NewMockProject(ctrl),
		profiles: profileMocks.NewMockProfile(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}
	f.svc = service.New(f.repo, f.profiles, cfg, f.cache, f.s3, mocks.NewOtel())

	return f
}

func (f fixture) cacheMiss(t *testing.T, key string) <-chan struct{} {
	t.Helper()

	saved := make(chan struct{}, 1)

	f.cache.EXPECT().Get(gomock.Any(), key, gomock.Any()).Return(errors.New("redis: nil"))
	f.cache.EXPECT().
		Save(gomock.Any(), key, gomock.Any(), 300).
		DoAndReturn(func(context.Context, string, any, int) error {
			saved <- struct{}{}

			return nil
		})

	return saved
}

func waitSaved(t *testing.T, saved <-chan struct{}) {
	t.Helper()

	select {
	case <-saved:
	case <-time.After(time.Second):
		t.Fatal("value was not cached")
	}
}

func TestProjectService_List(t *testing.T) {
	t.Run("all categories featured first", func(t *testing.T) {
		f := newFixture(t)
		saved := f.cacheMiss(t, "projects:list:all")

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Project, error) {
				assert.Equal(t, []gDto.Order{
					{Column: model.FieldFeatured, Dir: gDto.SortDirDesc},
					{Column: model.FieldCreatedAt, Dir: gDto.SortDirDesc},
				}, params.OrderTerms())

				_, args := filter.GetWhereClause()
				assert.Equal(t, true, args[model.FieldActive])
				assert.NotContains(t, args, model.FieldCategory)

				return []model.Project{
					{ID: "p-1", Title: "Dây chuyền sơn", Category: model.CategoryIndustrial, Featured: true, Active: true},
					{ID: "p-2", Title: "Cầu cảng", Category: model.CategoryMarine, Active: true},
				}, nil
			})

		res, err := f.svc.List(context.Background(), "")

		require.NoError(t, err)
		require.Len(t, res.Projects, 2)
		assert.Equal(t, "Công nghiệp", res.Projects[0].CategoryLabel)
		assert.Equal(t, []string{}, res.Projects[0].Tags)
		assert.Len(t, res.Categories, len(model.Categories))
		waitSaved(t, saved)
	})

	t.Run("single category", func(t *testing.T) {
		f := newFixture(t)
		saved := f.cacheMiss(t, "projects:list:marine")

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Project, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "marine", args[model.FieldCategory])

				return nil, nil
			})

		res, err := f.svc.List(context.Background(), " Marine ")

		require.NoError(t, err)
		assert.Empty(t, res.Projects)
		waitSaved(t, saved)
	})

	t.Run("served from cache", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "projects:list:all", gomock.Any()).Return(nil)

		_, err := f.svc.List(context.Background(), model.CategoryAll)

		assert.NoError(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.List(context.Background(), "aerospace")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, constant.RequestParamCategory, failure.GetField(err))
	})

	t.Run("store error", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		_, err := f.svc.List(context.Background(), "")

		assert.Equal(t, constant.MessageStoreFailure, failure.GetMessage(err))
	})
}

func TestProjectService_Get(t *testing.T) {
	completed := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		saved := f.cacheMiss(t, "projects:get:"+projectID)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Project{
			ID:             projectID,
			Category:       model.CategoryResidential,
			CompletionDate: &completed,
			Tags:           []string{"sơn tĩnh điện"},
			Active:         true,
		}, nil)

		res, err := f.svc.Get(context.Background(), projectID)

		require.NoError(t, err)
		require.NotNil(t, res.CompletionDate)
		assert.Equal(t, "2024-03-15", *res.CompletionDate)
		assert.Equal(t, "Dân dụng", res.CategoryLabel)
		assert.Equal(t, []string{"sơn tĩnh điện"}, res.Tags)
		waitSaved(t, saved)
	})

	tests := []struct {
		name      string
		id        string
		setupMock func(f fixture)
	}{
		{
			name:      "malformed id",
			id:        "not-a-uuid",
			setupMock: func(fixture) {},
		},
		{
			name: "missing project",
			id:   projectID,
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Project{}, nil)
			},
		},
		{
			name: "inactive project",
			id:   projectID,
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Project{ID: projectID}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Get(context.Background(), tt.id)

			assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
			assert.Equal(t, model.MessageNotFound, failure.GetMessage(err))
		})
	}
}

func imageHeader(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "Nha-May.PNG",
		Size:     size,
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: {contentType}},
	}
}

func TestProjectService_UploadImage(t *testing.T) {
	t.Run("uploads under the projects directory", func(t *testing.T) {
		f := newFixture(t)

		f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(true, nil)
		f.s3.EXPECT().
			UploadFile(gomock.Any(), model.TableName, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, error) {
				assert.True(t, strings.HasSuffix(fileName, ".png"))

				return "https://cdn.example.vn/projects/" + fileName, nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), "projects:*").Return(nil)

		res, err := f.svc.UploadImage(context.Background(), nil, imageHeader("image/png", 1024))

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.URL, "https://cdn.example.vn/projects/"))
	})

	t.Run("stale cache does not fail the upload", func(t *testing.T) {
		f := newFixture(t)

		f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(true, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.example.vn/projects/b.png", nil)
		f.cache.EXPECT().Clear(gomock.Any(), "projects:*").Return(errors.New("redis down"))

		res, err := f.svc.UploadImage(context.Background(), nil, imageHeader("image/png", 1024))

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.vn/projects/b.png", res.URL)
	})

	t.Run("non admin", func(t *testing.T) {
		f := newFixture(t)

		f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(false, nil)

		_, err := f.svc.UploadImage(context.Background(), nil, imageHeader("image/png", 1024))

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("unsupported type", func(t *testing.T) {
		f := newFixture(t)

		f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(true, nil)

		_, err := f.svc.UploadImage(context.Background(), nil, imageHeader("application/pdf", 1024))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, constant.FormFile, failure.GetField(err))
	})

	t.Run("too large", func(t *testing.T) {
		f := newFixture(t)

		f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(true, nil)

		_, err := f.svc.UploadImage(context.Background(), nil, imageHeader("image/jpeg", (dto.MaxImageSizeMB+1)*1024*1024))

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)

		f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(true, nil)
		f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("access denied"))

		_, err := f.svc.UploadImage(context.Background(), nil, imageHeader("image/webp", 1024))

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestProjectService_DeleteImage(t *testing.T) {
	const url = "https://cdn.example.vn/projects/a.png"

	tests := []struct {
		name      string
		isAdmin   bool
		url       string
		setupMock func(f fixture)
		wantCode  int
		wantField string
	}{
		{
			name:    "deleted",
			isAdmin: true,
			url:     "  " + url + " ",
			setupMock: func(f fixture) {
				f.s3.EXPECT().GetObjectKeyFromURL(url).Return("projects/a.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), url).Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), "projects:*").Return(nil)
			},
		},
		{
			name:      "non admin",
			url:       url,
			setupMock: func(fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:      "not a url",
			isAdmin:   true,
			url:       "projects/a.png",
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
			wantField: "url",
		},
		{
			name:    "outside the projects directory",
			isAdmin: true,
			url:     "https://cdn.example.vn/avatars/a.png",
			setupMock: func(f fixture) {
				f.s3.EXPECT().GetObjectKeyFromURL(gomock.Any()).Return("avatars/a.png")
			},
			wantCode:  http.StatusBadRequest,
			wantField: "url",
		},
		{
			name:    "foreign bucket",
			isAdmin: true,
			url:     "https://elsewhere.example.com/projects/a.png",
			setupMock: func(f fixture) {
				f.s3.EXPECT().GetObjectKeyFromURL(gomock.Any()).Return("")
			},
			wantCode:  http.StatusBadRequest,
			wantField: "url",
		},
		{
			name:    "storage failure",
			isAdmin: true,
			url:     url,
			setupMock: func(f fixture) {
				f.s3.EXPECT().GetObjectKeyFromURL(url).Return("projects/a.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), url).Return(errors.New("access denied"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.profiles.EXPECT().RoleCheck(gomock.Any()).Return(tt.isAdmin, nil)
			tt.setupMock(f)

			err := f.svc.DeleteImage(context.Background(), dto.DeleteImageRequest{URL: tt.url})

			if tt.wantCode == 0 {
				require.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Equal(t, tt.wantField, failure.GetField(err))
		})
	}
}
