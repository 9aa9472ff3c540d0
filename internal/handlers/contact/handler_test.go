package contact_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coating/infras/otel/mocks"
	"coating/internal/domains/contact/model/dto"
	serviceMocks "coating/internal/domains/contact/service/mocks"
	"coating/internal/handlers/contact"
	"coating/shared/constant"
	"coating/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T, rateLimit func(http.Handler) http.Handler) (*serviceMocks.MockContact, chi.Router) {
	t.Helper()

	svc := serviceMocks.NewMockContact(gomock.NewController(t))
	handler := contact.New(svc, rateLimit, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func passthrough(next http.Handler) http.Handler {
	return next
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	return body
}

func TestHandler_CreateContact(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(svc *serviceMocks.MockContact)
		wantStatus int
		wantField  string
		wantError  string
	}{
		{
			name: "stored",
			body: `{"name":" Trần Thị B ","email":"B@Example.com","message":"Báo giá sơn cửa sắt"}`,
			setup: func(svc *serviceMocks.MockContact) {
				svc.EXPECT().
					Submit(gomock.Any(), "form-2", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, req dto.CreateContactRequest) (dto.SubmitResponse, error) {
						assert.Equal(t, "Trần Thị B", req.Name)
						assert.Equal(t, "b@example.com", req.Email)

						return dto.SubmitResponse{ID: "c-1"}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing email",
			body:       `{"name":"B","message":"hi"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "email",
			wantError:  "Email không hợp lệ",
		},
		{
			name:       "missing message",
			body:       `{"name":"B","email":"b@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "message",
			wantError:  "Vui lòng nhập nội dung",
		},
		{
			name: "store failure",
			body: `{"name":"B","email":"b@example.com","message":"hi"}`,
			setup: func(svc *serviceMocks.MockContact) {
				svc.EXPECT().Submit(gomock.Any(), "form-2", gomock.Any()).Return(dto.SubmitResponse{}, failure.Store(assert.AnError))
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  constant.MessageStoreFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t, passthrough)
			if tt.setup != nil {
				tt.setup(svc)
			}

			req := httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(tt.body))
			req.Header.Set(constant.RequestHeaderFormInstance, "form-2")

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)

			body := decode(t, rec)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, dto.SubmitTitle, body["title"])
				assert.Equal(t, dto.SubmitDescription, body["description"])

				return
			}

			assert.Equal(t, tt.wantError, body["error"])
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, body["field"])
			}
		})
	}
}

func TestHandler_CreateContact_RateLimited(t *testing.T) {
	blocked := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}

	_, router := newRouter(t, blocked)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contacts", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
