package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coating/infras/otel/mocks"
	"coating/internal/domains/booking/model"
	"coating/internal/domains/booking/model/dto"
	serviceMocks "coating/internal/domains/booking/service/mocks"
	"coating/internal/domains/submission"
	"coating/internal/handlers/booking"
	"coating/shared/constant"
	"coating/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func passthrough(next http.Handler) http.Handler {
	return next
}

func newRouter(t *testing.T) (*serviceMocks.MockBooking, chi.Router) {
	t.Helper()

	svc := serviceMocks.NewMockBooking(gomock.NewController(t))
	handler := booking.New(svc, passthrough, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	return body
}

const validBody = `{"name":"Nguyễn Văn A","phone":"0901234567","service":"Gia công sơn tĩnh điện","time":"08:00-09:00"}`

func TestHandler_CreateBooking(t *testing.T) {
	t.Run("returns the code in the success notice", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().
			Submit(gomock.Any(), "form-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req dto.CreateBookingRequest) (dto.SubmitResponse, error) {
				assert.Equal(t, "Nguyễn Văn A", req.Name)

				return dto.SubmitResponse{Code: "BK12AB34"}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(validBody))
		req.Header.Set(constant.RequestHeaderFormInstance, "form-1")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, dto.SubmitTitle, body["title"])
		assert.Contains(t, body["description"], "BK12AB34")
		assert.Equal(t, "BK12AB34", body["data"].(map[string]any)["code"])
	})

	t.Run("rejects an incomplete form before the service", func(t *testing.T) {
		_, router := newRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"name":"A","service":"Gia công sơn tĩnh điện"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "phone", body["field"])
		assert.Equal(t, "Vui lòng nhập số điện thoại", body["error"])
	})

	t.Run("malformed json", func(t *testing.T) {
		_, router := newRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate submit of the same form", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Submit(gomock.Any(), "form-1", gomock.Any()).Return(dto.SubmitResponse{}, submission.ErrInFlight)

		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(validBody))
		req.Header.Set(constant.RequestHeaderFormInstance, "form-1")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, constant.MessageSubmissionInFlight, decode(t, rec)["error"])
	})
}

func TestHandler_GetOptions(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Options(gomock.Any()).Return(dto.OptionsResponse{Services: model.Services, TimeSlots: model.TimeSlots})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/options", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	data := decode(t, rec)["data"].(map[string]any)
	assert.Len(t, data["services"], len(model.Services))
	assert.Len(t, data["time_slots"], len(model.TimeSlots))
}

func TestHandler_GetBookingByCode(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().GetByCode(gomock.Any(), "BK12AB34").Return(dto.BookingResponse{Code: "BK12AB34"}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/BK12AB34", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().GetByCode(gomock.Any(), "BK12AB34").Return(dto.BookingResponse{}, failure.RecordAccessDenied)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bookings/BK12AB34", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, constant.MessageRecordAccessDenied, decode(t, rec)["error"])
	})
}
