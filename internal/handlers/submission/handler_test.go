package submission_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"coating/infras/otel/mocks"
	"coating/internal/domains/submission"
	submissionMocks "coating/internal/domains/submission/mocks"
	handler "coating/internal/handlers/submission"
	"coating/shared/constant"
	"coating/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*submissionMocks.MockTracker, chi.Router) {
	t.Helper()

	tracker := submissionMocks.NewMockTracker(gomock.NewController(t))
	h := handler.New(tracker, mocks.NewOtel())

	router := chi.NewRouter()
	h.Router(router)

	return tracker, router
}

func get(router chi.Router, path, instance string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if instance != "" {
		req.Header.Set(constant.RequestHeaderFormInstance, instance)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestHandler_GetState(t *testing.T) {
	t.Run("reports the outcome of the last submit", func(t *testing.T) {
		tracker, router := newRouter(t)

		tracker.EXPECT().
			State(gomock.Any(), submission.FormBooking, "form-1").
			Return(submission.Status{Form: submission.FormBooking, State: submission.Succeeded, Reference: "BK12AB34"}, nil)

		rec := get(router, "/submissions/booking", "form-1")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data submission.Status `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, submission.Succeeded, body.Data.State)
		assert.Equal(t, "BK12AB34", body.Data.Reference)
	})

	t.Run("unknown form", func(t *testing.T) {
		_, router := newRouter(t)

		rec := get(router, "/submissions/newsletter", "form-1")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		tracker, router := newRouter(t)

		tracker.EXPECT().
			State(gomock.Any(), submission.FormContact, "form-2").
			Return(submission.Status{}, failure.Store(errors.New("redis down")))

		rec := get(router, "/submissions/contact", "form-2")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
