package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coating/shared/constant"
	"coating/shared/failure"
	"coating/transport/http/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestWithError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantTitle string
		wantMsg   string
		wantField any
	}{
		{
			name:      "validation failure keeps field",
			err:       failure.Validation("phone", "Vui lòng nhập số điện thoại"),
			wantCode:  http.StatusBadRequest,
			wantTitle: constant.MessageInvalidInputTitle,
			wantMsg:   "Vui lòng nhập số điện thoại",
			wantField: "phone",
		},
		{
			name:      "authorization failure",
			err:       failure.AdminAccessDenied,
			wantCode:  http.StatusForbidden,
			wantTitle: constant.MessageGenericErrorTitle,
			wantMsg:   constant.MessageAdminAccessDenied,
		},
		{
			name:      "internal error is hidden",
			err:       errors.New("pq: relation bookings does not exist"),
			wantCode:  http.StatusInternalServerError,
			wantTitle: constant.MessageGenericErrorTitle,
			wantMsg:   constant.MessageStoreFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))

			body := decode(t, rec)
			assert.Equal(t, tt.wantTitle, body["title"])
			assert.Equal(t, tt.wantMsg, body["error"])
			assert.Equal(t, tt.wantField, body["field"])
		})
	}
}

func TestWithNotice(t *testing.T) {
	type code struct {
		Code string `json:"code"`
	}

	rec := httptest.NewRecorder()
	response.WithNotice(rec, http.StatusCreated, "Đặt lịch thành công!", "Mã đặt lịch: BK12AB34.", &code{Code: "BK12AB34"})

	assert.Equal(t, http.StatusCreated, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Đặt lịch thành công!", body["title"])
	assert.Equal(t, map[string]any{"code": "BK12AB34"}, body["data"])
}

func TestWithJSONAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	response.WithJSON(rec, http.StatusOK, map[string]int{"total": 2})
	assert.JSONEq(t, `{"data":{"total":2}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	response.WithRequestLimitExceeded(rec)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"REQUEST LIMIT EXCEEDED"}`, rec.Body.String())
}
