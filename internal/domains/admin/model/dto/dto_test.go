package dto_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coating/internal/domains/admin/model/dto"
	"coating/shared/constant"
)

func TestListRequest_FromRequest(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantLimit   int
		wantPage    int
		wantSortBy  string
		wantStatus  []string
		wantReplied *bool
	}{
		{
			name:       "every record newest first by default",
			target:     "/v1/admin/bookings",
			wantSortBy: constant.DefaultValueSortBy,
			wantStatus: []string{},
		},
		{
			name:       "zero limit also means every record",
			target:     "/v1/admin/bookings?limit=0&page=3",
			wantPage:   3,
			wantSortBy: constant.DefaultValueSortBy,
			wantStatus: []string{},
		},
		{
			name:       "paged and sorted",
			target:     "/v1/admin/bookings?limit=20&page=2&sort_by=status&sort_dir=asc",
			wantLimit:  20,
			wantPage:   2,
			wantSortBy: "status",
			wantStatus: []string{},
		},
		{
			name:       "comma separated statuses",
			target:     "/v1/admin/bookings?status=Pending,%20confirmed,,pending",
			wantSortBy: constant.DefaultValueSortBy,
			wantStatus: []string{"pending", "confirmed"},
		},
		{
			name:        "unreplied contacts",
			target:      "/v1/admin/contacts?replied=false",
			wantSortBy:  constant.DefaultValueSortBy,
			wantStatus:  []string{},
			wantReplied: new(bool),
		},
		{
			name:       "unparsable replied flag is ignored",
			target:     "/v1/admin/contacts?replied=maybe",
			wantSortBy: constant.DefaultValueSortBy,
			wantStatus: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.ListRequest{}
			req.FromRequest(httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantLimit, req.Limit)
			assert.Equal(t, tt.wantPage, req.Page)
			assert.Equal(t, tt.wantSortBy, req.SortBy)
			assert.Equal(t, tt.wantStatus, req.Statuses())

			if tt.wantReplied == nil {
				assert.Nil(t, req.Replied)

				return
			}

			require.NotNil(t, req.Replied)
			assert.Equal(t, *tt.wantReplied, *req.Replied)
		})
	}
}
