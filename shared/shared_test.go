package shared_test

import (
	"testing"
	"time"

	"coating/shared"
	"coating/shared/constant"
	"coating/shared/dto"
	"coating/shared/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(100, 0))
	assert.Equal(t, 10, shared.CalculateTotalPage(100, 10))
	assert.Equal(t, 11, shared.CalculateTotalPage(101, 10))
}

func TestTransformFields(t *testing.T) {
	type statusPatch struct {
		Status  string  `db:"status"`
		Reply   *string `db:"admin_reply"`
		Ignored string
	}

	reply := "Đã liên hệ lại"
	result := shared.TransformFields(statusPatch{Status: "confirmed", Reply: &reply, Ignored: "x"}, "admin-1")

	assert.Equal(t, "confirmed", result["status"])
	assert.Equal(t, &reply, result["admin_reply"])
	assert.Equal(t, "admin-1", result[constant.FieldModifiedBy])
	assert.IsType(t, time.Time{}, result[constant.FieldModifiedAt])
	assert.Len(t, result, 4)

	empty := shared.TransformFields(statusPatch{}, "admin-1")
	assert.Len(t, empty, 2)
}

func TestFilterByID(t *testing.T) {
	filter := shared.FilterByID("b-1", "id", "bookings")

	where, args := filter.GetWhereClause()
	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b-1"}, args)
}

func TestFilterByOwner(t *testing.T) {
	filter := shared.FilterByOwner("user_id", "contacts", identity.Identity{UserID: "u-1"})

	where, args := filter.GetWhereClause()
	assert.Equal(t, "(contacts.user_id = :user_id)", where)
	assert.Equal(t, "u-1", args["user_id"])
}

func TestFilterByIDForCaller(t *testing.T) {
	t.Run("owner scoped for regular users", func(t *testing.T) {
		filter := shared.FilterByIDForCaller("b-1", "id", "user_id", "bookings", identity.Identity{UserID: "u-1", Role: constant.RoleUser})

		require.Len(t, filter.Filters, 2)

		where, args := filter.GetWhereClause()
		assert.Equal(t, "(bookings.id = :id AND bookings.user_id = :user_id)", where)
		assert.Equal(t, map[string]any{"id": "b-1", "user_id": "u-1"}, args)
	})

	t.Run("unscoped for admins", func(t *testing.T) {
		filter := shared.FilterByIDForCaller("b-1", "id", "user_id", "bookings", identity.Identity{UserID: "a-1", Role: constant.RoleAdmin})

		assert.Equal(t, shared.FilterByID("b-1", "id", "bookings"), filter)

		f, ok := filter.Filters[0].(dto.Filter)
		require.True(t, ok)
		assert.Equal(t, dto.FilterOperatorEq, f.Operator)
	})
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "limiter:1.2.3.4:curl", shared.BuildCacheKey("limiter", "1.2.3.4", "curl"))
	assert.Equal(t, "revoked", shared.BuildCacheKey("revoked"))
}
