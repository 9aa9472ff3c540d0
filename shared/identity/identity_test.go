package identity_test

import (
	"context"
	"errors"
	"testing"

	"coating/shared/constant"
	"coating/shared/identity"

	"github.com/stretchr/testify/assert"
)

type record struct {
	owner *string
}

func (r record) Owner() *string {
	return r.owner
}

func strPtr(s string) *string {
	return &s
}

func TestCanAccess(t *testing.T) {
	owner := identity.Identity{UserID: "u-1", Role: constant.RoleUser}
	stranger := identity.Identity{UserID: "u-2", Role: constant.RoleUser}
	admin := identity.Identity{UserID: "a-1", Role: constant.RoleAdmin}

	tests := []struct {
		name   string
		record identity.Owned
		id     identity.Identity
		want   bool
	}{
		{"owner reads own record", record{owner: strPtr("u-1")}, owner, true},
		{"stranger is rejected", record{owner: strPtr("u-1")}, stranger, false},
		{"admin reads any record", record{owner: strPtr("u-1")}, admin, true},
		{"admin reads anonymous record", record{}, admin, true},
		{"user cannot claim anonymous record", record{}, owner, false},
		{"anonymous identity is rejected", record{owner: strPtr("u-1")}, identity.Identity{}, false},
		{"nil record is rejected", nil, admin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, identity.CanAccess(tt.record, tt.id))
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := identity.FromContext(context.Background())
	assert.False(t, ok)

	want := identity.Identity{UserID: "u-1", Email: "a@b.vn", Role: constant.RoleUser, TokenID: "t-1"}
	got, ok := identity.FromContext(identity.WithContext(context.Background(), want))

	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestAnonymousHelpers(t *testing.T) {
	anon := identity.Identity{}

	assert.False(t, anon.IsAuthenticated())
	assert.False(t, anon.IsAdmin())
	assert.Nil(t, anon.OwnerRef())
	assert.Equal(t, constant.ContextGuest, anon.Actor())

	user := identity.Identity{UserID: "u-9", Role: constant.RoleAdmin}
	assert.True(t, user.IsAdmin())
	assert.Equal(t, "u-9", *user.OwnerRef())
	assert.Equal(t, "u-9", user.Actor())
}

type roleCheck func(ctx context.Context) (bool, error)

func (f roleCheck) RoleCheck(ctx context.Context) (bool, error) {
	return f(ctx)
}

func TestWithStoredRole(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		isAdmin  bool
		err      error
		wantRole string
	}{
		{name: "demoted admin", token: constant.RoleAdmin, isAdmin: false, wantRole: constant.RoleUser},
		{name: "promoted user", token: constant.RoleUser, isAdmin: true, wantRole: constant.RoleAdmin},
		{name: "lookup failure keeps the token role", token: constant.RoleAdmin, err: errors.New("timeout"), wantRole: constant.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := identity.Identity{UserID: "u-1", Role: tt.token}

			got, err := identity.WithStoredRole(context.Background(), caller, roleCheck(func(context.Context) (bool, error) {
				return tt.isAdmin, tt.err
			}))

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantRole, got.Role)
			assert.Equal(t, "u-1", got.UserID)
		})
	}
}

func TestOwns(t *testing.T) {
	admin := identity.Identity{UserID: "a-1", Role: constant.RoleAdmin}

	assert.True(t, identity.Owns(record{owner: strPtr("a-1")}, admin))
	assert.False(t, identity.Owns(record{owner: strPtr("u-1")}, admin))
	assert.False(t, identity.Owns(record{}, admin))
	assert.False(t, identity.Owns(record{owner: strPtr("u-1")}, identity.Identity{}))
}
