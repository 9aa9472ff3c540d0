// Package identity carries the authenticated caller through a request.
//
// An Identity is created by the auth middleware from a validated access token,
// replaced when tokens are refreshed and discarded once the token is revoked on sign-out.
// Anonymous callers have the zero Identity.
package identity

import (
	"context"

	"coating/shared/constant"
)

type contextKey struct{}

type Identity struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	TokenID string `json:"-"`
}

// Owned is implemented by records that may belong to an identity.
type Owned interface {
	Owner() *string
}

// RoleChecker reports whether the caller's stored profile carries the admin role.
type RoleChecker interface {
	RoleCheck(ctx context.Context) (bool, error)
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID != constant.Empty
}

func (i Identity) IsAdmin() bool {
	return i.IsAuthenticated() && i.Role == constant.RoleAdmin
}

// Actor is the value written into created_by / modified_by columns.
func (i Identity) Actor() string {
	if !i.IsAuthenticated() {
		return constant.ContextGuest
	}

	return i.UserID
}

// OwnerRef returns the user id as a nullable owner column value.
func (i Identity) OwnerRef() *string {
	if !i.IsAuthenticated() {
		return nil
	}

	id := i.UserID

	return &id
}

func WithContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity stored in ctx and whether one was present.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)

	return id, ok && id.IsAuthenticated()
}

// WithStoredRole replaces the role claim copied into the token with the role
// currently stored on the caller's profile.
func WithStoredRole(ctx context.Context, id Identity, roles RoleChecker) (Identity, error) {
	isAdmin, err := roles.RoleCheck(ctx)
	if err != nil {
		return id, err //nolint:wrapcheck
	}

	id.Role = constant.RoleUser
	if isAdmin {
		id.Role = constant.RoleAdmin
	}

	return id, nil
}

// Owns reports whether record belongs to id.
func Owns(record Owned, id Identity) bool {
	if record == nil || !id.IsAuthenticated() {
		return false
	}

	owner := record.Owner()

	return owner != nil && *owner == id.UserID
}

// CanAccess reports whether id may read or mutate record.
// Admins can access every record, everyone else only records they own.
func CanAccess(record Owned, id Identity) bool {
	if record == nil || !id.IsAuthenticated() {
		return false
	}

	return id.IsAdmin() || Owns(record, id)
}
