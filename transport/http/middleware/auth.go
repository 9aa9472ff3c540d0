package middleware

import (
	"context"
	"errors"
	"net/http"

	"coating/config"
	"coating/infras/jwt"
	"coating/infras/otel"
	"coating/internal/domains/auth/revocation"
	"coating/permissions"
	"coating/shared/constant"
	"coating/shared/failure"
	"coating/shared/identity"
	"coating/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

const (
	MessageTokenExpired  = "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại"
	MessageInvalidToken  = "Phiên đăng nhập không hợp lệ"
	MessageTokenRevoked  = "Phiên đăng nhập đã kết thúc"
	MessageInvalidHeader = "Định dạng xác thực không hợp lệ"
)

var errRevoked = errors.New("token revoked")

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	revoked    revocation.Store
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, revoked revocation.Store, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		revoked:    revoked,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func (m *authRoleImpl) findPermission(request *http.Request) (permissions.Permission, string) {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || m.permission == nil {
		return permissions.Permission{}, constant.Empty
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	return m.permission.FindPermissions(path, request.Method), path
}

// Auth puts the caller's identity into the request context.
// On public endpoints a missing or unusable token leaves the caller anonymous.
// Unknown paths pass through so the router can answer 404.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		permission, path := m.findPermission(request)
		optional := path == constant.Empty || permission.Skip || (m.permission != nil && m.permission.Skip)

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
			"auth.optional":   optional,
		})

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == constant.Empty {
			scope.End()

			if optional {
				next.ServeHTTP(writer, request)

				return
			}

			response.WithError(writer, failure.Unauthorized(constant.MessageSignInRequired))

			return
		}

		caller, err := m.identify(ctx, authHeader)
		if err != nil {
			scope.End()

			if optional {
				log.Debug().Err(err).Str("path", path).Msg("ignoring unusable token on public endpoint")
				next.ServeHTTP(writer, request)

				return
			}

			scope.TraceError(err)
			response.WithError(writer, unauthorized(err))

			return
		}

		scope.End()

		next.ServeHTTP(writer, request.WithContext(identity.WithContext(request.Context(), caller)))
	})
}

func (m *authRoleImpl) identify(ctx context.Context, authHeader string) (identity.Identity, error) {
	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return identity.Identity{}, err //nolint:wrapcheck
	}

	claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
	if err != nil {
		return identity.Identity{}, err //nolint:wrapcheck
	}

	if claims.UserID == constant.Empty {
		return identity.Identity{}, jwt.ErrInvalidClaim
	}

	revoked, err := m.revoked.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check token revocation")

		return identity.Identity{}, err //nolint:wrapcheck
	}

	if revoked {
		return identity.Identity{}, errRevoked
	}

	return claims.Identity(), nil
}

func unauthorized(err error) error {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return failure.Unauthorized(MessageTokenExpired)
	case errors.Is(err, errRevoked):
		return failure.Unauthorized(MessageTokenRevoked)
	case errors.Is(err, jwt.ErrMissingHeader), errors.Is(err, jwt.ErrInvalidHeader):
		return failure.Unauthorized(MessageInvalidHeader)
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrInvalidClaim):
		return failure.Unauthorized(MessageInvalidToken)
	default:
		return failure.Store(err)
	}
}

// RBAC checks the caller's role against the roles declared for the endpoint.
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		permission, path := m.findPermission(request)
		if m.permission.Skip || permission.Skip || len(permission.Permissions) == 0 {
			next.ServeHTTP(writer, request)

			return
		}

		caller, _ := identity.FromContext(ctx)

		if !permission.Allows(caller.Role) {
			err := failure.ForbiddenError
			if permission.AdminOnly() {
				err = failure.AdminAccessDenied
			}

			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"http.path":     path,
				"user_role":     caller.Role,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// APIKey for internal service-to-service authentication using API key
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == constant.Empty {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, SkipAuthKey("skip"), false)))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request.WithContext(context.WithValue(ctx, SkipAuthKey("skip"), true)))
	})
}
