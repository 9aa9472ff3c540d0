package auth

import (
	"net/http"

	"coating/infras/otel"
	"coating/internal/domains/auth/model/dto"
	"coating/internal/domains/auth/service"
	profileDto "coating/internal/domains/profile/model/dto"
	profileService "coating/internal/domains/profile/service"
	"coating/shared/constant"
	"coating/shared/validator"
	"coating/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Auth
	profiles profileService.Profile
	otel     otel.Otel
}

func New(service service.Auth, profiles profileService.Profile, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		profiles: profiles,
		otel:     otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/sign-up", handler.SignUp)
		r.Post("/sign-in", handler.SignIn)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Post("/sign-out", handler.SignOut)
		r.Get("/session", handler.Session)
		r.Get("/role", handler.Role)
	})
}

// SignUp handles user registration
// @Summary Sign up
// @Description Create an account with a display name, email and password.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Sign Up Request"
// @Success 201 {object} response.Notice[dto.SignUpResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/sign-up [post]
func (handler *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SignUp")
	defer scope.End()

	req := dto.SignUpRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SignUp(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign up")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User signed up")

	response.WithNotice(w, http.StatusCreated, dto.SignUpTitle, dto.SignUpDescription, &res)
}

// SignIn handles user login
// @Summary Sign in
// @Description Exchange email and password for an access and refresh token pair.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Sign In Request"
// @Success 200 {object} response.Notice[dto.TokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/sign-in [post]
func (handler *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SignIn")
	defer scope.End()

	req := dto.SignInRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.SignIn(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to sign in")

		response.WithError(w, err)

		return
	}

	response.WithNotice(w, http.StatusOK, dto.SignInTitle, dto.SignInDescription, &res)
}

// RefreshToken handles token rotation
// @Summary Refresh token
// @Description Rotate the token pair. Each refresh token is accepted once.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.TokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Refresh(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to refresh token")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SignOut ends the current session
// @Summary Sign out
// @Description Revoke the access token and, when sent, the refresh token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.SignOutRequest false "Sign Out Request"
// @Success 200 {object} response.Notice[any]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/sign-out [post]
// @Security BearerAuth
func (handler *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SignOut")
	defer scope.End()

	req := dto.SignOutRequest{}

	if r.ContentLength != 0 {
		if err := validator.Validate(r.Body, &req); err != nil {
			scope.TraceError(err)
			log.Warn().Err(err).Msg("failed to validate request body")

			response.WithError(w, err)

			return
		}
	}

	if err := handler.service.SignOut(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to sign out")

		response.WithError(w, err)

		return
	}

	response.WithNotice[any](w, http.StatusOK, dto.SignOutTitle, dto.SignOutDescription, nil)
}

// Session returns the signed in user
// @Summary Current session
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[dto.SessionResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/session [get]
// @Security BearerAuth
func (handler *Handler) Session(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Session")
	defer scope.End()

	res, err := handler.service.Session(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Role reports whether the signed in user is an admin
// @Summary Role check
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[profileDto.RoleResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/role [get]
// @Security BearerAuth
func (handler *Handler) Role(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Role")
	defer scope.End()

	isAdmin, err := handler.profiles.RoleCheck(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check role")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, profileDto.RoleResponse{IsAdmin: isAdmin})
}
