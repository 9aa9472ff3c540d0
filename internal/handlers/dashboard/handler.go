package dashboard

import (
	"net/http"

	"coating/infras/otel"
	"coating/internal/domains/dashboard/model/dto"
	"coating/internal/domains/dashboard/service"
	"coating/shared/constant"
	"coating/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetOverview)
		routerGroup.Delete("/bookings/{id}", handler.DeleteBooking)
		routerGroup.Delete("/contacts/{id}", handler.DeleteContact)
	})
}

// GetOverview lists the caller's bookings and contact messages.
// @Summary My dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[dto.OverviewResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetOverview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverview")
	defer scope.End()

	res, err := handler.service.Overview(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteBooking removes one of the caller's bookings.
// @Summary Delete my booking
// @Tags Dashboard
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Notice[any]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	if err := handler.service.DeleteBooking(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete booking")

		response.WithError(writer, err)

		return
	}

	response.WithNotice[any](writer, http.StatusOK, dto.DeleteTitle, dto.DeleteBookingDescription, nil)
}

// DeleteContact removes one of the caller's contact messages.
// @Summary Delete my contact message
// @Tags Dashboard
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Notice[any]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/contacts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteContact(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContact")
	defer scope.End()

	if err := handler.service.DeleteContact(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact")

		response.WithError(writer, err)

		return
	}

	response.WithNotice[any](writer, http.StatusOK, dto.DeleteTitle, dto.DeleteContactDescription, nil)
}
