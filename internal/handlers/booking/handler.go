package booking

import (
	"net/http"

	"coating/infras/otel"
	"coating/internal/domains/booking/model/dto"
	"coating/internal/domains/booking/service"
	"coating/shared/constant"
	"coating/shared/validator"
	"coating/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service   service.Booking
	rateLimit func(http.Handler) http.Handler
	otel      otel.Otel
}

// New builds the booking handler. rateLimit wraps the public submit endpoint.
func New(service service.Booking, rateLimit func(http.Handler) http.Handler, otel otel.Otel) Handler {
	return Handler{
		service:   service,
		rateLimit: rateLimit,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.With(handler.rateLimit).Post("/", handler.CreateBooking)
		routerGroup.Get("/options", handler.GetOptions)
		routerGroup.Get("/{code}", handler.GetBookingByCode)
	})
}

// CreateBooking handles the public booking form.
// @Summary Submit a booking
// @Description Store a pending booking and return its code. Signed in callers become the owner.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Form-Instance header string false "Form instance id used to reject duplicate submits"
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Notice[dto.SubmitResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 429 {object} response.Message
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Submit(ctx, request.Header.Get(constant.RequestHeaderFormInstance), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created " + res.Code)

	title, description := dto.SubmitNotice(res.Code)
	response.WithNotice(writer, http.StatusCreated, title, description, &res)
}

// GetOptions lists the services and time slots offered by the booking form.
// @Summary Booking form options
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.OptionsResponse]
// @Router /v1/bookings/options [get]
func (handler *Handler) GetOptions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOptions")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, handler.service.Options(ctx))
}

// GetBookingByCode retrieves a booking by its code.
// @Summary Get a booking by code
// @Tags Booking
// @Produce json
// @Param code path string true "Booking code"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{code} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByCode(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByCode")
	defer scope.End()

	booking, err := handler.service.GetByCode(ctx, chi.URLParam(request, constant.RequestParamCode))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by code")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}
