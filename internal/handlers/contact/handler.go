package contact

import (
	"net/http"

	"coating/infras/otel"
	"coating/internal/domains/contact/model/dto"
	"coating/internal/domains/contact/service"
	"coating/shared/constant"
	"coating/shared/validator"
	"coating/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service   service.Contact
	rateLimit func(http.Handler) http.Handler
	otel      otel.Otel
}

func New(service service.Contact, rateLimit func(http.Handler) http.Handler, otel otel.Otel) Handler {
	return Handler{
		service:   service,
		rateLimit: rateLimit,
		otel:      otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.With(handler.rateLimit).Post("/contacts", handler.CreateContact)
}

// CreateContact handles the public contact form.
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param X-Form-Instance header string false "Form instance id used to reject duplicate submits"
// @Param request body dto.CreateContactRequest true "Create Contact Request"
// @Success 201 {object} response.Notice[dto.SubmitResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 429 {object} response.Message
// @Failure 500 {object} response.Error
// @Router /v1/contacts [post]
func (handler *Handler) CreateContact(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContact")
	defer scope.End()

	req := dto.CreateContactRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Submit(ctx, request.Header.Get(constant.RequestHeaderFormInstance), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact")

		response.WithError(writer, err)

		return
	}

	response.WithNotice(writer, http.StatusCreated, dto.SubmitTitle, dto.SubmitDescription, &res)
}
