package submission

import (
	"net/http"
	"slices"

	"coating/infras/otel"
	"coating/internal/domains/submission"
	"coating/shared/constant"
	"coating/shared/failure"
	"coating/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const MessageUnknownForm = "Không tìm thấy biểu mẫu"

var forms = []string{submission.FormBooking, submission.FormContact}

type Handler struct {
	tracker submission.Tracker
	otel    otel.Otel
}

func New(tracker submission.Tracker, otel otel.Otel) Handler {
	return Handler{
		tracker: tracker,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/submissions/{form}", handler.GetState)
}

// GetState reports where the form instance named by X-Form-Instance is in its submit cycle.
// @Summary Submission state
// @Tags Submission
// @Produce json
// @Param form path string true "Form name" Enums(booking, contact)
// @Param X-Form-Instance header string false "Form instance id"
// @Success 200 {object} response.Data[submission.Status]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/submissions/{form} [get]
func (handler *Handler) GetState(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSubmissionState")
	defer scope.End()

	form := chi.URLParam(request, constant.RequestParamForm)
	if !slices.Contains(forms, form) {
		response.WithError(writer, failure.NotFound(MessageUnknownForm))

		return
	}

	res, err := handler.tracker.State(ctx, form, request.Header.Get(constant.RequestHeaderFormInstance))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get submission state")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
