package admin

import (
	"net/http"

	"coating/infras/otel"
	"coating/internal/domains/admin/model/dto"
	"coating/internal/domains/admin/service"
	bookingDto "coating/internal/domains/booking/model/dto"
	contactDto "coating/internal/domains/contact/model/dto"
	projectDto "coating/internal/domains/project/model/dto"
	projectService "coating/internal/domains/project/service"
	"coating/shared/constant"
	"coating/shared/failure"
	"coating/shared/validator"
	"coating/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Admin
	projects projectService.Project
	otel     otel.Otel
}

func New(service service.Admin, projects projectService.Project, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		projects: projects,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.Get("/bookings", handler.ListBookings)
		routerGroup.Patch("/bookings/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Get("/contacts", handler.ListContacts)
		routerGroup.Patch("/contacts/{id}/status", handler.UpdateContactStatus)
		routerGroup.Patch("/contacts/{id}/reply", handler.ReplyContact)
		routerGroup.Get("/stats", handler.GetStats)
		routerGroup.Post("/projects/images", handler.UploadProjectImage)
		routerGroup.Delete("/projects/images", handler.DeleteProjectImage)
	})
}

// ListBookings lists every booking for the admin console.
// @Summary List bookings
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size, every record when omitted"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "Sort direction" Enums(ASC, DESC)
// @Param status query string false "Comma separated statuses: pending, confirmed, completed, cancelled"
// @Success 200 {object} response.Data[bookingDto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings [get]
// @Security BearerAuth
func (handler *Handler) ListBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListBookings")
	defer scope.End()

	req := dto.ListRequest{}
	req.FromRequest(request)

	res, err := handler.service.ListBookings(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ListContacts lists every contact message for the admin console.
// @Summary List contact messages
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size, every record when omitted"
// @Param sort_by query string false "Sort column"
// @Param sort_dir query string false "Sort direction" Enums(ASC, DESC)
// @Param status query string false "Comma separated statuses: new, in_progress, resolved"
// @Param replied query bool false "Only contacts with (true) or without (false) an admin reply"
// @Success 200 {object} response.Data[contactDto.GetContactsResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/contacts [get]
// @Security BearerAuth
func (handler *Handler) ListContacts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListContacts")
	defer scope.End()

	req := dto.ListRequest{}
	req.FromRequest(request)

	res, err := handler.service.ListContacts(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list contacts")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateBookingStatus moves a booking to another status.
// @Summary Update booking status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body bookingDto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Notice[bookingDto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	req := bookingDto.UpdateStatusRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpdateBookingStatus(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(writer, err)

		return
	}

	response.WithNotice(writer, http.StatusOK, dto.UpdateTitle, dto.UpdateBookingStatusDescription, &res)
}

// UpdateContactStatus moves a contact message to another status.
// @Summary Update contact status
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body contactDto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Notice[contactDto.ContactResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/contacts/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateContactStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContactStatus")
	defer scope.End()

	req := contactDto.UpdateStatusRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpdateContactStatus(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact status")

		response.WithError(writer, err)

		return
	}

	response.WithNotice(writer, http.StatusOK, dto.UpdateTitle, dto.UpdateContactStatusDescription, &res)
}

// ReplyContact stores the admin's reply to a contact message.
// @Summary Reply to a contact message
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body contactDto.ReplyRequest true "Reply Request"
// @Success 200 {object} response.Notice[contactDto.ContactResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/contacts/{id}/reply [patch]
// @Security BearerAuth
func (handler *Handler) ReplyContact(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReplyContact")
	defer scope.End()

	req := contactDto.ReplyRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ReplyContact(ctx, chi.URLParam(request, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reply to contact")

		response.WithError(writer, err)

		return
	}

	response.WithNotice(writer, http.StatusOK, dto.UpdateTitle, dto.ReplyContactDescription, &res)
}

// GetStats counts bookings and contact messages per status.
// @Summary Status counters
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.StatsResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/stats [get]
// @Security BearerAuth
func (handler *Handler) GetStats(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	res, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get stats")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UploadProjectImage stores an image for the project gallery.
// @Summary Upload a project image
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image (jpeg, png or webp, at most 5 MB)"
// @Success 201 {object} response.Notice[projectDto.UploadImageResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/projects/images [post]
// @Security BearerAuth
func (handler *Handler) UploadProjectImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadProjectImage")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	file, header, err := request.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, failure.Validation(constant.FormFile, "Vui lòng chọn ảnh"))

		return
	}
	defer file.Close()

	res, err := handler.projects.UploadImage(ctx, file, header)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload project image")

		response.WithError(writer, err)

		return
	}

	response.WithNotice(writer, http.StatusCreated, projectDto.UploadImageTitle, "", &res)
}

// DeleteProjectImage removes an uploaded project image.
// @Summary Delete a project image
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body projectDto.DeleteImageRequest true "Delete Image Request"
// @Success 200 {object} response.Notice[any]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/projects/images [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProjectImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProjectImage")
	defer scope.End()

	req := projectDto.DeleteImageRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.projects.DeleteImage(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete project image")

		response.WithError(writer, err)

		return
	}

	response.WithNotice[any](writer, http.StatusOK, projectDto.DeleteImageTitle, "", nil)
}
