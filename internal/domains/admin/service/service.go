package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"coating/infras/otel"
	"coating/internal/domains/admin/model/dto"
	bookingModel "coating/internal/domains/booking/model"
	bookingDto "coating/internal/domains/booking/model/dto"
	bookingRepo "coating/internal/domains/booking/repository"
	contactModel "coating/internal/domains/contact/model"
	contactDto "coating/internal/domains/contact/model/dto"
	contactRepo "coating/internal/domains/contact/repository"
	profileService "coating/internal/domains/profile/service"
	"coating/shared"
	"coating/shared/constant"
	gDto "coating/shared/dto"
	"coating/shared/event"
	"coating/shared/failure"
	"coating/shared/identity"
	gRepo "coating/shared/repository"
	"coating/shared/timezone"
	"coating/shared/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Admin is the role gated view over every booking and contact.
// Each operation checks the caller's profile role before touching any record.
type Admin interface {
	ListBookings(ctx context.Context, req dto.ListRequest) (bookingDto.GetBookingsResponse, error)
	ListContacts(ctx context.Context, req dto.ListRequest) (contactDto.GetContactsResponse, error)
	UpdateBookingStatus(ctx context.Context, id string, req bookingDto.UpdateStatusRequest) (bookingDto.BookingResponse, error)
	UpdateContactStatus(ctx context.Context, id string, req contactDto.UpdateStatusRequest) (contactDto.ContactResponse, error)
	ReplyContact(ctx context.Context, id string, req contactDto.ReplyRequest) (contactDto.ContactResponse, error)
	Stats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	profiles    profileService.Profile
	bookingRepo bookingRepo.Booking
	contactRepo contactRepo.Contact
	publisher   event.Publisher
	otel        otel.Otel
}

func New(profiles profileService.Profile, bookingRepo bookingRepo.Booking, contactRepo contactRepo.Contact, publisher event.Publisher, otel otel.Otel) Admin {
	return &serviceImpl{
		profiles:    profiles,
		bookingRepo: bookingRepo,
		contactRepo: contactRepo,
		publisher:   publisher,
		otel:        otel,
	}
}

func (s *serviceImpl) authorize(ctx context.Context) error {
	isAdmin, err := s.profiles.RoleCheck(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !isAdmin {
		caller, _ := identity.FromContext(ctx)
		log.Warn().Str("user_id", caller.UserID).Msg("admin access denied")

		return failure.AdminAccessDenied
	}

	return nil
}

// statusFilter matches any of statuses, or every row when none are given.
func statusFilter(statuses []string, field, table string) gDto.FilterGroup {
	switch len(statuses) {
	case 0:
		return gDto.FilterGroup{}
	case 1:
		return shared.FilterByID(statuses[0], field, table)
	}

	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Value:    statuses,
				Operator: gDto.FilterOperatorIn,
				Table:    table,
			},
		},
	}
}

// repliedFilter narrows contacts to those with or without an admin reply.
func repliedFilter(filter gDto.FilterGroup, replied *bool) gDto.FilterGroup {
	if replied == nil {
		return filter
	}

	operator := gDto.FilterIsNull
	if *replied {
		operator = gDto.FilterIsNotNull
	}

	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    contactModel.FieldRepliedAt,
		Operator: operator,
		Table:    contactModel.TableName,
	})
	filter.Operator = gDto.FilterGroupOperatorAnd

	return filter
}

func validStatuses[S ~string](statuses []string, validate func(S) error) error {
	for _, status := range statuses {
		if validate(S(status)) != nil {
			return failure.Validation(constant.RequestParamStatus, dto.MessageInvalidStatus)
		}
	}

	return nil
}

func (s *serviceImpl) ListBookings(ctx context.Context, req dto.ListRequest) (res bookingDto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.ListBookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.authorize(ctx); err != nil {
		return res, err
	}

	statuses := req.Statuses()
	if err = validStatuses(statuses, bookingModel.Status.Validate); err != nil {
		return res, err
	}

	filter := statusFilter(statuses, bookingModel.FieldStatus, bookingModel.TableName)

	total, err := s.bookingRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, failure.Store(err)
	}

	bookings, err := s.bookingRepo.GetAll(ctx, req.QueryParams, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, failure.Store(err)
	}

	res.FromModels(bookings, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) ListContacts(ctx context.Context, req dto.ListRequest) (res contactDto.GetContactsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.ListContacts")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.authorize(ctx); err != nil {
		return res, err
	}

	statuses := req.Statuses()
	if err = validStatuses(statuses, contactModel.Status.Validate); err != nil {
		return res, err
	}

	filter := repliedFilter(statusFilter(statuses, contactModel.FieldStatus, contactModel.TableName), req.Replied)

	total, err := s.contactRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contacts")

		return res, failure.Store(err)
	}

	contacts, err := s.contactRepo.GetAll(ctx, req.QueryParams, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get contacts")

		return res, failure.Store(err)
	}

	res.FromModels(contacts, total, req.Limit)

	return res, nil
}

// UpdateBookingStatus writes only the status column and returns the row as it now stands,
// so a list can be patched in place. Concurrent updates are last write wins.
func (s *serviceImpl) UpdateBookingStatus(ctx context.Context, id string, req bookingDto.UpdateStatusRequest) (res bookingDto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.UpdateBookingStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.authorize(ctx); err != nil {
		return res, err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	if uuid.Validate(id) != nil {
		return res, failure.NotFound(bookingModel.MessageNotFound)
	}

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return res, failure.Store(err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(bookingModel.MessageNotFound)
	}

	caller, _ := identity.FromContext(ctx)
	now := timezone.Now()

	err = s.bookingRepo.Update(ctx, map[string]any{
		bookingModel.FieldStatus: req.Status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: caller.Actor(),
	}, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		return res, updateResult(err, bookingModel.MessageNotFound, "failed to update booking status")
	}

	previous := booking.Status
	booking.Status = req.Status
	booking.ModifiedAt = now
	booking.ModifiedBy = caller.Actor()

	res.FromModel(booking)

	s.publish(ctx, event.New(event.BookingStatusChanged, booking.Code, caller.Actor(), dto.StatusChange{
		ID:     booking.ID,
		From:   string(previous),
		To:     string(booking.Status),
		Record: res,
	}))

	return res, nil
}

func (s *serviceImpl) UpdateContactStatus(ctx context.Context, id string, req contactDto.UpdateStatusRequest) (res contactDto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.UpdateContactStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.authorize(ctx); err != nil {
		return res, err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	contact, err := s.getContact(ctx, id)
	if err != nil {
		return res, err
	}

	caller, _ := identity.FromContext(ctx)
	now := timezone.Now()

	err = s.contactRepo.Update(ctx, map[string]any{
		contactModel.FieldStatus: req.Status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: caller.Actor(),
	}, shared.FilterByID(id, contactModel.FieldID, contactModel.TableName))
	if err != nil {
		return res, updateResult(err, contactModel.MessageNotFound, "failed to update contact status")
	}

	previous := contact.Status
	contact.Status = req.Status
	contact.ModifiedAt = now
	contact.ModifiedBy = caller.Actor()

	res.FromModel(contact)

	s.publish(ctx, event.New(event.ContactStatusChanged, contact.ID, caller.Actor(), dto.StatusChange{
		ID:     contact.ID,
		From:   string(previous),
		To:     string(contact.Status),
		Record: res,
	}))

	return res, nil
}

func (s *serviceImpl) ReplyContact(ctx context.Context, id string, req contactDto.ReplyRequest) (res contactDto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.ReplyContact")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.authorize(ctx); err != nil {
		return res, err
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	contact, err := s.getContact(ctx, id)
	if err != nil {
		return res, err
	}

	caller, _ := identity.FromContext(ctx)
	now := timezone.Now()

	err = s.contactRepo.Update(ctx, map[string]any{
		contactModel.FieldAdminReply: req.Reply,
		contactModel.FieldRepliedAt:  now,
		constant.FieldModifiedAt:     now,
		constant.FieldModifiedBy:     caller.Actor(),
	}, shared.FilterByID(id, contactModel.FieldID, contactModel.TableName))
	if err != nil {
		return res, updateResult(err, contactModel.MessageNotFound, "failed to reply to contact")
	}

	contact.AdminReply = &req.Reply
	contact.RepliedAt = &now
	contact.ModifiedAt = now
	contact.ModifiedBy = caller.Actor()

	res.FromModel(contact)

	s.publish(ctx, event.New(event.ContactReplied, contact.ID, caller.Actor(), res))

	return res, nil
}

func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.authorize(ctx); err != nil {
		return res, err
	}

	var bookings, contacts map[string]int

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		bookings, err = s.bookingRepo.CountBy(groupCtx, bookingModel.FieldStatus, gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("failed to count bookings: %w", err)
		}

		return nil
	})

	group.Go(func() (err error) {
		contacts, err = s.contactRepo.CountBy(groupCtx, contactModel.FieldStatus, gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("failed to count contacts: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load stats")

		return res, failure.Store(err)
	}

	res.FromCounts(bookings, contacts)

	return res, nil
}

func (s *serviceImpl) getContact(ctx context.Context, id string) (contactModel.Contact, error) {
	if uuid.Validate(id) != nil {
		return contactModel.Contact{}, failure.NotFound(contactModel.MessageNotFound)
	}

	contact, err := s.contactRepo.Get(ctx, shared.FilterByID(id, contactModel.FieldID, contactModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get contact")

		return contact, failure.Store(err)
	}

	if contact.ID == constant.Empty {
		return contact, failure.NotFound(contactModel.MessageNotFound)
	}

	return contact, nil
}

func updateResult(err error, notFound, logMsg string) error {
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return failure.NotFound(notFound)
	}

	log.Error().Err(err).Msg(logMsg)

	return failure.Store(err)
}

func (s *serviceImpl) publish(ctx context.Context, evt event.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.Publish(c, evt); err != nil {
			log.Warn().Err(err).Str("type", evt.Type).Msg("admin event was not delivered")
		}
	}()
}
