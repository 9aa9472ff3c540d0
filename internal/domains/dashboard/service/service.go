package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"coating/infras/otel"
	bookingModel "coating/internal/domains/booking/model"
	bookingRepo "coating/internal/domains/booking/repository"
	contactModel "coating/internal/domains/contact/model"
	contactRepo "coating/internal/domains/contact/repository"
	"coating/internal/domains/dashboard/model/dto"
	profileService "coating/internal/domains/profile/service"
	"coating/shared"
	"coating/shared/constant"
	gDto "coating/shared/dto"
	"coating/shared/failure"
	"coating/shared/identity"
	gRepo "coating/shared/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Dashboard is the signed in user's view of their own bookings and contacts.
type Dashboard interface {
	Overview(ctx context.Context) (dto.OverviewResponse, error)
	DeleteBooking(ctx context.Context, id string) error
	DeleteContact(ctx context.Context, id string) error
}

type serviceImpl struct {
	profiles    profileService.Profile
	bookingRepo bookingRepo.Booking
	contactRepo contactRepo.Contact
	otel        otel.Otel
}

func New(profiles profileService.Profile, bookingRepo bookingRepo.Booking, contactRepo contactRepo.Contact, otel otel.Otel) Dashboard {
	return &serviceImpl{
		profiles:    profiles,
		bookingRepo: bookingRepo,
		contactRepo: contactRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Overview(ctx context.Context) (res dto.OverviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.Overview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return res, failure.Unauthorized(constant.MessageSignInRequired)
	}

	var (
		bookings []bookingModel.Booking
		contacts []contactModel.Contact
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		bookings, err = s.bookingRepo.GetAll(groupCtx, gDto.NewestFirst(), shared.FilterByOwner(bookingModel.FieldUserID, bookingModel.TableName, caller))
		if err != nil {
			return fmt.Errorf("failed to get bookings: %w", err)
		}

		return nil
	})

	group.Go(func() (err error) {
		contacts, err = s.contactRepo.GetAll(groupCtx, gDto.NewestFirst(), shared.FilterByOwner(contactModel.FieldUserID, contactModel.TableName, caller))
		if err != nil {
			return fmt.Errorf("failed to get contacts: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Str("user_id", caller.UserID).Msg("failed to load dashboard")

		return res, failure.Store(err)
	}

	res.FromModels(bookings, contacts)

	return res, nil
}

func (s *serviceImpl) DeleteBooking(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.DeleteBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return failure.Unauthorized(constant.MessageSignInRequired)
	}

	if uuid.Validate(id) != nil {
		return failure.NotFound(bookingModel.MessageNotFound)
	}

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return failure.Store(err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound(bookingModel.MessageNotFound)
	}

	if caller, err = s.storedRole(ctx, booking, caller); err != nil {
		return err
	}

	if !identity.CanAccess(booking, caller) {
		log.Warn().Str("id", id).Str("user_id", caller.UserID).Msg("booking delete denied")

		return failure.RecordAccessDenied
	}

	err = s.bookingRepo.Delete(ctx, shared.FilterByIDForCaller(id, bookingModel.FieldID, bookingModel.FieldUserID, bookingModel.TableName, caller))

	return deleteResult(err, bookingModel.MessageNotFound, "failed to delete booking")
}

func (s *serviceImpl) DeleteContact(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".dashboard.DeleteContact")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, ok := identity.FromContext(ctx)
	if !ok {
		return failure.Unauthorized(constant.MessageSignInRequired)
	}

	if uuid.Validate(id) != nil {
		return failure.NotFound(contactModel.MessageNotFound)
	}

	contact, err := s.contactRepo.Get(ctx, shared.FilterByID(id, contactModel.FieldID, contactModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get contact")

		return failure.Store(err)
	}

	if contact.ID == constant.Empty {
		return failure.NotFound(contactModel.MessageNotFound)
	}

	if caller, err = s.storedRole(ctx, contact, caller); err != nil {
		return err
	}

	if !identity.CanAccess(contact, caller) {
		log.Warn().Str("id", id).Str("user_id", caller.UserID).Msg("contact delete denied")

		return failure.RecordAccessDenied
	}

	err = s.contactRepo.Delete(ctx, shared.FilterByIDForCaller(id, contactModel.FieldID, contactModel.FieldUserID, contactModel.TableName, caller))

	return deleteResult(err, contactModel.MessageNotFound, "failed to delete contact")
}

// storedRole swaps the token's role for the profile's before acting on a record
// the caller does not own.
func (s *serviceImpl) storedRole(ctx context.Context, record identity.Owned, caller identity.Identity) (identity.Identity, error) {
	if identity.Owns(record, caller) {
		return caller, nil
	}

	return identity.WithStoredRole(ctx, caller, s.profiles) //nolint:wrapcheck
}

// deleteResult maps a row removed between the lookup and the delete to not found.
func deleteResult(err error, notFound, logMsg string) error {
	if errors.Is(err, gRepo.ErrNoRowsAffected) {
		return failure.NotFound(notFound)
	}

	if err != nil {
		log.Error().Err(err).Msg(logMsg)

		return failure.Store(err)
	}

	return nil
}
