package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"coating/config"
	"coating/infras/otel"
	"coating/internal/domains/booking/code"
	"coating/internal/domains/booking/model"
	"coating/internal/domains/booking/model/dto"
	"coating/internal/domains/booking/repository"
	profileService "coating/internal/domains/profile/service"
	"coating/internal/domains/submission"
	"coating/shared"
	"coating/shared/constant"
	"coating/shared/event"
	"coating/shared/failure"
	"coating/shared/identity"
	"coating/shared/metrics"
	"coating/shared/validator"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const defaultCodeAttempts = 5

var errCodesExhausted = errors.New("booking code attempts exhausted")

type Booking interface {
	Submit(ctx context.Context, instance string, req dto.CreateBookingRequest) (dto.SubmitResponse, error)
	Options(ctx context.Context) dto.OptionsResponse
	GetByCode(ctx context.Context, bookingCode string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	profiles  profileService.Profile
	cfg       *config.Config
	codes     code.Generator
	tracker   submission.Tracker
	publisher event.Publisher
	otel      otel.Otel
}

func New(repo repository.Booking, profiles profileService.Profile, cfg *config.Config, codes code.Generator, tracker submission.Tracker, publisher event.Publisher, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		profiles:  profiles,
		cfg:       cfg,
		codes:     codes,
		tracker:   tracker,
		publisher: publisher,
		otel:      otel,
	}
}

// Submit validates the form, claims the form instance and stores a pending booking under a fresh code.
func (s *serviceImpl) Submit(ctx context.Context, instance string, req dto.CreateBookingRequest) (res dto.SubmitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.tracker.Begin(ctx, submission.FormBooking, instance); err != nil {
		return res, err //nolint:wrapcheck
	}

	defer func() {
		s.tracker.Finish(ctx, submission.FormBooking, instance, res.Code, err)
	}()

	caller, _ := identity.FromContext(ctx)

	booking, err := s.insert(ctx, req, caller)
	if err != nil {
		return res, err
	}

	res.Code = booking.Code

	var payload dto.BookingResponse
	payload.FromModel(booking)

	s.publish(ctx, event.New(event.BookingCreated, booking.Code, caller.Actor(), payload))

	return res, nil
}

// insert retries with a new code while the unique index on booking_code rejects the row.
func (s *serviceImpl) insert(ctx context.Context, req dto.CreateBookingRequest, caller identity.Identity) (model.Booking, error) {
	attempts := s.cfg.App.Booking.CodeMaxAttempts
	if attempts <= 0 {
		attempts = defaultCodeAttempts
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		bookingCode, err := s.codes.Generate()
		if err != nil {
			log.Error().Err(err).Msg("failed to generate booking code")

			return model.Booking{}, failure.Store(err)
		}

		booking, err := req.ToModel(bookingCode, caller)
		if err != nil {
			return model.Booking{}, failure.Validation("date", "Ngày không hợp lệ")
		}

		err = s.repo.Insert(ctx, booking)
		if err == nil {
			return booking, nil
		}

		if !isCodeCollision(err) {
			log.Error().Err(err).Msg("failed to insert booking")

			return model.Booking{}, failure.Store(err)
		}

		metrics.IncCodeCollision()
		log.Warn().Int("attempt", attempt).Str("code", bookingCode).Msg("booking code already taken, retrying")
	}

	log.Error().Err(errCodesExhausted).Int("attempts", attempts).Msg("failed to insert booking")

	return model.Booking{}, failure.Store(errCodesExhausted)
}

func isCodeCollision(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation && pqErr.Constraint == model.CodeConstraint
}

func (s *serviceImpl) publish(ctx context.Context, evt event.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.Publish(c, evt); err != nil {
			log.Warn().Err(err).Str("type", evt.Type).Msg("booking event was not delivered")
		}
	}()
}

func (s *serviceImpl) Options(ctx context.Context) dto.OptionsResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Options")
	defer scope.End()

	return dto.OptionsResponse{
		Services:  model.Services,
		TimeSlots: model.TimeSlots,
	}
}

// GetByCode returns the booking to its owner or an admin.
// Admin rights come from the stored profile, not from the token.
func (s *serviceImpl) GetByCode(ctx context.Context, bookingCode string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetByCode")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookingCode = strings.ToUpper(strings.TrimSpace(bookingCode))
	if !code.Valid(bookingCode) {
		return res, failure.NotFound(model.MessageNotFound)
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(bookingCode, model.FieldCode, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, failure.Store(fmt.Errorf("failed to get booking: %w", err))
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(model.MessageNotFound)
	}

	caller, ok := identity.FromContext(ctx)
	if ok && !identity.Owns(booking, caller) {
		if caller, err = identity.WithStoredRole(ctx, caller, s.profiles); err != nil {
			return res, err
		}
	}

	if !identity.CanAccess(booking, caller) {
		return res, failure.RecordAccessDenied
	}

	res.FromModel(booking)

	return res, nil
}
