package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"

	"coating/infras/otel"
	"coating/internal/domains/contact/model/dto"
	"coating/internal/domains/contact/repository"
	"coating/internal/domains/submission"
	"coating/shared/constant"
	"coating/shared/event"
	"coating/shared/failure"
	"coating/shared/identity"
	"coating/shared/validator"

	"github.com/rs/zerolog/log"
)

type Contact interface {
	Submit(ctx context.Context, instance string, req dto.CreateContactRequest) (dto.SubmitResponse, error)
}

type serviceImpl struct {
	repo      repository.Contact
	tracker   submission.Tracker
	publisher event.Publisher
	otel      otel.Otel
}

func New(repo repository.Contact, tracker submission.Tracker, publisher event.Publisher, otel otel.Otel) Contact {
	return &serviceImpl{
		repo:      repo,
		tracker:   tracker,
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) Submit(ctx context.Context, instance string, req dto.CreateContactRequest) (res dto.SubmitResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".contact.Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.tracker.Begin(ctx, submission.FormContact, instance); err != nil {
		return res, err //nolint:wrapcheck
	}

	defer func() {
		s.tracker.Finish(ctx, submission.FormContact, instance, res.ID, err)
	}()

	caller, _ := identity.FromContext(ctx)
	contact := req.ToModel(caller)

	if err = s.repo.Insert(ctx, contact); err != nil {
		log.Error().Err(err).Msg("failed to insert contact")

		return res, failure.Store(err)
	}

	res.ID = contact.ID

	var payload dto.ContactResponse
	payload.FromModel(contact)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.Publish(c, event.New(event.ContactCreated, contact.ID, caller.Actor(), payload)); err != nil {
			log.Warn().Err(err).Msg("contact event was not delivered")
		}
	}()

	return res, nil
}
