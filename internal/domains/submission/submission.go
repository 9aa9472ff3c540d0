// Package submission guards a form instance against re-entrant submits and remembers the
// outcome of its last submit.
//
// A form instance is identified by the client supplied X-Form-Instance header. While a submit
// is in flight the instance is claimed with SET NX, so a second submit of the same instance is
// rejected until the first one finishes or the claim expires.
package submission

//go:generate go run go.uber.org/mock/mockgen -source=./submission.go -destination=./mocks/submission_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"coating/config"
	"coating/infras/otel"
	"coating/shared"
	"coating/shared/cache"
	"coating/shared/constant"
	"coating/shared/failure"
	"coating/shared/metrics"

	"github.com/rs/zerolog/log"
)

type State string

const (
	Composing  State = "composing"
	Submitting State = "submitting"
	Succeeded  State = "succeeded"
	Failed     State = "failed"
)

const (
	FormBooking = "booking"
	FormContact = "contact"

	cachePrefix = "submission"
	lockSuffix  = "lock"
	stateSuffix = "state"
)

var ErrInFlight = failure.Conflict(constant.MessageSubmissionInFlight)

// Status is the last known state of a form instance. Reference carries the booking code or
// contact id of a successful submit.
type Status struct {
	Form      string `json:"form"`
	State     State  `json:"state"`
	Reference string `json:"reference,omitempty"`
	Message   string `json:"message,omitempty"`
}

type Tracker interface {
	Begin(ctx context.Context, form, instance string) (err error)
	Finish(ctx context.Context, form, instance, reference string, outcome error)
	State(ctx context.Context, form, instance string) (res Status, err error)
}

type tracker struct {
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Tracker {
	return &tracker{
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func key(form, instance, suffix string) string {
	return shared.BuildCacheKey(cachePrefix, form, instance, suffix)
}

// Begin claims the instance. An empty instance is never guarded.
func (t *tracker) Begin(ctx context.Context, form, instance string) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".submission.Begin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if instance == constant.Empty {
		return nil
	}

	claimed, err := t.cache.SaveIfAbsent(ctx, key(form, instance, lockSuffix), string(Submitting), t.cfg.App.Submission.InFlightTTLSeconds)
	if err != nil {
		log.Error().Err(err).Str("form", form).Msg("failed to claim form instance")

		return failure.Store(err)
	}

	if !claimed {
		metrics.IncSubmission(form, "rejected")

		return ErrInFlight
	}

	status := Status{Form: form, State: Submitting}
	if err = t.cache.Save(ctx, key(form, instance, stateSuffix), status, t.cfg.App.Submission.OutcomeTTLSeconds); err != nil {
		log.Warn().Err(err).Str("form", form).Msg("failed to record submitting state")
	}

	return nil
}

// Finish records the outcome and releases the claim so the form can be submitted again.
func (t *tracker) Finish(ctx context.Context, form, instance, reference string, outcome error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".submission.Finish")
	defer scope.End()

	status := Status{Form: form, State: Succeeded, Reference: reference}
	if outcome != nil {
		status = Status{Form: form, State: Failed, Message: failure.GetMessage(outcome)}
	}

	metrics.IncSubmission(form, string(status.State))

	if instance == constant.Empty {
		return
	}

	if err := t.cache.Save(ctx, key(form, instance, stateSuffix), status, t.cfg.App.Submission.OutcomeTTLSeconds); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("form", form).Msg("failed to record submission outcome")
	}

	if err := t.cache.Delete(ctx, key(form, instance, lockSuffix)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("form", form).Msg("failed to release form instance")
	}
}

func (t *tracker) State(ctx context.Context, form, instance string) (res Status, err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".submission.State")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = Status{Form: form, State: Composing}

	if instance == constant.Empty {
		return res, nil
	}

	err = t.cache.Get(ctx, key(form, instance, stateSuffix), &res)
	if errors.Is(err, cache.Nil) {
		return Status{Form: form, State: Composing}, nil
	}

	if err != nil {
		log.Error().Err(err).Str("form", form).Msg("failed to read submission state")

		return res, failure.Store(fmt.Errorf("failed to read submission state: %w", err))
	}

	return res, nil
}
