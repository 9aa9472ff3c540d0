package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"coating/config"
	"coating/infras/kafka"
	"coating/infras/otel"
	"coating/shared/constant"
	"coating/shared/metrics"
	"coating/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	ContactCreated       = "contact.created"
	ContactStatusChanged = "contact.status_changed"
	ContactReplied       = "contact.replied"
)

const (
	headerEventType   = "event-type"
	headerContentType = "content-type"
)

type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	Actor      string    `json:"actor"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(eventType, key, actor string, payload any) Event {
	return Event{
		Type:       eventType,
		Key:        key,
		Actor:      actor,
		Payload:    payload,
		OccurredAt: timezone.Now(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) (err error)
}

type publisher struct {
	config *config.Config
	client kafka.Client
	otel   otel.Otel
}

// NewPublisher routes events to the booking or contact topic. With Kafka disabled it only logs.
func NewPublisher(cfg *config.Config, client kafka.Client, otl otel.Otel) Publisher {
	return &publisher{
		config: cfg,
		client: client,
		otel:   otl,
	}
}

func (p *publisher) topic(eventType string) (string, error) {
	domain, _, _ := strings.Cut(eventType, ".")

	switch domain {
	case "booking":
		return p.config.Kafka.Topics.Booking, nil
	case "contact":
		return p.config.Kafka.Topics.Contact, nil
	default:
		return "", fmt.Errorf("no topic for event %q", eventType)
	}
}

func (p *publisher) Publish(ctx context.Context, evt Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	topic, err := p.topic(evt.Type)
	if err != nil {
		return err
	}

	scope.SetAttributes(map[string]any{"event.type": evt.Type, "event.topic": topic})

	if !p.config.Kafka.Enable || p.client == nil {
		log.Debug().Str("type", evt.Type).Str("key", evt.Key).Msg("event publishing disabled, skipping")

		return nil
	}

	err = p.client.SendMessages(ctx, topic, kafka.Message{
		Key:     evt.Key,
		Value:   evt,
		Headers: map[string]string{headerEventType: evt.Type, headerContentType: constant.ContentTypeJSON},
	})
	metrics.IncEvent(topic, err)

	if err != nil {
		log.Error().Err(err).Str("type", evt.Type).Str("key", evt.Key).Msg("failed to publish event")

		return fmt.Errorf("failed to publish event %s: %w", evt.Type, err)
	}

	return nil
}
