package event_test

import (
	"context"
	"errors"
	"testing"

	"coating/config"
	"coating/infras/kafka"
	kafkaMocks "coating/infras/kafka/mocks"
	"coating/infras/otel/mocks"
	"coating/shared/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newConfig(enabled bool) *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.Enable = enabled
	cfg.Kafka.Topics.Booking = "coating.booking"
	cfg.Kafka.Topics.Contact = "coating.contact"

	return cfg
}

func TestPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	ctx := context.Background()

	tests := []struct {
		name      string
		enabled   bool
		evt       event.Event
		setupMock func()
		wantErr   bool
	}{
		{
			name:    "booking event goes to booking topic keyed by code",
			enabled: true,
			evt:     event.New(event.BookingCreated, "BK12AB34", "guest", map[string]string{"status": "pending"}),
			setupMock: func() {
				client.EXPECT().SendMessages(gomock.Any(), "coating.booking", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, msgs ...kafka.Message) error {
						require.Len(t, msgs, 1)
						assert.Equal(t, "BK12AB34", msgs[0].Key)
						assert.Equal(t, event.BookingCreated, msgs[0].Headers["event-type"])

						return nil
					})
			},
		},
		{
			name:    "contact event goes to contact topic",
			enabled: true,
			evt:     event.New(event.ContactReplied, "c-1", "a-1", nil),
			setupMock: func() {
				client.EXPECT().SendMessages(gomock.Any(), "coating.contact", gomock.Any()).Return(nil)
			},
		},
		{
			name:    "broker failure is reported",
			enabled: true,
			evt:     event.New(event.ContactCreated, "c-2", "guest", nil),
			setupMock: func() {
				client.EXPECT().SendMessages(gomock.Any(), "coating.contact", gomock.Any()).Return(errors.New("broker down"))
			},
			wantErr: true,
		},
		{
			name:      "disabled publishing skips the broker",
			enabled:   false,
			evt:       event.New(event.BookingStatusChanged, "b-1", "a-1", nil),
			setupMock: func() {},
		},
		{
			name:      "unknown event type",
			enabled:   true,
			evt:       event.New("invoice.created", "i-1", "a-1", nil),
			setupMock: func() {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			publisher := event.NewPublisher(newConfig(tt.enabled), client, mocks.NewOtel())
			err := publisher.Publish(ctx, tt.evt)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
