package kafka_test

import (
	"testing"
	"time"

	"coating/config"
	"coating/infras/kafka"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{
		Key:     "BK12AB34",
		Value:   map[string]string{"status": "pending"},
		Headers: map[string]string{"event-type": "booking.created", "content-type": "application/json"},
	}

	out, err := msg.ToKafkaMessage("coating.booking")
	require.NoError(t, err)

	assert.Equal(t, "coating.booking", out.Topic)
	assert.Equal(t, []byte("BK12AB34"), out.Key)
	assert.JSONEq(t, `{"status":"pending"}`, string(out.Value))
	assert.Equal(t, []kafkaGo.Header{
		{Key: "content-type", Value: []byte("application/json")},
		{Key: "event-type", Value: []byte("booking.created")},
	}, out.Headers)

	bad := kafka.Message{Key: "x", Value: make(chan int)}
	_, err = bad.ToKafkaMessage("coating.booking")
	assert.Error(t, err)
}

func TestNewWriter(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Brokers = []string{"broker-1:9092", "broker-2:9092"}
	cfg.Kafka.RequiredAcks = "one"
	cfg.Kafka.BatchTimeoutMs = 50
	cfg.Kafka.WriteTimeoutSeconds = 10

	writer := kafka.NewWriter(cfg)

	require.NotNil(t, writer.Addr)
	assert.Contains(t, writer.Addr.String(), "broker-2:9092")
	assert.Equal(t, kafkaGo.RequireOne, writer.RequiredAcks)
	assert.Equal(t, 50*time.Millisecond, writer.BatchTimeout)
	assert.Equal(t, 10*time.Second, writer.WriteTimeout)

	transport, ok := writer.Transport.(*kafkaGo.Transport)
	require.True(t, ok)
	assert.Nil(t, transport.SASL)

	cfg.Kafka.SASL.Username = "svc"
	cfg.Kafka.SASL.Password = "secret"
	cfg.Kafka.RequiredAcks = ""

	writer = kafka.NewWriter(cfg)
	assert.Equal(t, kafkaGo.RequireAll, writer.RequiredAcks)
	assert.Equal(t, plain.Mechanism{Username: "svc", Password: "secret"}, writer.Transport.(*kafkaGo.Transport).SASL)
}
