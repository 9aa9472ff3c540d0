package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"

	"coating/config"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// Message is JSON encoded on the wire. Messages sharing a Key land on the same partition.
type Message struct {
	Key     string
	Value   any
	Headers map[string]string
}

func (m *Message) ToKafkaMessage(topic string) (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to encode message %s: %w", m.Key, err)
	}

	headers := make([]kafkaGo.Header, 0, len(m.Headers))
	for _, name := range slices.Sorted(maps.Keys(m.Headers)) {
		headers = append(headers, kafkaGo.Header{Key: name, Value: []byte(m.Headers[name])})
	}

	return kafkaGo.Message{
		Topic:   topic,
		Key:     []byte(m.Key),
		Value:   value,
		Headers: headers,
	}, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Close() error
}

type kafkaClientImpl struct {
	writer *kafkaGo.Writer
}

// requiredAcks maps the configured ack level, defaulting to all in-sync replicas.
func requiredAcks(acks string) kafkaGo.RequiredAcks {
	switch acks {
	case "none":
		return kafkaGo.RequireNone
	case "one":
		return kafkaGo.RequireOne
	default:
		return kafkaGo.RequireAll
	}
}

func NewWriter(cfg *config.Config) *kafkaGo.Writer {
	transport := &kafkaGo.Transport{}

	if cfg.Kafka.SASL.Username != "" {
		transport.SASL = plain.Mechanism{
			Username: cfg.Kafka.SASL.Username,
			Password: cfg.Kafka.SASL.Password,
		}
	}

	return &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
		Transport:              transport,
		Balancer:               &kafkaGo.Hash{},
		RequiredAcks:           requiredAcks(cfg.Kafka.RequiredAcks),
		BatchTimeout:           time.Duration(cfg.Kafka.BatchTimeoutMs) * time.Millisecond,
		WriteTimeout:           time.Duration(cfg.Kafka.WriteTimeoutSeconds) * time.Second,
		AllowAutoTopicCreation: true,
	}
}

func New(cfg *config.Config) Client {
	log.Info().Strs("brokers", cfg.Kafka.Brokers).Bool("enabled", cfg.Kafka.Enable).Msg("kafka client initialized")

	return &kafkaClientImpl{writer: NewWriter(cfg)}
}

// SendMessages writes synchronously and returns once the broker acknowledged the batch.
func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) error {
	batch := make([]kafkaGo.Message, len(messages))

	for i := range messages {
		msg, err := messages[i].ToKafkaMessage(topic)
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("failed to encode kafka message")

			return err
		}

		batch[i] = msg
	}

	if err := k.writer.WriteMessages(ctx, batch...); err != nil {
		log.Error().Err(err).Str("topic", topic).Int("count", len(batch)).Msg("failed to write kafka messages")

		return fmt.Errorf("failed to write to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(batch)).Msg("kafka messages written")

	return nil
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}
