// Package kafka publishes JSON-encoded domain events with an asynchronous segmentio writer.
package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"bistro/config"
	"bistro/infras/otel"
	"bistro/shared/constant"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	attrTopic    = "topic"
	attrMessages = "messages"
	batchTimeout = 50 * time.Millisecond
)

// Message is one record. Records with the same Key land on the same partition, which keeps
// the events of one aggregate in order.
type Message struct {
	Key   string
	Value any
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Close() error
}

type kafkaClientImpl struct {
	writer *kafkaGo.Writer
	otel   otel.Otel
}

// New builds the process-wide producer. Writes return once queued; delivery failures are
// only logged by the completion callback.
func New(cfg *config.Config, otl otel.Otel) Client {
	transport := &kafkaGo.Transport{}

	if sasl := cfg.Kafka.SASL; sasl.Username != constant.Empty {
		transport.SASL = plain.Mechanism{Username: sasl.Username, Password: sasl.Password}
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(cfg.Kafka.Brokers...),
		Transport:              transport,
		Balancer:               &kafkaGo.Hash{},
		RequiredAcks:           kafkaGo.RequireOne,
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafkaGo.Message, err error) {
			if err != nil {
				log.Error().Err(err).Int(attrMessages, len(messages)).Msg("Kafka delivery failed")
			}
		},
	}

	log.Info().Strs("brokers", cfg.Kafka.Brokers).Msg("Kafka producer ready")

	return &kafkaClientImpl{writer: writer, otel: otl}
}

// encode converts messages into kafka records for topic, failing on the first value that
// does not marshal.
func encode(topic string, messages []Message) ([]kafkaGo.Message, error) {
	records := make([]kafkaGo.Message, len(messages))

	for i, message := range messages {
		value, err := json.Marshal(message.Value)
		if err != nil {
			return nil, fmt.Errorf("encode message %q: %w", message.Key, err)
		}

		records[i] = kafkaGo.Message{Topic: topic, Key: []byte(message.Key), Value: value}
	}

	return records, nil
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".SendMessages")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{attrTopic: topic, attrMessages: len(messages)})

	records, err := encode(topic, messages)
	if err != nil {
		return err
	}

	if err = k.writer.WriteMessages(ctx, records...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Kafka write failed")

		return fmt.Errorf("write to %s: %w", topic, err)
	}

	return nil
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}

	return nil
}
