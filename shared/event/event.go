// Package event publishes domain events after state changes have been committed.
//
// Publishing is best-effort: a failed publish is logged and never rolls back or fails the
// operation that produced the event.
package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=./mocks/event_mock.go -package=mocks

import (
	"bistro/config"
	"bistro/infras/kafka"
	"bistro/shared/timezone"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Type string

const (
	OrderCreated         Type = "order.created"
	OrderExtended        Type = "order.extended"
	OrderPaid            Type = "order.paid"
	OrderClosed          Type = "order.closed"
	ReservationCreated   Type = "reservation.created"
	ReservationCancelled Type = "reservation.cancelled"
	ShiftClosed          Type = "shift.closed"
)

type Event struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	AggregateID string    `json:"aggregate_id"`
	Actor       string    `json:"actor"`
	OccurredAt  time.Time `json:"occurred_at"`
	Payload     any       `json:"payload,omitempty"`
}

func New(eventType Type, aggregateID, actor string, payload any) Event {
	return Event{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID,
		Actor:       actor,
		OccurredAt:  timezone.Now(),
		Payload:     payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event)
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
}

type logPublisher struct{}

// NewPublisher returns a Kafka backed publisher when Kafka is enabled, otherwise one that
// only logs the events.
func NewPublisher(cfg *config.Config, client kafka.Client) Publisher {
	if !cfg.Kafka.Enable || client == nil {
		log.Info().Msg("Kafka disabled, domain events are logged only")

		return &logPublisher{}
	}

	return &kafkaPublisher{
		client: client,
		topic:  cfg.Kafka.Topic,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, events ...Event) {
	if len(events) == 0 {
		return
	}

	messages := make([]kafka.Message, len(events))
	for i, evt := range events {
		messages[i] = kafka.Message{Key: evt.AggregateID, Value: evt}
	}

	if err := p.client.SendMessages(context.WithoutCancel(ctx), p.topic, messages...); err != nil {
		log.Error().Err(err).Str("topic", p.topic).Int("events", len(events)).Msg("failed to publish domain events")
	}
}

func (p *logPublisher) Publish(_ context.Context, events ...Event) {
	for _, evt := range events {
		log.Debug().
			Str("type", string(evt.Type)).
			Str("aggregate_id", evt.AggregateID).
			Str("actor", evt.Actor).
			Msg("domain event")
	}
}
