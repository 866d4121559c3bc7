package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bistro/config"
	"bistro/infras/kafka"
	kafkaMocks "bistro/infras/kafka/mocks"
	"bistro/shared/event"
)

func kafkaConfig(enable bool) *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.Enable = enable
	cfg.Kafka.Topic = "bistro.events"

	return cfg
}

func TestNew(t *testing.T) {
	evt := event.New(event.OrderPaid, "order-1", "anna", map[string]int64{"total": 1500})

	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, event.OrderPaid, evt.Type)
	assert.Equal(t, "order-1", evt.AggregateID)
	assert.Equal(t, "anna", evt.Actor)
	assert.False(t, evt.OccurredAt.IsZero())
}

func TestPublisher_Kafka(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	publisher := event.NewPublisher(kafkaConfig(true), client)

	created := event.New(event.OrderCreated, "order-1", "anna", nil)
	closed := event.New(event.OrderClosed, "order-1", "anna", nil)

	client.EXPECT().
		SendMessages(gomock.Any(), "bistro.events", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			assert.Len(t, messages, 2)
			assert.Equal(t, "order-1", messages[0].Key)
			assert.Equal(t, created, messages[0].Value)

			return nil
		})

	publisher.Publish(context.Background(), created, closed)
}

func TestPublisher_KafkaFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	publisher := event.NewPublisher(kafkaConfig(true), client)

	client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	assert.NotPanics(t, func() {
		publisher.Publish(context.Background(), event.New(event.ShiftClosed, "shift-1", "anna", nil))
	})
}

func TestPublisher_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	publisher := event.NewPublisher(kafkaConfig(false), client)

	publisher.Publish(context.Background(), event.New(event.ReservationCreated, "res-1", "boris", nil))
}
