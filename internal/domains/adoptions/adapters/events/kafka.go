package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/kafka"
)

// RecordProducer is satisfied by *kafka.Producer.
type RecordProducer interface {
	Produce(ctx context.Context, msg *kafka.Message) error
}

// KafkaPublisher writes events keyed by pet id so events for one pet stay ordered.
type KafkaPublisher struct {
	producer RecordProducer
	topic    string
}

func NewKafkaPublisher(producer RecordProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	return p.producer.Produce(ctx, &kafka.Message{
		Topic:   p.topic,
		Key:     []byte(event.PetID),
		Value:   value,
		Headers: map[string]string{"event-type": string(event.Type)},
	})
}

var _ ports.EventPublisher = (*KafkaPublisher)(nil)
