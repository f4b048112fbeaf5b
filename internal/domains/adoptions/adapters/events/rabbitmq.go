package events

import (
	"context"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
)

// JSONPublisher is satisfied by *rabbitmq.Publisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, messageType string, body any) error
}

// RabbitPublisher sends events as persistent JSON messages typed by event name.
type RabbitPublisher struct {
	publisher JSONPublisher
}

func NewRabbitPublisher(publisher JSONPublisher) *RabbitPublisher {
	return &RabbitPublisher{publisher: publisher}
}

func (p *RabbitPublisher) Publish(ctx context.Context, event domain.Event) error {
	return p.publisher.PublishJSON(ctx, string(event.Type), event)
}

var _ ports.EventPublisher = (*RabbitPublisher)(nil)
