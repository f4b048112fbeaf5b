package ports

import (
	"context"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
)

// EventPublisher delivers adoption events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
