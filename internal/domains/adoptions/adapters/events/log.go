// Package events delivers adoption events to a broker, or to the log when none is configured.
package events

import (
	"context"
	"log/slog"

	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
)

// LogPublisher records events at info level.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.Event) error {
	p.logger.LogAttrs(ctx, slog.LevelInfo, "adoption event",
		slog.String("event.type", string(event.Type)),
		slog.String("adoption.id", event.AdoptionID),
		slog.String("user.id", event.UserID),
		slog.String("pet.id", event.PetID),
		slog.Time("event.occurred_at", event.OccurredAt),
	)
	return nil
}

var _ ports.EventPublisher = (*LogPublisher)(nil)
