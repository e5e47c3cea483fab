package events

import (
	"context"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/logger"
)

// LogPublisher writes every event to the service log. It is the default
// sink when no queue is configured.
type LogPublisher struct{}

var _ domain.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.Event) error {
	logger.Info("event published", logger.Fields{
		"event":      event.Name,
		"userIds":    event.UserIDs,
		"payload":    logger.SanitizePayload(event.Payload),
		"occurredAt": event.OccurredAt,
	})
	return nil
}
