package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mock_event_publisher.go -package=mocks -source=event.go

type EventName string

const (
	EventCallCreated         EventName = "callCreated"
	EventCallUpdated         EventName = "callUpdated"
	EventWithdrawalRequested EventName = "withdrawalRequested"
	EventWithdrawalUpdated   EventName = "withdrawalUpdated"
	EventDepositCreated      EventName = "depositCreated"
	EventDepositUpdated      EventName = "depositUpdated"
	EventBalanceUpdated      EventName = "balanceUpdated"
)

// Event is emitted after a unit of work commits.
type Event struct {
	Name       EventName `json:"name"`
	UserIDs    []string  `json:"userIds,omitempty"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurredAt"`
}

type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
