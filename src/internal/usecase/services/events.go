package services

import (
	"context"
	"time"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/logger"
)

type eventEmitter struct {
	publisher domain.EventPublisher
	now       func() time.Time
}

func newEventEmitter(publisher domain.EventPublisher) eventEmitter {
	return eventEmitter{
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// emit runs after commit. A failed publish is logged and never reverses the
// committed work.
func (e eventEmitter) emit(ctx context.Context, name domain.EventName, userIDs []string, payload any) {
	if e.publisher == nil {
		return
	}

	event := domain.Event{
		Name:       name,
		UserIDs:    userIDs,
		Payload:    payload,
		OccurredAt: e.now(),
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		logger.Error("event publish failed", err, logger.Fields{
			"event":   name,
			"userIds": userIDs,
		})
	}
}

func (e eventEmitter) emitBalances(ctx context.Context, accounts ...domain.Account) {
	for _, account := range accounts {
		e.emit(ctx, domain.EventBalanceUpdated, []string{account.ID}, balancePayload{
			UserID:   account.ID,
			Balance:  account.Balance.StringFixed(2),
			Debt:     account.Debt.StringFixed(2),
			IsDebtor: account.IsDebtor,
		})
	}
}

type balancePayload struct {
	UserID   string `json:"userId"`
	Balance  string `json:"balance"`
	Debt     string `json:"debt"`
	IsDebtor bool   `json:"isDebtor"`
}

type callPayload struct {
	ID          string  `json:"id"`
	CallerID    string  `json:"callerUserId"`
	RecipientID *string `json:"recipientUserId,omitempty"`
	Sum         string  `json:"sum"`
	Commission  string  `json:"commission"`
	Status      string  `json:"callStatus"`
	EndCall     bool    `json:"endCall"`
	Settled     bool    `json:"settled"`
}

func newCallPayload(call domain.CallRecord) callPayload {
	return callPayload{
		ID:          call.ID,
		CallerID:    call.CallerID,
		RecipientID: call.RecipientID,
		Sum:         call.Sum.StringFixed(2),
		Commission:  call.Commission.StringFixed(2),
		Status:      string(call.Status),
		EndCall:     call.EndCall,
		Settled:     call.Settled(),
	}
}

func callParticipants(call domain.CallRecord) []string {
	ids := []string{call.CallerID}
	if call.HasInterpreter() {
		ids = append(ids, *call.RecipientID)
	}
	return ids
}

type statusPayload struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Sum    string `json:"sum"`
	Status string `json:"status"`
}
