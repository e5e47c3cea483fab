package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/morago/interpreter-ledger/src/internal/adapter/events"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
)

func TestMultiPublisher_Publish(t *testing.T) {
	event := domain.Event{Name: domain.EventWithdrawalUpdated, UserIDs: []string{"u-1"}}
	failure := errors.New("queue unavailable")

	tests := []struct {
		name    string
		first   error
		second  error
		wantErr error
	}{
		{name: "all sinks succeed"},
		{name: "one sink fails", second: failure, wantErr: failure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			first := mocks.NewMockEventPublisher(ctrl)
			second := mocks.NewMockEventPublisher(ctrl)

			first.EXPECT().Publish(gomock.Any(), event).Return(tt.first)
			second.EXPECT().Publish(gomock.Any(), event).Return(tt.second)

			err := events.NewMultiPublisher(first, nil, second).Publish(context.Background(), event)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogPublisher_Publish(t *testing.T) {
	err := events.NewLogPublisher().Publish(context.Background(), domain.Event{
		Name:    domain.EventDepositUpdated,
		Payload: map[string]any{"accountNumber": "1234"},
	})
	assert.NoError(t, err)
}
