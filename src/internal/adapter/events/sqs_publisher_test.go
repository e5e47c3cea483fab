package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/morago/interpreter-ledger/src/internal/adapter/events"
	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSQS struct {
	mock.Mock
}

func (m *mockSQS) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*sqs.SendMessageOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSQSPublisher_Publish(t *testing.T) {
	client := new(mockSQS)
	publisher := events.NewSQSPublisher(client, "https://sqs.local/ledger-events")
	event := domain.Event{
		Name:       domain.EventBalanceUpdated,
		UserIDs:    []string{"user-1"},
		Payload:    map[string]string{"balance": "10.00"},
		OccurredAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	client.On("SendMessage", mock.Anything, mock.MatchedBy(func(in *sqs.SendMessageInput) bool {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(aws.ToString(in.MessageBody)), &decoded); err != nil {
			return false
		}
		return aws.ToString(in.QueueUrl) == "https://sqs.local/ledger-events" &&
			decoded["name"] == string(domain.EventBalanceUpdated) &&
			aws.ToString(in.MessageAttributes["event"].StringValue) == string(domain.EventBalanceUpdated)
	})).Return(&sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil).Once()

	require.NoError(t, publisher.Publish(context.Background(), event))
	client.AssertExpectations(t)
}

func TestSQSPublisher_PublishError(t *testing.T) {
	client := new(mockSQS)
	publisher := events.NewSQSPublisher(client, "queue")

	client.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).Once()

	err := publisher.Publish(context.Background(), domain.Event{Name: domain.EventCallCreated})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "callCreated")
	assert.Contains(t, err.Error(), "throttled")
	client.AssertExpectations(t)
}

func TestSQSPublisher_UnmarshalablePayload(t *testing.T) {
	client := new(mockSQS)
	publisher := events.NewSQSPublisher(client, "queue")

	err := publisher.Publish(context.Background(), domain.Event{Name: domain.EventCallCreated, Payload: make(chan int)})
	require.Error(t, err)
	client.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
}
