package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/morago/interpreter-ledger/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transactionRepoStub struct {
	createFn     func(ctx context.Context, entry domain.Transaction) (domain.Transaction, error)
	listByUserFn func(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

func (s transactionRepoStub) Create(ctx context.Context, entry domain.Transaction) (domain.Transaction, error) {
	if s.createFn != nil {
		return s.createFn(ctx, entry)
	}
	return entry, nil
}

func (s transactionRepoStub) Get(ctx context.Context, id string) (domain.Transaction, error) {
	return domain.Transaction{}, domain.ErrRecordNotFound
}

func (s transactionRepoStub) ListByUser(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	if s.listByUserFn != nil {
		return s.listByUserFn(ctx, userID, filter)
	}
	return nil, nil
}

func (s transactionRepoStub) SumByUserAndType(ctx context.Context, userID string, txType domain.TransactionType) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s transactionRepoStub) CountByUser(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

func TestTransactionService_RecordPersistenceFailure(t *testing.T) {
	cause := errors.New("connection reset by peer")
	service := services.NewTransactionService(transactionRepoStub{
		createFn: func(ctx context.Context, entry domain.Transaction) (domain.Transaction, error) {
			return domain.Transaction{}, fmt.Errorf("create transaction: %w: %w", domain.ErrPersistence, cause)
		},
	})

	_, err := service.Record(context.Background(), domain.Account{ID: "u-1", Balance: dec("10")}, domain.LedgerEntry{
		Type:   domain.TransactionTypeRefund,
		Amount: dec("1"),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, cause)
}

func TestTransactionService_ListByUserCapsPageSize(t *testing.T) {
	var seen domain.TransactionFilter
	service := services.NewTransactionService(transactionRepoStub{
		listByUserFn: func(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
			seen = filter
			return nil, nil
		},
	})

	_, err := service.ListByUser(context.Background(), "u-1", domain.TransactionFilter{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 200, seen.Limit)

	_, err = service.ListByUser(context.Background(), "u-1", domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 200, seen.Limit)

	_, err = service.ListByUser(context.Background(), "u-1", domain.TransactionFilter{Limit: 25})
	require.NoError(t, err)
	assert.Equal(t, 25, seen.Limit)
}
