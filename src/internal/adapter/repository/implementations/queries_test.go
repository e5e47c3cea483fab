package implementations

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/morago/interpreter-ledger/src/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockAccountsQuery_ComparesUUIDColumn(t *testing.T) {
	assert.Contains(t, lockAccountsQuery, "WHERE id = ANY($1::uuid[])")
	assert.Contains(t, lockAccountsQuery, "ORDER BY id\nFOR UPDATE")
	assert.NotContains(t, lockAccountsQuery, "::text")
}

func TestTransactionAggregateQueries_CompareUUIDColumn(t *testing.T) {
	for _, query := range []string{sumTransactionsQuery, countTransactionsQuery} {
		assert.Contains(t, query, "user_id = $1")
		assert.NotContains(t, query, "::text")
	}
}

func TestListTransactionsQuery(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query, args := listTransactionsQuery("user-1", domain.TransactionFilter{
		Type:   domain.TransactionTypeCallEarning,
		Status: domain.TransactionStatusCompleted,
		From:   &from,
		To:     &to,
		Limit:  20,
		Offset: 40,
	})

	assert.Contains(t, query, "WHERE user_id = $1 AND transaction_type = $2 AND status = $3 AND created_at >= $4 AND created_at < $5")
	assert.Contains(t, query, "ORDER BY created_at DESC, seq DESC LIMIT $6 OFFSET $7")
	assert.NotContains(t, query, "::text")
	assert.Equal(t, []any{"user-1", domain.TransactionTypeCallEarning, domain.TransactionStatusCompleted, from, to, 20, 40}, args)

	query, args = listTransactionsQuery("user-1", domain.TransactionFilter{})
	assert.Contains(t, query, "WHERE user_id = $1\nORDER BY created_at DESC, seq DESC")
	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []any{"user-1"}, args)
}

func TestMigrations_TransactionsCarryInsertionOrder(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "..", "migrations")
	files, err := migrationFiles(dir)
	require.NoError(t, err)
	require.Contains(t, files, "0002_transactions_insertion_order.sql")

	ddl, err := os.ReadFile(filepath.Join(dir, "0002_transactions_insertion_order.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(ddl), "ADD COLUMN IF NOT EXISTS seq BIGSERIAL")
	assert.Contains(t, string(ddl), "SET DEFAULT clock_timestamp()")
}
