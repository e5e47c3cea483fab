package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/morago/interpreter-ledger/src/internal/domain"
)

type txKey struct{}

// Store keeps every ledger table in process memory. A unit of work holds the
// store-wide lock for its whole duration and is rolled back from a snapshot
// when fn fails, which gives the same serialisation as row locks in Postgres.
type Store struct {
	mu           sync.Mutex
	accounts     map[string]domain.Account
	transactions []domain.Transaction
	calls        map[string]domain.CallRecord
	withdrawals  map[string]domain.Withdrawal
	deposits     map[string]domain.Deposit
	now          func() time.Time
}

func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]domain.Account),
		calls:       make(map[string]domain.CallRecord),
		withdrawals: make(map[string]domain.Withdrawal),
		deposits:    make(map[string]domain.Deposit),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(snap)
			panic(p)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(txKey{}).(*Store)
	return ok && owner == s
}

// acquire takes the store lock unless ctx already runs inside this store's
// unit of work.
func (s *Store) acquire(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	accounts     map[string]domain.Account
	transactions []domain.Transaction
	calls        map[string]domain.CallRecord
	withdrawals  map[string]domain.Withdrawal
	deposits     map[string]domain.Deposit
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		accounts:     maps.Clone(s.accounts),
		transactions: s.transactions[:len(s.transactions):len(s.transactions)],
		calls:        maps.Clone(s.calls),
		withdrawals:  maps.Clone(s.withdrawals),
		deposits:     maps.Clone(s.deposits),
	}
}

func (s *Store) restore(snap snapshot) {
	s.accounts = snap.accounts
	s.transactions = snap.transactions
	s.calls = snap.calls
	s.withdrawals = snap.withdrawals
	s.deposits = snap.deposits
}
