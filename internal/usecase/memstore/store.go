// Package memstore is an in-memory ledger store for tests. Units of work are
// serialized and operate on a private copy of the committed state, so a
// rollback or failed commit leaves no trace.
package memstore

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

// ErrTxDone is returned when a finished unit of work is committed again.
var ErrTxDone = errors.New("memstore: transaction already committed or rolled back")

type state struct {
	accounts     map[int64]*domain.Account
	transactions map[int64]*domain.Transaction
	byKey        map[string]int64
	entries      []*domain.LedgerEntry
	types        map[int64]*domain.TransactionType
	deletedTypes map[int64]bool
	outbox       []*domain.OutboxEvent
	nextTxID     int64
	nextEntryID  int64
	nextAcctID   int64
}

func newState() *state {
	return &state{
		accounts:     make(map[int64]*domain.Account),
		transactions: make(map[int64]*domain.Transaction),
		byKey:        make(map[string]int64),
		types:        make(map[int64]*domain.TransactionType),
		deletedTypes: make(map[int64]bool),
	}
}

func (s *state) clone() *state {
	c := &state{
		accounts:     make(map[int64]*domain.Account, len(s.accounts)),
		transactions: make(map[int64]*domain.Transaction, len(s.transactions)),
		byKey:        maps.Clone(s.byKey),
		entries:      make([]*domain.LedgerEntry, len(s.entries)),
		types:        make(map[int64]*domain.TransactionType, len(s.types)),
		deletedTypes: maps.Clone(s.deletedTypes),
		outbox:       make([]*domain.OutboxEvent, len(s.outbox)),
		nextTxID:     s.nextTxID,
		nextEntryID:  s.nextEntryID,
		nextAcctID:   s.nextAcctID,
	}

	for id, a := range s.accounts {
		c.accounts[id] = copyAccount(a)
	}
	for id, t := range s.transactions {
		c.transactions[id] = copyTransaction(t)
	}
	for i, e := range s.entries {
		entry := *e
		c.entries[i] = &entry
	}
	for id, t := range s.types {
		txType := *t
		c.types[id] = &txType
	}
	for i, e := range s.outbox {
		event := *e
		c.outbox[i] = &event
	}

	return c
}

// Store holds the committed state and the repository views over it.
type Store struct {
	txLock    sync.Mutex
	mu        sync.RWMutex
	committed *state

	Accounts     *AccountRepository
	Transactions *TransactionRepository
	Entries      *LedgerEntryRepository
	Types        *TransactionTypeRepository
	Outbox       *OutboxRepository
	Ledger       *LedgerRepository
	SoftDeleter  *SoftDeleter

	// BeginFunc and CommitFunc inject failures into the unit of work.
	BeginFunc  func(ctx context.Context) error
	CommitFunc func(ctx context.Context) error
}

// New creates an empty store seeded with the standard transaction types.
func New() *Store {
	s := &Store{committed: newState()}

	s.Accounts = &AccountRepository{store: s}
	s.Transactions = &TransactionRepository{store: s}
	s.Entries = &LedgerEntryRepository{store: s}
	s.Types = &TransactionTypeRepository{store: s}
	s.Outbox = &OutboxRepository{store: s}
	s.Ledger = &LedgerRepository{store: s}
	s.SoftDeleter = &SoftDeleter{store: s}

	for _, t := range DefaultTransactionTypes() {
		s.committed.types[t.ID] = t
	}

	return s
}

// DefaultTransactionTypes mirrors the seeded reference data.
func DefaultTransactionTypes() []*domain.TransactionType {
	return []*domain.TransactionType{
		{ID: 1, Name: domain.TransactionTypeDeposit, Description: "Deposit funds", IsActive: true},
		{ID: 2, Name: domain.TransactionTypeWithdrawal, Description: "Withdraw funds", IsActive: true},
		{ID: 3, Name: domain.TransactionTypeTransfer, Description: "Transfer between accounts", IsActive: true},
		{ID: 4, Name: domain.TransactionTypePayment, Description: "Payment", IsActive: false},
		{ID: 5, Name: domain.TransactionTypeRefund, Description: "Refund", IsActive: false},
		{ID: 6, Name: domain.TransactionTypeFee, Description: "Fee", IsActive: false},
		{ID: 7, Name: domain.TransactionTypeAdjustment, Description: "Adjustment", IsActive: false},
	}
}

// Begin starts a unit of work. Units of work run one at a time.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	if s.BeginFunc != nil {
		if err := s.BeginFunc(ctx); err != nil {
			return nil, err
		}
	}

	s.txLock.Lock()

	s.mu.RLock()
	working := s.committed.clone()
	s.mu.RUnlock()

	return &Tx{store: s, working: working}, nil
}

// Tx is a unit of work over a private copy of the state.
type Tx struct {
	store   *Store
	working *state
	done    bool
}

// Commit publishes the working copy.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}

	if t.store.CommitFunc != nil {
		if err := t.store.CommitFunc(ctx); err != nil {
			t.finish()
			return err
		}
	}

	t.store.mu.Lock()
	t.store.committed = t.working
	t.store.mu.Unlock()

	t.finish()
	return nil
}

// Rollback discards the working copy. It is a no-op after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.finish()
	return nil
}

func (t *Tx) finish() {
	t.done = true
	t.store.txLock.Unlock()
}

func working(tx usecase.Transaction) *state {
	return tx.(*Tx).working
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.committed)
}

func (s *Store) write(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.committed)
}

// SeedAccount stores a copy of account directly in the committed state and
// returns it with its assigned id.
func (s *Store) SeedAccount(account domain.Account) *domain.Account {
	var seeded *domain.Account
	s.write(func(st *state) {
		if account.ID == 0 {
			st.nextAcctID++
			account.ID = st.nextAcctID
		} else if account.ID > st.nextAcctID {
			st.nextAcctID = account.ID
		}
		if account.Status == "" {
			account.Status = domain.AccountStatusActive
		}
		st.accounts[account.ID] = copyAccount(&account)
		seeded = copyAccount(&account)
	})
	return seeded
}

// SeedTransactionType replaces or adds a transaction type.
func (s *Store) SeedTransactionType(txType domain.TransactionType) {
	s.write(func(st *state) {
		st.types[txType.ID] = &txType
	})
}

// SeedTransaction stores a record as-is, e.g. to simulate a PROCESSING key.
func (s *Store) SeedTransaction(record domain.Transaction) *domain.Transaction {
	var seeded *domain.Transaction
	s.write(func(st *state) {
		if record.ID == 0 {
			st.nextTxID++
			record.ID = st.nextTxID
		}
		st.transactions[record.ID] = copyTransaction(&record)
		st.byKey[record.IdempotencyKey] = record.ID
		seeded = copyTransaction(&record)
	})
	return seeded
}

// SeedEntry stores a ledger entry as-is.
func (s *Store) SeedEntry(entry domain.LedgerEntry) {
	s.write(func(st *state) {
		st.nextEntryID++
		entry.ID = st.nextEntryID
		st.entries = append(st.entries, &entry)
	})
}

// Account returns a snapshot of a committed account.
func (s *Store) Account(id int64) (domain.Account, bool) {
	var (
		account domain.Account
		ok      bool
	)
	s.read(func(st *state) {
		if a, found := st.accounts[id]; found {
			account, ok = *copyAccount(a), true
		}
	})
	return account, ok
}

// TransactionRecords returns committed transactions ordered by id.
func (s *Store) TransactionRecords() []domain.Transaction {
	var out []domain.Transaction
	s.read(func(st *state) {
		for id := int64(1); id <= st.nextTxID; id++ {
			if t, ok := st.transactions[id]; ok {
				out = append(out, *copyTransaction(t))
			}
		}
	})
	return out
}

// LedgerEntries returns committed ledger entries in insertion order.
func (s *Store) LedgerEntries() []domain.LedgerEntry {
	var out []domain.LedgerEntry
	s.read(func(st *state) {
		for _, e := range st.entries {
			out = append(out, *e)
		}
	})
	return out
}

// OutboxEvents returns committed outbox events in insertion order.
func (s *Store) OutboxEvents() []domain.OutboxEvent {
	var out []domain.OutboxEvent
	s.read(func(st *state) {
		for _, e := range st.outbox {
			out = append(out, *e)
		}
	})
	return out
}

func copyAccount(a *domain.Account) *domain.Account {
	c := *a
	if a.DeletedAt != nil {
		deletedAt := *a.DeletedAt
		c.DeletedAt = &deletedAt
	}
	return &c
}

func copyTransaction(t *domain.Transaction) *domain.Transaction {
	c := *t
	c.FromAccountID = copyID(t.FromAccountID)
	c.ToAccountID = copyID(t.ToAccountID)
	c.Metadata = maps.Clone(t.Metadata)
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		c.CompletedAt = &completedAt
	}
	if t.FailedAt != nil {
		failedAt := *t.FailedAt
		c.FailedAt = &failedAt
	}
	return &c
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
