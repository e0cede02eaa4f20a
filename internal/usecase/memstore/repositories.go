package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store

	GetActiveByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error)
	GetActiveByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error)
	UpdateBalancesFunc          func(ctx context.Context, tx usecase.Transaction, id int64, balance, availableBalance int64, updatedAt time.Time) error
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var (
		account *domain.Account
		err     error
	)
	r.store.read(func(st *state) {
		a, ok := st.accounts[id]
		if !ok {
			err = domain.ErrAccountNotFound
			return
		}
		account = copyAccount(a)
	})
	return account, err
}

func (r *AccountRepository) GetActiveByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Account, error) {
	if r.GetActiveByIDForUpdateFunc != nil {
		return r.GetActiveByIDForUpdateFunc(ctx, tx, id)
	}

	a, ok := working(tx).accounts[id]
	if !ok || !a.IsActive() {
		return nil, domain.ErrAccountNotFound
	}
	return copyAccount(a), nil
}

func (r *AccountRepository) GetActiveByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []int64) ([]*domain.Account, error) {
	if r.GetActiveByIDsForUpdateFunc != nil {
		return r.GetActiveByIDsForUpdateFunc(ctx, tx, ids)
	}

	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	st := working(tx)
	var accounts []*domain.Account
	for _, id := range sorted {
		if a, ok := st.accounts[id]; ok && a.IsActive() {
			accounts = append(accounts, copyAccount(a))
		}
	}
	return accounts, nil
}

func (r *AccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, id int64, balance, availableBalance int64, updatedAt time.Time) error {
	if r.UpdateBalancesFunc != nil {
		return r.UpdateBalancesFunc(ctx, tx, id, balance, availableBalance, updatedAt)
	}

	a, ok := working(tx).accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Balance = balance
	a.AvailableBalance = availableBalance
	a.UpdatedAt = updatedAt
	return nil
}

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store

	CreateFunc              func(ctx context.Context, tx usecase.Transaction, record *domain.Transaction) error
	GetByIdempotencyKeyFunc func(ctx context.Context, tx usecase.Transaction, key string) (*domain.Transaction, error)
}

func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.Transaction) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, tx, record)
	}

	st := working(tx)
	if _, exists := st.byKey[record.IdempotencyKey]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateIdempotencyKey, record.IdempotencyKey)
	}

	st.nextTxID++
	record.ID = st.nextTxID
	st.transactions[record.ID] = copyTransaction(record)
	st.byKey[record.IdempotencyKey] = record.ID
	return nil
}

func (r *TransactionRepository) GetByIdempotencyKey(ctx context.Context, tx usecase.Transaction, key string) (*domain.Transaction, error) {
	if r.GetByIdempotencyKeyFunc != nil {
		return r.GetByIdempotencyKeyFunc(ctx, tx, key)
	}

	st := working(tx)
	id, ok := st.byKey[key]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return copyTransaction(st.transactions[id]), nil
}

func (r *TransactionRepository) MarkCompleted(ctx context.Context, tx usecase.Transaction, id int64, completedAt time.Time) error {
	t, ok := working(tx).transactions[id]
	if !ok {
		return domain.ErrTransactionNotFound
	}
	t.Status = domain.TransactionStatusCompleted
	t.CompletedAt = &completedAt
	t.UpdatedAt = completedAt
	return nil
}

// LedgerEntryRepository implements usecase.LedgerEntryRepository.
type LedgerEntryRepository struct {
	store *Store

	CreateFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
}

func (r *LedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, tx, entry)
	}

	st := working(tx)
	st.nextEntryID++
	entry.ID = st.nextEntryID
	stored := *entry
	st.entries = append(st.entries, &stored)
	return nil
}

func (r *LedgerEntryRepository) ListByTransaction(ctx context.Context, tx usecase.Transaction, transactionID int64) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	for _, e := range working(tx).entries {
		if e.TransactionID == transactionID {
			entry := *e
			entries = append(entries, &entry)
		}
	}
	return entries, nil
}

// TransactionTypeRepository implements usecase.TransactionTypeRepository.
type TransactionTypeRepository struct {
	store *Store
}

// GetActiveByName returns the named type when it exists and is not deleted.
// Activity itself is checked by the caller.
func (r *TransactionTypeRepository) GetActiveByName(ctx context.Context, tx usecase.Transaction, name domain.TransactionTypeName) (*domain.TransactionType, error) {
	st := working(tx)
	for id, t := range st.types {
		if t.Name == name && !st.deletedTypes[id] {
			txType := *t
			return &txType, nil
		}
	}
	return nil, domain.ErrTransactionTypeNotFound
}

func (r *TransactionTypeRepository) GetByID(ctx context.Context, tx usecase.Transaction, id int64) (*domain.TransactionType, error) {
	t, ok := working(tx).types[id]
	if !ok {
		return nil, domain.ErrTransactionTypeNotFound
	}
	txType := *t
	return &txType, nil
}

// OutboxRepository implements usecase.OutboxRepository.
type OutboxRepository struct {
	store *Store

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func (r *OutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if r.CreateFunc != nil {
		return r.CreateFunc(ctx, tx, event)
	}

	stored := *event
	st := working(tx)
	st.outbox = append(st.outbox, &stored)
	return nil
}

func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	var events []*domain.OutboxEvent
	r.store.read(func(st *state) {
		for _, e := range st.outbox {
			if e.Published {
				continue
			}
			if limit > 0 && len(events) == limit {
				return
			}
			event := *e
			events = append(events, &event)
		}
	})
	return events, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	r.store.write(func(st *state) {
		for _, e := range st.outbox {
			if e.ID == id {
				e.Published = true
				e.PublishedAt = &publishedAt
			}
		}
	})
	return nil
}

func (r *OutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	r.store.write(func(st *state) {
		kept := st.outbox[:0]
		for _, e := range st.outbox {
			if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
				continue
			}
			kept = append(kept, e)
		}
		st.outbox = kept
	})
	return nil
}

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store

	PingFunc func(ctx context.Context) error
}

// FindUnbalancedTransactions applies the per-transaction double-entry rule to
// every completed transaction.
func (r *LedgerRepository) FindUnbalancedTransactions(ctx context.Context, limit int) ([]int64, error) {
	var ids []int64
	r.store.read(func(st *state) {
		net := make(map[int64]int64)
		for _, e := range st.entries {
			switch e.EntryType {
			case domain.EntryTypeCredit:
				net[e.TransactionID] += e.Amount
			case domain.EntryTypeDebit:
				net[e.TransactionID] -= e.Amount
			}
		}

		for id := int64(1); id <= st.nextTxID; id++ {
			t, ok := st.transactions[id]
			if !ok || t.Status != domain.TransactionStatusCompleted {
				continue
			}
			if net[id] != expectedNet(t) {
				ids = append(ids, id)
				if limit > 0 && len(ids) == limit {
					return
				}
			}
		}
	})
	return ids, nil
}

func expectedNet(t *domain.Transaction) int64 {
	switch {
	case t.FromAccountID == nil && t.ToAccountID != nil:
		return t.Amount
	case t.FromAccountID != nil && t.ToAccountID == nil:
		return -t.Amount
	default:
		return 0
	}
}

func (r *LedgerRepository) Stats(ctx context.Context) (*usecase.LedgerStats, error) {
	var stats usecase.LedgerStats
	r.store.read(func(st *state) {
		stats = usecase.LedgerStats{
			Accounts:         int64(len(st.accounts)),
			TransactionTypes: int64(len(st.types)),
			Transactions:     int64(len(st.transactions)),
			LedgerEntries:    int64(len(st.entries)),
		}
	})
	return &stats, nil
}

func (r *LedgerRepository) Ping(ctx context.Context) error {
	if r.PingFunc != nil {
		return r.PingFunc(ctx)
	}
	return nil
}

// SoftDeleter implements usecase.SoftDeleter.
type SoftDeleter struct {
	store *Store
}

func (d *SoftDeleter) SoftDelete(ctx context.Context, tx usecase.Transaction, entity string, id int64, deletedAt time.Time) error {
	st := working(tx)

	switch entity {
	case usecase.EntityAccounts:
		a, ok := st.accounts[id]
		if !ok || a.DeletedAt != nil {
			return domain.ErrAccountNotFound
		}
		a.DeletedAt = &deletedAt
		a.Status = domain.AccountStatusClosed
		a.UpdatedAt = deletedAt
	case usecase.EntityTransactionTypes:
		if _, ok := st.types[id]; !ok || st.deletedTypes[id] {
			return domain.ErrTransactionTypeNotFound
		}
		st.deletedTypes[id] = true
	default:
		return fmt.Errorf("memstore: soft delete not supported for %q", entity)
	}

	return nil
}
