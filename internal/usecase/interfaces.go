package usecase

import (
	"context"
	"time"

	"github.com/iho/walletledger/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	// GetActiveByIDForUpdate locks an ACTIVE, non-deleted account row.
	GetActiveByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Account, error)
	// GetActiveByIDsForUpdate locks ACTIVE accounts in ascending id order.
	GetActiveByIDsForUpdate(ctx context.Context, tx Transaction, ids []int64) ([]*domain.Account, error)
	UpdateBalances(ctx context.Context, tx Transaction, id int64, balance, availableBalance int64, updatedAt time.Time) error
}

// TransactionRepository defines data access for transaction records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, record *domain.Transaction) error
	GetByIdempotencyKey(ctx context.Context, tx Transaction, key string) (*domain.Transaction, error)
	MarkCompleted(ctx context.Context, tx Transaction, id int64, completedAt time.Time) error
}

// LedgerEntryRepository defines data access for ledger entries.
type LedgerEntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	ListByTransaction(ctx context.Context, tx Transaction, transactionID int64) ([]*domain.LedgerEntry, error)
}

// TransactionTypeRepository defines read access to transaction type reference data.
type TransactionTypeRepository interface {
	GetActiveByName(ctx context.Context, tx Transaction, name domain.TransactionTypeName) (*domain.TransactionType, error)
	GetByID(ctx context.Context, tx Transaction, id int64) (*domain.TransactionType, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	FindUnbalancedTransactions(ctx context.Context, limit int) ([]int64, error)
	Stats(ctx context.Context) (*LedgerStats, error)
	Ping(ctx context.Context) error
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// SoftDeleter flags rows as deleted without removing them.
type SoftDeleter interface {
	SoftDelete(ctx context.Context, tx Transaction, entity string, id int64, deletedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs a whole unit of work while it fails for transient reasons.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request did not produce a cacheable response.
	Release(ctx context.Context, key string) error
}

// LedgerStats holds row counts of the ledger tables.
type LedgerStats struct {
	Accounts         int64
	TransactionTypes int64
	Transactions     int64
	LedgerEntries    int64
}

// MetricsRecorder receives engine outcomes for instrumentation.
type MetricsRecorder interface {
	ObserveTransaction(txType, outcome string, duration time.Duration, amount int64)
	TransactionRejected(kind string)
	TransactionRetried()
	TransactionReplayed()
	AccountClosed()
	ResultCacheLookup(hit bool)
}
