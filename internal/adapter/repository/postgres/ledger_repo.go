package postgres

import (
	"context"

	"github.com/iho/walletledger/internal/infrastructure/postgres/generated"
	"github.com/iho/walletledger/internal/usecase"
)

// ledgerDB is satisfied by *pgxpool.Pool.
type ledgerDB interface {
	generated.DBTX
	Ping(ctx context.Context) error
}

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	db      ledgerDB
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db ledgerDB) *LedgerRepository {
	return &LedgerRepository{db: db, queries: generated.New(db)}
}

// FindUnbalancedTransactions returns completed transactions whose entries do
// not net to their effect, lowest id first.
func (r *LedgerRepository) FindUnbalancedTransactions(ctx context.Context, limit int) ([]int64, error) {
	return r.queries.FindUnbalancedTransactions(ctx, int32(limit))
}

// Stats returns the row count of every ledger table.
func (r *LedgerRepository) Stats(ctx context.Context) (*usecase.LedgerStats, error) {
	var (
		stats usecase.LedgerStats
		err   error
	)

	if stats.Accounts, err = r.queries.CountAccounts(ctx); err != nil {
		return nil, err
	}
	if stats.TransactionTypes, err = r.queries.CountTransactionTypes(ctx); err != nil {
		return nil, err
	}
	if stats.Transactions, err = r.queries.CountTransactions(ctx); err != nil {
		return nil, err
	}
	if stats.LedgerEntries, err = r.queries.CountLedgerEntries(ctx); err != nil {
		return nil, err
	}

	return &stats, nil
}

// Ping checks connectivity.
func (r *LedgerRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
