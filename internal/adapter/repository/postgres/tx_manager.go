package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

type pgxPool interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// ledgerTxOptions is used for every unit of work. Accounts are serialized by
// the FOR UPDATE locks the repositories take, so READ COMMITTED is enough.
var ledgerTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

// TxManager implements usecase.TransactionManager.
type TxManager struct {
	pool pgxPool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool pgxPool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a unit of work. Failures the retrier may recover from are
// wrapped in domain.ErrStoreTransient.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.BeginTx(ctx, ledgerTxOptions)
	if err != nil {
		return nil, classifyTxError("begin", err)
	}

	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction.
type Tx struct {
	tx pgx.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return classifyTxError("commit", err)
	}
	return nil
}

// Rollback rolls back the transaction. Rolling back a committed transaction is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// PgxTx returns the underlying pgx.Tx.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}

func classifyTxError(op string, err error) error {
	if isRetryableError(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreTransient, op, err)
	}
	return fmt.Errorf("%s transaction: %w", op, err)
}
