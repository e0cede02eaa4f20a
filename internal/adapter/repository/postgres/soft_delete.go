package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/postgres/generated"
	"github.com/iho/walletledger/internal/usecase"
)

// SoftDeleter implements usecase.SoftDeleter for an allow-list of tables.
type SoftDeleter struct{}

// NewSoftDeleter creates a new SoftDeleter.
func NewSoftDeleter() *SoftDeleter {
	return &SoftDeleter{}
}

// SoftDelete flags one row of entity as deleted. Accounts are also CLOSED.
func (d *SoftDeleter) SoftDelete(ctx context.Context, tx usecase.Transaction, entity string, id int64, deletedAt time.Time) error {
	queries := queriesFor(tx)
	at := timeToPgTimestamptz(deletedAt)

	switch entity {
	case usecase.EntityAccounts:
		n, err := queries.SoftDeleteAccount(ctx, generated.SoftDeleteAccountParams{ID: id, DeletedAt: at})
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrAccountNotFound
		}
	case usecase.EntityTransactionTypes:
		n, err := queries.SoftDeleteTransactionType(ctx, generated.SoftDeleteTransactionTypeParams{ID: id, DeletedAt: at})
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrTransactionTypeNotFound
		}
	default:
		return fmt.Errorf("soft delete not supported for %q", entity)
	}

	return nil
}
