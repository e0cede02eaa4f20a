package postgres

import (
	"context"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/postgres/generated"
	"github.com/iho/walletledger/internal/usecase"
)

// LedgerEntryRepository implements usecase.LedgerEntryRepository.
type LedgerEntryRepository struct{}

// NewLedgerEntryRepository creates a new LedgerEntryRepository.
func NewLedgerEntryRepository() *LedgerEntryRepository {
	return &LedgerEntryRepository{}
}

// Create appends a ledger entry and sets its ID.
func (r *LedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	id, err := queriesFor(tx).CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		TransactionID: entry.TransactionID,
		AccountID:     entry.AccountID,
		EntryType:     string(entry.EntryType),
		Amount:        entry.Amount,
		CurrencyCode:  entry.CurrencyCode,
		BalanceAfter:  entry.BalanceAfter,
		Description:   entry.Description,
		CreatedAt:     timeToPgTimestamptz(entry.CreatedAt),
	})
	if err != nil {
		return err
	}

	entry.ID = id

	return nil
}

// ListByTransaction returns a transaction's entries in insertion order.
func (r *LedgerEntryRepository) ListByTransaction(ctx context.Context, tx usecase.Transaction, transactionID int64) ([]*domain.LedgerEntry, error) {
	rows, err := queriesFor(tx).ListLedgerEntriesByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &domain.LedgerEntry{
			ID:            row.ID,
			TransactionID: row.TransactionID,
			AccountID:     row.AccountID,
			EntryType:     domain.EntryType(row.EntryType),
			Amount:        row.Amount,
			CurrencyCode:  row.CurrencyCode,
			BalanceAfter:  row.BalanceAfter,
			Description:   row.Description,
			CreatedAt:     row.CreatedAt.Time,
		})
	}

	return entries, nil
}
