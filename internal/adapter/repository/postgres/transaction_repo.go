package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/postgres/generated"
	"github.com/iho/walletledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

// Create inserts a transaction record and sets its ID. A concurrent insert
// of the same idempotency key fails with domain.ErrDuplicateIdempotencyKey.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.Transaction) error {
	metadata, err := marshalJSON(record.Metadata)
	if err != nil {
		return err
	}

	id, err := queriesFor(tx).CreateTransaction(ctx, generated.CreateTransactionParams{
		IdempotencyKey:       record.IdempotencyKey,
		ReferenceNumber:      record.ReferenceNumber,
		ExternalReference:    record.ExternalReference,
		TransactionTypeID:    record.TypeID,
		Amount:               record.Amount,
		CurrencyCode:         record.CurrencyCode,
		OriginalAmount:       record.OriginalAmount,
		OriginalCurrencyCode: record.OriginalCurrencyCode,
		Status:               string(record.Status),
		FromAccountID:        int64PtrToPgInt8(record.FromAccountID),
		ToAccountID:          int64PtrToPgInt8(record.ToAccountID),
		Description:          record.Description,
		Metadata:             metadata,
		InitiatedBy:          record.InitiatedBy,
		InitiatedAt:          timeToPgTimestamptz(record.InitiatedAt),
		CreatedAt:            timeToPgTimestamptz(record.CreatedAt),
		UpdatedAt:            timeToPgTimestamptz(record.UpdatedAt),
	})
	if err != nil {
		if isUniqueViolation(err, constraintIdempotencyKey) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateIdempotencyKey, record.IdempotencyKey)
		}
		return err
	}

	record.ID = id

	return nil
}

// GetByIdempotencyKey reads a record inside the unit of work.
func (r *TransactionRepository) GetByIdempotencyKey(ctx context.Context, tx usecase.Transaction, key string) (*domain.Transaction, error) {
	row, err := queriesFor(tx).GetTransactionByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row)
}

// MarkCompleted moves a record to COMPLETED.
func (r *TransactionRepository) MarkCompleted(ctx context.Context, tx usecase.Transaction, id int64, completedAt time.Time) error {
	return queriesFor(tx).MarkTransactionCompleted(ctx, generated.MarkTransactionCompletedParams{
		ID:          id,
		CompletedAt: timeToPgTimestamptz(completedAt),
	})
}

func rowToTransaction(row generated.Transaction) (*domain.Transaction, error) {
	metadata, err := unmarshalJSON("metadata", row.Metadata)
	if err != nil {
		return nil, fmt.Errorf("transaction %d: %w", row.ID, err)
	}

	return &domain.Transaction{
		ID:                   row.ID,
		IdempotencyKey:       row.IdempotencyKey,
		ReferenceNumber:      row.ReferenceNumber,
		ExternalReference:    row.ExternalReference,
		TypeID:               row.TransactionTypeID,
		Amount:               row.Amount,
		CurrencyCode:         row.CurrencyCode,
		OriginalAmount:       row.OriginalAmount,
		OriginalCurrencyCode: row.OriginalCurrencyCode,
		Status:               domain.TransactionStatus(row.Status),
		FromAccountID:        pgInt8ToPtr(row.FromAccountID),
		ToAccountID:          pgInt8ToPtr(row.ToAccountID),
		Description:          row.Description,
		Metadata:             metadata,
		InitiatedBy:          row.InitiatedBy,
		InitiatedAt:          row.InitiatedAt.Time,
		CompletedAt:          pgTimestamptzToPtr(row.CompletedAt),
		FailedAt:             pgTimestamptzToPtr(row.FailedAt),
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}, nil
}
