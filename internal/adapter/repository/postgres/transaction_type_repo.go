package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/infrastructure/postgres/generated"
	"github.com/iho/walletledger/internal/usecase"
)

// TransactionTypeRepository implements usecase.TransactionTypeRepository.
type TransactionTypeRepository struct{}

// NewTransactionTypeRepository creates a new TransactionTypeRepository.
func NewTransactionTypeRepository() *TransactionTypeRepository {
	return &TransactionTypeRepository{}
}

// GetActiveByName returns the non-deleted type with the given name. Whether
// it is active is left to the caller.
func (r *TransactionTypeRepository) GetActiveByName(ctx context.Context, tx usecase.Transaction, name domain.TransactionTypeName) (*domain.TransactionType, error) {
	row, err := queriesFor(tx).GetTransactionTypeByName(ctx, string(name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionTypeNotFound
		}

		return nil, err
	}

	return rowToTransactionType(row), nil
}

// GetByID returns a type by id.
func (r *TransactionTypeRepository) GetByID(ctx context.Context, tx usecase.Transaction, id int64) (*domain.TransactionType, error) {
	row, err := queriesFor(tx).GetTransactionTypeByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionTypeNotFound
		}

		return nil, err
	}

	return rowToTransactionType(row), nil
}

func rowToTransactionType(row generated.TransactionType) *domain.TransactionType {
	return &domain.TransactionType{
		ID:          row.ID,
		Name:        domain.TransactionTypeName(row.Name),
		Description: row.Description,
		IsActive:    row.IsActive && !row.IsDeleted,
		CreatedAt:   row.CreatedAt.Time,
	}
}
