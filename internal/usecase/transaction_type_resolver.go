package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/iho/walletledger/internal/domain"
)

// TransactionTypeResolver maps a requested type name to active reference data.
type TransactionTypeResolver struct {
	typeRepo TransactionTypeRepository
}

// NewTransactionTypeResolver creates a new TransactionTypeResolver.
func NewTransactionTypeResolver(typeRepo TransactionTypeRepository) *TransactionTypeResolver {
	return &TransactionTypeResolver{typeRepo: typeRepo}
}

// ResolveActiveType returns the active descriptor for name. Unknown, inactive
// and soft-deleted types all fail with domain.ErrInvalidTransactionType.
func (r *TransactionTypeResolver) ResolveActiveType(ctx context.Context, tx Transaction, name string) (*domain.TransactionType, error) {
	typeName, err := domain.ParseTransactionTypeName(name)
	if err != nil {
		return nil, err
	}

	txType, err := r.typeRepo.GetActiveByName(ctx, tx, typeName)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionTypeNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTransactionType, typeName)
		}
		return nil, err
	}

	if !txType.IsActive {
		return nil, fmt.Errorf("%w: %s is inactive", domain.ErrInvalidTransactionType, typeName)
	}

	return txType, nil
}
