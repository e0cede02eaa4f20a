package usecase

import (
	"fmt"

	"github.com/iho/walletledger/internal/domain"
)

// CreateTransactionInput represents a request to move money.
// Amount is in minor units of CurrencyCode; Type defaults to TRANSFER.
type CreateTransactionInput struct {
	Metadata          map[string]any
	FromAccountID     *int64
	ToAccountID       *int64
	IdempotencyKey    string
	ReferenceNumber   string
	ExternalReference string
	CurrencyCode      string
	Type              string
	Description       string
	Amount            int64
	InitiatedBy       int64
}

// Validate checks the fields that do not depend on stored state.
func (in CreateTransactionInput) Validate() error {
	if err := domain.ValidateIdempotencyKey(in.IdempotencyKey); err != nil {
		return err
	}

	if err := domain.ValidateReferenceNumber(in.ReferenceNumber); err != nil {
		return err
	}

	if err := domain.ValidateExternalReference(in.ExternalReference); err != nil {
		return err
	}

	if err := domain.ValidateAmount(in.Amount); err != nil {
		return err
	}

	if _, err := domain.NormalizeCurrencyCode(in.CurrencyCode); err != nil {
		return err
	}

	if err := domain.ValidateInitiator(in.InitiatedBy); err != nil {
		return err
	}

	return domain.ValidateMetadata(in.Metadata)
}

// ValidateShape enforces which account ids a transaction type may carry.
func ValidateShape(typeName domain.TransactionTypeName, fromAccountID, toAccountID *int64) error {
	if fromAccountID == nil && toAccountID == nil {
		return fmt.Errorf("%w: at least one of fromAccountId or toAccountId must be provided", domain.ErrInvalidRequestShape)
	}

	switch typeName {
	case domain.TransactionTypeDeposit:
		if toAccountID == nil {
			return fmt.Errorf("%w: deposit requires toAccountId", domain.ErrInvalidRequestShape)
		}
		if fromAccountID != nil {
			return fmt.Errorf("%w: deposit must not carry fromAccountId", domain.ErrInvalidRequestShape)
		}
	case domain.TransactionTypeWithdrawal:
		if fromAccountID == nil {
			return fmt.Errorf("%w: withdrawal requires fromAccountId", domain.ErrInvalidRequestShape)
		}
		if toAccountID != nil {
			return fmt.Errorf("%w: withdrawal must not carry toAccountId", domain.ErrInvalidRequestShape)
		}
	case domain.TransactionTypeTransfer:
		if fromAccountID == nil || toAccountID == nil {
			return fmt.Errorf("%w: transfer requires both fromAccountId and toAccountId", domain.ErrInvalidRequestShape)
		}
		if *fromAccountID == *toAccountID {
			return fmt.Errorf("%w: cannot transfer to the same account", domain.ErrInvalidRequestShape)
		}
	}

	return nil
}
