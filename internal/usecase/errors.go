package usecase

import (
	"errors"

	"github.com/iho/walletledger/internal/domain"
)

// Error kinds used in logs and metric labels
const (
	ErrorKindInvalidTransactionType = "invalid_transaction_type"
	ErrorKindInvalidRequestShape    = "invalid_request_shape"
	ErrorKindUnsupportedCurrency    = "unsupported_currency"
	ErrorKindAccountNotFound        = "account_not_found"
	ErrorKindAccountHasBalance      = "account_has_balance"
	ErrorKindTransactionNotFound    = "transaction_not_found"
	ErrorKindInsufficientFunds      = "insufficient_funds"
	ErrorKindConflictInFlight       = "conflict_in_flight"
	ErrorKindTransactionFailed      = "transaction_failed"
	ErrorKindStoreTransient         = "store_transient"
	ErrorKindNoStrategyForType      = "no_strategy_for_type"
	ErrorKindValidation             = "validation"
	ErrorKindInternal               = "internal"
)

// ErrorKind classifies err into one of the ErrorKind constants.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrStoreTransient):
		return ErrorKindStoreTransient
	case errors.Is(err, domain.ErrInvalidTransactionType):
		return ErrorKindInvalidTransactionType
	case errors.Is(err, domain.ErrInvalidRequestShape):
		return ErrorKindInvalidRequestShape
	case errors.Is(err, domain.ErrUnsupportedCurrency):
		return ErrorKindUnsupportedCurrency
	case errors.Is(err, domain.ErrAccountNotFound):
		return ErrorKindAccountNotFound
	case errors.Is(err, domain.ErrAccountHasBalance):
		return ErrorKindAccountHasBalance
	case errors.Is(err, domain.ErrTransactionNotFound):
		return ErrorKindTransactionNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return ErrorKindInsufficientFunds
	case errors.Is(err, domain.ErrConflictInFlight):
		return ErrorKindConflictInFlight
	case errors.Is(err, domain.ErrTransactionFailed):
		return ErrorKindTransactionFailed
	case errors.Is(err, domain.ErrNoStrategyForType):
		return ErrorKindNoStrategyForType
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountOverflow),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrInvalidIdempotencyKey),
		errors.Is(err, domain.ErrInvalidReferenceNumber),
		errors.Is(err, domain.ErrInvalidExternalReference),
		errors.Is(err, domain.ErrInvalidInitiator),
		errors.Is(err, domain.ErrMetadataTooLarge):
		return ErrorKindValidation
	default:
		return ErrorKindInternal
	}
}
