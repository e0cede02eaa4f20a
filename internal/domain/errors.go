package domain

import "errors"

var (
	// Request errors
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidRequestShape    = errors.New("invalid request shape")
	ErrUnsupportedCurrency    = errors.New("unsupported currency")
	ErrNoStrategyForType      = errors.New("no strategy found for transaction type")

	// Account errors
	ErrAccountNotFound   = errors.New("account not found or inactive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAccountHasBalance = errors.New("account still holds a balance")

	// Transaction errors
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrTransactionTypeNotFound = errors.New("transaction type not found")
	ErrConflictInFlight        = errors.New("transaction is already being processed")
	ErrTransactionFailed       = errors.New("transaction with this idempotency key has failed")
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

	// Store errors
	ErrStoreTransient = errors.New("transient store failure")

	// Money errors
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrAmountOverflow   = errors.New("amount overflows minor-unit range")
	ErrCurrencyMismatch = errors.New("cannot combine amounts in different currencies")
)
