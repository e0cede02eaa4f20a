package domain

import (
	"fmt"
	"strings"
	"time"
)

// TransactionStatus is the lifecycle state of a transaction record.
type TransactionStatus string

const (
	TransactionStatusProcessing TransactionStatus = "PROCESSING"
	TransactionStatusCompleted  TransactionStatus = "COMPLETED"
	TransactionStatusFailed     TransactionStatus = "FAILED"
)

// TransactionTypeName names a kind of money movement.
type TransactionTypeName string

const (
	TransactionTypeDeposit    TransactionTypeName = "DEPOSIT"
	TransactionTypeWithdrawal TransactionTypeName = "WITHDRAWAL"
	TransactionTypeTransfer   TransactionTypeName = "TRANSFER"
	TransactionTypePayment    TransactionTypeName = "PAYMENT"
	TransactionTypeRefund     TransactionTypeName = "REFUND"
	TransactionTypeFee        TransactionTypeName = "FEE"
	TransactionTypeAdjustment TransactionTypeName = "ADJUSTMENT"

	// DefaultTransactionType is used when a request does not name a type.
	DefaultTransactionType = TransactionTypeTransfer
)

var knownTransactionTypes = map[TransactionTypeName]bool{
	TransactionTypeDeposit:    true,
	TransactionTypeWithdrawal: true,
	TransactionTypeTransfer:   true,
	TransactionTypePayment:    true,
	TransactionTypeRefund:     true,
	TransactionTypeFee:        true,
	TransactionTypeAdjustment: true,
}

// ParseTransactionTypeName normalizes a requested type name. An empty name
// yields DefaultTransactionType.
func ParseTransactionTypeName(name string) (TransactionTypeName, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return DefaultTransactionType, nil
	}

	t := TransactionTypeName(name)
	if !knownTransactionTypes[t] {
		return "", fmt.Errorf("%w: %s", ErrInvalidTransactionType, name)
	}

	return t, nil
}

// TransactionType is reference data describing a transaction kind.
type TransactionType struct {
	CreatedAt   time.Time
	Name        TransactionTypeName
	Description string
	ID          int64
	IsActive    bool
}

// Transaction records one logical money movement. Its status transitions are
// the only mutation it ever sees.
type Transaction struct {
	InitiatedAt          time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	CompletedAt          *time.Time
	FailedAt             *time.Time
	FromAccountID        *int64
	ToAccountID          *int64
	Metadata             map[string]any
	IdempotencyKey       string
	ReferenceNumber      string
	ExternalReference    string
	CurrencyCode         string
	OriginalCurrencyCode string
	Description          string
	Status               TransactionStatus
	ID                   int64
	TypeID               int64
	Amount               int64
	OriginalAmount       int64
	InitiatedBy          int64
}

// IsCompleted reports whether the transaction has been committed with effect.
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// IsProcessing reports whether another attempt owns the transaction.
func (t *Transaction) IsProcessing() bool {
	return t.Status == TransactionStatusProcessing
}

// Complete marks the transaction COMPLETED at the given time.
func (t *Transaction) Complete(at time.Time) {
	t.Status = TransactionStatusCompleted
	t.CompletedAt = &at
	t.UpdatedAt = at
}

// TransactionDetails is a transaction together with everything it touched.
type TransactionDetails struct {
	Transaction *Transaction
	Type        *TransactionType
	FromAccount *Account
	ToAccount   *Account
	Entries     []*LedgerEntry
}
