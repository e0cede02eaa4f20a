package usecase

import (
	"fmt"
	"maps"
	"time"

	"github.com/iho/walletledger/internal/domain"
)

// Default descriptions stored on the transaction record.
const (
	defaultDepositDescription    = "Deposit transaction"
	defaultWithdrawalDescription = "Withdrawal transaction"
	defaultTransferDescription   = "Transfer transaction"
)

// TransactionRecordBuilder turns a validated request into the record that is persisted.
type TransactionRecordBuilder struct {
	baseCurrency string
	now          func() time.Time
}

// NewTransactionRecordBuilder creates a builder that stamps records with now().
func NewTransactionRecordBuilder(baseCurrency string, now func() time.Time) *TransactionRecordBuilder {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &TransactionRecordBuilder{baseCurrency: baseCurrency, now: now}
}

// Build returns a PROCESSING record for input. Deposits never carry a source
// account and withdrawals never carry a destination; a transfer without both
// ids fails with domain.ErrInvalidRequestShape.
func (b *TransactionRecordBuilder) Build(input CreateTransactionInput, txType *domain.TransactionType, baseAmount int64) (*domain.Transaction, error) {
	now := b.now()

	originalCurrency, err := domain.NormalizeCurrencyCode(input.CurrencyCode)
	if err != nil {
		return nil, err
	}

	record := &domain.Transaction{
		IdempotencyKey:       input.IdempotencyKey,
		ReferenceNumber:      input.ReferenceNumber,
		ExternalReference:    input.ExternalReference,
		TypeID:               txType.ID,
		Amount:               baseAmount,
		CurrencyCode:         b.baseCurrency,
		OriginalAmount:       input.Amount,
		OriginalCurrencyCode: originalCurrency,
		Status:               domain.TransactionStatusProcessing,
		FromAccountID:        copyID(input.FromAccountID),
		ToAccountID:          copyID(input.ToAccountID),
		Description:          input.Description,
		Metadata:             maps.Clone(input.Metadata),
		InitiatedBy:          input.InitiatedBy,
		InitiatedAt:          now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	switch txType.Name {
	case domain.TransactionTypeDeposit:
		record.FromAccountID = nil
		record.Description = withDefault(record.Description, defaultDepositDescription)
	case domain.TransactionTypeWithdrawal:
		record.ToAccountID = nil
		record.Description = withDefault(record.Description, defaultWithdrawalDescription)
	case domain.TransactionTypeTransfer:
		if record.FromAccountID == nil || record.ToAccountID == nil {
			return nil, fmt.Errorf("%w: transfer requires both fromAccountId and toAccountId", domain.ErrInvalidRequestShape)
		}
		record.Description = withDefault(record.Description, defaultTransferDescription)
	}

	return record, nil
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
