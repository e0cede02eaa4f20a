package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

func TestTransactionRecordBuilder_Build(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	builder := usecase.NewTransactionRecordBuilder("EGP", func() time.Time { return now })

	deposit := &domain.TransactionType{ID: 1, Name: domain.TransactionTypeDeposit, IsActive: true}
	withdrawal := &domain.TransactionType{ID: 2, Name: domain.TransactionTypeWithdrawal, IsActive: true}
	transfer := &domain.TransactionType{ID: 3, Name: domain.TransactionTypeTransfer, IsActive: true}

	t.Run("deposit drops the source account", func(t *testing.T) {
		in := input("b-1", "DEPOSIT", id(9), id(7), 100, "usd")
		in.Metadata = map[string]any{"channel": "atm"}

		record, err := builder.Build(in, deposit, 4817)
		require.NoError(t, err)

		assert.Nil(t, record.FromAccountID)
		require.NotNil(t, record.ToAccountID)
		assert.Equal(t, int64(7), *record.ToAccountID)
		assert.Equal(t, int64(4817), record.Amount)
		assert.Equal(t, "EGP", record.CurrencyCode)
		assert.Equal(t, int64(100), record.OriginalAmount)
		assert.Equal(t, "USD", record.OriginalCurrencyCode)
		assert.Equal(t, domain.TransactionStatusProcessing, record.Status)
		assert.Equal(t, "Deposit transaction", record.Description)
		assert.Equal(t, int64(1), record.TypeID)
		assert.Equal(t, now, record.InitiatedAt)
		assert.Equal(t, "", record.ExternalReference)

		// metadata is copied, not shared
		in.Metadata["channel"] = "mutated"
		assert.Equal(t, "atm", record.Metadata["channel"])
	})

	t.Run("withdrawal drops the destination account", func(t *testing.T) {
		record, err := builder.Build(input("b-2", "WITHDRAWAL", id(3), id(4), 50, "EGP"), withdrawal, 50)
		require.NoError(t, err)

		assert.Nil(t, record.ToAccountID)
		require.NotNil(t, record.FromAccountID)
		assert.Equal(t, int64(3), *record.FromAccountID)
		assert.Equal(t, "Withdrawal transaction", record.Description)
	})

	t.Run("transfer keeps both accounts and a caller description", func(t *testing.T) {
		in := input("b-3", "TRANSFER", id(1), id(2), 10, "EGP")
		in.Description = "lunch"

		record, err := builder.Build(in, transfer, 10)
		require.NoError(t, err)

		assert.Equal(t, int64(1), *record.FromAccountID)
		assert.Equal(t, int64(2), *record.ToAccountID)
		assert.Equal(t, "lunch", record.Description)
	})

	t.Run("transfer without a destination is rejected", func(t *testing.T) {
		_, err := builder.Build(input("b-4", "TRANSFER", id(1), nil, 10, "EGP"), transfer, 10)
		require.ErrorIs(t, err, domain.ErrInvalidRequestShape)
	})
}

func TestValidateShape(t *testing.T) {
	tests := []struct {
		name    string
		typ     domain.TransactionTypeName
		from    *int64
		to      *int64
		wantErr bool
	}{
		{name: "deposit ok", typ: domain.TransactionTypeDeposit, to: id(1)},
		{name: "deposit with from", typ: domain.TransactionTypeDeposit, from: id(2), to: id(1), wantErr: true},
		{name: "deposit without to", typ: domain.TransactionTypeDeposit, from: id(2), wantErr: true},
		{name: "withdrawal ok", typ: domain.TransactionTypeWithdrawal, from: id(1)},
		{name: "withdrawal with to", typ: domain.TransactionTypeWithdrawal, from: id(1), to: id(2), wantErr: true},
		{name: "transfer ok", typ: domain.TransactionTypeTransfer, from: id(1), to: id(2)},
		{name: "transfer missing from", typ: domain.TransactionTypeTransfer, to: id(2), wantErr: true},
		{name: "transfer same account", typ: domain.TransactionTypeTransfer, from: id(3), to: id(3), wantErr: true},
		{name: "no ids", typ: domain.TransactionTypeTransfer, wantErr: true},
		{name: "payment with one id", typ: domain.TransactionTypePayment, from: id(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := usecase.ValidateShape(tt.typ, tt.from, tt.to)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidRequestShape)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCreateTransactionInput_Validate(t *testing.T) {
	valid := input("v-1", "DEPOSIT", nil, id(1), 10, "EGP")
	require.NoError(t, valid.Validate())

	missingKey := valid
	missingKey.IdempotencyKey = ""
	require.ErrorIs(t, missingKey.Validate(), domain.ErrInvalidIdempotencyKey)

	negative := valid
	negative.Amount = -5
	require.ErrorIs(t, negative.Validate(), domain.ErrInvalidAmount)

	noInitiator := valid
	noInitiator.InitiatedBy = 0
	require.ErrorIs(t, noInitiator.Validate(), domain.ErrInvalidInitiator)
}
