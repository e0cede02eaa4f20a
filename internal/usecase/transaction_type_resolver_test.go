package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
	"github.com/iho/walletledger/internal/usecase/mocks"
)

func TestTransactionTypeResolver_ResolveActiveType(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the name and returns the active type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockTransactionTypeRepository(ctrl)
		tx := mocks.NewMockTransaction(ctrl)

		want := &domain.TransactionType{ID: 1, Name: domain.TransactionTypeDeposit, IsActive: true}
		repo.EXPECT().GetActiveByName(ctx, tx, domain.TransactionTypeDeposit).Return(want, nil)

		got, err := usecase.NewTransactionTypeResolver(repo).ResolveActiveType(ctx, tx, " deposit ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("empty name resolves TRANSFER", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockTransactionTypeRepository(ctrl)

		repo.EXPECT().
			GetActiveByName(ctx, gomock.Any(), domain.TransactionTypeTransfer).
			Return(&domain.TransactionType{ID: 3, Name: domain.TransactionTypeTransfer, IsActive: true}, nil)

		got, err := usecase.NewTransactionTypeResolver(repo).ResolveActiveType(ctx, nil, "")
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionTypeTransfer, got.Name)
	})

	t.Run("unknown names never reach the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockTransactionTypeRepository(ctrl)

		_, err := usecase.NewTransactionTypeResolver(repo).ResolveActiveType(ctx, nil, "CHARGEBACK")
		require.ErrorIs(t, err, domain.ErrInvalidTransactionType)
	})

	t.Run("missing row is an invalid type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockTransactionTypeRepository(ctrl)

		repo.EXPECT().
			GetActiveByName(ctx, gomock.Any(), domain.TransactionTypeRefund).
			Return(nil, domain.ErrTransactionTypeNotFound)

		_, err := usecase.NewTransactionTypeResolver(repo).ResolveActiveType(ctx, nil, "REFUND")
		require.ErrorIs(t, err, domain.ErrInvalidTransactionType)
	})

	t.Run("inactive type is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockTransactionTypeRepository(ctrl)

		repo.EXPECT().
			GetActiveByName(ctx, gomock.Any(), domain.TransactionTypeFee).
			Return(&domain.TransactionType{ID: 6, Name: domain.TransactionTypeFee}, nil)

		_, err := usecase.NewTransactionTypeResolver(repo).ResolveActiveType(ctx, nil, "FEE")
		require.ErrorIs(t, err, domain.ErrInvalidTransactionType)
	})

	t.Run("store errors pass through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockTransactionTypeRepository(ctrl)
		storeErr := errors.New("connection refused")

		repo.EXPECT().GetActiveByName(ctx, gomock.Any(), gomock.Any()).Return(nil, storeErr)

		_, err := usecase.NewTransactionTypeResolver(repo).ResolveActiveType(ctx, nil, "DEPOSIT")
		require.ErrorIs(t, err, storeErr)
	})
}
