package usecase

import (
	"context"
	"fmt"

	"github.com/iho/walletledger/internal/domain"
)

const defaultWithdrawalEntryDescription = "External withdrawal (ATM/Cash/Transfer)"

// withdrawal debits an external outflow from the source account.
func (s *strategySet) withdrawal(ctx context.Context, tx Transaction, req processRequest) (*TransactionResult, error) {
	if req.input.FromAccountID == nil || req.input.ToAccountID != nil {
		return nil, fmt.Errorf("%w: withdrawal requires fromAccountId only", domain.ErrInvalidRequestShape)
	}

	account, err := s.lockActiveAccount(ctx, tx, *req.input.FromAccountID, "source")
	if err != nil {
		return nil, err
	}

	balance, available, err := account.ApplyDebit(req.baseAmount, s.baseCurrency)
	if err != nil {
		return nil, err
	}

	record, err := s.createRecord(ctx, tx, req)
	if err != nil {
		return nil, err
	}

	if err := s.updateBalances(ctx, tx, account, balance, available); err != nil {
		return nil, err
	}

	entry, err := s.appendEntry(ctx, tx, record, account, domain.EntryTypeDebit,
		"WITHDRAWAL - "+withDefault(req.input.Description, defaultWithdrawalEntryDescription))
	if err != nil {
		return nil, err
	}

	return s.complete(ctx, tx, record, req.txType, account, nil, []*domain.LedgerEntry{entry}, MessageWithdrawalProcessed)
}
