package usecase

import (
	"context"
	"fmt"

	"github.com/iho/walletledger/internal/domain"
)

const defaultDepositEntryDescription = "External deposit (ATM/Bank/Cash)"

// deposit credits an external inflow to the destination account.
func (s *strategySet) deposit(ctx context.Context, tx Transaction, req processRequest) (*TransactionResult, error) {
	if req.input.ToAccountID == nil || req.input.FromAccountID != nil {
		return nil, fmt.Errorf("%w: deposit requires toAccountId only", domain.ErrInvalidRequestShape)
	}

	account, err := s.lockActiveAccount(ctx, tx, *req.input.ToAccountID, "destination")
	if err != nil {
		return nil, err
	}

	balance, available, err := account.ApplyCredit(req.baseAmount, s.baseCurrency)
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

	entry, err := s.appendEntry(ctx, tx, record, account, domain.EntryTypeCredit,
		"DEPOSIT - "+withDefault(req.input.Description, defaultDepositEntryDescription))
	if err != nil {
		return nil, err
	}

	return s.complete(ctx, tx, record, req.txType, nil, account, []*domain.LedgerEntry{entry}, MessageDepositProcessed)
}
