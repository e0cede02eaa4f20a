package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/iho/walletledger/internal/domain"
)

// transfer moves funds between two distinct active accounts.
func (s *strategySet) transfer(ctx context.Context, tx Transaction, req processRequest) (*TransactionResult, error) {
	if req.input.FromAccountID == nil || req.input.ToAccountID == nil {
		return nil, fmt.Errorf("%w: transfer requires both fromAccountId and toAccountId", domain.ErrInvalidRequestShape)
	}

	fromID, toID := *req.input.FromAccountID, *req.input.ToAccountID
	if fromID == toID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", domain.ErrInvalidRequestShape)
	}

	// Lock in ascending id order so opposite transfers cannot deadlock
	ids := []int64{fromID, toID}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	accounts, err := s.accountRepo.GetActiveByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Account, len(accounts))
	for _, a := range accounts {
		if a.IsActive() {
			byID[a.ID] = a
		}
	}

	fromAccount, ok := byID[fromID]
	if !ok {
		return nil, fmt.Errorf("source account %d: %w", fromID, domain.ErrAccountNotFound)
	}

	toAccount, ok := byID[toID]
	if !ok {
		return nil, fmt.Errorf("destination account %d: %w", toID, domain.ErrAccountNotFound)
	}

	fromBalance, fromAvailable, err := fromAccount.ApplyDebit(req.baseAmount, s.baseCurrency)
	if err != nil {
		return nil, err
	}

	toBalance, toAvailable, err := toAccount.ApplyCredit(req.baseAmount, s.baseCurrency)
	if err != nil {
		return nil, err
	}

	record, err := s.createRecord(ctx, tx, req)
	if err != nil {
		return nil, err
	}

	// Both balances are updated before either entry records its balanceAfter
	if err := s.updateBalances(ctx, tx, fromAccount, fromBalance, fromAvailable); err != nil {
		return nil, err
	}

	if err := s.updateBalances(ctx, tx, toAccount, toBalance, toAvailable); err != nil {
		return nil, err
	}

	debit, err := s.appendEntry(ctx, tx, record, fromAccount, domain.EntryTypeDebit,
		"TRANSFER OUT - "+withDefault(req.input.Description, "Transfer to account "+toAccount.AccountNumber))
	if err != nil {
		return nil, err
	}

	credit, err := s.appendEntry(ctx, tx, record, toAccount, domain.EntryTypeCredit,
		"TRANSFER IN - "+withDefault(req.input.Description, "Transfer from account "+fromAccount.AccountNumber))
	if err != nil {
		return nil, err
	}

	return s.complete(ctx, tx, record, req.txType, fromAccount, toAccount, []*domain.LedgerEntry{debit, credit}, MessageTransferProcessed)
}
