package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/walletledger/internal/domain"
)

// processRequest carries what a strategy needs once the orchestrator has
// resolved the type and normalized the amount.
type processRequest struct {
	input      CreateTransactionInput
	txType     *domain.TransactionType
	baseAmount int64
}

// strategyFunc validates accounts, moves balances and writes ledger entries
// for one transaction type inside the caller's unit of work.
type strategyFunc func(ctx context.Context, tx Transaction, req processRequest) (*TransactionResult, error)

// strategySet is the closed set of supported transaction strategies.
type strategySet struct {
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	entryRepo       LedgerEntryRepository
	builder         *TransactionRecordBuilder
	baseCurrency    string
	now             func() time.Time
}

// lookup selects the strategy for a type. Types without one (PAYMENT, REFUND,
// FEE, ADJUSTMENT) fail with domain.ErrNoStrategyForType.
func (s *strategySet) lookup(name domain.TransactionTypeName) (strategyFunc, error) {
	switch name {
	case domain.TransactionTypeDeposit:
		return s.deposit, nil
	case domain.TransactionTypeWithdrawal:
		return s.withdrawal, nil
	case domain.TransactionTypeTransfer:
		return s.transfer, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrNoStrategyForType, name)
	}
}

func (s *strategySet) lockActiveAccount(ctx context.Context, tx Transaction, id int64, role string) (*domain.Account, error) {
	account, err := s.accountRepo.GetActiveByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("%s account %d: %w", role, id, err)
	}

	if !account.IsActive() {
		return nil, fmt.Errorf("%s account %d: %w", role, id, domain.ErrAccountNotFound)
	}

	return account, nil
}

func (s *strategySet) createRecord(ctx context.Context, tx Transaction, req processRequest) (*domain.Transaction, error) {
	record, err := s.builder.Build(req.input, req.txType, req.baseAmount)
	if err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (s *strategySet) updateBalances(ctx context.Context, tx Transaction, account *domain.Account, balance, available int64) error {
	now := s.now()

	if err := s.accountRepo.UpdateBalances(ctx, tx, account.ID, balance, available, now); err != nil {
		return err
	}

	account.Balance = balance
	account.AvailableBalance = available
	account.UpdatedAt = now

	return nil
}

// appendEntry writes one ledger row whose balanceAfter is the account's
// already-updated balance.
func (s *strategySet) appendEntry(
	ctx context.Context,
	tx Transaction,
	record *domain.Transaction,
	account *domain.Account,
	entryType domain.EntryType,
	description string,
) (*domain.LedgerEntry, error) {
	entry := &domain.LedgerEntry{
		TransactionID: record.ID,
		AccountID:     account.ID,
		EntryType:     entryType,
		Amount:        record.Amount,
		CurrencyCode:  s.baseCurrency,
		BalanceAfter:  account.Balance,
		Description:   description,
		CreatedAt:     s.now(),
	}

	if err := s.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *strategySet) complete(
	ctx context.Context,
	tx Transaction,
	record *domain.Transaction,
	txType *domain.TransactionType,
	from, to *domain.Account,
	entries []*domain.LedgerEntry,
	message string,
) (*TransactionResult, error) {
	completedAt := s.now()

	if err := s.transactionRepo.MarkCompleted(ctx, tx, record.ID, completedAt); err != nil {
		return nil, err
	}

	record.Complete(completedAt)

	return &TransactionResult{
		Message: message,
		Details: &domain.TransactionDetails{
			Transaction: record,
			Type:        txType,
			FromAccount: from,
			ToAccount:   to,
			Entries:     entries,
		},
	}, nil
}
