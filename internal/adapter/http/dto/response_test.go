package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

func TestTransactionDetailsFromDomain(t *testing.T) {
	now := time.Now().UTC()
	to := int64(2)
	details := &domain.TransactionDetails{
		Transaction: &domain.Transaction{
			ID:                   11,
			IdempotencyKey:       "key-1",
			Amount:               481700,
			CurrencyCode:         "EGP",
			OriginalAmount:       10000,
			OriginalCurrencyCode: "USD",
			Status:               domain.TransactionStatusCompleted,
			ToAccountID:          &to,
			InitiatedAt:          now,
			CompletedAt:          &now,
		},
		Type:      &domain.TransactionType{ID: 1, Name: domain.TransactionTypeDeposit},
		ToAccount: &domain.Account{ID: 2, AccountNumber: "ACC-0002", Balance: 481700, Status: domain.AccountStatusActive},
		Entries: []*domain.LedgerEntry{
			{ID: 1, AccountID: 2, EntryType: domain.EntryTypeCredit, Amount: 481700, BalanceAfter: 481700},
		},
	}

	resp := TransactionDetailsFromDomain(details)
	if resp.Type != "DEPOSIT" || resp.Amount != 481700 || resp.OriginalCurrencyCode != "USD" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.FromAccount != nil || resp.ToAccount == nil || resp.ToAccount.AccountNumber != "ACC-0002" {
		t.Fatalf("unexpected accounts: from=%+v to=%+v", resp.FromAccount, resp.ToAccount)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].EntryType != "CREDIT" {
		t.Fatalf("unexpected entries: %+v", resp.Entries)
	}

	wrapped := TransactionResultFromUseCase(&usecase.TransactionResult{Details: details, Message: usecase.MessageDepositProcessed})
	if wrapped.Message != usecase.MessageDepositProcessed || wrapped.Transaction.ID != 11 {
		t.Fatalf("unexpected wrapped response: %+v", wrapped)
	}
}

func TestTransactionDetailsFromDomainNil(t *testing.T) {
	if TransactionDetailsFromDomain(nil) != nil {
		t.Fatalf("expected nil for nil details")
	}
}

func TestCloseAccountsFromResults(t *testing.T) {
	resp := CloseAccountsFromResults([]int64{1, 2}, []error{nil, errors.New("still holds a balance")})

	if len(resp.Results) != 2 {
		t.Fatalf("expected two results, got %d", len(resp.Results))
	}
	if !resp.Results[0].Closed || resp.Results[0].Error != "" {
		t.Fatalf("unexpected first result: %+v", resp.Results[0])
	}
	if resp.Results[1].Closed || resp.Results[1].Error == "" {
		t.Fatalf("unexpected second result: %+v", resp.Results[1])
	}
}

func TestConsistencyFromReport(t *testing.T) {
	resp := ConsistencyFromReport(&usecase.ConsistencyReport{UnbalancedTransactionIDs: []int64{4}, Consistent: false})
	if resp.Status != "inconsistent" || resp.Consistent || len(resp.UnbalancedTransactionIDs) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
