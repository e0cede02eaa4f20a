package usecase

import (
	"context"
	"errors"
	"fmt"
)

// MaxReportedUnbalanced caps the transaction ids returned by CheckConsistency.
const MaxReportedUnbalanced = 100

var (
	// ErrInconsistentLedger is returned when a completed transaction's entries
	// do not net to its effect.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: entries do not match transaction amounts")
)

// ConsistencyReport lists transactions whose entries fail the double-entry check.
type ConsistencyReport struct {
	UnbalancedTransactionIDs []int64 `json:"unbalanced_transaction_ids"`
	Consistent               bool    `json:"consistent"`
}

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckConsistency verifies every completed transaction: credits minus debits
// must equal the amount for deposits, minus the amount for withdrawals and
// zero for transfers. An inconsistent ledger returns the report together with
// ErrInconsistentLedger.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	ids, err := uc.ledgerRepo.FindUnbalancedTransactions(ctx, MaxReportedUnbalanced)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		UnbalancedTransactionIDs: ids,
		Consistent:               len(ids) == 0,
	}
	if report.UnbalancedTransactionIDs == nil {
		report.UnbalancedTransactionIDs = []int64{}
	}

	if !report.Consistent {
		return report, fmt.Errorf("%w: %d transaction(s)", ErrInconsistentLedger, len(ids))
	}

	return report, nil
}

// DBHealth pings the store and returns table counts.
func (uc *LedgerUseCase) DBHealth(ctx context.Context) (*LedgerStats, error) {
	if err := uc.ledgerRepo.Ping(ctx); err != nil {
		return nil, err
	}

	return uc.ledgerRepo.Stats(ctx)
}
