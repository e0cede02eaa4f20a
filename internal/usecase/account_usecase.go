package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/iho/walletledger/internal/domain"
)

// AccountUseCase handles account reads and closing.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	softDeleter SoftDeleter
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     MetricsRecorder
	now         func() time.Time
	batchSize   int
}

// AccountUseCaseConfig holds the collaborators of AccountUseCase.
// OutboxRepo and Metrics are optional.
type AccountUseCaseConfig struct {
	TxManager   TransactionManager
	AccountRepo AccountRepository
	SoftDeleter SoftDeleter
	OutboxRepo  OutboxRepository
	IDGen       IDGenerator
	Metrics     MetricsRecorder
	Now         func() time.Time
	BatchSize   int
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(cfg AccountUseCaseConfig) *AccountUseCase {
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	recorder := cfg.Metrics
	if recorder == nil {
		recorder = nopMetrics{}
	}

	return &AccountUseCase{
		txManager:   cfg.TxManager,
		accountRepo: cfg.AccountRepo,
		softDeleter: cfg.SoftDeleter,
		outboxRepo:  cfg.OutboxRepo,
		idGen:       cfg.IDGen,
		metrics:     recorder,
		now:         now,
		batchSize:   cfg.BatchSize,
	}
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// CloseAccount soft-deletes one account with a zero balance.
func (uc *AccountUseCase) CloseAccount(ctx context.Context, id int64) error {
	return uc.CloseAccounts(ctx, []int64{id})[0]
}

// CloseAccounts closes each account in its own unit of work and returns one
// result per id, in order. A failure never stops the remaining closes.
func (uc *AccountUseCase) CloseAccounts(ctx context.Context, ids []int64) []error {
	operations := make([]Operation, len(ids))
	for i, id := range ids {
		id := id
		operations[i] = func(ctx context.Context) error {
			return uc.closeAccount(ctx, id)
		}
	}

	return BatchExecute(ctx, operations, uc.batchSize)
}

func (uc *AccountUseCase) closeAccount(ctx context.Context, id int64) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetActiveByIDForUpdate(ctx, tx, id)
	if err != nil {
		return fmt.Errorf("account %d: %w", id, err)
	}

	if account.Balance != 0 || account.AvailableBalance != 0 {
		return fmt.Errorf("account %d: %w", id, domain.ErrAccountHasBalance)
	}

	closedAt := uc.now()

	if err := uc.softDeleter.SoftDelete(ctx, tx, EntityAccounts, id, closedAt); err != nil {
		return err
	}

	if uc.outboxRepo != nil {
		event := domain.AccountClosedEvent{
			AccountID:     account.ID,
			AccountNumber: account.AccountNumber,
			ClosedAt:      closedAt.Format(time.RFC3339Nano),
		}

		if err := uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   strconv.FormatInt(account.ID, 10),
			AggregateType: domain.AggregateTypeAccount,
			EventType:     domain.EventTypeAccountClosed,
			Payload: map[string]any{
				"account_id":     event.AccountID,
				"account_number": event.AccountNumber,
				"closed_at":      event.ClosedAt,
			},
			CreatedAt: closedAt,
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.metrics.AccountClosed()

	return nil
}
