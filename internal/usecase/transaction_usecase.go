package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/walletledger/internal/domain"
)

const resultCacheKeyPrefix = "transaction:result:"

// Metric outcome labels
const (
	outcomeCompleted = "completed"
	outcomeReplayed  = "replayed"
	outcomeRejected  = "rejected"
)

// TransactionResult is what CreateTransaction returns to the caller.
type TransactionResult struct {
	Details  *domain.TransactionDetails `json:"details"`
	Message  string                     `json:"message"`
	Replayed bool                       `json:"replayed"`
}

// TransactionUseCaseConfig holds the collaborators of TransactionUseCase.
// ResultCache, Metrics and OutboxRepo are optional.
type TransactionUseCaseConfig struct {
	TxManager       TransactionManager
	AccountRepo     AccountRepository
	TransactionRepo TransactionRepository
	EntryRepo       LedgerEntryRepository
	TypeRepo        TransactionTypeRepository
	OutboxRepo      OutboxRepository
	Converter       *CurrencyConverter
	Retrier         Retrier
	IDGen           IDGenerator
	ResultCache     Cache
	Metrics         MetricsRecorder
	Logger          zerolog.Logger
	Now             func() time.Time
	TxTimeout       time.Duration
	ResultCacheTTL  time.Duration
}

// TransactionUseCase orchestrates idempotent money movements. Every call runs
// the idempotency check, type resolution, shape validation, conversion,
// strategy dispatch and commit as one unit of work, retried as a whole.
type TransactionUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	entryRepo       LedgerEntryRepository
	typeRepo        TransactionTypeRepository
	outboxRepo      OutboxRepository
	resolver        *TransactionTypeResolver
	converter       *CurrencyConverter
	strategies      *strategySet
	retrier         Retrier
	idGen           IDGenerator
	resultCache     Cache
	metrics         MetricsRecorder
	logger          zerolog.Logger
	now             func() time.Time
	txTimeout       time.Duration
	resultCacheTTL  time.Duration
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(cfg TransactionUseCaseConfig) *TransactionUseCase {
	now := cfg.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	txTimeout := cfg.TxTimeout
	if txTimeout <= 0 {
		txTimeout = DefaultTransactionTimeout
	}

	resultCacheTTL := cfg.ResultCacheTTL
	if resultCacheTTL <= 0 {
		resultCacheTTL = ResultCacheTTL
	}

	recorder := cfg.Metrics
	if recorder == nil {
		recorder = nopMetrics{}
	}

	base := cfg.Converter.Base()

	return &TransactionUseCase{
		txManager:       cfg.TxManager,
		accountRepo:     cfg.AccountRepo,
		transactionRepo: cfg.TransactionRepo,
		entryRepo:       cfg.EntryRepo,
		typeRepo:        cfg.TypeRepo,
		outboxRepo:      cfg.OutboxRepo,
		resolver:        NewTransactionTypeResolver(cfg.TypeRepo),
		converter:       cfg.Converter,
		strategies: &strategySet{
			accountRepo:     cfg.AccountRepo,
			transactionRepo: cfg.TransactionRepo,
			entryRepo:       cfg.EntryRepo,
			builder:         NewTransactionRecordBuilder(base, now),
			baseCurrency:    base,
			now:             now,
		},
		retrier:        cfg.Retrier,
		idGen:          cfg.IDGen,
		resultCache:    cfg.ResultCache,
		metrics:        recorder,
		logger:         cfg.Logger,
		now:            now,
		txTimeout:      txTimeout,
		resultCacheTTL: resultCacheTTL,
	}
}

// CreateTransaction applies input at most once per idempotency key. A key
// whose transaction already completed returns the stored record with
// Replayed set and no new effect.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*TransactionResult, error) {
	started := time.Now()
	label := typeLabel(input.Type)

	if err := input.Validate(); err != nil {
		uc.reject(input, label, started, err)
		return nil, err
	}

	if cached := uc.cachedResult(ctx, input.IdempotencyKey); cached != nil {
		uc.metrics.TransactionReplayed()
		uc.metrics.ObserveTransaction(label, outcomeReplayed, time.Since(started), 0)
		uc.logger.Debug().
			Str("idempotency_key", input.IdempotencyKey).
			Msg("transaction replayed from result cache")
		return cached, nil
	}

	var (
		result  *TransactionResult
		attempt int
	)

	err := uc.retrier.Retry(ctx, func() error {
		attempt++
		if attempt > 1 {
			uc.metrics.TransactionRetried()
			uc.logger.Warn().
				Str("idempotency_key", input.IdempotencyKey).
				Int("attempt", attempt).
				Msg("retrying transaction after transient store error")
		}

		r, err := uc.execute(ctx, input)
		if err != nil {
			return err
		}

		result = r
		return nil
	})
	if err != nil {
		uc.reject(input, label, started, err)
		return nil, err
	}

	if result.Replayed {
		uc.metrics.TransactionReplayed()
		uc.metrics.ObserveTransaction(label, outcomeReplayed, time.Since(started), 0)
		uc.logger.Debug().
			Str("idempotency_key", input.IdempotencyKey).
			Msg("transaction already completed")
	} else {
		record := result.Details.Transaction
		label = string(result.Details.Type.Name)
		uc.metrics.ObserveTransaction(label, outcomeCompleted, time.Since(started), record.Amount)
		uc.logger.Info().
			Int64("transaction_id", record.ID).
			Str("type", label).
			Int64("amount", record.Amount).
			Str("currency", record.CurrencyCode).
			Str("idempotency_key", record.IdempotencyKey).
			Msg("transaction completed")
	}

	uc.cacheResult(ctx, input.IdempotencyKey, result)

	return result, nil
}

// GetTransaction loads a stored transaction with its type, accounts and entries.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, idempotencyKey string) (*domain.TransactionDetails, error) {
	if err := domain.ValidateIdempotencyKey(idempotencyKey); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	record, err := uc.transactionRepo.GetByIdempotencyKey(ctx, tx, idempotencyKey)
	if err != nil {
		return nil, err
	}

	return uc.loadDetails(ctx, tx, record)
}

func (uc *TransactionUseCase) execute(ctx context.Context, input CreateTransactionInput) (*TransactionResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, uc.txTimeout)
	defer cancel()

	// 1. Begin the unit of work
	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	// 2. Idempotency check
	existing, err := uc.transactionRepo.GetByIdempotencyKey(txCtx, tx, input.IdempotencyKey)
	switch {
	case err == nil:
		return uc.replay(txCtx, tx, existing)
	case !errors.Is(err, domain.ErrTransactionNotFound):
		return nil, err
	}

	// 3. Resolve the active transaction type
	txType, err := uc.resolver.ResolveActiveType(txCtx, tx, input.Type)
	if err != nil {
		return nil, err
	}

	// 4. Validate which accounts the type may carry
	if err := ValidateShape(txType.Name, input.FromAccountID, input.ToAccountID); err != nil {
		return nil, err
	}

	// 5. Convert to the base currency
	baseAmount, err := uc.converter.Convert(input.Amount, input.CurrencyCode)
	if err != nil {
		return nil, err
	}

	// 6. Dispatch to the strategy
	strategy, err := uc.strategies.lookup(txType.Name)
	if err != nil {
		return nil, err
	}

	result, err := strategy(txCtx, tx, processRequest{
		input:      input,
		txType:     txType,
		baseAmount: baseAmount,
	})
	if err != nil {
		return nil, err
	}

	// 7. Record the outbox event in the same unit of work
	if err := uc.writeCompletedEvent(txCtx, tx, result.Details); err != nil {
		return nil, err
	}

	// 8. Commit
	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *TransactionUseCase) replay(ctx context.Context, tx Transaction, existing *domain.Transaction) (*TransactionResult, error) {
	switch existing.Status {
	case domain.TransactionStatusCompleted:
		details, err := uc.loadDetails(ctx, tx, existing)
		if err != nil {
			return nil, err
		}
		return &TransactionResult{
			Message:  MessageAlreadyCompleted,
			Details:  details,
			Replayed: true,
		}, nil
	case domain.TransactionStatusFailed:
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionFailed, existing.IdempotencyKey)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrConflictInFlight, existing.IdempotencyKey)
	}
}

func (uc *TransactionUseCase) loadDetails(ctx context.Context, tx Transaction, record *domain.Transaction) (*domain.TransactionDetails, error) {
	details := &domain.TransactionDetails{Transaction: record}

	txType, err := uc.typeRepo.GetByID(ctx, tx, record.TypeID)
	if err != nil {
		return nil, err
	}
	details.Type = txType

	if record.FromAccountID != nil {
		if details.FromAccount, err = uc.accountRepo.GetByID(ctx, *record.FromAccountID); err != nil {
			return nil, err
		}
	}

	if record.ToAccountID != nil {
		if details.ToAccount, err = uc.accountRepo.GetByID(ctx, *record.ToAccountID); err != nil {
			return nil, err
		}
	}

	if details.Entries, err = uc.entryRepo.ListByTransaction(ctx, tx, record.ID); err != nil {
		return nil, err
	}

	return details, nil
}

func (uc *TransactionUseCase) writeCompletedEvent(ctx context.Context, tx Transaction, details *domain.TransactionDetails) error {
	if uc.outboxRepo == nil {
		return nil
	}

	record := details.Transaction
	completedAt := uc.now()
	if record.CompletedAt != nil {
		completedAt = *record.CompletedAt
	}

	payload := domain.TransactionCompletedEvent{
		TransactionID:   record.ID,
		IdempotencyKey:  record.IdempotencyKey,
		ReferenceNumber: record.ReferenceNumber,
		Type:            string(details.Type.Name),
		FromAccountID:   record.FromAccountID,
		ToAccountID:     record.ToAccountID,
		Amount:          record.Amount,
		Currency:        record.CurrencyCode,
		CompletedAt:     completedAt.Format(time.RFC3339Nano),
	}

	return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   strconv.FormatInt(record.ID, 10),
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionCompleted,
		Payload:       payload.ToPayload(),
		CreatedAt:     completedAt,
	})
}

func (uc *TransactionUseCase) reject(input CreateTransactionInput, label string, started time.Time, err error) {
	kind := ErrorKind(err)

	uc.metrics.TransactionRejected(kind)
	uc.metrics.ObserveTransaction(label, outcomeRejected, time.Since(started), 0)

	event := uc.logger.Info()
	if kind == ErrorKindInternal || kind == ErrorKindStoreTransient {
		event = uc.logger.Error()
	}

	event.Err(err).
		Str("error_kind", kind).
		Str("idempotency_key", input.IdempotencyKey).
		Str("type", label).
		Msg("transaction rejected")
}

func (uc *TransactionUseCase) cachedResult(ctx context.Context, key string) *TransactionResult {
	if uc.resultCache == nil {
		return nil
	}

	data, err := uc.resultCache.Get(ctx, resultCacheKeyPrefix+key)
	if err != nil || data == nil {
		uc.metrics.ResultCacheLookup(false)
		return nil
	}

	var result TransactionResult
	if err := json.Unmarshal(data, &result); err != nil || result.Details == nil {
		uc.metrics.ResultCacheLookup(false)
		return nil
	}

	uc.metrics.ResultCacheLookup(true)

	result.Message = MessageAlreadyCompleted
	result.Replayed = true

	return &result
}

func (uc *TransactionUseCase) cacheResult(ctx context.Context, key string, result *TransactionResult) {
	if uc.resultCache == nil {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		return
	}

	if err := uc.resultCache.Set(ctx, resultCacheKeyPrefix+key, data, uc.resultCacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to cache transaction result")
	}
}

func typeLabel(name string) string {
	typeName, err := domain.ParseTransactionTypeName(name)
	if err != nil {
		return "UNKNOWN"
	}
	return string(typeName)
}

type nopMetrics struct{}

func (nopMetrics) ObserveTransaction(string, string, time.Duration, int64) {}
func (nopMetrics) TransactionRejected(string)                              {}
func (nopMetrics) TransactionRetried()                                     {}
func (nopMetrics) TransactionReplayed()                                    {}
func (nopMetrics) AccountClosed()                                          {}
func (nopMetrics) ResultCacheLookup(bool)                                  {}
