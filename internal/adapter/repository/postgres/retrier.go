package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/walletledger/internal/domain"
)

// RetrierConfig configures Retrier. Zero values fall back to the defaults.
type RetrierConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
	Logger          *slog.Logger
}

// Retrier implements usecase.Retrier with exponential backoff.
type Retrier struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          *slog.Logger
}

// NewRetrier creates a new PostgreSQL retrier with default settings.
func NewRetrier() *Retrier {
	return NewRetrierWithConfig(RetrierConfig{})
}

// NewRetrierWithConfig creates a retrier from cfg.
func NewRetrierWithConfig(cfg RetrierConfig) *Retrier {
	r := &Retrier{
		maxRetries:      3,
		initialInterval: 50 * time.Millisecond,
		maxInterval:     1 * time.Second,
		maxElapsedTime:  10 * time.Second,
		logger:          slog.Default(),
	}

	if cfg.MaxRetries > 0 {
		r.maxRetries = cfg.MaxRetries
	}
	if cfg.InitialInterval > 0 {
		r.initialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		r.maxInterval = cfg.MaxInterval
	}
	if cfg.MaxElapsedTime > 0 {
		r.maxElapsedTime = cfg.MaxElapsedTime
	}
	if cfg.Logger != nil {
		r.logger = cfg.Logger
	}

	return r
}

// Retry executes an operation with exponential backoff on retryable errors.
// When retries run out the last error is returned wrapped in
// domain.ErrStoreTransient.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	retryCount := 0

	err := backoff.Retry(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		retryCount++
		if retryCount > r.maxRetries {
			return backoff.Permanent(err)
		}

		r.logger.Warn("retryable database error, retrying",
			"error", err,
			"retry", retryCount,
		)

		return err
	}, backoff.WithContext(b, ctx))

	if err != nil && isRetryableError(err) && !errors.Is(err, domain.ErrStoreTransient) {
		return fmt.Errorf("%w: %w", domain.ErrStoreTransient, err)
	}

	return err
}

// isRetryableError reports whether re-running the whole unit of work may succeed.
func isRetryableError(err error) bool {
	switch pgErrorCode(err) {
	case pgErrDeadlock, pgErrSerializationFailure, pgErrLockNotAvailable,
		pgErrQueryCanceled, pgErrAdminShutdown, pgErrCannotConnectNow:
		return true
	}

	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, domain.ErrDuplicateIdempotencyKey) ||
		errors.Is(err, domain.ErrStoreTransient)
}
