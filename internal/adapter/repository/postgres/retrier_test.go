package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/walletledger/internal/domain"
)

func fastRetrier(maxRetries int) *Retrier {
	return NewRetrierWithConfig(RetrierConfig{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxElapsedTime:  time.Second,
	})
}

func TestRetrierRetriesOnRetryableError(t *testing.T) {
	r := fastRetrier(2)

	attempts := 0
	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return &pgconn.PgError{Code: pgErrDeadlock}
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetrierStopsOnPermanentError(t *testing.T) {
	r := NewRetrier()
	attempts := 0

	err := r.Retry(context.Background(), func() error {
		attempts++
		return domain.ErrInsufficientFunds
	})

	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if errors.Is(err, domain.ErrStoreTransient) {
		t.Fatalf("permanent errors must not be reported as transient: %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetrierWrapsExhaustedRetries(t *testing.T) {
	r := fastRetrier(2)
	attempts := 0

	err := r.Retry(context.Background(), func() error {
		attempts++
		return &pgconn.PgError{Code: pgErrSerializationFailure}
	})

	if !errors.Is(err, domain.ErrStoreTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgErrSerializationFailure {
		t.Fatalf("expected underlying pg error to be preserved, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestRetrierRetriesDuplicateIdempotencyKey(t *testing.T) {
	r := fastRetrier(3)
	attempts := 0

	err := r.Retry(context.Background(), func() error {
		attempts++
		if attempts == 1 {
			return fmt.Errorf("%w: k", domain.ErrDuplicateIdempotencyKey)
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected the second attempt to succeed, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetrierStopsWhenContextCancelled(t *testing.T) {
	r := fastRetrier(10)
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := r.Retry(ctx, func() error {
		attempts++
		cancel()
		return &pgconn.PgError{Code: pgErrDeadlock}
	})

	if err == nil {
		t.Fatalf("expected an error after cancellation")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"deadlock", &pgconn.PgError{Code: pgErrDeadlock}, true},
		{"serialization failure", &pgconn.PgError{Code: pgErrSerializationFailure}, true},
		{"lock not available", &pgconn.PgError{Code: pgErrLockNotAvailable}, true},
		{"wrapped serialization failure", fmt.Errorf("commit: %w", &pgconn.PgError{Code: pgErrSerializationFailure}), true},
		{"duplicate idempotency key", domain.ErrDuplicateIdempotencyKey, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"unique violation on another column", &pgconn.PgError{Code: pgErrUniqueViolation}, false},
		{"insufficient funds", domain.ErrInsufficientFunds, false},
		{"generic", errors.New("other"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Fatalf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
