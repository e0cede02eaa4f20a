package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithRegistererRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewWithRegisterer(registry)

	if m.TransactionsProcessed == nil || m.TransactionErrors == nil || m.OutboxEventsPublished == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.TransactionsProcessed.WithLabelValues("DEPOSIT", "completed").Inc()
	m.TransactionRetries.Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}

	if got := testutil.ToFloat64(m.TransactionsProcessed.WithLabelValues("DEPOSIT", "completed")); got != 1 {
		t.Fatalf("expected counter value 1, got %v", got)
	}
}

func TestNewWithRegistererIsolatedRegistries(t *testing.T) {
	// Two registries must not collide on metric names.
	_ = NewWithRegisterer(prometheus.NewRegistry())
	_ = NewWithRegisterer(prometheus.NewRegistry())
}

func TestNewUsesDefaultRegisterer(t *testing.T) {
	registry := prometheus.NewRegistry()

	original := prometheus.DefaultRegisterer
	prometheus.DefaultRegisterer = registry
	t.Cleanup(func() { prometheus.DefaultRegisterer = original })

	m := New()
	m.IdempotentReplays.Inc()

	count, err := testutil.GatherAndCount(registry, "walletledger_idempotent_replays_total")
	if err != nil {
		t.Fatalf("failed to gather: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected replay counter to be registered, got %d series", count)
	}
}

func TestObserveTransaction(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewWithRegisterer(registry)

	m.ObserveTransaction("TRANSFER", OutcomeCompleted, 25*time.Millisecond, 481700)
	m.ObserveTransaction("TRANSFER", OutcomeRejected, time.Millisecond, 100)
	m.TransactionRejected("insufficient_funds")
	m.ResultCacheLookup(true)
	m.ResultCacheLookup(false)
	m.ResultCacheLookup(false)

	if got := testutil.ToFloat64(m.TransactionsProcessed.WithLabelValues("TRANSFER", OutcomeCompleted)); got != 1 {
		t.Fatalf("expected 1 completed transfer, got %v", got)
	}
	if got := testutil.ToFloat64(m.TransactionErrors.WithLabelValues("insufficient_funds")); got != 1 {
		t.Fatalf("expected 1 insufficient_funds error, got %v", got)
	}
	if got := testutil.ToFloat64(m.ResultCacheMisses); got != 2 {
		t.Fatalf("expected 2 cache misses, got %v", got)
	}
}

func TestOutboxAndRateLimitCounters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.OutboxPublished(true)
	m.OutboxPublished(true)
	m.OutboxPublished(false)
	m.RateLimited()

	if got := testutil.ToFloat64(m.OutboxEventsPublished); got != 2 {
		t.Fatalf("expected 2 published, got %v", got)
	}
	if got := testutil.ToFloat64(m.OutboxPublishErrors); got != 1 {
		t.Fatalf("expected 1 publish error, got %v", got)
	}
	if got := testutil.ToFloat64(m.RateLimitHits); got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %v", got)
	}
}
