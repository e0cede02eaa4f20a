package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Transaction outcomes used as the "outcome" label
const (
	OutcomeCompleted = "completed"
	OutcomeReplayed  = "replayed"
	OutcomeRejected  = "rejected"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsProcessed *prometheus.CounterVec
	TransactionDuration   *prometheus.HistogramVec
	TransactionAmount     prometheus.Histogram
	TransactionErrors     *prometheus.CounterVec
	TransactionRetries    prometheus.Counter
	IdempotentReplays     prometheus.Counter

	// Account metrics
	AccountsClosed prometheus.Counter

	// Outbox metrics
	OutboxEventsPublished prometheus.Counter
	OutboxPublishErrors   prometheus.Counter

	// Redis metrics
	ResultCacheHits   prometheus.Counter
	ResultCacheMisses prometheus.Counter

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates and registers all Prometheus metrics on the default registerer
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all metrics and registers them on reg
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Transaction metrics
		TransactionsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_transactions_processed_total",
				Help: "Total number of transactions by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		TransactionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "walletledger_transaction_duration_seconds",
				Help:    "Duration of transaction processing including retries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),
		TransactionAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletledger_transaction_amount_minor_units",
			Help:    "Committed transaction amounts in base-currency minor units",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000, 100000000},
		}),
		TransactionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "walletledger_transaction_errors_total",
				Help: "Total number of rejected or failed transactions by error kind",
			},
			[]string{"error_type"},
		),
		TransactionRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_transaction_retries_total",
			Help: "Total number of unit-of-work retries after transient store errors",
		}),
		IdempotentReplays: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_idempotent_replays_total",
			Help: "Total number of requests answered from an already completed transaction",
		}),

		// Account metrics
		AccountsClosed: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_accounts_closed_total",
			Help: "Total number of accounts closed",
		}),

		// Outbox metrics
		OutboxEventsPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_outbox_events_published_total",
			Help: "Total number of outbox events published",
		}),
		OutboxPublishErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_outbox_publish_errors_total",
			Help: "Total number of outbox publish failures",
		}),

		// Redis metrics
		ResultCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_result_cache_hits_total",
			Help: "Completed transaction results served from cache",
		}),
		ResultCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_result_cache_misses_total",
			Help: "Result cache lookups that fell through to the store",
		}),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "walletledger_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// ObserveTransaction records the outcome of one CreateTransaction call.
func (m *Metrics) ObserveTransaction(txType, outcome string, duration time.Duration, amount int64) {
	m.TransactionsProcessed.WithLabelValues(txType, outcome).Inc()
	m.TransactionDuration.WithLabelValues(txType).Observe(duration.Seconds())
	if outcome == OutcomeCompleted {
		m.TransactionAmount.Observe(float64(amount))
	}
}

// TransactionRejected counts a failure by error kind.
func (m *Metrics) TransactionRejected(kind string) {
	m.TransactionErrors.WithLabelValues(kind).Inc()
}

func (m *Metrics) TransactionRetried() { m.TransactionRetries.Inc() }

func (m *Metrics) TransactionReplayed() { m.IdempotentReplays.Inc() }

func (m *Metrics) AccountClosed() { m.AccountsClosed.Inc() }

// ResultCacheLookup counts a result cache hit or miss.
func (m *Metrics) ResultCacheLookup(hit bool) {
	if hit {
		m.ResultCacheHits.Inc()
		return
	}
	m.ResultCacheMisses.Inc()
}

// OutboxPublished counts one relayed outbox event, or one failed attempt.
func (m *Metrics) OutboxPublished(ok bool) {
	if ok {
		m.OutboxEventsPublished.Inc()
		return
	}
	m.OutboxPublishErrors.Inc()
}

func (m *Metrics) RateLimited() { m.RateLimitHits.Inc() }
