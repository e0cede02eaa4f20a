package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/walletledger/internal/adapter/http/middleware"
	redisrepo "github.com/iho/walletledger/internal/adapter/repository/redis"
	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
	"github.com/iho/walletledger/internal/usecase/memstore"
)

type pingOK struct{}

func (pingOK) Ping(ctx context.Context) error { return nil }

func newRouterConfig(t *testing.T, store *memstore.Store, opts ...func(*RouterConfig)) RouterConfig {
	t.Helper()

	converter, err := usecase.NewCurrencyConverter(usecase.BaseCurrency, usecase.DefaultRates())
	if err != nil {
		t.Fatalf("converter: %v", err)
	}

	txUC := usecase.NewTransactionUseCase(usecase.TransactionUseCaseConfig{
		TxManager:       store,
		AccountRepo:     store.Accounts,
		TransactionRepo: store.Transactions,
		EntryRepo:       store.Entries,
		TypeRepo:        store.Types,
		OutboxRepo:      store.Outbox,
		Converter:       converter,
		Retrier:         &memstore.Retrier{MaxRetries: 1},
		IDGen:           &memstore.IDGenerator{},
		Logger:          zerolog.Nop(),
	})
	accountUC := usecase.NewAccountUseCase(usecase.AccountUseCaseConfig{
		TxManager:   store,
		AccountRepo: store.Accounts,
		SoftDeleter: store.SoftDeleter,
		OutboxRepo:  store.Outbox,
		IDGen:       &memstore.IDGenerator{},
	})
	ledgerUC := usecase.NewLedgerUseCase(store.Ledger)

	cfg := RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(txUC),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		HealthHandler:      handler.NewHealthHandler(pingOK{}, nil),
		Logger:             zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig(t, memstore.New()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(t, memstore.New(), func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_TransferWithRedisIdempotency(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := memstore.New()
	from := store.SeedAccount(domain.Account{AccountNumber: "ACC-0001", Balance: 1000, AvailableBalance: 1000})
	to := store.SeedAccount(domain.Account{AccountNumber: "ACC-0002"})

	router := NewRouter(newRouterConfig(t, store, func(cfg *RouterConfig) {
		cfg.IdempotencyStore = redisrepo.NewIdempotencyStore(client)
		cfg.IdempotencyTTL = time.Minute
	}))

	body := fmt.Sprintf(`{"type":"TRANSFER","amount":400,"currencyCode":"EGP","fromAccountId":%d,"toAccountId":%d,"referenceNumber":"REF-1","initiatedBy":1}`, from.ID, to.ID)
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions/add-transaction", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(apimiddleware.IdempotencyKeyHeader, "router-key-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", first.Code, first.Body.String())
	}

	second := send()
	if second.Code != http.StatusOK || second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatalf("expected replay from redis, got %d headers=%v", second.Code, second.Header())
	}
	var original, replayed dto.TransactionResponse
	if err := json.Unmarshal(first.Body.Bytes(), &original); err != nil {
		t.Fatalf("decode first: %v", err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &replayed); err != nil {
		t.Fatalf("decode replay: %v", err)
	}
	if replayed.Message != usecase.MessageAlreadyCompleted {
		t.Fatalf("expected replay message, got %q", replayed.Message)
	}
	if replayed.Transaction == nil || original.Transaction == nil || replayed.Transaction.ID != original.Transaction.ID {
		t.Fatalf("expected the stored transaction on replay")
	}

	fromAfter, _ := store.Account(from.ID)
	toAfter, _ := store.Account(to.ID)
	if fromAfter.Balance != 600 || toAfter.Balance != 400 {
		t.Fatalf("expected one transfer, balances %d/%d", fromAfter.Balance, toAfter.Balance)
	}

	consistency := httptest.NewRecorder()
	router.ServeHTTP(consistency, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/consistency", nil))
	if consistency.Code != http.StatusOK {
		t.Fatalf("expected consistent ledger, got %d: %s", consistency.Code, consistency.Body.String())
	}
}

func TestNewRouter_MismatchedIdempotencyKeysAreRejected(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := memstore.New()
	acc := store.SeedAccount(domain.Account{AccountNumber: "ACC-0001"})

	router := NewRouter(newRouterConfig(t, store, func(cfg *RouterConfig) {
		cfg.IdempotencyStore = redisrepo.NewIdempotencyStore(client)
		cfg.IdempotencyTTL = time.Minute
	}))

	deposit := func(headerKey, bodyKey string) *httptest.ResponseRecorder {
		body := fmt.Sprintf(`{"type":"DEPOSIT","amount":100,"currencyCode":"EGP","toAccountId":%d,"idempotencyKey":%q,"referenceNumber":"REF-1","initiatedBy":1}`, acc.ID, bodyKey)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(apimiddleware.IdempotencyKeyHeader, headerKey)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := deposit("body-A", "body-A")
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", first.Code, first.Body.String())
	}

	second := deposit("body-A", "body-B")
	if second.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for differing keys, got %d: %s", second.Code, second.Body.String())
	}
	if second.Header().Get("X-Idempotency-Replay") != "" {
		t.Fatalf("a differing body key must not be answered from the replay cache")
	}

	third := deposit("", "body-B")
	if third.Code != http.StatusCreated {
		t.Fatalf("expected body-B to apply on its own key, got %d: %s", third.Code, third.Body.String())
	}

	after, _ := store.Account(acc.ID)
	if after.Balance != 200 {
		t.Fatalf("expected both deposits applied once, balance %d", after.Balance)
	}
}

func TestNewRouter_GetAndCloseAccount(t *testing.T) {
	store := memstore.New()
	empty := store.SeedAccount(domain.Account{AccountNumber: "ACC-0001"})
	router := NewRouter(newRouterConfig(t, store))

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%d", empty.ID), nil))
	if get.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", get.Code)
	}

	var account dto.AccountResponse
	if err := json.Unmarshal(get.Body.Bytes(), &account); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if account.AccountNumber != "ACC-0001" {
		t.Fatalf("unexpected account %+v", account)
	}

	del := httptest.NewRecorder()
	router.ServeHTTP(del, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/accounts/%d", empty.ID), nil))
	if del.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", del.Code, del.Body.String())
	}

	again := httptest.NewRecorder()
	router.ServeHTTP(again, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/accounts/%d", empty.ID), nil))
	if again.Code != http.StatusNotFound {
		t.Fatalf("expected closed account to be gone, got %d", again.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig(t, memstore.New(), func(cfg *RouterConfig) {
		cfg.MetricsHandler = http.NotFoundHandler()
	}))

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/transactions/",
		"POST /api/v1/transactions/add-transaction",
		"GET /api/v1/transactions/{idempotencyKey}",
		"GET /api/v1/transactions/health/db",
		"GET /api/v1/accounts/{id}",
		"DELETE /api/v1/accounts/{id}",
		"POST /api/v1/accounts/close",
		"GET /api/v1/ledger/consistency",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered, have %v", route, seen)
		}
	}
}
