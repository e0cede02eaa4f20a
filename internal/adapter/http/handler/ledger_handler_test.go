package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/usecase"
)

type ledgerServiceStub struct {
	report *usecase.ConsistencyReport
	stats  *usecase.LedgerStats
	err    error
}

func (s *ledgerServiceStub) CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error) {
	return s.report, s.err
}

func (s *ledgerServiceStub) DBHealth(ctx context.Context) (*usecase.LedgerStats, error) {
	return s.stats, s.err
}

func TestLedgerHandler_CheckConsistency(t *testing.T) {
	tests := []struct {
		name   string
		stub   *ledgerServiceStub
		status int
	}{
		{
			name:   "consistent",
			stub:   &ledgerServiceStub{report: &usecase.ConsistencyReport{Consistent: true, UnbalancedTransactionIDs: []int64{}}},
			status: http.StatusOK,
		},
		{
			name: "inconsistent",
			stub: &ledgerServiceStub{
				report: &usecase.ConsistencyReport{UnbalancedTransactionIDs: []int64{3}},
				err:    fmt.Errorf("%w: 1 unbalanced transaction", usecase.ErrInconsistentLedger),
			},
			status: http.StatusConflict,
		},
		{
			name:   "store error",
			stub:   &ledgerServiceStub{err: errors.New("connection refused")},
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewLedgerHandler(tt.stub).CheckConsistency(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/consistency", nil))

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func TestLedgerHandler_DBHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	h := NewLedgerHandler(&ledgerServiceStub{stats: &usecase.LedgerStats{Accounts: 2, TransactionTypes: 7, Transactions: 5, LedgerEntries: 6}})

	h.DBHealth(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transactions/health/db", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.DBHealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" || resp.Stats == nil || resp.Stats.TransactionTypes != 7 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLedgerHandler_DBHealthDown(t *testing.T) {
	rec := httptest.NewRecorder()
	h := NewLedgerHandler(&ledgerServiceStub{err: errors.New("dial tcp: refused")})

	h.DBHealth(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transactions/health/db", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
