package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/domain"
)

type accountServiceStub struct {
	getFn       func(ctx context.Context, id int64) (*domain.Account, error)
	closeFn     func(ctx context.Context, id int64) error
	closeManyFn func(ctx context.Context, ids []int64) []error
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id int64) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) CloseAccount(ctx context.Context, id int64) error {
	return s.closeFn(ctx, id)
}

func (s *accountServiceStub) CloseAccounts(ctx context.Context, ids []int64) []error {
	return s.closeManyFn(ctx, ids)
}

func TestAccountHandler_Get(t *testing.T) {
	account := &domain.Account{ID: 7, AccountNumber: "ACC-0007", Balance: 1200, AvailableBalance: 1200, Status: domain.AccountStatusActive}
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			if id != 7 {
				t.Fatalf("expected id 7, got %d", id)
			}
			return account, nil
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/accounts/7", nil), "id", "7")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccountNumber != "ACC-0007" || resp.Balance != 1200 || resp.Status != "ACTIVE" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/accounts/9", nil), "id", "9")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_InvalidID(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id int64) (*domain.Account, error) {
			t.Fatal("GetAccount should not be called for an invalid id")
			return nil, nil
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/accounts/abc", nil), "id", "abc")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Close(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"closed", nil, http.StatusNoContent},
		{"has balance", domain.ErrAccountHasBalance, http.StatusConflict},
		{"missing", domain.ErrAccountNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAccountHandler(&accountServiceStub{
				closeFn: func(ctx context.Context, id int64) error { return tt.err },
			})

			req := setChiURLParam(httptest.NewRequest(http.MethodDelete, "/accounts/3", nil), "id", "3")
			rec := httptest.NewRecorder()

			handler.Close(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAccountHandler_CloseBatch(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		closeManyFn: func(ctx context.Context, ids []int64) []error {
			return []error{nil, domain.ErrAccountHasBalance}
		},
	})

	body, _ := json.Marshal(dto.CloseAccountsRequest{AccountIDs: []int64{1, 2}})
	req := httptest.NewRequest(http.MethodPost, "/accounts/close", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.CloseBatch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.CloseAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Results) != 2 || !resp.Results[0].Closed || resp.Results[1].Closed {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}

func TestAccountHandler_CloseBatch_Empty(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/accounts/close", bytes.NewBufferString(`{"accountIds":[]}`))
	rec := httptest.NewRecorder()

	handler.CloseBatch(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
