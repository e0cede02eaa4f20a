package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/walletledger/internal/adapter/http/dto"
)

type recordedRequest struct {
	method string
	path   string
	header http.Header
	body   []byte
}

func newTestAPI(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path, header: r.Header.Clone(), body: body})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	return srv, &requests
}

func execute(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--url", url}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printJSON(&out, struct {
		A int `json:"a"`
	}{A: 1}))

	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
}

func TestPrintRawFallsBackToText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printRaw(&out, []byte("not json")))
	assert.Equal(t, "not json\n", out.String())
}

func TestTransactionCreateSendsTransfer(t *testing.T) {
	srv, requests := newTestAPI(t, http.StatusCreated, `{"message":"Transfer processed successfully"}`)

	out, err := execute(t, srv.URL, "transaction", "create",
		"--type", "TRANSFER", "--amount", "250", "--from", "1", "--to", "2", "--key", "cli-key-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Transfer processed successfully")

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/api/v1/transactions", req.path)
	assert.Equal(t, "cli-key-1", req.header.Get("Idempotency-Key"))

	var body dto.CreateTransactionRequest
	require.NoError(t, json.Unmarshal(req.body, &body))
	assert.Equal(t, "TRANSFER", body.Type)
	assert.Equal(t, int64(250), body.Amount)
	assert.Equal(t, "EGP", body.CurrencyCode)
	require.NotNil(t, body.FromAccountID)
	require.NotNil(t, body.ToAccountID)
	assert.Equal(t, int64(1), *body.FromAccountID)
	assert.Equal(t, int64(2), *body.ToAccountID)
	assert.True(t, strings.HasPrefix(body.ReferenceNumber, "REF-"))
}

func TestTransactionCreateOmitsUnsetAccounts(t *testing.T) {
	srv, requests := newTestAPI(t, http.StatusCreated, `{}`)

	_, err := execute(t, srv.URL, "transaction", "create", "--type", "DEPOSIT", "--amount", "100", "--to", "7")
	require.NoError(t, err)

	var body dto.CreateTransactionRequest
	require.NoError(t, json.Unmarshal((*requests)[0].body, &body))
	assert.Nil(t, body.FromAccountID)
	assert.NotEmpty(t, body.IdempotencyKey, "a key is generated when none is given")
	assert.Equal(t, body.IdempotencyKey, (*requests)[0].header.Get("Idempotency-Key"))
}

func TestTransactionCreateLeavesTypeToServer(t *testing.T) {
	srv, requests := newTestAPI(t, http.StatusCreated, `{}`)

	_, err := execute(t, srv.URL, "transaction", "create", "--amount", "100", "--from", "1", "--to", "2")
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	var raw map[string]any
	require.NoError(t, json.Unmarshal((*requests)[0].body, &raw))
	assert.NotContains(t, raw, "type")
}

func TestTransactionCreateReportsAPIError(t *testing.T) {
	srv, _ := newTestAPI(t, http.StatusUnprocessableEntity, `{"error":"insufficient_funds","message":"insufficient funds"}`)

	_, err := execute(t, srv.URL, "transaction", "create", "--type", "WITHDRAWAL", "--amount", "100", "--from", "1")
	require.Error(t, err)

	var apiErr *apiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "insufficient_funds", apiErr.Kind)
}

func TestTransactionGet(t *testing.T) {
	srv, requests := newTestAPI(t, http.StatusOK, `{"idempotencyKey":"k1"}`)

	out, err := execute(t, srv.URL, "transaction", "get", "k1")
	require.NoError(t, err)
	assert.Contains(t, out, `"idempotencyKey": "k1"`)
	assert.Equal(t, "/api/v1/transactions/k1", (*requests)[0].path)
}

func TestAccountsClose(t *testing.T) {
	srv, requests := newTestAPI(t, http.StatusOK, `{"results":[]}`)

	_, err := execute(t, srv.URL, "accounts", "close", "3", "4")
	require.NoError(t, err)

	var body dto.CloseAccountsRequest
	require.NoError(t, json.Unmarshal((*requests)[0].body, &body))
	assert.Equal(t, []int64{3, 4}, body.AccountIDs)
}

func TestAccountsCloseRejectsBadID(t *testing.T) {
	srv, requests := newTestAPI(t, http.StatusOK, `{}`)

	_, err := execute(t, srv.URL, "accounts", "close", "abc")
	require.Error(t, err)
	assert.Empty(t, *requests)
}

func TestLedgerConsistency(t *testing.T) {
	t.Run("passed", func(t *testing.T) {
		srv, _ := newTestAPI(t, http.StatusOK, `{"status":"consistent","consistent":true}`)

		out, err := execute(t, srv.URL, "ledger", "consistency")
		require.NoError(t, err)
		assert.Contains(t, out, "PASSED")
	})

	t.Run("failed", func(t *testing.T) {
		srv, _ := newTestAPI(t, http.StatusConflict, `{"status":"inconsistent","consistent":false,"unbalancedTransactionIds":[9]}`)

		out, err := execute(t, srv.URL, "ledger", "consistency")
		require.ErrorIs(t, err, errInconsistent)
		assert.Contains(t, out, "FAILED")
		assert.Contains(t, out, "9")
	})
}

func TestHealthDBPrintsUnhealthyBody(t *testing.T) {
	srv, _ := newTestAPI(t, http.StatusServiceUnavailable, `{"status":"unhealthy","database":"disconnected"}`)

	out, err := execute(t, srv.URL, "health", "db")
	require.Error(t, err)
	assert.Contains(t, out, "disconnected")
}
