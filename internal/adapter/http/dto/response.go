package dto

import (
	"time"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID               int64      `json:"id"`
	AccountNumber    string     `json:"accountNumber"`
	UserID           int64      `json:"userId"`
	AccountTypeID    int64      `json:"accountTypeId"`
	Balance          int64      `json:"balance"`
	AvailableBalance int64      `json:"availableBalance"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	DeletedAt        *time.Time `json:"deletedAt,omitempty"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	if a == nil {
		return nil
	}

	return &AccountResponse{
		ID:               a.ID,
		AccountNumber:    a.AccountNumber,
		UserID:           a.UserID,
		AccountTypeID:    a.AccountTypeID,
		Balance:          a.Balance,
		AvailableBalance: a.AvailableBalance,
		Status:           string(a.Status),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
		DeletedAt:        a.DeletedAt,
	}
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID           int64     `json:"id"`
	AccountID    int64     `json:"accountId"`
	EntryType    string    `json:"entryType"`
	Amount       int64     `json:"amount"`
	CurrencyCode string    `json:"currencyCode"`
	BalanceAfter int64     `json:"balanceAfter"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = &EntryResponse{
			ID:           e.ID,
			AccountID:    e.AccountID,
			EntryType:    string(e.EntryType),
			Amount:       e.Amount,
			CurrencyCode: e.CurrencyCode,
			BalanceAfter: e.BalanceAfter,
			Description:  e.Description,
			CreatedAt:    e.CreatedAt,
		}
	}
	return result
}

// TransactionDetailsResponse is a stored transaction with its type, accounts
// and ledger entries.
type TransactionDetailsResponse struct {
	ID                   int64            `json:"id"`
	IdempotencyKey       string           `json:"idempotencyKey"`
	ReferenceNumber      string           `json:"referenceNumber"`
	ExternalReference    string           `json:"externalReference"`
	Type                 string           `json:"type"`
	Amount               int64            `json:"amount"`
	CurrencyCode         string           `json:"currencyCode"`
	OriginalAmount       int64            `json:"originalAmount"`
	OriginalCurrencyCode string           `json:"originalCurrencyCode"`
	Status               string           `json:"status"`
	Description          string           `json:"description"`
	Metadata             map[string]any   `json:"metadata,omitempty"`
	FromAccountID        *int64           `json:"fromAccountId"`
	ToAccountID          *int64           `json:"toAccountId"`
	FromAccount          *AccountResponse `json:"fromAccount,omitempty"`
	ToAccount            *AccountResponse `json:"toAccount,omitempty"`
	InitiatedBy          int64            `json:"initiatedBy"`
	InitiatedAt          time.Time        `json:"initiatedAt"`
	CompletedAt          *time.Time       `json:"completedAt,omitempty"`
	FailedAt             *time.Time       `json:"failedAt,omitempty"`
	Entries              []*EntryResponse `json:"entries"`
}

// TransactionDetailsFromDomain converts stored details to a response.
func TransactionDetailsFromDomain(d *domain.TransactionDetails) *TransactionDetailsResponse {
	if d == nil || d.Transaction == nil {
		return nil
	}

	t := d.Transaction
	resp := &TransactionDetailsResponse{
		ID:                   t.ID,
		IdempotencyKey:       t.IdempotencyKey,
		ReferenceNumber:      t.ReferenceNumber,
		ExternalReference:    t.ExternalReference,
		Amount:               t.Amount,
		CurrencyCode:         t.CurrencyCode,
		OriginalAmount:       t.OriginalAmount,
		OriginalCurrencyCode: t.OriginalCurrencyCode,
		Status:               string(t.Status),
		Description:          t.Description,
		Metadata:             t.Metadata,
		FromAccountID:        t.FromAccountID,
		ToAccountID:          t.ToAccountID,
		FromAccount:          AccountFromDomain(d.FromAccount),
		ToAccount:            AccountFromDomain(d.ToAccount),
		InitiatedBy:          t.InitiatedBy,
		InitiatedAt:          t.InitiatedAt,
		CompletedAt:          t.CompletedAt,
		FailedAt:             t.FailedAt,
		Entries:              EntriesFromDomain(d.Entries),
	}
	if d.Type != nil {
		resp.Type = string(d.Type.Name)
	}

	return resp
}

// TransactionResponse is returned by transaction creation.
type TransactionResponse struct {
	Message     string                      `json:"message"`
	Transaction *TransactionDetailsResponse `json:"transaction"`
}

// TransactionResultFromUseCase converts a use case result to a response.
func TransactionResultFromUseCase(r *usecase.TransactionResult) *TransactionResponse {
	return &TransactionResponse{
		Message:     r.Message,
		Transaction: TransactionDetailsFromDomain(r.Details),
	}
}

// CloseAccountResult reports the outcome of closing one account.
type CloseAccountResult struct {
	AccountID int64  `json:"accountId"`
	Closed    bool   `json:"closed"`
	Error     string `json:"error,omitempty"`
}

// CloseAccountsResponse lists one result per requested account, in order.
type CloseAccountsResponse struct {
	Results []CloseAccountResult `json:"results"`
}

// CloseAccountsFromResults pairs ids with their close errors.
func CloseAccountsFromResults(ids []int64, errs []error) *CloseAccountsResponse {
	results := make([]CloseAccountResult, len(ids))
	for i, id := range ids {
		results[i] = CloseAccountResult{AccountID: id, Closed: errs[i] == nil}
		if errs[i] != nil {
			results[i].Error = errs[i].Error()
		}
	}
	return &CloseAccountsResponse{Results: results}
}

// ConsistencyResponse reports the double-entry check.
type ConsistencyResponse struct {
	Status                   string  `json:"status"`
	Consistent               bool    `json:"consistent"`
	UnbalancedTransactionIDs []int64 `json:"unbalancedTransactionIds"`
}

// ConsistencyFromReport converts a consistency report to a response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	status := "consistent"
	if !r.Consistent {
		status = "inconsistent"
	}
	return &ConsistencyResponse{
		Status:                   status,
		Consistent:               r.Consistent,
		UnbalancedTransactionIDs: r.UnbalancedTransactionIDs,
	}
}

// DBHealthStats holds table counts.
type DBHealthStats struct {
	Accounts         int64 `json:"accounts"`
	TransactionTypes int64 `json:"transactionTypes"`
	Transactions     int64 `json:"transactions"`
	LedgerEntries    int64 `json:"ledgerEntries"`
}

// DBHealthResponse is returned by the database health endpoint.
type DBHealthResponse struct {
	Status    string         `json:"status"`
	Database  string         `json:"database"`
	Timestamp time.Time      `json:"timestamp"`
	Stats     *DBHealthStats `json:"stats,omitempty"`
	Error     string         `json:"error,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// DBHealthFromStats builds a healthy response.
func DBHealthFromStats(s *usecase.LedgerStats, at time.Time) *DBHealthResponse {
	return &DBHealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: at,
		Stats: &DBHealthStats{
			Accounts:         s.Accounts,
			TransactionTypes: s.TransactionTypes,
			Transactions:     s.Transactions,
			LedgerEntries:    s.LedgerEntries,
		},
		Message: "All database tables are accessible",
	}
}
