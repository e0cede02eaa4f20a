package dto

import (
	"fmt"

	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

// CreateTransactionRequest is the body of POST /api/v1/transactions.
// Amount is in minor units of CurrencyCode.
type CreateTransactionRequest struct {
	Type              string         `json:"type,omitempty"`
	Amount            int64          `json:"amount"`
	CurrencyCode      string         `json:"currencyCode"`
	FromAccountID     *int64         `json:"fromAccountId,omitempty"`
	ToAccountID       *int64         `json:"toAccountId,omitempty"`
	IdempotencyKey    string         `json:"idempotencyKey"`
	ReferenceNumber   string         `json:"referenceNumber"`
	ExternalReference string         `json:"externalReference,omitempty"`
	Description       string         `json:"description,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	InitiatedBy       int64          `json:"initiatedBy"`
}

// ResolveIdempotencyKey picks the key a request runs under. Either source may
// be empty; when both are set they must agree.
func ResolveIdempotencyKey(headerKey, bodyKey string) (string, error) {
	switch {
	case bodyKey == "":
		return headerKey, nil
	case headerKey == "" || headerKey == bodyKey:
		return bodyKey, nil
	default:
		return "", fmt.Errorf("%w: Idempotency-Key header and body idempotencyKey differ", domain.ErrInvalidRequestShape)
	}
}

// ToUseCaseInput converts to use case input. headerKey fills in a missing
// idempotencyKey and must match it otherwise.
func (r *CreateTransactionRequest) ToUseCaseInput(headerKey string) (usecase.CreateTransactionInput, error) {
	key, err := ResolveIdempotencyKey(headerKey, r.IdempotencyKey)
	if err != nil {
		return usecase.CreateTransactionInput{}, err
	}

	return usecase.CreateTransactionInput{
		Type:              r.Type,
		Amount:            r.Amount,
		CurrencyCode:      r.CurrencyCode,
		FromAccountID:     r.FromAccountID,
		ToAccountID:       r.ToAccountID,
		IdempotencyKey:    key,
		ReferenceNumber:   r.ReferenceNumber,
		ExternalReference: r.ExternalReference,
		Description:       r.Description,
		Metadata:          r.Metadata,
		InitiatedBy:       r.InitiatedBy,
	}, nil
}

// CloseAccountsRequest is the body of POST /api/v1/accounts/close.
type CloseAccountsRequest struct {
	AccountIDs []int64 `json:"accountIds"`
}
