package domain

import "time"

// Event types
const (
	EventTypeTransactionCompleted = "transaction.completed"
	EventTypeAccountClosed        = "account.closed"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
	AggregateTypeAccount     = "account"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// TransactionCompletedEvent payload
type TransactionCompletedEvent struct {
	TransactionID   int64  `json:"transaction_id"`
	IdempotencyKey  string `json:"idempotency_key"`
	ReferenceNumber string `json:"reference_number"`
	Type            string `json:"type"`
	FromAccountID   *int64 `json:"from_account_id,omitempty"`
	ToAccountID     *int64 `json:"to_account_id,omitempty"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	CompletedAt     string `json:"completed_at"`
}

// ToPayload flattens the event for storage in the outbox.
func (e TransactionCompletedEvent) ToPayload() map[string]any {
	payload := map[string]any{
		"transaction_id":   e.TransactionID,
		"idempotency_key":  e.IdempotencyKey,
		"reference_number": e.ReferenceNumber,
		"type":             e.Type,
		"amount":           e.Amount,
		"currency":         e.Currency,
		"completed_at":     e.CompletedAt,
	}
	if e.FromAccountID != nil {
		payload["from_account_id"] = *e.FromAccountID
	}
	if e.ToAccountID != nil {
		payload["to_account_id"] = *e.ToAccountID
	}
	return payload
}

// AccountClosedEvent payload
type AccountClosedEvent struct {
	AccountID     int64  `json:"account_id"`
	AccountNumber string `json:"account_number"`
	ClosedAt      string `json:"closed_at"`
}
