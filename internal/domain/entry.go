package domain

import "time"

// EntryType is the side of a ledger entry.
type EntryType string

const (
	EntryTypeDebit  EntryType = "DEBIT"
	EntryTypeCredit EntryType = "CREDIT"
)

// LedgerEntry is an append-only fact about one account's movement within a
// transaction. Amount is always positive; EntryType carries the direction.
type LedgerEntry struct {
	CreatedAt     time.Time
	EntryType     EntryType
	CurrencyCode  string
	Description   string
	ID            int64
	TransactionID int64
	AccountID     int64
	Amount        int64
	BalanceAfter  int64
}
