package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// ResultCacheTTL is how long completed transaction results are cached
	ResultCacheTTL = 1 * time.Hour

	// DefaultBatchSize is the chunk size used by BatchExecute when none is given
	DefaultBatchSize = 100

	// BaseCurrency is the currency every balance and ledger entry is kept in
	BaseCurrency = "EGP"
)

// Response messages
const (
	MessageDepositProcessed    = "Deposit processed successfully"
	MessageWithdrawalProcessed = "Withdrawal processed successfully"
	MessageTransferProcessed   = "Transfer processed successfully"
	MessageAlreadyCompleted    = "Transaction already completed"
)

// Entities accepted by SoftDeleter
const (
	EntityAccounts         = "accounts"
	EntityTransactionTypes = "transaction_types"
)
