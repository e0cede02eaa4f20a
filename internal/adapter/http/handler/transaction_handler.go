package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/domain"
	"github.com/iho/walletledger/internal/usecase"
)

// IdempotencyKeyHeader may carry the key instead of the request body.
const IdempotencyKeyHeader = "Idempotency-Key"

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*usecase.TransactionResult, error)
	GetTransaction(ctx context.Context, idempotencyKey string) (*domain.TransactionDetails, error)
}

// TransactionHandler handles transaction HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create processes a deposit, withdrawal or transfer. A replayed key answers
// 200 with the stored result instead of 201.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result, err := h.transactionUC.CreateTransaction(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	writeJSON(w, status, dto.TransactionResultFromUseCase(result))
}

// Get returns the transaction stored under an idempotency key.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "idempotencyKey")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing idempotency key", "")
		return
	}

	details, err := h.transactionUC.GetTransaction(r.Context(), key)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionDetailsFromDomain(details))
}
