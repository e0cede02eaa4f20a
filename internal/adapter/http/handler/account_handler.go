package handler

import (
	"context"
	"net/http"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	GetAccount(ctx context.Context, id int64) (*domain.Account, error)
	CloseAccount(ctx context.Context, id int64) error
	CloseAccounts(ctx context.Context, ids []int64) []error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Close soft-deletes an account with no balance.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	if err := h.accountUC.CloseAccount(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CloseBatch closes several accounts and reports one result per id.
func (h *AccountHandler) CloseBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.CloseAccountsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if len(req.AccountIDs) == 0 {
		writeError(w, http.StatusBadRequest, "accountIds must not be empty", "")
		return
	}

	errs := h.accountUC.CloseAccounts(r.Context(), req.AccountIDs)

	writeJSON(w, http.StatusOK, dto.CloseAccountsFromResults(req.AccountIDs, errs))
}
