package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/iho/walletledger/internal/adapter/http/dto"
	"github.com/iho/walletledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
	DBHealth(ctx context.Context) (*usecase.LedgerStats, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC LedgerService
	now      func() time.Time
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerUC: ledgerUC,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CheckConsistency reports completed transactions whose entries do not
// balance. An inconsistent ledger answers 409.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) && report != nil {
			writeJSON(w, http.StatusConflict, dto.ConsistencyFromReport(report))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}

// DBHealth reports table counts, or 503 when the store is unreachable.
func (h *LedgerHandler) DBHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ledgerUC.DBHealth(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, &dto.DBHealthResponse{
			Status:    "unhealthy",
			Database:  "disconnected",
			Timestamp: h.now(),
			Error:     err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.DBHealthFromStats(stats, h.now()))
}
