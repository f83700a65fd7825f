package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/txreplay/internal/adapter/http/dto"
	"github.com/iho/txreplay/internal/domain"
)

// LedgerService defines the behavior the handlers need from the ledger.
type LedgerService interface {
	Apply(tx domain.Transaction) error
	Snapshot(client domain.ClientID) (domain.AccountSnapshot, bool)
	Snapshots() []domain.AccountSnapshot
}

// TransactionHandler handles transaction ingestion requests.
type TransactionHandler struct {
	ledger LedgerService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledger LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// Apply applies one transaction and returns the resulting account
// summary. A transaction the ledger refuses comes back as 422 with the
// rejection code; the account is unchanged.
func (h *TransactionHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	tx, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	if err := h.ledger.Apply(tx); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), domain.ErrorCode(err))
		return
	}

	snap, ok := h.ledger.Snapshot(tx.Client)
	if !ok {
		// the ledger creates the account before applying, so this
		// should be unreachable
		writeError(w, http.StatusInternalServerError, "account not found after apply", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromSnapshot(snap))
}
