package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/txreplay/internal/adapter/http/dto"
	"github.com/iho/txreplay/internal/domain"
)

// AccountHandler handles account summary requests.
type AccountHandler struct {
	ledger LedgerService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledger LedgerService) *AccountHandler {
	return &AccountHandler{ledger: ledger}
}

// List returns all account summaries.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.AccountsFromSnapshots(h.ledger.Snapshots()))
}

// Get returns the summary of a single account.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "client")
	client, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id", "")
		return
	}

	snap, ok := h.ledger.Snapshot(domain.ClientID(client))
	if !ok {
		writeError(w, http.StatusNotFound, "account not found", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromSnapshot(snap))
}
