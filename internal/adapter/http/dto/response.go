package dto

import (
	"github.com/iho/txreplay/internal/domain"
)

// accountDigits is the fixed number of fractional digits in responses.
const accountDigits = 4

// AccountResponse represents one account summary.
type AccountResponse struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// AccountFromSnapshot converts a domain snapshot to a response.
func AccountFromSnapshot(snap domain.AccountSnapshot) AccountResponse {
	return AccountResponse{
		Client:    uint16(snap.Client),
		Available: snap.Available.StringFixed(accountDigits),
		Held:      snap.Held.StringFixed(accountDigits),
		Total:     snap.Total.StringFixed(accountDigits),
		Locked:    snap.Locked,
	}
}

// AccountsFromSnapshots converts a list of snapshots.
func AccountsFromSnapshots(snaps []domain.AccountSnapshot) []AccountResponse {
	out := make([]AccountResponse, len(snaps))
	for i, snap := range snaps {
		out[i] = AccountFromSnapshot(snap)
	}
	return out
}

// ErrorResponse represents an error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
