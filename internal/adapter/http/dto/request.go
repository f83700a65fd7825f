package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/txreplay/internal/domain"
)

// ApplyTransactionRequest represents a request to apply one transaction.
type ApplyTransactionRequest struct {
	Type   string           `json:"type"`
	Client uint16           `json:"client"`
	Tx     uint32           `json:"tx"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// ToDomain converts to a domain transaction, validating the type token
// and the amount rules.
func (r *ApplyTransactionRequest) ToDomain() (domain.Transaction, error) {
	kind, err := domain.ParseTransactionType(r.Type)
	if err != nil {
		return domain.Transaction{}, err
	}

	tx := domain.Transaction{
		Type:   kind,
		Client: domain.ClientID(r.Client),
		ID:     domain.TransactionID(r.Tx),
		Amount: r.Amount,
	}
	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}
