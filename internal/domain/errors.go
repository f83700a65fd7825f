package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Account errors
	ErrAccountLocked          = errors.New("account is locked")
	ErrTransactionNotDisputed = errors.New("transaction is not under dispute")

	// Validation errors
	ErrAmountRequired         = errors.New("amount is required for this transaction type")
	ErrAmountNotAllowed       = errors.New("amount is not allowed for this transaction type")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
)

// OverdraftError reports a withdrawal that exceeds the available balance.
type OverdraftError struct {
	Client    ClientID
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *OverdraftError) Error() string {
	return fmt.Sprintf("tried to withdraw %s from an available balance of %s",
		e.Requested, e.Available)
}

// ErrorCode returns a stable token for a rejection cause, used for
// metric labels and API error payloads.
func ErrorCode(err error) string {
	var overdraft *OverdraftError
	switch {
	case errors.As(err, &overdraft):
		return "overdraft"
	case errors.Is(err, ErrTransactionNotDisputed):
		return "not_disputed"
	case errors.Is(err, ErrAccountLocked):
		return "account_locked"
	default:
		return "other"
	}
}
