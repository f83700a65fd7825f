package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ClientID identifies an account holder.
type ClientID uint16

// TransactionID identifies a transaction. Ids are treated as scoped to
// their client unless the input format guarantees global uniqueness.
type TransactionID uint32

// TransactionType enumerates the five record kinds of the input log.
type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdraw   TransactionType = "withdraw"
	TypeDispute    TransactionType = "dispute"
	TypeResolve    TransactionType = "resolve"
	TypeChargeback TransactionType = "chargeback"
)

// ParseTransactionType parses a case-insensitive type token.
func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeDeposit, TypeWithdraw, TypeDispute, TypeResolve, TypeChargeback:
		return t, nil
	default:
		return "", ErrUnknownTransactionType
	}
}

// MovesFunds reports whether the kind carries its own amount. The other
// kinds reference a prior transaction by id and reuse its recorded amount.
func (t TransactionType) MovesFunds() bool {
	return t == TypeDeposit || t == TypeWithdraw
}

// Transaction is one immutable record of the input log. Amount is an
// explicit optional: required for deposits and withdrawals, absent for
// the dispute-class kinds.
type Transaction struct {
	Type   TransactionType
	Client ClientID
	ID     TransactionID
	Amount *decimal.Decimal
}

// Validate checks the amount field against the transaction kind. A
// deposit or withdrawal with a missing amount is an input error, never
// a zero-value movement.
func (t Transaction) Validate() error {
	switch {
	case t.Type.MovesFunds() && t.Amount == nil:
		return ErrAmountRequired
	case t.Type.MovesFunds() && t.Amount.LessThanOrEqual(decimal.Zero):
		return ErrInvalidAmount
	case !t.Type.MovesFunds() && t.Amount != nil:
		return ErrAmountNotAllowed
	}
	return nil
}

// AmountValue returns the carried amount, zero when absent. Callers are
// expected to have validated the transaction first.
func (t Transaction) AmountValue() decimal.Decimal {
	if t.Amount == nil {
		return decimal.Zero
	}
	return *t.Amount
}
