package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/iho/txreplay/internal/domain"
)

// Amount parses a decimal literal into the optional form transactions
// carry.
func Amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Deposit builds a deposit transaction.
func Deposit(client domain.ClientID, id domain.TransactionID, amount string) domain.Transaction {
	return domain.Transaction{Type: domain.TypeDeposit, Client: client, ID: id, Amount: Amount(amount)}
}

// Withdraw builds a withdrawal transaction.
func Withdraw(client domain.ClientID, id domain.TransactionID, amount string) domain.Transaction {
	return domain.Transaction{Type: domain.TypeWithdraw, Client: client, ID: id, Amount: Amount(amount)}
}

// Dispute builds a dispute referencing a prior transaction.
func Dispute(client domain.ClientID, id domain.TransactionID) domain.Transaction {
	return domain.Transaction{Type: domain.TypeDispute, Client: client, ID: id}
}

// Resolve builds a resolve referencing a prior transaction.
func Resolve(client domain.ClientID, id domain.TransactionID) domain.Transaction {
	return domain.Transaction{Type: domain.TypeResolve, Client: client, ID: id}
}

// Chargeback builds a chargeback referencing a prior transaction.
func Chargeback(client domain.ClientID, id domain.TransactionID) domain.Transaction {
	return domain.Transaction{Type: domain.TypeChargeback, Client: client, ID: id}
}
