package domain

import "github.com/shopspring/decimal"

// History is a read-only view of the retained deposits and withdrawals
// of one client, keyed by transaction id. The ledger provides it when
// applying a transaction.
type History interface {
	Get(id TransactionID) (Transaction, bool)
}

// Account holds one client's balance and dispute state.
//
// There is no stored held field. The account keeps a total balance and
// the set of currently disputed transactions; held is the sum over that
// set and available is total minus held. Set membership is the guard
// that makes a second dispute or a second resolve of the same
// transaction a no-op.
type Account struct {
	id       ClientID
	balance  decimal.Decimal
	locked   bool
	disputes map[TransactionID]Transaction
}

// NewAccount creates an empty unlocked account.
func NewAccount(id ClientID) *Account {
	return &Account{
		id:       id,
		balance:  decimal.Zero,
		disputes: make(map[TransactionID]Transaction),
	}
}

// ID returns the owning client id.
func (a *Account) ID() ClientID { return a.id }

// Locked reports whether a chargeback has frozen the account. Locked is
// terminal: no transaction unlocks an account.
func (a *Account) Locked() bool { return a.locked }

// Total is the full ledger balance, disputed funds included.
func (a *Account) Total() decimal.Decimal { return a.balance }

// Held sums the amounts of the currently disputed transactions.
func (a *Account) Held() decimal.Decimal {
	held := decimal.Zero
	for _, tx := range a.disputes {
		held = held.Add(tx.AmountValue())
	}
	return held
}

// Available is total minus held.
func (a *Account) Available() decimal.Decimal {
	return a.balance.Sub(a.Held())
}

// Apply mutates the account with one transaction. The returned retain
// flag tells the ledger whether to keep the transaction in history so a
// later dispute can recover its amount. On a non-nil error the account
// is unchanged and the transaction must not be retained.
func (a *Account) Apply(history History, tx Transaction) (retain bool, err error) {
	if a.locked {
		return false, ErrAccountLocked
	}

	switch tx.Type {
	case TypeDeposit:
		a.balance = a.balance.Add(tx.AmountValue())
		return true, nil

	case TypeWithdraw:
		amount := tx.AmountValue()
		available := a.Available()
		if available.Sub(amount).IsNegative() {
			return false, &OverdraftError{Client: a.id, Available: available, Requested: amount}
		}
		a.balance = a.balance.Sub(amount)
		return true, nil

	case TypeDispute:
		ref, ok := history.Get(tx.ID)
		if !ok {
			// dispute against a transaction this client never made,
			// or one rejected upstream: ignored
			return false, nil
		}
		if _, disputed := a.disputes[tx.ID]; !disputed {
			a.disputes[tx.ID] = ref
		}
		return false, nil

	case TypeResolve:
		delete(a.disputes, tx.ID)
		return false, nil

	case TypeChargeback:
		ref, disputed := a.disputes[tx.ID]
		if !disputed {
			return false, ErrTransactionNotDisputed
		}
		delete(a.disputes, tx.ID)
		a.balance = a.balance.Sub(ref.AmountValue())
		a.locked = true
		return false, nil

	default:
		return false, ErrUnknownTransactionType
	}
}

// Snapshot returns the reportable summary of the account.
func (a *Account) Snapshot() AccountSnapshot {
	held := a.Held()
	return AccountSnapshot{
		Client:    a.id,
		Available: a.balance.Sub(held),
		Held:      held,
		Total:     a.balance,
		Locked:    a.locked,
	}
}
