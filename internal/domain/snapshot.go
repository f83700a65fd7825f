package domain

import "github.com/shopspring/decimal"

// AccountSnapshot is a read-only summary of one account, taken for
// reporting. Available, held and total satisfy available + held == total.
type AccountSnapshot struct {
	Client    ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}
