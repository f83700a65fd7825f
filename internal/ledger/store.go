package ledger

import (
	"github.com/iho/txreplay/internal/domain"
)

// HistoryScope controls how retained transactions are keyed.
type HistoryScope string

const (
	// ScopePerClient keys history by (client, transaction id), so a
	// transaction id reused by another client cannot cross-contaminate
	// disputes. This is the default.
	ScopePerClient HistoryScope = "client"

	// ScopeGlobal keys history by transaction id alone, for inputs
	// that guarantee globally unique ids.
	ScopeGlobal HistoryScope = "global"
)

// ParseHistoryScope parses a scope token from configuration.
func ParseHistoryScope(s string) (HistoryScope, error) {
	switch scope := HistoryScope(s); scope {
	case ScopePerClient, ScopeGlobal:
		return scope, nil
	default:
		return "", ErrUnknownHistoryScope
	}
}

type historyKey struct {
	client domain.ClientID
	id     domain.TransactionID
}

// Store routes transactions to accounts and retains the balance-moving
// ones so later dispute references can recover their amounts. It is not
// safe for concurrent use; wrap it in a SyncStore or partition clients
// across a Sharded engine.
type Store struct {
	scope    HistoryScope
	accounts map[domain.ClientID]*domain.Account
	order    []domain.ClientID
	history  map[historyKey]domain.Transaction
}

// Option configures a Store.
type Option func(*Store)

// WithHistoryScope overrides the default per-client history keying.
func WithHistoryScope(scope HistoryScope) Option {
	return func(s *Store) { s.scope = scope }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		scope:    ScopePerClient,
		accounts: make(map[domain.ClientID]*domain.Account),
		history:  make(map[historyKey]domain.Transaction),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(client domain.ClientID, id domain.TransactionID) historyKey {
	if s.scope == ScopeGlobal {
		return historyKey{id: id}
	}
	return historyKey{client: client, id: id}
}

// historyView adapts the store's history to the per-client read-only
// lookup the account state machine expects.
type historyView struct {
	store  *Store
	client domain.ClientID
}

func (v historyView) Get(id domain.TransactionID) (domain.Transaction, bool) {
	tx, ok := v.store.history[v.store.key(v.client, id)]
	return tx, ok
}

// Apply routes one transaction to its account, lazily creating the
// account on first reference. Transactions that moved funds are
// retained in history; rejected ones are dropped and the cause is
// returned. A non-nil error never leaves account state changed, and
// never stops the run: the caller reports it and moves on.
func (s *Store) Apply(tx domain.Transaction) error {
	account, ok := s.accounts[tx.Client]
	if !ok {
		account = domain.NewAccount(tx.Client)
		s.accounts[tx.Client] = account
		s.order = append(s.order, tx.Client)
	}

	retain, err := account.Apply(historyView{store: s, client: tx.Client}, tx)
	if err != nil {
		return err
	}
	if retain {
		s.history[s.key(tx.Client, tx.ID)] = tx
	}
	return nil
}

// Snapshots returns one summary per account in first-seen-client order.
func (s *Store) Snapshots() []domain.AccountSnapshot {
	out := make([]domain.AccountSnapshot, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.accounts[id].Snapshot())
	}
	return out
}

// Snapshot returns the summary of a single account if it exists.
func (s *Store) Snapshot(client domain.ClientID) (domain.AccountSnapshot, bool) {
	account, ok := s.accounts[client]
	if !ok {
		return domain.AccountSnapshot{}, false
	}
	return account.Snapshot(), true
}

// AccountCount returns the number of accounts touched so far.
func (s *Store) AccountCount() int { return len(s.accounts) }

// HistorySize returns the number of retained transactions.
func (s *Store) HistorySize() int { return len(s.history) }
