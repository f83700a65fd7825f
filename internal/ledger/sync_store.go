package ledger

import (
	"sync"

	"github.com/iho/txreplay/internal/domain"
)

// SyncStore serializes access to a Store for callers that apply
// transactions from multiple goroutines, such as the HTTP serving mode.
type SyncStore struct {
	mu    sync.Mutex
	store *Store
}

// NewSyncStore wraps store.
func NewSyncStore(store *Store) *SyncStore {
	return &SyncStore{store: store}
}

// Apply applies one transaction under the store lock.
func (s *SyncStore) Apply(tx domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Apply(tx)
}

// Snapshots returns all account summaries in first-seen-client order.
func (s *SyncStore) Snapshots() []domain.AccountSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshots()
}

// Snapshot returns the summary of a single account if it exists.
func (s *SyncStore) Snapshot(client domain.ClientID) (domain.AccountSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot(client)
}
