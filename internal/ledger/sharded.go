package ledger

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/iho/txreplay/internal/domain"
)

// shardBuffer bounds how far a shard's inbox can run ahead of its worker.
const shardBuffer = 256

// RejectionFunc receives transactions the ledger refused, paired with
// the cause. Implementations must be safe for concurrent use.
type RejectionFunc func(tx domain.Transaction, err error)

// Sharded fans transactions out to per-shard stores, partitioned by
// client id. All transactions of one client land on the same shard and
// apply in submission order, while different clients proceed in
// parallel. Each shard owns the history of its clients, so a dispute
// can never observe a half-applied deposit.
type Sharded struct {
	reject RejectionFunc
	shards []chan domain.Transaction
	stores []*Store
	group  *errgroup.Group
	ctx    context.Context

	closed   atomic.Bool
	closeOne sync.Once
	closeErr error
}

// NewSharded starts n shard workers. Rejections are delivered on
// reject; ctx cancellation stops the workers early.
func NewSharded(ctx context.Context, n int, reject RejectionFunc, opts ...Option) *Sharded {
	if n < 1 {
		n = 1
	}

	group, ctx := errgroup.WithContext(ctx)
	s := &Sharded{
		reject: reject,
		shards: make([]chan domain.Transaction, n),
		stores: make([]*Store, n),
		group:  group,
		ctx:    ctx,
	}

	for i := 0; i < n; i++ {
		store := NewStore(opts...)
		ch := make(chan domain.Transaction, shardBuffer)
		s.stores[i] = store
		s.shards[i] = ch

		group.Go(func() error {
			for {
				select {
				case tx, ok := <-ch:
					if !ok {
						return nil
					}
					if err := store.Apply(tx); err != nil {
						s.reject(tx, err)
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	return s
}

// Apply queues one transaction on its client's shard. Errors from
// individual transactions are not returned here; they go to the
// rejection callback from the owning worker.
func (s *Sharded) Apply(tx domain.Transaction) error {
	if s.closed.Load() {
		return ErrEngineClosed
	}
	select {
	case s.shards[int(tx.Client)%len(s.shards)] <- tx:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

// Close drains the shards and waits for the workers. Safe to call more
// than once.
func (s *Sharded) Close() error {
	s.closeOne.Do(func() {
		s.closed.Store(true)
		for _, ch := range s.shards {
			close(ch)
		}
		s.closeErr = s.group.Wait()
	})
	return s.closeErr
}

// Snapshots drains the engine and returns the merged account summaries.
// First-seen order is meaningless across shards, so the merge sorts by
// client id to keep the output deterministic.
func (s *Sharded) Snapshots() []domain.AccountSnapshot {
	_ = s.Close()

	var out []domain.AccountSnapshot
	for _, store := range s.stores {
		out = append(out, store.Snapshots()...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}
