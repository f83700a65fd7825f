package usecase

import (
	"context"
	"errors"

	"github.com/iho/txreplay/internal/domain"
)

// ErrMalformedRow marks an input row the source could not turn into a
// well-typed transaction. The replay skips such rows; the ledger never
// sees them.
var ErrMalformedRow = errors.New("malformed input row")

// TransactionSource yields transactions in input order. Next returns
// io.EOF once the source is exhausted and an error wrapping
// ErrMalformedRow for rows that should be skipped.
type TransactionSource interface {
	Next(ctx context.Context) (domain.Transaction, error)
}

// Ledger applies transactions and reports account summaries. Apply
// returns the rejection cause for implementations that reject inline;
// concurrent implementations may deliver rejections out of band instead.
type Ledger interface {
	Apply(tx domain.Transaction) error
	Snapshots() []domain.AccountSnapshot
}

// RejectionReporter is the diagnostic side channel for transactions the
// ledger refused. It must never write to the primary output stream.
type RejectionReporter interface {
	Reject(ctx context.Context, tx domain.Transaction, err error)
	Count() int
}

// SnapshotWriter renders the final account summaries.
type SnapshotWriter interface {
	Write(ctx context.Context, snapshots []domain.AccountSnapshot) error
}
