package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/iho/txreplay/internal/infrastructure/metrics"
)

// ReplayUseCase drives one full pass over a transaction source: pull
// transactions in order, apply them to the ledger, report rejections on
// the side channel and write the final snapshots.
type ReplayUseCase struct {
	ledger   Ledger
	source   TransactionSource
	writer   SnapshotWriter
	reporter RejectionReporter
	metrics  *metrics.Metrics
}

// NewReplayUseCase creates a new ReplayUseCase. metrics may be nil.
func NewReplayUseCase(
	ledger Ledger,
	source TransactionSource,
	writer SnapshotWriter,
	reporter RejectionReporter,
	m *metrics.Metrics,
) *ReplayUseCase {
	return &ReplayUseCase{
		ledger:   ledger,
		source:   source,
		writer:   writer,
		reporter: reporter,
		metrics:  m,
	}
}

// ReplaySummary counts what happened during one run.
type ReplaySummary struct {
	Processed int // transactions handed to the ledger
	Applied   int // transactions that mutated an account
	Rejected  int // transactions the ledger refused
	Skipped   int // malformed rows that never reached the ledger
	Accounts  int
	Locked    int
	Elapsed   time.Duration
}

// Run consumes the source to exhaustion. A rejected transaction is
// reported and permanently dropped; the run keeps going. Only a broken
// source, a failed write of the summary or context cancellation abort
// the run.
func (uc *ReplayUseCase) Run(ctx context.Context) (ReplaySummary, error) {
	start := time.Now()
	var summary ReplaySummary

loop:
	for {
		tx, err := uc.source.Next(ctx)
		switch {
		case errors.Is(err, io.EOF):
			break loop
		case errors.Is(err, ErrMalformedRow):
			summary.Skipped++
			if uc.metrics != nil {
				uc.metrics.RowsSkipped.Inc()
			}
			continue
		case err != nil:
			return summary, fmt.Errorf("read transaction: %w", err)
		}

		summary.Processed++
		if err := uc.ledger.Apply(tx); err != nil {
			uc.reporter.Reject(ctx, tx, err)
			continue
		}
		if uc.metrics != nil {
			uc.metrics.TransactionsApplied.WithLabelValues(string(tx.Type)).Inc()
		}
	}

	snapshots := uc.ledger.Snapshots()

	// Sharded ledgers deliver rejections through the reporter rather
	// than the Apply return value, so the counts come from the reporter
	// after the ledger has drained.
	summary.Rejected = uc.reporter.Count()
	summary.Applied = summary.Processed - summary.Rejected
	summary.Accounts = len(snapshots)
	for _, snap := range snapshots {
		if snap.Locked {
			summary.Locked++
		}
	}
	summary.Elapsed = time.Since(start)

	if uc.metrics != nil {
		uc.metrics.ReplayDuration.Observe(summary.Elapsed.Seconds())
		uc.metrics.AccountsTouched.Set(float64(summary.Accounts))
		uc.metrics.AccountsLocked.Set(float64(summary.Locked))
	}

	if err := uc.writer.Write(ctx, snapshots); err != nil {
		return summary, fmt.Errorf("write snapshots: %w", err)
	}

	return summary, nil
}
