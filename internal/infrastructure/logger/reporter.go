package logger

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/iho/txreplay/internal/domain"
	"github.com/iho/txreplay/internal/infrastructure/metrics"
)

// Reporter logs rejected transactions on the diagnostic stream and
// counts them. Safe for concurrent use, so it can serve the sharded
// engine directly.
type Reporter struct {
	log     zerolog.Logger
	metrics *metrics.Metrics
	count   atomic.Int64
}

// NewReporter creates a Reporter. metrics may be nil.
func NewReporter(log zerolog.Logger, m *metrics.Metrics) *Reporter {
	return &Reporter{log: log, metrics: m}
}

// Reject records one rejected transaction with its full content.
func (r *Reporter) Reject(ctx context.Context, tx domain.Transaction, err error) {
	r.count.Add(1)
	if r.metrics != nil {
		r.metrics.TransactionsRejected.WithLabelValues(domain.ErrorCode(err)).Inc()
	}

	evt := r.log.Warn().
		Str("type", string(tx.Type)).
		Uint16("client", uint16(tx.Client)).
		Uint32("tx", uint32(tx.ID)).
		Err(err)
	if tx.Amount != nil {
		evt = evt.Str("amount", tx.Amount.String())
	}
	evt.Msg("transaction rejected")
}

// Count returns the number of rejections reported so far.
func (r *Reporter) Count() int {
	return int(r.count.Load())
}
