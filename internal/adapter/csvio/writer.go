package csvio

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iho/txreplay/internal/domain"
)

// outputDigits is the fixed number of fractional digits in the summary.
const outputDigits = 4

// Writer renders account snapshots as the summary CSV. It writes to the
// primary output stream only; diagnostics belong on the logger.
type Writer struct {
	csv *csv.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// Write emits the header and one row per account.
func (w *Writer) Write(ctx context.Context, snapshots []domain.AccountSnapshot) error {
	if err := w.csv.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return err
	}

	for _, snap := range snapshots {
		if err := ctx.Err(); err != nil {
			return err
		}
		record := []string{
			strconv.FormatUint(uint64(snap.Client), 10),
			snap.Available.StringFixed(outputDigits),
			snap.Held.StringFixed(outputDigits),
			snap.Total.StringFixed(outputDigits),
			strconv.FormatBool(snap.Locked),
		}
		if err := w.csv.Write(record); err != nil {
			return err
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}
