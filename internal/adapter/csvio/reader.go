package csvio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/txreplay/internal/domain"
	"github.com/iho/txreplay/internal/usecase"
)

// Column names recognized in the header row.
const (
	colType   = "type"
	colClient = "client"
	colTx     = "tx"
	colAmount = "amount"
)

// ErrMissingColumn marks a header that lacks a required column. Unlike
// a malformed row this is fatal: without the header nothing can be read.
var ErrMissingColumn = errors.New("input header is missing a required column")

// Reader decodes transactions from a CSV stream. The header row names
// the columns, so column order does not matter, and all values are
// whitespace-trimmed. Rows that cannot be decoded come back as errors
// wrapping usecase.ErrMalformedRow so the replay can skip them.
type Reader struct {
	csv     *csv.Reader
	columns map[string]int
}

// NewReader wraps r. The header row is consumed on the first Next call.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

func (r *Reader) readHeader() error {
	if r.columns != nil {
		return nil
	}

	record, err := r.csv.Read()
	if err != nil {
		return err
	}

	r.columns = make(map[string]int, len(record))
	for i, name := range record {
		r.columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colType, colClient, colTx} {
		if _, ok := r.columns[required]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, required)
		}
	}
	return nil
}

// Next returns the next transaction in input order, io.EOF at the end
// of the stream.
func (r *Reader) Next(ctx context.Context) (domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Transaction{}, err
	}
	if err := r.readHeader(); err != nil {
		return domain.Transaction{}, err
	}

	record, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return domain.Transaction{}, io.EOF
	}
	if err != nil {
		// structurally broken row, e.g. a bare quote
		return domain.Transaction{}, fmt.Errorf("%w: %v", usecase.ErrMalformedRow, err)
	}

	tx, err := r.decode(record)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", usecase.ErrMalformedRow, err)
	}
	return tx, nil
}

func (r *Reader) field(record []string, name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (r *Reader) decode(record []string) (domain.Transaction, error) {
	kind, err := domain.ParseTransactionType(r.field(record, colType))
	if err != nil {
		return domain.Transaction{}, err
	}

	client, err := strconv.ParseUint(r.field(record, colClient), 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("client: %v", err)
	}

	id, err := strconv.ParseUint(r.field(record, colTx), 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("tx: %v", err)
	}

	tx := domain.Transaction{
		Type:   kind,
		Client: domain.ClientID(client),
		ID:     domain.TransactionID(id),
	}

	if raw := r.field(record, colAmount); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("amount: %v", err)
		}
		tx.Amount = &amount
	}

	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}
