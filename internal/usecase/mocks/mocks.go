package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/iho/txreplay/internal/domain"
)

// MockTransactionSource is a mock implementation of TransactionSource.
// Without a NextFunc it yields the Transactions slice in order and then
// io.EOF.
type MockTransactionSource struct {
	mu           sync.Mutex
	Transactions []domain.Transaction
	next         int

	NextFunc func(ctx context.Context) (domain.Transaction, error)
}

func NewMockTransactionSource(txs ...domain.Transaction) *MockTransactionSource {
	return &MockTransactionSource{Transactions: txs}
}

func (m *MockTransactionSource) Next(ctx context.Context) (domain.Transaction, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.next >= len(m.Transactions) {
		return domain.Transaction{}, io.EOF
	}
	tx := m.Transactions[m.next]
	m.next++
	return tx, nil
}

// MockLedger is a mock implementation of Ledger. Without an ApplyFunc it
// records every transaction and accepts it.
type MockLedger struct {
	mu      sync.Mutex
	applied []domain.Transaction

	ApplyFunc     func(tx domain.Transaction) error
	SnapshotsFunc func() []domain.AccountSnapshot
}

func NewMockLedger() *MockLedger {
	return &MockLedger{}
}

func (m *MockLedger) Apply(tx domain.Transaction) error {
	if m.ApplyFunc != nil {
		return m.ApplyFunc(tx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied = append(m.applied, tx)
	return nil
}

func (m *MockLedger) Snapshots() []domain.AccountSnapshot {
	if m.SnapshotsFunc != nil {
		return m.SnapshotsFunc()
	}
	return nil
}

// Applied returns the transactions recorded by the default Apply.
func (m *MockLedger) Applied() []domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Transaction(nil), m.applied...)
}

// MockRejectionReporter is a mock implementation of RejectionReporter.
type MockRejectionReporter struct {
	mu       sync.Mutex
	rejected []domain.Transaction
	causes   []error

	RejectFunc func(ctx context.Context, tx domain.Transaction, err error)
}

func NewMockRejectionReporter() *MockRejectionReporter {
	return &MockRejectionReporter{}
}

func (m *MockRejectionReporter) Reject(ctx context.Context, tx domain.Transaction, err error) {
	if m.RejectFunc != nil {
		m.RejectFunc(ctx, tx, err)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected = append(m.rejected, tx)
	m.causes = append(m.causes, err)
}

func (m *MockRejectionReporter) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rejected)
}

// Rejected returns the transactions recorded by the default Reject.
func (m *MockRejectionReporter) Rejected() []domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Transaction(nil), m.rejected...)
}

// Causes returns the errors recorded by the default Reject.
func (m *MockRejectionReporter) Causes() []error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]error(nil), m.causes...)
}

// MockSnapshotWriter is a mock implementation of SnapshotWriter.
type MockSnapshotWriter struct {
	mu      sync.Mutex
	written []domain.AccountSnapshot

	WriteFunc func(ctx context.Context, snapshots []domain.AccountSnapshot) error
}

func NewMockSnapshotWriter() *MockSnapshotWriter {
	return &MockSnapshotWriter{}
}

func (m *MockSnapshotWriter) Write(ctx context.Context, snapshots []domain.AccountSnapshot) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, snapshots)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.written = append(m.written, snapshots...)
	return nil
}

// Written returns the snapshots recorded by the default Write.
func (m *MockSnapshotWriter) Written() []domain.AccountSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AccountSnapshot(nil), m.written...)
}
