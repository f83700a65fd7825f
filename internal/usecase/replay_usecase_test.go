package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/txreplay/internal/domain"
	"github.com/iho/txreplay/internal/usecase"
	"github.com/iho/txreplay/internal/usecase/mocks"
)

func deposit(client domain.ClientID, id domain.TransactionID, amt string) domain.Transaction {
	d := decimal.RequireFromString(amt)
	return domain.Transaction{Type: domain.TypeDeposit, Client: client, ID: id, Amount: &d}
}

func TestReplayUseCase_Run(t *testing.T) {
	source := mocks.NewMockTransactionSource(
		deposit(1, 1, "1.0"),
		deposit(2, 2, "2.0"),
		domain.Transaction{Type: domain.TypeDispute, Client: 1, ID: 1},
	)
	ledger := mocks.NewMockLedger()
	ledger.SnapshotsFunc = func() []domain.AccountSnapshot {
		return []domain.AccountSnapshot{
			{Client: 1, Total: decimal.RequireFromString("1.0")},
			{Client: 2, Total: decimal.RequireFromString("2.0"), Locked: true},
		}
	}
	reporter := mocks.NewMockRejectionReporter()
	writer := mocks.NewMockSnapshotWriter()

	uc := usecase.NewReplayUseCase(ledger, source, writer, reporter, nil)
	summary, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Processed)
	assert.Equal(t, 3, summary.Applied)
	assert.Equal(t, 0, summary.Rejected)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 2, summary.Accounts)
	assert.Equal(t, 1, summary.Locked)

	assert.Len(t, ledger.Applied(), 3)
	assert.Len(t, writer.Written(), 2)
}

func TestReplayUseCase_Run_RejectionsAreReportedAndSkipped(t *testing.T) {
	overdraft := &domain.OverdraftError{Client: 1}
	source := mocks.NewMockTransactionSource(
		deposit(1, 1, "1.0"),
		deposit(1, 2, "1.0"),
	)
	ledger := mocks.NewMockLedger()
	ledger.ApplyFunc = func(tx domain.Transaction) error {
		if tx.ID == 2 {
			return overdraft
		}
		return nil
	}
	reporter := mocks.NewMockRejectionReporter()
	writer := mocks.NewMockSnapshotWriter()

	uc := usecase.NewReplayUseCase(ledger, source, writer, reporter, nil)
	summary, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Applied)
	assert.Equal(t, 1, summary.Rejected)

	require.Len(t, reporter.Rejected(), 1)
	assert.Equal(t, domain.TransactionID(2), reporter.Rejected()[0].ID)
	assert.Equal(t, overdraft, reporter.Causes()[0])
}

func TestReplayUseCase_Run_MalformedRowsAreCounted(t *testing.T) {
	rows := []struct {
		tx  domain.Transaction
		err error
	}{
		{tx: deposit(1, 1, "1.0")},
		{err: fmt.Errorf("%w: bad amount", usecase.ErrMalformedRow)},
		{tx: deposit(1, 2, "2.0")},
		{err: io.EOF},
	}
	i := 0
	source := &mocks.MockTransactionSource{}
	source.NextFunc = func(ctx context.Context) (domain.Transaction, error) {
		row := rows[i]
		i++
		return row.tx, row.err
	}

	ledger := mocks.NewMockLedger()
	reporter := mocks.NewMockRejectionReporter()
	writer := mocks.NewMockSnapshotWriter()

	uc := usecase.NewReplayUseCase(ledger, source, writer, reporter, nil)
	summary, err := uc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Applied)
}

func TestReplayUseCase_Run_SourceFailureAborts(t *testing.T) {
	broken := errors.New("disk on fire")
	source := &mocks.MockTransactionSource{}
	source.NextFunc = func(ctx context.Context) (domain.Transaction, error) {
		return domain.Transaction{}, broken
	}

	uc := usecase.NewReplayUseCase(
		mocks.NewMockLedger(), source, mocks.NewMockSnapshotWriter(), mocks.NewMockRejectionReporter(), nil)

	_, err := uc.Run(context.Background())
	assert.ErrorIs(t, err, broken)
}

func TestReplayUseCase_Run_WriteFailureSurfaces(t *testing.T) {
	source := mocks.NewMockTransactionSource(deposit(1, 1, "1.0"))
	writer := mocks.NewMockSnapshotWriter()
	writer.WriteFunc = func(ctx context.Context, snapshots []domain.AccountSnapshot) error {
		return errors.New("stdout closed")
	}

	uc := usecase.NewReplayUseCase(
		mocks.NewMockLedger(), source, writer, mocks.NewMockRejectionReporter(), nil)

	summary, err := uc.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, summary.Applied)
}
