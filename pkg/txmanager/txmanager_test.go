package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingAllocationService/pkg/dbmetrics"
)

type recordingTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *recordingTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *recordingTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *recordingTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *recordingTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *recordingTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx    *recordingTx
	opts  *sql.TxOptions
	begun int
}

func (b *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	b.opts = opts
	return b.tx, nil
}

func TestDoSerializable_CommitsOnSuccess(t *testing.T) {
	db := &fakeBeginner{tx: &recordingTx{}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
	assert.Equal(t, sql.LevelSerializable, db.opts.Isolation)
}

func TestDo_RollsBackOnError(t *testing.T) {
	db := &fakeBeginner{tx: &recordingTx{}}
	m := NewTransactionManager(db)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}

func TestDo_NestedReusesOuterTransaction(t *testing.T) {
	db := &fakeBeginner{tx: &recordingTx{}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, db.begun)
}

func TestDo_MapsSerializationFailure(t *testing.T) {
	db := &fakeBeginner{tx: &recordingTx{commitErr: &pq.Error{Code: "40001"}}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrSerialization)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(fmt.Errorf("wrap: %w", &pq.Error{Code: "40P01"})))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("plain")))
}

func TestDo_MapsSerializationFailureFromStatement(t *testing.T) {
	db := &fakeBeginner{tx: &recordingTx{}}
	m := NewTransactionManager(db)
	errExec := errors.New("repository: failed to execute query")
	errInternal := errors.New("usecase: internal error")

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		stmtErr := fmt.Errorf("%w: AdjustUsedSpots - execute update: %w", errExec, &pq.Error{Code: "40001"})
		return fmt.Errorf("%w: failed to adjust used spots: %w", errInternal, stmtErr)
	})

	assert.ErrorIs(t, err, ErrSerialization)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}
