package pg

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct {
	err error
}

func (s failingSource) Conn(context.Context) (Pool, error) {
	return nil, s.err
}

func TestTxManager_Begin(t *testing.T) {
	const query = "UPDATE payments SET status = $1 WHERE reference = $2"

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		fnErr     error
		expectErr bool
	}{
		{
			name: "Commit",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs("Success", "ref").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "Rollback on error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(query)).
					WithArgs("Success", "ref").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectRollback()
			},
			fnErr:     errors.New("abort"),
			expectErr: true,
		},
		{
			name: "Begin fails",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(errors.New("no conn"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()
			tt.mockSetup(mock)

			source := Static(mock)
			db := New(source)
			tm := NewTXManager(source)

			err = tm.Begin(context.Background(), func(ctx context.Context) error {
				if _, err := db.Exec(ctx, query, "Success", "ref"); err != nil {
					return err
				}
				return tt.fnErr
			})
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	tm := NewTXManager(Static(mock))
	err = tm.Begin(context.Background(), func(ctx context.Context) error {
		return tm.Begin(ctx, func(ctx context.Context) error {
			_, ok := txFromContext(ctx)
			assert.True(t, ok)
			return nil
		})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_WithoutTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1")).
		WillReturnRows(pgxmock.NewRows([]string{"n"}).AddRow(1))
	mock.ExpectPing()

	db := New(Static(mock))
	var n int
	require.NoError(t, db.QueryRow(context.Background(), "SELECT 1").Scan(&n))
	assert.Equal(t, 1, n)
	assert.NoError(t, db.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_SourceUnavailable(t *testing.T) {
	db := New(failingSource{err: ErrConnection})
	ctx := context.Background()

	var n int
	assert.ErrorIs(t, db.QueryRow(ctx, "SELECT 1").Scan(&n), ErrConnection)

	_, err := db.Exec(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrConnection)

	rows, err := db.Query(ctx, "SELECT 1")
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, ErrConnection)

	assert.ErrorIs(t, db.Ping(ctx), ErrConnection)
	assert.ErrorIs(t, NewTXManager(failingSource{err: ErrConnection}).Begin(ctx, func(context.Context) error { return nil }), ErrConnection)
}
