package sqlite_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ignite/mailcore/internal/store"
	"github.com/ignite/mailcore/internal/store/sqlite"
	"github.com/ignite/mailcore/internal/store/storetest"
)

func TestContract(t *testing.T) {
	factory := func(t *testing.T) store.Store {
		s, err := sqlite.Open(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	}
	storetest.Run(t, factory)
	storetest.RunOrdered(t, factory)
}

func TestSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "mailcore.db")

	s, err := sqlite.Open(dsn)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "accounts", store.Record{ID: "a1", Data: json.RawMessage(`{"name":"Ada"}`)}))
	require.NoError(t, s.Close())

	reopened, err := sqlite.Open(dsn)
	require.NoError(t, err)
	defer reopened.Close()

	recs, err := reopened.List(ctx, "accounts")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.JSONEq(t, `{"name":"Ada"}`, string(recs[0].Data))
}

// Fault-path tests use sqlmock: driver errors must surface as store.ErrFault.
func TestDriverErrorsAreFaults(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk I/O error")

	t.Run("list", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`SELECT id, data FROM records`).WillReturnError(boom)

		_, err := sqlite.NewWithDB(db).List(ctx, "campaigns")
		require.ErrorIs(t, err, store.ErrFault)
		require.ErrorIs(t, err, boom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("put", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(`INSERT INTO records`).WillReturnError(boom)

		err := sqlite.NewWithDB(db).Put(ctx, "campaigns", store.Record{ID: "c1", Data: json.RawMessage(`{}`)})
		require.ErrorIs(t, err, store.ErrFault)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("remove", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(`DELETE FROM records`).WillReturnError(boom)

		err := sqlite.NewWithDB(db).Remove(ctx, "campaigns", "c1")
		require.ErrorIs(t, err, store.ErrFault)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}
