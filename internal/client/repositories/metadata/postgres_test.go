package metadata

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*SQLRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgres_GetUsesDollarPlaceholders(t *testing.T) {
	r, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM metadata WHERE key = $1`)).
		WithArgs("settings_u1").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"a":1}`)))

	v, err := r.Get(context.Background(), "settings_u1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetMissing(t *testing.T) {
	r, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM metadata WHERE key = $1`)).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetUpserts(t *testing.T) {
	r, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO metadata (key, value) VALUES ($1, $2)`)).
		WithArgs("k", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Set(context.Background(), "k", []byte("v")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SetErrorWrapped(t *testing.T) {
	r, mock := newMock(t)
	boom := errors.New("connection reset")

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO metadata`)).WillReturnError(boom)

	err := r.Set(context.Background(), "k", []byte("v"))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to set metadata[k]")
}

func TestPostgres_DeleteAndClear(t *testing.T) {
	r, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM metadata WHERE key = $1`)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM metadata`)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, r.Delete(context.Background(), "k"))
	require.NoError(t, r.Clear(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_List(t *testing.T) {
	r, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM metadata`)).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("a", []byte{1}).
			AddRow("b", []byte{2}))

	m, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": {1}, "b": {2}}, m)
	require.NoError(t, mock.ExpectationsWereMet())
}
