// internal/store/postgres_test.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"ponto-intake/internal/adjustments"
	commonerrors "ponto-intake/internal/common/errors"
	"ponto-intake/internal/common/logger"
)

func newMockedStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	s := NewPostgresStore("postgres://test", logger.NewTestLogger(t))
	s.openDB = func() (*sql.DB, error) {
		return db, nil
	}
	return s, mock
}

func createTestRecords() []adjustments.Record {
	return []adjustments.Record{
		{
			RegisteredAt:     "15/08/2026 11:30:00",
			Branch:           "SP01",
			ManagerEmail:     "ana@example.com",
			ManagerName:      "Ana Souza",
			CollaboratorName: "Bruno Lima",
			AdjustmentDate:   "2026-08-10",
			AdjustedTime:     "08:00",
			Reason:           "Esqueci de bater o ponto",
		},
		{
			RegisteredAt:     "15/08/2026 11:30:00",
			Branch:           "SP01",
			ManagerEmail:     "ana@example.com",
			ManagerName:      "Ana Souza",
			CollaboratorName: "Bruno Lima",
			AdjustmentDate:   "2026-08-11",
			AdjustedTime:     "17:30",
			Reason:           "Consulta médica",
		},
	}
}

func TestInsertAll_Success(t *testing.T) {
	s, mock := newMockedStore(t)
	records := createTestRecords()

	for _, r := range records {
		mock.ExpectExec(`INSERT INTO ajustes`).
			WithArgs(
				r.RegisteredAt,
				r.Branch,
				r.ManagerEmail,
				r.ManagerName,
				r.CollaboratorName,
				r.AdjustmentDate,
				r.AdjustedTime,
				r.Reason,
			).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectClose()

	err := s.InsertAll(context.Background(), records)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertAll_StopsAtFirstFailure(t *testing.T) {
	s, mock := newMockedStore(t)
	records := createTestRecords()

	mock.ExpectExec(`INSERT INTO ajustes`).
		WithArgs(
			records[0].RegisteredAt,
			records[0].Branch,
			records[0].ManagerEmail,
			records[0].ManagerName,
			records[0].CollaboratorName,
			records[0].AdjustmentDate,
			records[0].AdjustedTime,
			records[0].Reason,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO ajustes`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectClose()

	err := s.InsertAll(context.Background(), records)

	assert.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeDatabaseInsertFailed, commonerrors.CodeOf(err))
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearAll_ReturnsCount(t *testing.T) {
	s, mock := newMockedStore(t)

	mock.ExpectExec(`DELETE FROM ajustes`).
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectClose()

	count, err := s.ClearAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClearAll_DeleteError(t *testing.T) {
	s, mock := newMockedStore(t)

	mock.ExpectExec(`DELETE FROM ajustes`).
		WillReturnError(errors.New("permission denied"))
	mock.ExpectClose()

	count, err := s.ClearAll(context.Background())

	assert.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeDatabaseDeleteFailed, commonerrors.CodeOf(err))
	assert.Zero(t, count)
}

func TestFetchAll_ReturnsRowsInStoreOrder(t *testing.T) {
	s, mock := newMockedStore(t)
	records := createTestRecords()

	rows := sqlmock.NewRows(adjustments.Columns())
	// Most recent batch first, as the query orders.
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		rows.AddRow(r.RegisteredAt, r.Branch, r.ManagerEmail, r.ManagerName,
			r.CollaboratorName, r.AdjustmentDate, r.AdjustedTime, r.Reason)
	}

	mock.ExpectQuery(`SELECT (.+) FROM ajustes ORDER BY data_registro DESC`).
		WillReturnRows(rows)
	mock.ExpectClose()

	fetched, err := s.FetchAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, fetched, 2)
	assert.Equal(t, records[1], fetched[0])
	assert.Equal(t, records[0], fetched[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAll_EmptyStore(t *testing.T) {
	s, mock := newMockedStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM ajustes`).
		WillReturnRows(sqlmock.NewRows(adjustments.Columns()))
	mock.ExpectClose()

	fetched, err := s.FetchAll(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, fetched)
}

func TestMissingDSN_FailsBeforeDialing(t *testing.T) {
	s := NewPostgresStore("", logger.NewTestLogger(t))
	dialed := false
	s.openDB = func() (*sql.DB, error) {
		dialed = true
		return nil, errors.New("should not be called")
	}

	err := s.InsertAll(context.Background(), createTestRecords())
	assert.Equal(t, commonerrors.ErrCodeConfigurationMissing, commonerrors.CodeOf(err))

	_, err = s.ClearAll(context.Background())
	assert.Equal(t, commonerrors.ErrCodeConfigurationMissing, commonerrors.CodeOf(err))

	_, err = s.FetchAll(context.Background())
	assert.Equal(t, commonerrors.ErrCodeConfigurationMissing, commonerrors.CodeOf(err))

	assert.False(t, dialed)
}
