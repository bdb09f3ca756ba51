// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"strings"

	_ "github.com/lib/pq"

	"ponto-intake/internal/adjustments"
	"ponto-intake/internal/common/errors"
	"ponto-intake/internal/common/logger"
)

const (
	insertRecordSQL = `
		INSERT INTO ajustes (
			data_registro, filial, email_gestor, nome_gestor,
			nome_colaborador, data_ajuste, horario_ajustado, motivo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	deleteAllSQL = `DELETE FROM ajustes`

	selectAllSQL = `
		SELECT data_registro, filial, email_gestor, nome_gestor,
		       nome_colaborador, data_ajuste, horario_ajustado, motivo
		FROM ajustes
		ORDER BY data_registro DESC`
)

// PostgresStore persists adjustment records in the ajustes table. Each
// operation opens its own connection handle from the DSN and closes it on
// every exit path; no pool state survives between invocations.
type PostgresStore struct {
	dsn    string
	logger logger.Logger

	// openDB is swapped in tests to inject a mock database.
	openDB func() (*sql.DB, error)
}

func NewPostgresStore(dsn string, log logger.Logger) *PostgresStore {
	s := &PostgresStore{
		dsn:    dsn,
		logger: log.WithFields(map[string]interface{}{"store": "postgres"}),
	}
	s.openDB = func() (*sql.DB, error) {
		return sql.Open("postgres", s.dsn)
	}
	return s
}

// connect validates the connection string before dialing so that a missing
// DATABASE_URL surfaces as a configuration error with no connection attempt.
func (s *PostgresStore) connect() (*sql.DB, error) {
	if strings.TrimSpace(s.dsn) == "" {
		return nil, errors.NewConfigurationError("DATABASE_URL")
	}

	db, err := s.openDB()
	if err != nil {
		return nil, errors.NewPersistenceError(errors.ErrCodeDatabaseConnectionFailed, "connect", err)
	}
	return db, nil
}

func (s *PostgresStore) InsertAll(ctx context.Context, records []adjustments.Record) error {
	db, err := s.connect()
	if err != nil {
		return err
	}
	defer db.Close()

	for i, r := range records {
		_, err := db.ExecContext(ctx, insertRecordSQL,
			r.RegisteredAt,
			r.Branch,
			r.ManagerEmail,
			r.ManagerName,
			r.CollaboratorName,
			r.AdjustmentDate,
			r.AdjustedTime,
			r.Reason,
		)
		if err != nil {
			s.logger.Error("record insert failed", map[string]interface{}{
				"error":    err,
				"position": i,
				"total":    len(records),
			})
			return errors.NewPersistenceError(errors.ErrCodeDatabaseInsertFailed, "insertAll", err)
		}
	}

	s.logger.Info("records inserted", map[string]interface{}{
		"count": len(records),
	})
	return nil
}

func (s *PostgresStore) ClearAll(ctx context.Context) (int64, error) {
	db, err := s.connect()
	if err != nil {
		return 0, err
	}
	defer db.Close()

	result, err := db.ExecContext(ctx, deleteAllSQL)
	if err != nil {
		return 0, errors.NewPersistenceError(errors.ErrCodeDatabaseDeleteFailed, "clearAll", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewPersistenceError(errors.ErrCodeDatabaseDeleteFailed, "clearAll", err)
	}

	s.logger.Info("store cleared", map[string]interface{}{
		"count": count,
	})
	return count, nil
}

func (s *PostgresStore) FetchAll(ctx context.Context) ([]adjustments.Record, error) {
	db, err := s.connect()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, selectAllSQL)
	if err != nil {
		return nil, errors.NewPersistenceError(errors.ErrCodeDatabaseQueryFailed, "fetchAll", err)
	}
	defer rows.Close()

	var records []adjustments.Record
	for rows.Next() {
		var r adjustments.Record
		err := rows.Scan(
			&r.RegisteredAt,
			&r.Branch,
			&r.ManagerEmail,
			&r.ManagerName,
			&r.CollaboratorName,
			&r.AdjustmentDate,
			&r.AdjustedTime,
			&r.Reason,
		)
		if err != nil {
			return nil, errors.NewPersistenceError(errors.ErrCodeDatabaseQueryFailed, "fetchAll", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewPersistenceError(errors.ErrCodeDatabaseQueryFailed, "fetchAll", err)
	}

	return records, nil
}
