// internal/store/spreadsheet.go
package store

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"ponto-intake/internal/adjustments"
	"ponto-intake/internal/common/errors"
	"ponto-intake/internal/common/logger"
)

// SpreadsheetStore is the legacy workbook backend: rows are appended to a
// named sheet of an XLSX file, with the column names on the first row. It
// satisfies the same Store contract as the relational backend. Operational
// constraint: the workbook file must be writable by the process.
type SpreadsheetStore struct {
	path   string
	sheet  string
	logger logger.Logger
}

func NewSpreadsheetStore(path, sheet string, log logger.Logger) *SpreadsheetStore {
	if sheet == "" {
		sheet = "REGISTRO"
	}
	return &SpreadsheetStore{
		path:   path,
		sheet:  sheet,
		logger: log.WithFields(map[string]interface{}{"store": "spreadsheet"}),
	}
}

// open loads the workbook, creating it with a header row when absent.
func (s *SpreadsheetStore) open() (*excelize.File, error) {
	if strings.TrimSpace(s.path) == "" {
		return nil, errors.NewConfigurationError("SPREADSHEET_PATH")
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		f := excelize.NewFile()
		if err := f.SetSheetName("Sheet1", s.sheet); err != nil {
			return nil, errors.NewPersistenceError(errors.ErrCodeDatabaseConnectionFailed, "open", err)
		}
		if err := s.writeHeader(f); err != nil {
			return nil, err
		}
		return f, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.NewPersistenceError(errors.ErrCodeDatabaseConnectionFailed, "open", err)
	}

	if idx, _ := f.GetSheetIndex(s.sheet); idx < 0 {
		if _, err := f.NewSheet(s.sheet); err != nil {
			return nil, errors.NewPersistenceError(errors.ErrCodeDatabaseConnectionFailed, "open", err)
		}
		if err := s.writeHeader(f); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (s *SpreadsheetStore) writeHeader(f *excelize.File) error {
	header := make([]interface{}, 0, len(adjustments.Columns()))
	for _, column := range adjustments.Columns() {
		header = append(header, column)
	}
	if err := f.SetSheetRow(s.sheet, "A1", &header); err != nil {
		return errors.NewPersistenceError(errors.ErrCodeDatabaseInsertFailed, "writeHeader", err)
	}
	return nil
}

func (s *SpreadsheetStore) InsertAll(ctx context.Context, records []adjustments.Record) error {
	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return errors.NewPersistenceError(errors.ErrCodeDatabaseQueryFailed, "insertAll", err)
	}

	next := len(rows) + 1
	if next < 2 {
		next = 2
	}

	for _, record := range records {
		values := record.Values()
		row := make([]interface{}, 0, len(values))
		for _, v := range values {
			row = append(row, v)
		}
		cell := fmt.Sprintf("A%d", next)
		if err := f.SetSheetRow(s.sheet, cell, &row); err != nil {
			return errors.NewPersistenceError(errors.ErrCodeDatabaseInsertFailed, "insertAll", err)
		}
		next++
	}

	if err := f.SaveAs(s.path); err != nil {
		return errors.NewPersistenceError(errors.ErrCodeDatabaseInsertFailed, "insertAll", err)
	}

	s.logger.Info("records appended to workbook", map[string]interface{}{
		"count": len(records),
		"path":  s.path,
	})
	return nil
}

func (s *SpreadsheetStore) ClearAll(ctx context.Context) (int64, error) {
	if strings.TrimSpace(s.path) == "" {
		return 0, errors.NewConfigurationError("SPREADSHEET_PATH")
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return 0, nil
	}

	f, err := s.open()
	if err != nil {
		return 0, err
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return 0, errors.NewPersistenceError(errors.ErrCodeDatabaseQueryFailed, "clearAll", err)
	}

	count := int64(0)
	if len(rows) > 1 {
		count = int64(len(rows) - 1)
	}

	// Rewrite the workbook with just the header instead of removing rows one
	// at a time.
	fresh := excelize.NewFile()
	if err := fresh.SetSheetName("Sheet1", s.sheet); err != nil {
		return 0, errors.NewPersistenceError(errors.ErrCodeDatabaseDeleteFailed, "clearAll", err)
	}
	if err := s.writeHeader(fresh); err != nil {
		return 0, err
	}
	if err := fresh.SaveAs(s.path); err != nil {
		return 0, errors.NewPersistenceError(errors.ErrCodeDatabaseDeleteFailed, "clearAll", err)
	}

	s.logger.Info("workbook cleared", map[string]interface{}{
		"count": count,
		"path":  s.path,
	})
	return count, nil
}

func (s *SpreadsheetStore) FetchAll(ctx context.Context) ([]adjustments.Record, error) {
	if strings.TrimSpace(s.path) == "" {
		return nil, errors.NewConfigurationError("SPREADSHEET_PATH")
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil
	}

	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, errors.NewPersistenceError(errors.ErrCodeDatabaseQueryFailed, "fetchAll", err)
	}

	var records []adjustments.Record
	for i, row := range rows {
		if i == 0 {
			continue
		}
		records = append(records, recordFromRow(row))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RegisteredAt > records[j].RegisteredAt
	})

	return records, nil
}

// recordFromRow maps a sheet row back to a Record, padding trailing cells
// excelize trims from short rows.
func recordFromRow(row []string) adjustments.Record {
	padded := make([]string, len(adjustments.Columns()))
	copy(padded, row)
	return adjustments.Record{
		RegisteredAt:     padded[0],
		Branch:           padded[1],
		ManagerEmail:     padded[2],
		ManagerName:      padded[3],
		CollaboratorName: padded[4],
		AdjustmentDate:   padded[5],
		AdjustedTime:     padded[6],
		Reason:           padded[7],
	}
}
