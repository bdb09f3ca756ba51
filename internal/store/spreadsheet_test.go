// internal/store/spreadsheet_test.go
package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	commonerrors "ponto-intake/internal/common/errors"
	"ponto-intake/internal/common/logger"
)

func newWorkbookStore(t *testing.T) *SpreadsheetStore {
	path := filepath.Join(t.TempDir(), "registros.xlsx")
	return NewSpreadsheetStore(path, "REGISTRO", logger.NewTestLogger(t))
}

func TestSpreadsheet_InsertAndFetch(t *testing.T) {
	s := newWorkbookStore(t)
	records := createTestRecords()

	err := s.InsertAll(context.Background(), records)
	assert.NoError(t, err)

	fetched, err := s.FetchAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, fetched, 2)
	assert.Equal(t, "Bruno Lima", fetched[0].CollaboratorName)
	assert.Equal(t, records[0].RegisteredAt, fetched[0].RegisteredAt)
}

func TestSpreadsheet_AppendsAcrossCalls(t *testing.T) {
	s := newWorkbookStore(t)
	records := createTestRecords()

	assert.NoError(t, s.InsertAll(context.Background(), records[:1]))
	assert.NoError(t, s.InsertAll(context.Background(), records[1:]))

	fetched, err := s.FetchAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, fetched, 2)
}

func TestSpreadsheet_ClearAllReturnsCount(t *testing.T) {
	s := newWorkbookStore(t)

	assert.NoError(t, s.InsertAll(context.Background(), createTestRecords()))

	count, err := s.ClearAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	fetched, err := s.FetchAll(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, fetched)
}

func TestSpreadsheet_ClearMissingFile(t *testing.T) {
	s := newWorkbookStore(t)

	count, err := s.ClearAll(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestSpreadsheet_FetchMissingFile(t *testing.T) {
	s := newWorkbookStore(t)

	fetched, err := s.FetchAll(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, fetched)
}

func TestSpreadsheet_MissingPathIsConfigurationError(t *testing.T) {
	s := NewSpreadsheetStore("", "REGISTRO", logger.NewTestLogger(t))

	err := s.InsertAll(context.Background(), createTestRecords())
	assert.Equal(t, commonerrors.ErrCodeConfigurationMissing, commonerrors.CodeOf(err))

	_, err = s.ClearAll(context.Background())
	assert.Equal(t, commonerrors.ErrCodeConfigurationMissing, commonerrors.CodeOf(err))

	_, err = s.FetchAll(context.Background())
	assert.Equal(t, commonerrors.ErrCodeConfigurationMissing, commonerrors.CodeOf(err))
}
