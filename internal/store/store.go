// internal/store/store.go
package store

import (
	"context"

	"ponto-intake/internal/adjustments"
)

// Store is the persistence capability consumed by the intake pipeline. The
// concrete backend (PostgreSQL or the legacy spreadsheet workbook) is a
// composition decision made at process start.
//
// InsertAll writes records one at a time in input order as independent
// statements; a failure partway leaves the already-written prefix persisted
// and skips the remainder. ClearAll unconditionally deletes every record and
// returns the count removed. FetchAll returns every record ordered by
// data_registro descending.
type Store interface {
	InsertAll(ctx context.Context, records []adjustments.Record) error
	ClearAll(ctx context.Context) (int64, error)
	FetchAll(ctx context.Context) ([]adjustments.Record, error)
}
