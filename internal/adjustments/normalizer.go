// internal/adjustments/normalizer.go
package adjustments

import (
	"time"

	"ponto-intake/internal/common/errors"
)

// registeredAtLayout renders the batch registration timestamp the way the HR
// spreadsheet expects it: day/month/year wall clock in São Paulo.
const registeredAtLayout = "02/01/2006 15:04:05"

var saoPaulo = loadSaoPaulo()

func loadSaoPaulo() *time.Location {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}

// RegistrationTimestamp renders now in the fixed locale/timezone convention
// shared by every record of a batch.
func RegistrationTimestamp(now time.Time) string {
	return now.In(saoPaulo).Format(registeredAtLayout)
}

// Normalize flattens a submission batch into the ordered records to persist.
// All records share one registration timestamp computed from now, plus the
// batch-level branch/manager fields. Malformed dates, times, and email
// addresses pass through unchanged.
//
// A batch with no collaborator groups, or one that flattens to zero records,
// fails with VALIDATION_FAILED and must be rejected with no side effects.
func Normalize(batch *SubmissionBatch, now time.Time) ([]Record, error) {
	if len(batch.Groups) == 0 {
		return nil, errors.NewValidationError("ajustesMultiColaborador must contain at least one collaborator")
	}

	registeredAt := RegistrationTimestamp(now)

	var records []Record
	for _, group := range batch.Groups {
		for _, adj := range group.Adjustments {
			records = append(records, Record{
				RegisteredAt:     registeredAt,
				Branch:           batch.Branch,
				ManagerEmail:     batch.ManagerEmail,
				ManagerName:      batch.ManagerName,
				CollaboratorName: group.CollaboratorName,
				AdjustmentDate:   adj.Date,
				AdjustedTime:     adj.Time,
				Reason:           adj.Reason,
			})
		}
	}

	if len(records) == 0 {
		return nil, errors.NewValidationError("submission contains no adjustments")
	}

	return records, nil
}
