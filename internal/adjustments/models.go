// internal/adjustments/models.go
package adjustments

// Adjustment is one date/time/reason correction inside a submission.
type Adjustment struct {
	Date   string `json:"data"`
	Time   string `json:"horario"`
	Reason string `json:"motivo"`
}

// CollaboratorGroup holds the ordered adjustments submitted for one
// collaborator.
type CollaboratorGroup struct {
	CollaboratorName string       `json:"nomeColaborador"`
	Adjustments      []Adjustment `json:"ajustes"`
}

// SubmissionBatch is one manager's submission as received on the wire. It is
// request-scoped: expanded into Records, then discarded.
type SubmissionBatch struct {
	ManagerName  string              `json:"nomeGestor"`
	ManagerEmail string              `json:"emailGestor"`
	Branch       string              `json:"filial"`
	Groups       []CollaboratorGroup `json:"ajustesMultiColaborador"`
}

// Record is the flattened unit of persistence and notification. Column names
// match the ajustes table; records are immutable once persisted.
type Record struct {
	RegisteredAt     string `json:"data_registro"`
	Branch           string `json:"filial"`
	ManagerEmail     string `json:"email_gestor"`
	ManagerName      string `json:"nome_gestor"`
	CollaboratorName string `json:"nome_colaborador"`
	AdjustmentDate   string `json:"data_ajuste"`
	AdjustedTime     string `json:"horario_ajustado"`
	Reason           string `json:"motivo"`
}

// Columns lists the persisted field names in declaration order. The CSV
// exporter and the Postgres gateway both depend on this ordering.
func Columns() []string {
	return []string{
		"data_registro",
		"filial",
		"email_gestor",
		"nome_gestor",
		"nome_colaborador",
		"data_ajuste",
		"horario_ajustado",
		"motivo",
	}
}

// Values returns the record's field values in Columns order.
func (r Record) Values() []string {
	return []string{
		r.RegisteredAt,
		r.Branch,
		r.ManagerEmail,
		r.ManagerName,
		r.CollaboratorName,
		r.AdjustmentDate,
		r.AdjustedTime,
		r.Reason,
	}
}
