// internal/adjustments/csv.go
package adjustments

import "strings"

// CSV encoding follows the convention HR's Excel workflow already consumes:
// semicolon delimiter, every header quoted, UTF-8 BOM prefix, and a localized
// sentinel instead of a header-only file when the store is empty.
const (
	csvDelimiter = ";"
	csvBOM       = "\ufeff"

	// EmptyExportSentinel is returned when there are no records to export.
	EmptyExportSentinel = "Nenhum registro encontrado."
)

// ToCSV serializes records into CSV text, columns in Record declaration order
// with the persisted column names as headers.
func ToCSV(records []Record) string {
	if len(records) == 0 {
		return EmptyExportSentinel
	}

	headers := Columns()
	quoted := make([]string, len(headers))
	for i, header := range headers {
		quoted[i] = `"` + header + `"`
	}

	var b strings.Builder
	b.WriteString(csvBOM)
	b.WriteString(strings.Join(quoted, csvDelimiter))
	b.WriteString("\n")

	for i, record := range records {
		values := record.Values()
		fields := make([]string, len(values))
		for j, value := range values {
			fields[j] = escapeCSVField(value)
		}
		b.WriteString(strings.Join(fields, csvDelimiter))
		if i < len(records)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// escapeCSVField doubles embedded quotes and wraps the field when it contains
// a delimiter, a quote, or a newline.
func escapeCSVField(value string) string {
	needsQuoting := strings.ContainsAny(value, `;,"`+"\n")
	value = strings.ReplaceAll(value, `"`, `""`)
	if needsQuoting {
		return `"` + value + `"`
	}
	return value
}
