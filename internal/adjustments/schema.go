// internal/adjustments/schema.go
package adjustments

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"ponto-intake/internal/common/errors"
)

// submissionSchema describes the shape of the submit payload. Content rules
// (email format, date format) are deliberately not enforced here; values pass
// through as submitted.
const submissionSchema = `{
	"type": "object",
	"required": ["nomeGestor", "emailGestor", "filial", "ajustesMultiColaborador"],
	"properties": {
		"nomeGestor": {"type": "string"},
		"emailGestor": {"type": "string"},
		"filial": {"type": "string"},
		"ajustesMultiColaborador": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["nomeColaborador", "ajustes"],
				"properties": {
					"nomeColaborador": {"type": "string"},
					"ajustes": {
						"type": "array",
						"items": {
							"type": "object",
							"properties": {
								"data": {"type": "string"},
								"horario": {"type": "string"},
								"motivo": {"type": "string"}
							}
						}
					}
				}
			}
		}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(submissionSchema)

// ValidateSubmission checks the raw request body against the submission
// schema before it is decoded and normalized.
func ValidateSubmission(body []byte) error {
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("invalid JSON body: %v", err))
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return errors.NewValidationError(strings.Join(details, "; "))
	}

	return nil
}
