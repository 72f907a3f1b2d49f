// internal/common/validation/schema.go
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationResult carries the outcome of a schema check.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateDocument validates an arbitrary document against a JSON Schema,
// both given as in-memory structures.
func ValidateDocument(schema, document interface{}) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}, nil
	}

	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return &ValidationResult{Valid: false, Errors: errs}, nil
}

// MustBeValid is a convenience wrapper returning a single error when the
// document does not conform.
func MustBeValid(schema, document interface{}) error {
	res, err := ValidateDocument(schema, document)
	if err != nil {
		return err
	}
	if !res.Valid {
		return fmt.Errorf("document validation failed: %v", res.Errors)
	}
	return nil
}
