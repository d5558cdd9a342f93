package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kerimovok/pocketbase-api-rule-builder/internal/types"
)

// Validation error codes for schema imports. Codes are short and stable;
// Details carries the human-readable context for the first violation found.
const (
	CodeEmptyInput        = "empty input"
	CodeParseError        = "json parse error"
	CodeNotAnArray        = "invalid schema format"
	CodeInvalidCollection = "invalid collection"
	CodeMissingName       = "missing collection name"
	CodeInvalidFields     = "invalid fields"
)

// ValidationError is the structured error pair returned across the import
// boundary. It is a value, never a panic: callers decide how to surface it.
type ValidationError struct {
	Code    string
	Details string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Details == "" {
		return e.Code
	}
	return e.Code + ": " + e.Details
}

// ParseImport validates arbitrary pasted JSON as a collection-schema export
// and decodes it. Structural checks run before decoding: the document must
// be an array of objects, each with a string "name" and an array "fields"
// whose entries carry string names. The first violation found is reported;
// nothing is partially imported.
func ParseImport(text []byte) ([]types.CollectionSchema, *ValidationError) {
	if strings.TrimSpace(string(text)) == "" {
		return nil, &ValidationError{
			Code:    CodeEmptyInput,
			Details: "provide a JSON export of the collections to import",
		}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(text, &raw); err != nil {
		// Distinguish "valid JSON, wrong shape" from a syntax error.
		var probe any
		if json.Unmarshal(text, &probe) == nil {
			return nil, &ValidationError{
				Code:    CodeNotAnArray,
				Details: "expected an array of collections at the top level",
			}
		}
		return nil, &ValidationError{
			Code:    CodeParseError,
			Details: err.Error(),
		}
	}

	for i, item := range raw {
		var collection map[string]json.RawMessage
		if err := json.Unmarshal(item, &collection); err != nil {
			return nil, &ValidationError{
				Code:    CodeInvalidCollection,
				Details: fmt.Sprintf("collection at index %d is not an object", i),
			}
		}

		var name string
		if nameRaw, ok := collection["name"]; !ok || json.Unmarshal(nameRaw, &name) != nil || name == "" {
			return nil, &ValidationError{
				Code:    CodeMissingName,
				Details: fmt.Sprintf("collection at index %d is missing a valid name", i),
			}
		}

		fieldsRaw, ok := collection["fields"]
		if !ok {
			return nil, &ValidationError{
				Code:    CodeInvalidFields,
				Details: fmt.Sprintf("collection %q must have a fields array", name),
			}
		}
		var fields []map[string]json.RawMessage
		if err := json.Unmarshal(fieldsRaw, &fields); err != nil {
			return nil, &ValidationError{
				Code:    CodeInvalidFields,
				Details: fmt.Sprintf("collection %q must have a fields array", name),
			}
		}
		for j, f := range fields {
			var fieldName string
			if nameRaw, ok := f["name"]; !ok || json.Unmarshal(nameRaw, &fieldName) != nil || fieldName == "" {
				return nil, &ValidationError{
					Code:    CodeInvalidFields,
					Details: fmt.Sprintf("collection %q field at index %d is missing a valid name", name, j),
				}
			}
		}
	}

	var schemas []types.CollectionSchema
	if err := json.Unmarshal(text, &schemas); err != nil {
		return nil, &ValidationError{
			Code:    CodeParseError,
			Details: err.Error(),
		}
	}
	return schemas, nil
}
