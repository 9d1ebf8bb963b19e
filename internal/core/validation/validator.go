package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError describes one rejected value. Field is the field id, or
// empty when the failure concerns the values as a whole.
type ValidationError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (e *ValidationErrors) Error() string {
	var msgs []string
	for _, err := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(msgs, "; ")
}

// maxCachedSchemas bounds the compiled schema cache. Every field edit
// produces a new schema, so the cache starts over once it fills up.
const maxCachedSchemas = 128

// Validator checks entry values against the JSON schema derived from a
// model's fields. Compiled schemas are cached by their JSON text.
type Validator struct {
	mu      sync.Mutex
	schemas map[string]*gojsonschema.Schema
}

func NewValidator() *Validator {
	return &Validator{schemas: make(map[string]*gojsonschema.Schema)}
}

func (v *Validator) Validate(data map[string]interface{}, schema map[string]interface{}) error {
	if len(schema) == 0 {
		return nil
	}

	compiled, err := v.compile(schema)
	if err != nil {
		return err
	}

	if data == nil {
		data = map[string]interface{}{}
	}
	result, err := compiled.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return err
	}

	if !result.Valid() {
		var validationErrors []ValidationError
		for _, desc := range result.Errors() {
			validationErrors = append(validationErrors, ValidationError{
				Field:   fieldOf(desc),
				Rule:    desc.Type(),
				Message: desc.Description(),
			})
		}
		return &ValidationErrors{Errors: validationErrors}
	}

	return nil
}

// ValidatePartial ignores the schema's required list.
func (v *Validator) ValidatePartial(data map[string]interface{}, schema map[string]interface{}) error {
	if len(schema) == 0 {
		return nil
	}

	partialSchema := make(map[string]interface{}, len(schema))
	for k, val := range schema {
		if k != "required" {
			partialSchema[k] = val
		}
	}

	return v.Validate(data, partialSchema)
}

func (v *Validator) compile(schema map[string]interface{}) (*gojsonschema.Schema, error) {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	key := string(schemaJSON)

	v.mu.Lock()
	defer v.mu.Unlock()

	if compiled, ok := v.schemas[key]; ok {
		return compiled, nil
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		return nil, err
	}
	if len(v.schemas) >= maxCachedSchemas {
		clear(v.schemas)
	}
	v.schemas[key] = compiled
	return compiled, nil
}

// fieldOf names the top-level property a result error is about. Missing
// required properties are reported against the root with the name in the
// details.
func fieldOf(desc gojsonschema.ResultError) string {
	if desc.Type() == "required" {
		if property, ok := desc.Details()["property"].(string); ok {
			return property
		}
	}
	field := desc.Field()
	if field == "(root)" {
		return ""
	}
	if i := strings.IndexByte(field, '.'); i != -1 {
		field = field[:i]
	}
	return field
}

func IsValidationError(err error) bool {
	var ve *ValidationErrors
	return errors.As(err, &ve)
}

func GetValidationErrors(err error) *ValidationErrors {
	var ve *ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
