// Package schema holds the JSON Schema for tour.yml and validates documents
// against it.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tour.schema.json
var embeddedSchemaData []byte

const schemaResource = "tour.json"

// Schema returns the raw embedded schema document.
func Schema() []byte {
	return append([]byte(nil), embeddedSchemaData...)
}

// Violation is one failed schema keyword, located by JSON pointer.
type Violation struct {
	Path    string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Violations)+1)
	lines = append(lines, "schema validation failed:")
	for _, v := range e.Violations {
		lines = append(lines, fmt.Sprintf("- %s: %s", v.Path, v.Message))
	}
	return strings.Join(lines, "\n")
}

// Validator checks decoded tour.yml documents against the embedded schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(embeddedSchemaData)); err != nil {
		return nil, fmt.Errorf("failed to add embedded schema resource: %w", err)
	}
	compiled, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate checks doc, which may be any value encoding/json accepts. A
// failing document yields a *ValidationError.
func (v *Validator) Validate(doc interface{}) error {
	// The validator only understands JSON value types, so YAML and TOML
	// decodes go through JSON first.
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON for validation: %w", err)
	}
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}

	err = v.schema.Validate(value)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	out := &ValidationError{}
	flatten(verr, &out.Violations)
	return out
}

// flatten collects the leaf causes of err, which carry the useful messages.
func flatten(err *jsonschema.ValidationError, into *[]Violation) {
	if len(err.Causes) == 0 {
		*into = append(*into, Violation{Path: pointer(err.InstanceLocation), Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		flatten(cause, into)
	}
}

func pointer(loc string) string {
	if loc == "" {
		return "/"
	}
	return loc
}
