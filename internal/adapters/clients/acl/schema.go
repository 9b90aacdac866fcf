package acl

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Schema describes the shape of a model answer. It renders both as the
// API's responseSchema and as a JSON Schema used to check the answer.
type Schema struct {
	Type       string
	Properties map[string]*Schema
	Required   []string
	Items      *Schema
	Enum       []string
}

// String returns a string node, optionally restricted to enum.
func String(enum ...string) *Schema { return &Schema{Type: "string", Enum: enum} }

// Array returns an array node of items.
func Array(items *Schema) *Schema { return &Schema{Type: "array", Items: items} }

// Object returns an object node.
func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: props, Required: required}
}

// ResponseSchema renders the node in the API's OpenAPI subset.
func (s *Schema) ResponseSchema() map[string]any {
	return s.render(strings.ToUpper)
}

// JSONSchema renders the node as a JSON Schema document.
func (s *Schema) JSONSchema() map[string]any {
	return s.render(func(t string) string { return t })
}

func (s *Schema) render(typeName func(string) string) map[string]any {
	out := map[string]any{"type": typeName(s.Type)}

	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}

	if s.Items != nil {
		out["items"] = s.Items.render(typeName)
	}

	if s.Properties != nil {
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = p.render(typeName)
		}

		out["properties"] = props
	}

	if len(s.Required) > 0 {
		out["required"] = s.Required
	}

	return out
}

// SchemaValidator checks documents against schemas, compiling each
// distinct schema once.
type SchemaValidator struct {
	mu       sync.Mutex
	compiled map[string]*gojsonschema.Schema
}

// NewSchemaValidator returns an empty validator.
func NewSchemaValidator() *SchemaValidator {
	return &SchemaValidator{compiled: make(map[string]*gojsonschema.Schema)}
}

// Validate checks doc against schema. The error wraps ErrInvalidOutput and
// lists the violations.
func (v *SchemaValidator) Validate(schema *Schema, doc []byte) error {
	compiled, err := v.compile(schema)
	if err != nil {
		return err
	}

	result, err := compiled.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidOutput, strings.Join(problems, "; "))
}

// Cached reports how many distinct schemas have been compiled.
func (v *SchemaValidator) Cached() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.compiled)
}

func (v *SchemaValidator) compile(schema *Schema) (*gojsonschema.Schema, error) {
	doc := schema.JSONSchema()

	key, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if compiled, ok := v.compiled[string(key)]; ok {
		return compiled, nil
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	v.compiled[string(key)] = compiled

	return compiled, nil
}
