package schema

import (
	"fmt"
	"reflect"
)

// Kind identifies the runtime type a parameter value must have.
type Kind string

// Parameter kinds supported by tool definitions.
const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindFile    Kind = "file"
)

// Valid reports whether k is one of the supported parameter kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindArray, KindObject, KindFile:
		return true
	}
	return false
}

// Param describes one named input or output value of a tool.
// A Param is immutable once attached to a finalized tool definition;
// the With* methods return modified copies rather than mutating in place.
type Param struct {
	// Name is the key the value appears under in an input or output record.
	Name string `json:"name" yaml:"name"`

	// Kind is the runtime type the value must have.
	Kind Kind `json:"kind" yaml:"kind"`

	// Description is a human-readable explanation of the value.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Required marks the value as mandatory in input records.
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Default is the value used when the caller supplies none.
	// When set, it must itself satisfy Kind.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Enum restricts the value to the listed alternatives.
	// When present it must be non-empty.
	Enum []any `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Nested describes the structure of array items or object properties.
	// It is documentation for structured kinds; input validation checks
	// only the top-level kind of each named value.
	Nested []Param `json:"nested,omitempty" yaml:"nested,omitempty"`
}

// String creates a string parameter.
func String(name, description string) Param {
	return Param{Name: name, Kind: KindString, Description: description}
}

// Number creates a numeric parameter.
func Number(name, description string) Param {
	return Param{Name: name, Kind: KindNumber, Description: description}
}

// Bool creates a boolean parameter.
func Bool(name, description string) Param {
	return Param{Name: name, Kind: KindBoolean, Description: description}
}

// Array creates an array parameter. The optional items schema documents
// the element structure.
func Array(name, description string, items ...Param) Param {
	return Param{Name: name, Kind: KindArray, Description: description, Nested: items}
}

// Object creates an object parameter with the given property schemas.
func Object(name, description string, properties ...Param) Param {
	return Param{Name: name, Kind: KindObject, Description: description, Nested: properties}
}

// File creates a file-reference parameter. File values travel as string
// references (paths, URLs, or handles) resolved by the host runtime.
func File(name, description string) Param {
	return Param{Name: name, Kind: KindFile, Description: description}
}

// AsRequired returns a copy of the parameter marked required.
func (p Param) AsRequired() Param {
	p.Required = true
	return p
}

// WithDefault returns a copy of the parameter carrying a default value.
func (p Param) WithDefault(v any) Param {
	p.Default = v
	return p
}

// WithEnum returns a copy of the parameter restricted to the given values.
func (p Param) WithEnum(values ...any) Param {
	p.Enum = values
	return p
}

// Validate checks the parameter's own consistency: the name and kind must
// be set, an enum (when present) must be non-empty, and a default value
// must satisfy the declared kind.
func (p Param) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("parameter name is required")
	}
	if !p.Kind.Valid() {
		return fmt.Errorf("parameter %s: unknown kind %q", p.Name, p.Kind)
	}
	if p.Enum != nil && len(p.Enum) == 0 {
		return fmt.Errorf("parameter %s: enum must not be empty", p.Name)
	}
	if p.Default != nil {
		if err := checkKind(p.Kind, p.Default); err != nil {
			return fmt.Errorf("parameter %s: default %w", p.Name, err)
		}
	}
	return nil
}

// ValidateInput checks a candidate input record against a parameter list.
// It applies the rules in order per parameter and short-circuits on the
// first violation: a required parameter missing from the input, a present
// value whose runtime kind does not match the declared kind, or a value
// outside a declared enum.
func ValidateInput(params []Param, input map[string]any) error {
	for _, p := range params {
		value, present := input[p.Name]
		if !present {
			if p.Required {
				return fmt.Errorf("Missing required input: %s", p.Name)
			}
			continue
		}

		if err := checkKind(p.Kind, value); err != nil {
			return fmt.Errorf("Invalid input %s: %w", p.Name, err)
		}

		if len(p.Enum) > 0 && !enumContains(p.Enum, value) {
			return fmt.Errorf("Invalid input %s: value %v is not one of the allowed values: %v", p.Name, value, p.Enum)
		}
	}
	return nil
}

// checkKind verifies that a runtime value satisfies the declared kind.
func checkKind(kind Kind, value any) error {
	if value == nil {
		return fmt.Errorf("expected %s, got nil", kind)
	}

	v := reflect.ValueOf(value)

	switch kind {
	case KindString:
		if v.Kind() != reflect.String {
			return fmt.Errorf("expected string, got %T", value)
		}
	case KindNumber:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			// Valid number types
		default:
			return fmt.Errorf("expected number, got %T", value)
		}
	case KindBoolean:
		if v.Kind() != reflect.Bool {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case KindArray:
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return fmt.Errorf("expected array, got %T", value)
		}
	case KindObject:
		if v.Kind() != reflect.Map && v.Kind() != reflect.Struct {
			return fmt.Errorf("expected object, got %T", value)
		}
	case KindFile:
		// File values travel as string references.
		if v.Kind() != reflect.String {
			return fmt.Errorf("expected file reference, got %T", value)
		}
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}

	return nil
}

// enumContains reports whether value matches one of the enumerated values.
// Numeric values are compared by magnitude so that an int input matches a
// float64 enum entry decoded from JSON or YAML.
func enumContains(enum []any, value any) bool {
	for _, e := range enum {
		if reflect.DeepEqual(value, e) {
			return true
		}
		if fa, ok := asFloat(e); ok {
			if fb, ok := asFloat(value); ok && fa == fb {
				return true
			}
		}
	}
	return false
}

// asFloat converts any numeric value to float64.
func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
