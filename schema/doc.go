// Package schema defines the parameter vocabulary shared by tool
// definitions: the typed description of one named input or output value.
//
// A Param declares a value's name, kind, and constraints. Parameter lists
// attached to a tool definition are the contract a candidate input record
// is validated against before a tool executor is invoked.
//
// # Kinds
//
// Six kinds are supported: string, number, boolean, array, object, and
// file. Primitive kinds are checked directly against the runtime type of
// a value; array requires a slice, object requires a non-nil keyed
// structure, and file values travel as string references resolved by the
// host runtime.
//
// # Validation
//
// ValidateInput applies each parameter's rules in declaration order and
// stops at the first violation. A required parameter absent from the
// input fails with "Missing required input: <name>"; a present value is
// kind-checked, then checked against the enum when one is declared.
//
// # Defining parameters
//
// Constructor helpers build parameters fluently:
//
//	params := []schema.Param{
//		schema.String("url", "page to fetch").AsRequired(),
//		schema.String("format", "output format").WithEnum("html", "text"),
//		schema.Number("max_bytes", "response size cap").WithDefault(1 << 20),
//	}
//
//	err := schema.ValidateInput(params, map[string]any{
//		"url":    "https://example.com",
//		"format": "text",
//	})
//
// Parameter lists can also be derived from Go struct types with FromType,
// using json tags for names and omitempty to mark optional fields.
package schema
