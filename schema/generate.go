package schema

import (
	"reflect"
	"strings"
	"time"
)

// FromType derives a parameter list from a Go struct type using
// reflection. Each exported field becomes one Param, letting tool authors
// declare their input or output contract as a plain struct:
//
//	type FetchInput struct {
//		URL      string `json:"url"`
//		MaxBytes int    `json:"max_bytes,omitempty"`
//	}
//
//	inputs := schema.FromType(FetchInput{})
//
// Struct tags:
//   - `json:"name"`: uses the JSON tag name for the parameter
//   - `json:"-"`: skips the field
//   - `json:"name,omitempty"`: field is optional (Required is false)
//   - `description:"..."`: sets the parameter description
//
// Non-struct types and nil return an empty list.
func FromType(t any) []Param {
	if t == nil {
		return nil
	}

	rt := reflect.TypeOf(t)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil
	}

	var params []Param
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		optional := false
		if tag := field.Tag.Get("json"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
			for _, part := range parts[1:] {
				if part == "omitempty" {
					optional = true
					break
				}
			}
		}

		p := fromReflectType(field.Type)
		p.Name = name
		p.Required = !optional
		p.Description = field.Tag.Get("description")
		params = append(params, p)
	}

	return params
}

// fromReflectType maps a Go type to a parameter skeleton without a name.
func fromReflectType(t reflect.Type) Param {
	if t.Kind() == reflect.Ptr {
		return fromReflectType(t.Elem())
	}

	// time.Time travels as a string timestamp
	if t == reflect.TypeOf(time.Time{}) {
		return Param{Kind: KindString}
	}

	switch t.Kind() {
	case reflect.String:
		return Param{Kind: KindString}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return Param{Kind: KindNumber}
	case reflect.Bool:
		return Param{Kind: KindBoolean}
	case reflect.Slice, reflect.Array:
		item := fromReflectType(t.Elem())
		item.Name = "item"
		return Param{Kind: KindArray, Nested: []Param{item}}
	case reflect.Struct:
		nested := FromType(reflect.New(t).Elem().Interface())
		return Param{Kind: KindObject, Nested: nested}
	case reflect.Map:
		return Param{Kind: KindObject}
	default:
		// Unknown types are treated as opaque objects.
		return Param{Kind: KindObject}
	}
}
