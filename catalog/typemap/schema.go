/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package typemap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fnbridge/fnbridge/catalog"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// jsonSchemaTypes is the closed-world vocabulary of catalog type names that
// map onto a single JSON-Schema primitive. Any type outside this set makes
// the enclosing schema non-strict.
var jsonSchemaTypes = map[string]bool{
	"ARRAY":      true,
	"BOOLEAN":    true,
	"BYTE":       true,
	"CHAR":       true,
	"DOUBLE":     true,
	"FLOAT":      true,
	"INT":        true,
	"LONG":       true,
	"MAP":        true,
	"NULL":       true,
	"SHORT":      true,
	"STRING":     true,
	"STRUCT":     true,
	"TABLE_TYPE": true,
}

// scalarSchemas maps catalog scalar names onto fresh JSON-Schema nodes.
// Aliases the catalog service emits in type trees (INTEGER, the spelled-out
// interval) are included alongside the canonical column type names.
var scalarSchemas = map[string]func() *jsonschema.Schema{
	"ARRAY":   func() *jsonschema.Schema { return &jsonschema.Schema{Type: "array"} },
	"BINARY":  func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string", ContentEncoding: "base64"} },
	"BOOLEAN": func() *jsonschema.Schema { return &jsonschema.Schema{Type: "boolean"} },
	"BYTE":    func() *jsonschema.Schema { return &jsonschema.Schema{Type: "integer"} },
	"CHAR":    func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} },
	"DATE":    func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string", Format: "date"} },
	"DECIMAL": func() *jsonschema.Schema {
		// No single closed JSON-Schema primitive covers exact decimals;
		// accept a number or the exact decimal's string rendering.
		// Precision and scale are validated by the execution engine.
		return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{
			{Type: "number"},
			{Type: "string"},
		}}
	},
	"DOUBLE":                 func() *jsonschema.Schema { return &jsonschema.Schema{Type: "number"} },
	"FLOAT":                  func() *jsonschema.Schema { return &jsonschema.Schema{Type: "number"} },
	"INT":                    func() *jsonschema.Schema { return &jsonschema.Schema{Type: "integer"} },
	"INTEGER":                func() *jsonschema.Schema { return &jsonschema.Schema{Type: "integer"} },
	"INTERVAL":               func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string", Format: "duration"} },
	"INTERVAL DAY TO SECOND": func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string", Format: "duration"} },
	"LONG":                   func() *jsonschema.Schema { return &jsonschema.Schema{Type: "integer"} },
	"MAP":                    func() *jsonschema.Schema { return &jsonschema.Schema{Type: "object"} },
	"NULL":                   func() *jsonschema.Schema { return &jsonschema.Schema{Type: "null"} },
	"SHORT":                  func() *jsonschema.Schema { return &jsonschema.Schema{Type: "integer"} },
	"STRING":                 func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} },
	"STRUCT":                 func() *jsonschema.Schema { return &jsonschema.Schema{Type: "object"} },
	"TABLE_TYPE":             func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string"} },
	"TIMESTAMP":              func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string", Format: "date-time"} },
	"TIMESTAMP_NTZ":          func() *jsonschema.Schema { return &jsonschema.Schema{Type: "string", Format: "date-time"} },
	"USER_DEFINED_TYPE":      func() *jsonschema.Schema { return &jsonschema.Schema{} },
}

// SupportedScalars returns the sorted list of scalar type names ToSchema
// accepts, used to build actionable unsupported-type errors.
func SupportedScalars() []string {
	names := make([]string, 0, len(scalarSchemas))
	for name := range scalarSchemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ToSchema lowers a resolved type node into a JSON schema. The returned
// bool is the strictness verdict: true only if strict was true on entry,
// the node's own type is in the closed-world vocabulary, and every
// descendant is strict as well.
func ToSchema(node Node, strict bool) (*jsonschema.Schema, bool, error) {
	switch n := node.(type) {
	case Scalar:
		name := string(n)
		factory, ok := scalarSchemas[name]
		if !ok {
			// Precision/scale suffixes ride along on DECIMAL, e.g.
			// DECIMAL(10,2). The suffix is not validated here.
			if strings.HasPrefix(name, "DECIMAL") {
				return scalarSchemas["DECIMAL"](), false, nil
			}
			return nil, false, &catalog.UnsupportedTypeError{
				Type:   name,
				Reason: fmt.Sprintf("supported types are: %s", strings.Join(SupportedScalars(), ", ")),
			}
		}
		return factory(), strict && jsonSchemaTypes[name], nil

	case Array:
		element, elementStrict, err := ToSchema(n.Element, strict)
		if err != nil {
			return nil, false, err
		}
		if n.ContainsNull {
			element = nullable(element)
		}
		return &jsonschema.Schema{Type: "array", Items: element}, strict && elementStrict, nil

	case Map:
		value, valueStrict, err := ToSchema(n.Value, strict)
		if err != nil {
			return nil, false, err
		}
		if n.ValueContainsNull {
			value = nullable(value)
		}
		return &jsonschema.Schema{Type: "object", AdditionalProperties: value}, strict && valueStrict, nil

	case Struct:
		properties := orderedmap.New[string, *jsonschema.Schema]()
		var required []string
		structStrict := strict
		for _, field := range n.Fields {
			fieldSchema, fieldStrict, err := ToSchema(field.Type, strict)
			if err != nil {
				return nil, false, err
			}
			structStrict = structStrict && fieldStrict
			if field.Comment != "" {
				fieldSchema.Description = field.Comment
			}
			if field.Nullable {
				fieldSchema = nullable(fieldSchema)
				if field.Comment != "" {
					fieldSchema.Description = field.Comment
				}
			} else {
				required = append(required, field.Name)
			}
			properties.Set(field.Name, fieldSchema)
		}
		return &jsonschema.Schema{
			Type:       "object",
			Title:      n.Name(),
			Properties: properties,
			Required:   required,
		}, structStrict, nil

	default:
		return nil, false, &catalog.UnsupportedTypeError{Type: fmt.Sprintf("%T", node)}
	}
}

// nullable widens a schema to also accept null.
func nullable(s *jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{s, {Type: "null"}}}
}
