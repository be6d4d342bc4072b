/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fnbridge/fnbridge/catalog"
	"github.com/fnbridge/fnbridge/catalog/typemap"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Field is one named parameter of a generated schema.
type Field struct {
	Name string
	// Schema is the JSON-Schema shape of the parameter's type.
	Schema *jsonschema.Schema
	// Default is the decoded default value, nil when none is declared.
	Default any
	// RawDefault is the JSON-encoded default literal as stored in the
	// catalog, empty when none is declared.
	RawDefault string
	// Description is the parameter comment, suffixed with the default
	// literal when one exists.
	Description string
	// Required is false when the parameter has a default or is nullable.
	Required bool
}

// GeneratedSchema is the ordered request schema of one catalog function.
type GeneratedSchema struct {
	// Name is <catalog>__<schema>__<function>__params.
	Name   string
	Fields []Field
	// Strict is true only if every parameter, recursively, maps onto the
	// closed-world JSON-Schema type vocabulary.
	Strict bool
}

// typeDescriptor is the outer layer of a parameter's type_json document.
type typeDescriptor struct {
	Type     json.RawMessage `json:"type"`
	Nullable bool            `json:"nullable"`
}

// Generate converts catalog function metadata into a GeneratedSchema.
// Parameters are emitted in declaration order (ascending position). A
// function with no declared parameters yields an empty schema, never an
// error.
func Generate(info *catalog.FunctionInfo, strict bool) (*GeneratedSchema, error) {
	if info == nil {
		return nil, &catalog.UnsupportedFunctionInfoError{Got: "nil"}
	}

	generated := &GeneratedSchema{
		Name:   fmt.Sprintf("%s__%s__%s__params", info.CatalogName, info.SchemaName, info.Name),
		Strict: strict,
	}
	if len(info.InputParams) == 0 {
		return generated, nil
	}

	params := make([]catalog.ParameterInfo, len(info.InputParams))
	copy(params, info.InputParams)
	sort.SliceStable(params, func(i, j int) bool { return params[i].Position < params[j].Position })

	generated.Fields = make([]Field, 0, len(params))
	for _, param := range params {
		field, fieldStrict, err := fieldFor(param, strict)
		if err != nil {
			return nil, err
		}
		generated.Strict = generated.Strict && fieldStrict
		generated.Fields = append(generated.Fields, field)
	}
	return generated, nil
}

func fieldFor(param catalog.ParameterInfo, strict bool) (Field, bool, error) {
	if param.TypeJSON == "" {
		return Field{}, false, &catalog.MalformedParameterError{Param: param.Name}
	}
	var descriptor typeDescriptor
	if err := json.Unmarshal([]byte(param.TypeJSON), &descriptor); err != nil {
		return Field{}, false, fmt.Errorf("decoding type json for parameter %s: %w", param.Name, err)
	}
	if len(descriptor.Type) == 0 {
		return Field{}, false, &catalog.MalformedParameterError{Param: param.Name}
	}

	node, err := typemap.Resolve(descriptor.Type)
	if err != nil {
		return Field{}, false, fmt.Errorf("resolving type for parameter %s: %w", param.Name, err)
	}
	fieldSchema, fieldStrict, err := typemap.ToSchema(node, strict)
	if err != nil {
		return Field{}, false, fmt.Errorf("converting type for parameter %s: %w", param.Name, err)
	}

	field := Field{
		Name:        param.Name,
		Schema:      fieldSchema,
		Description: param.Comment,
		Required:    true,
	}
	if param.ParameterDefault != "" {
		var value any
		if err := json.Unmarshal([]byte(param.ParameterDefault), &value); err != nil {
			return Field{}, false, fmt.Errorf("decoding default for parameter %s: %w", param.Name, err)
		}
		field.Default = value
		field.RawDefault = param.ParameterDefault
		// The raw literal, not the decoded value, goes into the
		// documentation suffix.
		field.Description = fmt.Sprintf("%s (Default: %s)", param.Comment, param.ParameterDefault)
		field.Required = false
	}
	if descriptor.Nullable {
		field.Required = false
	}
	return field, fieldStrict, nil
}

// JSONSchema renders the generated schema as one JSON-Schema object with
// ordered properties and a required list.
func (g *GeneratedSchema) JSONSchema() *jsonschema.Schema {
	properties := orderedmap.New[string, *jsonschema.Schema]()
	var required []string
	for _, field := range g.Fields {
		property := *field.Schema
		if field.Description != "" {
			property.Description = field.Description
		}
		if field.RawDefault != "" {
			property.Default = field.Default
		}
		properties.Set(field.Name, &property)
		if field.Required {
			required = append(required, field.Name)
		}
	}
	return &jsonschema.Schema{
		Type:       "object",
		Title:      g.Name,
		Properties: properties,
		Required:   required,
	}
}

// Names returns the parameter names in declaration order.
func (g *GeneratedSchema) Names() []string {
	names := make([]string, len(g.Fields))
	for i, field := range g.Fields {
		names[i] = field.Name
	}
	return names
}
