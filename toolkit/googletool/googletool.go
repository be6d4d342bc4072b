/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package googletool

import (
	"context"
	"fmt"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"

	"github.com/fnbridge/fnbridge/toolkit"
)

// Definition converts a toolkit tool into a Gemini function declaration.
func Definition(tool *toolkit.Tool) (*genai.FunctionDeclaration, error) {
	parameters, err := convertSchema(tool.Schema.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("converting schema for %q: %w", tool.Name, err)
	}
	return &genai.FunctionDeclaration{
		Name:        tool.Name,
		Description: tool.Description,
		Parameters:  parameters,
	}, nil
}

// Definitions converts every tool of a toolkit, in deterministic order.
func Definitions(tk *toolkit.Toolkit) ([]*genai.FunctionDeclaration, error) {
	tools := tk.Tools()
	defs := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		def, err := Definition(tool)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Call dispatches a Gemini function call to the tool and returns a
// function response carrying the execution result JSON.
func Call(ctx context.Context, tool *toolkit.Tool, call *genai.FunctionCall) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   call.ID,
		Name: call.Name,
		Response: map[string]any{
			"result": tool.Execute(ctx, call.Args),
		},
	}
}

// convertSchema maps a JSON-Schema node onto the Gemini schema type.
// Nullable anyOf wrappers collapse to the non-null member with Nullable
// set; other anyOf unions keep their first member, since the Gemini
// vocabulary has no union type.
func convertSchema(s *jsonschema.Schema) (*genai.Schema, error) {
	if s == nil {
		return nil, nil
	}

	if len(s.AnyOf) > 0 {
		var member *jsonschema.Schema
		nullable := false
		for _, option := range s.AnyOf {
			if option.Type == "null" {
				nullable = true
				continue
			}
			if member == nil {
				member = option
			}
		}
		if member == nil {
			return &genai.Schema{Type: genai.TypeString, Nullable: genai.Ptr(true)}, nil
		}
		converted, err := convertSchema(member)
		if err != nil {
			return nil, err
		}
		if nullable {
			converted.Nullable = genai.Ptr(true)
		}
		if converted.Description == "" {
			converted.Description = s.Description
		}
		return converted, nil
	}

	converted := &genai.Schema{
		Description: s.Description,
		Format:      s.Format,
	}
	switch s.Type {
	case "string":
		converted.Type = genai.TypeString
		// Gemini only accepts enum and date-time formats for strings.
		if s.Format != "date-time" {
			converted.Format = ""
		}
	case "number":
		converted.Type = genai.TypeNumber
	case "integer":
		converted.Type = genai.TypeInteger
	case "boolean":
		converted.Type = genai.TypeBoolean
	case "array":
		converted.Type = genai.TypeArray
		items, err := convertSchema(s.Items)
		if err != nil {
			return nil, err
		}
		converted.Items = items
	case "object", "":
		converted.Type = genai.TypeObject
		if s.Properties != nil {
			converted.Properties = map[string]*genai.Schema{}
			for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
				property, err := convertSchema(pair.Value)
				if err != nil {
					return nil, err
				}
				converted.Properties[pair.Key] = property
			}
		}
		converted.Required = s.Required
	default:
		return nil, fmt.Errorf("unsupported schema type %q", s.Type)
	}
	return converted, nil
}
