/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package claudetool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/fnbridge/fnbridge/toolkit"
	"github.com/fnbridge/fnbridge/toolkit/params"
)

// Definition converts a toolkit tool into a Claude tool definition.
func Definition(tool *toolkit.Tool) (anthropic.ToolParam, error) {
	properties, required, err := schemaParts(tool)
	if err != nil {
		return anthropic.ToolParam{}, err
	}
	return anthropic.ToolParam{
		Name:        tool.Name,
		Description: anthropic.String(tool.Description),
		InputSchema: anthropic.ToolInputSchemaParam{
			Type:       "object",
			Properties: properties,
			Required:   required,
		},
	}, nil
}

// Definitions converts every tool of a toolkit, in deterministic order.
func Definitions(tk *toolkit.Toolkit) ([]anthropic.ToolParam, error) {
	tools := tk.Tools()
	defs := make([]anthropic.ToolParam, 0, len(tools))
	for _, tool := range tools {
		def, err := Definition(tool)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Call dispatches a Claude tool use block to the tool and returns the
// execution result JSON for embedding in a tool result block.
func Call(ctx context.Context, tool *toolkit.Tool, toolUse anthropic.ToolUseBlock) string {
	var args map[string]any
	if err := json.Unmarshal(toolUse.Input, &args); err != nil {
		return params.ErrorJSON("Failed to parse tool input: %v", err)
	}
	return tool.Execute(ctx, args)
}

// schemaParts renders the generated schema and splits it into the
// properties map and required list the Claude input schema expects.
func schemaParts(tool *toolkit.Tool) (map[string]any, []string, error) {
	raw, err := json.Marshal(tool.Schema.JSONSchema())
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling schema for %q: %w", tool.Name, err)
	}
	var decoded struct {
		Properties map[string]any `json:"properties"`
		Required   []string       `json:"required"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, nil, fmt.Errorf("decoding schema for %q: %w", tool.Name, err)
	}
	if decoded.Properties == nil {
		decoded.Properties = map[string]any{}
	}
	return decoded.Properties, decoded.Required, nil
}
