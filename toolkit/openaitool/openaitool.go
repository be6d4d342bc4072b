/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package openaitool

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"

	"github.com/fnbridge/fnbridge/toolkit"
	"github.com/fnbridge/fnbridge/toolkit/params"
)

// Definition converts a toolkit tool into an OpenAI function tool
// definition. The strict flag is only set when the generated schema is
// strict; schemas with open-ended types (decimals, user-defined types)
// would be rejected by strict validation.
func Definition(tool *toolkit.Tool) (openai.ChatCompletionToolParam, error) {
	parameters, err := functionParameters(tool)
	if err != nil {
		return openai.ChatCompletionToolParam{}, err
	}
	fn := openai.FunctionDefinitionParam{
		Name:       tool.Name,
		Parameters: parameters,
	}
	if tool.Description != "" {
		fn.Description = param.NewOpt(tool.Description)
	}
	if tool.Schema.Strict {
		fn.Strict = param.NewOpt(true)
	}
	return openai.ChatCompletionToolParam{
		Type:     "function",
		Function: fn,
	}, nil
}

// Definitions converts every tool of a toolkit, in deterministic order.
func Definitions(tk *toolkit.Toolkit) ([]openai.ChatCompletionToolParam, error) {
	tools := tk.Tools()
	defs := make([]openai.ChatCompletionToolParam, 0, len(tools))
	for _, tool := range tools {
		def, err := Definition(tool)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// Call dispatches an OpenAI tool call's argument JSON to the tool and
// returns the execution result JSON for the tool message.
func Call(ctx context.Context, tool *toolkit.Tool, arguments string) string {
	var args map[string]any
	if arguments != "" {
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			return params.ErrorJSON("Failed to parse tool arguments: %v", err)
		}
	}
	return tool.Execute(ctx, args)
}

func functionParameters(tool *toolkit.Tool) (openai.FunctionParameters, error) {
	raw, err := json.Marshal(tool.Schema.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshaling schema for %q: %w", tool.Name, err)
	}
	var parameters openai.FunctionParameters
	if err := json.Unmarshal(raw, &parameters); err != nil {
		return nil, fmt.Errorf("decoding schema for %q: %w", tool.Name, err)
	}
	return parameters, nil
}
