/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package toolkit

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fnbridge/fnbridge/catalog"
	"github.com/fnbridge/fnbridge/client"
	"github.com/fnbridge/fnbridge/metrics"
	"github.com/fnbridge/fnbridge/schema"
	"github.com/fnbridge/fnbridge/toolkit/params"
)

// FunctionService is the catalog surface a Toolkit is built over.
// *client.Client satisfies it; tests supply fakes.
type FunctionService interface {
	GetFunction(ctx context.Context, name string) (*catalog.FunctionInfo, error)
	ListFunctions(ctx context.Context, catalogName, schemaName string) ([]catalog.FunctionInfo, error)
	ExecuteFunction(ctx context.Context, name string, parameters map[string]any) (*client.FunctionExecutionResult, error)
}

// Tool is a provider-independent tool definition for one catalog function.
type Tool struct {
	// Name is the provider-safe tool name derived by ToolName.
	Name string
	// FullName is the dotted catalog.schema.function identity.
	FullName    string
	Description string
	// Schema is the generated parameter schema.
	Schema *schema.GeneratedSchema
	// Execute invokes the function and returns the execution result as
	// JSON. Execution failures come back inside the payload so the model
	// can react to them.
	Execute func(ctx context.Context, args map[string]any) string
}

// Toolkit is a set of Tools built from catalog function names.
type Toolkit struct {
	tools map[string]*Tool
}

type config struct {
	strict  bool
	metrics *metrics.Bridge
}

// Option configures toolkit construction.
type Option func(*config)

// WithStrict requests strict schemas; functions whose parameters fall
// outside the closed-world type vocabulary still convert, but their
// schemas are marked non-strict.
func WithStrict() Option {
	return func(c *config) { c.strict = true }
}

// WithMetrics records schema generations, tool calls, and execution
// outcomes on the given bridge.
func WithMetrics(bridge *metrics.Bridge) Option {
	return func(c *config) { c.metrics = bridge }
}

// New builds a Toolkit from fully qualified function names. A name whose
// function segment is "*" expands to every function in that schema.
// Conversions run concurrently; the first failure aborts construction.
func New(ctx context.Context, svc FunctionService, functionNames []string, opts ...Option) (*Toolkit, error) {
	if svc == nil {
		return nil, fmt.Errorf("function service is required")
	}
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	infos, err := resolveFunctions(ctx, svc, functionNames)
	if err != nil {
		return nil, err
	}

	tools := make(map[string]*Tool, len(infos))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, info := range infos {
		g.Go(func() error {
			tool, err := newTool(gctx, svc, info, cfg)
			if err != nil {
				return err
			}
			mu.Lock()
			tools[tool.FullName] = tool
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Toolkit{tools: tools}, nil
}

// resolveFunctions expands wildcards and fetches metadata for explicit
// names.
func resolveFunctions(ctx context.Context, svc FunctionService, functionNames []string) ([]*catalog.FunctionInfo, error) {
	var infos []*catalog.FunctionInfo
	seen := map[string]bool{}
	for _, name := range functionNames {
		parsed, err := catalog.ParseFunctionName(name)
		if err != nil {
			return nil, err
		}
		if parsed.IsWildcard() {
			listed, err := svc.ListFunctions(ctx, parsed.Catalog, parsed.Schema)
			if err != nil {
				return nil, fmt.Errorf("listing functions for %q: %w", name, err)
			}
			for i := range listed {
				if !seen[listed[i].FullName] {
					seen[listed[i].FullName] = true
					infos = append(infos, &listed[i])
				}
			}
			continue
		}
		if seen[name] {
			continue
		}
		info, err := svc.GetFunction(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("fetching function %q: %w", name, err)
		}
		seen[info.FullName] = true
		infos = append(infos, info)
	}
	return infos, nil
}

func newTool(ctx context.Context, svc FunctionService, info *catalog.FunctionInfo, cfg config) (*Tool, error) {
	name, err := ToolName(ctx, info.FullName)
	if err != nil {
		return nil, err
	}
	generated, err := schema.Generate(info, cfg.strict)
	if err != nil {
		return nil, fmt.Errorf("generating schema for %q: %w", info.FullName, err)
	}
	if cfg.metrics != nil {
		cfg.metrics.RecordSchemaGenerated(ctx, info.FullName)
	}

	fullName := info.FullName
	description := info.Comment
	execute := func(ctx context.Context, args map[string]any) string {
		if cfg.metrics != nil {
			cfg.metrics.RecordToolCall(ctx, name)
		}
		var result *client.FunctionExecutionResult
		coerced, err := params.Coerce(generated, args)
		if err == nil {
			result, err = svc.ExecuteFunction(ctx, fullName, coerced)
		}
		if err != nil {
			result = &client.FunctionExecutionResult{Error: err.Error()}
		}
		if cfg.metrics != nil {
			status := "success"
			if result.Error != "" {
				status = "error"
			}
			cfg.metrics.RecordExecutionResult(ctx, name, status)
		}
		return result.JSON()
	}

	return &Tool{
		Name:        name,
		FullName:    fullName,
		Description: description,
		Schema:      generated,
		Execute:     execute,
	}, nil
}

// Tool returns the tool for a fully qualified function name.
func (t *Toolkit) Tool(fullName string) (*Tool, bool) {
	tool, ok := t.tools[fullName]
	return tool, ok
}

// Tools returns the tools ordered by full function name.
func (t *Toolkit) Tools() []*Tool {
	names := make([]string, 0, len(t.tools))
	for name := range t.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	tools := make([]*Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, t.tools[name])
	}
	return tools
}
