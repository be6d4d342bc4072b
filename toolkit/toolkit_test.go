/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package toolkit_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/fnbridge/fnbridge/catalog"
	"github.com/fnbridge/fnbridge/client"
	"github.com/fnbridge/fnbridge/metrics"
	"github.com/fnbridge/fnbridge/toolkit"
)

type fakeService struct {
	functions map[string]*catalog.FunctionInfo
	results   map[string]*client.FunctionExecutionResult
	execErr   error
	executed  []string
	arguments []map[string]any
}

func (f *fakeService) GetFunction(_ context.Context, name string) (*catalog.FunctionInfo, error) {
	info, ok := f.functions[name]
	if !ok {
		return nil, fmt.Errorf("function %q not found", name)
	}
	return info, nil
}

func (f *fakeService) ListFunctions(_ context.Context, catalogName, schemaName string) ([]catalog.FunctionInfo, error) {
	var listed []catalog.FunctionInfo
	prefix := catalogName + "." + schemaName + "."
	for name, info := range f.functions {
		if strings.HasPrefix(name, prefix) {
			listed = append(listed, *info)
		}
	}
	return listed, nil
}

func (f *fakeService) ExecuteFunction(_ context.Context, name string, parameters map[string]any) (*client.FunctionExecutionResult, error) {
	f.executed = append(f.executed, name)
	f.arguments = append(f.arguments, parameters)
	if f.execErr != nil {
		return nil, f.execErr
	}
	if result, ok := f.results[name]; ok {
		return result, nil
	}
	value := "ok"
	return &client.FunctionExecutionResult{Format: client.FormatScalar, Value: &value}, nil
}

func intFunction(name string) *catalog.FunctionInfo {
	parsed, _ := catalog.ParseFunctionName(name)
	return &catalog.FunctionInfo{
		CatalogName: parsed.Catalog,
		SchemaName:  parsed.Schema,
		Name:        parsed.Function,
		FullName:    name,
		Comment:     "Does " + parsed.Function,
		DataType:    catalog.TypeInt,
		InputParams: []catalog.ParameterInfo{{
			Name:     "x",
			TypeName: catalog.TypeInt,
			TypeText: "int",
			TypeJSON: `{"name":"x","type":"int","nullable":false}`,
			Position: 0,
		}},
	}
}

func TestNewToolkit(t *testing.T) {
	svc := &fakeService{functions: map[string]*catalog.FunctionInfo{
		"main.tools.add": intFunction("main.tools.add"),
	}}
	tk, err := toolkit.New(context.Background(), svc, []string{"main.tools.add"})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	tool, ok := tk.Tool("main.tools.add")
	if !ok {
		t.Fatal("Tool() not found")
	}
	if tool.Name != "main__tools__add" {
		t.Errorf("Name = %q, want main__tools__add", tool.Name)
	}
	if tool.Description != "Does add" {
		t.Errorf("Description = %q", tool.Description)
	}
	if got := tool.Schema.Names(); len(got) != 1 || got[0] != "x" {
		t.Errorf("schema names = %v, want [x]", got)
	}
}

func TestNewToolkitWildcard(t *testing.T) {
	svc := &fakeService{functions: map[string]*catalog.FunctionInfo{
		"main.tools.add": intFunction("main.tools.add"),
		"main.tools.sub": intFunction("main.tools.sub"),
		"main.other.mul": intFunction("main.other.mul"),
	}}
	tk, err := toolkit.New(context.Background(), svc, []string{"main.tools.*"})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	tools := tk.Tools()
	if len(tools) != 2 {
		t.Fatalf("len(Tools()) = %d, want 2", len(tools))
	}
	// Tools are ordered by full function name.
	if tools[0].FullName != "main.tools.add" || tools[1].FullName != "main.tools.sub" {
		t.Errorf("order = %q, %q", tools[0].FullName, tools[1].FullName)
	}
}

func TestNewToolkitDeduplicates(t *testing.T) {
	svc := &fakeService{functions: map[string]*catalog.FunctionInfo{
		"main.tools.add": intFunction("main.tools.add"),
	}}
	tk, err := toolkit.New(context.Background(), svc, []string{"main.tools.add", "main.tools.*"})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if got := len(tk.Tools()); got != 1 {
		t.Errorf("len(Tools()) = %d, want 1", got)
	}
}

func TestNewToolkitUnknownFunction(t *testing.T) {
	svc := &fakeService{}
	if _, err := toolkit.New(context.Background(), svc, []string{"main.tools.missing"}); err == nil {
		t.Error("New() with unknown function succeeded, wanted error")
	}
}

func TestToolExecute(t *testing.T) {
	value := "42"
	svc := &fakeService{
		functions: map[string]*catalog.FunctionInfo{"main.tools.add": intFunction("main.tools.add")},
		results: map[string]*client.FunctionExecutionResult{
			"main.tools.add": {Format: client.FormatScalar, Value: &value},
		},
	}
	tk, err := toolkit.New(context.Background(), svc, []string{"main.tools.add"})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	tool, _ := tk.Tool("main.tools.add")

	payload := tool.Execute(context.Background(), map[string]any{"x": 1})
	var decoded client.FunctionExecutionResult
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if decoded.Value == nil || *decoded.Value != "42" {
		t.Errorf("payload = %s, want value 42", payload)
	}
	if len(svc.executed) != 1 || svc.executed[0] != "main.tools.add" {
		t.Errorf("executed = %v", svc.executed)
	}
}

func TestToolExecuteCoercesIntegerArguments(t *testing.T) {
	svc := &fakeService{
		functions: map[string]*catalog.FunctionInfo{"main.tools.add": intFunction("main.tools.add")},
	}
	tk, err := toolkit.New(context.Background(), svc, []string{"main.tools.add"})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	tool, _ := tk.Tool("main.tools.add")

	// JSON decoding hands integer arguments over as float64.
	tool.Execute(context.Background(), map[string]any{"x": float64(3)})
	if len(svc.arguments) != 1 {
		t.Fatalf("arguments = %v", svc.arguments)
	}
	if got, ok := svc.arguments[0]["x"].(int64); !ok || got != 3 {
		t.Errorf("x = %v (%T), want int64(3)", svc.arguments[0]["x"], svc.arguments[0]["x"])
	}
}

func TestToolExecuteRejectsFractionalInteger(t *testing.T) {
	svc := &fakeService{
		functions: map[string]*catalog.FunctionInfo{"main.tools.add": intFunction("main.tools.add")},
	}
	tk, err := toolkit.New(context.Background(), svc, []string{"main.tools.add"})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	tool, _ := tk.Tool("main.tools.add")

	payload := tool.Execute(context.Background(), map[string]any{"x": 2.5})
	var decoded client.FunctionExecutionResult
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if !strings.Contains(decoded.Error, "whole number") {
		t.Errorf("payload error = %q, want whole-number complaint", decoded.Error)
	}
	if len(svc.executed) != 0 {
		t.Errorf("executed = %v, want none", svc.executed)
	}
}

func TestToolExecuteErrorInPayload(t *testing.T) {
	svc := &fakeService{
		functions: map[string]*catalog.FunctionInfo{"main.tools.add": intFunction("main.tools.add")},
		execErr:   fmt.Errorf("warehouse unavailable"),
	}
	tk, err := toolkit.New(context.Background(), svc, []string{"main.tools.add"})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	tool, _ := tk.Tool("main.tools.add")

	payload := tool.Execute(context.Background(), nil)
	var decoded client.FunctionExecutionResult
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if !strings.Contains(decoded.Error, "warehouse unavailable") {
		t.Errorf("payload error = %q", decoded.Error)
	}
}

func TestToolkitWithMetrics(t *testing.T) {
	svc := &fakeService{functions: map[string]*catalog.FunctionInfo{
		"main.tools.add": intFunction("main.tools.add"),
	}}
	tk, err := toolkit.New(context.Background(), svc, []string{"main.tools.add"},
		toolkit.WithMetrics(metrics.New("fnbridge.test")))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	tool, _ := tk.Tool("main.tools.add")
	// Recording against the default no-op meter must not panic.
	tool.Execute(context.Background(), map[string]any{"x": 1})
}

func TestToolName(t *testing.T) {
	got, err := toolkit.ToolName(context.Background(), "main.tools.add")
	if err != nil {
		t.Fatalf("ToolName() = %v", err)
	}
	if got != "main__tools__add" {
		t.Errorf("ToolName() = %q", got)
	}
}

func TestToolNameTruncation(t *testing.T) {
	name := "a_very_long_catalog_name.an_even_longer_schema_name.a_function_name_that_is_very_long"
	joined := strings.ReplaceAll(name, ".", "__")
	got, err := toolkit.ToolName(context.Background(), name)
	if err != nil {
		t.Fatalf("ToolName() = %v", err)
	}
	if len(got) != 64 {
		t.Fatalf("len = %d, want 64", len(got))
	}
	if got != joined[len(joined)-64:] {
		t.Errorf("ToolName() = %q, want trailing 64 of %q", got, joined)
	}
	if !strings.HasSuffix(got, "a_function_name_that_is_very_long") {
		t.Errorf("ToolName() = %q, lost the function segment", got)
	}
}

func TestToolNameInvalid(t *testing.T) {
	if _, err := toolkit.ToolName(context.Background(), "not_qualified"); err == nil {
		t.Error("ToolName() with unqualified name succeeded, wanted error")
	}
}
