/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package client_test

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fnbridge/fnbridge/catalog"
	"github.com/fnbridge/fnbridge/client"
	"github.com/fnbridge/fnbridge/client/retry"
)

type fakeCatalog struct {
	functions map[string]*catalog.FunctionInfo
	deleted   []string
	pages     [][]catalog.FunctionInfo
	pageCalls atomic.Int32
}

func (f *fakeCatalog) GetFunction(_ context.Context, name string) (*catalog.FunctionInfo, error) {
	info, ok := f.functions[name]
	if !ok {
		return nil, fmt.Errorf("function %q not found", name)
	}
	return info, nil
}

func (f *fakeCatalog) ListFunctions(_ context.Context, _, _ string, _ int, pageToken string) ([]catalog.FunctionInfo, string, error) {
	page := int(f.pageCalls.Add(1)) - 1
	if page >= len(f.pages) {
		return nil, "", nil
	}
	next := ""
	if page+1 < len(f.pages) {
		next = fmt.Sprintf("page-%d", page+1)
	}
	return f.pages[page], next, nil
}

func (f *fakeCatalog) CreateFunctionInfo(_ context.Context, info *catalog.FunctionInfo) (*catalog.FunctionInfo, error) {
	if f.functions == nil {
		f.functions = map[string]*catalog.FunctionInfo{}
	}
	f.functions[info.FullName] = info
	return info, nil
}

func (f *fakeCatalog) DeleteFunction(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

// fakeStatements replays a scripted sequence: the first response answers
// ExecuteStatement, subsequent ones answer GetStatement polls.
type fakeStatements struct {
	responses []*client.StatementResponse
	requests  []client.StatementRequest
	calls     atomic.Int32
}

func (f *fakeStatements) next() *client.StatementResponse {
	i := int(f.calls.Add(1)) - 1
	if i >= len(f.responses) {
		return f.responses[len(f.responses)-1]
	}
	return f.responses[i]
}

func (f *fakeStatements) ExecuteStatement(_ context.Context, req client.StatementRequest) (*client.StatementResponse, error) {
	f.requests = append(f.requests, req)
	return f.next(), nil
}

func (f *fakeStatements) GetStatement(_ context.Context, _ string) (*client.StatementResponse, error) {
	return f.next(), nil
}

func succeededScalar(value string) *client.StatementResponse {
	return &client.StatementResponse{
		StatementID: "stmt-1",
		Status:      &client.StatementStatus{State: client.StateSucceeded},
		Manifest:    &client.ResultManifest{},
		Result:      &client.ResultData{DataArray: [][]string{{value}}},
	}
}

func pending() *client.StatementResponse {
	return &client.StatementResponse{
		StatementID: "stmt-1",
		Status:      &client.StatementStatus{State: client.StatePending},
	}
}

func addFunction() *catalog.FunctionInfo {
	return &catalog.FunctionInfo{
		CatalogName: "main",
		SchemaName:  "tools",
		Name:        "add",
		FullName:    "main.tools.add",
		DataType:    catalog.TypeInt,
		InputParams: []catalog.ParameterInfo{
			{Name: "a", TypeName: catalog.TypeInt, TypeText: "int", Position: 0},
			{Name: "b", TypeName: catalog.TypeInt, TypeText: "int", Position: 1},
		},
	}
}

func testRetryConfig() retry.Config {
	return retry.Config{MaxRetries: 3, BaseBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}
}

func newTestClient(t *testing.T, cat client.CatalogAPI, stmts client.StatementAPI) *client.Client {
	t.Helper()
	c, err := client.New(context.Background(), cat, stmts,
		client.WithWarehouseID("wh-1"),
		client.WithRetryConfig(testRetryConfig()),
	)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return c
}

func TestExecuteFunctionScalar(t *testing.T) {
	cat := &fakeCatalog{functions: map[string]*catalog.FunctionInfo{"main.tools.add": addFunction()}}
	stmts := &fakeStatements{responses: []*client.StatementResponse{succeededScalar("1024")}}
	c := newTestClient(t, cat, stmts)

	result, err := c.ExecuteFunction(context.Background(), "main.tools.add", map[string]any{"a": 512, "b": 512})
	if err != nil {
		t.Fatalf("ExecuteFunction() = %v", err)
	}
	if result.Error != "" {
		t.Fatalf("result error: %s", result.Error)
	}
	if result.Format != client.FormatScalar || result.Value == nil || *result.Value != "1024" {
		t.Errorf("result = %+v, want scalar 1024", result)
	}

	req := stmts.requests[0]
	if req.WarehouseID != "wh-1" {
		t.Errorf("WarehouseID = %q, want wh-1", req.WarehouseID)
	}
	if req.WaitTimeout != "30s" {
		t.Errorf("WaitTimeout = %q, want 30s", req.WaitTimeout)
	}
	if req.RowLimit != 100 || req.ByteLimit != 4096 {
		t.Errorf("limits = %d/%d, want 100/4096", req.RowLimit, req.ByteLimit)
	}
}

func TestExecuteFunctionPollsPending(t *testing.T) {
	cat := &fakeCatalog{functions: map[string]*catalog.FunctionInfo{"main.tools.add": addFunction()}}
	stmts := &fakeStatements{responses: []*client.StatementResponse{
		pending(),
		pending(),
		succeededScalar("3"),
	}}
	c := newTestClient(t, cat, stmts)

	result, err := c.ExecuteFunction(context.Background(), "main.tools.add", map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("ExecuteFunction() = %v", err)
	}
	if result.Value == nil || *result.Value != "3" {
		t.Errorf("result = %+v, want scalar 3", result)
	}
	if got := stmts.calls.Load(); got != 3 {
		t.Errorf("statement calls = %d, want 3", got)
	}
}

func TestExecuteFunctionPendingExhausted(t *testing.T) {
	cat := &fakeCatalog{functions: map[string]*catalog.FunctionInfo{"main.tools.add": addFunction()}}
	stmts := &fakeStatements{responses: []*client.StatementResponse{pending()}}
	c := newTestClient(t, cat, stmts)

	result, err := c.ExecuteFunction(context.Background(), "main.tools.add", map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("ExecuteFunction() = %v", err)
	}
	want := "Statement execution is still pending after 3 times."
	if !strings.Contains(result.Error, want) {
		t.Errorf("result error = %q, want substring %q", result.Error, want)
	}
	if !strings.Contains(result.Error, "wait_timeout") {
		t.Errorf("result error = %q, want wait_timeout hint", result.Error)
	}
}

func TestExecuteFunctionFailedStatement(t *testing.T) {
	cat := &fakeCatalog{functions: map[string]*catalog.FunctionInfo{"main.tools.add": addFunction()}}
	stmts := &fakeStatements{responses: []*client.StatementResponse{{
		StatementID: "stmt-1",
		Status: &client.StatementStatus{
			State: client.StateFailed,
			Error: &client.StatementError{Code: "DIVIDE_BY_ZERO", Message: "division by zero"},
		},
	}}}
	c := newTestClient(t, cat, stmts)

	result, err := c.ExecuteFunction(context.Background(), "main.tools.add", map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("ExecuteFunction() = %v", err)
	}
	if result.Error != "DIVIDE_BY_ZERO: division by zero" {
		t.Errorf("result error = %q", result.Error)
	}
}

func TestExecuteFunctionArgumentValidation(t *testing.T) {
	cat := &fakeCatalog{functions: map[string]*catalog.FunctionInfo{"main.tools.add": addFunction()}}
	stmts := &fakeStatements{responses: []*client.StatementResponse{succeededScalar("0")}}
	c := newTestClient(t, cat, stmts)

	tests := []struct {
		name   string
		params map[string]any
		want   string
	}{{
		name:   "missing required",
		params: map[string]any{"a": 1},
		want:   `parameter "b" is required`,
	}, {
		name:   "unknown parameter",
		params: map[string]any{"a": 1, "b": 2, "z": 3},
		want:   "unknown parameters: z",
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.ExecuteFunction(context.Background(), "main.tools.add", tc.params)
			if err == nil {
				t.Fatal("ExecuteFunction() succeeded, wanted error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error = %q, want substring %q", err, tc.want)
			}
		})
	}
}

func TestExecuteFunctionReservedParameterName(t *testing.T) {
	info := addFunction()
	info.InputParams = append(info.InputParams, catalog.ParameterInfo{
		Name: "__execution_args__", TypeName: catalog.TypeString, TypeText: "string", Position: 2,
	})
	cat := &fakeCatalog{functions: map[string]*catalog.FunctionInfo{"main.tools.add": info}}
	stmts := &fakeStatements{responses: []*client.StatementResponse{succeededScalar("0")}}
	c := newTestClient(t, cat, stmts)

	_, err := c.ExecuteFunction(context.Background(), "main.tools.add", map[string]any{"a": 1, "b": 2})
	if err == nil || !strings.Contains(err.Error(), "__execution_args__") {
		t.Errorf("error = %v, want reserved-name rejection", err)
	}
}

func TestExecuteFunctionDefaultedParameterOmitted(t *testing.T) {
	info := addFunction()
	info.InputParams[1].ParameterDefault = "2"
	cat := &fakeCatalog{functions: map[string]*catalog.FunctionInfo{"main.tools.add": info}}
	stmts := &fakeStatements{responses: []*client.StatementResponse{succeededScalar("3")}}
	c := newTestClient(t, cat, stmts)

	result, err := c.ExecuteFunction(context.Background(), "main.tools.add", map[string]any{"a": 1})
	if err != nil {
		t.Fatalf("ExecuteFunction() = %v", err)
	}
	if result.Value == nil || *result.Value != "3" {
		t.Errorf("result = %+v", result)
	}
}

func TestGetFunctionRejectsWildcard(t *testing.T) {
	cat := &fakeCatalog{}
	c := newTestClient(t, cat, &fakeStatements{responses: []*client.StatementResponse{succeededScalar("0")}})

	if _, err := c.GetFunction(context.Background(), "main.tools.*"); err == nil {
		t.Error("GetFunction() with wildcard succeeded, wanted error")
	}
}

func TestListFunctionsPaginates(t *testing.T) {
	cat := &fakeCatalog{pages: [][]catalog.FunctionInfo{
		{{FullName: "main.tools.a"}, {FullName: "main.tools.b"}},
		{{FullName: "main.tools.c"}},
	}}
	c := newTestClient(t, cat, &fakeStatements{responses: []*client.StatementResponse{succeededScalar("0")}})

	got, err := c.ListFunctions(context.Background(), "main", "tools")
	if err != nil {
		t.Fatalf("ListFunctions() = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[2].FullName != "main.tools.c" {
		t.Errorf("last = %q, want main.tools.c", got[2].FullName)
	}
}

func TestCreateFunction(t *testing.T) {
	cat := &fakeCatalog{functions: map[string]*catalog.FunctionInfo{"main.tools.add": addFunction()}}
	stmts := &fakeStatements{responses: []*client.StatementResponse{succeededScalar("ok")}}
	c := newTestClient(t, cat, stmts)

	info, err := c.CreateFunction(context.Background(), "CREATE OR REPLACE FUNCTION main.tools.add(a INT, b INT)\nRETURNS INT")
	if err != nil {
		t.Fatalf("CreateFunction() = %v", err)
	}
	if info.FullName != "main.tools.add" {
		t.Errorf("FullName = %q", info.FullName)
	}
}

func TestCreateFunctionBadStatement(t *testing.T) {
	c := newTestClient(t, &fakeCatalog{}, &fakeStatements{responses: []*client.StatementResponse{succeededScalar("ok")}})
	if _, err := c.CreateFunction(context.Background(), "SELECT 1"); err == nil {
		t.Error("CreateFunction() with non-create SQL succeeded, wanted error")
	}
}

func TestDeleteFunction(t *testing.T) {
	cat := &fakeCatalog{}
	c := newTestClient(t, cat, &fakeStatements{responses: []*client.StatementResponse{succeededScalar("0")}})

	if err := c.DeleteFunction(context.Background(), "main.tools.add"); err != nil {
		t.Fatalf("DeleteFunction() = %v", err)
	}
	if len(cat.deleted) != 1 || cat.deleted[0] != "main.tools.add" {
		t.Errorf("deleted = %v", cat.deleted)
	}
}
