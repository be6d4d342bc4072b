/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"

	"github.com/fnbridge/fnbridge/catalog"
)

// CatalogAPI is the subset of the catalog service used to manage function
// metadata. Implementations wrap a concrete workspace SDK; tests supply
// fakes.
type CatalogAPI interface {
	// GetFunction fetches metadata for a fully qualified function name.
	GetFunction(ctx context.Context, name string) (*catalog.FunctionInfo, error)

	// ListFunctions enumerates the functions of a schema one page at a
	// time. An empty returned token means the listing is complete.
	ListFunctions(ctx context.Context, catalogName, schemaName string, maxResults int, pageToken string) ([]catalog.FunctionInfo, string, error)

	// CreateFunctionInfo registers a function from structured metadata.
	CreateFunctionInfo(ctx context.Context, info *catalog.FunctionInfo) (*catalog.FunctionInfo, error)

	// DeleteFunction removes a function from the catalog.
	DeleteFunction(ctx context.Context, name string) error
}

// StatementAPI executes SQL statements against a warehouse.
type StatementAPI interface {
	ExecuteStatement(ctx context.Context, req StatementRequest) (*StatementResponse, error)

	// GetStatement polls a previously submitted statement by id.
	GetStatement(ctx context.Context, statementID string) (*StatementResponse, error)
}

// StatementState is the lifecycle state of a submitted statement.
type StatementState string

const (
	StatePending   StatementState = "PENDING"
	StateRunning   StatementState = "RUNNING"
	StateSucceeded StatementState = "SUCCEEDED"
	StateFailed    StatementState = "FAILED"
	StateCanceled  StatementState = "CANCELED"
)

// StatementParameter is a named parameter bound into a statement.
type StatementParameter struct {
	Name  string `json:"name"`
	Value any    `json:"value,omitempty"`
	// Type is the parameter's SQL type text; the service defaults to
	// STRING when empty.
	Type string `json:"type,omitempty"`
}

// StatementRequest submits a statement for execution.
type StatementRequest struct {
	Statement   string               `json:"statement"`
	WarehouseID string               `json:"warehouse_id"`
	Parameters  []StatementParameter `json:"parameters,omitempty"`
	// WaitTimeout is the synchronous wait window, rendered as "Ns".
	WaitTimeout string `json:"wait_timeout,omitempty"`
	RowLimit    int    `json:"row_limit,omitempty"`
	ByteLimit   int    `json:"byte_limit,omitempty"`
}

// StatementError describes a failed statement.
type StatementError struct {
	Code    string `json:"error_code,omitempty"`
	Message string `json:"message,omitempty"`
}

// StatementStatus carries the state and, on failure, the error detail.
type StatementStatus struct {
	State StatementState  `json:"state"`
	Error *StatementError `json:"error,omitempty"`
}

// ColumnInfo names one column of a result schema.
type ColumnInfo struct {
	Name string `json:"name"`
}

// ResultSchema describes the shape of a statement result.
type ResultSchema struct {
	Columns []ColumnInfo `json:"columns"`
}

// ResultManifest accompanies a statement result.
type ResultManifest struct {
	Schema    *ResultSchema `json:"schema,omitempty"`
	Truncated bool          `json:"truncated,omitempty"`
}

// ResultData holds result rows as string cells.
type ResultData struct {
	DataArray [][]string `json:"data_array,omitempty"`
}

// StatementResponse is the service's view of a statement at a point in
// time.
type StatementResponse struct {
	StatementID string           `json:"statement_id"`
	Status      *StatementStatus `json:"status,omitempty"`
	Manifest    *ResultManifest  `json:"manifest,omitempty"`
	Result      *ResultData      `json:"result,omitempty"`
}
