/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fnbridge/fnbridge/catalog"
)

// Format describes how a function result value is encoded.
type Format string

const (
	// FormatScalar carries a single value as its string form.
	FormatScalar Format = "SCALAR"
	// FormatCSV carries tabular results as CSV text with a header row.
	FormatCSV Format = "CSV"
)

// FunctionExecutionResult is the outcome of invoking a catalog function.
// Execution problems surface in Error rather than as Go errors, so agent
// frameworks can hand the failure text back to the model.
type FunctionExecutionResult struct {
	Format    Format  `json:"format,omitempty"`
	Value     *string `json:"value,omitempty"`
	Truncated bool    `json:"truncated,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// JSON renders the result for embedding in a tool-call response.
func (r *FunctionExecutionResult) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(b)
}

func errorResult(msg string) *FunctionExecutionResult {
	return &FunctionExecutionResult{Error: msg}
}

// encodeResult turns a terminal statement response into a function
// execution result. Scalars take the first cell of the first row; table
// functions serialize as CSV with a header row, header-only when the
// result set is empty.
func encodeResult(info *catalog.FunctionInfo, resp *StatementResponse) *FunctionExecutionResult {
	if resp == nil || resp.Status == nil {
		return errorResult(fmt.Sprintf("Statement execution failed: %+v", resp))
	}
	if resp.Status.State != StateSucceeded {
		if resp.Status.Error == nil {
			return errorResult(fmt.Sprintf("Statement execution failed but no error message was provided: %+v", resp))
		}
		return errorResult(fmt.Sprintf("%s: %s", resp.Status.Error.Code, resp.Status.Error.Message))
	}
	if resp.Manifest == nil {
		return errorResult("Statement execution succeeded but no manifest was returned.")
	}
	truncated := resp.Manifest.Truncated
	if resp.Result == nil {
		return errorResult("Statement execution succeeded but no result was provided.")
	}
	rows := resp.Result.DataArray

	if info.IsScalar() {
		var value *string
		if len(rows) > 0 && len(rows[0]) > 0 {
			value = &rows[0][0]
		}
		return &FunctionExecutionResult{Format: FormatScalar, Value: value, Truncated: truncated}
	}

	if resp.Manifest.Schema == nil || len(resp.Manifest.Schema.Columns) == 0 {
		return errorResult("Statement execution succeeded but no schema was provided for table function.")
	}
	header := make([]string, 0, len(resp.Manifest.Schema.Columns))
	for _, c := range resp.Manifest.Schema.Columns {
		header = append(header, c.Name)
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(header); err != nil {
		return errorResult(fmt.Sprintf("Failed to serialize table function result: %v", err))
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return errorResult(fmt.Sprintf("Failed to serialize table function result: %v", err))
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errorResult(fmt.Sprintf("Failed to serialize table function result: %v", err))
	}
	value := b.String()
	return &FunctionExecutionResult{Format: FormatCSV, Value: &value, Truncated: truncated}
}
