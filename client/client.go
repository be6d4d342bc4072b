/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/chainguard-dev/clog"

	"github.com/fnbridge/fnbridge/catalog"
	"github.com/fnbridge/fnbridge/catalog/validate"
	"github.com/fnbridge/fnbridge/client/retry"
	"github.com/fnbridge/fnbridge/envs"
)

// executionArgName is reserved for passing per-call execution overrides
// alongside function arguments; functions may not declare it themselves.
const executionArgName = "__execution_args__"

// createFunctionRegexp extracts the function name from a CREATE FUNCTION
// statement.
var createFunctionRegexp = regexp.MustCompile(
	`(?is)CREATE\s+(?:OR\s+REPLACE\s+)?(?:TEMPORARY\s+)?FUNCTION\s+(?:IF\s+NOT\s+EXISTS\s+)?([\w.]+)\s*\(`)

// Client manages and executes catalog functions against a warehouse. It is
// safe for concurrent use.
type Client struct {
	catalog     CatalogAPI
	statements  StatementAPI
	warehouseID string
	execution   envs.Config
	retry       retry.Config
}

// Option configures a Client.
type Option func(*Client)

// WithWarehouseID sets the warehouse used to execute statements. Execution
// fails without one; metadata operations do not need it.
func WithWarehouseID(id string) Option {
	return func(c *Client) { c.warehouseID = id }
}

// WithExecutionConfig overrides the environment-derived execution limits.
func WithExecutionConfig(cfg envs.Config) Option {
	return func(c *Client) { c.execution = cfg }
}

// WithRetryConfig overrides the pending-statement polling behavior.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *Client) { c.retry = cfg }
}

// New builds a Client over the given service boundaries.
func New(ctx context.Context, catalogAPI CatalogAPI, statements StatementAPI, opts ...Option) (*Client, error) {
	if catalogAPI == nil {
		return nil, errors.New("catalog API is required")
	}
	execution, err := envs.Process(ctx)
	if err != nil {
		return nil, fmt.Errorf("processing execution config: %w", err)
	}
	c := &Client{
		catalog:    catalogAPI,
		statements: statements,
		execution:  execution,
		retry:      retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.retry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retry config: %w", err)
	}
	return c, nil
}

// GetFunction fetches metadata for a fully qualified function name.
// Wildcard identities are rejected; use ListFunctions to enumerate.
func (c *Client) GetFunction(ctx context.Context, name string) (*catalog.FunctionInfo, error) {
	parsed, err := catalog.ParseFunctionName(name)
	if err != nil {
		return nil, err
	}
	if parsed.IsWildcard() {
		return nil, fmt.Errorf("function name %q is a wildcard, expecting a single function", name)
	}
	return c.catalog.GetFunction(ctx, name)
}

// ListFunctions enumerates all functions of a schema, following page
// tokens until the listing is exhausted.
func (c *Client) ListFunctions(ctx context.Context, catalogName, schemaName string) ([]catalog.FunctionInfo, error) {
	var all []catalog.FunctionInfo
	pageToken := ""
	for {
		page, next, err := c.catalog.ListFunctions(ctx, catalogName, schemaName, c.execution.ListFunctionsMaxResults, pageToken)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if next == "" {
			return all, nil
		}
		pageToken = next
	}
}

// CreateFunction registers a function from a CREATE FUNCTION statement and
// returns the resulting metadata.
func (c *Client) CreateFunction(ctx context.Context, sqlBody string) (*catalog.FunctionInfo, error) {
	name, err := extractFunctionName(sqlBody)
	if err != nil {
		return nil, err
	}
	if c.statements == nil || c.warehouseID == "" {
		return nil, errors.New("a warehouse is required for creating functions from SQL")
	}
	resp, err := c.statements.ExecuteStatement(ctx, StatementRequest{
		Statement:   sqlBody,
		WarehouseID: c.warehouseID,
		WaitTimeout: formatWaitTimeout(c.execution),
	})
	if err != nil {
		return nil, fmt.Errorf("executing create function statement: %w", err)
	}
	resp, err = c.awaitStatement(ctx, resp)
	if err != nil {
		return nil, err
	}
	if resp.Status == nil || resp.Status.State != StateSucceeded {
		return nil, fmt.Errorf("create function statement did not succeed: %s", statementFailure(resp))
	}
	return c.catalog.GetFunction(ctx, name)
}

// CreateFunctionInfo registers a function from structured metadata.
func (c *Client) CreateFunctionInfo(ctx context.Context, info *catalog.FunctionInfo) (*catalog.FunctionInfo, error) {
	if info == nil {
		return nil, &catalog.UnsupportedFunctionInfoError{Got: "nil"}
	}
	return c.catalog.CreateFunctionInfo(ctx, info)
}

// DeleteFunction removes a function from the catalog.
func (c *Client) DeleteFunction(ctx context.Context, name string) error {
	parsed, err := catalog.ParseFunctionName(name)
	if err != nil {
		return err
	}
	if parsed.IsWildcard() {
		return fmt.Errorf("function name %q is a wildcard, expecting a single function", name)
	}
	return c.catalog.DeleteFunction(ctx, name)
}

// ExecuteFunction invokes a catalog function with the given arguments.
// Argument problems (unknown names, missing required values, malformed
// time or interval text) are hard errors; execution problems on the
// warehouse side come back inside the result's Error field so callers can
// relay them to the model.
func (c *Client) ExecuteFunction(ctx context.Context, name string, parameters map[string]any) (*FunctionExecutionResult, error) {
	if _, err := catalog.ParseFunctionName(name); err != nil {
		return nil, err
	}
	info, err := c.catalog.GetFunction(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching function %q: %w", name, err)
	}
	return c.execute(ctx, info, parameters)
}

func (c *Client) execute(ctx context.Context, info *catalog.FunctionInfo, parameters map[string]any) (*FunctionExecutionResult, error) {
	if c.warehouseID == "" {
		return nil, errors.New("a warehouse is required for executing functions")
	}
	if err := validateArguments(info, parameters); err != nil {
		return nil, err
	}

	stmt, err := buildStatement(info, parameters)
	if err != nil {
		return nil, err
	}

	resp, err := c.statements.ExecuteStatement(ctx, StatementRequest{
		Statement:   stmt.statement,
		WarehouseID: c.warehouseID,
		Parameters:  stmt.parameters,
		WaitTimeout: formatWaitTimeout(c.execution),
		RowLimit:    c.execution.ExecuteFunctionRowLimit,
		ByteLimit:   c.execution.ExecuteFunctionByteLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("executing function %q: %w", info.FullName, err)
	}

	resp, err = c.awaitStatement(ctx, resp)
	if err != nil {
		if errors.Is(err, retry.ErrStillPending) {
			return errorResult(fmt.Sprintf(
				"Statement execution is still pending after %d times. "+
					"Please try increase the wait_timeout argument for executing the function.",
				c.retry.MaxRetries)), nil
		}
		return nil, err
	}
	return encodeResult(info, resp), nil
}

// awaitStatement polls a pending statement until it reaches a terminal
// state or the retry budget runs out.
func (c *Client) awaitStatement(ctx context.Context, resp *StatementResponse) (*StatementResponse, error) {
	if resp == nil || resp.Status == nil || resp.Status.State != StatePending || resp.StatementID == "" {
		return resp, nil
	}
	statementID := resp.StatementID
	clog.FromContext(ctx).With("statement_id", statementID).
		Info("Retrying to get statement execution status")
	return retry.Poll(ctx, c.retry, "statement execution", func() (*StatementResponse, error) {
		latest, err := c.statements.GetStatement(ctx, statementID)
		if err != nil {
			return nil, err
		}
		if latest.Status != nil && latest.Status.State == StatePending {
			return nil, retry.ErrStillPending
		}
		return latest, nil
	})
}

// validateArguments checks the caller's arguments against the function's
// declared parameters before anything is sent to the warehouse.
func validateArguments(info *catalog.FunctionInfo, parameters map[string]any) error {
	declared := map[string]catalog.ParameterInfo{}
	for _, p := range info.InputParams {
		if p.Name == executionArgName {
			return fmt.Errorf(
				"parameter name conflicts with the reserved argument name for executing functions: %s, please rename the parameter %s",
				executionArgName, executionArgName)
		}
		declared[p.Name] = p
	}

	var unknown []string
	for name := range parameters {
		if _, ok := declared[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown parameters: %s", strings.Join(unknown, ", "))
	}

	for _, p := range info.InputParams {
		value, ok := parameters[p.Name]
		if !ok {
			if p.ParameterDefault == "" {
				return fmt.Errorf("parameter %q is required but not provided", p.Name)
			}
			continue
		}
		if err := validate.Value(value, p.TypeName, p.TypeText); err != nil {
			return fmt.Errorf("invalid value for parameter %q: %w", p.Name, err)
		}
	}
	return nil
}

func extractFunctionName(sqlBody string) (string, error) {
	match := createFunctionRegexp.FindStringSubmatch(sqlBody)
	if match == nil {
		return "", errors.New(
			"could not extract function name from the sql body, please make sure it follows the CREATE FUNCTION statement syntax")
	}
	return match[1], nil
}

func statementFailure(resp *StatementResponse) string {
	if resp == nil || resp.Status == nil {
		return "no status returned"
	}
	if resp.Status.Error != nil {
		return fmt.Sprintf("%s: %s", resp.Status.Error.Code, resp.Status.Error.Message)
	}
	return string(resp.Status.State)
}

func formatWaitTimeout(cfg envs.Config) string {
	return fmt.Sprintf("%ds", int(cfg.ExecuteFunctionWaitTimeout.Seconds()))
}
