/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package envs centralizes the environment variables that tune function
// execution and listing behavior.
package envs

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the environment-driven tunables. Zero values are never
// used directly; call Process to apply defaults.
type Config struct {
	// ExecuteFunctionWaitTimeout is the synchronous wait passed to
	// statement execution before the service switches to async polling.
	ExecuteFunctionWaitTimeout time.Duration `env:"EXECUTE_FUNCTION_WAIT_TIMEOUT,default=30s"`

	// ExecuteFunctionRowLimit caps the number of rows returned by a
	// function invocation.
	ExecuteFunctionRowLimit int `env:"EXECUTE_FUNCTION_ROW_LIMIT,default=100"`

	// ExecuteFunctionByteLimit caps the number of result bytes returned
	// by a function invocation.
	ExecuteFunctionByteLimit int `env:"EXECUTE_FUNCTION_BYTE_LIMIT,default=4096"`

	// ListFunctionsMaxResults is the page size used when enumerating the
	// functions of a schema.
	ListFunctionsMaxResults int `env:"LIST_FUNCTIONS_MAX_RESULTS,default=100"`
}

// Process reads the configuration from the environment, applying defaults
// for unset variables.
func Process(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
