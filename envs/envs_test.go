/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package envs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fnbridge/fnbridge/envs"
)

func TestProcessDefaults(t *testing.T) {
	cfg, err := envs.Process(context.Background())
	require.NoError(t, err, "failed to process defaults")
	require.Equal(t, 30*time.Second, cfg.ExecuteFunctionWaitTimeout)
	require.Equal(t, 100, cfg.ExecuteFunctionRowLimit)
	require.Equal(t, 4096, cfg.ExecuteFunctionByteLimit)
	require.Equal(t, 100, cfg.ListFunctionsMaxResults)
}

func TestProcessOverrides(t *testing.T) {
	t.Setenv("EXECUTE_FUNCTION_WAIT_TIMEOUT", "10s")
	t.Setenv("EXECUTE_FUNCTION_ROW_LIMIT", "5")
	cfg, err := envs.Process(context.Background())
	require.NoError(t, err, "failed to process overrides")
	require.Equal(t, 10*time.Second, cfg.ExecuteFunctionWaitTimeout)
	require.Equal(t, 5, cfg.ExecuteFunctionRowLimit)
}

func TestProcessInvalidValue(t *testing.T) {
	t.Setenv("EXECUTE_FUNCTION_ROW_LIMIT", "not-a-number")
	_, err := envs.Process(context.Background())
	require.Error(t, err, "expected an error for a malformed limit")
}
