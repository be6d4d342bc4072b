/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package client manages and executes catalog functions over pluggable
// service boundaries.
//
// The Client validates arguments locally, renders a parameterized SELECT
// for the warehouse, polls pending statements with exponential backoff,
// and encodes outcomes as FunctionExecutionResult values whose failures
// are plain text suitable for relaying to a language model.
package client
