/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package params aligns JSON-decoded tool-call arguments with a
// function's generated schema before execution.
//
// Arguments arrive as map[string]any decoded from provider JSON, so
// integers surface as float64; Coerce converts them back per the schema
// field types so they bind as integral statement parameters.
package params
