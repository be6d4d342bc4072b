/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package openaitool converts toolkit tools into OpenAI function tool
// definitions and dispatches tool calls back to them.
package openaitool
