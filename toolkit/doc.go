/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package toolkit turns catalog functions into provider-independent tool
// definitions for AI agents.
//
// A Toolkit is built from fully qualified function names (wildcards expand
// to every function in a schema) and exposes one Tool per function: the
// generated parameter schema plus an Execute closure that invokes the
// function and returns the execution result as JSON. Provider adapters in
// the claudetool, openaitool, and googletool subpackages convert Tools into
// each SDK's native declaration type.
package toolkit
