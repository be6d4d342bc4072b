/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package typemap converts catalog type descriptors into JSON-Schema shaped
// native types.
//
// A type descriptor is either a bare scalar name ("STRING", "DECIMAL(10,2)")
// or a nested JSON object describing an array, map, or struct. Resolve turns
// the JSON form into a Node tree; ToSchema lowers a Node into a
// *jsonschema.Schema along with a strictness verdict.
//
// Strictness tracks whether every type in the tree is representable in the
// closed-world JSON-Schema vocabulary some consumer protocols require. A
// single non-strict leaf (for example DECIMAL, which maps onto a
// number-or-string union) makes the whole tree non-strict.
package typemap
