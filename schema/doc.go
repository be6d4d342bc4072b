/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package schema generates validated request schemas from catalog function
// metadata.
//
// Generate walks a function's declared parameters in position order,
// resolves each parameter's type tree through catalog/typemap, and
// assembles a GeneratedSchema: an ordered, named field list plus a
// strictness verdict consumed by strict-mode protocols.
//
// Generation is pure: the same function metadata always produces the same
// schema, including the content-derived names of nested struct types, so
// callers may cache results keyed by full function name.
package schema
