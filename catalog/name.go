/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package catalog

import "strings"

// FullFunctionName is the parsed three-part identity of a catalog function.
type FullFunctionName struct {
	Catalog  string
	Schema   string
	Function string
}

// String re-joins the identity with dots.
func (f FullFunctionName) String() string {
	return f.Catalog + "." + f.Schema + "." + f.Function
}

// IsWildcard reports whether the function segment is the schema-wide
// wildcard sentinel "*". Callers resolving a wildcard must list the schema
// instead of fetching a single function.
func (f FullFunctionName) IsWildcard() bool {
	return f.Function == "*"
}

// ParseFunctionName parses a dotted catalog.schema.function identity.
// Splitting on "." must yield exactly three non-empty segments; anything
// else is an *InvalidIdentityError. No segment-level character validation
// is performed here, that is left to the catalog service.
func ParseFunctionName(name string) (FullFunctionName, error) {
	parts := strings.Split(name, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return FullFunctionName{}, &InvalidIdentityError{Name: name}
	}
	return FullFunctionName{
		Catalog:  parts[0],
		Schema:   parts[1],
		Function: parts[2],
	}, nil
}
