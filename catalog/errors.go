/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package catalog

import "fmt"

// InvalidIdentityError reports a function name that does not follow the
// catalog.schema.function convention.
type InvalidIdentityError struct {
	Name string
}

func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("invalid function name: %q, expecting format <catalog_name>.<schema_name>.<function_name>", e.Name)
}

// UnsupportedTypeError reports a type descriptor with no known mapping.
type UnsupportedTypeError struct {
	// Type is the offending type name or descriptor text.
	Type string
	// Reason optionally narrows the failure, e.g. the supported type list
	// or a map key-type restriction.
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("type %s is not supported: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("type %s is not supported", e.Type)
}

// MalformedParameterError reports a parameter whose type descriptor is
// absent or empty.
type MalformedParameterError struct {
	Param string
}

func (e *MalformedParameterError) Error() string {
	return fmt.Sprintf("parameter type json is missing for parameter %s", e.Param)
}

// UnsupportedFunctionInfoError reports an input to the schema generator
// that is not a recognized function descriptor.
type UnsupportedFunctionInfoError struct {
	Got string
}

func (e *UnsupportedFunctionInfoError) Error() string {
	return fmt.Sprintf("unsupported function info type: %s", e.Got)
}
