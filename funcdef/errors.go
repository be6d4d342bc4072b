/*
Copyright 2026 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package funcdef

import "fmt"

// MissingTypeHintError reports a parameter whose type cannot be expressed
// as a single catalog type: untyped (any) parameters and variadic
// parameters both land here.
type MissingTypeHintError struct {
	Param string
}

func (e *MissingTypeHintError) Error() string {
	return fmt.Sprintf("missing type hint for parameter: %s", e.Param)
}

// MissingReturnTypeError reports an absent or unsupported return type.
type MissingReturnTypeError struct {
	Function string
	// Type is the literal bad type, empty when no return type was
	// declared at all.
	Type string
}

func (e *MissingReturnTypeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("return type for function '%s' is not defined, please provide a return type", e.Function)
	}
	return fmt.Sprintf("error in return type: %s is not supported", e.Type)
}

// ReservedParameterNameError reports a parameter named with one of the
// reserved self-reference names.
type ReservedParameterNameError struct {
	Param string
}

func (e *ReservedParameterNameError) Error() string {
	return fmt.Sprintf("parameter '%s' is not allowed in the function signature", e.Param)
}
