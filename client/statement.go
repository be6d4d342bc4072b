/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fnbridge/fnbridge/catalog"
	"github.com/fnbridge/fnbridge/catalog/validate"
)

// parameterizedStatement pairs a statement's text with its bound
// parameters.
type parameterizedStatement struct {
	statement  string
	parameters []StatementParameter
}

// buildStatement renders the SELECT that invokes a function with the given
// arguments. Scalar functions go through IDENTIFIER binding; table
// functions are interpolated directly since IDENTIFIER does not resolve in
// the FROM clause. Arguments are passed positionally until the first
// parameter that falls back to its default, after which named `name =>`
// syntax takes over.
func buildStatement(info *catalog.FunctionInfo, parameters map[string]any) (*parameterizedStatement, error) {
	var parts []string
	var output []StatementParameter

	if info.IsScalar() {
		parts = append(parts, "SELECT IDENTIFIER(:function_name)(")
		output = append(output, StatementParameter{Name: "function_name", Value: info.FullName})
	} else {
		parts = append(parts, fmt.Sprintf("SELECT * FROM %s(", info.FullName))
	}

	if len(parameters) > 0 {
		var args []string
		useNamedArgs := false
		for _, param := range info.InputParams {
			value, ok := parameters[param.Name]
			if !ok {
				// Skipped parameters fall back to their defaults, which
				// forces named binding for everything that follows.
				useNamedArgs = true
				continue
			}
			var clause strings.Builder
			if useNamedArgs {
				fmt.Fprintf(&clause, "%s => ", param.Name)
			}
			switch {
			case param.TypeName == catalog.TypeArray ||
				param.TypeName == catalog.TypeMap ||
				param.TypeName == catalog.TypeStruct:
				// from_json restores complex values on the server side.
				encoded, err := json.Marshal(value)
				if err != nil {
					return nil, fmt.Errorf("marshaling parameter %q: %w", param.Name, err)
				}
				fmt.Fprintf(&clause, "from_json(:%s, :%s_type)", param.Name, param.Name)
				output = append(output,
					StatementParameter{Name: param.Name, Value: string(encoded)},
					StatementParameter{Name: param.Name + "_type", Value: param.TypeText},
				)
			case param.TypeName == catalog.TypeBinary:
				fmt.Fprintf(&clause, "unbase64(:%s)", param.Name)
				output = append(output, StatementParameter{Name: param.Name, Value: value})
			case catalog.IsTimeType(param.TypeName):
				text := timeText(value)
				fmt.Fprintf(&clause, ":%s", param.Name)
				output = append(output, StatementParameter{Name: param.Name, Value: text, Type: param.TypeText})
			case param.TypeName == catalog.TypeInterval:
				text, ok := value.(string)
				if !ok {
					d, isDuration := value.(time.Duration)
					if !isDuration {
						return nil, fmt.Errorf("parameter %q must be a string or time.Duration, got %T", param.Name, value)
					}
					text = validate.DurationToIntervalString(d)
				}
				fmt.Fprintf(&clause, ":%s", param.Name)
				output = append(output, StatementParameter{Name: param.Name, Value: text, Type: param.TypeText})
			default:
				fmt.Fprintf(&clause, ":%s", param.Name)
				output = append(output, StatementParameter{Name: param.Name, Value: value, Type: param.TypeText})
			}
			args = append(args, clause.String())
		}
		parts = append(parts, strings.Join(args, ","))
	}
	parts = append(parts, ")")

	return &parameterizedStatement{
		statement:  strings.Join(parts, ""),
		parameters: output,
	}, nil
}

// timeText renders a date or timestamp argument as its ISO string form;
// strings pass through untouched.
func timeText(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	if t, ok := value.(time.Time); ok {
		return t.Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%v", value)
}
