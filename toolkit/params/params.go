/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package params

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"

	"github.com/fnbridge/fnbridge/schema"
)

// Coerce returns a copy of args with values aligned to the generated
// schema's field types. JSON decoding turns every number into float64;
// integer parameters are converted back to int64 so they bind as
// integral statement parameters. A fractional value bound to an integer
// parameter is an error. Arguments without a matching field pass
// through untouched.
func Coerce(generated *schema.GeneratedSchema, args map[string]any) (map[string]any, error) {
	if generated == nil || len(args) == 0 {
		return args, nil
	}
	coerced := make(map[string]any, len(args))
	maps.Copy(coerced, args)
	for _, field := range generated.Fields {
		if field.Schema == nil || field.Schema.Type != "integer" {
			continue
		}
		if _, ok := coerced[field.Name]; !ok {
			continue
		}
		n, err := Integer(coerced, field.Name)
		if err != nil {
			return nil, err
		}
		coerced[field.Name] = n
	}
	return coerced, nil
}

// Integer reads an integral argument, accepting the float64 values JSON
// decoding produces as long as they carry no fractional part.
func Integer(args map[string]any, name string) (int64, error) {
	value, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("parameter %q is required", name)
	}
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("parameter %q must be a whole number, got %v", name, v)
		}
		return int64(v), nil
	}
	return 0, fmt.Errorf("parameter %q must be an integer, got %T", name, value)
}

// ErrorJSON renders an error payload in the shape execution results
// use, for failures that happen before a tool runs.
func ErrorJSON(format string, args ...any) string {
	payload, _ := json.Marshal(map[string]string{
		"error": fmt.Sprintf(format, args...),
	})
	return string(payload)
}
