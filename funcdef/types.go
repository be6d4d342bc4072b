/*
Copyright 2026 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package funcdef

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

// catalogTypeFor maps a Go type onto catalog type text. Containers recurse:
// []map[string]int becomes ARRAY<MAP<STRING, INTEGER>>.
func catalogTypeFor(t reflect.Type) (string, error) {
	switch t {
	case durationType:
		return "INTERVAL DAY TO SECOND", nil
	case timeType:
		return "TIMESTAMP", nil
	}

	switch t.Kind() {
	case reflect.String:
		return "STRING", nil
	case reflect.Bool:
		return "BOOLEAN", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return "INTEGER", nil
	case reflect.Int64, reflect.Uint, reflect.Uint64:
		return "LONG", nil
	case reflect.Float32:
		return "FLOAT", nil
	case reflect.Float64:
		return "DOUBLE", nil

	case reflect.Pointer:
		// Pointers mark nullability, which the catalog tracks on the
		// parameter, not in the type text.
		return catalogTypeFor(t.Elem())

	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return "BINARY", nil
		}
		if isUntyped(t.Elem()) {
			return "", fmt.Errorf("type %s is not supported, please specify the element type, e.g. []string rather than []any", t)
		}
		element, err := catalogTypeFor(t.Elem())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("ARRAY<%s>", element), nil

	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return "", fmt.Errorf("type %s is not supported, map keys must be strings", t)
		}
		if isUntyped(t.Elem()) {
			return "", fmt.Errorf("type %s is not supported, please specify the value type, e.g. map[string]int rather than map[string]any", t)
		}
		value, err := catalogTypeFor(t.Elem())
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("MAP<STRING, %s>", value), nil

	case reflect.Struct:
		fields := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fieldType, err := catalogTypeFor(field.Type)
			if err != nil {
				return "", err
			}
			fields = append(fields, fmt.Sprintf("%s: %s", fieldName(field), fieldType))
		}
		return fmt.Sprintf("STRUCT<%s>", strings.Join(fields, ", ")), nil

	default:
		return "", fmt.Errorf("type %s is not supported", t)
	}
}

// isUntyped reports whether t is the empty interface.
func isUntyped(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() == 0
}

// fieldName prefers the json tag name over the Go field name.
func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return field.Name
	}
	return tag
}
