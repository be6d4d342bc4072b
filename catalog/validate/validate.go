/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package validate performs runtime shape checks on caller-supplied
// argument values against a parameter's declared catalog type.
package validate

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/fnbridge/fnbridge/catalog"
)

// isoLayouts are the accepted ISO-8601 renderings for date/timestamp
// string values, tried in order.
var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Value validates a supplied argument value against the declared type name
// and type text. It returns nil when the value passes, and a descriptive
// error naming the offending input otherwise.
//
// Only shape checks that can be decided locally are performed here:
// ISO-format checks for date/timestamp strings, envelope checks for
// interval literals, and strict base64 decoding for binary strings. Deeper
// grammar validation is deferred to the execution engine.
func Value(value any, typeName catalog.TypeName, typeText string) error {
	switch {
	case catalog.IsTimeType(typeName):
		if s, ok := value.(string); ok {
			if !isISODatetime(s) {
				return fmt.Errorf("invalid datetime string: %s, expecting ISO format", s)
			}
		}

	case typeName == catalog.TypeInterval:
		// Only day-to-second granularity is supported, no year-month
		// intervals.
		if _, ok := value.(time.Duration); ok {
			if typeText != "interval day to second" {
				return fmt.Errorf("invalid interval type text: %s, expecting 'interval day to second', a duration can only be used for a day-time interval", typeText)
			}
		} else if s, ok := value.(string); ok {
			if !strings.HasPrefix(s, "INTERVAL") || !strings.HasSuffix(s, "DAY TO SECOND") {
				return fmt.Errorf("invalid interval string: %s, expecting format `INTERVAL '[+|-] d[...] [h]h:[m]m:[s]s.ms[ms][ms][us][us][us]' DAY TO SECOND`", s)
			}
		}

	case typeName == catalog.TypeBinary:
		if s, ok := value.(string); ok {
			if !IsBase64(s) {
				return fmt.Errorf("the string input for column type BINARY must be base64 encoded, invalid input: %s", s)
			}
		}
	}
	return nil
}

// IsBase64 reports whether s decodes as strict standard base64.
func IsBase64(s string) bool {
	_, err := base64.StdEncoding.Strict().DecodeString(s)
	return err == nil
}

func isISODatetime(s string) bool {
	for _, layout := range isoLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// DurationToIntervalString renders a duration as a day-to-second interval
// literal, e.g. INTERVAL '1 2:3:4.500000' DAY TO SECOND. Negative durations
// are normalized so only the day component carries the sign, keeping the
// time-of-day components non-negative.
func DurationToIntervalString(d time.Duration) string {
	days := int64(d / (24 * time.Hour))
	remainder := d % (24 * time.Hour)
	if remainder < 0 {
		days--
		remainder += 24 * time.Hour
	}
	hours := int64(remainder / time.Hour)
	remainder %= time.Hour
	minutes := int64(remainder / time.Minute)
	remainder %= time.Minute
	seconds := int64(remainder / time.Second)
	micros := int64((remainder % time.Second) / time.Microsecond)
	return fmt.Sprintf("INTERVAL '%d %d:%d:%d.%d' DAY TO SECOND", days, hours, minutes, seconds, micros)
}
