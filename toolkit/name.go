/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package toolkit

import (
	"context"

	"github.com/chainguard-dev/clog"

	"github.com/fnbridge/fnbridge/catalog"
)

// maxToolNameLength is the provider constraint on tool names: a-z, A-Z,
// 0-9, underscores and dashes, at most 64 characters.
const maxToolNameLength = 64

// ToolName derives a provider-safe tool name from a fully qualified
// function name by joining the segments with double underscores. Names
// longer than the provider limit keep their trailing characters, since the
// function segment is the discriminating part.
func ToolName(ctx context.Context, functionName string) (string, error) {
	parsed, err := catalog.ParseFunctionName(functionName)
	if err != nil {
		return "", err
	}
	name := parsed.Catalog + "__" + parsed.Schema + "__" + parsed.Function
	if len(name) > maxToolNameLength {
		truncated := name[len(name)-maxToolNameLength:]
		clog.FromContext(ctx).With("tool_name", name).
			With("truncated", truncated).
			Warnf("Function name %s is too long, truncating to %d characters", name, maxToolNameLength)
		return truncated, nil
	}
	return name, nil
}
