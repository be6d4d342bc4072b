/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package claudetool converts toolkit tools into Claude tool definitions
// and dispatches tool use blocks back to them.
package claudetool
