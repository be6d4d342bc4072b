/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package googletool converts toolkit tools into Gemini function
// declarations and dispatches function calls back to them.
package googletool
