/*
Copyright 2026 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package funcdef compiles native callables into catalog function
// definitions.
//
// Compile runs in the opposite direction from schema generation: given a Go
// function value plus a declarative Options block (parameter names, doc
// comment, body source), it reflects over the function's signature, maps
// each Go type onto the catalog type vocabulary, folds the doc comment's
// Args section into per-parameter comments, and renders a
// CREATE OR REPLACE FUNCTION statement suitable for submission to the
// catalog service.
//
// Go cannot recover a function's source text at runtime, so the executable
// body is supplied explicitly: either verbatim through Options.Body, or as
// a source snippet through Options.Source, from which ExtractBody strips
// the signature and dedents the statements while keeping the relative
// indentation of raw-string interiors intact.
package funcdef
