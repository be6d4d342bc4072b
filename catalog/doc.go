/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package catalog defines the metadata model for governed catalog functions.
//
// A catalog function is identified by a three-part dotted name
// (catalog.schema.function) and carries typed parameter metadata: each
// parameter has a type name, a human-readable SQL type text, a JSON-encoded
// type tree, an optional comment, and an optional default literal.
//
// This package contains pure type definitions plus identity parsing; type
// resolution lives in catalog/typemap and runtime value checks in
// catalog/validate.
package catalog
