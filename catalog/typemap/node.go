/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package typemap

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fnbridge/fnbridge/catalog"
)

// Node is one node of a resolved catalog type tree. It is a closed sum:
// Scalar, Array, Map, or Struct.
type Node interface {
	isNode()
}

// Scalar is a leaf type such as STRING or DECIMAL(10,2).
type Scalar string

// Array is an ARRAY<element> type.
type Array struct {
	Element      Node
	ContainsNull bool
}

// Map is a MAP<STRING, value> type. Map keys are always string-typed;
// Resolve rejects any other key type.
type Map struct {
	Value             Node
	ValueContainsNull bool
}

// StructField is one named field of a Struct.
type StructField struct {
	Name     string
	Type     Node
	Nullable bool
	Comment  string
}

// Struct is a STRUCT<...> type. It keeps the canonical (sorted-key,
// compact) JSON form of its descriptor so that identical shapes hash to
// identical generated names.
type Struct struct {
	Fields    []StructField
	canonical string
}

func (Scalar) isNode() {}
func (Array) isNode()  {}
func (Map) isNode()    {}
func (Struct) isNode() {}

// Name returns the content-derived stable identifier for the struct shape,
// Struct_<8 hex chars of the md5 of the canonical descriptor>. The same
// shape always yields the same name, so generated schemas are safe to
// cache and reuse.
func (s Struct) Name() string {
	sum := md5.Sum([]byte(s.canonical))
	return "Struct_" + hex.EncodeToString(sum[:])[:8]
}

type rawField struct {
	Name     string          `json:"name"`
	Type     json.RawMessage `json:"type"`
	Nullable bool            `json:"nullable"`
	Metadata struct {
		Comment string `json:"comment"`
	} `json:"metadata"`
}

type rawCompound struct {
	Type              string          `json:"type"`
	ElementType       json.RawMessage `json:"elementType"`
	ContainsNull      bool            `json:"containsNull"`
	KeyType           json.RawMessage `json:"keyType"`
	ValueType         json.RawMessage `json:"valueType"`
	ValueContainsNull bool            `json:"valueContainsNull"`
	Fields            []rawField      `json:"fields"`
}

// Resolve parses a catalog type descriptor into a Node tree. The
// descriptor is either a JSON string naming a scalar type or a JSON object
// with a "type" discriminator of "array", "map", or "struct".
func Resolve(raw json.RawMessage) (Node, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, &catalog.UnsupportedTypeError{Type: "<empty>"}
	}

	if trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return nil, fmt.Errorf("decoding scalar type name: %w", err)
		}
		return Scalar(strings.ToUpper(name)), nil
	}

	if trimmed[0] != '{' {
		return nil, &catalog.UnsupportedTypeError{Type: trimmed}
	}

	var compound rawCompound
	if err := json.Unmarshal(raw, &compound); err != nil {
		return nil, fmt.Errorf("decoding compound type descriptor: %w", err)
	}

	switch compound.Type {
	case "array":
		element, err := Resolve(compound.ElementType)
		if err != nil {
			return nil, err
		}
		return Array{Element: element, ContainsNull: compound.ContainsNull}, nil

	case "map":
		var keyType string
		if err := json.Unmarshal(compound.KeyType, &keyType); err != nil || keyType != "string" {
			key := strings.TrimSpace(string(compound.KeyType))
			return nil, &catalog.UnsupportedTypeError{
				Type:   key,
				Reason: "only STRING key type is supported for MAP",
			}
		}
		value, err := Resolve(compound.ValueType)
		if err != nil {
			return nil, err
		}
		return Map{Value: value, ValueContainsNull: compound.ValueContainsNull}, nil

	case "struct":
		fields := make([]StructField, 0, len(compound.Fields))
		for _, f := range compound.Fields {
			fieldType, err := Resolve(f.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, StructField{
				Name:     f.Name,
				Type:     fieldType,
				Nullable: f.Nullable,
				Comment:  f.Metadata.Comment,
			})
		}
		canonical, err := canonicalJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("canonicalizing struct descriptor: %w", err)
		}
		return Struct{Fields: fields, canonical: canonical}, nil

	default:
		return nil, &catalog.UnsupportedTypeError{Type: compound.Type}
	}
}

// canonicalJSON re-encodes a JSON document with sorted object keys and no
// insignificant whitespace. encoding/json marshals map keys in sorted
// order, which gives us the canonical form.
func canonicalJSON(raw json.RawMessage) (string, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
