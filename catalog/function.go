/*
Copyright 2025 The fnbridge Authors
SPDX-License-Identifier: Apache-2.0
*/

package catalog

// TypeName is a catalog column type name.
type TypeName string

// Catalog column type names.
const (
	TypeArray           TypeName = "ARRAY"
	TypeBinary          TypeName = "BINARY"
	TypeBoolean         TypeName = "BOOLEAN"
	TypeByte            TypeName = "BYTE"
	TypeChar            TypeName = "CHAR"
	TypeDate            TypeName = "DATE"
	TypeDecimal         TypeName = "DECIMAL"
	TypeDouble          TypeName = "DOUBLE"
	TypeFloat           TypeName = "FLOAT"
	TypeInt             TypeName = "INT"
	TypeInterval        TypeName = "INTERVAL"
	TypeLong            TypeName = "LONG"
	TypeMap             TypeName = "MAP"
	TypeNull            TypeName = "NULL"
	TypeShort           TypeName = "SHORT"
	TypeString          TypeName = "STRING"
	TypeStruct          TypeName = "STRUCT"
	TypeTableType       TypeName = "TABLE_TYPE"
	TypeTimestamp       TypeName = "TIMESTAMP"
	TypeTimestampNTZ    TypeName = "TIMESTAMP_NTZ"
	TypeUserDefinedType TypeName = "USER_DEFINED_TYPE"
)

// IsTimeType reports whether the type name is one of the date/timestamp
// kinds whose string values must be ISO-8601 formatted.
func IsTimeType(t TypeName) bool {
	switch t {
	case TypeDate, TypeTimestamp, TypeTimestampNTZ:
		return true
	}
	return false
}

// ParameterInfo describes one declared parameter of a catalog function.
// Immutable once fetched; its lifetime is bounded to the metadata response
// that produced it.
type ParameterInfo struct {
	Name string `json:"name"`
	// TypeName is the scalar or compound kind of the parameter.
	TypeName TypeName `json:"type_name"`
	// TypeText is the human-readable SQL type, e.g. "interval day to second".
	TypeText string `json:"type_text"`
	// TypeJSON is the full nested type description, JSON-encoded.
	TypeJSON string `json:"type_json,omitempty"`
	Comment  string `json:"comment,omitempty"`
	// ParameterDefault is the JSON-encoded default literal, if any.
	ParameterDefault string `json:"parameter_default,omitempty"`
	// Position is the zero-based declaration position.
	Position int `json:"position"`
}

// FunctionInfo is the metadata of one catalog function as served by the
// catalog service.
type FunctionInfo struct {
	CatalogName string `json:"catalog_name"`
	SchemaName  string `json:"schema_name"`
	Name        string `json:"name"`
	// FullName is the dotted catalog.schema.function identity.
	FullName string `json:"full_name"`
	Comment  string `json:"comment,omitempty"`
	// DataType is the return type kind; TABLE_TYPE marks tabular functions.
	DataType     TypeName `json:"data_type"`
	FullDataType string   `json:"full_data_type,omitempty"`
	// RoutineBody and RoutineDefinition carry the stored implementation.
	RoutineBody       string          `json:"routine_body,omitempty"`
	RoutineDefinition string          `json:"routine_definition,omitempty"`
	InputParams       []ParameterInfo `json:"input_params,omitempty"`
}

// IsScalar reports whether the function returns a single value rather than
// a table.
func (f *FunctionInfo) IsScalar() bool {
	return f.DataType != TypeTableType
}
