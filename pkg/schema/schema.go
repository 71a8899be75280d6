// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

// Package schema holds the per-entity resource definitions consulted by
// every layer of the engine: field types, nullability, key shape, defaults
// and index DDL. Definitions are built once at startup and never mutated.
package schema

import (
	"github.com/zeebo/errs"
)

// Error is the schema errs class.
var Error = errs.Class("schema")

// TypeTag enumerates the storable column types.
type TypeTag int

// Column type tags.
const (
	Bool TypeTag = iota
	Int2
	Int4
	Int8
	Float4
	Float8
	Text
	Bytea
	UUID
	Timestamptz
	AnyEnum
	PointZ
	PolygonZ
	LineStringZ
	Int8Array
	JSON
)

var typeNames = map[TypeTag]string{
	Bool:        "BOOL",
	Int2:        "INT2",
	Int4:        "INT4",
	Int8:        "INT8",
	Float4:      "FLOAT4",
	Float8:      "FLOAT8",
	Text:        "TEXT",
	Bytea:       "BYTEA",
	UUID:        "UUID",
	Timestamptz: "TIMESTAMPTZ",
	AnyEnum:     "ANYENUM",
	PointZ:      "POINT_Z",
	PolygonZ:    "POLYGON_Z",
	LineStringZ: "LINESTRING_Z",
	Int8Array:   "INT8_ARRAY",
	JSON:        "JSON",
}

func (t TypeTag) String() string { return typeNames[t] }

// Geometric reports whether the tag is one of the geometry kinds, which are
// inlined as WKT instead of bound as placeholders.
func (t TypeTag) Geometric() bool {
	return t == PointZ || t == PolygonZ || t == LineStringZ
}

// Field describes one column of a resource.
type Field struct {
	Name string
	Type TypeTag

	// Mandatory columns are NOT NULL and must be present (non-Option) at
	// the boundary.
	Mandatory bool
	// Internal columns never cross the wire; the server manages them
	// (created_at, updated_at, deleted_at).
	Internal bool
	// ReadOnly columns are exposed on read but excluded from insert/update
	// synthesis.
	ReadOnly bool
	// Default is a literal SQL fragment, e.g. "CURRENT_TIMESTAMP".
	Default string
}

// EnumDecoder translates a wire integer into the canonical uppercase string
// stored in the column. The second result is false for unknown integers.
type EnumDecoder func(v int32) (string, bool)

// Definition is the immutable metadata for one resource.
type Definition struct {
	// Table is the relation name.
	Table string
	// Keys holds the key column names, one for simple resources and two for
	// linked ones.
	Keys []string
	// Fields lists the non-key columns in registry order; every synthesized
	// statement iterates this order.
	Fields []Field
	// Indices holds extra DDL run after CREATE TABLE.
	Indices []string
	// Enums maps enum-typed columns to their decoders.
	Enums map[string]EnumDecoder

	byName map[string]int
}

// NewDefinition finalizes a definition literal, building the lookup index.
func NewDefinition(def Definition) *Definition {
	def.byName = make(map[string]int, len(def.Fields))
	for i, f := range def.Fields {
		def.byName[f.Name] = i
	}
	return &def
}

// HasField reports whether the column exists in the definition.
func (d *Definition) HasField(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// GetField returns the field definition for the named column.
func (d *Definition) GetField(name string) (Field, error) {
	i, ok := d.byName[name]
	if !ok {
		return Field{}, Error.New("no such field %q in %q", name, d.Table)
	}
	return d.Fields[i], nil
}

// KeyColumns returns the ordered key column names.
func (d *Definition) KeyColumns() []string { return d.Keys }

func (d *Definition) isKey(name string) bool {
	for _, k := range d.Keys {
		if k == name {
			return true
		}
	}
	return false
}

// EnumString resolves a wire integer for an enum column to its canonical
// string. The second result is false when the column is not an enum or the
// integer is out of range.
func (d *Definition) EnumString(column string, v int32) (string, bool) {
	dec, ok := d.Enums[column]
	if !ok {
		return "", false
	}
	return dec(v)
}

// SoftDelete reports whether the resource archives rows instead of deleting
// them, i.e. declares a deleted_at column.
func (d *Definition) SoftDelete() bool { return d.HasField("deleted_at") }

// Lifecycle is the canonical internal column set shared by most resources.
// Timestamps default on the database side and are never client-supplied.
func Lifecycle(softDelete bool) []Field {
	fields := []Field{
		{Name: "created_at", Type: Timestamptz, Internal: true, Default: "CURRENT_TIMESTAMP"},
		{Name: "updated_at", Type: Timestamptz, Internal: true, Default: "CURRENT_TIMESTAMP"},
	}
	if softDelete {
		fields = append(fields, Field{Name: "deleted_at", Type: Timestamptz, Internal: true})
	}
	return fields
}
