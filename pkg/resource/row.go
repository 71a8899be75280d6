// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"database/sql"
	"slices"
	"time"

	"github.com/lib/pq"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/geo"
	"skystore.io/skystore/pkg/schema"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRow reads one result row shaped by SelectColumns back into the
// generic Row form. NULL columns are omitted from the map.
func scanRow(def *schema.Definition, sc rowScanner) (Row, error) {
	type colMeta struct {
		field schema.Field
	}
	var metas []colMeta
	var dests []any

	for _, key := range def.Keys {
		metas = append(metas, colMeta{field: schema.Field{Name: key, Type: schema.UUID, Mandatory: true}})
		dests = append(dests, new(sql.NullString))
	}
	for _, f := range def.Fields {
		if slices.Contains(def.Keys, f.Name) {
			continue
		}
		metas = append(metas, colMeta{field: f})
		dests = append(dests, scanDest(f))
	}

	if err := sc.Scan(dests...); err != nil {
		return nil, err
	}

	row := make(Row, len(metas))
	for i, meta := range metas {
		val, ok, err := scannedValue(meta.field, dests[i])
		if err != nil {
			return nil, err
		}
		if ok {
			row[meta.field.Name] = val
		}
	}
	return row, nil
}

func scanDest(f schema.Field) any {
	switch f.Type {
	case schema.Bool:
		return new(sql.NullBool)
	case schema.Int2, schema.Int4, schema.Int8:
		return new(sql.NullInt64)
	case schema.Float4, schema.Float8:
		return new(sql.NullFloat64)
	case schema.Timestamptz:
		return new(sql.NullTime)
	case schema.Bytea, schema.JSON:
		return new([]byte)
	case schema.Int8Array:
		return new(pq.Int64Array)
	default:
		// text, uuid, enums and ST_AsText geometry all scan as strings
		return new(sql.NullString)
	}
}

func scannedValue(f schema.Field, dest any) (fieldvalue.Value, bool, error) {
	switch d := dest.(type) {
	case *sql.NullBool:
		if !d.Valid {
			return nil, false, nil
		}
		return fieldvalue.Bool(d.Bool), true, nil
	case *sql.NullInt64:
		if !d.Valid {
			return nil, false, nil
		}
		return fieldvalue.I64(d.Int64), true, nil
	case *sql.NullFloat64:
		if !d.Valid {
			return nil, false, nil
		}
		return fieldvalue.F64(d.Float64), true, nil
	case *sql.NullTime:
		if !d.Valid {
			return nil, false, nil
		}
		return fieldvalue.Timestamp(d.Time.UTC()), true, nil
	case *[]byte:
		if *d == nil {
			return nil, false, nil
		}
		return fieldvalue.Bytes(*d), true, nil
	case *pq.Int64Array:
		if *d == nil {
			return nil, false, nil
		}
		return fieldvalue.I64List(*d), true, nil
	case *sql.NullString:
		if !d.Valid {
			return nil, false, nil
		}
		if f.Type.Geometric() {
			shape, err := geo.ParseWKT(d.String)
			if err != nil {
				return nil, false, ErrDatabase.New("bad geometry in %q: %v", f.Name, err)
			}
			return shapeValue(shape), true, nil
		}
		return fieldvalue.String(d.String), true, nil
	}
	return nil, false, ErrSchema.New("unhandled scan destination for %q", f.Name)
}

func shapeValue(s geo.Shape) fieldvalue.Value {
	switch v := s.(type) {
	case geo.PointZ:
		return fieldvalue.PointZ(v)
	case geo.LineStringZ:
		return fieldvalue.LineStringZ(v)
	case geo.PolygonZ:
		return fieldvalue.PolygonZ(v)
	}
	return nil
}

// now returns the in-memory stores' clock; split out so tests read naturally.
func now() fieldvalue.Timestamp {
	return fieldvalue.Timestamp(time.Now().UTC())
}
