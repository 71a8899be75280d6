// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/geo"
	"skystore.io/skystore/pkg/schema"
)

// Statement is a parameterized SQL statement ready for execution.
type Statement struct {
	SQL  string
	Args []any
}

// InsertStatement synthesizes the INSERT for a validated column map,
// iterating fields in registry order. Geometry columns are inlined as
// ST_GeomFromText literals rather than bound. Simple resources get a
// RETURNING clause for their server-generated key; linked resources supply
// key columns through the map itself.
func InsertStatement(def *schema.Definition, vals Row) (Statement, error) {
	var cols, params []string
	var args []any

	next := 1
	for _, f := range def.Fields {
		val, ok := vals[f.Name]
		if !ok {
			continue
		}
		cols = append(cols, quote(f.Name))
		if f.Type.Geometric() {
			lit, err := geomLiteral(val)
			if err != nil {
				return Statement{}, err
			}
			params = append(params, lit)
			continue
		}
		arg, err := sqlArg(f, val)
		if err != nil {
			return Statement{}, err
		}
		params = append(params, "$"+strconv.Itoa(next))
		args = append(args, arg)
		next++
	}
	if len(cols) == 0 {
		return Statement{}, ErrMalformed.New("insert into %q with no columns", def.Table)
	}

	sql := `INSERT INTO ` + quote(def.Table) +
		` (` + strings.Join(cols, ", ") + `) VALUES (` + strings.Join(params, ", ") + `)`
	if len(def.Keys) == 1 {
		sql += ` RETURNING ` + quote(def.Keys[0])
	}
	return Statement{SQL: sql, Args: args}, nil
}

// UpdateStatement synthesizes the UPDATE for a validated column map,
// restricted to the mask when one is present. Key columns are never part of
// the SET list; keyArgs supplies the WHERE values in key-column order.
func UpdateStatement(def *schema.Definition, vals Row, mask []string, keyArgs []any) (Statement, error) {
	masked := NormalizeMask(mask)

	var sets []string
	var args []any
	next := 1
	for _, f := range def.Fields {
		if slices.Contains(def.Keys, f.Name) {
			continue
		}
		if masked != nil && !slices.Contains(masked, f.Name) {
			continue
		}
		val, ok := vals[f.Name]
		if !ok {
			continue
		}
		if f.Type.Geometric() {
			lit, err := geomLiteral(val)
			if err != nil {
				return Statement{}, err
			}
			sets = append(sets, quote(f.Name)+" = "+lit)
			continue
		}
		arg, err := sqlArg(f, val)
		if err != nil {
			return Statement{}, err
		}
		sets = append(sets, quote(f.Name)+" = $"+strconv.Itoa(next))
		args = append(args, arg)
		next++
	}
	if len(sets) == 0 {
		return Statement{}, ErrMalformed.New("update of %q with no columns", def.Table)
	}

	// updated_at refreshes on every update
	if def.HasField("updated_at") {
		sets = append(sets, quote("updated_at")+" = CURRENT_TIMESTAMP")
	}

	var wheres []string
	for _, key := range def.Keys {
		wheres = append(wheres, quote(key)+" = $"+strconv.Itoa(next))
		next++
	}
	args = append(args, keyArgs...)

	sql := `UPDATE ` + quote(def.Table) + ` SET ` + strings.Join(sets, ", ") +
		` WHERE ` + strings.Join(wheres, " AND ")
	return Statement{SQL: sql, Args: args}, nil
}

// NormalizeMask strips dotted mask paths to their leaf segment. A nil mask
// stays nil, meaning "every supplied column".
func NormalizeMask(mask []string) []string {
	if mask == nil {
		return nil
	}
	out := make([]string, 0, len(mask))
	for _, path := range mask {
		if i := strings.LastIndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		out = append(out, path)
	}
	return out
}

// SelectColumns renders the read column list for a definition: key columns
// first, then fields in registry order, geometry rendered through ST_AsText
// so rows rehydrate via WKT.
func SelectColumns(def *schema.Definition) string {
	cols := make([]string, 0, len(def.Keys)+len(def.Fields))
	for _, key := range def.Keys {
		cols = append(cols, quote(key))
	}
	for _, f := range def.Fields {
		if slices.Contains(def.Keys, f.Name) {
			continue
		}
		if f.Type.Geometric() {
			cols = append(cols, "ST_AsText("+quote(f.Name)+") AS "+quote(f.Name))
			continue
		}
		cols = append(cols, quote(f.Name))
	}
	return strings.Join(cols, ", ")
}

func quote(ident string) string { return `"` + ident + `"` }

func geomLiteral(val fieldvalue.Value) (string, error) {
	var shape geo.Shape
	switch v := val.(type) {
	case fieldvalue.PointZ:
		shape = geo.PointZ(v)
	case fieldvalue.LineStringZ:
		shape = geo.LineStringZ(v)
	case fieldvalue.PolygonZ:
		shape = geo.PolygonZ(v)
	default:
		return "", ErrSchema.New("cannot inline %s as geometry", val.Kind())
	}
	return geo.GeomFromText(shape), nil
}

// sqlArg converts a validated field value into a driver argument.
func sqlArg(f schema.Field, val fieldvalue.Value) (any, error) {
	switch f.Type {
	case schema.Bool:
		return val.AsBool(), nil
	case schema.Int2, schema.Int4, schema.Int8:
		return val.AsI64(), nil
	case schema.Float4, schema.Float8:
		return val.AsF64(), nil
	case schema.Text, schema.UUID, schema.AnyEnum:
		return val.AsString(), nil
	case schema.Bytea:
		b, ok := val.(fieldvalue.Bytes)
		if !ok {
			return nil, ErrSchema.New("expected bytes for %q, got %s", f.Name, val.Kind())
		}
		return []byte(b), nil
	case schema.Timestamptz:
		return val.AsTime().UTC(), nil
	case schema.Int8Array:
		list, ok := val.(fieldvalue.I64List)
		if !ok {
			return nil, ErrSchema.New("expected int8 array for %q, got %s", f.Name, val.Kind())
		}
		return pq.Array([]int64(list)), nil
	case schema.JSON:
		// arrays destined for a JSON column are stored as JSON
		switch v := val.(type) {
		case fieldvalue.Bytes:
			return []byte(v), nil
		case fieldvalue.I64List:
			return json.Marshal([]int64(v))
		case fieldvalue.String:
			return []byte(v), nil
		}
		return nil, ErrSchema.New("expected json payload for %q, got %s", f.Name, val.Kind())
	}
	return nil, ErrSchema.New("no argument form for %q (%s)", f.Name, f.Type)
}

// formatTimestamp renders a timestamp the way statements and debug output
// expect: RFC3339 in UTC.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
