// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"fmt"

	"github.com/google/uuid"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/geo"
	"skystore.io/skystore/pkg/schema"
)

// Validate checks a payload against its definition and produces the
// column-to-value map consumed by the SQL synthesizer. Field errors are
// accumulated, never short-circuited; the returned error is reserved for
// programmer-level contract violations (ErrSchema).
func Validate(def *schema.Definition, payload Payload) (Row, ValidationResult, error) {
	vals := make(Row)
	var fieldErrs []FieldError

	for _, f := range def.Fields {
		if f.Internal || f.ReadOnly {
			continue
		}
		raw, err := payload.FieldValue(f.Name)
		if err != nil {
			return nil, ValidationResult{}, ErrSchema.New("field %q of %q: %v", f.Name, def.Table, err)
		}

		_, isOpt := raw.(fieldvalue.Opt)
		if f.Mandatory && isOpt {
			return nil, ValidationResult{}, ErrSchema.New("mandatory field %q of %q arrived as Option", f.Name, def.Table)
		}
		if !f.Mandatory && !isOpt {
			return nil, ValidationResult{}, ErrSchema.New("optional field %q of %q arrived without Option", f.Name, def.Table)
		}
		val, present := fieldvalue.Unwrap(raw)
		if !present {
			continue
		}

		fieldErrs = append(fieldErrs, validateField(def, f, val, vals)...)
	}

	return vals, ValidationResult{Success: len(fieldErrs) == 0, Errors: fieldErrs}, nil
}

// validateField dispatches on the column type, appending the converted value
// to vals when the field passes.
func validateField(def *schema.Definition, f schema.Field, val fieldvalue.Value, vals Row) []FieldError {
	switch f.Type {
	case schema.UUID:
		id, err := uuid.Parse(val.AsString())
		if err != nil {
			return []FieldError{{Field: f.Name, Error: fmt.Sprintf("Could not convert %s to UUID: %v", val, err)}}
		}
		vals[f.Name] = fieldvalue.String(id.String())

	case schema.Timestamptz:
		ts, ok := val.(fieldvalue.Timestamp)
		if !ok {
			return []FieldError{{Field: f.Name, Error: fmt.Sprintf("Could not convert %s to timestamp", val)}}
		}
		if ts.AsTime().Unix() < 0 {
			return []FieldError{{Field: f.Name, Error: fmt.Sprintf("timestamp before epoch rejected: %s", ts)}}
		}
		vals[f.Name] = ts

	case schema.AnyEnum:
		name, ok := def.EnumString(f.Name, int32(val.AsI64()))
		if !ok {
			return []FieldError{{Field: f.Name, Error: fmt.Sprintf("Could not convert enum value %s for field %s", val, f.Name)}}
		}
		vals[f.Name] = fieldvalue.String(name)

	case schema.PointZ:
		pt, ok := val.(fieldvalue.PointZ)
		if !ok {
			return []FieldError{{Field: f.Name, Error: fmt.Sprintf("Could not convert %s to point", val)}}
		}
		if errs := validatePoint(f.Name, geo.PointZ(pt)); len(errs) > 0 {
			return errs
		}
		vals[f.Name] = pt

	case schema.LineStringZ:
		line, ok := val.(fieldvalue.LineStringZ)
		if !ok {
			return []FieldError{{Field: f.Name, Error: fmt.Sprintf("Could not convert %s to line string", val)}}
		}
		if errs := validateLine(f.Name, geo.LineStringZ(line)); len(errs) > 0 {
			return errs
		}
		vals[f.Name] = line

	case schema.PolygonZ:
		poly, ok := val.(fieldvalue.PolygonZ)
		if !ok {
			return []FieldError{{Field: f.Name, Error: fmt.Sprintf("Could not convert %s to polygon", val)}}
		}
		if errs := validatePolygon(f.Name, geo.PolygonZ(poly)); len(errs) > 0 {
			return errs
		}
		vals[f.Name] = poly

	default:
		// numerics, bool, text, bytes, arrays and json pass through
		vals[f.Name] = val
	}
	return nil
}

func validatePoint(field string, p geo.PointZ) []FieldError {
	var out []FieldError
	if p.X < -180 || p.X > 180 {
		out = append(out, FieldError{Field: field, Error: fmt.Sprintf("longitude %v out of range [-180, 180]", p.X)})
	}
	if p.Y < -90 || p.Y > 90 {
		out = append(out, FieldError{Field: field, Error: fmt.Sprintf("latitude %v out of range [-90, 90]", p.Y)})
	}
	return out
}

func validateLine(field string, l geo.LineStringZ) []FieldError {
	var out []FieldError
	if len(l.Points) < 2 {
		out = append(out, FieldError{Field: field, Error: fmt.Sprintf("line string must have at least 2 points, got %d", len(l.Points))})
	}
	for _, p := range l.Points {
		out = append(out, validatePoint(field, p)...)
	}
	return out
}

func validatePolygon(field string, poly geo.PolygonZ) []FieldError {
	var out []FieldError
	if len(poly.Rings) < 1 {
		return append(out, FieldError{Field: field, Error: "polygon must have at least 1 ring"})
	}
	for _, ring := range poly.Rings {
		if len(ring.Points) < 4 {
			out = append(out, FieldError{Field: field, Error: fmt.Sprintf("polygon ring must have at least 4 points, got %d", len(ring.Points))})
		}
		if !ring.Closed() {
			out = append(out, FieldError{Field: field, Error: "polygon ring must close on its first point"})
		}
		for _, p := range ring.Points {
			out = append(out, validatePoint(field, p)...)
		}
	}
	return out
}
