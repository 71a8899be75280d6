// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/errs"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/geo"
	"skystore.io/skystore/pkg/schema"
)

// mapPayload lets a test hand arbitrary values to the validator.
type mapPayload map[string]fieldvalue.Value

func (p mapPayload) FieldValue(name string) (fieldvalue.Value, error) {
	v, ok := p[name]
	if !ok {
		return nil, errs.New("no field %q", name)
	}
	return v, nil
}

var validateDef = schema.NewDefinition(schema.Definition{
	Table: "craft",
	Keys:  []string{"craft_id"},
	Fields: append([]schema.Field{
		{Name: "owner_id", Type: schema.UUID, Mandatory: true},
		{Name: "status", Type: schema.AnyEnum, Mandatory: true},
		{Name: "seen_at", Type: schema.Timestamptz},
		{Name: "footprint", Type: schema.PolygonZ},
		{Name: "spot", Type: schema.PointZ},
		{Name: "track", Type: schema.LineStringZ},
	}, schema.Lifecycle(true)...),
	Enums: map[string]schema.EnumDecoder{
		"status": func(v int32) (string, bool) {
			if v == 0 {
				return "ACTIVE", true
			}
			return "", false
		},
	},
})

func validPayload() mapPayload {
	return mapPayload{
		"owner_id":  fieldvalue.String("6edbb9bb-84d2-4d24-b57f-41b0ef7f0b4e"),
		"status":    fieldvalue.I32(0),
		"seen_at":   fieldvalue.None(),
		"footprint": fieldvalue.None(),
		"spot":      fieldvalue.None(),
		"track":     fieldvalue.None(),
	}
}

func TestValidateSuccess(t *testing.T) {
	p := validPayload()
	vals, result, err := Validate(validateDef, p)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Empty(t, result.Errors)

	// enums store the canonical string
	require.Equal(t, fieldvalue.String("ACTIVE"), vals["status"])
	// absent optionals leave no column behind
	require.NotContains(t, vals, "seen_at")
	// internal lifecycle columns never come from the payload
	require.NotContains(t, vals, "created_at")
}

func TestValidateAccumulatesErrors(t *testing.T) {
	p := validPayload()
	p["owner_id"] = fieldvalue.String("not-a-uuid")
	p["status"] = fieldvalue.I32(99)

	_, result, err := Validate(validateDef, p)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Len(t, result.Errors, 2)
	require.Equal(t, "owner_id", result.Errors[0].Field)
	require.Contains(t, result.Errors[0].Error, "Could not convert")
	require.Equal(t, "status", result.Errors[1].Field)
}

func TestValidateOptionShapeMismatch(t *testing.T) {
	p := validPayload()
	// mandatory arriving as Option is a programmer error, not a field error
	p["owner_id"] = fieldvalue.Some(fieldvalue.String("6edbb9bb-84d2-4d24-b57f-41b0ef7f0b4e"))
	_, _, err := Validate(validateDef, p)
	require.True(t, ErrSchema.Has(err))

	p = validPayload()
	// optional arriving bare is the same
	p["seen_at"] = fieldvalue.Timestamp(time.Now())
	_, _, err = Validate(validateDef, p)
	require.True(t, ErrSchema.Has(err))
}

func TestValidateTimestampBeforeEpoch(t *testing.T) {
	p := validPayload()
	p["seen_at"] = fieldvalue.Some(fieldvalue.Timestamp(time.Date(1969, 1, 1, 0, 0, 0, 0, time.UTC)))
	_, result, err := Validate(validateDef, p)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "seen_at", result.Errors[0].Field)
}

func TestValidatePointRange(t *testing.T) {
	p := validPayload()
	p["spot"] = fieldvalue.Some(fieldvalue.PointZ(geo.PointZ{X: 200, Y: -95, Z: 0}))
	_, result, err := Validate(validateDef, p)
	require.NoError(t, err)
	require.False(t, result.Success)
	// longitude and latitude fail separately
	require.Len(t, result.Errors, 2)
}

func TestValidatePolygonRing(t *testing.T) {
	// a two-point ring is both too short and unclosed
	p := validPayload()
	p["footprint"] = fieldvalue.Some(fieldvalue.PolygonZ(geo.PolygonZ{Rings: []geo.LineStringZ{
		{Points: []geo.PointZ{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}}},
	}}))
	_, result, err := Validate(validateDef, p)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Len(t, result.Errors, 2)

	// no rings at all is a single error
	p["footprint"] = fieldvalue.Some(fieldvalue.PolygonZ(geo.PolygonZ{}))
	_, result, err = Validate(validateDef, p)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
}

func TestValidateLineTooShort(t *testing.T) {
	p := validPayload()
	p["track"] = fieldvalue.Some(fieldvalue.LineStringZ(geo.LineStringZ{
		Points: []geo.PointZ{{X: 0, Y: 0, Z: 0}},
	}))
	_, result, err := Validate(validateDef, p)
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Contains(t, result.Errors[0].Error, "at least 2 points")
}
