// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"time"

	"github.com/zeebo/errs"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/geo"
	"skystore.io/skystore/pkg/schema"
)

// robot is the fixture resource shared by the engine tests: two mandatory
// columns, an optional text column, an optional timestamp and an optional
// point, soft-deleting.
type robot struct {
	Name     string
	Speed    int64
	Notes    *string
	Born     *time.Time
	Location *geo.PointZ
}

var robotDef = schema.NewDefinition(schema.Definition{
	Table: "robot",
	Keys:  []string{"robot_id"},
	Fields: append([]schema.Field{
		{Name: "name", Type: schema.Text, Mandatory: true},
		{Name: "speed", Type: schema.Int8, Mandatory: true},
		{Name: "notes", Type: schema.Text},
		{Name: "born", Type: schema.Timestamptz},
		{Name: "location", Type: schema.PointZ},
	}, schema.Lifecycle(true)...),
})

// probe is robot without soft delete, for the hard-delete paths.
var probeDef = schema.NewDefinition(schema.Definition{
	Table: "probe",
	Keys:  []string{"probe_id"},
	Fields: append([]schema.Field{
		{Name: "name", Type: schema.Text, Mandatory: true},
		{Name: "speed", Type: schema.Int8, Mandatory: true},
		{Name: "notes", Type: schema.Text},
		{Name: "born", Type: schema.Timestamptz},
		{Name: "location", Type: schema.PointZ},
	}, schema.Lifecycle(false)...),
})

func (r *robot) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "name":
		return fieldvalue.String(r.Name), nil
	case "speed":
		return fieldvalue.I64(r.Speed), nil
	case "notes":
		if r.Notes == nil {
			return fieldvalue.None(), nil
		}
		return fieldvalue.Some(fieldvalue.String(*r.Notes)), nil
	case "born":
		if r.Born == nil {
			return fieldvalue.None(), nil
		}
		return fieldvalue.Some(fieldvalue.Timestamp(*r.Born)), nil
	case "location":
		if r.Location == nil {
			return fieldvalue.None(), nil
		}
		return fieldvalue.Some(fieldvalue.PointZ(*r.Location)), nil
	}
	return nil, errs.New("robot has no field %q", name)
}

func (r *robot) DecodeRow(row Row) error {
	if v, ok := row["name"]; ok {
		r.Name = v.AsString()
	}
	if v, ok := row["speed"]; ok {
		r.Speed = v.AsI64()
	}
	r.Notes = nil
	if v, ok := row["notes"]; ok {
		s := v.AsString()
		r.Notes = &s
	}
	r.Born = nil
	if v, ok := row["born"]; ok {
		at := v.AsTime()
		r.Born = &at
	}
	r.Location = nil
	if v, ok := row["location"].(fieldvalue.PointZ); ok {
		p := geo.PointZ(v)
		r.Location = &p
	}
	return nil
}

// mission joins two robots with one payload column, hard-deleting.
type mission struct {
	LeaderID  string
	ScoutID   string
	Completed bool
}

var missionDef = schema.NewDefinition(schema.Definition{
	Table: "mission",
	Keys:  []string{"leader_id", "scout_id"},
	Fields: append([]schema.Field{
		{Name: "leader_id", Type: schema.UUID, Mandatory: true},
		{Name: "scout_id", Type: schema.UUID, Mandatory: true},
		{Name: "completed", Type: schema.Bool, Mandatory: true},
	}, schema.Lifecycle(false)...),
})

func (m *mission) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "leader_id":
		return fieldvalue.String(m.LeaderID), nil
	case "scout_id":
		return fieldvalue.String(m.ScoutID), nil
	case "completed":
		return fieldvalue.Bool(m.Completed), nil
	}
	return nil, errs.New("mission has no field %q", name)
}

func (m *mission) DecodeRow(row Row) error {
	if v, ok := row["leader_id"]; ok {
		m.LeaderID = v.AsString()
	}
	if v, ok := row["scout_id"]; ok {
		m.ScoutID = v.AsString()
	}
	if v, ok := row["completed"]; ok {
		m.Completed = v.AsBool()
	}
	return nil
}

func strptr(s string) *string { return &s }
