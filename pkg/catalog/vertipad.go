// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/geo"
	"skystore.io/skystore/pkg/resource"
	"skystore.io/skystore/pkg/schema"
)

// Vertipad is a single landing pad within a vertiport.
type Vertipad struct {
	VertiportID string                 `json:"vertiport_id"`
	Name        string                 `json:"name"`
	GeoLocation *geo.PointZ            `json:"geo_location"`
	Enabled     bool                   `json:"enabled"`
	Occupied    bool                   `json:"occupied"`
	Schedule    *string                `json:"schedule,omitempty"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt   *timestamppb.Timestamp `json:"updated_at,omitempty"`
	DeletedAt   *timestamppb.Timestamp `json:"deleted_at,omitempty"`
}

// VertipadDefinition describes the vertipad table.
var VertipadDefinition = schema.NewDefinition(schema.Definition{
	Table: "vertipad",
	Keys:  []string{"vertipad_id"},
	Fields: append([]schema.Field{
		{Name: "vertiport_id", Type: schema.UUID, Mandatory: true},
		{Name: "name", Type: schema.Text, Mandatory: true},
		{Name: "geo_location", Type: schema.PointZ, Mandatory: true},
		{Name: "enabled", Type: schema.Bool, Mandatory: true, Default: "true"},
		{Name: "occupied", Type: schema.Bool, Mandatory: true, Default: "false"},
		{Name: "schedule", Type: schema.Text},
	}, schema.Lifecycle(true)...),
	Indices: []string{
		`ALTER TABLE "vertipad" ADD CONSTRAINT fk_vertipad_vertiport FOREIGN KEY ("vertiport_id") REFERENCES "vertiport" ("vertiport_id")`,
	},
})

func (v *Vertipad) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "vertiport_id":
		return fieldvalue.String(v.VertiportID), nil
	case "name":
		return fieldvalue.String(v.Name), nil
	case "geo_location":
		return mandatoryPoint(v.GeoLocation), nil
	case "enabled":
		return fieldvalue.Bool(v.Enabled), nil
	case "occupied":
		return fieldvalue.Bool(v.Occupied), nil
	case "schedule":
		return optString(v.Schedule), nil
	}
	return nil, Error.New("vertipad has no field %q", name)
}

func (v *Vertipad) DecodeRow(row resource.Row) error {
	v.VertiportID = decodeString(row, "vertiport_id")
	v.Name = decodeString(row, "name")
	v.GeoLocation = decodePoint(row, "geo_location")
	v.Enabled = decodeBool(row, "enabled")
	v.Occupied = decodeBool(row, "occupied")
	v.Schedule = decodeOptString(row, "schedule")
	v.CreatedAt = decodeTimestamp(row, "created_at")
	v.UpdatedAt = decodeTimestamp(row, "updated_at")
	v.DeletedAt = decodeTimestamp(row, "deleted_at")
	return nil
}
