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

// Vertiport is a takeoff and landing site; its footprint is a closed 3D
// polygon.
type Vertiport struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	GeoLocation *geo.PolygonZ          `json:"geo_location"`
	Schedule    *string                `json:"schedule,omitempty"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt   *timestamppb.Timestamp `json:"updated_at,omitempty"`
	DeletedAt   *timestamppb.Timestamp `json:"deleted_at,omitempty"`
}

// VertiportDefinition describes the vertiport table.
var VertiportDefinition = schema.NewDefinition(schema.Definition{
	Table: "vertiport",
	Keys:  []string{"vertiport_id"},
	Fields: append([]schema.Field{
		{Name: "name", Type: schema.Text, Mandatory: true},
		{Name: "description", Type: schema.Text, Mandatory: true},
		{Name: "geo_location", Type: schema.PolygonZ, Mandatory: true},
		{Name: "schedule", Type: schema.Text},
	}, schema.Lifecycle(true)...),
})

func (v *Vertiport) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "name":
		return fieldvalue.String(v.Name), nil
	case "description":
		return fieldvalue.String(v.Description), nil
	case "geo_location":
		return mandatoryPolygon(v.GeoLocation), nil
	case "schedule":
		return optString(v.Schedule), nil
	}
	return nil, Error.New("vertiport has no field %q", name)
}

func (v *Vertiport) DecodeRow(row resource.Row) error {
	v.Name = decodeString(row, "name")
	v.Description = decodeString(row, "description")
	v.GeoLocation = decodePolygon(row, "geo_location")
	v.Schedule = decodeOptString(row, "schedule")
	v.CreatedAt = decodeTimestamp(row, "created_at")
	v.UpdatedAt = decodeTimestamp(row, "updated_at")
	v.DeletedAt = decodeTimestamp(row, "deleted_at")
	return nil
}
