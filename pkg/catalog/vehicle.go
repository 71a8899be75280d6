// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/resource"
	"skystore.io/skystore/pkg/schema"
)

// Vehicle is an aircraft in the fleet.
type Vehicle struct {
	SerialNumber       string                 `json:"serial_number"`
	RegistrationNumber string                 `json:"registration_number"`
	Description        *string                `json:"description,omitempty"`
	AssetGroupID       *string                `json:"asset_group_id,omitempty"`
	Schedule           *string                `json:"schedule,omitempty"`
	HangarID           *string                `json:"hangar_id,omitempty"`
	HangarBayID        *string                `json:"hangar_bay_id,omitempty"`
	LastMaintenance    *timestamppb.Timestamp `json:"last_maintenance,omitempty"`
	NextMaintenance    *timestamppb.Timestamp `json:"next_maintenance,omitempty"`
	CreatedAt          *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt          *timestamppb.Timestamp `json:"updated_at,omitempty"`
	DeletedAt          *timestamppb.Timestamp `json:"deleted_at,omitempty"`
}

// VehicleDefinition describes the vehicle table.
var VehicleDefinition = schema.NewDefinition(schema.Definition{
	Table: "vehicle",
	Keys:  []string{"vehicle_id"},
	Fields: append([]schema.Field{
		{Name: "serial_number", Type: schema.Text, Mandatory: true},
		{Name: "registration_number", Type: schema.Text, Mandatory: true},
		{Name: "description", Type: schema.Text},
		{Name: "asset_group_id", Type: schema.UUID},
		{Name: "schedule", Type: schema.Text},
		{Name: "hangar_id", Type: schema.UUID},
		{Name: "hangar_bay_id", Type: schema.UUID},
		{Name: "last_maintenance", Type: schema.Timestamptz},
		{Name: "next_maintenance", Type: schema.Timestamptz},
	}, schema.Lifecycle(true)...),
})

func (v *Vehicle) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "serial_number":
		return fieldvalue.String(v.SerialNumber), nil
	case "registration_number":
		return fieldvalue.String(v.RegistrationNumber), nil
	case "description":
		return optString(v.Description), nil
	case "asset_group_id":
		return optString(v.AssetGroupID), nil
	case "schedule":
		return optString(v.Schedule), nil
	case "hangar_id":
		return optString(v.HangarID), nil
	case "hangar_bay_id":
		return optString(v.HangarBayID), nil
	case "last_maintenance":
		return optTimestamp(v.LastMaintenance), nil
	case "next_maintenance":
		return optTimestamp(v.NextMaintenance), nil
	}
	return nil, Error.New("vehicle has no field %q", name)
}

func (v *Vehicle) DecodeRow(row resource.Row) error {
	v.SerialNumber = decodeString(row, "serial_number")
	v.RegistrationNumber = decodeString(row, "registration_number")
	v.Description = decodeOptString(row, "description")
	v.AssetGroupID = decodeOptString(row, "asset_group_id")
	v.Schedule = decodeOptString(row, "schedule")
	v.HangarID = decodeOptString(row, "hangar_id")
	v.HangarBayID = decodeOptString(row, "hangar_bay_id")
	v.LastMaintenance = decodeTimestamp(row, "last_maintenance")
	v.NextMaintenance = decodeTimestamp(row, "next_maintenance")
	v.CreatedAt = decodeTimestamp(row, "created_at")
	v.UpdatedAt = decodeTimestamp(row, "updated_at")
	v.DeletedAt = decodeTimestamp(row, "deleted_at")
	return nil
}
