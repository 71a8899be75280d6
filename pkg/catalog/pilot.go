// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/resource"
	"skystore.io/skystore/pkg/schema"
)

// Pilot is a licensed operator.
type Pilot struct {
	FirstName string                 `json:"first_name"`
	LastName  string                 `json:"last_name"`
	CreatedAt *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt *timestamppb.Timestamp `json:"updated_at,omitempty"`
	DeletedAt *timestamppb.Timestamp `json:"deleted_at,omitempty"`
}

// PilotDefinition describes the pilot table.
var PilotDefinition = schema.NewDefinition(schema.Definition{
	Table: "pilot",
	Keys:  []string{"pilot_id"},
	Fields: append([]schema.Field{
		{Name: "first_name", Type: schema.Text, Mandatory: true},
		{Name: "last_name", Type: schema.Text, Mandatory: true},
	}, schema.Lifecycle(true)...),
})

func (p *Pilot) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "first_name":
		return fieldvalue.String(p.FirstName), nil
	case "last_name":
		return fieldvalue.String(p.LastName), nil
	}
	return nil, Error.New("pilot has no field %q", name)
}

func (p *Pilot) DecodeRow(row resource.Row) error {
	p.FirstName = decodeString(row, "first_name")
	p.LastName = decodeString(row, "last_name")
	p.CreatedAt = decodeTimestamp(row, "created_at")
	p.UpdatedAt = decodeTimestamp(row, "updated_at")
	p.DeletedAt = decodeTimestamp(row, "deleted_at")
	return nil
}
