// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/resource"
	"skystore.io/skystore/pkg/schema"
)

// Itinerary is a user's chain of flight plans.
type Itinerary struct {
	UserID    string                 `json:"user_id"`
	Status    int32                  `json:"status"`
	CreatedAt *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt *timestamppb.Timestamp `json:"updated_at,omitempty"`
	DeletedAt *timestamppb.Timestamp `json:"deleted_at,omitempty"`
}

// ItineraryDefinition describes the itinerary table.
var ItineraryDefinition = schema.NewDefinition(schema.Definition{
	Table: "itinerary",
	Keys:  []string{"itinerary_id"},
	Fields: append([]schema.Field{
		{Name: "user_id", Type: schema.UUID, Mandatory: true},
		{Name: "status", Type: schema.AnyEnum, Mandatory: true, Default: "'ACTIVE'"},
	}, schema.Lifecycle(true)...),
	Indices: []string{
		`ALTER TABLE "itinerary" ADD CONSTRAINT fk_itinerary_user FOREIGN KEY ("user_id") REFERENCES "user" ("user_id")`,
	},
	Enums: map[string]schema.EnumDecoder{
		"status": itineraryStatusTable.decode,
	},
})

func (i *Itinerary) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "user_id":
		return fieldvalue.String(i.UserID), nil
	case "status":
		return fieldvalue.I32(i.Status), nil
	}
	return nil, Error.New("itinerary has no field %q", name)
}

func (i *Itinerary) DecodeRow(row resource.Row) error {
	i.UserID = decodeString(row, "user_id")
	i.Status = decodeEnum(row, "status", itineraryStatusTable)
	i.CreatedAt = decodeTimestamp(row, "created_at")
	i.UpdatedAt = decodeTimestamp(row, "updated_at")
	i.DeletedAt = decodeTimestamp(row, "deleted_at")
	return nil
}
