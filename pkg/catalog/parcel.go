// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/resource"
	"skystore.io/skystore/pkg/schema"
)

// Parcel is a cargo item moving through the network.
type Parcel struct {
	UserID       string                 `json:"user_id"`
	WeightGrams  uint32                 `json:"weight_grams"`
	CargoTypeIDs []int64                `json:"cargo_type_ids,omitempty"`
	Status       int32                  `json:"status"`
	CreatedAt    *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt    *timestamppb.Timestamp `json:"updated_at,omitempty"`
	DeletedAt    *timestamppb.Timestamp `json:"deleted_at,omitempty"`
}

// ParcelDefinition describes the parcel table. Weight crosses the wire
// unsigned and is stored widened to INT8.
var ParcelDefinition = schema.NewDefinition(schema.Definition{
	Table: "parcel",
	Keys:  []string{"parcel_id"},
	Fields: append([]schema.Field{
		{Name: "user_id", Type: schema.UUID, Mandatory: true},
		{Name: "weight_grams", Type: schema.Int8, Mandatory: true},
		{Name: "cargo_type_ids", Type: schema.Int8Array},
		{Name: "status", Type: schema.AnyEnum, Mandatory: true, Default: "'NOTDROPPEDOFF'"},
	}, schema.Lifecycle(true)...),
	Indices: []string{
		`ALTER TABLE "parcel" ADD CONSTRAINT fk_parcel_user FOREIGN KEY ("user_id") REFERENCES "user" ("user_id")`,
	},
	Enums: map[string]schema.EnumDecoder{
		"status": parcelStatusTable.decode,
	},
})

func (p *Parcel) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "user_id":
		return fieldvalue.String(p.UserID), nil
	case "weight_grams":
		return fieldvalue.U32(p.WeightGrams), nil
	case "cargo_type_ids":
		return optI64List(p.CargoTypeIDs), nil
	case "status":
		return fieldvalue.I32(p.Status), nil
	}
	return nil, Error.New("parcel has no field %q", name)
}

func (p *Parcel) DecodeRow(row resource.Row) error {
	p.UserID = decodeString(row, "user_id")
	p.WeightGrams = uint32(decodeI64(row, "weight_grams"))
	p.CargoTypeIDs = nil
	if v, ok := row["cargo_type_ids"].(fieldvalue.I64List); ok {
		p.CargoTypeIDs = []int64(v)
	}
	p.Status = decodeEnum(row, "status", parcelStatusTable)
	p.CreatedAt = decodeTimestamp(row, "created_at")
	p.UpdatedAt = decodeTimestamp(row, "updated_at")
	p.DeletedAt = decodeTimestamp(row, "deleted_at")
	return nil
}
