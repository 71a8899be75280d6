// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/resource"
	"skystore.io/skystore/pkg/schema"
)

// FlightPlanParcel assigns a parcel to a flight plan. acquire and deliver
// mark which leg handles the parcel. Rows are addressed by the pair of ids
// and delete for real.
type FlightPlanParcel struct {
	FlightPlanID string                 `json:"flight_plan_id"`
	ParcelID     string                 `json:"parcel_id"`
	Acquire      bool                   `json:"acquire"`
	Deliver      bool                   `json:"deliver"`
	CreatedAt    *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt    *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

// FlightPlanParcelDefinition describes the flight_plan_parcel table. The key
// columns double as payload fields so inserts carry them like any other
// mandatory column.
var FlightPlanParcelDefinition = schema.NewDefinition(schema.Definition{
	Table: "flight_plan_parcel",
	Keys:  []string{"flight_plan_id", "parcel_id"},
	Fields: append([]schema.Field{
		{Name: "flight_plan_id", Type: schema.UUID, Mandatory: true},
		{Name: "parcel_id", Type: schema.UUID, Mandatory: true},
		{Name: "acquire", Type: schema.Bool, Mandatory: true},
		{Name: "deliver", Type: schema.Bool, Mandatory: true},
	}, schema.Lifecycle(false)...),
	Indices: []string{
		`ALTER TABLE "flight_plan_parcel" ADD CONSTRAINT fk_flight_plan_parcel_flight_plan FOREIGN KEY ("flight_plan_id") REFERENCES "flight_plan" ("flight_plan_id")`,
		`ALTER TABLE "flight_plan_parcel" ADD CONSTRAINT fk_flight_plan_parcel_parcel FOREIGN KEY ("parcel_id") REFERENCES "parcel" ("parcel_id")`,
	},
})

func (fpp *FlightPlanParcel) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "flight_plan_id":
		return fieldvalue.String(fpp.FlightPlanID), nil
	case "parcel_id":
		return fieldvalue.String(fpp.ParcelID), nil
	case "acquire":
		return fieldvalue.Bool(fpp.Acquire), nil
	case "deliver":
		return fieldvalue.Bool(fpp.Deliver), nil
	}
	return nil, Error.New("flight_plan_parcel has no field %q", name)
}

func (fpp *FlightPlanParcel) DecodeRow(row resource.Row) error {
	fpp.FlightPlanID = decodeString(row, "flight_plan_id")
	fpp.ParcelID = decodeString(row, "parcel_id")
	fpp.Acquire = decodeBool(row, "acquire")
	fpp.Deliver = decodeBool(row, "deliver")
	fpp.CreatedAt = decodeTimestamp(row, "created_at")
	fpp.UpdatedAt = decodeTimestamp(row, "updated_at")
	return nil
}
