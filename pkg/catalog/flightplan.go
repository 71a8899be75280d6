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

// FlightPlan is a scheduled flight between two vertipads.
type FlightPlan struct {
	PilotID               string                 `json:"pilot_id"`
	VehicleID             string                 `json:"vehicle_id"`
	Path                  *geo.LineStringZ       `json:"path,omitempty"`
	WeatherConditions     *string                `json:"weather_conditions,omitempty"`
	OriginVertiportID     *string                `json:"origin_vertiport_id,omitempty"`
	OriginVertipadID      string                 `json:"origin_vertipad_id"`
	TargetVertiportID     *string                `json:"target_vertiport_id,omitempty"`
	TargetVertipadID      string                 `json:"target_vertipad_id"`
	OriginTimeslotStart   *timestamppb.Timestamp `json:"origin_timeslot_start"`
	OriginTimeslotEnd     *timestamppb.Timestamp `json:"origin_timeslot_end"`
	TargetTimeslotStart   *timestamppb.Timestamp `json:"target_timeslot_start"`
	TargetTimeslotEnd     *timestamppb.Timestamp `json:"target_timeslot_end"`
	ActualDepartureTime   *timestamppb.Timestamp `json:"actual_departure_time,omitempty"`
	ActualArrivalTime     *timestamppb.Timestamp `json:"actual_arrival_time,omitempty"`
	FlightReleaseApproval *timestamppb.Timestamp `json:"flight_release_approval,omitempty"`
	FlightPlanSubmitted   *timestamppb.Timestamp `json:"flight_plan_submitted,omitempty"`
	CarrierAck            *timestamppb.Timestamp `json:"carrier_ack,omitempty"`
	ApprovedBy            *string                `json:"approved_by,omitempty"`
	FlightStatus          int32                  `json:"flight_status"`
	FlightPriority        int32                  `json:"flight_priority"`
	CreatedAt             *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt             *timestamppb.Timestamp `json:"updated_at,omitempty"`
	DeletedAt             *timestamppb.Timestamp `json:"deleted_at,omitempty"`
}

// FlightPlanDefinition describes the flight_plan table.
var FlightPlanDefinition = schema.NewDefinition(schema.Definition{
	Table: "flight_plan",
	Keys:  []string{"flight_plan_id"},
	Fields: append([]schema.Field{
		{Name: "pilot_id", Type: schema.UUID, Mandatory: true},
		{Name: "vehicle_id", Type: schema.UUID, Mandatory: true},
		{Name: "path", Type: schema.LineStringZ},
		{Name: "weather_conditions", Type: schema.Text},
		{Name: "origin_vertiport_id", Type: schema.UUID},
		{Name: "origin_vertipad_id", Type: schema.UUID, Mandatory: true},
		{Name: "target_vertiport_id", Type: schema.UUID},
		{Name: "target_vertipad_id", Type: schema.UUID, Mandatory: true},
		{Name: "origin_timeslot_start", Type: schema.Timestamptz, Mandatory: true},
		{Name: "origin_timeslot_end", Type: schema.Timestamptz, Mandatory: true},
		{Name: "target_timeslot_start", Type: schema.Timestamptz, Mandatory: true},
		{Name: "target_timeslot_end", Type: schema.Timestamptz, Mandatory: true},
		{Name: "actual_departure_time", Type: schema.Timestamptz},
		{Name: "actual_arrival_time", Type: schema.Timestamptz},
		{Name: "flight_release_approval", Type: schema.Timestamptz},
		{Name: "flight_plan_submitted", Type: schema.Timestamptz},
		{Name: "carrier_ack", Type: schema.Timestamptz},
		{Name: "approved_by", Type: schema.UUID},
		{Name: "flight_status", Type: schema.AnyEnum, Mandatory: true, Default: "'DRAFT'"},
		{Name: "flight_priority", Type: schema.AnyEnum, Mandatory: true, Default: "'LOW'"},
	}, schema.Lifecycle(true)...),
	Indices: []string{
		`ALTER TABLE "flight_plan" ADD CONSTRAINT fk_flight_plan_pilot FOREIGN KEY ("pilot_id") REFERENCES "pilot" ("pilot_id")`,
		`ALTER TABLE "flight_plan" ADD CONSTRAINT fk_flight_plan_vehicle FOREIGN KEY ("vehicle_id") REFERENCES "vehicle" ("vehicle_id")`,
		`ALTER TABLE "flight_plan" ADD CONSTRAINT fk_flight_plan_origin_vertipad FOREIGN KEY ("origin_vertipad_id") REFERENCES "vertipad" ("vertipad_id")`,
		`ALTER TABLE "flight_plan" ADD CONSTRAINT fk_flight_plan_target_vertipad FOREIGN KEY ("target_vertipad_id") REFERENCES "vertipad" ("vertipad_id")`,
	},
	Enums: map[string]schema.EnumDecoder{
		"flight_status":   flightStatusTable.decode,
		"flight_priority": flightPriorityTable.decode,
	},
})

func (fp *FlightPlan) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "pilot_id":
		return fieldvalue.String(fp.PilotID), nil
	case "vehicle_id":
		return fieldvalue.String(fp.VehicleID), nil
	case "path":
		return optLineString(fp.Path), nil
	case "weather_conditions":
		return optString(fp.WeatherConditions), nil
	case "origin_vertiport_id":
		return optString(fp.OriginVertiportID), nil
	case "origin_vertipad_id":
		return fieldvalue.String(fp.OriginVertipadID), nil
	case "target_vertiport_id":
		return optString(fp.TargetVertiportID), nil
	case "target_vertipad_id":
		return fieldvalue.String(fp.TargetVertipadID), nil
	case "origin_timeslot_start":
		return mandatoryTimestamp(fp.OriginTimeslotStart), nil
	case "origin_timeslot_end":
		return mandatoryTimestamp(fp.OriginTimeslotEnd), nil
	case "target_timeslot_start":
		return mandatoryTimestamp(fp.TargetTimeslotStart), nil
	case "target_timeslot_end":
		return mandatoryTimestamp(fp.TargetTimeslotEnd), nil
	case "actual_departure_time":
		return optTimestamp(fp.ActualDepartureTime), nil
	case "actual_arrival_time":
		return optTimestamp(fp.ActualArrivalTime), nil
	case "flight_release_approval":
		return optTimestamp(fp.FlightReleaseApproval), nil
	case "flight_plan_submitted":
		return optTimestamp(fp.FlightPlanSubmitted), nil
	case "carrier_ack":
		return optTimestamp(fp.CarrierAck), nil
	case "approved_by":
		return optString(fp.ApprovedBy), nil
	case "flight_status":
		return fieldvalue.I32(fp.FlightStatus), nil
	case "flight_priority":
		return fieldvalue.I32(fp.FlightPriority), nil
	}
	return nil, Error.New("flight_plan has no field %q", name)
}

func (fp *FlightPlan) DecodeRow(row resource.Row) error {
	fp.PilotID = decodeString(row, "pilot_id")
	fp.VehicleID = decodeString(row, "vehicle_id")
	fp.Path = decodeLineString(row, "path")
	fp.WeatherConditions = decodeOptString(row, "weather_conditions")
	fp.OriginVertiportID = decodeOptString(row, "origin_vertiport_id")
	fp.OriginVertipadID = decodeString(row, "origin_vertipad_id")
	fp.TargetVertiportID = decodeOptString(row, "target_vertiport_id")
	fp.TargetVertipadID = decodeString(row, "target_vertipad_id")
	fp.OriginTimeslotStart = decodeTimestamp(row, "origin_timeslot_start")
	fp.OriginTimeslotEnd = decodeTimestamp(row, "origin_timeslot_end")
	fp.TargetTimeslotStart = decodeTimestamp(row, "target_timeslot_start")
	fp.TargetTimeslotEnd = decodeTimestamp(row, "target_timeslot_end")
	fp.ActualDepartureTime = decodeTimestamp(row, "actual_departure_time")
	fp.ActualArrivalTime = decodeTimestamp(row, "actual_arrival_time")
	fp.FlightReleaseApproval = decodeTimestamp(row, "flight_release_approval")
	fp.FlightPlanSubmitted = decodeTimestamp(row, "flight_plan_submitted")
	fp.CarrierAck = decodeTimestamp(row, "carrier_ack")
	fp.ApprovedBy = decodeOptString(row, "approved_by")
	fp.FlightStatus = decodeEnum(row, "flight_status", flightStatusTable)
	fp.FlightPriority = decodeEnum(row, "flight_priority", flightPriorityTable)
	fp.CreatedAt = decodeTimestamp(row, "created_at")
	fp.UpdatedAt = decodeTimestamp(row, "updated_at")
	fp.DeletedAt = decodeTimestamp(row, "deleted_at")
	return nil
}
