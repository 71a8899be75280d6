// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import (
	"skystore.io/skystore/pkg/schema"
)

// Pure join tables. Each carries exactly its two key columns; the composite
// primary key doubles as the uniqueness constraint on the pair.

func linkDefinition(table, aCol, bCol, aTable, bTable string) *schema.Definition {
	return schema.NewDefinition(schema.Definition{
		Table: table,
		Keys:  []string{aCol, bCol},
		Fields: []schema.Field{
			{Name: aCol, Type: schema.UUID, Mandatory: true},
			{Name: bCol, Type: schema.UUID, Mandatory: true},
		},
		Indices: []string{
			`ALTER TABLE "` + table + `" ADD CONSTRAINT fk_` + table + `_a FOREIGN KEY ("` + aCol + `") REFERENCES "` + aTable + `" ("` + aCol + `")`,
			`ALTER TABLE "` + table + `" ADD CONSTRAINT fk_` + table + `_b FOREIGN KEY ("` + bCol + `") REFERENCES "` + bTable + `" ("` + bCol + `")`,
		},
	})
}

// Join table definitions.
var (
	UserGroupDefinition           = linkDefinition("user_group", "user_id", "group_id", "user", "group")
	VehicleGroupDefinition        = linkDefinition("vehicle_group", "vehicle_id", "group_id", "vehicle", "group")
	VertiportGroupDefinition      = linkDefinition("vertiport_group", "vertiport_id", "group_id", "vertiport", "group")
	VertipadGroupDefinition       = linkDefinition("vertipad_group", "vertipad_id", "group_id", "vertipad", "group")
	ItineraryFlightPlanDefinition = linkDefinition("itinerary_flight_plan", "itinerary_id", "flight_plan_id", "itinerary", "flight_plan")
)
