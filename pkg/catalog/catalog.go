// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

// Package catalog declares every stored entity: its typed payload, its
// schema definition, and its enum decoders. The Catalog ties each entity to
// a resource engine over one shared database handle (or the in-memory
// stores when none is attached).
package catalog

import (
	"database/sql"
	"time"

	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/timestamppb"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/geo"
	"skystore.io/skystore/pkg/resource"
	"skystore.io/skystore/pkg/schema"
)

// Error is the catalog errs class; it marks requests for fields an entity
// does not declare.
var Error = errs.Class("catalog")

// Catalog holds one engine per entity, all sharing the same pool.
type Catalog struct {
	Vehicles    *resource.Simple[Vehicle, *Vehicle]
	Pilots      *resource.Simple[Pilot, *Pilot]
	Vertiports  *resource.Simple[Vertiport, *Vertiport]
	Vertipads   *resource.Simple[Vertipad, *Vertipad]
	FlightPlans *resource.Simple[FlightPlan, *FlightPlan]
	Parcels     *resource.Simple[Parcel, *Parcel]
	Scanners    *resource.Simple[Scanner, *Scanner]
	ParcelScans *resource.Simple[ParcelScan, *ParcelScan]
	Telemetry   *resource.Simple[ADSB, *ADSB]
	Users       *resource.Simple[User, *User]
	Groups      *resource.Simple[Group, *Group]
	Itineraries *resource.Simple[Itinerary, *Itinerary]

	FlightPlanParcels *resource.Linked[FlightPlanParcel, *FlightPlanParcel]

	UserGroups           *resource.LinkTable
	VehicleGroups        *resource.LinkTable
	VertiportGroups      *resource.LinkTable
	VertipadGroups       *resource.LinkTable
	ItineraryFlightPlans *resource.LinkTable
}

// New wires every entity engine to the given database. A nil db selects the
// in-memory fallback: one fresh store per entity, shared only through the
// returned catalog.
func New(log *zap.Logger, db *sql.DB) *Catalog {
	mem := func() *resource.MemStore {
		if db != nil {
			return nil
		}
		return resource.NewMemStore()
	}
	links := func() *resource.LinkStore {
		if db != nil {
			return nil
		}
		return resource.NewLinkStore()
	}

	vehicles := resource.NewSimple[Vehicle, *Vehicle](log, db, VehicleDefinition, mem())
	users := resource.NewSimple[User, *User](log, db, UserDefinition, mem())
	vertiports := resource.NewSimple[Vertiport, *Vertiport](log, db, VertiportDefinition, mem())
	vertipads := resource.NewSimple[Vertipad, *Vertipad](log, db, VertipadDefinition, mem())
	flightPlans := resource.NewSimple[FlightPlan, *FlightPlan](log, db, FlightPlanDefinition, mem())
	groups := resource.NewSimple[Group, *Group](log, db, GroupDefinition, mem())
	itineraries := resource.NewSimple[Itinerary, *Itinerary](log, db, ItineraryDefinition, mem())

	cat := &Catalog{
		Vehicles:    vehicles,
		Pilots:      resource.NewSimple[Pilot, *Pilot](log, db, PilotDefinition, mem()),
		Vertiports:  vertiports,
		Vertipads:   vertipads,
		FlightPlans: flightPlans,
		Parcels:     resource.NewSimple[Parcel, *Parcel](log, db, ParcelDefinition, mem()),
		Scanners:    resource.NewSimple[Scanner, *Scanner](log, db, ScannerDefinition, mem()),
		ParcelScans: resource.NewSimple[ParcelScan, *ParcelScan](log, db, ParcelScanDefinition, mem()),
		Telemetry:   resource.NewSimple[ADSB, *ADSB](log, db, ADSBDefinition, mem()),
		Users:       users,
		Groups:      groups,
		Itineraries: itineraries,

		FlightPlanParcels: resource.NewLinked[FlightPlanParcel, *FlightPlanParcel](log, db, FlightPlanParcelDefinition, mem()),
	}

	cat.UserGroups = resource.NewLinkTable(log, db,
		UserGroupDefinition, UserDefinition, GroupDefinition, links(), memOf(users))
	cat.VehicleGroups = resource.NewLinkTable(log, db,
		VehicleGroupDefinition, VehicleDefinition, GroupDefinition, links(), memOf(vehicles))
	cat.VertiportGroups = resource.NewLinkTable(log, db,
		VertiportGroupDefinition, VertiportDefinition, GroupDefinition, links(), memOf(vertiports))
	cat.VertipadGroups = resource.NewLinkTable(log, db,
		VertipadGroupDefinition, VertipadDefinition, GroupDefinition, links(), memOf(vertipads))
	cat.ItineraryFlightPlans = resource.NewLinkTable(log, db,
		ItineraryFlightPlanDefinition, ItineraryDefinition, FlightPlanDefinition, links(), memOf(itineraries))

	return cat
}

// Definitions lists every definition in dependency order, suitable for
// schema.InitAll.
func Definitions() []*schema.Definition {
	return []*schema.Definition{
		VehicleDefinition,
		PilotDefinition,
		VertiportDefinition,
		VertipadDefinition,
		FlightPlanDefinition,
		ParcelDefinition,
		ScannerDefinition,
		ParcelScanDefinition,
		ADSBDefinition,
		UserDefinition,
		GroupDefinition,
		ItineraryDefinition,
		FlightPlanParcelDefinition,
		UserGroupDefinition,
		VehicleGroupDefinition,
		VertiportGroupDefinition,
		VertipadGroupDefinition,
		ItineraryFlightPlanDefinition,
	}
}

// boundary conversion helpers shared by every entity

func optString(v *string) fieldvalue.Value {
	if v == nil {
		return fieldvalue.None()
	}
	return fieldvalue.Some(fieldvalue.String(*v))
}

func optTimestamp(v *timestamppb.Timestamp) fieldvalue.Value {
	if v == nil {
		return fieldvalue.None()
	}
	return fieldvalue.Some(fieldvalue.Timestamp(v.AsTime()))
}

func optI64List(v []int64) fieldvalue.Value {
	if v == nil {
		return fieldvalue.None()
	}
	return fieldvalue.Some(fieldvalue.I64List(v))
}

func optBytes(v []byte) fieldvalue.Value {
	if v == nil {
		return fieldvalue.None()
	}
	return fieldvalue.Some(fieldvalue.Bytes(v))
}

// mandatoryTimestamp maps a missing wire timestamp to the pre-epoch zero
// time, which the validator then rejects with a field error.
func mandatoryTimestamp(v *timestamppb.Timestamp) fieldvalue.Value {
	if v == nil {
		return fieldvalue.Timestamp(time.Time{})
	}
	return fieldvalue.Timestamp(v.AsTime())
}

func optLineString(v *geo.LineStringZ) fieldvalue.Value {
	if v == nil {
		return fieldvalue.None()
	}
	return fieldvalue.Some(fieldvalue.LineStringZ(*v))
}

func mandatoryPoint(v *geo.PointZ) fieldvalue.Value {
	if v == nil {
		// out-of-range sentinel; the validator turns it into field errors
		return fieldvalue.PointZ(geo.PointZ{X: -999, Y: -999})
	}
	return fieldvalue.PointZ(*v)
}

func mandatoryPolygon(v *geo.PolygonZ) fieldvalue.Value {
	if v == nil {
		return fieldvalue.PolygonZ(geo.PolygonZ{})
	}
	return fieldvalue.PolygonZ(*v)
}

func decodePoint(row resource.Row, col string) *geo.PointZ {
	v, ok := row[col].(fieldvalue.PointZ)
	if !ok {
		return nil
	}
	p := geo.PointZ(v)
	return &p
}

func decodePolygon(row resource.Row, col string) *geo.PolygonZ {
	v, ok := row[col].(fieldvalue.PolygonZ)
	if !ok {
		return nil
	}
	p := geo.PolygonZ(v)
	return &p
}

func decodeLineString(row resource.Row, col string) *geo.LineStringZ {
	v, ok := row[col].(fieldvalue.LineStringZ)
	if !ok {
		return nil
	}
	l := geo.LineStringZ(v)
	return &l
}

func decodeString(row resource.Row, col string) string {
	if v, ok := row[col]; ok {
		return v.AsString()
	}
	return ""
}

func decodeOptString(row resource.Row, col string) *string {
	v, ok := row[col]
	if !ok {
		return nil
	}
	s := v.AsString()
	return &s
}

// decodeOptJSON accepts both forms a JSON column comes back in: raw bytes
// from the database, the validated string in memory mode.
func decodeOptJSON(row resource.Row, col string) *string {
	switch v := row[col].(type) {
	case fieldvalue.Bytes:
		s := string(v)
		return &s
	case fieldvalue.String:
		s := string(v)
		return &s
	}
	return nil
}

func decodeTimestamp(row resource.Row, col string) *timestamppb.Timestamp {
	v, ok := row[col]
	if !ok {
		return nil
	}
	return timestamppb.New(v.AsTime())
}

func decodeBool(row resource.Row, col string) bool {
	if v, ok := row[col]; ok {
		return v.AsBool()
	}
	return false
}

func decodeI64(row resource.Row, col string) int64 {
	if v, ok := row[col]; ok {
		return v.AsI64()
	}
	return 0
}

func memOf[D any, P resource.Ptr[D]](s *resource.Simple[D, P]) *resource.MemStore {
	return s.Mem()
}
