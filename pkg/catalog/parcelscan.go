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

// ParcelScan records one sighting of a parcel by a scanner. Scans are an
// append-only audit trail and delete for real.
type ParcelScan struct {
	ParcelID    string                 `json:"parcel_id"`
	ScannerID   string                 `json:"scanner_id"`
	GeoLocation *geo.PointZ            `json:"geo_location"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt   *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

// ParcelScanDefinition describes the parcel_scan table.
var ParcelScanDefinition = schema.NewDefinition(schema.Definition{
	Table: "parcel_scan",
	Keys:  []string{"parcel_scan_id"},
	Fields: append([]schema.Field{
		{Name: "parcel_id", Type: schema.UUID, Mandatory: true},
		{Name: "scanner_id", Type: schema.UUID, Mandatory: true},
		{Name: "geo_location", Type: schema.PointZ, Mandatory: true},
	}, schema.Lifecycle(false)...),
	Indices: []string{
		`ALTER TABLE "parcel_scan" ADD CONSTRAINT fk_parcel_scan_parcel FOREIGN KEY ("parcel_id") REFERENCES "parcel" ("parcel_id")`,
		`ALTER TABLE "parcel_scan" ADD CONSTRAINT fk_parcel_scan_scanner FOREIGN KEY ("scanner_id") REFERENCES "scanner" ("scanner_id")`,
	},
})

func (ps *ParcelScan) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "parcel_id":
		return fieldvalue.String(ps.ParcelID), nil
	case "scanner_id":
		return fieldvalue.String(ps.ScannerID), nil
	case "geo_location":
		return mandatoryPoint(ps.GeoLocation), nil
	}
	return nil, Error.New("parcel_scan has no field %q", name)
}

func (ps *ParcelScan) DecodeRow(row resource.Row) error {
	ps.ParcelID = decodeString(row, "parcel_id")
	ps.ScannerID = decodeString(row, "scanner_id")
	ps.GeoLocation = decodePoint(row, "geo_location")
	ps.CreatedAt = decodeTimestamp(row, "created_at")
	ps.UpdatedAt = decodeTimestamp(row, "updated_at")
	return nil
}
