// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/resource"
	"skystore.io/skystore/pkg/schema"
)

// Scanner is a parcel scanning device registered to an organization.
type Scanner struct {
	OrganizationID string                 `json:"organization_id"`
	ScannerType    int32                  `json:"scanner_type"`
	ScannerStatus  int32                  `json:"scanner_status"`
	CreatedAt      *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt      *timestamppb.Timestamp `json:"updated_at,omitempty"`
	DeletedAt      *timestamppb.Timestamp `json:"deleted_at,omitempty"`
}

// ScannerDefinition describes the scanner table.
var ScannerDefinition = schema.NewDefinition(schema.Definition{
	Table: "scanner",
	Keys:  []string{"scanner_id"},
	Fields: append([]schema.Field{
		{Name: "organization_id", Type: schema.UUID, Mandatory: true},
		{Name: "scanner_type", Type: schema.AnyEnum, Mandatory: true},
		{Name: "scanner_status", Type: schema.AnyEnum, Mandatory: true},
	}, schema.Lifecycle(true)...),
	Enums: map[string]schema.EnumDecoder{
		"scanner_type":   scannerTypeTable.decode,
		"scanner_status": scannerStatusTable.decode,
	},
})

func (s *Scanner) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "organization_id":
		return fieldvalue.String(s.OrganizationID), nil
	case "scanner_type":
		return fieldvalue.I32(s.ScannerType), nil
	case "scanner_status":
		return fieldvalue.I32(s.ScannerStatus), nil
	}
	return nil, Error.New("scanner has no field %q", name)
}

func (s *Scanner) DecodeRow(row resource.Row) error {
	s.OrganizationID = decodeString(row, "organization_id")
	s.ScannerType = decodeEnum(row, "scanner_type", scannerTypeTable)
	s.ScannerStatus = decodeEnum(row, "scanner_status", scannerStatusTable)
	s.CreatedAt = decodeTimestamp(row, "created_at")
	s.UpdatedAt = decodeTimestamp(row, "updated_at")
	s.DeletedAt = decodeTimestamp(row, "deleted_at")
	return nil
}
