// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/resource"
	"skystore.io/skystore/pkg/schema"
)

// ADSB is one raw ADS-B telemetry frame. Telemetry is append-only and
// deletes for real.
type ADSB struct {
	IcaoAddress      int64                  `json:"icao_address"`
	MessageType      int64                  `json:"message_type"`
	NetworkTimestamp *timestamppb.Timestamp `json:"network_timestamp"`
	Payload          []byte                 `json:"payload"`
	CreatedAt        *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt        *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

// ADSBDefinition describes the adsb table.
var ADSBDefinition = schema.NewDefinition(schema.Definition{
	Table: "adsb",
	Keys:  []string{"adsb_id"},
	Fields: append([]schema.Field{
		{Name: "icao_address", Type: schema.Int8, Mandatory: true},
		{Name: "message_type", Type: schema.Int8, Mandatory: true},
		{Name: "network_timestamp", Type: schema.Timestamptz, Mandatory: true},
		{Name: "payload", Type: schema.Bytea, Mandatory: true},
	}, schema.Lifecycle(false)...),
	Indices: []string{
		`CREATE INDEX IF NOT EXISTS idx_adsb_icao ON "adsb" ("icao_address")`,
		`CREATE INDEX IF NOT EXISTS idx_adsb_network_timestamp ON "adsb" ("network_timestamp")`,
	},
})

func (a *ADSB) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "icao_address":
		return fieldvalue.I64(a.IcaoAddress), nil
	case "message_type":
		return fieldvalue.I64(a.MessageType), nil
	case "network_timestamp":
		return mandatoryTimestamp(a.NetworkTimestamp), nil
	case "payload":
		return fieldvalue.Bytes(a.Payload), nil
	}
	return nil, Error.New("adsb has no field %q", name)
}

func (a *ADSB) DecodeRow(row resource.Row) error {
	a.IcaoAddress = decodeI64(row, "icao_address")
	a.MessageType = decodeI64(row, "message_type")
	a.NetworkTimestamp = decodeTimestamp(row, "network_timestamp")
	a.Payload = nil
	if v, ok := row["payload"].(fieldvalue.Bytes); ok {
		a.Payload = []byte(v)
	}
	a.CreatedAt = decodeTimestamp(row, "created_at")
	a.UpdatedAt = decodeTimestamp(row, "updated_at")
	return nil
}
