// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/resource"
	"skystore.io/skystore/pkg/schema"
)

// User is an account holder.
type User struct {
	AuthMethod  int32                  `json:"auth_method"`
	DisplayName string                 `json:"display_name"`
	Email       string                 `json:"email"`
	Settings    *string                `json:"settings,omitempty"`
	CreatedAt   *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt   *timestamppb.Timestamp `json:"updated_at,omitempty"`
	DeletedAt   *timestamppb.Timestamp `json:"deleted_at,omitempty"`
}

// UserDefinition describes the user table. The name is a reserved word in
// Postgres; every synthesized statement quotes identifiers, so it stays.
var UserDefinition = schema.NewDefinition(schema.Definition{
	Table: "user",
	Keys:  []string{"user_id"},
	Fields: append([]schema.Field{
		{Name: "auth_method", Type: schema.AnyEnum, Mandatory: true},
		{Name: "display_name", Type: schema.Text, Mandatory: true},
		{Name: "email", Type: schema.Text, Mandatory: true},
		{Name: "settings", Type: schema.JSON},
	}, schema.Lifecycle(true)...),
	Enums: map[string]schema.EnumDecoder{
		"auth_method": authMethodTable.decode,
	},
})

func (u *User) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "auth_method":
		return fieldvalue.I32(u.AuthMethod), nil
	case "display_name":
		return fieldvalue.String(u.DisplayName), nil
	case "email":
		return fieldvalue.String(u.Email), nil
	case "settings":
		return optString(u.Settings), nil
	}
	return nil, Error.New("user has no field %q", name)
}

func (u *User) DecodeRow(row resource.Row) error {
	u.AuthMethod = decodeEnum(row, "auth_method", authMethodTable)
	u.DisplayName = decodeString(row, "display_name")
	u.Email = decodeString(row, "email")
	u.Settings = decodeOptJSON(row, "settings")
	u.CreatedAt = decodeTimestamp(row, "created_at")
	u.UpdatedAt = decodeTimestamp(row, "updated_at")
	u.DeletedAt = decodeTimestamp(row, "deleted_at")
	return nil
}
