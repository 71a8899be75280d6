// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package catalog

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/resource"
	"skystore.io/skystore/pkg/schema"
)

// Group is an organizational grouping of users and assets; groups nest
// through parent_group_id.
type Group struct {
	Name          string                 `json:"name"`
	GroupType     int32                  `json:"group_type"`
	Description   *string                `json:"description,omitempty"`
	ParentGroupID *string                `json:"parent_group_id,omitempty"`
	CreatedAt     *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt     *timestamppb.Timestamp `json:"updated_at,omitempty"`
	DeletedAt     *timestamppb.Timestamp `json:"deleted_at,omitempty"`
}

// GroupDefinition describes the group table.
var GroupDefinition = schema.NewDefinition(schema.Definition{
	Table: "group",
	Keys:  []string{"group_id"},
	Fields: append([]schema.Field{
		{Name: "name", Type: schema.Text, Mandatory: true},
		{Name: "group_type", Type: schema.AnyEnum, Mandatory: true},
		{Name: "description", Type: schema.Text},
		{Name: "parent_group_id", Type: schema.UUID},
	}, schema.Lifecycle(true)...),
	Enums: map[string]schema.EnumDecoder{
		"group_type": groupTypeTable.decode,
	},
})

func (g *Group) FieldValue(name string) (fieldvalue.Value, error) {
	switch name {
	case "name":
		return fieldvalue.String(g.Name), nil
	case "group_type":
		return fieldvalue.I32(g.GroupType), nil
	case "description":
		return optString(g.Description), nil
	case "parent_group_id":
		return optString(g.ParentGroupID), nil
	}
	return nil, Error.New("group has no field %q", name)
}

func (g *Group) DecodeRow(row resource.Row) error {
	g.Name = decodeString(row, "name")
	g.GroupType = decodeEnum(row, "group_type", groupTypeTable)
	g.Description = decodeOptString(row, "description")
	g.ParentGroupID = decodeOptString(row, "parent_group_id")
	g.CreatedAt = decodeTimestamp(row, "created_at")
	g.UpdatedAt = decodeTimestamp(row, "updated_at")
	g.DeletedAt = decodeTimestamp(row, "deleted_at")
	return nil
}
