// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package schema

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func statusDecoder(v int32) (string, bool) {
	switch v {
	case 0:
		return "ACTIVE", true
	case 1:
		return "RETIRED", true
	}
	return "", false
}

var droneDef = NewDefinition(Definition{
	Table: "drone",
	Keys:  []string{"drone_id"},
	Fields: append([]Field{
		{Name: "callsign", Type: Text, Mandatory: true},
		{Name: "status", Type: AnyEnum, Mandatory: true, Default: "'ACTIVE'"},
		{Name: "home", Type: PointZ},
		{Name: "payload", Type: Bytea},
		{Name: "tags", Type: Int8Array},
		{Name: "settings", Type: JSON},
	}, Lifecycle(true)...),
	Indices: []string{
		`CREATE INDEX IF NOT EXISTS idx_drone_callsign ON "drone" ("callsign")`,
	},
	Enums: map[string]EnumDecoder{"status": statusDecoder},
})

var pairDef = NewDefinition(Definition{
	Table: "drone_pilot",
	Keys:  []string{"drone_id", "pilot_id"},
	Fields: append([]Field{
		{Name: "drone_id", Type: UUID, Mandatory: true},
		{Name: "pilot_id", Type: UUID, Mandatory: true},
		{Name: "certified", Type: Bool, Mandatory: true, Default: "false"},
	}, Lifecycle(false)...),
})

func TestCreateStatementSimple(t *testing.T) {
	require.Equal(t,
		`CREATE TABLE IF NOT EXISTS "drone" (`+
			`"drone_id" UUID DEFAULT uuid_generate_v4() NOT NULL, `+
			`"callsign" TEXT NOT NULL, `+
			`"status" TEXT DEFAULT 'ACTIVE' NOT NULL, `+
			`"home" GEOMETRY(POINTZ, 4326), `+
			`"payload" BYTEA, `+
			`"tags" BIGINT[], `+
			`"settings" JSONB, `+
			`"created_at" TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP, `+
			`"updated_at" TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP, `+
			`"deleted_at" TIMESTAMPTZ, `+
			`PRIMARY KEY ("drone_id"))`,
		droneDef.CreateStatement())
}

func TestCreateStatementComposite(t *testing.T) {
	stmt := pairDef.CreateStatement()
	// key columns appear once, without generated defaults
	require.Contains(t, stmt, `"drone_id" UUID NOT NULL, "pilot_id" UUID NOT NULL`)
	require.NotContains(t, stmt, "uuid_generate_v4")
	require.Contains(t, stmt, `"certified" BOOL DEFAULT false NOT NULL`)
	require.Contains(t, stmt, `PRIMARY KEY ("drone_id", "pilot_id")`)
	require.Len(t, regexp.MustCompile(`"drone_id" UUID`).FindAllString(stmt, -1), 1)
}

func TestFieldLookup(t *testing.T) {
	require.True(t, droneDef.HasField("callsign"))
	require.False(t, droneDef.HasField("drone_id"))

	f, err := droneDef.GetField("status")
	require.NoError(t, err)
	require.Equal(t, AnyEnum, f.Type)

	_, err = droneDef.GetField("bogus")
	require.Error(t, err)
}

func TestSoftDelete(t *testing.T) {
	require.True(t, droneDef.SoftDelete())
	require.False(t, pairDef.SoftDelete())
}

func TestEnumString(t *testing.T) {
	s, ok := droneDef.EnumString("status", 1)
	require.True(t, ok)
	require.Equal(t, "RETIRED", s)

	_, ok = droneDef.EnumString("status", 9)
	require.False(t, ok)

	_, ok = droneDef.EnumString("callsign", 0)
	require.False(t, ok)
}

func TestInitAllOrderAndExtensions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`CREATE EXTENSION IF NOT EXISTS "postgis"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(droneDef.CreateStatement())).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(droneDef.Indices[0])).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(pairDef.CreateStatement())).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = InitAll(context.Background(), zaptest.NewLogger(t), db, []*Definition{droneDef, pairDef})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
