// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/geo"
)

func TestInsertStatement(t *testing.T) {
	vals := Row{
		"name":  fieldvalue.String("scout-1"),
		"speed": fieldvalue.I64(40),
	}
	stmt, err := InsertStatement(robotDef, vals)
	require.NoError(t, err)
	require.Equal(t,
		`INSERT INTO "robot" ("name", "speed") VALUES ($1, $2) RETURNING "robot_id"`,
		stmt.SQL)
	require.Equal(t, []any{"scout-1", int64(40)}, stmt.Args)
}

func TestInsertStatementInlinesGeometry(t *testing.T) {
	vals := Row{
		"name":     fieldvalue.String("scout-2"),
		"speed":    fieldvalue.I64(10),
		"location": fieldvalue.PointZ(geo.PointZ{X: 1, Y: 2, Z: 3}),
	}
	stmt, err := InsertStatement(robotDef, vals)
	require.NoError(t, err)
	// geometry is a literal, not a placeholder, so only two args bind
	require.Contains(t, stmt.SQL, `ST_GeomFromText('POINTZ(`)
	require.Contains(t, stmt.SQL, `', 4326)`)
	require.Len(t, stmt.Args, 2)
}

func TestInsertStatementCompositeKeysFromPayload(t *testing.T) {
	vals := Row{
		"leader_id": fieldvalue.String("3fa3a45a-3851-4d06-92f6-1648a7610ac2"),
		"scout_id":  fieldvalue.String("6edbb9bb-84d2-4d24-b57f-41b0ef7f0b4e"),
		"completed": fieldvalue.Bool(false),
	}
	stmt, err := InsertStatement(missionDef, vals)
	require.NoError(t, err)
	require.Equal(t,
		`INSERT INTO "mission" ("leader_id", "scout_id", "completed") VALUES ($1, $2, $3)`,
		stmt.SQL)
}

func TestInsertStatementEmpty(t *testing.T) {
	_, err := InsertStatement(robotDef, Row{})
	require.True(t, ErrMalformed.Has(err))
}

func TestUpdateStatement(t *testing.T) {
	vals := Row{
		"name":  fieldvalue.String("renamed"),
		"speed": fieldvalue.I64(55),
	}
	stmt, err := UpdateStatement(robotDef, vals, nil, []any{"some-key"})
	require.NoError(t, err)
	require.Equal(t,
		`UPDATE "robot" SET "name" = $1, "speed" = $2, "updated_at" = CURRENT_TIMESTAMP WHERE "robot_id" = $3`,
		stmt.SQL)
	require.Equal(t, []any{"renamed", int64(55), "some-key"}, stmt.Args)
}

func TestUpdateStatementMask(t *testing.T) {
	vals := Row{
		"name":  fieldvalue.String("renamed"),
		"speed": fieldvalue.I64(55),
	}
	stmt, err := UpdateStatement(robotDef, vals, []string{"speed"}, []any{"some-key"})
	require.NoError(t, err)
	require.NotContains(t, stmt.SQL, `"name"`)
	require.Contains(t, stmt.SQL, `"speed" = $1`)

	// dotted paths collapse to their leaf column
	stmt, err = UpdateStatement(robotDef, vals, []string{"robot.data.speed"}, []any{"some-key"})
	require.NoError(t, err)
	require.Contains(t, stmt.SQL, `"speed" = $1`)
	require.NotContains(t, stmt.SQL, `"name"`)
}

func TestUpdateStatementNeverTouchesKeys(t *testing.T) {
	vals := Row{
		"leader_id": fieldvalue.String("3fa3a45a-3851-4d06-92f6-1648a7610ac2"),
		"scout_id":  fieldvalue.String("6edbb9bb-84d2-4d24-b57f-41b0ef7f0b4e"),
		"completed": fieldvalue.Bool(true),
	}
	stmt, err := UpdateStatement(missionDef, vals, nil, []any{"a", "b"})
	require.NoError(t, err)
	require.Equal(t,
		`UPDATE "mission" SET "completed" = $1, "updated_at" = CURRENT_TIMESTAMP WHERE "leader_id" = $2 AND "scout_id" = $3`,
		stmt.SQL)
}

func TestSelectColumns(t *testing.T) {
	cols := SelectColumns(robotDef)
	require.Equal(t,
		`"robot_id", "name", "speed", "notes", "born", ST_AsText("location") AS "location", "created_at", "updated_at", "deleted_at"`,
		cols)

	// composite keys come first, without repeating as fields
	require.Equal(t,
		`"leader_id", "scout_id", "completed", "created_at", "updated_at"`,
		SelectColumns(missionDef))
}

func TestSqlArgTimestampUTC(t *testing.T) {
	loc := time.FixedZone("PST", -8*3600)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, loc)
	arg, err := sqlArg(robotDef.Fields[3], fieldvalue.Timestamp(at))
	require.NoError(t, err)
	require.Equal(t, at.UTC(), arg)
}
