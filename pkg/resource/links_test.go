// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"skystore.io/skystore/pkg/schema"
)

var crewDef = schema.NewDefinition(schema.Definition{
	Table: "robot_crew",
	Keys:  []string{"robot_id", "crew_id"},
	Fields: []schema.Field{
		{Name: "robot_id", Type: schema.UUID, Mandatory: true},
		{Name: "crew_id", Type: schema.UUID, Mandatory: true},
	},
})

type linkFixture struct {
	robots *Simple[robot, *robot]
	crews  *Simple[robot, *robot]
	table  *LinkTable
}

func newLinkFixture(t *testing.T) *linkFixture {
	log := zaptest.NewLogger(t)
	robots := NewSimple[robot, *robot](log, nil, robotDef, NewMemStore())
	crews := NewSimple[robot, *robot](log, nil, robotDef, NewMemStore())
	table := NewLinkTable(log, nil, crewDef, robotDef, robotDef, NewLinkStore(), robots.Mem())
	// the B side shares the crews store for GetLinked resolution
	return &linkFixture{robots: robots, crews: crews, table: table}
}

func TestLinkUnknownA(t *testing.T) {
	ctx := context.Background()
	f := newLinkFixture(t)

	err := f.table.Link(ctx, uuid.New(), []uuid.UUID{uuid.New()})
	require.True(t, ErrNotFound.Has(err))
}

func TestLinkIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newLinkFixture(t)

	a, _, _, err := f.robots.Insert(ctx, &robot{Name: "lead", Speed: 1})
	require.NoError(t, err)
	b := uuid.New()

	require.NoError(t, f.table.Link(ctx, a, []uuid.UUID{b}))
	require.NoError(t, f.table.Link(ctx, a, []uuid.UUID{b}))

	ids, err := f.table.GetLinkedIDs(ctx, a)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{b}, ids)
}

func TestReplaceLinked(t *testing.T) {
	ctx := context.Background()
	f := newLinkFixture(t)

	a, _, _, err := f.robots.Insert(ctx, &robot{Name: "lead", Speed: 1})
	require.NoError(t, err)
	b1, b2, b3 := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, f.table.Link(ctx, a, []uuid.UUID{b1, b2}))
	require.NoError(t, f.table.ReplaceLinked(ctx, a, []uuid.UUID{b3}))

	ids, err := f.table.GetLinkedIDs(ctx, a)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{b3}, ids)
}

func TestUnlink(t *testing.T) {
	ctx := context.Background()
	f := newLinkFixture(t)

	a, _, _, err := f.robots.Insert(ctx, &robot{Name: "lead", Speed: 1})
	require.NoError(t, err)

	require.NoError(t, f.table.Link(ctx, a, []uuid.UUID{uuid.New(), uuid.New()}))
	require.NoError(t, f.table.Unlink(ctx, a))

	ids, err := f.table.GetLinkedIDs(ctx, a)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestGetLinkedExcludesArchived(t *testing.T) {
	ctx := context.Background()
	f := newLinkFixture(t)

	a, _, _, err := f.robots.Insert(ctx, &robot{Name: "lead", Speed: 1})
	require.NoError(t, err)

	b1, _, _, err := f.crews.Insert(ctx, &robot{Name: "crew-1", Speed: 2})
	require.NoError(t, err)
	b2, _, _, err := f.crews.Insert(ctx, &robot{Name: "crew-2", Speed: 3})
	require.NoError(t, err)
	require.NoError(t, f.crews.Delete(ctx, b2))

	require.NoError(t, f.table.Link(ctx, a, []uuid.UUID{b1, b2}))

	rows, err := GetLinked(ctx, f.table, f.crews, a)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, b1, rows[0].ID)
	require.Equal(t, "crew-1", rows[0].Object.Name)
}

func TestGetLinkedEmpty(t *testing.T) {
	ctx := context.Background()
	f := newLinkFixture(t)

	a, _, _, err := f.robots.Insert(ctx, &robot{Name: "lead", Speed: 1})
	require.NoError(t, err)

	rows, err := GetLinked(ctx, f.table, f.crews, a)
	require.NoError(t, err)
	require.Empty(t, rows)
}
