// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCompileSearchEmptyFilter(t *testing.T) {
	log := zaptest.NewLogger(t)
	stmt, err := CompileSearch(log, robotDef, &SearchFilter{})
	require.NoError(t, err)
	require.Equal(t, `SELECT `+SelectColumns(robotDef)+` FROM "robot"`, stmt.SQL)
	require.Empty(t, stmt.Args)
}

func TestCompileSearchChaining(t *testing.T) {
	log := zaptest.NewLogger(t)
	or := Or
	filter := &SearchFilter{
		Filters: []FilterOption{
			{Field: "speed", Predicate: Greater, Values: []string{"10"}},
			{Field: "name", Predicate: Ilike, Values: []string{"scout%"}, Comparison: &or},
			{Field: "deleted_at", Predicate: IsNull},
		},
	}
	stmt, err := CompileSearch(log, robotDef, filter)
	require.NoError(t, err)
	require.Contains(t, stmt.SQL, `WHERE "speed" > $1 OR "name"::text ILIKE $2 AND "deleted_at" IS NULL`)
	require.Equal(t, []any{int64(10), "scout%"}, stmt.Args)
}

func TestCompileSearchPaging(t *testing.T) {
	log := zaptest.NewLogger(t)
	stmt, err := CompileSearch(log, robotDef, &SearchFilter{PageNumber: 3, ResultsPerPage: 25})
	require.NoError(t, err)
	// limits are literals, not placeholders
	require.Contains(t, stmt.SQL, " LIMIT 25 OFFSET 50")
	require.Empty(t, stmt.Args)

	// no page requested means no clause at all
	stmt, err = CompileSearch(log, robotDef, &SearchFilter{ResultsPerPage: -1})
	require.NoError(t, err)
	require.NotContains(t, stmt.SQL, "LIMIT")
}

func TestCompileSearchSortDropsUnknown(t *testing.T) {
	log := zaptest.NewLogger(t)
	filter := &SearchFilter{OrderBy: []SortOption{
		{Field: "bogus", Order: Asc},
		{Field: "speed", Order: Desc},
	}}
	stmt, err := CompileSearch(log, robotDef, filter)
	require.NoError(t, err)
	require.Contains(t, stmt.SQL, ` ORDER BY "speed" DESC`)
	require.NotContains(t, stmt.SQL, "bogus")
}

func TestCompileSearchBetween(t *testing.T) {
	log := zaptest.NewLogger(t)
	filter := &SearchFilter{Filters: []FilterOption{
		{Field: "speed", Predicate: Between, Values: []string{"10", "20"}},
	}}
	stmt, err := CompileSearch(log, robotDef, filter)
	require.NoError(t, err)
	require.Contains(t, stmt.SQL, `"speed" BETWEEN $1 AND $2`)

	filter.Filters[0].Values = []string{"10"}
	_, err = CompileSearch(log, robotDef, filter)
	require.True(t, ErrSchema.Has(err))
}

func TestCompileSearchGeo(t *testing.T) {
	log := zaptest.NewLogger(t)
	filter := &SearchFilter{Filters: []FilterOption{
		{Field: "location", Predicate: GeoIntersect, Values: []string{"POINTZ(1 2 3)"}},
	}}
	stmt, err := CompileSearch(log, robotDef, filter)
	require.NoError(t, err)
	require.Contains(t, stmt.SQL, `st_intersect(st_geomfromtext($1), "location")`)

	// geo predicates demand a geometry column and parseable wkt
	filter.Filters[0].Field = "name"
	_, err = CompileSearch(log, robotDef, filter)
	require.True(t, ErrSchema.Has(err))

	filter.Filters[0].Field = "location"
	filter.Filters[0].Values = []string{"garbage"}
	_, err = CompileSearch(log, robotDef, filter)
	require.True(t, ErrSchema.Has(err))
}

func TestCompileSearchTypeChecksValues(t *testing.T) {
	log := zaptest.NewLogger(t)
	for _, f := range []FilterOption{
		{Field: "speed", Predicate: Equals, Values: []string{"fast"}},
		{Field: "robot_id", Predicate: Equals, Values: []string{"nope"}},
		{Field: "born", Predicate: Less, Values: []string{"yesterday"}},
		{Field: "missing", Predicate: Equals, Values: []string{"1"}},
	} {
		_, err := CompileSearch(log, robotDef, &SearchFilter{Filters: []FilterOption{f}})
		require.True(t, ErrSchema.Has(err), "filter on %q", f.Field)
	}
}

func TestCompileSearchIn(t *testing.T) {
	log := zaptest.NewLogger(t)
	filter := &SearchFilter{Filters: []FilterOption{
		{Field: "name", Predicate: In, Values: []string{"a", "b", "c"}},
	}}
	stmt, err := CompileSearch(log, robotDef, filter)
	require.NoError(t, err)
	require.Contains(t, stmt.SQL, `"name" IN ($1,$2,$3)`)
	require.Len(t, stmt.Args, 3)
}
