// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/geo"
)

func robotRows() []Row {
	rows := make([]Row, 0, 5)
	for i, name := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		row := Row{
			"robot_id": fieldvalue.String("00000000-0000-0000-0000-00000000000" + strconv.Itoa(i)),
			"name":     fieldvalue.String(name),
			"speed":    fieldvalue.I64(int64(10 * (i + 1))),
		}
		rows = append(rows, row)
	}
	// bravo is archived
	rows[1]["deleted_at"] = fieldvalue.Timestamp(time.Now())
	// charlie sits inside the test square
	rows[2]["location"] = fieldvalue.PointZ(geo.PointZ{X: 5, Y: 5, Z: 0})
	return rows
}

func TestEvalSearchNoFiltersReturnsAll(t *testing.T) {
	log := zaptest.NewLogger(t)
	out, err := evalSearch(log, robotDef, &SearchFilter{}, robotRows())
	require.NoError(t, err)
	require.Len(t, out, 5)
}

func TestEvalSearchAndRestricts(t *testing.T) {
	log := zaptest.NewLogger(t)
	filter := &SearchFilter{Filters: []FilterOption{
		{Field: "speed", Predicate: GreaterOrEqual, Values: []string{"30"}},
		{Field: "deleted_at", Predicate: IsNull},
	}}
	out, err := evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Len(t, out, 3) // charlie, delta, echo
}

func TestEvalSearchOrUnions(t *testing.T) {
	log := zaptest.NewLogger(t)
	or := Or
	filter := &SearchFilter{Filters: []FilterOption{
		{Field: "name", Predicate: Equals, Values: []string{"alpha"}},
		{Field: "name", Predicate: Equals, Values: []string{"echo"}, Comparison: &or},
	}}
	out, err := evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestEvalSearchBetween(t *testing.T) {
	log := zaptest.NewLogger(t)
	filter := &SearchFilter{Filters: []FilterOption{
		{Field: "speed", Predicate: Between, Values: []string{"20", "40"}},
	}}
	out, err := evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Len(t, out, 3)
}

func TestEvalSearchLike(t *testing.T) {
	log := zaptest.NewLogger(t)
	filter := &SearchFilter{Filters: []FilterOption{
		{Field: "name", Predicate: Ilike, Values: []string{"%L%"}},
	}}
	out, err := evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Len(t, out, 3) // alpha, charlie, delta

	filter.Filters[0].Predicate = Like
	out, err = evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestEvalSearchInAndNotIn(t *testing.T) {
	log := zaptest.NewLogger(t)
	filter := &SearchFilter{Filters: []FilterOption{
		{Field: "name", Predicate: In, Values: []string{"alpha", "echo"}},
	}}
	out, err := evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Len(t, out, 2)

	filter.Filters[0].Predicate = NotIn
	out, err = evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Len(t, out, 3)
}

func TestEvalSearchGeo(t *testing.T) {
	log := zaptest.NewLogger(t)
	filter := &SearchFilter{Filters: []FilterOption{
		{Field: "location", Predicate: GeoIntersect,
			Values: []string{"POLYGONZ((0 0 0,10 0 0,10 10 0,0 10 0,0 0 0))"}},
	}}
	out, err := evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "charlie", out[0]["name"].AsString())

	// rows without the column never match
	filter.Filters[0].Predicate = GeoDisjoint
	out, err = evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestEvalSearchSortAndPage(t *testing.T) {
	log := zaptest.NewLogger(t)
	filter := &SearchFilter{
		OrderBy:        []SortOption{{Field: "speed", Order: Desc}},
		PageNumber:     1,
		ResultsPerPage: 2,
	}
	out, err := evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "echo", out[0]["name"].AsString())
	require.Equal(t, "delta", out[1]["name"].AsString())

	// page past the end is empty, not an error
	filter.PageNumber = 9
	out, err = evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Empty(t, out)

	// short last page
	filter.PageNumber = 3
	out, err = evalSearch(log, robotDef, filter, robotRows())
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestEvalSearchBoolOrdering(t *testing.T) {
	log := zaptest.NewLogger(t)
	rows := []Row{
		{"leader_id": fieldvalue.String("a"), "scout_id": fieldvalue.String("b"), "completed": fieldvalue.Bool(false)},
		{"leader_id": fieldvalue.String("c"), "scout_id": fieldvalue.String("d"), "completed": fieldvalue.Bool(true)},
	}

	// false < true, as in Postgres
	out, err := evalSearch(log, missionDef, &SearchFilter{Filters: []FilterOption{
		{Field: "completed", Predicate: Greater, Values: []string{"false"}},
	}}, rows)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.True(t, out[0]["completed"].AsBool())

	out, err = evalSearch(log, missionDef, &SearchFilter{Filters: []FilterOption{
		{Field: "completed", Predicate: Less, Values: []string{"true"}},
	}}, rows)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.False(t, out[0]["completed"].AsBool())

	out, err = evalSearch(log, missionDef, &SearchFilter{Filters: []FilterOption{
		{Field: "completed", Predicate: Greater, Values: []string{"true"}},
	}}, rows)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestEvalSearchUnknownFieldFails(t *testing.T) {
	log := zaptest.NewLogger(t)
	filter := &SearchFilter{Filters: []FilterOption{
		{Field: "bogus", Predicate: Equals, Values: []string{"x"}},
	}}
	_, err := evalSearch(log, robotDef, filter, robotRows())
	require.True(t, ErrSchema.Has(err))
}
