// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newMemMissions(t *testing.T) *Linked[mission, *mission] {
	return NewLinked[mission, *mission](zaptest.NewLogger(t), nil, missionDef, NewMemStore())
}

func missionIDs(leader, scout string) []IDField {
	return []IDField{
		{Field: "scout_id", Value: scout},
		{Field: "leader_id", Value: leader},
	}
}

func TestLinkedInsertAndGet(t *testing.T) {
	ctx := context.Background()
	missions := newMemMissions(t)
	leader, scout := uuid.New().String(), uuid.New().String()

	obj, result, err := missions.Insert(ctx, &mission{LeaderID: leader, ScoutID: scout})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, leader, obj.LeaderID)

	// id fields arrive in any order
	got, err := missions.GetByIDs(ctx, missionIDs(leader, scout))
	require.NoError(t, err)
	require.Equal(t, scout, got.ScoutID)
	require.False(t, got.Completed)
}

func TestLinkedInsertDuplicateKey(t *testing.T) {
	ctx := context.Background()
	missions := newMemMissions(t)
	leader, scout := uuid.New().String(), uuid.New().String()

	_, result, err := missions.Insert(ctx, &mission{LeaderID: leader, ScoutID: scout})
	require.NoError(t, err)
	require.True(t, result.Success)

	// a second insert with the same pair refuses instead of overwriting
	_, _, err = missions.Insert(ctx, &mission{LeaderID: leader, ScoutID: scout, Completed: true})
	require.True(t, ErrAlreadyExists.Has(err))

	got, err := missions.GetByIDs(ctx, missionIDs(leader, scout))
	require.NoError(t, err)
	require.False(t, got.Completed)
}

func TestLinkedInsertDuplicateKeyQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	missions := NewLinked[mission, *mission](zaptest.NewLogger(t), db, missionDef, nil)
	leader, scout := uuid.New().String(), uuid.New().String()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "mission"`)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	_, _, err = missions.Insert(context.Background(), &mission{LeaderID: leader, ScoutID: scout})
	require.True(t, ErrAlreadyExists.Has(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLinkedKeyShapeErrors(t *testing.T) {
	ctx := context.Background()
	missions := newMemMissions(t)

	// missing key column
	_, err := missions.GetByIDs(ctx, []IDField{{Field: "leader_id", Value: uuid.New().String()}})
	require.True(t, ErrMalformed.Has(err))

	// unparseable id
	_, err = missions.GetByIDs(ctx, []IDField{
		{Field: "leader_id", Value: "nope"},
		{Field: "scout_id", Value: uuid.New().String()},
	})
	require.True(t, ErrMalformed.Has(err))

	// stray extra field
	_, err = missions.GetByIDs(ctx, append(missionIDs(uuid.New().String(), uuid.New().String()),
		IDField{Field: "third_id", Value: uuid.New().String()}))
	require.True(t, ErrMalformed.Has(err))
}

func TestLinkedUpdateKeepsKeys(t *testing.T) {
	ctx := context.Background()
	missions := newMemMissions(t)
	leader, scout := uuid.New().String(), uuid.New().String()

	_, _, err := missions.Insert(ctx, &mission{LeaderID: leader, ScoutID: scout})
	require.NoError(t, err)

	// the payload's key columns are ignored in favor of the addressed row
	obj, result, err := missions.Update(ctx, missionIDs(leader, scout),
		&mission{LeaderID: uuid.New().String(), ScoutID: uuid.New().String(), Completed: true}, []string{"completed"})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.True(t, obj.Completed)
	require.Equal(t, leader, obj.LeaderID)
	require.Equal(t, scout, obj.ScoutID)
}

func TestLinkedHardDelete(t *testing.T) {
	ctx := context.Background()
	missions := newMemMissions(t)
	leader, scout := uuid.New().String(), uuid.New().String()

	_, _, err := missions.Insert(ctx, &mission{LeaderID: leader, ScoutID: scout})
	require.NoError(t, err)

	require.NoError(t, missions.Delete(ctx, missionIDs(leader, scout)))

	_, err = missions.GetByIDs(ctx, missionIDs(leader, scout))
	require.True(t, ErrNotFound.Has(err))

	err = missions.Delete(ctx, missionIDs(leader, scout))
	require.True(t, ErrNotFound.Has(err))
}

func TestLinkedSearchSplitsKeys(t *testing.T) {
	ctx := context.Background()
	missions := newMemMissions(t)
	leader := uuid.New().String()

	for i := 0; i < 3; i++ {
		_, _, err := missions.Insert(ctx, &mission{LeaderID: leader, ScoutID: uuid.New().String()})
		require.NoError(t, err)
	}
	_, _, err := missions.Insert(ctx, &mission{LeaderID: uuid.New().String(), ScoutID: uuid.New().String(), Completed: true})
	require.NoError(t, err)

	rows, err := missions.Search(ctx, &SearchFilter{Filters: []FilterOption{
		{Field: "leader_id", Predicate: Equals, Values: []string{leader}},
	}})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		require.Len(t, row.IDs, 2)
		require.Equal(t, "leader_id", row.IDs[0].Field)
		require.Equal(t, leader, row.IDs[0].Value)
		require.False(t, row.Object.Completed)
	}
}
