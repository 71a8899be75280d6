// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"skystore.io/skystore/pkg/schema"
)

// LinkTable operates on a pure join table between two simple resources:
// two key columns, a uniqueness constraint over the pair, no payload.
type LinkTable struct {
	log  *zap.Logger
	db   *sql.DB
	def  *schema.Definition
	aDef *schema.Definition
	bDef *schema.Definition
	mem  *LinkStore
	aMem *MemStore
}

// NewLinkTable constructs the engine for one join table. aDef/bDef describe
// the joined resources; aMem backs the A-side existence check in memory
// mode.
func NewLinkTable(log *zap.Logger, db *sql.DB, def, aDef, bDef *schema.Definition, mem *LinkStore, aMem *MemStore) *LinkTable {
	return &LinkTable{log: log, db: db, def: def, aDef: aDef, bDef: bDef, mem: mem, aMem: aMem}
}

// Definition exposes the join table's schema metadata.
func (t *LinkTable) Definition() *schema.Definition { return t.def }

// BDefinition exposes the B-side resource definition, used when resolving
// linked objects.
func (t *LinkTable) BDefinition() *schema.Definition { return t.bDef }

func (t *LinkTable) aColumn() string { return t.def.Keys[0] }
func (t *LinkTable) bColumn() string { return t.def.Keys[1] }

// ensureA verifies the A-side row exists.
func (t *LinkTable) ensureA(ctx context.Context, a uuid.UUID) error {
	if t.db == nil {
		if _, ok := t.aMem.Get(a.String()); !ok {
			return ErrNotFound.New("%s %q", t.aDef.Table, a)
		}
		return nil
	}
	q := `SELECT 1 FROM ` + quote(t.aDef.Table) + ` WHERE ` + quote(t.aDef.Keys[0]) + ` = $1`
	var one int
	err := t.db.QueryRowContext(ctx, q, a.String()).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrNotFound.New("%s %q", t.aDef.Table, a)
	}
	if err != nil {
		return ErrDatabase.Wrap(err)
	}
	return nil
}

// Link adds the given B ids to A's link set. Pairs already present are left
// alone; the operation is idempotent.
func (t *LinkTable) Link(ctx context.Context, a uuid.UUID, bs []uuid.UUID) (err error) {
	defer mon.Task()(&ctx)(&err)

	if err := t.ensureA(ctx, a); err != nil {
		return err
	}

	if t.db == nil {
		t.mem.Link(a.String(), uuidStrings(bs))
		return nil
	}

	q := `INSERT INTO ` + quote(t.def.Table) +
		` (` + quote(t.aColumn()) + `, ` + quote(t.bColumn()) + `) VALUES ($1, $2)` +
		` ON CONFLICT DO NOTHING`
	for _, b := range bs {
		if _, err := t.db.ExecContext(ctx, q, a.String(), b.String()); err != nil {
			t.log.Error("link failed", zap.String("table", t.def.Table), zap.Error(err))
			return ErrDatabase.Wrap(err)
		}
	}
	return nil
}

// ReplaceLinked atomically swaps A's link set for exactly the given ids.
func (t *LinkTable) ReplaceLinked(ctx context.Context, a uuid.UUID, bs []uuid.UUID) (err error) {
	defer mon.Task()(&ctx)(&err)

	if err := t.ensureA(ctx, a); err != nil {
		return err
	}

	if t.db == nil {
		t.mem.Replace(a.String(), uuidStrings(bs))
		return nil
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return ErrDatabase.Wrap(err)
	}
	defer func() {
		if err != nil {
			err = errs.Combine(err, tx.Rollback())
		}
	}()

	del := `DELETE FROM ` + quote(t.def.Table) + ` WHERE ` + quote(t.aColumn()) + ` = $1`
	if _, err = tx.ExecContext(ctx, del, a.String()); err != nil {
		return ErrDatabase.Wrap(err)
	}
	ins := `INSERT INTO ` + quote(t.def.Table) +
		` (` + quote(t.aColumn()) + `, ` + quote(t.bColumn()) + `) VALUES ($1, $2)` +
		` ON CONFLICT DO NOTHING`
	for _, b := range bs {
		if _, err = tx.ExecContext(ctx, ins, a.String(), b.String()); err != nil {
			return ErrDatabase.Wrap(err)
		}
	}
	if err = tx.Commit(); err != nil {
		return ErrDatabase.Wrap(err)
	}
	return nil
}

// Unlink removes every link from A.
func (t *LinkTable) Unlink(ctx context.Context, a uuid.UUID) (err error) {
	defer mon.Task()(&ctx)(&err)

	if err := t.ensureA(ctx, a); err != nil {
		return err
	}

	if t.db == nil {
		t.mem.Unlink(a.String())
		return nil
	}
	q := `DELETE FROM ` + quote(t.def.Table) + ` WHERE ` + quote(t.aColumn()) + ` = $1`
	if _, err := t.db.ExecContext(ctx, q, a.String()); err != nil {
		t.log.Error("unlink failed", zap.String("table", t.def.Table), zap.Error(err))
		return ErrDatabase.Wrap(err)
	}
	return nil
}

// GetLinkedIDs returns the B ids currently linked to A.
func (t *LinkTable) GetLinkedIDs(ctx context.Context, a uuid.UUID) (_ []uuid.UUID, err error) {
	defer mon.Task()(&ctx)(&err)

	if err := t.ensureA(ctx, a); err != nil {
		return nil, err
	}

	if t.db == nil {
		var out []uuid.UUID
		for _, b := range t.mem.Linked(a.String()) {
			id, err := uuid.Parse(b)
			if err != nil {
				return nil, Error.Wrap(err)
			}
			out = append(out, id)
		}
		return out, nil
	}

	q := `SELECT ` + quote(t.bColumn()) + ` FROM ` + quote(t.def.Table) +
		` WHERE ` + quote(t.aColumn()) + ` = $1`
	rows, err := t.db.QueryContext(ctx, q, a.String())
	if err != nil {
		t.log.Error("get linked ids failed", zap.String("table", t.def.Table), zap.Error(err))
		return nil, ErrDatabase.Wrap(err)
	}
	defer func() { err = errs.Combine(err, rows.Close()) }()

	var out []uuid.UUID
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, ErrDatabase.Wrap(err)
		}
		id, err := uuid.Parse(text)
		if err != nil {
			return nil, ErrDatabase.Wrap(err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, ErrDatabase.Wrap(err)
	}
	return out, nil
}

// GetLinked resolves A's linked ids into B objects through the B-side
// engine. When B soft-deletes, archived rows are excluded.
func GetLinked[B any, PB Ptr[B]](ctx context.Context, t *LinkTable, b *Simple[B, PB], a uuid.UUID) (_ []SimpleRow[B], err error) {
	defer mon.Task()(&ctx)(&err)

	ids, err := t.GetLinkedIDs(ctx, a)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	and := And
	filter := &SearchFilter{
		Filters: []FilterOption{{
			Field:     t.bDef.Keys[0],
			Values:    uuidStrings(ids),
			Predicate: In,
		}},
		ResultsPerPage: -1,
	}
	if t.bDef.SoftDelete() {
		filter.Filters = append(filter.Filters, FilterOption{
			Field:      "deleted_at",
			Predicate:  IsNull,
			Comparison: &and,
		})
	}
	return b.Search(ctx, filter)
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// IsReady mirrors Simple.IsReady.
func (t *LinkTable) IsReady(ctx context.Context) bool {
	if t.db == nil {
		return true
	}
	return t.db.PingContext(ctx) == nil
}
