// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"strconv"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"skystore.io/skystore/pkg/schema"
)

// Linked implements the simple-resource surface for composite-key tables
// joining two simple resources. The payload carries the key columns as
// ordinary mandatory UUID fields plus any extra data columns.
type Linked[D any, P Ptr[D]] struct {
	log *zap.Logger
	db  *sql.DB
	def *schema.Definition
	mem *MemStore
}

// LinkedRow pairs a search hit with its composite key.
type LinkedRow[D any] struct {
	IDs    []IDField
	Object *D
}

// NewLinked constructs the engine for one linked resource.
func NewLinked[D any, P Ptr[D]](log *zap.Logger, db *sql.DB, def *schema.Definition, mem *MemStore) *Linked[D, P] {
	return &Linked[D, P]{log: log, db: db, def: def, mem: mem}
}

// Definition exposes the resource's schema metadata.
func (l *Linked[D, P]) Definition() *schema.Definition { return l.def }

// keyValues orders the supplied id fields by the definition's key columns.
func (l *Linked[D, P]) keyValues(ids []IDField) ([]string, error) {
	byField := make(map[string]string, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id.Value); err != nil {
			return nil, ErrMalformed.New("bad id for %q: %v", id.Field, err)
		}
		byField[id.Field] = id.Value
	}
	out := make([]string, 0, len(l.def.Keys))
	for _, key := range l.def.Keys {
		v, ok := byField[key]
		if !ok {
			return nil, ErrMalformed.New("missing key column %q for %q", key, l.def.Table)
		}
		out = append(out, v)
	}
	if len(ids) != len(l.def.Keys) {
		return nil, ErrMalformed.New("%q takes %d key columns, got %d", l.def.Table, len(l.def.Keys), len(ids))
	}
	return out, nil
}

func (l *Linked[D, P]) idFields(keyVals []string) []IDField {
	out := make([]IDField, 0, len(keyVals))
	for i, key := range l.def.Keys {
		out = append(out, IDField{Field: key, Value: keyVals[i]})
	}
	return out
}

func (l *Linked[D, P]) whereKeys(firstArg int) string {
	clause := ""
	for i, key := range l.def.Keys {
		if i > 0 {
			clause += " AND "
		}
		clause += quote(key) + " = $" + strconv.Itoa(firstArg+i)
	}
	return clause
}

// GetByIDs fetches the row matching every key column.
func (l *Linked[D, P]) GetByIDs(ctx context.Context, ids []IDField) (_ *D, err error) {
	defer mon.Task()(&ctx)(&err)

	keyVals, err := l.keyValues(ids)
	if err != nil {
		return nil, err
	}
	row, err := l.rowByKeys(ctx, keyVals)
	if err != nil {
		return nil, err
	}
	return decodePayload[D, P](row)
}

func (l *Linked[D, P]) rowByKeys(ctx context.Context, keyVals []string) (Row, error) {
	if l.db == nil {
		row, ok := l.mem.Get(keyVals...)
		if !ok {
			return nil, ErrNotFound.New("%s %v", l.def.Table, keyVals)
		}
		return row, nil
	}

	q := `SELECT ` + SelectColumns(l.def) + ` FROM ` + quote(l.def.Table) +
		` WHERE ` + l.whereKeys(1)
	args := make([]any, 0, len(keyVals))
	for _, v := range keyVals {
		args = append(args, v)
	}
	row, err := scanRow(l.def, l.db.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound.New("%s %v", l.def.Table, keyVals)
	}
	if err != nil {
		l.log.Error("get failed", zap.String("table", l.def.Table), zap.Error(err))
		return nil, ErrDatabase.Wrap(err)
	}
	return row, nil
}

// Insert validates and stores a row; the key columns come from the payload
// itself rather than being generated.
func (l *Linked[D, P]) Insert(ctx context.Context, data *D) (_ *D, _ ValidationResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if data == nil {
		return nil, ValidationResult{}, ErrMalformed.New("insert into %q with no data", l.def.Table)
	}
	vals, result, err := Validate(l.def, P(data))
	if err != nil {
		return nil, ValidationResult{}, err
	}
	if !result.Success {
		return nil, result, nil
	}

	keyVals := make([]string, 0, len(l.def.Keys))
	for _, key := range l.def.Keys {
		v, ok := vals[key]
		if !ok {
			return nil, ValidationResult{}, ErrSchema.New("payload for %q lacks key column %q", l.def.Table, key)
		}
		keyVals = append(keyVals, v.AsString())
	}

	if l.db == nil {
		if _, exists := l.mem.Get(keyVals...); exists {
			return nil, ValidationResult{}, ErrAlreadyExists.New("%s %v", l.def.Table, keyVals)
		}
		row := maps.Clone(vals)
		if l.def.HasField("created_at") {
			row["created_at"] = now()
		}
		if l.def.HasField("updated_at") {
			row["updated_at"] = now()
		}
		l.mem.Put(row, keyVals...)
		obj, err := decodePayload[D, P](row)
		return obj, result, err
	}

	stmt, err := InsertStatement(l.def, vals)
	if err != nil {
		return nil, ValidationResult{}, err
	}
	if _, err := l.db.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ValidationResult{}, ErrAlreadyExists.New("%s %v", l.def.Table, keyVals)
		}
		l.log.Error("insert failed", zap.String("table", l.def.Table), zap.Error(err))
		return nil, ValidationResult{}, ErrDatabase.Wrap(err)
	}
	row, err := l.rowByKeys(ctx, keyVals)
	if err != nil {
		return nil, ValidationResult{}, err
	}
	obj, err := decodePayload[D, P](row)
	return obj, result, err
}

// Update applies the payload's non-key columns to the row named by ids,
// restricted to the mask when one is present.
func (l *Linked[D, P]) Update(ctx context.Context, ids []IDField, data *D, mask []string) (_ *D, _ ValidationResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if data == nil {
		return nil, ValidationResult{}, ErrMalformed.New("update of %q with no data", l.def.Table)
	}
	keyVals, err := l.keyValues(ids)
	if err != nil {
		return nil, ValidationResult{}, err
	}
	if _, err := l.rowByKeys(ctx, keyVals); err != nil {
		return nil, ValidationResult{}, err
	}
	vals, result, err := Validate(l.def, P(data))
	if err != nil {
		return nil, ValidationResult{}, err
	}
	if !result.Success {
		return nil, result, nil
	}

	if l.db == nil {
		changes := maskValues(vals, mask)
		for _, key := range l.def.Keys {
			delete(changes, key)
		}
		if l.def.HasField("updated_at") {
			changes["updated_at"] = now()
		}
		if !l.mem.Merge(changes, keyVals...) {
			return nil, ValidationResult{}, ErrNotFound.New("%s %v", l.def.Table, keyVals)
		}
		row, err := l.rowByKeys(ctx, keyVals)
		if err != nil {
			return nil, ValidationResult{}, err
		}
		obj, err := decodePayload[D, P](row)
		return obj, result, err
	}

	keyArgs := make([]any, 0, len(keyVals))
	for _, v := range keyVals {
		keyArgs = append(keyArgs, v)
	}
	stmt, err := UpdateStatement(l.def, vals, mask, keyArgs)
	if err != nil {
		return nil, ValidationResult{}, err
	}
	res, err := l.db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		l.log.Error("update failed", zap.String("table", l.def.Table), zap.Error(err))
		return nil, ValidationResult{}, ErrDatabase.Wrap(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ValidationResult{}, ErrNotFound.New("%s %v", l.def.Table, keyVals)
	}
	row, err := l.rowByKeys(ctx, keyVals)
	if err != nil {
		return nil, ValidationResult{}, err
	}
	obj, err := decodePayload[D, P](row)
	return obj, result, err
}

// Delete removes (or archives) the row named by ids.
func (l *Linked[D, P]) Delete(ctx context.Context, ids []IDField) (err error) {
	defer mon.Task()(&ctx)(&err)

	keyVals, err := l.keyValues(ids)
	if err != nil {
		return err
	}

	if l.db == nil {
		row, ok := l.mem.Get(keyVals...)
		if !ok {
			return ErrNotFound.New("%s %v", l.def.Table, keyVals)
		}
		if !l.def.SoftDelete() {
			l.mem.Delete(keyVals...)
			return nil
		}
		if _, archived := row["deleted_at"]; archived {
			return ErrAlreadyArchived.New("%s %v", l.def.Table, keyVals)
		}
		l.mem.Merge(Row{"deleted_at": now()}, keyVals...)
		return nil
	}

	keyArgs := make([]any, 0, len(keyVals))
	for _, v := range keyVals {
		keyArgs = append(keyArgs, v)
	}
	if !l.def.SoftDelete() {
		q := `DELETE FROM ` + quote(l.def.Table) + ` WHERE ` + l.whereKeys(1)
		res, err := l.db.ExecContext(ctx, q, keyArgs...)
		if err != nil {
			l.log.Error("delete failed", zap.String("table", l.def.Table), zap.Error(err))
			return ErrDatabase.Wrap(err)
		}
		if n, err := res.RowsAffected(); err == nil && n != 1 {
			return ErrNotFound.New("%s %v", l.def.Table, keyVals)
		}
		return nil
	}

	q := `UPDATE ` + quote(l.def.Table) + ` SET "deleted_at" = NOW()` +
		` WHERE ` + l.whereKeys(1) + ` AND "deleted_at" IS NULL`
	res, err := l.db.ExecContext(ctx, q, keyArgs...)
	if err != nil {
		l.log.Error("archive failed", zap.String("table", l.def.Table), zap.Error(err))
		return ErrDatabase.Wrap(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 1 {
		return nil
	}
	row, err := l.rowByKeys(ctx, keyVals)
	if err != nil {
		return err
	}
	if _, archived := row["deleted_at"]; archived {
		return ErrAlreadyArchived.New("%s %v", l.def.Table, keyVals)
	}
	return ErrDatabase.New("archive of %s %v affected no rows", l.def.Table, keyVals)
}

// Search compiles and runs an advanced filter, splitting every hit into its
// composite key and payload.
func (l *Linked[D, P]) Search(ctx context.Context, filter *SearchFilter) (_ []LinkedRow[D], err error) {
	defer mon.Task()(&ctx)(&err)

	if filter == nil {
		filter = &SearchFilter{}
	}

	var rows []Row
	if l.db == nil {
		rows, err = evalSearch(l.log, l.def, filter, l.mem.List())
	} else {
		rows, err = l.searchDB(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	out := make([]LinkedRow[D], 0, len(rows))
	for _, row := range rows {
		keyVals := make([]string, 0, len(l.def.Keys))
		for _, key := range l.def.Keys {
			keyVals = append(keyVals, row[key].AsString())
		}
		obj, err := decodePayload[D, P](row)
		if err != nil {
			return nil, err
		}
		out = append(out, LinkedRow[D]{IDs: l.idFields(keyVals), Object: obj})
	}
	return out, nil
}

func (l *Linked[D, P]) searchDB(ctx context.Context, filter *SearchFilter) (_ []Row, err error) {
	stmt, err := CompileSearch(l.log, l.def, filter)
	if err != nil {
		return nil, err
	}
	rows, err := l.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		l.log.Error("search failed", zap.String("table", l.def.Table), zap.Error(err))
		return nil, ErrDatabase.Wrap(err)
	}
	defer func() { err = errs.Combine(err, rows.Close()) }()

	var out []Row
	for rows.Next() {
		row, err := scanRow(l.def, rows)
		if err != nil {
			return nil, ErrDatabase.Wrap(err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, ErrDatabase.Wrap(err)
	}
	return out, nil
}

// IsReady mirrors Simple.IsReady.
func (l *Linked[D, P]) IsReady(ctx context.Context) bool {
	if l.db == nil {
		return true
	}
	return l.db.PingContext(ctx) == nil
}
