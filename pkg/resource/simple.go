// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"context"
	"database/sql"
	"errors"
	"maps"

	"github.com/google/uuid"
	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/schema"
)

// Simple implements get/insert/update/delete/search for a single-key
// resource. With a nil db it serves from the in-memory store instead.
type Simple[D any, P Ptr[D]] struct {
	log *zap.Logger
	db  *sql.DB
	def *schema.Definition
	mem *MemStore
}

// SimpleRow pairs a search hit with its key.
type SimpleRow[D any] struct {
	ID     uuid.UUID
	Object *D
}

// NewSimple constructs the engine for one resource. mem is the explicit
// fallback store; it is only consulted when db is nil.
func NewSimple[D any, P Ptr[D]](log *zap.Logger, db *sql.DB, def *schema.Definition, mem *MemStore) *Simple[D, P] {
	return &Simple[D, P]{log: log, db: db, def: def, mem: mem}
}

// Definition exposes the resource's schema metadata.
func (s *Simple[D, P]) Definition() *schema.Definition { return s.def }

// Mem exposes the fallback store, nil when a database is attached. Link
// tables use it for their existence checks.
func (s *Simple[D, P]) Mem() *MemStore { return s.mem }

func decodePayload[D any, P Ptr[D]](row Row) (*D, error) {
	d := new(D)
	if err := P(d).DecodeRow(row); err != nil {
		return nil, ErrSchema.Wrap(err)
	}
	return d, nil
}

// GetByID fetches one row by key.
func (s *Simple[D, P]) GetByID(ctx context.Context, id uuid.UUID) (_ *D, err error) {
	defer mon.Task()(&ctx)(&err)

	row, err := s.rowByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodePayload[D, P](row)
}

func (s *Simple[D, P]) rowByID(ctx context.Context, id uuid.UUID) (Row, error) {
	if s.db == nil {
		row, ok := s.mem.Get(id.String())
		if !ok {
			return nil, ErrNotFound.New("%s %q", s.def.Table, id)
		}
		return row, nil
	}

	q := `SELECT ` + SelectColumns(s.def) + ` FROM ` + quote(s.def.Table) +
		` WHERE ` + quote(s.def.Keys[0]) + ` = $1`
	row, err := scanRow(s.def, s.db.QueryRowContext(ctx, q, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound.New("%s %q", s.def.Table, id)
	}
	if err != nil {
		s.log.Error("get failed", zap.String("table", s.def.Table), zap.Error(err))
		return nil, ErrDatabase.Wrap(err)
	}
	return row, nil
}

// Insert validates the payload and stores a new row under a fresh UUID.
// A failed validation is returned in the result, not as an error.
func (s *Simple[D, P]) Insert(ctx context.Context, data *D) (id uuid.UUID, _ *D, _ ValidationResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if data == nil {
		return uuid.Nil, nil, ValidationResult{}, ErrMalformed.New("insert into %q with no data", s.def.Table)
	}
	vals, result, err := Validate(s.def, P(data))
	if err != nil {
		return uuid.Nil, nil, ValidationResult{}, err
	}
	if !result.Success {
		return uuid.Nil, nil, result, nil
	}

	if s.db == nil {
		id = uuid.New()
		row := maps.Clone(vals)
		row[s.def.Keys[0]] = fieldvalue.String(id.String())
		if s.def.HasField("created_at") {
			row["created_at"] = now()
		}
		if s.def.HasField("updated_at") {
			row["updated_at"] = now()
		}
		s.mem.Put(row, id.String())
		obj, err := decodePayload[D, P](row)
		return id, obj, result, err
	}

	stmt, err := InsertStatement(s.def, vals)
	if err != nil {
		return uuid.Nil, nil, ValidationResult{}, err
	}
	var keyText string
	if err := s.db.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(&keyText); err != nil {
		s.log.Error("insert failed", zap.String("table", s.def.Table), zap.Error(err))
		return uuid.Nil, nil, ValidationResult{}, ErrDatabase.Wrap(err)
	}
	id, err = uuid.Parse(keyText)
	if err != nil {
		return uuid.Nil, nil, ValidationResult{}, ErrDatabase.New("bad returned key %q: %v", keyText, err)
	}
	obj, err := s.GetByID(ctx, id)
	return id, obj, result, err
}

// Update validates the payload as a replacement and applies it, restricted
// to the mask when one is present. Key columns are never updated; archived
// rows may be updated and keep their deleted_at.
func (s *Simple[D, P]) Update(ctx context.Context, id uuid.UUID, data *D, mask []string) (_ *D, _ ValidationResult, err error) {
	defer mon.Task()(&ctx)(&err)

	if data == nil {
		return nil, ValidationResult{}, ErrMalformed.New("update of %q with no data", s.def.Table)
	}
	if _, err := s.rowByID(ctx, id); err != nil {
		return nil, ValidationResult{}, err
	}
	vals, result, err := Validate(s.def, P(data))
	if err != nil {
		return nil, ValidationResult{}, err
	}
	if !result.Success {
		return nil, result, nil
	}

	if s.db == nil {
		changes := maskValues(vals, mask)
		if s.def.HasField("updated_at") {
			changes["updated_at"] = now()
		}
		if !s.mem.Merge(changes, id.String()) {
			return nil, ValidationResult{}, ErrNotFound.New("%s %q", s.def.Table, id)
		}
		obj, err := s.GetByID(ctx, id)
		return obj, result, err
	}

	stmt, err := UpdateStatement(s.def, vals, mask, []any{id.String()})
	if err != nil {
		return nil, ValidationResult{}, err
	}
	res, err := s.db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		s.log.Error("update failed", zap.String("table", s.def.Table), zap.Error(err))
		return nil, ValidationResult{}, ErrDatabase.Wrap(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ValidationResult{}, ErrNotFound.New("%s %q", s.def.Table, id)
	}
	obj, err := s.GetByID(ctx, id)
	return obj, result, err
}

// maskValues restricts a validated column map to the normalized mask.
func maskValues(vals Row, mask []string) Row {
	if mask == nil {
		return maps.Clone(vals)
	}
	masked := NormalizeMask(mask)
	out := make(Row)
	for _, name := range masked {
		if v, ok := vals[name]; ok {
			out[name] = v
		}
	}
	return out
}

// Delete archives the row when the schema declares deleted_at, otherwise
// removes it. Exactly one row must be affected; a second delete of an
// archived row fails.
func (s *Simple[D, P]) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer mon.Task()(&ctx)(&err)

	if s.db == nil {
		row, ok := s.mem.Get(id.String())
		if !ok {
			return ErrNotFound.New("%s %q", s.def.Table, id)
		}
		if !s.def.SoftDelete() {
			s.mem.Delete(id.String())
			return nil
		}
		if _, archived := row["deleted_at"]; archived {
			return ErrAlreadyArchived.New("%s %q", s.def.Table, id)
		}
		s.mem.Merge(Row{"deleted_at": now()}, id.String())
		return nil
	}

	if !s.def.SoftDelete() {
		q := `DELETE FROM ` + quote(s.def.Table) + ` WHERE ` + quote(s.def.Keys[0]) + ` = $1`
		res, err := s.db.ExecContext(ctx, q, id.String())
		if err != nil {
			s.log.Error("delete failed", zap.String("table", s.def.Table), zap.Error(err))
			return ErrDatabase.Wrap(err)
		}
		if n, err := res.RowsAffected(); err == nil && n != 1 {
			return ErrNotFound.New("%s %q", s.def.Table, id)
		}
		return nil
	}

	q := `UPDATE ` + quote(s.def.Table) + ` SET "deleted_at" = NOW()` +
		` WHERE ` + quote(s.def.Keys[0]) + ` = $1 AND "deleted_at" IS NULL`
	res, err := s.db.ExecContext(ctx, q, id.String())
	if err != nil {
		s.log.Error("archive failed", zap.String("table", s.def.Table), zap.Error(err))
		return ErrDatabase.Wrap(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 1 {
		return nil
	}

	// zero rows: tell a missing row apart from an archived one
	row, err := s.rowByID(ctx, id)
	if err != nil {
		return err
	}
	if _, archived := row["deleted_at"]; archived {
		return ErrAlreadyArchived.New("%s %q", s.def.Table, id)
	}
	return ErrDatabase.New("archive of %s %q affected no rows", s.def.Table, id)
}

// Search compiles and runs an advanced filter. Archived rows are not
// filtered out; callers add deleted_at IS NULL themselves.
func (s *Simple[D, P]) Search(ctx context.Context, filter *SearchFilter) (_ []SimpleRow[D], err error) {
	defer mon.Task()(&ctx)(&err)

	if filter == nil {
		filter = &SearchFilter{}
	}

	var rows []Row
	if s.db == nil {
		rows, err = evalSearch(s.log, s.def, filter, s.mem.List())
		if err != nil {
			return nil, err
		}
	} else {
		rows, err = s.searchDB(ctx, filter)
		if err != nil {
			return nil, err
		}
	}

	out := make([]SimpleRow[D], 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row[s.def.Keys[0]].AsString())
		if err != nil {
			return nil, ErrDatabase.New("bad key in %s row: %v", s.def.Table, err)
		}
		obj, err := decodePayload[D, P](row)
		if err != nil {
			return nil, err
		}
		out = append(out, SimpleRow[D]{ID: id, Object: obj})
	}
	return out, nil
}

func (s *Simple[D, P]) searchDB(ctx context.Context, filter *SearchFilter) (_ []Row, err error) {
	stmt, err := CompileSearch(s.log, s.def, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		s.log.Error("search failed", zap.String("table", s.def.Table), zap.Error(err))
		return nil, ErrDatabase.Wrap(err)
	}
	defer func() { err = errs.Combine(err, rows.Close()) }()

	var out []Row
	for rows.Next() {
		row, err := scanRow(s.def, rows)
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

// IsReady reports whether the engine can serve: with a database attached it
// checks the pool can vend a live connection, without one it is always
// ready.
func (s *Simple[D, P]) IsReady(ctx context.Context) bool {
	if s.db == nil {
		return true
	}
	return s.db.PingContext(ctx) == nil
}
