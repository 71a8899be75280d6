// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package schema

import (
	"context"
	"database/sql"
	"strings"

	"github.com/spacemonkeygo/monkit/v3"
	"go.uber.org/zap"
)

var mon = monkit.Package()

// columnType maps a type tag to its Postgres column type.
func columnType(t TypeTag) string {
	switch t {
	case Bool:
		return "BOOL"
	case Int2:
		return "SMALLINT"
	case Int4:
		return "INTEGER"
	case Int8:
		return "BIGINT"
	case Float4:
		return "REAL"
	case Float8:
		return "DOUBLE PRECISION"
	case Text, AnyEnum:
		return "TEXT"
	case Bytea:
		return "BYTEA"
	case UUID:
		return "UUID"
	case Timestamptz:
		return "TIMESTAMPTZ"
	case PointZ:
		return "GEOMETRY(POINTZ, 4326)"
	case PolygonZ:
		return "GEOMETRY(POLYGONZ, 4326)"
	case LineStringZ:
		return "GEOMETRY(LINESTRINGZ, 4326)"
	case Int8Array:
		return "BIGINT[]"
	case JSON:
		return "JSONB"
	}
	return "TEXT"
}

// CreateStatement synthesizes the CREATE TABLE statement for a definition.
// Simple resources get a single UUID primary key with a generated default;
// linked resources get a composite primary key over their two key columns.
func (d *Definition) CreateStatement() string {
	var cols []string
	if len(d.Keys) == 1 {
		cols = append(cols, `"`+d.Keys[0]+`" UUID DEFAULT uuid_generate_v4() NOT NULL`)
	} else {
		for _, key := range d.Keys {
			cols = append(cols, `"`+key+`" UUID NOT NULL`)
		}
	}
	for _, f := range d.Fields {
		if d.isKey(f.Name) {
			continue
		}
		col := `"` + f.Name + `" ` + columnType(f.Type)
		if f.Default != "" {
			col += " DEFAULT " + f.Default
		}
		if f.Mandatory {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}
	cols = append(cols, `PRIMARY KEY ("`+strings.Join(d.Keys, `", "`)+`")`)
	return `CREATE TABLE IF NOT EXISTS "` + d.Table + `" (` + strings.Join(cols, ", ") + `)`
}

// Init creates the table and applies the definition's index DDL.
func (d *Definition) Init(ctx context.Context, db *sql.DB) (err error) {
	defer mon.Task()(&ctx)(&err)

	if _, err := db.ExecContext(ctx, d.CreateStatement()); err != nil {
		return Error.New("creating %q: %v", d.Table, err)
	}
	for _, stmt := range d.Indices {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return Error.New("index on %q: %v", d.Table, err)
		}
	}
	return nil
}

// InitAll bootstraps every definition in order. Link tables must come after
// the resources they reference, so callers pass definitions in dependency
// order.
func InitAll(ctx context.Context, log *zap.Logger, db *sql.DB, defs []*Definition) (err error) {
	defer mon.Task()(&ctx)(&err)

	for _, ext := range []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
		`CREATE EXTENSION IF NOT EXISTS "postgis"`,
	} {
		if _, err := db.ExecContext(ctx, ext); err != nil {
			return Error.New("extension: %v", err)
		}
	}
	for _, def := range defs {
		log.Debug("initializing table", zap.String("table", def.Table))
		if err := def.Init(ctx, db); err != nil {
			return err
		}
	}
	return nil
}
