// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

// Package resource implements the generic storage engine between the RPC
// boundary and Postgres: validation, SQL synthesis, advanced search, and
// the simple/linked/link-table surfaces. When constructed without a
// database every engine falls back to an in-memory store with the same
// observable semantics.
package resource

import (
	"github.com/spacemonkeygo/monkit/v3"
	"github.com/zeebo/errs"

	"skystore.io/skystore/pkg/fieldvalue"
)

var mon = monkit.Package()

var (
	// Error is the catch-all resource errs class.
	Error = errs.Class("resource")
	// ErrNotFound means a lookup by id matched no rows.
	ErrNotFound = errs.Class("not found")
	// ErrAlreadyArchived means a delete hit a row whose deleted_at is
	// already set.
	ErrAlreadyArchived = errs.Class("already archived")
	// ErrAlreadyExists means an insert collided with an existing key.
	ErrAlreadyExists = errs.Class("already exists")
	// ErrMalformed means the request was structurally unusable.
	ErrMalformed = errs.Class("malformed request")
	// ErrSchema means a programmer-level contract violation, e.g. a
	// mandatory field arriving wrapped in Option.
	ErrSchema = errs.Class("schema mismatch")
	// ErrDatabase wraps driver failures; the client-visible message stays
	// generic.
	ErrDatabase = errs.Class("database")
)

// Row is the generic column-to-value form of one stored record. Columns
// that are NULL in storage are absent from the map.
type Row = map[string]fieldvalue.Value

// Payload is the bridge between a typed entity and the engine: the engine
// only ever reads entities through FieldValue.
type Payload interface {
	// FieldValue returns the tagged value for the named column. Optional
	// fields are wrapped in fieldvalue.Opt; mandatory fields are bare.
	FieldValue(name string) (fieldvalue.Value, error)
}

// Ptr constrains the pointer form of an entity payload, adding the
// row-decoder used on read paths.
type Ptr[D any] interface {
	*D
	Payload
	// DecodeRow fills the payload from a generic row. Absent optional
	// columns leave their fields nil.
	DecodeRow(row Row) error
}

// FieldError is one validation failure, keyed by column.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationResult accumulates every per-field failure of one request.
// It travels in the response body; a failed validation is not an RPC error.
type ValidationResult struct {
	Success bool         `json:"success"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// IDField names one column of a composite key together with its value.
type IDField struct {
	Field string `json:"field"`
	Value string `json:"value"`
}
