// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

// Package fieldvalue defines the tagged value representation that bridges
// typed entity payloads and the storage layer. It is a closed sum: one
// concrete type per variant, all implementing Value. Coercions between
// variants live here, on the types themselves, so the engine never needs to
// reach into entity-specific structure.
package fieldvalue

import (
	"fmt"
	"strconv"
	"time"

	"github.com/zeebo/errs"

	"skystore.io/skystore/pkg/geo"
)

// Error is the fieldvalue errs class, raised for coercions that have no
// defined meaning (unknown variant kinds).
var Error = errs.Class("fieldvalue")

// Value is the closed interface over every variant.
//
// Coercions are total: every method returns a defined result for every
// variant. A variant that cannot represent the requested shape falls back to
// the documented default (debug text for AsString, zero for numerics, the
// current time for AsTime).
type Value interface {
	fieldValue()

	// Kind names the variant, e.g. "I64".
	Kind() string
	// String renders the variant for debugging, e.g. "I64(42)".
	String() string
	// AsString returns the payload for String and the debug rendering for
	// everything else.
	AsString() string
	AsI64() int64
	AsF64() float64
	AsBool() bool
	// AsTime returns the timestamp payload, or the current time when the
	// variant is not a Timestamp. Read paths only.
	AsTime() time.Time
	// AsStringList lifts scalars into single-element lists and renders list
	// variants element-wise.
	AsStringList() []string
}

type (
	// Bytes is an opaque byte payload.
	Bytes []byte
	// String is a text payload.
	String string
	// I16 is a 16-bit signed integer.
	I16 int16
	// I32 is a 32-bit signed integer.
	I32 int32
	// I64 is a 64-bit signed integer.
	I64 int64
	// U32 is a 32-bit unsigned integer; it widens losslessly to I64.
	U32 uint32
	// F32 is a 32-bit float.
	F32 float32
	// F64 is a 64-bit float.
	F64 float64
	// Bool is a boolean.
	Bool bool
	// Timestamp is an instant with nanosecond resolution.
	Timestamp time.Time
	// PointZ is a 3D point payload.
	PointZ geo.PointZ
	// LineStringZ is a 3D line payload.
	LineStringZ geo.LineStringZ
	// PolygonZ is a 3D polygon payload.
	PolygonZ geo.PolygonZ
	// I64List is a list of 64-bit integers.
	I64List []int64
	// U32List is a list of 32-bit unsigned integers.
	U32List []uint32
	// StringList is a list of strings.
	StringList []string
	// Opt wraps another value; a nil Inner is None. Optional fields at the
	// boundary always arrive wrapped in Opt.
	Opt struct{ Inner Value }
)

// Some wraps a present optional value.
func Some(v Value) Opt { return Opt{Inner: v} }

// None is the absent optional value.
func None() Opt { return Opt{} }

// IsNone reports whether the optional is absent.
func (o Opt) IsNone() bool { return o.Inner == nil }

func (Bytes) fieldValue()       {}
func (String) fieldValue()      {}
func (I16) fieldValue()         {}
func (I32) fieldValue()         {}
func (I64) fieldValue()         {}
func (U32) fieldValue()         {}
func (F32) fieldValue()         {}
func (F64) fieldValue()         {}
func (Bool) fieldValue()        {}
func (Timestamp) fieldValue()   {}
func (PointZ) fieldValue()      {}
func (LineStringZ) fieldValue() {}
func (PolygonZ) fieldValue()    {}
func (I64List) fieldValue()     {}
func (U32List) fieldValue()     {}
func (StringList) fieldValue()  {}
func (Opt) fieldValue()         {}

// Kind implementations.

func (Bytes) Kind() string       { return "Bytes" }
func (String) Kind() string      { return "String" }
func (I16) Kind() string         { return "I16" }
func (I32) Kind() string         { return "I32" }
func (I64) Kind() string         { return "I64" }
func (U32) Kind() string         { return "U32" }
func (F32) Kind() string         { return "F32" }
func (F64) Kind() string         { return "F64" }
func (Bool) Kind() string        { return "Bool" }
func (Timestamp) Kind() string   { return "Timestamp" }
func (PointZ) Kind() string      { return "PointZ" }
func (LineStringZ) Kind() string { return "LineStringZ" }
func (PolygonZ) Kind() string    { return "PolygonZ" }
func (I64List) Kind() string     { return "I64List" }
func (U32List) Kind() string     { return "U32List" }
func (StringList) Kind() string  { return "StringList" }
func (Opt) Kind() string         { return "Option" }

// String implementations: "<Kind>(<payload>)".

func (v Bytes) String() string       { return fmt.Sprintf("Bytes(%x)", []byte(v)) }
func (v String) String() string      { return "String(" + string(v) + ")" }
func (v I16) String() string         { return "I16(" + strconv.FormatInt(int64(v), 10) + ")" }
func (v I32) String() string         { return "I32(" + strconv.FormatInt(int64(v), 10) + ")" }
func (v I64) String() string         { return "I64(" + strconv.FormatInt(int64(v), 10) + ")" }
func (v U32) String() string         { return "U32(" + strconv.FormatUint(uint64(v), 10) + ")" }
func (v F32) String() string         { return "F32(" + strconv.FormatFloat(float64(v), 'g', -1, 32) + ")" }
func (v F64) String() string         { return "F64(" + strconv.FormatFloat(float64(v), 'g', -1, 64) + ")" }
func (v Bool) String() string        { return "Bool(" + strconv.FormatBool(bool(v)) + ")" }
func (v Timestamp) String() string   { return "Timestamp(" + time.Time(v).UTC().Format(time.RFC3339Nano) + ")" }
func (v PointZ) String() string      { return geo.PointZ(v).WKT() }
func (v LineStringZ) String() string { return geo.LineStringZ(v).WKT() }
func (v PolygonZ) String() string    { return geo.PolygonZ(v).WKT() }
func (v I64List) String() string     { return fmt.Sprintf("I64List(%v)", []int64(v)) }
func (v U32List) String() string     { return fmt.Sprintf("U32List(%v)", []uint32(v)) }
func (v StringList) String() string  { return fmt.Sprintf("StringList(%v)", []string(v)) }

func (v Opt) String() string {
	if v.IsNone() {
		return "None"
	}
	return "Some(" + v.Inner.String() + ")"
}

// AsString: only the String variant yields its bare payload; everything else
// yields its debug rendering, so e.g. I64(42) is not mistaken for text "42".

func (v String) AsString() string { return string(v) }

func (v Bytes) AsString() string       { return v.String() }
func (v I16) AsString() string         { return v.String() }
func (v I32) AsString() string         { return v.String() }
func (v I64) AsString() string         { return v.String() }
func (v U32) AsString() string         { return v.String() }
func (v F32) AsString() string         { return v.String() }
func (v F64) AsString() string         { return v.String() }
func (v Bool) AsString() string        { return v.String() }
func (v Timestamp) AsString() string   { return v.String() }
func (v PointZ) AsString() string      { return v.String() }
func (v LineStringZ) AsString() string { return v.String() }
func (v PolygonZ) AsString() string    { return v.String() }
func (v I64List) AsString() string     { return v.String() }
func (v U32List) AsString() string     { return v.String() }
func (v StringList) AsString() string  { return v.String() }

func (v Opt) AsString() string {
	if v.IsNone() {
		return ""
	}
	return v.Inner.AsString()
}

// AsI64: integral variants widen losslessly; floats truncate; timestamps
// yield unix seconds; everything else is zero.

func (v I16) AsI64() int64       { return int64(v) }
func (v I32) AsI64() int64       { return int64(v) }
func (v I64) AsI64() int64       { return int64(v) }
func (v U32) AsI64() int64       { return int64(v) }
func (v F32) AsI64() int64       { return int64(v) }
func (v F64) AsI64() int64       { return int64(v) }
func (v Timestamp) AsI64() int64 { return time.Time(v).Unix() }
func (v Bool) AsI64() int64 {
	if v {
		return 1
	}
	return 0
}

func (Bytes) AsI64() int64       { return 0 }
func (String) AsI64() int64      { return 0 }
func (PointZ) AsI64() int64      { return 0 }
func (LineStringZ) AsI64() int64 { return 0 }
func (PolygonZ) AsI64() int64    { return 0 }
func (I64List) AsI64() int64     { return 0 }
func (U32List) AsI64() int64     { return 0 }
func (StringList) AsI64() int64  { return 0 }

func (v Opt) AsI64() int64 {
	if v.IsNone() {
		return 0
	}
	return v.Inner.AsI64()
}

// AsF64: numeric variants convert; everything else is zero.

func (v I16) AsF64() float64 { return float64(v) }
func (v I32) AsF64() float64 { return float64(v) }
func (v I64) AsF64() float64 { return float64(v) }
func (v U32) AsF64() float64 { return float64(v) }
func (v F32) AsF64() float64 { return float64(v) }
func (v F64) AsF64() float64 { return float64(v) }

func (Bytes) AsF64() float64       { return 0 }
func (String) AsF64() float64      { return 0 }
func (Bool) AsF64() float64        { return 0 }
func (Timestamp) AsF64() float64   { return 0 }
func (PointZ) AsF64() float64      { return 0 }
func (LineStringZ) AsF64() float64 { return 0 }
func (PolygonZ) AsF64() float64    { return 0 }
func (I64List) AsF64() float64     { return 0 }
func (U32List) AsF64() float64     { return 0 }
func (StringList) AsF64() float64  { return 0 }

func (v Opt) AsF64() float64 {
	if v.IsNone() {
		return 0
	}
	return v.Inner.AsF64()
}

// AsBool: only Bool is true-capable.

func (v Bool) AsBool() bool { return bool(v) }

func (Bytes) AsBool() bool       { return false }
func (String) AsBool() bool      { return false }
func (I16) AsBool() bool         { return false }
func (I32) AsBool() bool         { return false }
func (I64) AsBool() bool         { return false }
func (U32) AsBool() bool         { return false }
func (F32) AsBool() bool         { return false }
func (F64) AsBool() bool         { return false }
func (Timestamp) AsBool() bool   { return false }
func (PointZ) AsBool() bool      { return false }
func (LineStringZ) AsBool() bool { return false }
func (PolygonZ) AsBool() bool    { return false }
func (I64List) AsBool() bool     { return false }
func (U32List) AsBool() bool     { return false }
func (StringList) AsBool() bool  { return false }

func (v Opt) AsBool() bool {
	if v.IsNone() {
		return false
	}
	return v.Inner.AsBool()
}

// AsTime: Timestamp yields its payload; any other present variant falls back
// to "now" (read paths only, never used for writes); an absent optional is
// the zero time.

func (v Timestamp) AsTime() time.Time { return time.Time(v) }

func (Bytes) AsTime() time.Time       { return time.Now() }
func (String) AsTime() time.Time      { return time.Now() }
func (I16) AsTime() time.Time         { return time.Now() }
func (I32) AsTime() time.Time         { return time.Now() }
func (I64) AsTime() time.Time         { return time.Now() }
func (U32) AsTime() time.Time         { return time.Now() }
func (F32) AsTime() time.Time         { return time.Now() }
func (F64) AsTime() time.Time         { return time.Now() }
func (Bool) AsTime() time.Time        { return time.Now() }
func (PointZ) AsTime() time.Time      { return time.Now() }
func (LineStringZ) AsTime() time.Time { return time.Now() }
func (PolygonZ) AsTime() time.Time    { return time.Now() }
func (I64List) AsTime() time.Time     { return time.Now() }
func (U32List) AsTime() time.Time     { return time.Now() }
func (StringList) AsTime() time.Time  { return time.Now() }

func (v Opt) AsTime() time.Time {
	if v.IsNone() {
		return time.Time{}
	}
	return v.Inner.AsTime()
}

// AsStringList: list variants render element-wise, a String lifts to a
// single-element list, everything else is empty.

func (v StringList) AsStringList() []string { return []string(v) }
func (v String) AsStringList() []string     { return []string{string(v)} }

func (v I64List) AsStringList() []string {
	out := make([]string, 0, len(v))
	for _, n := range v {
		out = append(out, strconv.FormatInt(n, 10))
	}
	return out
}

func (v U32List) AsStringList() []string {
	out := make([]string, 0, len(v))
	for _, n := range v {
		out = append(out, strconv.FormatUint(uint64(n), 10))
	}
	return out
}

func (Bytes) AsStringList() []string       { return nil }
func (I16) AsStringList() []string         { return nil }
func (I32) AsStringList() []string         { return nil }
func (I64) AsStringList() []string         { return nil }
func (U32) AsStringList() []string         { return nil }
func (F32) AsStringList() []string         { return nil }
func (F64) AsStringList() []string         { return nil }
func (Bool) AsStringList() []string        { return nil }
func (Timestamp) AsStringList() []string   { return nil }
func (PointZ) AsStringList() []string      { return nil }
func (LineStringZ) AsStringList() []string { return nil }
func (PolygonZ) AsStringList() []string    { return nil }

func (v Opt) AsStringList() []string {
	if v.IsNone() {
		return nil
	}
	return v.Inner.AsStringList()
}

// Unwrap removes one layer of Opt. The second result is false when the
// optional is absent. Non-optional values unwrap to themselves.
func Unwrap(v Value) (Value, bool) {
	if opt, ok := v.(Opt); ok {
		if opt.IsNone() {
			return nil, false
		}
		return opt.Inner, true
	}
	return v, true
}
