// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"skystore.io/skystore/pkg/fieldvalue"
	"skystore.io/skystore/pkg/geo"
	"skystore.io/skystore/pkg/schema"
)

// evalSearch is the in-memory counterpart of CompileSearch. Filters are
// applied as a boolean pipeline over the candidate rows: an Or-combined
// filter (and the first one) unions its matches into the accumulator, an
// And-combined filter restricts the accumulator to rows it matches.
func evalSearch(log *zap.Logger, def *schema.Definition, filter *SearchFilter, rows []Row) ([]Row, error) {
	included := make([]bool, len(rows))
	for i := range included {
		included[i] = len(filter.Filters) == 0
	}

	for fi, f := range filter.Filters {
		cmp := And
		if f.Comparison != nil {
			cmp = *f.Comparison
		}
		union := fi == 0 || cmp == Or
		if !union && cmp != And {
			return nil, ErrSchema.New("unknown comparison operator %d", cmp)
		}

		for i, row := range rows {
			match, err := matchFilter(def, f, row)
			if err != nil {
				return nil, err
			}
			if union {
				included[i] = included[i] || match
			} else {
				included[i] = included[i] && match
			}
		}
	}

	var out []Row
	for i, row := range rows {
		if included[i] {
			out = append(out, row)
		}
	}

	sortRows(log, def, filter.OrderBy, out)

	if filter.ResultsPerPage >= 0 && filter.PageNumber > 0 {
		per := int(filter.ResultsPerPage)
		start := per * int(filter.PageNumber-1)
		if start >= len(out) {
			return nil, nil
		}
		end := start + per
		if end > len(out) {
			end = len(out)
		}
		out = out[start:end]
	}
	return out, nil
}

func matchFilter(def *schema.Definition, f FilterOption, row Row) (bool, error) {
	col, ok := searchColumn(def, f.Field)
	if !ok {
		return false, ErrSchema.New("unknown search field %q on %q", f.Field, def.Table)
	}
	val, present := row[f.Field]

	switch f.Predicate {
	case IsNull:
		return !present, nil
	case IsNotNull:
		return present, nil
	}
	if !present {
		return false, nil
	}

	switch f.Predicate {
	case Equals, NotEquals, Greater, GreaterOrEqual, Less, LessOrEqual:
		if len(f.Values) < 1 {
			return false, ErrSchema.New("predicate on %q requires a value", f.Field)
		}
		c, err := compareValue(def, col, val, f.Values[0])
		if err != nil {
			return false, err
		}
		switch f.Predicate {
		case Equals:
			return c == 0, nil
		case NotEquals:
			return c != 0, nil
		case Greater:
			return c > 0, nil
		case GreaterOrEqual:
			return c >= 0, nil
		case Less:
			return c < 0, nil
		default:
			return c <= 0, nil
		}

	case In, NotIn:
		if len(f.Values) == 0 {
			return false, ErrSchema.New("IN on %q requires at least one value", f.Field)
		}
		found := false
		for _, raw := range f.Values {
			c, err := compareValue(def, col, val, raw)
			if err != nil {
				return false, err
			}
			if c == 0 {
				found = true
				break
			}
		}
		if f.Predicate == NotIn {
			return !found, nil
		}
		return found, nil

	case Between:
		if len(f.Values) != 2 {
			return false, ErrSchema.New("BETWEEN on %q requires exactly two values, got %d", f.Field, len(f.Values))
		}
		lo, err := compareValue(def, col, val, f.Values[0])
		if err != nil {
			return false, err
		}
		hi, err := compareValue(def, col, val, f.Values[1])
		if err != nil {
			return false, err
		}
		return lo >= 0 && hi <= 0, nil

	case Ilike:
		return likeMatch(f.Values, val, true)
	case Like:
		return likeMatch(f.Values, val, false)

	case GeoIntersect, GeoWithin, GeoDisjoint:
		if len(f.Values) < 1 {
			return false, ErrSchema.New("geo predicate on %q requires a wkt value", f.Field)
		}
		probe, err := geo.ParseWKT(f.Values[0])
		if err != nil {
			return false, ErrSchema.New("bad wkt for %q: %v", f.Field, err)
		}
		shape := rowShape(val)
		if shape == nil {
			return false, nil
		}
		switch f.Predicate {
		case GeoIntersect:
			return geo.Intersects(probe, shape), nil
		case GeoWithin:
			return geo.Within(probe, shape), nil
		default:
			return geo.Disjoint(probe, shape), nil
		}
	}

	return false, ErrSchema.New("unknown predicate operator %d", f.Predicate)
}

// compareValue orders a stored value against a wire string. The result is
// negative, zero or positive like strings.Compare.
func compareValue(def *schema.Definition, col schema.Field, val fieldvalue.Value, raw string) (int, error) {
	arg, err := searchArg(def, col, raw)
	if err != nil {
		return 0, err
	}

	switch col.Type {
	case schema.Bool:
		// false sorts before true, as in Postgres
		b := arg.(bool)
		vb := val.AsBool()
		switch {
		case vb == b:
			return 0, nil
		case !vb && b:
			return -1, nil
		}
		return 1, nil
	case schema.Int2, schema.Int4, schema.Int8:
		return cmpOrdered(val.AsI64(), arg.(int64)), nil
	case schema.Float4, schema.Float8:
		return cmpOrdered(val.AsF64(), arg.(float64)), nil
	case schema.Timestamptz:
		t := arg.(time.Time)
		vt := val.AsTime()
		switch {
		case vt.Before(t):
			return -1, nil
		case vt.After(t):
			return 1, nil
		}
		return 0, nil
	}
	return strings.Compare(val.AsString(), arg.(string)), nil
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func likeMatch(patterns []string, val fieldvalue.Value, insensitive bool) (bool, error) {
	if len(patterns) < 1 {
		return false, ErrSchema.New("like requires a pattern")
	}
	re, err := likeRegexp(patterns[0], insensitive)
	if err != nil {
		return false, err
	}
	return re.MatchString(val.AsString()), nil
}

// likeRegexp translates a SQL LIKE pattern (% and _) into an anchored regexp.
func likeRegexp(pattern string, insensitive bool) (*regexp.Regexp, error) {
	var sb strings.Builder
	if insensitive {
		sb.WriteString("(?i)")
	}
	sb.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			sb.WriteString(".*")
		case '_':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	sb.WriteString("$")
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, ErrSchema.New("bad like pattern %q: %v", pattern, err)
	}
	return re, nil
}

func rowShape(val fieldvalue.Value) geo.Shape {
	switch v := val.(type) {
	case fieldvalue.PointZ:
		return geo.PointZ(v)
	case fieldvalue.LineStringZ:
		return geo.LineStringZ(v)
	case fieldvalue.PolygonZ:
		return geo.PolygonZ(v)
	}
	return nil
}

// sortRows applies the order-by terms with a stable sort, dropping unknown
// fields the same way the SQL compiler does.
func sortRows(log *zap.Logger, def *schema.Definition, sorts []SortOption, rows []Row) {
	var applied []SortOption
	for _, s := range sorts {
		if _, ok := searchColumn(def, s.Field); !ok {
			log.Warn("dropping unknown sort field",
				zap.String("table", def.Table), zap.String("field", s.Field))
			continue
		}
		applied = append(applied, s)
	}
	if len(applied) == 0 {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, s := range applied {
			c := cmpRowValues(rows[i][s.Field], rows[j][s.Field])
			if c == 0 {
				continue
			}
			if s.Order == Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// cmpRowValues orders two stored values of the same column; absent values
// sort first.
func cmpRowValues(a, b fieldvalue.Value) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch av := a.(type) {
	case fieldvalue.I16, fieldvalue.I32, fieldvalue.I64, fieldvalue.U32:
		return cmpOrdered(a.AsI64(), b.AsI64())
	case fieldvalue.F32, fieldvalue.F64:
		return cmpOrdered(a.AsF64(), b.AsF64())
	case fieldvalue.Timestamp:
		bt, ok := b.(fieldvalue.Timestamp)
		if !ok {
			return 0
		}
		at := av.AsTime()
		switch {
		case at.Before(bt.AsTime()):
			return -1
		case at.After(bt.AsTime()):
			return 1
		}
		return 0
	case fieldvalue.Bool:
		if a.AsBool() == b.AsBool() {
			return 0
		}
		if b.AsBool() {
			return -1
		}
		return 1
	}
	return strings.Compare(a.AsString(), b.AsString())
}
