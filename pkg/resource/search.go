// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package resource

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skystore.io/skystore/pkg/geo"
	"skystore.io/skystore/pkg/schema"
)

// PredicateOperator selects the comparison a filter applies.
type PredicateOperator int32

// Filter predicates, in wire order.
const (
	Equals PredicateOperator = iota
	NotEquals
	In
	NotIn
	Between
	IsNull
	IsNotNull
	Ilike
	Like
	Greater
	GreaterOrEqual
	Less
	LessOrEqual
	GeoIntersect
	GeoWithin
	GeoDisjoint
)

// ComparisonOperator chains a filter onto the preceding ones.
type ComparisonOperator int32

// Boolean combinators.
const (
	And ComparisonOperator = iota
	Or
)

// SortOrder directs one sort option.
type SortOrder int32

// Sort directions.
const (
	Asc SortOrder = iota
	Desc
)

func (s SortOrder) String() string {
	if s == Desc {
		return "DESC"
	}
	return "ASC"
}

// FilterOption is one predicate over one column. The first filter of a
// search carries no comparison operator; it heads the WHERE clause.
type FilterOption struct {
	Field      string              `json:"search_field"`
	Values     []string            `json:"search_value"`
	Predicate  PredicateOperator   `json:"predicate_operator"`
	Comparison *ComparisonOperator `json:"comparison_operator,omitempty"`
}

// SortOption is one ORDER BY term.
type SortOption struct {
	Field string    `json:"sort_field"`
	Order SortOrder `json:"sort_order"`
}

// SearchFilter is the advanced search request: predicates, combinators,
// sort, and pagination.
type SearchFilter struct {
	Filters        []FilterOption `json:"filters"`
	PageNumber     int32          `json:"page_number"`
	ResultsPerPage int32          `json:"results_per_page"`
	OrderBy        []SortOption   `json:"order_by"`
}

// searchColumn resolves a filter or sort field: ordinary fields come from
// the registry, key columns are implicitly UUID.
func searchColumn(def *schema.Definition, name string) (schema.Field, bool) {
	if slices.Contains(def.Keys, name) {
		return schema.Field{Name: name, Type: schema.UUID, Mandatory: true}, true
	}
	f, err := def.GetField(name)
	if err != nil {
		return schema.Field{}, false
	}
	return f, true
}

// CompileSearch translates a filter into a parameterized SELECT against the
// definition's table. Value/type mismatches and unknown enums surface as
// ErrSchema (500-class); unknown sort fields are logged and dropped.
func CompileSearch(log *zap.Logger, def *schema.Definition, filter *SearchFilter) (Statement, error) {
	var sb strings.Builder
	var args []any

	sb.WriteString("SELECT " + SelectColumns(def) + " FROM " + quote(def.Table))

	for i, f := range filter.Filters {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			cmp := And
			if f.Comparison != nil {
				cmp = *f.Comparison
			}
			switch cmp {
			case And:
				sb.WriteString(" AND ")
			case Or:
				sb.WriteString(" OR ")
			default:
				return Statement{}, ErrSchema.New("unknown comparison operator %d", cmp)
			}
		}

		frag, fragArgs, err := compileFilter(def, f, len(args)+1)
		if err != nil {
			return Statement{}, err
		}
		sb.WriteString(frag)
		args = append(args, fragArgs...)
	}

	if order := compileOrderBy(log, def, filter.OrderBy); order != "" {
		sb.WriteString(order)
	}

	if filter.ResultsPerPage >= 0 && filter.PageNumber > 0 {
		offset := int64(filter.ResultsPerPage) * int64(filter.PageNumber-1)
		sb.WriteString(" LIMIT " + strconv.FormatInt(int64(filter.ResultsPerPage), 10))
		sb.WriteString(" OFFSET " + strconv.FormatInt(offset, 10))
	}

	return Statement{SQL: sb.String(), Args: args}, nil
}

func compileFilter(def *schema.Definition, f FilterOption, next int) (string, []any, error) {
	col, ok := searchColumn(def, f.Field)
	if !ok {
		return "", nil, ErrSchema.New("unknown search field %q on %q", f.Field, def.Table)
	}
	c := quote(col.Name)

	placeholder := func(i int) string { return "$" + strconv.Itoa(next+i) }

	switch f.Predicate {
	case Equals, NotEquals, Greater, GreaterOrEqual, Less, LessOrEqual:
		if len(f.Values) < 1 {
			return "", nil, ErrSchema.New("predicate on %q requires a value", f.Field)
		}
		arg, err := searchArg(def, col, f.Values[0])
		if err != nil {
			return "", nil, err
		}
		op := map[PredicateOperator]string{
			Equals: "=", NotEquals: "<>",
			Greater: ">", GreaterOrEqual: ">=",
			Less: "<", LessOrEqual: "<=",
		}[f.Predicate]
		return c + " " + op + " " + placeholder(0), []any{arg}, nil

	case In, NotIn:
		if len(f.Values) == 0 {
			return "", nil, ErrSchema.New("IN on %q requires at least one value", f.Field)
		}
		var params []string
		var args []any
		for i, v := range f.Values {
			arg, err := searchArg(def, col, v)
			if err != nil {
				return "", nil, err
			}
			params = append(params, placeholder(i))
			args = append(args, arg)
		}
		kw := " IN ("
		if f.Predicate == NotIn {
			kw = " NOT IN ("
		}
		return c + kw + strings.Join(params, ",") + ")", args, nil

	case Between:
		if len(f.Values) != 2 {
			return "", nil, ErrSchema.New("BETWEEN on %q requires exactly two values, got %d", f.Field, len(f.Values))
		}
		lo, err := searchArg(def, col, f.Values[0])
		if err != nil {
			return "", nil, err
		}
		hi, err := searchArg(def, col, f.Values[1])
		if err != nil {
			return "", nil, err
		}
		return c + " BETWEEN " + placeholder(0) + " AND " + placeholder(1), []any{lo, hi}, nil

	case IsNull:
		return c + " IS NULL", nil, nil
	case IsNotNull:
		return c + " IS NOT NULL", nil, nil

	case Ilike:
		if len(f.Values) < 1 {
			return "", nil, ErrSchema.New("ILIKE on %q requires a pattern", f.Field)
		}
		return c + "::text ILIKE " + placeholder(0), []any{f.Values[0]}, nil
	case Like:
		if len(f.Values) < 1 {
			return "", nil, ErrSchema.New("LIKE on %q requires a pattern", f.Field)
		}
		return c + "::text LIKE " + placeholder(0), []any{f.Values[0]}, nil

	case GeoIntersect, GeoWithin, GeoDisjoint:
		if len(f.Values) < 1 {
			return "", nil, ErrSchema.New("geo predicate on %q requires a wkt value", f.Field)
		}
		if !col.Type.Geometric() {
			return "", nil, ErrSchema.New("geo predicate on non-geometry field %q", f.Field)
		}
		if _, err := geo.ParseWKT(f.Values[0]); err != nil {
			return "", nil, ErrSchema.New("bad wkt for %q: %v", f.Field, err)
		}
		fn := map[PredicateOperator]string{
			GeoIntersect: "st_intersect",
			GeoWithin:    "st_within",
			GeoDisjoint:  "st_disjoint",
		}[f.Predicate]
		return fn + "(st_geomfromtext(" + placeholder(0) + "), " + c + ")", []any{f.Values[0]}, nil
	}

	return "", nil, ErrSchema.New("unknown predicate operator %d", f.Predicate)
}

func compileOrderBy(log *zap.Logger, def *schema.Definition, sorts []SortOption) string {
	var terms []string
	for _, s := range sorts {
		if _, ok := searchColumn(def, s.Field); !ok {
			log.Warn("dropping unknown sort field",
				zap.String("table", def.Table), zap.String("field", s.Field))
			continue
		}
		terms = append(terms, quote(s.Field)+" "+s.Order.String())
	}
	if len(terms) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

// searchArg type-checks a wire value against the column and converts it to
// a bindable argument. Failures are compile-time (500-class) errors.
func searchArg(def *schema.Definition, col schema.Field, raw string) (any, error) {
	switch col.Type {
	case schema.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, ErrSchema.New("bad bool %q for %q", raw, col.Name)
		}
		return v, nil
	case schema.Int2, schema.Int4, schema.Int8:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, ErrSchema.New("bad integer %q for %q", raw, col.Name)
		}
		return v, nil
	case schema.Float4, schema.Float8:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, ErrSchema.New("bad float %q for %q", raw, col.Name)
		}
		return v, nil
	case schema.UUID:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrSchema.New("bad uuid %q for %q", raw, col.Name)
		}
		return id.String(), nil
	case schema.Timestamptz:
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, ErrSchema.New("bad timestamp %q for %q", raw, col.Name)
		}
		return t.UTC(), nil
	case schema.AnyEnum, schema.Text:
		return raw, nil
	case schema.Bytea, schema.JSON:
		return []byte(raw), nil
	}
	return nil, ErrSchema.New("field %q (%s) is not searchable by value", col.Name, col.Type)
}
