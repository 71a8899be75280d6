// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package geo

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/zeebo/errs"
)

// Error is the geo package errs class.
var Error = errs.Class("geo")

// coordinate precision used when emitting WKT
const wktPrecision = 15

// formatCoord rounds to wktPrecision significant digits before rendering a
// fixed wktPrecision fractional digits, so -122.419 stays -122.419 instead
// of picking up binary noise.
func formatCoord(v float64) string {
	f, _, err := big.ParseFloat(strconv.FormatFloat(v, 'g', wktPrecision, 64), 10, 96, big.ToNearestEven)
	if err != nil {
		return strconv.FormatFloat(v, 'f', wktPrecision, 64)
	}
	return f.Text('f', wktPrecision)
}

func formatPoint(p PointZ) string {
	return formatCoord(p.X) + " " + formatCoord(p.Y) + " " + formatCoord(p.Z)
}

func formatRing(l LineStringZ) string {
	parts := make([]string, 0, len(l.Points))
	for _, p := range l.Points {
		parts = append(parts, formatPoint(p))
	}
	return strings.Join(parts, ",")
}

// WKT renders the point as POINTZ(x y z).
func (p PointZ) WKT() string {
	return "POINTZ(" + formatPoint(p) + ")"
}

// WKT renders the line as LINESTRINGZ(x y z,...).
func (l LineStringZ) WKT() string {
	return "LINESTRINGZ(" + formatRing(l) + ")"
}

// WKT renders the polygon as POLYGONZ((ring),(ring),...).
func (p PolygonZ) WKT() string {
	rings := make([]string, 0, len(p.Rings))
	for _, r := range p.Rings {
		rings = append(rings, "("+formatRing(r)+")")
	}
	return "POLYGONZ(" + strings.Join(rings, ",") + ")"
}

// GeomFromText wraps a shape's WKT in the ST_GeomFromText call used when the
// synthesizer inlines geometry into a statement.
func GeomFromText(s Shape) string {
	return "ST_GeomFromText('" + s.WKT() + "', " + strconv.Itoa(SRID) + ")"
}

// ParseWKT parses the textual form emitted by WKT back into a shape. Both
// the compact spelling (POINTZ) and the spaced one (POINT Z) are accepted.
func ParseWKT(text string) (Shape, error) {
	s := strings.TrimSpace(text)
	upper := strings.ToUpper(s)
	switch {
	case strings.HasPrefix(upper, "POINT"):
		body, err := wktBody(s, "POINT")
		if err != nil {
			return nil, err
		}
		pts, err := parseCoordSeq(body)
		if err != nil {
			return nil, err
		}
		if len(pts) != 1 {
			return nil, Error.New("point must have exactly one coordinate, got %d", len(pts))
		}
		return pts[0], nil
	case strings.HasPrefix(upper, "LINESTRING"):
		body, err := wktBody(s, "LINESTRING")
		if err != nil {
			return nil, err
		}
		pts, err := parseCoordSeq(body)
		if err != nil {
			return nil, err
		}
		return LineStringZ{Points: pts}, nil
	case strings.HasPrefix(upper, "POLYGON"):
		body, err := wktBody(s, "POLYGON")
		if err != nil {
			return nil, err
		}
		rings, err := parseRings(body)
		if err != nil {
			return nil, err
		}
		return PolygonZ{Rings: rings}, nil
	}
	return nil, Error.New("unsupported wkt shape %q", text)
}

// wktBody strips "<KIND>[ ][Z][ ]( ... )" down to the inner coordinate text.
func wktBody(s, kind string) (string, error) {
	rest := strings.TrimSpace(s[len(kind):])
	rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(rest, "Z"), "z"))
	if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
		return "", Error.New("malformed wkt %q", s)
	}
	return rest[1 : len(rest)-1], nil
}

func parseCoordSeq(body string) ([]PointZ, error) {
	var points []PointZ
	for _, triple := range strings.Split(body, ",") {
		fields := strings.Fields(strings.TrimSpace(triple))
		if len(fields) != 3 {
			return nil, Error.New("expected 3 coordinates, got %d in %q", len(fields), triple)
		}
		var p PointZ
		for i, dst := range []*float64{&p.X, &p.Y, &p.Z} {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, Error.New("bad coordinate %q: %v", fields[i], err)
			}
			*dst = v
		}
		points = append(points, p)
	}
	return points, nil
}

func parseRings(body string) ([]LineStringZ, error) {
	var rings []LineStringZ
	depth, start := 0, -1
	for i, r := range body {
		switch r {
		case '(':
			if depth == 0 {
				start = i + 1
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				pts, err := parseCoordSeq(body[start:i])
				if err != nil {
					return nil, err
				}
				rings = append(rings, LineStringZ{Points: pts})
			}
			if depth < 0 {
				return nil, Error.New("unbalanced parens in polygon body")
			}
		}
	}
	if depth != 0 {
		return nil, Error.New("unbalanced parens in polygon body")
	}
	if len(rings) == 0 {
		return nil, Error.New("polygon has no rings")
	}
	return rings, nil
}
