// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package geo_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	twgeom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"

	"skystore.io/skystore/pkg/geo"
)

func TestPointWKT(t *testing.T) {
	p := geo.PointZ{X: -122.419, Y: 37.774, Z: 12.5}
	text := p.WKT()
	require.True(t, strings.HasPrefix(text, "POINTZ("))
	require.Contains(t, text, "-122.419000000000000 37.774000000000000 12.500000000000000")

	parsed, err := geo.ParseWKT(text)
	require.NoError(t, err)
	require.Equal(t, p, parsed)
}

// Coordinates whose binary representation is inexact must still come out
// clean at fifteen significant digits.
func TestPointWKTNoBinaryNoise(t *testing.T) {
	for _, tc := range []struct {
		in   geo.PointZ
		want string
	}{
		{geo.PointZ{X: 0.1, Y: -0.3, Z: 2.675}, "POINTZ(0.100000000000000 -0.300000000000000 2.675000000000000)"},
		{geo.PointZ{X: -73.9857, Y: 40.7484, Z: 381.1}, "POINTZ(-73.985700000000000 40.748400000000000 381.100000000000000)"},
		{geo.PointZ{X: 0.00001, Y: 0, Z: 1234567.89}, "POINTZ(0.000010000000000 0.000000000000000 1234567.890000000000000)"},
	} {
		require.Equal(t, tc.want, tc.in.WKT())
	}
}

func TestLineStringRoundTrip(t *testing.T) {
	l := geo.LineStringZ{Points: []geo.PointZ{
		{X: 0, Y: 0, Z: 100},
		{X: 1, Y: 1, Z: 150},
		{X: 2, Y: 0.5, Z: 120},
	}}
	parsed, err := geo.ParseWKT(l.WKT())
	require.NoError(t, err)
	require.Equal(t, l, parsed)
}

func TestPolygonRoundTrip(t *testing.T) {
	poly := geo.PolygonZ{Rings: []geo.LineStringZ{
		{Points: []geo.PointZ{{0, 0, 0}, {4, 0, 0}, {4, 4, 0}, {0, 4, 0}, {0, 0, 0}}},
		{Points: []geo.PointZ{{1, 1, 0}, {2, 1, 0}, {2, 2, 0}, {1, 2, 0}, {1, 1, 0}}},
	}}
	parsed, err := geo.ParseWKT(poly.WKT())
	require.NoError(t, err)
	require.Equal(t, poly, parsed)
}

// The parser also accepts the spaced spelling that PostGIS and other
// emitters produce; go-geom serves as the independent emitter.
func TestParseForeignWKT(t *testing.T) {
	point := twgeom.NewPointFlat(twgeom.XYZ, []float64{5.5, 6.25, 30})
	text, err := wkt.Marshal(point)
	require.NoError(t, err)

	parsed, err := geo.ParseWKT(text)
	require.NoError(t, err)
	require.Equal(t, geo.PointZ{X: 5.5, Y: 6.25, Z: 30}, parsed)

	line := twgeom.NewLineStringFlat(twgeom.XYZ, []float64{0, 0, 1, 2, 2, 3})
	text, err = wkt.Marshal(line)
	require.NoError(t, err)

	parsed, err = geo.ParseWKT(text)
	require.NoError(t, err)
	require.Equal(t, geo.LineStringZ{Points: []geo.PointZ{{0, 0, 1}, {2, 2, 3}}}, parsed)
}

func TestParseErrors(t *testing.T) {
	for _, bad := range []string{
		"",
		"CIRCLE(1 2 3)",
		"POINTZ(1 2)",
		"POINTZ(1 2 3",
		"POLYGONZ()",
	} {
		_, err := geo.ParseWKT(bad)
		require.Error(t, err, "input %q", bad)
	}
}

func TestGeomFromText(t *testing.T) {
	p := geo.PointZ{X: 1, Y: 2, Z: 3}
	lit := geo.GeomFromText(p)
	require.True(t, strings.HasPrefix(lit, "ST_GeomFromText('POINTZ("))
	require.True(t, strings.HasSuffix(lit, "', 4326)"))
}
