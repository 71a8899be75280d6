// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

// Package geo holds the 3D geometry primitives stored by the resource
// engine. Coordinates are WGS84 (SRID 4326): X is longitude, Y is
// latitude, Z is altitude in meters.
package geo

// SRID is the spatial reference identifier appended to every emitted shape.
const SRID = 4326

// Shape is implemented by every geometry kind the engine can store.
type Shape interface {
	// WKT renders the shape as well-known text without the SRID wrapper.
	WKT() string
}

// PointZ is a single 3D coordinate.
type PointZ struct {
	X float64 // longitude
	Y float64 // latitude
	Z float64 // altitude
}

// LineStringZ is an ordered sequence of points.
type LineStringZ struct {
	Points []PointZ
}

// PolygonZ is a set of rings; the first ring is the exterior, the rest are
// holes. Every ring must close (first point equals last).
type PolygonZ struct {
	Rings []LineStringZ
}

// Exterior returns the outer ring, or an empty ring for a degenerate polygon.
func (p PolygonZ) Exterior() LineStringZ {
	if len(p.Rings) == 0 {
		return LineStringZ{}
	}
	return p.Rings[0]
}

// Closed reports whether the ring starts and ends on the same point.
func (l LineStringZ) Closed() bool {
	if len(l.Points) < 2 {
		return false
	}
	return l.Points[0] == l.Points[len(l.Points)-1]
}
