// Copyright (C) 2025 Skystore Labs, Inc.
// See LICENSE for copying information.

package geo

// Planar predicates used by the in-memory search fallback. All predicates
// project to the XY plane; altitude does not participate.

// Intersects reports whether the two shapes share at least one point.
func Intersects(a, b Shape) bool {
	switch av := a.(type) {
	case PointZ:
		return shapeCoversPoint(b, av)
	case LineStringZ:
		switch bv := b.(type) {
		case PointZ:
			return pointOnLine(bv, av)
		case LineStringZ:
			return linesCross(av, bv)
		case PolygonZ:
			return linePolygonIntersects(av, bv)
		}
	case PolygonZ:
		switch bv := b.(type) {
		case PointZ:
			return polygonContains(av, bv)
		case LineStringZ:
			return linePolygonIntersects(bv, av)
		case PolygonZ:
			return polygonsIntersect(av, bv)
		}
	}
	return false
}

// Within reports whether a lies entirely inside b.
func Within(a, b Shape) bool {
	poly, ok := b.(PolygonZ)
	if !ok {
		// only containment in a polygon is meaningful on the plane
		if pt, ok := a.(PointZ); ok {
			if line, ok := b.(LineStringZ); ok {
				return pointOnLine(pt, line)
			}
			if other, ok := b.(PointZ); ok {
				return pt.X == other.X && pt.Y == other.Y
			}
		}
		return false
	}
	switch av := a.(type) {
	case PointZ:
		return polygonContains(poly, av)
	case LineStringZ:
		for _, p := range av.Points {
			if !polygonContains(poly, p) {
				return false
			}
		}
		return true
	case PolygonZ:
		for _, p := range av.Exterior().Points {
			if !polygonContains(poly, p) {
				return false
			}
		}
		return true
	}
	return false
}

// Disjoint reports whether the two shapes share no point at all.
func Disjoint(a, b Shape) bool {
	return !Intersects(a, b)
}

func shapeCoversPoint(s Shape, p PointZ) bool {
	switch sv := s.(type) {
	case PointZ:
		return sv.X == p.X && sv.Y == p.Y
	case LineStringZ:
		return pointOnLine(p, sv)
	case PolygonZ:
		return polygonContains(sv, p)
	}
	return false
}

// polygonContains runs a ray cast against the exterior ring and subtracts
// holes. Points on a ring edge count as contained.
func polygonContains(poly PolygonZ, p PointZ) bool {
	if len(poly.Rings) == 0 {
		return false
	}
	if pointOnLine(p, poly.Exterior()) {
		return true
	}
	if !inRing(p, poly.Exterior()) {
		return false
	}
	for _, hole := range poly.Rings[1:] {
		if inRing(p, hole) && !pointOnLine(p, hole) {
			return false
		}
	}
	return true
}

func inRing(p PointZ, ring LineStringZ) bool {
	inside := false
	pts := ring.Points
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			cross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < cross {
				inside = !inside
			}
		}
	}
	return inside
}

func pointOnLine(p PointZ, line LineStringZ) bool {
	for i := 0; i+1 < len(line.Points); i++ {
		if onSegment(line.Points[i], line.Points[i+1], p) {
			return true
		}
	}
	return false
}

func linesCross(a, b LineStringZ) bool {
	for i := 0; i+1 < len(a.Points); i++ {
		for j := 0; j+1 < len(b.Points); j++ {
			if segmentsIntersect(a.Points[i], a.Points[i+1], b.Points[j], b.Points[j+1]) {
				return true
			}
		}
	}
	return false
}

func linePolygonIntersects(line LineStringZ, poly PolygonZ) bool {
	for _, p := range line.Points {
		if polygonContains(poly, p) {
			return true
		}
	}
	for _, ring := range poly.Rings {
		if linesCross(line, ring) {
			return true
		}
	}
	return false
}

func polygonsIntersect(a, b PolygonZ) bool {
	for _, p := range a.Exterior().Points {
		if polygonContains(b, p) {
			return true
		}
	}
	for _, p := range b.Exterior().Points {
		if polygonContains(a, p) {
			return true
		}
	}
	for _, ra := range a.Rings {
		for _, rb := range b.Rings {
			if linesCross(ra, rb) {
				return true
			}
		}
	}
	return false
}

// orientation of the ordered triple (a, b, c): 0 collinear, 1 clockwise,
// 2 counterclockwise.
func orientation(a, b, c PointZ) int {
	v := (b.Y-a.Y)*(c.X-b.X) - (b.X-a.X)*(c.Y-b.Y)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return 2
	}
	return 0
}

func onSegment(a, b, p PointZ) bool {
	if orientation(a, b, p) != 0 {
		return false
	}
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

func segmentsIntersect(p1, p2, q1, q2 PointZ) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)

	if o1 != o2 && o3 != o4 {
		return true
	}
	return (o1 == 0 && onSegment(p1, p2, q1)) ||
		(o2 == 0 && onSegment(p1, p2, q2)) ||
		(o3 == 0 && onSegment(q1, q2, p1)) ||
		(o4 == 0 && onSegment(q1, q2, p2))
}
