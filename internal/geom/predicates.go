// Package geom implements the geometric predicates the triangulation engine
// is built on: orientation, in-circumcircle, quadrilateral convexity,
// point-in-triangle and segment intersection. Everything here operates on
// plain float64 coordinates in whatever space the caller hands it (the
// engine always calls these after normalizing to the unit square).
//
// None of these predicates are adaptive or exact. Ties are resolved toward
// "not flipping" / "no intersection", per the tolerance rules a caller is
// expected to live with; see the package-level Epsilon.
package geom

import "math"

// Epsilon is the tolerance used to treat two floats as equal. Mirrors the
// teacher's util.go Tolerance constant; chosen to shave off noise from
// normalization divides without eating real geometry.
const Epsilon = 1e-9

// Point is a 2D coordinate. Plain value type, not a pointer, so that it can
// be compared and used as a map key without aliasing concerns.
type Point struct {
	X, Y float64
}

// Equal reports whether two floats are within Epsilon of each other.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// PointsEqual reports coordinate equality under the same tolerance.
func PointsEqual(a, b Point) bool {
	return Equal(a.X, b.X) && Equal(a.Y, b.Y)
}

// CCW returns twice the signed area of triangle (a, b, c). Positive means
// a, b, c wind counter-clockwise; negative means clockwise; zero means
// collinear. No tolerance is applied here (IsCCW and IsCollinear add it).
func CCW(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// IsCCW reports whether a, b, c wind strictly counter-clockwise.
func IsCCW(a, b, c Point) bool {
	return CCW(a, b, c) > Epsilon
}

// IsCollinear reports whether a, b, c lie on a common line within tolerance.
func IsCollinear(a, b, c Point) bool {
	return Equal(CCW(a, b, c), 0)
}

// InCircumcircle reports whether d lies strictly inside the circumcircle of
// a, b, c. a, b, c are assumed to be given in CCW order; the caller is
// responsible for that (the insertion and constrained-edge engines always
// pass triangle vertices through in their stored CCW order).
//
// Implemented via the classic 3x3 determinant lift-to-a-paraboloid trick: a
// positive determinant means d is inside.
func InCircumcircle(a, b, c, d Point) bool {
	ax, ay := a.X-d.X, a.Y-d.Y
	bx, by := b.X-d.X, b.Y-d.Y
	cx, cy := c.X-d.X, c.Y-d.Y

	aLen := ax*ax + ay*ay
	bLen := bx*bx + by*by
	cLen := cx*cx + cy*cy

	det := ax*(by*cLen-bLen*cy) -
		ay*(bx*cLen-bLen*cx) +
		aLen*(bx*cy-by*cx)

	return det > Epsilon
}

// IsQuadrilateralConvex reports whether the quadrilateral p0-p1-p2-p3 (given
// in perimeter order) is convex, i.e. every turn around the perimeter has the
// same sign. This is the gate the constrained-edge engine uses before
// attempting to swap a diagonal: a non-convex quad cannot be re-diagonalized
// without producing overlapping triangles.
func IsQuadrilateralConvex(p0, p1, p2, p3 Point) bool {
	signs := [4]float64{
		CCW(p0, p1, p2),
		CCW(p1, p2, p3),
		CCW(p2, p3, p0),
		CCW(p3, p0, p1),
	}
	positive, negative := false, false
	for _, s := range signs {
		if s > Epsilon {
			positive = true
		} else if s < -Epsilon {
			negative = true
		} else {
			return false
		}
	}
	return positive != negative
}

// PointInTriangle reports whether p lies inside or on the boundary of
// triangle (a, b, c), which is assumed CCW. Points on an edge count as
// inside.
func PointInTriangle(p, a, b, c Point) bool {
	d0 := CCW(a, b, p)
	d1 := CCW(b, c, p)
	d2 := CCW(c, a, p)
	return d0 >= -Epsilon && d1 >= -Epsilon && d2 >= -Epsilon
}

// SegmentIntersect reports whether segment p1-p2 strictly crosses segment
// p3-p4 in both segments' interiors, writing the crossing point to *hit.
// Returns false (without writing hit) if the segments are parallel, or if
// the crossing point coincides with any of the four endpoints — this
// endpoint exclusion is what keeps the intersecting-edge walk (mesh package)
// from reporting a spurious crossing when it is merely passing through a
// vertex the two segments happen to share.
func SegmentIntersect(p1, p2, p3, p4 Point, hit *Point) bool {
	d1x, d1y := p2.X-p1.X, p2.Y-p1.Y
	d2x, d2y := p4.X-p3.X, p4.Y-p3.Y

	denom := d1x*d2y - d1y*d2x
	if Equal(denom, 0) {
		return false
	}

	ex, ey := p3.X-p1.X, p3.Y-p1.Y
	t := (ex*d2y - ey*d2x) / denom
	u := (ex*d1y - ey*d1x) / denom

	if t <= Epsilon || t >= 1-Epsilon || u <= Epsilon || u >= 1-Epsilon {
		return false
	}

	x := p1.X + t*d1x
	y := p1.Y + t*d1y
	candidate := Point{x, y}

	for _, endpoint := range [4]Point{p1, p2, p3, p4} {
		if PointsEqual(candidate, endpoint) {
			return false
		}
	}

	*hit = candidate
	return true
}
