package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCCW(t *testing.T) {
	a := Point{0, 0}
	b := Point{1, 0}
	c := Point{0, 1}
	assert.True(t, IsCCW(a, b, c))
	assert.False(t, IsCCW(a, c, b))
	assert.True(t, IsCollinear(a, b, Point{2, 0}))
}

func TestInCircumcircle(t *testing.T) {
	// Unit right triangle, circumcircle centered at (0.5, 0.5), radius sqrt(0.5)
	a := Point{0, 0}
	b := Point{1, 0}
	c := Point{0, 1}
	inside := Point{0.4, 0.4}
	outside := Point{5, 5}
	assert.True(t, InCircumcircle(a, b, c, inside))
	assert.False(t, InCircumcircle(a, b, c, outside))
}

func TestInCircumcircleCocircular(t *testing.T) {
	// Four points on the unit square are cocircular; neither diagonal's
	// opposing vertex should register as strictly inside the other's
	// circumcircle, since ties favor not flipping.
	a := Point{0, 0}
	b := Point{1, 0}
	c := Point{1, 1}
	d := Point{0, 1}
	assert.False(t, InCircumcircle(a, b, c, d))
	assert.False(t, InCircumcircle(b, c, d, a))
}

func TestIsQuadrilateralConvex(t *testing.T) {
	assert.True(t, IsQuadrilateralConvex(Point{0, 0}, Point{1, 0}, Point{1, 1}, Point{0, 1}))
	// A degenerate quad: p2 lies on the line from p1 to p3, a straight angle
	assert.False(t, IsQuadrilateralConvex(Point{0, 0}, Point{1, 0}, Point{0.5, 0.5}, Point{0, 1}))
}

func TestPointInTriangle(t *testing.T) {
	a := Point{0, 0}
	b := Point{1, 0}
	c := Point{0, 1}
	assert.True(t, PointInTriangle(Point{0.1, 0.1}, a, b, c))
	assert.True(t, PointInTriangle(Point{0.5, 0}, a, b, c)) // on edge
	assert.False(t, PointInTriangle(Point{1, 1}, a, b, c))
}

func TestSegmentIntersect(t *testing.T) {
	var hit Point
	ok := SegmentIntersect(Point{0, 0}, Point{1, 1}, Point{0, 1}, Point{1, 0}, &hit)
	assert.True(t, ok)
	assert.True(t, PointsEqual(hit, Point{0.5, 0.5}))
}

func TestSegmentIntersectSharedEndpoint(t *testing.T) {
	var hit Point
	// These segments share the point (1, 1); walking through that vertex
	// must not register as a crossing.
	ok := SegmentIntersect(Point{0, 0}, Point{1, 1}, Point{1, 1}, Point{2, 0}, &hit)
	assert.False(t, ok)
}

func TestSegmentIntersectParallel(t *testing.T) {
	var hit Point
	ok := SegmentIntersect(Point{0, 0}, Point{1, 0}, Point{0, 1}, Point{1, 1}, &hit)
	assert.False(t, ok)
}
