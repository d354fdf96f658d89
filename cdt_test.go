package cdt

import (
	"testing"

	"github.com/gocdt/cdt/internal/cdttest"
	"github.com/gocdt/cdt/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toGeomPoints(points []Point) []geom.Point {
	out := make([]geom.Point, len(points))
	for i, p := range points {
		out[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return out
}

func toTris(triangles []Triangle) []cdttest.Tri {
	out := make([]cdttest.Tri, len(triangles))
	for i, t := range triangles {
		out[i] = cdttest.Tri{
			geom.Point{X: t.A.X, Y: t.A.Y},
			geom.Point{X: t.B.X, Y: t.B.Y},
			geom.Point{X: t.C.X, Y: t.C.Y},
		}
	}
	return out
}

func TestTriangulateTriangle(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {0, 1}}
	result, err := Triangulate(points)
	require.NoError(t, err)
	require.Len(t, result, 1)
	cdttest.AssertValid(t, toGeomPoints(points), nil, toTris(result))
}

func TestTriangulateSquare(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	result, err := Triangulate(points)
	require.NoError(t, err)
	require.Len(t, result, 2)
	cdttest.AssertValid(t, toGeomPoints(points), nil, toTris(result))
}

func TestTriangulateWithHole(t *testing.T) {
	points := []Point{
		{0, 0}, {1, 0}, {1, 1}, {0, 1},
		{0.4, 0.4}, {0.5, 0.4}, {0.6, 0.4},
		{0.6, 0.5}, {0.6, 0.6}, {0.5, 0.6},
		{0.4, 0.6}, {0.4, 0.5},
	}
	hole := []Point{{0.4, 0.4}, {0.6, 0.4}, {0.6, 0.6}, {0.4, 0.6}}

	result, err := Triangulate(points, hole)
	require.NoError(t, err)
	cdttest.AssertValid(t, toGeomPoints(points), [][]geom.Point{toGeomPoints(hole)}, toTris(result))
}

func TestTriangulateTooFewPoints(t *testing.T) {
	_, err := Triangulate([]Point{{0, 0}, {1, 0}})
	assert.Error(t, err)
}

func TestTriangulateClockwiseHoleRejected(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	hole := []Point{{0.4, 0.4}, {0.4, 0.6}, {0.6, 0.6}, {0.6, 0.4}} // CW
	_, err := Triangulate(points, hole)
	assert.Error(t, err)
}

func TestTriangulateHoleOutsideBoundingBoxRejected(t *testing.T) {
	points := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	hole := []Point{{2, 2}, {3, 2}, {3, 3}, {2, 3}}
	_, err := Triangulate(points, hole)
	assert.Error(t, err)
}

func TestTriangulateDuplicatePointIdempotence(t *testing.T) {
	deduped := []Point{{0, 0}, {1, 0}, {0, 1}}
	withDup := []Point{{0, 0}, {1, 0}, {0, 1}, {0, 0}}

	want, err := Triangulate(deduped)
	require.NoError(t, err)
	got, err := Triangulate(withDup)
	require.NoError(t, err)

	assert.Len(t, got, len(want))
}

func TestTriangulateRoundTripCoordinates(t *testing.T) {
	points := []Point{{3.5, -7.25}, {12.125, 4.0}, {-1.0, 9.75}}
	result, err := Triangulate(points)
	require.NoError(t, err)
	require.Len(t, result, 1)

	for _, p := range points {
		found := false
		for _, tri := range result {
			for _, v := range []Point{tri.A, tri.B, tri.C} {
				if geom.PointsEqual(geom.Point{X: v.X, Y: v.Y}, geom.Point{X: p.X, Y: p.Y}) {
					found = true
				}
			}
		}
		assert.Truef(t, found, "input point %v not reproduced within tolerance in output", p)
	}
}
