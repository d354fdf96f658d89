package mesh

import (
	"testing"

	"github.com/gocdt/cdt/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPointDedup(t *testing.T) {
	m := New(4, 4)
	i0 := m.AddPoint(geom.Point{X: 1, Y: 2})
	i1 := m.AddPoint(geom.Point{X: 1, Y: 2})
	i2 := m.AddPoint(geom.Point{X: 3, Y: 4})
	assert.Equal(t, i0, i1)
	assert.NotEqual(t, i0, i2)
	assert.Len(t, m.Points, 2)
}

func TestGetIndexOfPointMissing(t *testing.T) {
	m := New(4, 4)
	m.AddPoint(geom.Point{X: 1, Y: 2})
	assert.Equal(t, None, m.GetIndexOfPoint(geom.Point{X: 9, Y: 9}))
}

func TestReplaceAdjacent(t *testing.T) {
	m := New(4, 4)
	a := m.AddPoint(geom.Point{X: 0, Y: 0})
	b := m.AddPoint(geom.Point{X: 1, Y: 0})
	c := m.AddPoint(geom.Point{X: 0, Y: 1})
	i := m.AddTriangle(a, b, c, 5, None, None)
	m.ReplaceAdjacent(i, 5, 42)
	assert.Equal(t, 42, m.Triangles[i].Adj[0])

	// Replacing None is a no-op since there's no triangle there.
	m.ReplaceAdjacent(None, 5, 42)
}

func buildSquare(t *testing.T) (*Mesh, [4]int) {
	m := New(4, 4)
	bl := m.AddPoint(geom.Point{X: 0, Y: 0})
	br := m.AddPoint(geom.Point{X: 1, Y: 0})
	tr := m.AddPoint(geom.Point{X: 1, Y: 1})
	tl := m.AddPoint(geom.Point{X: 0, Y: 1})

	// Two CCW triangles sharing the bl-tr diagonal.
	t0 := m.AddTriangle(bl, br, tr, None, None, 1)
	t1 := m.AddTriangle(bl, tr, tl, 0, None, None)
	require.Equal(t, 0, t0)
	require.Equal(t, 1, t1)

	return m, [4]int{bl, br, tr, tl}
}

func TestFindTriangleThatContainsPoint(t *testing.T) {
	m, v := buildSquare(t)
	_ = v
	ti := m.FindTriangleThatContainsPoint(geom.Point{X: 0.1, Y: 0.1}, 0)
	assert.Equal(t, 0, ti)
	ti = m.FindTriangleThatContainsPoint(geom.Point{X: 0.1, Y: 0.9}, 0)
	assert.Equal(t, 1, ti)
}

func TestFindTriangleThatContainsEdge(t *testing.T) {
	m, v := buildSquare(t)
	h := m.FindTriangleThatContainsEdge(v[0], v[1]) // bl->br
	assert.Equal(t, 0, h.Triangle)
	assert.Equal(t, 0, h.Edge)

	h = m.FindTriangleThatContainsEdge(v[1], v[0]) // br->bl, doesn't exist in that order
	assert.Equal(t, None, h.Triangle)
}

func TestGetTrianglesWithVertex(t *testing.T) {
	m, v := buildSquare(t)
	tris := m.GetTrianglesWithVertex(v[0]) // bl, shared by both triangles
	assert.ElementsMatch(t, []int{0, 1}, tris)
	tris = m.GetTrianglesWithVertex(v[1]) // br, only in triangle 0
	assert.ElementsMatch(t, []int{0}, tris)
}

func TestGetTrianglesInPolygon(t *testing.T) {
	m, v := buildSquare(t)
	var out []int
	m.GetTrianglesInPolygon([]int{v[0], v[1], v[2], v[3]}, &out)
	assert.ElementsMatch(t, []int{0, 1}, out)
}
