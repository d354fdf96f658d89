// Package mesh is the triangle set (spec component C3): an append-only array
// of points and an append-only (with in-place mutation) array of triangles
// with adjacency, plus the primitive topology queries everything else is
// built from. Adjacency is stored as triangle indices rather than pointers —
// see SPEC_FULL.md's design-note on why that's load-bearing for add_point's
// coordinate-equality dedup, unlike the teacher's pointer-identity Points.
package mesh

import "github.com/gocdt/cdt/internal/geom"

// None is the adjacency sentinel for "no neighbor across this edge".
const None = -1

// Triangle holds three CCW vertex indices and the triangle index (or None)
// adjacent across each edge. Adj[k] is the neighbor across the edge
// (V[k], V[(k+1)%3]).
type Triangle struct {
	V   [3]int
	Adj [3]int
}

// EdgeHandle names an oriented edge inside a specific triangle:
// (TriangleIndex, EdgeIndex, A, B) where A, B are point indices and the edge
// runs A->B as stored in that triangle (V[EdgeIndex] == A, V[(EdgeIndex+1)%3] == B).
type EdgeHandle struct {
	Triangle int
	Edge     int
	A, B     int
}

// Mesh is the triangle set: points and triangles, growable, with adjacency
// maintained by every mutator in this package and in insert.go/constrain.go.
//
// constrained records every edge forced into the mesh by the constrained-
// edge engine, keyed by its unordered point-index pair. The spec's data
// model doesn't list this as a field of DelaunayTriangle, but spec §4.5's
// last line ("constrained edges are not allowed to be flipped again") is
// only enforceable across later, unrelated point insertions if something
// remembers which edges those are — the pipeline driver inserts hole
// polygons one at a time, and a later polygon's ordinary point insertions
// must not undo an earlier polygon's forced edge.
type Mesh struct {
	Points      []geom.Point
	Triangles   []Triangle
	constrained map[[2]int]bool
}

// New returns an empty mesh with the given point/triangle capacity hints.
// Per spec §5, callers may reuse a Mesh across calls by clearing it and
// re-presetting capacity rather than reallocating.
func New(pointCapacity, triangleCapacity int) *Mesh {
	return &Mesh{
		Points:      make([]geom.Point, 0, pointCapacity),
		Triangles:   make([]Triangle, 0, triangleCapacity),
		constrained: make(map[[2]int]bool),
	}
}

// Reset clears the mesh's contents while retaining its backing capacity.
func (m *Mesh) Reset() {
	m.Points = m.Points[:0]
	m.Triangles = m.Triangles[:0]
	m.constrained = make(map[[2]int]bool)
}

func constrainedKey(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

// MarkConstrained records that edge (a, b) must never be flipped again.
func (m *Mesh) MarkConstrained(a, b int) {
	m.constrained[constrainedKey(a, b)] = true
}

// IsConstrained reports whether edge (a, b) (in either direction) has been
// forced into the mesh as a constrained edge.
func (m *Mesh) IsConstrained(a, b int) bool {
	return m.constrained[constrainedKey(a, b)]
}

// Point returns the point stored at index i.
func (m *Mesh) Point(i int) geom.Point {
	return m.Points[i]
}
