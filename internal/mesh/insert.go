package mesh

import "github.com/gocdt/cdt/internal/geom"

// AddPointToTriangulation inserts p into the mesh, splitting whichever
// triangle contains it into three, then restoring the Delaunay property by
// flip propagation. Returns the point's index and a triangle index touching
// it, suitable as the seed for the next call (the pipeline driver chains
// these for point-location locality). Idempotent for points coincident with
// an existing vertex. seed is the triangle to start this call's
// point-location walk from.
func (m *Mesh) AddPointToTriangulation(p geom.Point, seed int) (pointIndex, nextSeed int) {
	if existing := m.GetIndexOfPoint(p); existing != None {
		for _, ti := range m.GetTrianglesWithVertex(existing) {
			return existing, ti
		}
		return existing, seed
	}

	containing := m.FindTriangleThatContainsPoint(p, seed)
	t := m.Triangles[containing]
	a, b, c := t.V[0], t.V[1], t.V[2]
	adjAB, adjBC, adjCA := t.Adj[0], t.Adj[1], t.Adj[2]

	newIndex := m.AddPoint(p)

	// T2 and T3 are appended; T1 transforms the original triangle in place
	// (spec's in-place-splitting design note, avoiding a reallocation for
	// every point insertion).
	t2Index := len(m.Triangles)
	t3Index := t2Index + 1

	// T1 = (P, a, b): edge0 (P,a) is shared with T3's edge2 (a,P), edge2
	// (b,P) is shared with T2's edge0 (P,b).
	m.ReplaceTriangle(containing, Triangle{
		V:   [3]int{newIndex, a, b},
		Adj: [3]int{t3Index, adjAB, t2Index},
	})
	// T2 = (P, b, c): edge0 (P,b) shared with T1's edge2, edge2 (c,P) shared
	// with T3's edge0.
	m.AddTriangle(newIndex, b, c, containing, adjBC, t3Index)
	// T3 = (P, c, a): edge0 (P,c) shared with T2's edge2, edge2 (a,P) shared
	// with T1's edge0.
	m.AddTriangle(newIndex, c, a, t2Index, adjCA, containing)

	m.ReplaceAdjacent(adjAB, containing, containing)
	m.ReplaceAdjacent(adjBC, containing, t2Index)
	m.ReplaceAdjacent(adjCA, containing, t3Index)

	stack := []int{}
	for _, child := range [3]int{containing, t2Index, t3Index} {
		if m.Triangles[child].Adj[1] != None {
			stack = append(stack, child)
		}
	}
	m.fulfillDelaunayConstraint(newIndex, stack)

	return newIndex, containing
}

// fulfillDelaunayConstraint pops triangles known to have newVertex as one of
// their three vertices, and swaps the diagonal with the neighbor opposite
// newVertex whenever that neighbor's circumcircle contains newVertex.
//
// The spec describes the opposite-of-insertion neighbor as always sitting at
// local index 1 (i.e. the inserted point always at local index 0). That
// holds for the three fresh children a point split produces, but a swap can
// leave the inserted point at a different local index in the triangle on
// the far side of the flip (swapEdges's oppT gets the main triangle's
// not-in-edge vertex dropped into whatever slot the shared edge started at).
// Rather than special-case that, every pop recomputes newVertex's actual
// local index, which makes the loop correct regardless of which slot the
// vertex ends up occupying — the same legalize-and-recurse structure as the
// spec's stack, just not relying on a slot number that a flip can invalidate.
func (m *Mesh) fulfillDelaunayConstraint(newVertex int, stack []int) {
	for len(stack) > 0 {
		ti := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		t := m.Triangles[ti]
		pIdx := indexOf(t.V, newVertex)
		farEdge := (pIdx + 1) % 3
		oi := t.Adj[farEdge]
		if oi == None {
			continue
		}
		if m.IsConstrained(t.V[farEdge], t.V[(farEdge+1)%3]) {
			continue
		}
		o := m.Triangles[oi]
		if !geom.InCircumcircle(m.Points[o.V[0]], m.Points[o.V[1]], m.Points[o.V[2]], m.Points[newVertex]) {
			continue
		}

		k := indexOf(o.Adj, ti)
		m.swapEdges(ti, pIdx, oi, k)
		stack = append(stack, ti, oi)
	}
}

// quadCorners returns the four perimeter points of the quadrilateral that
// mainT (not-in-edge vertex at local index n) and oppT (shared-edge start at
// local index mIdx) would form, in the same V[n], V[n+1], opposite, V[n+2]
// order swapEdges uses. Read-only counterpart to swapEdges, for callers that
// need to inspect the quad (e.g. test convexity) before deciding to flip.
func (m *Mesh) quadCorners(mainTi, n, oppTi, mIdx int) (p0, p1, p2, p3 geom.Point) {
	mainT := m.Triangles[mainTi]
	oppT := m.Triangles[oppTi]
	o := (mIdx + 2) % 3
	p0 = m.Points[mainT.V[n]]
	p1 = m.Points[mainT.V[(n+1)%3]]
	p2 = m.Points[oppT.V[o]]
	p3 = m.Points[mainT.V[(n+2)%3]]
	return
}

// swapEdges replaces the diagonal of the quadrilateral formed by
// mainT (not-in-edge vertex at local index n) and oppT (shared-edge start at
// local index m) with the other diagonal. This is the shared primitive used
// both by Delaunay flip propagation and by the constrained-edge engine's
// quadrilateral swaps.
func (m *Mesh) swapEdges(mainTi, n, oppTi, mIdx int) {
	o := (mIdx + 2) % 3

	mainT := m.Triangles[mainTi]
	oppT := m.Triangles[oppTi]

	mainNext := (n + 1) % 3
	oppOpposite := oppT.V[o]
	mainNotIn := mainT.V[n]
	oppAdjO := oppT.Adj[o]

	mainT.V[mainNext] = oppOpposite
	oppT.V[mIdx] = mainNotIn

	oppT.Adj[mIdx] = mainT.Adj[n]
	mainT.Adj[n] = oppTi
	mainT.Adj[mainNext] = oppAdjO
	oppT.Adj[o] = mainTi

	m.ReplaceTriangle(mainTi, mainT)
	m.ReplaceTriangle(oppTi, oppT)

	m.ReplaceAdjacent(oppT.Adj[mIdx], mainTi, oppTi)
	m.ReplaceAdjacent(mainT.Adj[mainNext], oppTi, mainTi)
}
