package mesh

import (
	"github.com/gocdt/cdt/internal/cdtlog"
	"github.com/gocdt/cdt/internal/dbg"
	"github.com/gocdt/cdt/internal/geom"
	"go.uber.org/zap"
)

// AddConstrainedEdgeToTriangulation forces an edge between point indices a
// and b to exist in the mesh, by repeatedly flipping whichever mesh edges
// currently cross it, and marks the result so later point insertions never
// flip it back out. Both a and b must already be vertices in the mesh.
//
// If the edge already exists (in either direction), this only marks it
// constrained and returns — spec's silent idempotence for already-present
// constraints.
func (m *Mesh) AddConstrainedEdgeToTriangulation(a, b int) {
	if h := m.FindTriangleThatContainsEdge(a, b); h.Triangle != None {
		m.MarkConstrained(a, b)
		return
	}
	if h := m.FindTriangleThatContainsEdge(b, a); h.Triangle != None {
		m.MarkConstrained(a, b)
		return
	}

	t0 := m.FindTriangleThatContainsLineEndpoint(a, b)

	var crossing []EdgeHandle
	m.GetIntersectingEdges(a, b, t0, &crossing)

	pa, pb := m.Points[a], m.Points[b]
	var newEdges [][2]int

	for len(crossing) > 0 {
		// Earlier swaps may have moved this edge to another triangle or
		// slot, so look it up again by its endpoints.
		e := m.FindTriangleThatContainsEdge(crossing[0].A, crossing[0].B)
		crossing = crossing[1:]

		ti := e.Triangle
		n := (e.Edge + 2) % 3 // not-in-edge vertex of the intersected triangle
		oppTi := m.Triangles[ti].Adj[e.Edge]
		mIdx := indexOf(m.Triangles[oppTi].Adj, ti)

		p0, p1, p2, p3 := m.quadCorners(ti, n, oppTi, mIdx)
		if !geom.IsQuadrilateralConvex(p0, p1, p2, p3) {
			// Can't flip yet; the diagonal on the other side of this
			// quadrilateral needs to resolve first. Try again later.
			cdtlog.Debug("deferring non-convex quad swap",
				zap.String("triangle", dbg.Triangle(ti)), zap.String("opposite", dbg.Triangle(oppTi)))
			crossing = append(crossing, e)
			continue
		}

		m.swapEdges(ti, n, oppTi, mIdx)

		// The new diagonal runs between the quad's two "apex" vertices,
		// now sitting at mainT.V[n] and mainT.V[(n+1)%3].
		newT := m.Triangles[ti]
		na, nb := newT.V[n], newT.V[(n+1)%3]

		var hit geom.Point
		stillCrosses := (na != a && na != b && nb != a && nb != b) &&
			geom.SegmentIntersect(pa, pb, m.Points[na], m.Points[nb], &hit)
		if stillCrosses {
			crossing = append(crossing, EdgeHandle{Triangle: ti, Edge: n, A: na, B: nb})
		} else {
			newEdges = append(newEdges, [2]int{na, nb})
		}
	}

	for _, edge := range newEdges {
		if (edge[0] == a && edge[1] == b) || (edge[0] == b && edge[1] == a) {
			continue
		}
		m.legalizeNewEdge(edge[0], edge[1])
	}

	m.MarkConstrained(a, b)
	cdtlog.Debug("forced constrained edge", zap.String("a", dbg.Point(a)), zap.String("b", dbg.Point(b)))
}

// legalizeNewEdge checks the Delaunay property across a single edge created
// while forcing a constrained edge into place, and swaps it once if
// violated. Unlike fulfillDelaunayConstraint, this doesn't propagate further:
// spec §4.5 describes one pass over the newly created edges, not a full
// re-legalization (the mesh may still have unrelated illegal edges elsewhere
// that a later insertion's flip propagation will find and fix).
func (m *Mesh) legalizeNewEdge(a, b int) {
	h := m.FindTriangleThatContainsEdge(a, b)
	if h.Triangle == None {
		h = m.FindTriangleThatContainsEdge(b, a)
	}
	if h.Triangle == None {
		return
	}
	ti := h.Triangle
	n := (h.Edge + 2) % 3
	oppTi := m.Triangles[ti].Adj[h.Edge]
	if oppTi == None {
		return
	}
	if m.IsConstrained(a, b) {
		return
	}

	mainT := m.Triangles[ti]
	oppT := m.Triangles[oppTi]
	mIdx := indexOf(oppT.Adj, ti)
	farApex := oppT.V[(mIdx+2)%3]

	if !geom.InCircumcircle(m.Points[mainT.V[0]], m.Points[mainT.V[1]], m.Points[mainT.V[2]], m.Points[farApex]) {
		return
	}
	m.swapEdges(ti, n, oppTi, mIdx)
}
