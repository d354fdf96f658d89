package mesh

import (
	"github.com/gocdt/cdt/internal/cdterr"
	"github.com/gocdt/cdt/internal/geom"
)

// AddPoint returns the index of p, appending it if no existing point has
// equal coordinates (within geom.Epsilon). This is the idempotence spec §7
// calls "silent": inserting a coincident point is a no-op that returns the
// existing index.
func (m *Mesh) AddPoint(p geom.Point) int {
	if i := m.GetIndexOfPoint(p); i != None {
		return i
	}
	m.Points = append(m.Points, p)
	return len(m.Points) - 1
}

// GetIndexOfPoint linearly scans for a point with equal coordinates,
// returning None if there isn't one.
func (m *Mesh) GetIndexOfPoint(p geom.Point) int {
	for i, q := range m.Points {
		if geom.PointsEqual(p, q) {
			return i
		}
	}
	return None
}

// AddTriangle appends a new triangle with the given CCW vertices and
// per-edge adjacency, returning its index. The caller is responsible for
// CCW order and for the adjacency being correct at the time of the call.
func (m *Mesh) AddTriangle(v0, v1, v2, a0, a1, a2 int) int {
	m.Triangles = append(m.Triangles, Triangle{
		V:   [3]int{v0, v1, v2},
		Adj: [3]int{a0, a1, a2},
	})
	return len(m.Triangles) - 1
}

// ReplaceTriangle overwrites triangle i in place.
func (m *Mesh) ReplaceTriangle(i int, t Triangle) {
	m.Triangles[i] = t
}

// ReplaceAdjacent finds the slot in triangle i whose neighbor is oldNeighbor
// and sets it to newNeighbor. A no-op if oldNeighbor is None (there's
// nothing to retarget across a mesh boundary) or if i itself is None.
func (m *Mesh) ReplaceAdjacent(i, oldNeighbor, newNeighbor int) {
	if i == None || oldNeighbor == None {
		return
	}
	t := &m.Triangles[i]
	for k := 0; k < 3; k++ {
		if t.Adj[k] == oldNeighbor {
			t.Adj[k] = newNeighbor
			return
		}
	}
}

// vertex returns the point for the k'th (mod 3) vertex of triangle i.
func (m *Mesh) vertex(i, k int) geom.Point {
	return m.Points[m.Triangles[i].V[k%3]]
}

// FindTriangleThatContainsPoint walks from seed toward p, crossing whichever
// edge's half-plane most excludes p (the most negative CCW, not merely the
// first excluding edge found), until all three edges include it. Preferring
// the worst excluder is what keeps the walk converging instead of cycling
// between two triangles that each exclude p across a different edge. If the
// walk would cross a None adjacency, p lies outside the current
// triangulation, which is a broken invariant (the supertriangle is supposed
// to contain every normalized point) and is therefore fatal.
func (m *Mesh) FindTriangleThatContainsPoint(p geom.Point, seed int) int {
	current := seed
	// Bound the walk generously; a collinear fan or other degenerate input
	// can make it loop forever, which spec §7 documents as an acceptable
	// failure to detect and report rather than hang.
	maxSteps := 8*len(m.Triangles) + 16
	for step := 0; step < maxSteps; step++ {
		t := m.Triangles[current]
		excluding := -1
		worst := -geom.Epsilon
		for k := 0; k < 3; k++ {
			a := m.Points[t.V[k]]
			b := m.Points[t.V[(k+1)%3]]
			ccw := geom.CCW(a, b, p)
			if ccw < worst {
				worst = ccw
				excluding = k
			}
		}
		if excluding == -1 {
			return current
		}
		next := t.Adj[excluding]
		if next == None {
			cdterr.Fatalf("point location walk left the triangulation at point (%g, %g)", p.X, p.Y)
		}
		current = next
	}
	cdterr.Fatalf("point location walk did not converge for point (%g, %g); input may contain a collinear fan", p.X, p.Y)
	return None // unreachable
}

// FindTriangleThatContainsEdge searches for a triangle whose edge k runs
// exactly a->b in that order (V[k] == a, V[(k+1)%3] == b), returning its
// EdgeHandle, or a zero handle with Triangle == None if there isn't one.
func (m *Mesh) FindTriangleThatContainsEdge(a, b int) EdgeHandle {
	for i, t := range m.Triangles {
		for k := 0; k < 3; k++ {
			if t.V[k] == a && t.V[(k+1)%3] == b {
				return EdgeHandle{Triangle: i, Edge: k, A: a, B: b}
			}
		}
	}
	return EdgeHandle{Triangle: None}
}

// FindTriangleThatContainsLineEndpoint returns the index of the triangle,
// among those with vertex a, whose interior angle at a contains the ray
// toward b — i.e. the ray from a toward b enters that triangle's interior.
// Fatal if a is not a vertex of any triangle, or if no incident triangle's
// angle contains the ray (both indicate a broken invariant).
func (m *Mesh) FindTriangleThatContainsLineEndpoint(a, b int) int {
	pa := m.Points[a]
	pb := m.Points[b]
	for _, ti := range m.GetTrianglesWithVertex(a) {
		t := m.Triangles[ti]
		k := indexOf(t.V, a)
		prev := m.Points[t.V[(k+2)%3]]
		next := m.Points[t.V[(k+1)%3]]
		// The ray a->b is inside the wedge at vertex a between edges
		// a->prev and a->next iff it is not to the right of a->next, and
		// not to the left of a->prev (both measured going CCW around a).
		if geom.CCW(pa, next, pb) >= -geom.Epsilon && geom.CCW(pa, pb, prev) >= -geom.Epsilon {
			return ti
		}
	}
	cdterr.Fatalf("no triangle at vertex %d contains the ray toward vertex %d", a, b)
	return None // unreachable
}

func indexOf(v [3]int, x int) int {
	for k, value := range v {
		if value == x {
			return k
		}
	}
	cdterr.Fatalf("vertex %d not found in triangle", x)
	return -1 // unreachable
}

// GetIntersectingEdges walks topologically from startTriangle toward pB,
// appending every edge strictly crossed by segment pA->pB to *out. When the
// walk's next triangle shares a vertex with pA or pB, that shared vertex is
// skipped rather than reported as an intersection (see SPEC_FULL.md's
// formalization of endpoint handling). The walk stops
// once it reaches a triangle having pB as a vertex.
func (m *Mesh) GetIntersectingEdges(a, b, startTriangle int, out *[]EdgeHandle) {
	pA := m.Points[a]
	pB := m.Points[b]

	current := startTriangle
	prev := None
	visited := make(map[int]bool)
	maxSteps := 8*len(m.Triangles) + 16
	for step := 0; step < maxSteps; step++ {
		if visited[current] {
			cdterr.Fatalf("intersecting-edge walk revisited triangle %d without converging", current)
		}
		visited[current] = true

		t := m.Triangles[current]
		if hasVertex(t.V, b) {
			return
		}

		advanced := false
		for k := 0; k < 3; k++ {
			va := t.V[k]
			vb := t.V[(k+1)%3]
			if va == a || va == b || vb == a || vb == b {
				// Shared endpoint with the query segment: never an
				// intersection, just skip past it.
				continue
			}
			if prev != None && t.Adj[k] == prev {
				continue // the edge the walk just crossed to get here
			}
			var hit geom.Point
			if geom.SegmentIntersect(pA, pB, m.Points[va], m.Points[vb], &hit) {
				*out = append(*out, EdgeHandle{Triangle: current, Edge: k, A: va, B: vb})
				prev = current
				current = t.Adj[k]
				if current == None {
					cdterr.Fatalf("intersecting-edge walk left the triangulation crossing edge (%d,%d)", va, vb)
				}
				advanced = true
				break
			}
		}
		if !advanced {
			// No edge of this triangle is strictly crossed; the segment
			// must pass through a vertex of it. Move toward b by crossing
			// whichever edge faces b most directly.
			next := m.advanceTowardVertex(current, a, b)
			if next == current {
				return
			}
			prev = None
			current = next
		}
	}
	cdterr.Fatalf("intersecting-edge walk from %d to %d did not converge", a, b)
}

// advanceTowardVertex is used when the segment a->b passes exactly through a
// vertex of the current triangle rather than crossing one of its edges; it
// finds the next triangle around that shared vertex that the segment
// continues into.
func (m *Mesh) advanceTowardVertex(current, a, b int) int {
	t := m.Triangles[current]
	for _, shared := range []int{a, b} {
		if !hasVertex(t.V, shared) {
			continue
		}
		if shared == b {
			return current
		}
		return m.FindTriangleThatContainsLineEndpoint(shared, b)
	}
	cdterr.Fatalf("intersecting-edge walk stalled at triangle %d", current)
	return current
}

func hasVertex(v [3]int, x int) bool {
	return v[0] == x || v[1] == x || v[2] == x
}

// GetTrianglesInPolygon flood-fills the interior of the CCW polygon
// described by loop (a slice of point indices), starting from a triangle
// known to lie inside it, and appends every reached triangle index to *out,
// deduplicated via a seen-set. Propagation stops whenever it would cross a
// polygon edge.
func (m *Mesh) GetTrianglesInPolygon(loop []int, out *[]int) {
	n := len(loop)
	if n < 3 {
		return
	}
	edges := make(map[[2]int]bool, n)
	for i := 0; i < n; i++ {
		edges[[2]int{loop[i], loop[(i+1)%n]}] = true
	}

	seed := m.seedTriangleInsidePolygon(loop, edges)
	if seed == None {
		return
	}

	seen := map[int]bool{}
	stack := []int{seed}
	for len(stack) > 0 {
		ti := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[ti] {
			continue
		}
		seen[ti] = true
		*out = append(*out, ti)

		t := m.Triangles[ti]
		for k := 0; k < 3; k++ {
			v0, v1 := t.V[k], t.V[(k+1)%3]
			if edges[[2]int{v0, v1}] || edges[[2]int{v1, v0}] {
				continue // polygon boundary: don't propagate across it
			}
			if next := t.Adj[k]; next != None && !seen[next] {
				stack = append(stack, next)
			}
		}
	}
}

// seedTriangleInsidePolygon finds a triangle adjacent to a polygon edge, on
// the left (interior) side when the edge is traversed in its CCW direction.
func (m *Mesh) seedTriangleInsidePolygon(loop []int, edges map[[2]int]bool) int {
	for i := range loop {
		a, b := loop[i], loop[(i+1)%len(loop)]
		handle := m.FindTriangleThatContainsEdge(a, b)
		if handle.Triangle != None {
			return handle.Triangle
		}
	}
	return None
}

// GetTrianglesWithVertex enumerates every triangle referencing vertex v by
// scanning the triangle array.
func (m *Mesh) GetTrianglesWithVertex(v int) []int {
	var result []int
	for i, t := range m.Triangles {
		if hasVertex(t.V, v) {
			result = append(result, i)
		}
	}
	return result
}
