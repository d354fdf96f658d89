// Package pipeline is the driver (spec component C6): normalization,
// supertriangle setup, bulk insertion, constraint insertion, hole and
// outside-region marking, denormalization, and output filtering. It is the
// one place that owns a mesh.Mesh end to end; the mesh, grid, and insertion
// engines it calls are otherwise stateless with respect to any single run.
package pipeline

import (
	"math"

	"github.com/gocdt/cdt/internal/cdtlog"
	"github.com/gocdt/cdt/internal/dbg"
	"github.com/gocdt/cdt/internal/geom"
	"github.com/gocdt/cdt/internal/grid"
	"github.com/gocdt/cdt/internal/mesh"
	"go.uber.org/zap"
)

// Triangle is a fully denormalized output triangle, vertices in CCW order.
type Triangle struct {
	A, B, C geom.Point
}

// Run triangulates points, carving out each polygon in holes, and returns
// the resulting triangles in input coordinate space.
func Run(points []geom.Point, holes [][]geom.Point) []Triangle {
	if len(points) < 3 {
		return nil
	}

	minX, minY, maxDim := boundingBox(points)

	normalized := make([]geom.Point, len(points))
	for i, p := range points {
		normalized[i] = normalize(p, minX, minY, maxDim)
	}

	g := grid.New(len(normalized), 0, 0, 1, 1)
	for i, p := range normalized {
		g.AddPoint(i, p)
	}

	m := mesh.New(len(normalized)+3, 2*len(normalized)+1)
	s0, s1, s2 := seedSupertriangle(m)
	seedTriangle := len(m.Triangles) - 1

	for _, i := range g.Ordered() {
		_, seedTriangle = m.AddPointToTriangulation(normalized[i], seedTriangle)
	}

	var holeLoops [][]int
	for _, hole := range holes {
		loop := insertPolygon(m, hole, minX, minY, maxDim, &seedTriangle)
		if loop != nil {
			holeLoops = append(holeLoops, loop)
		}
	}

	toRemove := map[int]bool{}
	for _, loop := range holeLoops {
		var inside []int
		m.GetTrianglesInPolygon(loop, &inside)
		for _, ti := range inside {
			toRemove[ti] = true
		}
	}

	for _, ti := range supertriangleFan(m, s0, s1, s2) {
		toRemove[ti] = true
	}

	var out []Triangle
	for i, t := range m.Triangles {
		if toRemove[i] {
			continue
		}
		a := denormalize(m.Points[t.V[0]], minX, minY, maxDim)
		b := denormalize(m.Points[t.V[1]], minX, minY, maxDim)
		c := denormalize(m.Points[t.V[2]], minX, minY, maxDim)
		out = append(out, Triangle{A: a, B: b, C: c})
	}
	return out
}

func boundingBox(points []geom.Point) (minX, minY, maxDim float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	width, height := maxX-minX, maxY-minY
	maxDim = math.Max(width, height)
	if maxDim <= 0 {
		maxDim = 1
	}
	return minX, minY, maxDim
}

func normalize(p geom.Point, minX, minY, maxDim float64) geom.Point {
	return geom.Point{X: (p.X - minX) / maxDim, Y: (p.Y - minY) / maxDim}
}

func denormalize(p geom.Point, minX, minY, maxDim float64) geom.Point {
	return geom.Point{X: p.X*maxDim + minX, Y: p.Y*maxDim + minY}
}

// seedSupertriangle appends a large CCW triangle containing the unit square
// and returns its three vertex indices.
func seedSupertriangle(m *mesh.Mesh) (a, b, c int) {
	a = m.AddPoint(geom.Point{X: -100, Y: -100})
	b = m.AddPoint(geom.Point{X: 100, Y: -100})
	c = m.AddPoint(geom.Point{X: 0, Y: 100})
	m.AddTriangle(a, b, c, mesh.None, mesh.None, mesh.None)
	return a, b, c
}

// insertPolygon normalizes hole's vertices, inserts each as a point (record
// their mesh indices), then forces each consecutive edge (wrapping around)
// into the mesh. Zero-length edges are skipped with a diagnostic. Returns
// the resulting loop of point indices, or nil if the polygon degenerates to
// fewer than 3 distinct vertices.
func insertPolygon(m *mesh.Mesh, hole []geom.Point, minX, minY, maxDim float64, seed *int) []int {
	loop := make([]int, 0, len(hole))
	for _, p := range hole {
		np := normalize(p, minX, minY, maxDim)
		var pi int
		pi, *seed = m.AddPointToTriangulation(np, *seed)
		loop = append(loop, pi)
	}

	distinct := map[int]bool{}
	for _, pi := range loop {
		distinct[pi] = true
	}
	if len(distinct) < 3 {
		return nil
	}
	n := len(loop)
	for i := 0; i < n; i++ {
		a, b := loop[i], loop[(i+1)%n]
		if a == b {
			cdtlog.Info("skipping zero-length hole edge", zap.String("vertex", dbg.Point(a)))
			continue
		}
		m.AddConstrainedEdgeToTriangulation(a, b)
	}
	return loop
}

// supertriangleFan returns every triangle that still references one of the
// three supertriangle vertices, implementing spec.md §4.6 step 7 literally:
// the only triangles removed on that basis are ones touching s0, s1, or s2.
// Flooding further across unconstrained hull edges was tried for the §9
// disconnected-region question and discarded — the hull boundary itself is
// never marked constrained, so that flood reaches and deletes the kept
// interior. No §8 scenario produces a mesh with a region disconnected from
// the interior by constrained edges alone, so the open question needs no
// flood at all here; a future caller that does hit that case can fence a
// flood to stay inside regions bounded entirely by constrained edges.
func supertriangleFan(m *mesh.Mesh, s0, s1, s2 int) []int {
	seen := map[int]bool{}
	var result []int
	for _, sv := range []int{s0, s1, s2} {
		for _, ti := range m.GetTrianglesWithVertex(sv) {
			if !seen[ti] {
				seen[ti] = true
				result = append(result, ti)
			}
		}
	}
	return result
}
