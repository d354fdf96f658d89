// Package cdt computes a constrained Delaunay triangulation of a planar
// point set, optionally carving out holes bounded by simple CCW polygons.
//
// Triangulate is the single entry point. It normalizes input into the unit
// square, triangulates via incremental point insertion with Delaunay
// edge-flip restoration, forces each hole boundary into the mesh via
// quadrilateral-swap constrained-edge insertion, discards the hole
// interiors and the seeding supertriangle, and returns the result
// denormalized back into the caller's coordinate space.
package cdt

import (
	"github.com/gocdt/cdt/internal/cdterr"
	"github.com/gocdt/cdt/internal/geom"
	"github.com/gocdt/cdt/internal/pipeline"
)

// Point is a 2D point in the caller's coordinate space.
type Point struct {
	X, Y float64
}

// Triangle is an output triangle with vertices in CCW order.
type Triangle struct {
	A, B, C Point
}

// Triangulate computes the constrained Delaunay triangulation of points,
// subtracting each polygon in holes. Each hole must be a simple, CCW,
// closed polygon (the closing edge from its last vertex to its first is
// implicit) whose vertices lie within the bounding box of points.
//
// Returns an error for contract violations: fewer than three input points,
// a self-intersecting or clockwise hole polygon, a hole vertex outside the
// input bounding box, or an internal invariant failure during point
// location. It never panics.
func Triangulate(points []Point, holes ...[]Point) (result []Triangle, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = cdterr.Recover(r)
		}
	}()

	if len(points) < 3 {
		cdterr.Fatalf("triangulate requires at least 3 input points, got %d", len(points))
	}

	gpoints := toGeomSlice(points)
	validateHoles(gpoints, holes)

	gholes := make([][]geom.Point, len(holes))
	for i, h := range holes {
		gholes[i] = toGeomSlice(h)
	}

	out := pipeline.Run(gpoints, gholes)

	result = make([]Triangle, len(out))
	for i, t := range out {
		result[i] = Triangle{A: fromGeom(t.A), B: fromGeom(t.B), C: fromGeom(t.C)}
	}
	return result, nil
}

func toGeomSlice(points []Point) []geom.Point {
	out := make([]geom.Point, len(points))
	for i, p := range points {
		out[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return out
}

func fromGeom(p geom.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

// validateHoles checks the contract-violation preconditions spec.md §7
// assigns to hole polygons, before any mesh state is built: simplicity
// (no self-intersection), CCW orientation, and containment within the
// input bounding box.
func validateHoles(points []geom.Point, holes [][]Point) {
	if len(holes) == 0 {
		return
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	for hi, hole := range holes {
		n := len(hole)
		if n < 3 {
			cdterr.Fatalf("hole polygon %d has fewer than 3 vertices", hi)
		}
		gh := toGeomSlice(hole)

		var signedArea float64
		for i := 0; i < n; i++ {
			a, b := gh[i], gh[(i+1)%n]
			signedArea += a.X*b.Y - b.X*a.Y
			if a.X < minX-geom.Epsilon || a.X > maxX+geom.Epsilon || a.Y < minY-geom.Epsilon || a.Y > maxY+geom.Epsilon {
				cdterr.Fatalf("hole polygon %d vertex %d (%g, %g) lies outside the input bounding box", hi, i, a.X, a.Y)
			}
		}
		if signedArea <= 0 {
			cdterr.Fatalf("hole polygon %d is not CCW", hi)
		}

		for i := 0; i < n; i++ {
			a1, a2 := gh[i], gh[(i+1)%n]
			for j := i + 1; j < n; j++ {
				b1, b2 := gh[j], gh[(j+1)%n]
				if j == i || (j+1)%n == i {
					continue
				}
				var hit geom.Point
				if geom.SegmentIntersect(a1, a2, b1, b2, &hit) {
					cdterr.Fatalf("hole polygon %d self-intersects between edges %d and %d", hi, i, j)
				}
			}
		}
	}
}
