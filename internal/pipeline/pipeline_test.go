package pipeline

import (
	"testing"

	"github.com/gocdt/cdt/internal/cdttest"
	"github.com/gocdt/cdt/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toTris(out []Triangle) []cdttest.Tri {
	tris := make([]cdttest.Tri, len(out))
	for i, t := range out {
		tris[i] = cdttest.Tri{t.A, t.B, t.C}
	}
	return tris
}

func TestRunTriangle(t *testing.T) {
	input := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	out := Run(input, nil)
	require.Len(t, out, 1)
	cdttest.AssertValid(t, input, nil, toTris(out))
}

func TestRunSquare(t *testing.T) {
	input := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	out := Run(input, nil)
	require.Len(t, out, 2)
	cdttest.AssertValid(t, input, nil, toTris(out))
}

func TestRunSquareWithCenteredHole(t *testing.T) {
	input := []geom.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 0.4, Y: 0.4}, {X: 0.5, Y: 0.4}, {X: 0.6, Y: 0.4},
		{X: 0.6, Y: 0.5}, {X: 0.6, Y: 0.6}, {X: 0.5, Y: 0.6},
		{X: 0.4, Y: 0.6}, {X: 0.4, Y: 0.5},
	}
	hole := [][]geom.Point{{
		{X: 0.4, Y: 0.4}, {X: 0.6, Y: 0.4}, {X: 0.6, Y: 0.6}, {X: 0.4, Y: 0.6},
	}}
	out := Run(input, hole)

	var total float64
	for _, tri := range out {
		total += triArea(tri)
	}
	assert.InDelta(t, 0.96, total, 1e-6)
	cdttest.AssertValid(t, input, hole, toTris(out))
}

func TestRunCocircularQuad(t *testing.T) {
	input := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	out := Run(input, nil)
	require.Len(t, out, 2)
	cdttest.AssertValid(t, input, nil, toTris(out))
}

func TestRunDuplicatePoint(t *testing.T) {
	input := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 0}}
	deduped := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

	out := Run(input, nil)
	outDeduped := Run(deduped, nil)
	require.Len(t, out, len(outDeduped))
	cdttest.AssertValid(t, deduped, nil, toTris(out))
}

func TestRunConcaveLShapedHole(t *testing.T) {
	input := []geom.Point{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2},
		{X: 0.5, Y: 0.5}, {X: 1.5, Y: 0.5}, {X: 1.5, Y: 1},
		{X: 1, Y: 1}, {X: 1, Y: 1.5}, {X: 0.5, Y: 1.5},
	}
	hole := [][]geom.Point{{
		{X: 0.5, Y: 0.5}, {X: 1.5, Y: 0.5}, {X: 1.5, Y: 1},
		{X: 1, Y: 1}, {X: 1, Y: 1.5}, {X: 0.5, Y: 1.5},
	}}
	out := Run(input, hole)
	cdttest.AssertValid(t, input, hole, toTris(out))
}

func triArea(t Triangle) float64 {
	return geomArea(t.A, t.B, t.C)
}

func geomArea(a, b, c geom.Point) float64 {
	cross := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
	if cross < 0 {
		cross = -cross
	}
	return cross / 2
}
