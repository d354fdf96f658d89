package grid

import (
	"testing"

	"github.com/gocdt/cdt/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestOrderedCoversAllPoints(t *testing.T) {
	points := []geom.Point{
		{0, 0}, {0.1, 0.1}, {0.9, 0.9}, {0.5, 0.5}, {0.2, 0.8}, {0.8, 0.2},
	}
	g := New(len(points), 0, 0, 1, 1)
	for i, p := range points {
		g.AddPoint(i, p)
	}
	order := g.Ordered()
	assert.Len(t, order, len(points))

	seen := make(map[int]bool)
	for _, idx := range order {
		seen[idx] = true
	}
	assert.Len(t, seen, len(points))
}

func TestBoustrophedonAlternatesDirection(t *testing.T) {
	// Place one point per cell on a small grid and check that row 1 (second
	// row from the bottom) is visited back-to-front relative to row 0.
	g := New(16, 0, 0, 4, 4)
	// 16 points -> cellsPerSide = ceil(16^0.25) = 2
	assert.Equal(t, 2, g.cellsPerSide)

	g.AddPoint(100, geom.Point{0.5, 0.5}) // row 0, col 0
	g.AddPoint(101, geom.Point{3.5, 0.5}) // row 0, col 1
	g.AddPoint(102, geom.Point{0.5, 3.5}) // row 1, col 0
	g.AddPoint(103, geom.Point{3.5, 3.5}) // row 1, col 1

	order := g.Ordered()
	assert.Equal(t, []int{100, 101, 103, 102}, order)
}
