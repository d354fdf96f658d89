// Package grid implements the uniform spatial hash used to order point
// insertion for locality. Points are expected to already be normalized to
// the unit square; Grid only needs their bounding box to size cells.
package grid

import (
	"math"

	"github.com/gocdt/cdt/internal/geom"
)

// Grid buckets points into a cellsPerSide x cellsPerSide array of cells over
// a bounding box. CellsPerSide is ceil(N^(1/4)) for N points, per the
// pipeline driver's sizing rule.
type Grid struct {
	cellsPerSide int
	minX, minY   float64
	cellW, cellH float64
	cells        [][]int // cells[row*cellsPerSide+col] = point indices
}

// New builds an empty grid sized for n points over the given bounding box.
// A degenerate (zero-area) box still produces a usable 1x1 grid.
func New(n int, minX, minY, maxX, maxY float64) *Grid {
	cellsPerSide := int(math.Ceil(math.Pow(float64(n), 0.25)))
	if cellsPerSide < 1 {
		cellsPerSide = 1
	}
	width := maxX - minX
	height := maxY - minY
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	g := &Grid{
		cellsPerSide: cellsPerSide,
		minX:         minX,
		minY:         minY,
		cellW:        width / float64(cellsPerSide),
		cellH:        height / float64(cellsPerSide),
		cells:        make([][]int, cellsPerSide*cellsPerSide),
	}
	return g
}

// AddPoint appends the point's index to the bucket containing p.
func (g *Grid) AddPoint(index int, p geom.Point) {
	col, row := g.cellOf(p)
	i := row*g.cellsPerSide + col
	g.cells[i] = append(g.cells[i], index)
}

func (g *Grid) cellOf(p geom.Point) (col, row int) {
	col = int((p.X - g.minX) / g.cellW)
	row = int((p.Y - g.minY) / g.cellH)
	if col < 0 {
		col = 0
	}
	if col >= g.cellsPerSide {
		col = g.cellsPerSide - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= g.cellsPerSide {
		row = g.cellsPerSide - 1
	}
	return col, row
}

// Ordered returns every bucketed point index in boustrophedon (snake) cell
// order: rows bottom-to-top, alternating left-to-right and right-to-left, so
// that consecutive insertions stay spatially close and the triangle set's
// point-location walk (mesh.FindTriangleThatContainsPoint) starts from a
// nearby seed each time.
func (g *Grid) Ordered() []int {
	result := make([]int, 0, len(g.cells))
	for row := 0; row < g.cellsPerSide; row++ {
		if row%2 == 0 {
			for col := 0; col < g.cellsPerSide; col++ {
				result = append(result, g.cells[row*g.cellsPerSide+col]...)
			}
		} else {
			for col := g.cellsPerSide - 1; col >= 0; col-- {
				result = append(result, g.cells[row*g.cellsPerSide+col]...)
			}
		}
	}
	return result
}
