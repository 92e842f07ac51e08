package server

import (
	"fmt"

	"github.com/zucenko/turf/model"
)

// BoundsError reports a grid access outside [0,Cols)x[0,Rows). The
// collision rules reject out-of-bounds moves before any write, so one
// of these escaping into the tick loop is a programmer error.
type BoundsError struct {
	At model.Vec
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("grid position out of bounds: %d,%d", e.At.X, e.At.Y)
}

// Grid holds the per-cell state of the board in a dense row-major
// slice, indexed y*Cols+x.
type Grid struct {
	Cols, Rows int
	Cells      []model.CellState
}

func NewGrid(cols, rows int) *Grid {
	return &Grid{
		Cols:  cols,
		Rows:  rows,
		Cells: make([]model.CellState, cols*rows),
	}
}

func (g *Grid) InBounds(v model.Vec) bool {
	return v.X >= 0 && v.X < g.Cols && v.Y >= 0 && v.Y < g.Rows
}

func (g *Grid) index(v model.Vec) int {
	return v.Y*g.Cols + v.X
}

func (g *Grid) CellAt(v model.Vec) (model.CellState, error) {
	if !g.InBounds(v) {
		return model.CellState{}, &BoundsError{At: v}
	}
	return g.Cells[g.index(v)], nil
}

func (g *Grid) SetCell(v model.Vec, s model.CellState) error {
	if !g.InBounds(v) {
		return &BoundsError{At: v}
	}
	g.Cells[g.index(v)] = s
	return nil
}

// Neighbors4 returns the 4-adjacent coordinates of v in right, down,
// left, up order, clipped at the board edge.
func (g *Grid) Neighbors4(v model.Vec) []model.Vec {
	out := make([]model.Vec, 0, 4)
	for d := model.DirRight; d <= model.DirUp; d++ {
		n := v.Add(d.Delta())
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

func (g *Grid) Clone() *Grid {
	cells := make([]model.CellState, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{Cols: g.Cols, Rows: g.Rows, Cells: cells}
}
