// Package navgrid discretizes the continuous arena into an 8-connected grid
// of cells sized from the tank radius.
package navgrid

import "github.com/jakecoffman/cp"

// Node is an integer grid cell.
type Node struct {
	X, Y int
}

// Invalid is returned when no grid cell applies.
var Invalid = Node{X: -9999, Y: -9999}

// Mapper converts between world coordinates and grid cells.
type Mapper struct {
	cell float64
}

// NewMapper sizes cells from the agent radius, half a radius per cell.
func NewMapper(tankRadius float64) Mapper {
	return NewMapperWithCell(0.5 * tankRadius)
}

func NewMapperWithCell(cell float64) Mapper {
	if cell <= 0 {
		cell = 1
	}
	return Mapper{cell: cell}
}

func (m Mapper) CellSize() float64 { return m.cell }

// ToGrid truncates toward zero on each axis.
func (m Mapper) ToGrid(p cp.Vector) Node {
	return Node{X: int(p.X / m.cell), Y: int(p.Y / m.cell)}
}

func (m Mapper) ToContinuous(n Node) cp.Vector {
	return cp.Vector{X: float64(n.X) * m.cell, Y: float64(n.Y) * m.cell}
}
