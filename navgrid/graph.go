package navgrid

import (
	"errors"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/obstacle"
	"github.com/milk9111/botcore/search"
)

// ErrUnreachableSnap is returned when no accessible cell lies within the
// snap radius of a requested point.
var ErrUnreachableSnap = errors.New("navgrid: no accessible cell near point")

// DefaultSnapRadius is the ring radius searched when a point maps to a
// blocked cell.
const DefaultSnapRadius = 4

var offsets = [8]struct {
	dx, dy int
	cost   float64
}{
	{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1},
	{1, 1, math.Sqrt2}, {1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2}, {-1, -1, math.Sqrt2},
}

// Graph describes the arena grid to the search engine. A cell is accessible
// when its center lies inside the bounds and a disc of Clearance radius
// there touches no obstacle.
type Graph struct {
	Mapper     Mapper
	Query      obstacle.Query
	Bounds     cp.BB
	Clearance  float64
	SnapRadius int

	tableSize int
}

var _ search.Graph[Node] = (*Graph)(nil)

// NewArenaGraph builds the grid for a square arena of side worldSize
// centered at the origin.
func NewArenaGraph(q obstacle.Query, worldSize, tankRadius float64) *Graph {
	half := worldSize / 2
	return NewGraph(q, NewMapper(tankRadius), cp.BB{L: -half, B: -half, R: half, T: half}, 0.5*tankRadius)
}

func NewGraph(q obstacle.Query, m Mapper, bounds cp.BB, clearance float64) *Graph {
	reach := math.Max(
		math.Max(math.Abs(bounds.L), math.Abs(bounds.R)),
		math.Max(math.Abs(bounds.B), math.Abs(bounds.T)),
	)
	cells := int(math.Ceil(reach/m.CellSize())) + 1
	return &Graph{
		Mapper:     m,
		Query:      q,
		Bounds:     bounds,
		Clearance:  clearance,
		SnapRadius: DefaultSnapRadius,
		tableSize:  5*cells + 1,
	}
}

func (g *Graph) inBounds(p cp.Vector) bool {
	return p.X >= g.Bounds.L && p.X <= g.Bounds.R && p.Y >= g.Bounds.B && p.Y <= g.Bounds.T
}

// Accessible reports whether n can be occupied.
func (g *Graph) Accessible(n Node) bool {
	if n == Invalid {
		return false
	}
	p := g.Mapper.ToContinuous(n)
	if !g.inBounds(p) {
		return false
	}
	return !g.Query.IsObstructed(p, g.Clearance)
}

func (g *Graph) Successors(n Node, buf []search.Successor[Node]) []search.Successor[Node] {
	buf = buf[:0]
	for _, o := range offsets {
		next := Node{X: n.X + o.dx, Y: n.Y + o.dy}
		if !g.Accessible(next) {
			continue
		}
		buf = append(buf, search.Successor[Node]{Node: next, Cost: o.cost})
	}
	return buf
}

// Heuristic is the straight-line grid distance, which never exceeds the
// octile path cost.
func (g *Graph) Heuristic(a, b Node) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func (g *Graph) HashBin(n Node) int {
	h := 2*n.X + 3*n.Y
	if h < 0 {
		h = -h
	}
	return h % g.tableSize
}

func (g *Graph) TableSize() int { return g.tableSize }

// NodeAt maps p to a cell, snapping to the nearest accessible cell within
// SnapRadius rings when the direct cell is blocked. On failure the blocked
// cell is returned with ErrUnreachableSnap.
func (g *Graph) NodeAt(p cp.Vector) (Node, error) {
	n := g.Mapper.ToGrid(p)
	if g.Accessible(n) {
		return n, nil
	}
	for r := 1; r <= g.SnapRadius; r++ {
		best := Invalid
		bestDist := math.Inf(1)
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if max(abs(dx), abs(dy)) != r {
					continue
				}
				c := Node{X: n.X + dx, Y: n.Y + dy}
				if !g.Accessible(c) {
					continue
				}
				if d := g.Mapper.ToContinuous(c).Distance(p); d < bestDist {
					best, bestDist = c, d
				}
			}
		}
		if best != Invalid {
			return best, nil
		}
	}
	return n, ErrUnreachableSnap
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
