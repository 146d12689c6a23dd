package pathing

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/navgrid"
	"github.com/milk9111/botcore/search"
)

// ErrNoPath wraps every planning failure. Callers keep whatever path they
// already had.
var ErrNoPath = errors.New("pathing: no path")

// Builder plans grid paths between world points.
type Builder struct {
	Graph *navgrid.Graph
	// MaxExpansions bounds each search. Zero means unbounded.
	MaxExpansions int
}

func NewBuilder(g *navgrid.Graph) *Builder {
	return &Builder{Graph: g}
}

// BuildNodes searches the grid from start to goal. Both must be accessible.
func (b *Builder) BuildNodes(start, goal navgrid.Node) ([]navgrid.Node, error) {
	if !b.Graph.Accessible(start) {
		return nil, fmt.Errorf("%w: start %v inaccessible", ErrNoPath, start)
	}
	if !b.Graph.Accessible(goal) {
		return nil, fmt.Errorf("%w: goal %v inaccessible", ErrNoPath, goal)
	}
	res, err := search.Plan[navgrid.Node](b.Graph, search.Problem[navgrid.Node]{
		Seeds:         []navgrid.Node{start},
		Target:        goal,
		MaxExpansions: b.MaxExpansions,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPath, err)
	}
	return res.Best().Nodes, nil
}

// Build snaps both endpoints to accessible cells, searches, converts the
// cells to world points and smooths the result.
func (b *Builder) Build(start, goal cp.Vector) ([]cp.Vector, error) {
	pts, err := b.BuildRaw(start, goal)
	if err != nil {
		return nil, err
	}
	return Smooth(b.Graph.Query, pts, b.Graph.Clearance), nil
}

// BuildRaw is Build without smoothing.
func (b *Builder) BuildRaw(start, goal cp.Vector) ([]cp.Vector, error) {
	from, err := b.Graph.NodeAt(start)
	if err != nil {
		slog.Debug("planning failed", "reason", "start", "at", start, "error", err)
		return nil, fmt.Errorf("%w: start: %w", ErrNoPath, err)
	}
	to, err := b.Graph.NodeAt(goal)
	if err != nil {
		slog.Debug("planning failed", "reason", "goal", "at", goal, "error", err)
		return nil, fmt.Errorf("%w: goal: %w", ErrNoPath, err)
	}
	nodes, err := b.BuildNodes(from, to)
	if err != nil {
		slog.Debug("planning failed", "from", from, "to", to, "error", err)
		return nil, err
	}
	pts := make([]cp.Vector, len(nodes))
	for i, n := range nodes {
		pts[i] = b.Graph.Mapper.ToContinuous(n)
	}
	return pts, nil
}
