package pathing

import (
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/obstacle"
)

// Replanner watches the leg from the agent to its active waypoint and
// splices in a detour when an obstacle appears on it.
type Replanner struct {
	Builder *Builder
	// Radius is the corridor half-width for the visibility test.
	Radius float64
}

func NewReplanner(b *Builder) *Replanner {
	return &Replanner{Builder: b, Radius: b.Graph.Clearance}
}

// Check tests visibility from pos to the active waypoint. When blocked it
// plans a sub-path and inserts its interior points before the cursor, so
// the first detour point becomes active. The sub-path's start cell is
// inserted too when the first detour point is not visible from pos. It reports whether the path
// changed. A failed sub-plan leaves the path untouched and returns the
// planning error.
func (r *Replanner) Check(pos cp.Vector, p *Path) (bool, error) {
	target, ok := p.Current()
	if !ok {
		return false, nil
	}
	if obstacle.LineOfSight(r.Builder.Graph.Query, pos, target, r.Radius) {
		return false, nil
	}
	sub, err := r.Builder.Build(pos, target)
	if err != nil {
		return false, err
	}
	var pts []cp.Vector
	if len(sub) > 2 {
		pts = sub[1 : len(sub)-1]
	}
	next := target
	if len(pts) > 0 {
		next = pts[0]
	}
	// pos snaps to a cell whose center may see past the obstacle when pos
	// itself cannot. Route through that center first.
	if sub[0] != pos && !obstacle.LineOfSight(r.Builder.Graph.Query, pos, next, r.Radius) {
		pts = append([]cp.Vector{sub[0]}, pts...)
	}
	if len(pts) == 0 {
		return false, nil
	}
	p.InsertAt(p.Index, pts...)
	slog.Debug("path replanned", "inserted", len(pts), "index", p.Index, "len", p.Len())
	return true, nil
}
