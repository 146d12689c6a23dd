// Package pathing turns grid searches into smoothed world-space waypoint
// paths and keeps a followed path valid as the arena changes.
package pathing

import (
	"slices"

	"github.com/jakecoffman/cp"
)

// Path is a waypoint sequence with a cursor at the waypoint currently
// being driven to.
type Path struct {
	Points []cp.Vector
	Index  int
}

func (p *Path) Len() int { return len(p.Points) }

func (p *Path) Empty() bool { return len(p.Points) == 0 }

// Current returns the active waypoint.
func (p *Path) Current() (cp.Vector, bool) {
	if p.Index < 0 || p.Index >= len(p.Points) {
		return cp.Vector{}, false
	}
	return p.Points[p.Index], true
}

// Goal returns the final waypoint.
func (p *Path) Goal() (cp.Vector, bool) {
	if len(p.Points) == 0 {
		return cp.Vector{}, false
	}
	return p.Points[len(p.Points)-1], true
}

// Advance moves the cursor forward, holding at the final waypoint.
func (p *Path) Advance() {
	if p.Index < len(p.Points)-1 {
		p.Index++
	}
}

// AtGoal reports whether the cursor is on the final waypoint.
func (p *Path) AtGoal() bool {
	return len(p.Points) > 0 && p.Index == len(p.Points)-1
}

// Reset replaces the waypoints with a copy of pts and rewinds the cursor.
func (p *Path) Reset(pts []cp.Vector) {
	p.Points = slices.Clone(pts)
	p.Index = 0
}

func (p *Path) Clear() {
	p.Points = p.Points[:0]
	p.Index = 0
}

// InsertAt splices pts in before position i, so pts[0] becomes the
// waypoint at i.
func (p *Path) InsertAt(i int, pts ...cp.Vector) {
	i = max(0, min(i, len(p.Points)))
	p.Points = slices.Insert(p.Points, i, pts...)
}
