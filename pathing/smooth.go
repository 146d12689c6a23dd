package pathing

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/obstacle"
)

// Smooth drops waypoints that can be skipped with a clear corridor of the
// given radius. It makes one greedy forward pass: from the last kept point
// it extends as far as line of sight allows, then keeps the point before
// the first blocked candidate. The endpoints always survive.
func Smooth(q obstacle.Query, pts []cp.Vector, radius float64) []cp.Vector {
	if len(pts) <= 2 {
		return pts
	}
	out := make([]cp.Vector, 0, len(pts))
	out = append(out, pts[0])
	anchor := 0
	for i := 1; i < len(pts); i++ {
		if obstacle.LineOfSight(q, pts[anchor], pts[i], radius) {
			continue
		}
		if i-1 > anchor {
			anchor = i - 1
			out = append(out, pts[anchor])
			i--
			continue
		}
		// even the adjacent step is blocked; keep it as is
		anchor = i
		out = append(out, pts[anchor])
	}
	if anchor != len(pts)-1 {
		out = append(out, pts[len(pts)-1])
	}
	return out
}
