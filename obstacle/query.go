// Package obstacle answers geometric questions about the static arena: is
// a disc free, where does a ray first hit a building, is a corridor clear.
package obstacle

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/common"
)

// Query is the read-only view of arena obstacles used by planning and
// steering.
type Query interface {
	// IsObstructed reports whether a disc of the given radius centered at p
	// touches any obstacle.
	IsObstructed(p cp.Vector, radius float64) bool
	// FirstAlongRay returns the nearest obstacle hit by the ray from origin
	// in direction dir, limited to maxDist.
	FirstAlongRay(origin, dir cp.Vector, maxDist float64) (Hit, bool)
	// SegmentObstructed reports whether a disc of the given radius swept
	// from a to b touches any obstacle.
	SegmentObstructed(a, b cp.Vector, radius float64) bool
}

type Hit struct {
	Point    cp.Vector
	Normal   cp.Vector
	Distance float64
}

// LineOfSight reports whether the corridor from a to b with the given
// half-width is free. Coincident endpoints fall back to a point test.
func LineOfSight(q Query, a, b cp.Vector, radius float64) bool {
	if a.Distance(b) < common.Epsilon {
		return !q.IsObstructed(a, radius)
	}
	return !q.SegmentObstructed(a, b, radius)
}
