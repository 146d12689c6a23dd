package steering

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/common"
)

// Separation returns the vector from the centroid of every neighbor within
// threshold to pos. It is not normalized, and is zero when no neighbor is
// in range.
func Separation(pos cp.Vector, neighbors []cp.Vector, threshold float64) cp.Vector {
	var sum cp.Vector
	n := 0
	for _, nb := range neighbors {
		if pos.Distance(nb) > threshold {
			continue
		}
		sum = sum.Add(nb)
		n++
	}
	if n == 0 {
		return cp.Vector{}
	}
	return pos.Sub(sum.Mult(1 / float64(n)))
}

// Blend mixes two directions by weight and returns the heading of the
// result. If the blend cancels out, the first direction's heading is used.
func Blend(a cp.Vector, wa float64, b cp.Vector, wb float64) float64 {
	v := a.Mult(wa).Add(b.Mult(wb))
	if v.Length() < common.Epsilon {
		return math.Atan2(a.Y, a.X)
	}
	return math.Atan2(v.Y, v.X)
}
