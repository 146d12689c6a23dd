package steering

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/common"
	"github.com/milk9111/botcore/obstacle"
)

// AzimuthTo is the signed angle from heading to the bearing of to.
func AzimuthTo(from cp.Vector, heading float64, to cp.Vector) float64 {
	d := to.Sub(from)
	return common.NormalizeAngle(math.Atan2(d.Y, d.X) - heading)
}

// MissBy is the lateral miss distance of a shot fired azDiff off the
// target bearing at range dist, measured past one tank length.
func MissBy(azDiff, dist, tankLength float64) float64 {
	return math.Abs(azDiff) * (dist - tankLength)
}

// WillBarelyMiss reports whether the miss distance is within half a tank.
func WillBarelyMiss(azDiff, dist, tankLength float64) bool {
	return MissBy(azDiff, dist, tankLength) < 0.5*tankLength
}

// BuildingInTheWay reports whether an obstacle lies along heading closer
// than dist.
func BuildingInTheWay(q obstacle.Query, origin cp.Vector, heading, dist float64) bool {
	hit, ok := q.FirstAlongRay(origin, cp.ForAngle(heading), dist)
	return ok && hit.Distance < dist
}

// TeammateInTheWay reports whether a shot along heading would pass within
// tolerance of any of mates before travelling shotRange.
func TeammateInTheWay(origin cp.Vector, heading float64, mates []cp.Vector, tolerance, shotRange float64) bool {
	dir := cp.ForAngle(heading)
	for _, m := range mates {
		rel := m.Sub(origin)
		along := rel.Dot(dir)
		if along <= 0 || along >= shotRange {
			continue
		}
		if math.Abs(rel.Cross(dir)) < tolerance {
			return true
		}
	}
	return false
}

// TurnRate converts an azimuth error into a normalized turn command in
// [-1, 1] that closes the error within one tick when possible.
func TurnRate(azDiff, dt, maxAngVel float64) float64 {
	if dt <= 0 || maxAngVel <= 0 {
		return math.Copysign(1, azDiff)
	}
	return common.Clamp(azDiff/(dt*maxAngVel), -1, 1)
}
