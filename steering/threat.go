package steering

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/common"
)

// Projectile is a shot in flight.
type Projectile struct {
	Position cp.Vector
	Velocity cp.Vector
}

// IncomingShot finds the nearest projectile within maxRange of pos whose
// direction of travel points at pos to within the given cosine. It returns
// that projectile's travel angle.
func IncomingShot(pos cp.Vector, shots []Projectile, maxRange, minCos float64) (float64, bool) {
	best := math.Inf(1)
	angle := 0.0
	for _, s := range shots {
		speed := s.Velocity.Length()
		if speed < common.Epsilon {
			continue
		}
		to := pos.Sub(s.Position)
		dist := to.Length()
		if dist >= maxRange || dist >= best {
			continue
		}
		if dist > common.Epsilon && s.Velocity.Dot(to)/(speed*dist) <= minCos {
			continue
		}
		best = dist
		angle = math.Atan2(s.Velocity.Y, s.Velocity.X)
	}
	return angle, !math.IsInf(best, 1)
}

// EvasionTurn returns the signed rotation bringing heading perpendicular
// to shotAngle, whichever side is closer.
func EvasionTurn(shotAngle, heading float64) float64 {
	left := common.NormalizeAngle(shotAngle + math.Pi/2 - heading)
	right := common.NormalizeAngle(shotAngle - math.Pi/2 - heading)
	if math.Abs(left) < math.Abs(right) {
		return left
	}
	return right
}
