// Package steering holds the targeting and motion math shared by the bot
// behaviors: lead prediction, threat detection, occlusion, separation and
// turn control.
package steering

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/obstacle"
)

// Kinematics is a tank's instantaneous motion state.
type Kinematics struct {
	Position        cp.Vector
	Velocity        cp.Vector
	Heading         float64
	AngularVelocity float64
}

// MinArcTurnRate is the turn rate, in rad/s, below which motion is
// projected as a straight line.
const MinArcTurnRate = 0.5 * math.Pi / 180

// ProjectPosition extrapolates k by t seconds, along a circular arc when
// the tank is turning and a straight line otherwise.
func ProjectPosition(k Kinematics, t float64) cp.Vector {
	w := k.AngularVelocity
	speed := k.Velocity.Length()
	if math.Abs(w) < MinArcTurnRate || speed == 0 {
		return k.Position.Add(k.Velocity.Mult(t))
	}
	theta := math.Atan2(k.Velocity.Y, k.Velocity.X)
	r := speed / w
	center := k.Position.Add(cp.Vector{X: -math.Sin(theta), Y: math.Cos(theta)}.Mult(r))
	a := theta + w*t
	return center.Add(cp.Vector{X: math.Sin(a), Y: -math.Cos(a)}.Mult(r))
}

// Lead configures LeadTarget.
type Lead struct {
	ShotSpeed float64
	// Lag is added to every flight time estimate.
	Lag           float64
	Tolerance     float64
	MaxIterations int
}

// DefaultLead is the iteration schedule used by the robot players; only
// ShotSpeed needs filling in.
var DefaultLead = Lead{Lag: 0.05, Tolerance: 0.05, MaxIterations: 4}

// LeadTarget estimates where to aim at target so a shot fired from
// shooter meets it. The flight time is refined until successive estimates
// agree within Tolerance. When q is non-nil and the predicted point is
// inside or behind an obstacle, the target's current position is returned.
func LeadTarget(shooter cp.Vector, target Kinematics, l Lead, q obstacle.Query) cp.Vector {
	if l.ShotSpeed <= 0 {
		return target.Position
	}
	t := shooter.Distance(target.Position) / l.ShotSpeed
	aim := ProjectPosition(target, t+l.Lag)
	for i := 1; i < l.MaxIterations; i++ {
		next := shooter.Distance(aim) / l.ShotSpeed
		if t > 0 && math.Abs(next-t)/t <= l.Tolerance {
			break
		}
		t = next
		aim = ProjectPosition(target, t+l.Lag)
	}
	if q != nil && (q.IsObstructed(aim, 0) || !obstacle.LineOfSight(q, target.Position, aim, 0)) {
		return target.Position
	}
	return aim
}
