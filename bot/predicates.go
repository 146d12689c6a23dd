package bot

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/steering"
)

func (r *Robot) isAlive(float64) bool { return r.self.Alive }

// isShotComing caches the threatening shot's travel angle for evade.
func (r *Robot) isShotComing(float64) bool {
	th := r.deps.Tuning.Threat
	var shots []steering.Projectile
	for _, s := range r.deps.World.Shots() {
		if s.Owner == r.ID {
			continue
		}
		shots = append(shots, steering.Projectile{Position: s.Position, Velocity: s.Velocity})
	}
	angle, ok := steering.IncomingShot(r.self.Position, shots, th.Range, th.Cosine)
	if ok {
		r.shotAngle = angle
	}
	return ok
}

func (r *Robot) isHoldingFlag(float64) bool { return r.self.Flag != FlagNone }

func (r *Robot) isHoldingTeamFlag(float64) bool { return r.self.Flag == FlagTeam }

func (r *Robot) isHoldingOwnFlag(float64) bool {
	return r.self.Flag == FlagTeam && r.self.FlagTeam == r.Team
}

func (r *Robot) isAtTeamBase(float64) bool {
	return r.DistanceToBase() < r.deps.Tuning.World.BaseReach
}

func (r *Robot) isReadyToFire(float64) bool {
	return r.self.ReadyToFire && r.HasTarget()
}

func (r *Robot) isShotTimerElapsed(float64) bool { return r.shotTimer <= 0 }

// willBarelyMiss reports whether a shot fired now along the current
// heading lands within half a tank of where the target will be.
func (r *Robot) willBarelyMiss(float64) bool {
	t, ok := r.targetPlayer()
	if !ok {
		return false
	}
	aim := r.leadPoint(t)
	az := steering.AzimuthTo(r.self.Position, r.self.Heading, aim)
	return steering.WillBarelyMiss(az, r.targetDistance(t), r.deps.Tuning.Tank.Length)
}

func (r *Robot) isBuildingInTheWay(float64) bool {
	t, ok := r.targetPlayer()
	if !ok {
		return false
	}
	return steering.BuildingInTheWay(r.deps.Obstacles, r.self.Position, r.self.Heading, r.self.Position.Distance(t.Position))
}

func (r *Robot) isTeammateInTheWay(float64) bool {
	tun := r.deps.Tuning
	return steering.TeammateInTheWay(r.self.Position, r.self.Heading, r.teammates(),
		tun.Fire.TeammateRadii*tun.Tank.Radius, tun.Shot.Range)
}

func (r *Robot) hasLowestID(float64) bool {
	lo, _, err := r.deps.Coordinator.IDRange(r.Team)
	return err == nil && lo == r.ID
}

func (r *Robot) hasHighestID(float64) bool {
	_, hi, err := r.deps.Coordinator.IDRange(r.Team)
	return err == nil && hi == r.ID
}

func (r *Robot) teamFlagsEnabled(float64) bool { return r.deps.Tuning.World.TeamFlags }

func (r *Robot) leadPoint(t Player) cp.Vector {
	lead := steering.Lead{
		ShotSpeed:     r.shotSpeed(),
		Lag:           r.deps.Tuning.Lead.Lag,
		Tolerance:     r.deps.Tuning.Lead.Tolerance,
		MaxIterations: max(1, r.deps.Tuning.Lead.Iterations),
	}
	k := steering.Kinematics{
		Position:        t.Position,
		Velocity:        t.Velocity,
		Heading:         t.Heading,
		AngularVelocity: t.AngularVelocity,
	}
	return steering.LeadTarget(r.self.Position, k, lead, r.deps.Obstacles)
}
