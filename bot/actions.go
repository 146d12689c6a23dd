package bot

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/common"
	"github.com/milk9111/botcore/steering"
)

func (r *Robot) doNothing(float64) {}

// evade turns broadside to the incoming shot found by isShotComing and
// drives out of its line.
func (r *Robot) evade(dt float64) {
	rot := steering.EvasionTurn(r.shotAngle, r.self.Heading)
	r.act.SetSpeed(1)
	r.act.SetAngularVelocity(steering.TurnRate(rot, dt, r.deps.Tuning.Tank.AngularVelocity))
}

// followPath steers toward the active waypoint, blended with separation
// from nearby teammates, reversing when the waypoint is well behind.
func (r *Robot) followPath(dt float64) {
	if r.path.Empty() {
		r.stop()
		return
	}
	pos := r.self.Position
	if _, err := r.deps.Replanner.Check(pos, &r.path); err != nil {
		slog.Debug("replan failed", "player", r.ID, "error", err)
	}

	tun := r.deps.Tuning
	wp, _ := r.path.Current()
	if !r.path.AtGoal() && pos.Distance(wp) <= dt*tun.Tank.Speed+tun.Tank.Radius {
		r.path.Advance()
		wp, _ = r.path.Current()
	}
	to := wp.Sub(pos)
	if r.path.AtGoal() && to.Length() <= tun.Tank.Radius {
		r.stop()
		return
	}

	sep := steering.Separation(pos, r.teammates(), tun.Flock.SeparationRadii*tun.Tank.Radius)
	heading := steering.Blend(to, tun.Flock.PathWeight, sep, tun.Flock.SeparationWeight)
	az := common.NormalizeAngle(heading - r.self.Heading)

	if r.drivingForward {
		r.drivingForward = math.Abs(az) <= 0.9*math.Pi/2
	} else {
		r.drivingForward = math.Abs(az) < 0.3*math.Pi/2
	}
	speed := 1.0
	if !r.drivingForward {
		az = common.NormalizeAngle(az + math.Pi)
		speed = -1
	}
	r.act.SetSpeed(speed)
	r.act.SetAngularVelocity(steering.TurnRate(az, dt, tun.Tank.AngularVelocity))
}

// aimAtClosestEnemy stops and turns toward the nearest live enemy.
func (r *Robot) aimAtClosestEnemy(dt float64) {
	var (
		best  cp.Vector
		found bool
		bestD = math.Inf(1)
	)
	for _, p := range r.deps.World.Players() {
		if TargetPriority(r.self, p, r.deps.Tuning.World.Size) <= 0 {
			continue
		}
		if d := p.Position.Distance(r.self.Position); d < bestD {
			best, bestD, found = p.Position, d, true
		}
	}
	r.act.SetSpeed(0)
	if !found {
		r.act.SetAngularVelocity(0)
		return
	}
	az := steering.AzimuthTo(r.self.Position, r.self.Heading, best)
	r.act.SetAngularVelocity(steering.TurnRate(az, dt, r.deps.Tuning.Tank.AngularVelocity))
}

func (r *Robot) shoot(float64) {
	if !r.act.Fire() {
		return
	}
	f := r.deps.Tuning.Fire
	r.shotTimer = r.deps.Rand.Float64()*f.DelaySpread + f.MinDelay
}

func (r *Robot) postponeShot(float64) {
	r.shotTimer = r.deps.Tuning.Fire.PostponeDelay
}

func (r *Robot) dropFlag(float64) {
	r.act.DropFlag()
}

func (r *Robot) stop() {
	r.act.SetSpeed(0)
	r.act.SetAngularVelocity(0)
}

func (r *Robot) roleGuard(float64) {
	r.deps.Coordinator.SetRole(r.Team, r.ID, RoleGuard)
	if !r.deps.Tuning.World.TeamFlags {
		return
	}
	plan, err := r.deps.Coordinator.GuardPlan(r.self)
	if err != nil {
		slog.Debug("guard plan failed", "player", r.ID, "error", err)
		return
	}
	r.adopt(plan)
}

func (r *Robot) roleCapture(float64) {
	r.deps.Coordinator.SetRole(r.Team, r.ID, RoleCapture)
	plan, err := r.deps.Coordinator.CapturePlan(r.self)
	if err != nil {
		slog.Debug("capture plan failed", "player", r.ID, "error", err)
		return
	}
	r.adopt(plan)
}

// roleAttack heads for the target. The path is just the target point;
// followPath's replanner routes around whatever is in between.
func (r *Robot) roleAttack(float64) {
	r.deps.Coordinator.SetRole(r.Team, r.ID, RoleAttack)
	t, ok := r.targetPlayer()
	if !ok {
		return
	}
	goal, err := r.deps.Graph.NodeAt(t.Position)
	if err != nil {
		return
	}
	if goal != r.goal {
		r.goal = goal
		r.path.Reset([]cp.Vector{t.Position})
	}
}

// adopt switches to a role plan when its goal differs from the robot's.
func (r *Robot) adopt(plan RolePlan) {
	if plan.Goal != r.goal {
		r.goal = plan.Goal
		r.path.Reset(plan.Points)
	}
	if r.path.Empty() {
		r.path.Reset([]cp.Vector{r.deps.Graph.Mapper.ToContinuous(plan.Goal)})
	}
}
