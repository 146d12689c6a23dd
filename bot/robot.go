package bot

import (
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/config"
	"github.com/milk9111/botcore/navgrid"
	"github.com/milk9111/botcore/obstacle"
	"github.com/milk9111/botcore/pathing"
)

// Deps is what every robot in a match shares.
type Deps struct {
	World       World
	Obstacles   obstacle.Query
	Tuning      config.Tuning
	Graph       *navgrid.Graph
	Builder     *pathing.Builder
	Replanner   *pathing.Replanner
	Trees       *TreeSet
	Coordinator *TeamCoordinator
	Rand        *rand.Rand
}

// NewDeps wires the planning stack and coordinator for a match.
func NewDeps(matchID uuid.UUID, world World, q obstacle.Query, t config.Tuning, trees *TreeSet, rng *rand.Rand) Deps {
	g := NewGraph(q, t)
	b := pathing.NewBuilder(g)
	b.MaxExpansions = t.Planner.MaxExpansions
	return Deps{
		World:       world,
		Obstacles:   q,
		Tuning:      t,
		Graph:       g,
		Builder:     b,
		Replanner:   pathing.NewReplanner(b),
		Trees:       trees,
		Coordinator: NewTeamCoordinator(matchID, world, b),
		Rand:        rng,
	}
}

// NewGraph builds the planning grid for a square arena centered at the
// origin, sized from the tuning.
func NewGraph(q obstacle.Query, t config.Tuning) *navgrid.Graph {
	half := t.World.Size / 2
	g := navgrid.NewGraph(q, navgrid.NewMapperWithCell(t.CellSize()), cp.BB{L: -half, B: -half, R: half, T: half}, t.Clearance())
	if t.Planner.SnapRadius > 0 {
		g.SnapRadius = t.Planner.SnapRadius
	}
	return g
}

// Robot is one computer-controlled tank.
type Robot struct {
	ID   PlayerID
	Team Team

	act  Actuator
	deps Deps

	self     Player
	wasAlive bool

	path pathing.Path
	goal navgrid.Node

	target    PlayerID
	shotTimer float64
	// drivingForward holds the drive direction between ticks so the tank
	// does not flip on a waypoint near its beam.
	drivingForward bool
	shotAngle      float64

	lastMotion, lastShoot, lastDrop, lastRole string
}

func NewRobot(id PlayerID, team Team, act Actuator, deps Deps) *Robot {
	return &Robot{
		ID:             id,
		Team:           team,
		act:            act,
		deps:           deps,
		goal:           navgrid.Invalid,
		target:         NoPlayer,
		drivingForward: true,
	}
}

// Tick refreshes the robot's view of the world and runs the role, motion,
// shooting and flag trees once each.
func (r *Robot) Tick(dt float64) {
	self, ok := r.deps.World.Player(r.ID)
	if !ok {
		return
	}
	r.self = self
	if self.Alive != r.wasAlive {
		r.wasAlive = self.Alive
		if self.Alive {
			r.Restart()
		} else {
			r.Explode()
		}
	}
	if r.shotTimer > 0 {
		r.shotTimer -= dt
	}
	if self.Alive {
		r.retarget()
	}

	trees := r.deps.Trees.Load()
	r.lastRole = trees.Role.Evaluate(r, dt)
	r.lastMotion = trees.Motion.Evaluate(r, dt)
	r.lastShoot = trees.Shoot.Evaluate(r, dt)
	r.lastDrop = trees.Drop.Evaluate(r, dt)
}

// Explode forgets everything planned before a death.
func (r *Robot) Explode() {
	r.target = NoPlayer
	r.path.Clear()
	r.goal = navgrid.Invalid
	r.shotAngle = 0
}

// Restart resets planning state on respawn.
func (r *Robot) Restart() {
	r.Explode()
	r.drivingForward = true
	r.shotTimer = 0
}

// Path returns the robot's current waypoint path.
func (r *Robot) Path() *pathing.Path { return &r.path }

// Target returns the current target id, or NoPlayer.
func (r *Robot) Target() PlayerID { return r.target }

// Decisions returns the actions chosen by each tree last tick.
func (r *Robot) Decisions() (role, motion, shoot, drop string) {
	return r.lastRole, r.lastMotion, r.lastShoot, r.lastDrop
}

// TargetPriority ranks other as a target for self. Teammates, the robot
// itself and dead tanks rank zero.
func TargetPriority(self, other Player, worldSize float64) float64 {
	if other.ID == self.ID || !other.Alive {
		return 0
	}
	if other.Team == self.Team && self.Team != RogueTeam {
		return 0
	}
	p := 1.0
	if !other.Paused {
		p += 2
	}
	return p - 0.5*self.Position.Distance(other.Position)/worldSize
}

func (r *Robot) retarget() {
	best, bestP := NoPlayer, 0.0
	for _, p := range r.deps.World.Players() {
		if pr := TargetPriority(r.self, p, r.deps.Tuning.World.Size); pr > bestP {
			best, bestP = p.ID, pr
		}
	}
	if best != r.target {
		slog.Debug("target changed", "player", r.ID, "from", r.target, "to", best)
		r.target = best
	}
}

func (r *Robot) targetPlayer() (Player, bool) {
	if r.target == NoPlayer {
		return Player{}, false
	}
	p, ok := r.deps.World.Player(r.target)
	if !ok || !p.Alive {
		return Player{}, false
	}
	return p, true
}

func (r *Robot) teammates() []cp.Vector {
	var out []cp.Vector
	for _, p := range r.deps.World.Players() {
		if p.ID != r.ID && p.Alive && p.Team == r.Team && r.Team != RogueTeam {
			out = append(out, p.Position)
		}
	}
	return out
}

func (r *Robot) shotSpeed() float64 {
	s := r.deps.Tuning.Shot
	speed := s.Speed
	switch r.self.Flag {
	case FlagLaser:
		speed *= s.LaserFactor
	case FlagRapidFire:
		speed *= s.RapidFireFactor
	case FlagMachineGun:
		speed *= s.MachineGunFactor
	}
	return speed + r.self.Velocity.Length()
}

// targetDistance is the gap between muzzle and target hull.
func (r *Robot) targetDistance(t Player) float64 {
	tank := r.deps.Tuning.Tank
	return r.self.Position.Distance(t.Position) - tank.MuzzleFront - tank.Radius
}

// Alive, HoldingFlag, HasTarget, DistanceToBase and PathComplete are
// available to `when:` conditions.

func (r *Robot) Alive() bool { return r.self.Alive }

func (r *Robot) HoldingFlag() bool { return r.self.Flag != FlagNone }

func (r *Robot) HasTarget() bool {
	_, ok := r.targetPlayer()
	return ok
}

func (r *Robot) DistanceToBase() float64 {
	base, ok := r.deps.World.Base(r.Team)
	if !ok {
		return math.Inf(1)
	}
	return r.self.Position.Distance(base)
}

// PathComplete reports whether there is nowhere left to drive.
func (r *Robot) PathComplete() bool {
	if r.path.Empty() {
		return true
	}
	if !r.path.AtGoal() {
		return false
	}
	goal, _ := r.path.Goal()
	return r.self.Position.Distance(goal) <= r.deps.Tuning.Tank.Radius
}

// Facts is the `agent` map seen by `script:` nodes.
func (r *Robot) Facts() map[string]any {
	f := map[string]any{
		"id":              int(r.ID),
		"team":            r.Team.String(),
		"alive":           r.self.Alive,
		"x":               r.self.Position.X,
		"y":               r.self.Position.Y,
		"heading":         r.self.Heading,
		"holding_flag":    r.HoldingFlag(),
		"flag":            r.self.Flag.String(),
		"has_target":      false,
		"target_distance": math.MaxFloat64,
		"shot_range":      r.deps.Tuning.Shot.Range,
		"shot_timer":      r.shotTimer,
		"path_len":        r.path.Len(),
		"path_index":      r.path.Index,
		"base_distance":   r.DistanceToBase(),
	}
	if t, ok := r.targetPlayer(); ok {
		f["has_target"] = true
		f["target_distance"] = r.targetDistance(t)
	}
	return f
}
