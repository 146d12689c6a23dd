package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/navgrid"
	"github.com/milk9111/botcore/pathing"
)

type Role int

const (
	RoleNone Role = iota
	RoleGuard
	RoleCapture
	RoleAttack
)

func (r Role) String() string {
	switch r {
	case RoleGuard:
		return "guard"
	case RoleCapture:
		return "capture"
	case RoleAttack:
		return "attack"
	}
	return "none"
}

// ErrNoRoster is returned when a team has no players to rank.
var ErrNoRoster = errors.New("bot: team has no players")

// RolePlan is a role's current goal cell and the path toward it.
type RolePlan struct {
	Goal   navgrid.Node
	Points []cp.Vector
}

type teamState struct {
	idsKnown        bool
	lowest, highest PlayerID

	roles   map[PlayerID]Role
	guard   RolePlan
	capture RolePlan
}

// TeamCoordinator owns the state shared by a team's robots: the id range
// that decides who guards and who captures, and the guard and capture
// paths. All access is serialized.
type TeamCoordinator struct {
	MatchID uuid.UUID

	mu      sync.Mutex
	world   World
	graph   *navgrid.Graph
	builder *pathing.Builder
	teams   map[Team]*teamState
}

func NewTeamCoordinator(matchID uuid.UUID, world World, builder *pathing.Builder) *TeamCoordinator {
	return &TeamCoordinator{
		MatchID: matchID,
		world:   world,
		graph:   builder.Graph,
		builder: builder,
		teams:   map[Team]*teamState{},
	}
}

func (c *TeamCoordinator) team(t Team) *teamState {
	st, ok := c.teams[t]
	if !ok {
		st = &teamState{
			roles:   map[PlayerID]Role{},
			guard:   RolePlan{Goal: navgrid.Invalid},
			capture: RolePlan{Goal: navgrid.Invalid},
		}
		c.teams[t] = st
	}
	return st
}

// IDRange returns the lowest and highest player ids on team. It is
// computed on first use and kept until Invalidate.
func (c *TeamCoordinator) IDRange(t Team) (PlayerID, PlayerID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.team(t)
	if !st.idsKnown {
		lo, hi := PlayerID(math.MaxInt), PlayerID(math.MinInt)
		for _, p := range c.world.Players() {
			if p.Team != t {
				continue
			}
			lo, hi = min(lo, p.ID), max(hi, p.ID)
		}
		if lo > hi {
			return NoPlayer, NoPlayer, fmt.Errorf("%w: %s", ErrNoRoster, t)
		}
		st.lowest, st.highest, st.idsKnown = lo, hi, true
	}
	return st.lowest, st.highest, nil
}

// Invalidate forgets the team's id range, e.g. after a join or leave.
func (c *TeamCoordinator) Invalidate(t Team) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.team(t)
	st.idsKnown = false
	for id := range st.roles {
		delete(st.roles, id)
	}
}

// SetRole records id's role.
func (c *TeamCoordinator) SetRole(t Team, id PlayerID, r Role) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.team(t)
	if st.roles[id] == r {
		return
	}
	st.roles[id] = r
	slog.Info("role assigned", "match", c.MatchID, "team", t, "player", id, "role", r)
}

func (c *TeamCoordinator) RoleOf(t Team, id PlayerID) Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.team(t).roles[id]
}

// Holders lists the players on t holding role r, in id order.
func (c *TeamCoordinator) Holders(t Team, r Role) []PlayerID {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []PlayerID
	for id, role := range c.team(t).roles {
		if role == r {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// GuardPlan plans for the guard: take its own flag home when holding it,
// otherwise go to where its team flag is.
func (c *TeamCoordinator) GuardPlan(self Player) (RolePlan, error) {
	base, _ := c.world.Base(self.Team)
	goal := base
	if !(self.Flag == FlagTeam && self.FlagTeam == self.Team) {
		if f, ok := c.teamFlag(self.Team); ok {
			goal = f.Position
		}
	}
	return c.plan(self, goal, func(st *teamState) *RolePlan { return &st.guard })
}

// CapturePlan plans for the capturer: fetch the nearest enemy team flag,
// or head home once any team flag is held.
func (c *TeamCoordinator) CapturePlan(self Player) (RolePlan, error) {
	base, _ := c.world.Base(self.Team)
	goal := base
	if self.Flag != FlagTeam {
		if f, ok := c.nearestEnemyFlag(self); ok {
			goal = f.Position
		}
	}
	return c.plan(self, goal, func(st *teamState) *RolePlan { return &st.capture })
}

// plan rebuilds the role path only when it is empty or the goal cell moved.
// A failed rebuild keeps the previous plan and reports the error.
func (c *TeamCoordinator) plan(self Player, goal cp.Vector, slot func(*teamState) *RolePlan) (RolePlan, error) {
	node, err := c.graph.NodeAt(goal)
	if err != nil {
		return RolePlan{}, fmt.Errorf("%w: %w", pathing.ErrNoPath, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	rp := slot(c.team(self.Team))
	if len(rp.Points) > 0 && rp.Goal == node {
		return clonePlan(*rp), nil
	}
	pts, err := c.builder.Build(self.Position, goal)
	if err != nil {
		return clonePlan(*rp), err
	}
	rp.Goal, rp.Points = node, pts
	return clonePlan(*rp), nil
}

func clonePlan(p RolePlan) RolePlan {
	return RolePlan{Goal: p.Goal, Points: slices.Clone(p.Points)}
}

func (c *TeamCoordinator) teamFlag(t Team) (Flag, bool) {
	for _, f := range c.world.Flags() {
		if f.Kind == FlagTeam && f.Team == t {
			return f, true
		}
	}
	return Flag{}, false
}

func (c *TeamCoordinator) nearestEnemyFlag(self Player) (Flag, bool) {
	var (
		best  Flag
		found bool
		bestD = math.Inf(1)
	)
	for _, f := range c.world.Flags() {
		if f.Kind != FlagTeam || f.Team == self.Team {
			continue
		}
		if f.Carrier != NoPlayer {
			if carrier, ok := c.world.Player(f.Carrier); ok && carrier.Team == self.Team {
				continue
			}
		}
		if d := f.Position.Distance(self.Position); d < bestD {
			best, bestD, found = f, d, true
		}
	}
	return best, found
}
