// Package sim is a headless capture-the-flag match: tanks, shots and flags
// on an arena, driven by bot.Robots through the World and Actuator
// interfaces.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/bot"
	"github.com/milk9111/botcore/config"
	"github.com/milk9111/botcore/obstacle"
)

const (
	DefaultReloadTime   = 0.5
	DefaultRespawnDelay = 3.0
	flagRadius          = 3.0
)

type tank struct {
	bot.Player
	spawn       cp.Vector
	spawnAngle  float64
	speed, turn float64
	reload      float64
	respawnIn   float64
}

type shot struct {
	bot.Shot
	travelled float64
}

type flag struct {
	bot.Flag
	home cp.Vector
}

// Options configures New.
type Options struct {
	TeamSize int
	Seed     uint64
	Trees    *bot.TreeSet
}

// Match is one match in progress. It is not safe for concurrent use; Step
// ticks every robot in turn on the calling goroutine.
type Match struct {
	ID     uuid.UUID
	Tuning config.Tuning
	Space  *obstacle.Space

	ReloadTime   float64
	RespawnDelay float64

	bounds cp.BB
	tanks  []*tank
	shots  []shot
	flags  []flag
	bases  map[bot.Team]cp.Vector
	scores map[bot.Team]int
	kills  map[bot.PlayerID]int

	deps   bot.Deps
	robots []*bot.Robot
	time   float64
}

// New builds a match on arena with TeamSize robots per team.
func New(arena config.ArenaSpec, tun config.Tuning, opts Options) (*Match, error) {
	if opts.TeamSize <= 0 {
		return nil, fmt.Errorf("sim: team size must be positive, got %d", opts.TeamSize)
	}
	if opts.Trees == nil {
		return nil, fmt.Errorf("sim: no behavior trees")
	}
	if arena.Size > 0 {
		tun.World.Size = arena.Size
	}
	half := tun.World.Size / 2
	m := &Match{
		ID:           uuid.New(),
		Tuning:       tun,
		Space:        arena.Space(),
		ReloadTime:   DefaultReloadTime,
		RespawnDelay: DefaultRespawnDelay,
		bounds:       cp.BB{L: -half, B: -half, R: half, T: half},
		bases:        map[bot.Team]cp.Vector{},
		scores:       map[bot.Team]int{},
		kills:        map[bot.PlayerID]int{},
	}

	for _, ts := range arena.Teams {
		team, err := bot.ParseTeam(ts.Name)
		if err != nil {
			return nil, fmt.Errorf("sim: arena %s: %w", arena.Name, err)
		}
		m.bases[team] = ts.Base.Vector()
		if tun.World.TeamFlags {
			m.flags = append(m.flags, flag{
				Flag: bot.Flag{Kind: bot.FlagTeam, Team: team, Position: ts.Flag.Vector(), Carrier: bot.NoPlayer},
				home: ts.Flag.Vector(),
			})
		}
	}
	for _, fs := range arena.SuperFlags {
		kind, err := bot.ParseFlagKind(fs.Kind)
		if err != nil {
			return nil, fmt.Errorf("sim: arena %s: %w", arena.Name, err)
		}
		pos := cp.Vector{X: fs.X, Y: fs.Y}
		m.flags = append(m.flags, flag{
			Flag: bot.Flag{Kind: kind, Team: bot.NoTeam, Position: pos, Carrier: bot.NoPlayer},
			home: pos,
		})
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	m.deps = bot.NewDeps(m.ID, m, m.Space, tun, opts.Trees, rng)

	id := bot.PlayerID(0)
	for _, ts := range arena.Teams {
		team, _ := bot.ParseTeam(ts.Name)
		base := ts.Base.Vector()
		facing := cp.Vector{}.Sub(base).ToAngle()
		for i := 0; i < opts.TeamSize; i++ {
			offset := (float64(i) - float64(opts.TeamSize-1)/2) * 3 * tun.Tank.Radius
			pos := base.Add(cp.Vector{Y: offset})
			m.addTank(id, team, pos, facing)
			m.robots = append(m.robots, bot.NewRobot(id, team, &actuator{m: m, id: id}, m.deps))
			id++
		}
	}
	slog.Info("match created", "match", m.ID, "arena", arena.Name, "teams", len(arena.Teams), "players", len(m.tanks))
	return m, nil
}

func (m *Match) addTank(id bot.PlayerID, team bot.Team, pos cp.Vector, heading float64) *tank {
	t := &tank{
		Player: bot.Player{
			ID:       id,
			Team:     team,
			Position: pos,
			Heading:  heading,
			Alive:    true,
			FlagTeam: bot.NoTeam,
		},
		spawn:      pos,
		spawnAngle: heading,
	}
	m.tanks = append(m.tanks, t)
	return t
}

// Step runs one tick: every robot decides, then the world advances.
func (m *Match) Step(dt float64) {
	for _, r := range m.robots {
		r.Tick(dt)
	}
	m.Advance(dt)
}

// Advance moves the world forward by dt without consulting the robots.
func (m *Match) Advance(dt float64) {
	m.moveTanks(dt)
	m.moveShots(dt)
	m.respawnTanks(dt)
	m.collectFlags()
	m.time += dt
}

func (m *Match) Time() float64 { return m.time }

func (m *Match) Robots() []*bot.Robot { return m.robots }

// Deps returns the planning stack shared by the match's robots.
func (m *Match) Deps() bot.Deps { return m.deps }

// Trees returns the behavior set the robots evaluate.
func (m *Match) Trees() *bot.TreeSet { return m.deps.Trees }

// Actuator returns the command interface for player id.
func (m *Match) Actuator(id bot.PlayerID) (bot.Actuator, bool) {
	if m.tank(id) == nil {
		return nil, false
	}
	return &actuator{m: m, id: id}, true
}

func (m *Match) Score(t bot.Team) int { return m.scores[t] }

func (m *Match) Kills(id bot.PlayerID) int { return m.kills[id] }

func (m *Match) tank(id bot.PlayerID) *tank {
	for _, t := range m.tanks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// Place teleports player id, for setting up scenarios.
func (m *Match) Place(id bot.PlayerID, pos cp.Vector, heading float64) bool {
	t := m.tank(id)
	if t == nil {
		return false
	}
	t.Position, t.Heading = pos, heading
	return true
}

func (m *Match) Player(id bot.PlayerID) (bot.Player, bool) {
	t := m.tank(id)
	if t == nil {
		return bot.Player{}, false
	}
	return t.Player, true
}

func (m *Match) Players() []bot.Player {
	out := make([]bot.Player, 0, len(m.tanks))
	for _, t := range m.tanks {
		out = append(out, t.Player)
	}
	return out
}

func (m *Match) Shots() []bot.Shot {
	out := make([]bot.Shot, 0, len(m.shots))
	for _, s := range m.shots {
		out = append(out, s.Shot)
	}
	return out
}

func (m *Match) Flags() []bot.Flag {
	out := make([]bot.Flag, 0, len(m.flags))
	for _, f := range m.flags {
		out = append(out, f.Flag)
	}
	return out
}

func (m *Match) Base(t bot.Team) (cp.Vector, bool) {
	b, ok := m.bases[t]
	return b, ok
}

// Teams lists teams with a base, in team order.
func (m *Match) Teams() []bot.Team {
	out := make([]bot.Team, 0, len(m.bases))
	for t := range m.bases {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
