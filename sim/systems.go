package sim

import (
	"log/slog"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/bot"
	"github.com/milk9111/botcore/common"
)

// hull is the radius a tank occupies against walls. It matches the
// planner clearance so every planned path is drivable.
func (m *Match) hull() float64 { return m.Tuning.Clearance() }

func (m *Match) reloadTime(t *tank) float64 {
	r := m.ReloadTime
	switch t.Flag {
	case bot.FlagRapidFire:
		r /= m.Tuning.Shot.RapidFireFactor
	case bot.FlagMachineGun:
		r /= m.Tuning.Shot.MachineGunFactor
	}
	return r
}

// moveTanks integrates speed and turn commands. A move into a wall or out
// of the arena is dropped and the tank stops.
func (m *Match) moveTanks(dt float64) {
	tk := m.Tuning.Tank
	inner := cp.BB{L: m.bounds.L + m.hull(), B: m.bounds.B + m.hull(), R: m.bounds.R - m.hull(), T: m.bounds.T - m.hull()}
	for _, t := range m.tanks {
		if t.reload > 0 {
			t.reload -= dt
		}
		if !t.Alive {
			continue
		}
		t.ReadyToFire = t.reload <= 0
		t.AngularVelocity = t.turn * tk.AngularVelocity
		t.Heading = common.NormalizeAngle(t.Heading + t.AngularVelocity*dt)

		vel := cp.ForAngle(t.Heading).Mult(t.speed * tk.Speed)
		next := t.Position.Add(vel.Mult(dt))
		if !inner.ContainsVect(next) || m.Space.IsObstructed(next, m.hull()) {
			t.Velocity = cp.Vector{}
			continue
		}
		t.Position, t.Velocity = next, vel
	}
}

// moveShots flies every shot, expiring it at the shot range or the first
// wall, and kills the first tank it passes through.
func (m *Match) moveShots(dt float64) {
	rng := m.Tuning.Shot.Range
	radius := m.Tuning.Tank.Radius
	live := m.shots[:0]
	for _, s := range m.shots {
		speed := s.Velocity.Length()
		if speed < common.Epsilon {
			continue
		}
		dir := s.Velocity.Mult(1 / speed)
		dist := min(speed*dt, rng-s.travelled)
		expired := dist >= rng-s.travelled
		if hit, ok := m.Space.FirstAlongRay(s.Position, dir, dist); ok {
			dist, expired = hit.Distance, true
		}
		end := s.Position.Add(dir.Mult(dist))

		var (
			victim *tank
			first  = math.Inf(1)
		)
		for _, t := range m.tanks {
			if !t.Alive || t.ID == s.Owner {
				continue
			}
			if d, along := segmentDistance(t.Position, s.Position, end); d <= radius && along < first {
				victim, first = t, along
			}
		}
		if victim != nil {
			m.kill(victim, s.Owner)
			continue
		}
		if expired {
			continue
		}
		s.Position = end
		s.travelled += dist
		live = append(live, s)
	}
	m.shots = live
}

func (m *Match) kill(t *tank, by bot.PlayerID) {
	t.Alive = false
	t.speed, t.turn = 0, 0
	t.Velocity, t.AngularVelocity = cp.Vector{}, 0
	t.ReadyToFire = false
	t.respawnIn = m.RespawnDelay
	if f := m.carried(t.ID); f != nil {
		f.Carrier = bot.NoPlayer
		f.Position = t.Position
	}
	t.Flag, t.FlagTeam = bot.FlagNone, bot.NoTeam
	m.kills[by]++
	slog.Debug("tank destroyed", "match", m.ID, "player", t.ID, "by", by)
}

func (m *Match) respawnTanks(dt float64) {
	for _, t := range m.tanks {
		if t.Alive {
			continue
		}
		t.respawnIn -= dt
		if t.respawnIn > 0 {
			continue
		}
		t.Alive = true
		t.Position, t.Heading = t.spawn, t.spawnAngle
		t.reload = 0
	}
}

// collectFlags carries held flags along, hands loose flags to the first
// tank touching them and scores enemy team flags brought home.
func (m *Match) collectFlags() {
	reach := m.Tuning.Tank.Radius + flagRadius
	for i := range m.flags {
		f := &m.flags[i]
		if f.Carrier != bot.NoPlayer {
			if t := m.tank(f.Carrier); t != nil {
				f.Position = t.Position
			}
			continue
		}
		for _, t := range m.tanks {
			if !t.Alive || t.Flag != bot.FlagNone || t.Position.Distance(f.Position) > reach {
				continue
			}
			if f.Kind == bot.FlagTeam && f.Team == t.Team && f.Position.Distance(f.home) < common.Epsilon {
				continue
			}
			f.Carrier = t.ID
			t.Flag, t.FlagTeam = f.Kind, f.Team
			break
		}
	}

	for _, t := range m.tanks {
		if !t.Alive || t.Flag != bot.FlagTeam || t.FlagTeam == t.Team {
			continue
		}
		base, ok := m.bases[t.Team]
		if !ok || t.Position.Distance(base) >= m.Tuning.World.BaseReach {
			continue
		}
		if f := m.carried(t.ID); f != nil {
			f.Carrier = bot.NoPlayer
			f.Position = f.home
		}
		m.scores[t.Team]++
		slog.Info("flag captured", "match", m.ID, "player", t.ID, "team", t.Team, "flag", t.FlagTeam, "score", m.scores[t.Team])
		t.Flag, t.FlagTeam = bot.FlagNone, bot.NoTeam
	}
}

func (m *Match) carried(id bot.PlayerID) *flag {
	for i := range m.flags {
		if m.flags[i].Carrier == id {
			return &m.flags[i]
		}
	}
	return nil
}

// segmentDistance is the distance from p to segment ab and the fraction
// along ab of the closest point.
func segmentDistance(p, a, b cp.Vector) (float64, float64) {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 < common.Epsilon {
		return p.Distance(a), 0
	}
	u := common.Clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return p.Distance(a.Add(ab.Mult(u))), u
}
