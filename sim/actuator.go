package sim

import (
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/bot"
	"github.com/milk9111/botcore/common"
)

// actuator applies one robot's commands to its tank.
type actuator struct {
	m  *Match
	id bot.PlayerID
}

func (a *actuator) SetSpeed(v float64) {
	if t := a.m.tank(a.id); t != nil {
		t.speed = common.Clamp(v, -1, 1)
	}
}

func (a *actuator) SetAngularVelocity(w float64) {
	if t := a.m.tank(a.id); t != nil {
		t.turn = common.Clamp(w, -1, 1)
	}
}

// Fire launches a shot from the muzzle when the tank is loaded.
func (a *actuator) Fire() bool {
	t := a.m.tank(a.id)
	if t == nil || !t.Alive || t.reload > 0 {
		return false
	}
	tun := a.m.Tuning
	dir := cp.ForAngle(t.Heading)
	speed := tun.Shot.Speed
	switch t.Flag {
	case bot.FlagLaser:
		speed *= tun.Shot.LaserFactor
	case bot.FlagRapidFire:
		speed *= tun.Shot.RapidFireFactor
	case bot.FlagMachineGun:
		speed *= tun.Shot.MachineGunFactor
	}
	a.m.shots = append(a.m.shots, shot{Shot: bot.Shot{
		Owner:    t.ID,
		Position: t.Position.Add(dir.Mult(tun.Tank.MuzzleFront)),
		Velocity: dir.Mult(speed).Add(t.Velocity),
	}})
	t.reload = a.m.reloadTime(t)
	t.ReadyToFire = false
	return true
}

// DropFlag leaves the carried flag where the tank stands. Dropping a team
// flag at its own base returns it home.
func (a *actuator) DropFlag() {
	t := a.m.tank(a.id)
	if t == nil || t.Flag == bot.FlagNone {
		return
	}
	f := a.m.carried(t.ID)
	if f == nil {
		t.Flag, t.FlagTeam = bot.FlagNone, bot.NoTeam
		return
	}
	f.Carrier = bot.NoPlayer
	f.Position = t.Position
	if f.Kind == bot.FlagTeam && f.Team == t.Team {
		f.Position = f.home
	}
	t.Flag, t.FlagTeam = bot.FlagNone, bot.NoTeam
	slog.Debug("flag dropped", "match", a.m.ID, "player", t.ID, "flag", f.Kind, "team", f.Team)
}
