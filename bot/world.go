// Package bot is the robot player: per-agent brains driven by decision
// trees, plus the per-team coordinator that hands out roles.
package bot

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

//go:generate go tool mockgen -destination=./mocks/world_mock.go -package=mocks . World,Actuator

type PlayerID int

// NoPlayer marks an uncarried flag or an absent target.
const NoPlayer PlayerID = -1

type Team int

const (
	NoTeam Team = iota - 1
	RogueTeam
	RedTeam
	GreenTeam
	BlueTeam
	PurpleTeam
)

func (t Team) String() string {
	switch t {
	case NoTeam:
		return "none"
	case RogueTeam:
		return "rogue"
	case RedTeam:
		return "red"
	case GreenTeam:
		return "green"
	case BlueTeam:
		return "blue"
	case PurpleTeam:
		return "purple"
	}
	return fmt.Sprintf("team(%d)", int(t))
}

// ParseTeam maps a team name to its Team.
func ParseTeam(s string) (Team, error) {
	for t := RogueTeam; t <= PurpleTeam; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return NoTeam, fmt.Errorf("bot: unknown team %q", s)
}

type FlagKind int

const (
	FlagNone FlagKind = iota
	FlagTeam
	FlagLaser
	FlagRapidFire
	FlagMachineGun
)

func (k FlagKind) String() string {
	switch k {
	case FlagNone:
		return "none"
	case FlagTeam:
		return "team"
	case FlagLaser:
		return "laser"
	case FlagRapidFire:
		return "rapid_fire"
	case FlagMachineGun:
		return "machine_gun"
	}
	return fmt.Sprintf("flag(%d)", int(k))
}

// ParseFlagKind maps a super flag name to its kind.
func ParseFlagKind(s string) (FlagKind, error) {
	for k := FlagTeam; k <= FlagMachineGun; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return FlagNone, fmt.Errorf("bot: unknown flag kind %q", s)
}

// Player is a read-only snapshot of one tank.
type Player struct {
	ID              PlayerID
	Team            Team
	Position        cp.Vector
	Velocity        cp.Vector
	Heading         float64
	AngularVelocity float64
	Alive           bool
	Paused          bool
	// ReadyToFire is set when the tank has a reloaded shot.
	ReadyToFire bool
	Flag        FlagKind
	// FlagTeam is the owning team of a held team flag.
	FlagTeam Team
}

type Shot struct {
	Owner    PlayerID
	Position cp.Vector
	Velocity cp.Vector
}

type Flag struct {
	Kind     FlagKind
	Team     Team
	Position cp.Vector
	Carrier  PlayerID
}

// World is the game state a robot reads each tick.
type World interface {
	Player(id PlayerID) (Player, bool)
	Players() []Player
	Shots() []Shot
	Flags() []Flag
	Base(team Team) (cp.Vector, bool)
}

// Actuator receives a robot's commands. Speed and angular velocity are
// normalized to [-1, 1].
type Actuator interface {
	SetSpeed(v float64)
	SetAngularVelocity(w float64)
	// Fire reports whether a shot left the barrel.
	Fire() bool
	DropFlag()
}
