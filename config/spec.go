// Package config loads tuning, arena and behavior tree specs from YAML,
// preferring files in OverrideDir over the embedded defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/botcore/obstacle"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Tuning struct {
	World   WorldSpec   `yaml:"world"`
	Tank    TankSpec    `yaml:"tank"`
	Shot    ShotSpec    `yaml:"shot"`
	Planner PlannerSpec `yaml:"planner"`
	Threat  ThreatSpec  `yaml:"threat"`
	Flock   FlockSpec   `yaml:"flock"`
	Fire    FireSpec    `yaml:"fire"`
	Lead    LeadSpec    `yaml:"lead"`
}

type WorldSpec struct {
	Size      float64 `yaml:"size"`
	TeamFlags bool    `yaml:"team_flags"`
	// BaseReach is how close counts as being at a base.
	BaseReach float64 `yaml:"base_reach"`
}

type TankSpec struct {
	Radius          float64 `yaml:"radius"`
	Length          float64 `yaml:"length"`
	Speed           float64 `yaml:"speed"`
	AngularVelocity float64 `yaml:"angular_velocity"`
	MuzzleFront     float64 `yaml:"muzzle_front"`
}

type ShotSpec struct {
	Speed            float64 `yaml:"speed"`
	Range            float64 `yaml:"range"`
	LaserFactor      float64 `yaml:"laser_factor"`
	RapidFireFactor  float64 `yaml:"rapid_fire_factor"`
	MachineGunFactor float64 `yaml:"machine_gun_factor"`
}

type PlannerSpec struct {
	// CellFraction and ClearanceFraction are multiples of the tank radius.
	CellFraction      float64 `yaml:"cell_fraction"`
	ClearanceFraction float64 `yaml:"clearance_fraction"`
	SnapRadius        int     `yaml:"snap_radius"`
	MaxExpansions     int     `yaml:"max_expansions"`
}

type ThreatSpec struct {
	Range  float64 `yaml:"range"`
	Cosine float64 `yaml:"cosine"`
}

type FlockSpec struct {
	// SeparationRadii is the separation threshold in tank radii.
	SeparationRadii  float64 `yaml:"separation_radii"`
	PathWeight       float64 `yaml:"path_weight"`
	SeparationWeight float64 `yaml:"separation_weight"`
}

type FireSpec struct {
	PostponeDelay float64 `yaml:"postpone_delay"`
	MinDelay      float64 `yaml:"min_delay"`
	DelaySpread   float64 `yaml:"delay_spread"`
	// TeammateRadii is the lateral clearance, in tank radii, a shot must
	// leave around teammates.
	TeammateRadii float64 `yaml:"teammate_radii"`
}

type LeadSpec struct {
	Lag        float64 `yaml:"lag"`
	Tolerance  float64 `yaml:"tolerance"`
	Iterations int     `yaml:"iterations"`
}

func (t Tuning) CellSize() float64 { return t.Tank.Radius * t.Planner.CellFraction }

func (t Tuning) Clearance() float64 { return t.Tank.Radius * t.Planner.ClearanceFraction }

func (t Tuning) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"world.size", t.World.Size},
		{"tank.radius", t.Tank.Radius},
		{"tank.speed", t.Tank.Speed},
		{"tank.angular_velocity", t.Tank.AngularVelocity},
		{"shot.speed", t.Shot.Speed},
		{"shot.range", t.Shot.Range},
		{"planner.cell_fraction", t.Planner.CellFraction},
	} {
		if f.v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", f.name))
		}
	}
	if t.Planner.ClearanceFraction < 0 {
		errs = append(errs, errors.New("planner.clearance_fraction must not be negative"))
	}
	if t.Threat.Cosine < -1 || t.Threat.Cosine > 1 {
		errs = append(errs, errors.New("threat.cosine must be in [-1, 1]"))
	}
	if t.Lead.Iterations < 1 {
		errs = append(errs, errors.New("lead.iterations must be at least 1"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: tuning: %w", err)
	}
	return nil
}

// LoadTuning loads and validates tuning.yaml.
func LoadTuning() (Tuning, error) {
	t, err := LoadSpec[Tuning]("tuning.yaml")
	if err != nil {
		return Tuning{}, err
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

type ArenaSpec struct {
	Name       string       `yaml:"name"`
	Size       float64      `yaml:"size"`
	Boxes      []BoxSpec    `yaml:"boxes"`
	Circles    []CircleSpec `yaml:"circles"`
	Teams      []TeamSpec   `yaml:"teams"`
	SuperFlags []FlagSpec   `yaml:"super_flags"`
}

type BoxSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type CircleSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
}

type TeamSpec struct {
	Name string    `yaml:"name"`
	Base PointSpec `yaml:"base"`
	Flag PointSpec `yaml:"flag"`
}

type FlagSpec struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p PointSpec) Vector() cp.Vector { return cp.Vector{X: p.X, Y: p.Y} }

// LoadArena loads arenas/<name>.yaml.
func LoadArena(name string) (ArenaSpec, error) {
	a, err := LoadSpec[ArenaSpec]("arenas/" + name + ".yaml")
	if err != nil {
		return ArenaSpec{}, err
	}
	if a.Size <= 0 {
		return ArenaSpec{}, fmt.Errorf("config: arena %s: size must be positive", name)
	}
	return a, nil
}

// Space builds the obstacle space for the arena.
func (a ArenaSpec) Space() *obstacle.Space {
	s := obstacle.NewSpace()
	for _, b := range a.Boxes {
		s.AddBox(cp.Vector{X: b.X, Y: b.Y}, b.W, b.H)
	}
	for _, c := range a.Circles {
		s.AddCircle(cp.Vector{X: c.X, Y: c.Y}, c.Radius)
	}
	return s
}
