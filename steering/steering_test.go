package steering

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/botcore/obstacle"
)

func near(a, b cp.Vector, tol float64) bool {
	return a.Distance(b) <= tol
}

func TestProjectPosition(t *testing.T) {
	cases := []struct {
		name string
		k    Kinematics
		dt   float64
		want cp.Vector
	}{
		{
			name: "straight",
			k:    Kinematics{Position: cp.Vector{X: 1}, Velocity: cp.Vector{X: 10}},
			dt:   2,
			want: cp.Vector{X: 21},
		},
		{
			name: "slow turn stays straight",
			k:    Kinematics{Velocity: cp.Vector{Y: 5}, AngularVelocity: MinArcTurnRate / 2},
			dt:   1,
			want: cp.Vector{Y: 5},
		},
		{
			name: "quarter circle left",
			k:    Kinematics{Velocity: cp.Vector{X: math.Pi / 2}, AngularVelocity: math.Pi / 2},
			dt:   1,
			want: cp.Vector{X: 1, Y: 1},
		},
		{
			name: "quarter circle right",
			k:    Kinematics{Velocity: cp.Vector{X: math.Pi / 2}, AngularVelocity: -math.Pi / 2},
			dt:   1,
			want: cp.Vector{X: 1, Y: -1},
		},
		{
			name: "stationary",
			k:    Kinematics{Position: cp.Vector{X: 3, Y: 4}, AngularVelocity: 1},
			dt:   5,
			want: cp.Vector{X: 3, Y: 4},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ProjectPosition(c.k, c.dt); !near(got, c.want, 1e-9) {
				t.Fatalf("ProjectPosition = %v, want %v", got, c.want)
			}
		})
	}
}

func TestLeadTarget(t *testing.T) {
	l := DefaultLead
	l.ShotSpeed = 100

	stationary := Kinematics{Position: cp.Vector{X: 50}}
	if got := LeadTarget(cp.Vector{}, stationary, l, nil); !near(got, stationary.Position, 1e-9) {
		t.Fatalf("stationary target led to %v", got)
	}

	crossing := Kinematics{Position: cp.Vector{X: 100}, Velocity: cp.Vector{Y: 20}}
	aim := LeadTarget(cp.Vector{}, crossing, l, nil)
	if aim.Y <= 0 {
		t.Fatalf("crossing target not led: %v", aim)
	}
	flight := aim.Length()/l.ShotSpeed + l.Lag
	if math.Abs(aim.Y-20*flight) > 20*flight*l.Tolerance*2 {
		t.Fatalf("lead %v inconsistent with flight time %v", aim.Y, flight)
	}

	s := obstacle.NewSpace()
	s.AddBox(cp.Vector{X: 100, Y: 10}, 10, 4)
	if got := LeadTarget(cp.Vector{}, crossing, l, s); got != crossing.Position {
		t.Fatalf("obstructed lead = %v, want current position", got)
	}
}

func TestIncomingShot(t *testing.T) {
	pos := cp.Vector{}
	cases := []struct {
		name  string
		shots []Projectile
		ok    bool
	}{
		{"none", nil, false},
		{"head on", []Projectile{{Position: cp.Vector{X: 100}, Velocity: cp.Vector{X: -50}}}, true},
		{"too far", []Projectile{{Position: cp.Vector{X: 200}, Velocity: cp.Vector{X: -50}}}, false},
		{"moving away", []Projectile{{Position: cp.Vector{X: 100}, Velocity: cp.Vector{X: 50}}}, false},
		{"wide", []Projectile{{Position: cp.Vector{X: 100}, Velocity: cp.Vector{X: -50, Y: 20}}}, false},
		{"stalled", []Projectile{{Position: cp.Vector{X: 10}}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, ok := IncomingShot(pos, c.shots, 150, 0.97); ok != c.ok {
				t.Fatalf("IncomingShot ok = %v, want %v", ok, c.ok)
			}
		})
	}

	angle, _ := IncomingShot(pos, []Projectile{
		{Position: cp.Vector{Y: 120}, Velocity: cp.Vector{Y: -50}},
		{Position: cp.Vector{X: 40}, Velocity: cp.Vector{X: -50}},
	}, 150, 0.97)
	if math.Abs(math.Abs(angle)-math.Pi) > 1e-9 {
		t.Fatalf("nearest threat angle = %v, want pi", angle)
	}
}

func TestEvasionTurn(t *testing.T) {
	cases := []struct {
		name      string
		shot, hdg float64
		want      float64
	}{
		{"facing shooter", math.Pi, 0, math.Pi / 2},
		{"already perpendicular", 0, math.Pi / 2, 0},
		{"slightly off", 0, math.Pi/2 - 0.1, 0.1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := EvasionTurn(c.shot, c.hdg)
			if math.Abs(math.Abs(got)-math.Abs(c.want)) > 1e-9 {
				t.Fatalf("EvasionTurn = %v, want magnitude %v", got, c.want)
			}
			if math.Abs(got) > math.Pi/2+1e-9 {
				t.Fatalf("turn %v larger than a quarter", got)
			}
		})
	}
}

func TestAimHelpers(t *testing.T) {
	if got := AzimuthTo(cp.Vector{}, 0, cp.Vector{Y: 5}); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Fatalf("AzimuthTo = %v", got)
	}
	if !WillBarelyMiss(0.01, 50, 6) {
		t.Fatalf("small error at range should barely miss")
	}
	if WillBarelyMiss(0.5, 50, 6) {
		t.Fatalf("large error should not")
	}

	mates := []cp.Vector{{X: 30, Y: 3}}
	if !TeammateInTheWay(cp.Vector{}, 0, mates, 5, 350) {
		t.Fatalf("teammate in line of fire not detected")
	}
	if TeammateInTheWay(cp.Vector{}, math.Pi, mates, 5, 350) {
		t.Fatalf("teammate behind reported")
	}
	if TeammateInTheWay(cp.Vector{}, 0, mates, 5, 20) {
		t.Fatalf("teammate beyond range reported")
	}

	s := obstacle.NewSpace()
	s.AddBox(cp.Vector{X: 20}, 2, 10)
	if !BuildingInTheWay(s, cp.Vector{}, 0, 50) {
		t.Fatalf("building before target not detected")
	}
	if BuildingInTheWay(s, cp.Vector{}, 0, 15) {
		t.Fatalf("building past target reported")
	}

	if TurnRate(1, 0.1, 1) != 1 || TurnRate(-1, 0.1, 1) != -1 {
		t.Fatalf("large errors must saturate")
	}
	if got := TurnRate(0.05, 0.1, 1); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("TurnRate = %v, want 0.5", got)
	}
}

func TestSeparation(t *testing.T) {
	cases := []struct {
		name      string
		pos       cp.Vector
		neighbors []cp.Vector
		threshold float64
		want      cp.Vector
	}{
		{"none", cp.Vector{}, nil, 10, cp.Vector{}},
		{"out of range", cp.Vector{}, []cp.Vector{{X: 50}}, 10, cp.Vector{}},
		{"single", cp.Vector{}, []cp.Vector{{X: 5}}, 10, cp.Vector{X: -5}},
		{"on threshold", cp.Vector{}, []cp.Vector{{Y: 10}}, 10, cp.Vector{Y: -10}},
		{"coincident", cp.Vector{X: 3, Y: 3}, []cp.Vector{{X: 3, Y: 3}}, 10, cp.Vector{}},
		// the near neighbor is at +x but the centroid sits at -x
		{"asymmetric", cp.Vector{}, []cp.Vector{{X: 1}, {X: -6}}, 12, cp.Vector{X: 2.5}},
		{"ignores far", cp.Vector{}, []cp.Vector{{X: 1}, {X: -6}, {X: 40}}, 12, cp.Vector{X: 2.5}},
	}
	for _, c := range cases {
		if got := Separation(c.pos, c.neighbors, c.threshold); !near(got, c.want, 1e-9) {
			t.Fatalf("%s: Separation = %v, want %v", c.name, got, c.want)
		}
	}
	if h := Blend(cp.Vector{X: 1}, 7, cp.Vector{Y: 1}, 3); h <= 0 || h >= math.Pi/4 {
		t.Fatalf("Blend heading = %v", h)
	}
}
