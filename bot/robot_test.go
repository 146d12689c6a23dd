package bot_test

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"go.uber.org/mock/gomock"

	"github.com/milk9111/botcore/bot"
	"github.com/milk9111/botcore/bot/mocks"
	"github.com/milk9111/botcore/config"
	"github.com/milk9111/botcore/obstacle"
	"github.com/milk9111/botcore/pathing"
)

// arena backs a mock World with plain slices the test can edit between
// ticks.
type arena struct {
	players []bot.Player
	shots   []bot.Shot
	flags   []bot.Flag
	bases   map[bot.Team]cp.Vector
}

func newArena() *arena {
	return &arena{
		bases: map[bot.Team]cp.Vector{
			bot.RedTeam:  {X: -80},
			bot.BlueTeam: {X: 80},
		},
		flags: []bot.Flag{
			{Kind: bot.FlagTeam, Team: bot.RedTeam, Position: cp.Vector{X: -80}, Carrier: bot.NoPlayer},
			{Kind: bot.FlagTeam, Team: bot.BlueTeam, Position: cp.Vector{X: 80}, Carrier: bot.NoPlayer},
		},
	}
}

func (a *arena) add(id bot.PlayerID, team bot.Team, pos cp.Vector) *bot.Player {
	a.players = append(a.players, bot.Player{ID: id, Team: team, Position: pos, Alive: true, FlagTeam: bot.NoTeam})
	return &a.players[len(a.players)-1]
}

func (a *arena) player(id bot.PlayerID) *bot.Player {
	for i := range a.players {
		if a.players[i].ID == id {
			return &a.players[i]
		}
	}
	return nil
}

func (a *arena) world(ctrl *gomock.Controller) *mocks.MockWorld {
	w := mocks.NewMockWorld(ctrl)
	w.EXPECT().Player(gomock.Any()).DoAndReturn(func(id bot.PlayerID) (bot.Player, bool) {
		if p := a.player(id); p != nil {
			return *p, true
		}
		return bot.Player{}, false
	}).AnyTimes()
	w.EXPECT().Players().DoAndReturn(func() []bot.Player { return slices.Clone(a.players) }).AnyTimes()
	w.EXPECT().Shots().DoAndReturn(func() []bot.Shot { return a.shots }).AnyTimes()
	w.EXPECT().Flags().DoAndReturn(func() []bot.Flag { return a.flags }).AnyTimes()
	w.EXPECT().Base(gomock.Any()).DoAndReturn(func(t bot.Team) (cp.Vector, bool) {
		b, ok := a.bases[t]
		return b, ok
	}).AnyTimes()
	return w
}

func loadDeps(t *testing.T, w bot.World, space *obstacle.Space) bot.Deps {
	t.Helper()
	tun, err := config.LoadTuning()
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	tun.World.Size = 200
	trees, err := bot.LoadTrees()
	if err != nil {
		t.Fatalf("LoadTrees: %v", err)
	}
	return bot.NewDeps(uuid.New(), w, space, tun, bot.NewTreeSet(trees), rand.New(rand.NewPCG(7, 11)))
}

// quietActuator accepts any motion commands but fails on fire or drop
// unless the test expects them.
func quietActuator(ctrl *gomock.Controller) *mocks.MockActuator {
	act := mocks.NewMockActuator(ctrl)
	act.EXPECT().SetSpeed(gomock.Any()).AnyTimes()
	act.EXPECT().SetAngularVelocity(gomock.Any()).AnyTimes()
	return act
}

func TestRoleUniqueness(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newArena()
	ids := []bot.PlayerID{8, 3, 9, 5}
	for i, id := range ids {
		a.add(id, bot.RedTeam, cp.Vector{X: -60, Y: float64(i*10 - 15)})
	}
	a.add(20, bot.BlueTeam, cp.Vector{X: 60})
	a.add(21, bot.BlueTeam, cp.Vector{X: 60, Y: 20})

	deps := loadDeps(t, a.world(ctrl), obstacle.NewSpace())
	var robots []*bot.Robot
	for _, id := range ids {
		robots = append(robots, bot.NewRobot(id, bot.RedTeam, quietActuator(ctrl), deps))
	}
	for tick := 0; tick < 3; tick++ {
		for _, r := range robots {
			r.Tick(0.05)
		}
	}

	c := deps.Coordinator
	if got := c.Holders(bot.RedTeam, bot.RoleGuard); !slices.Equal(got, []bot.PlayerID{3}) {
		t.Fatalf("guards = %v, want [3]", got)
	}
	if got := c.Holders(bot.RedTeam, bot.RoleCapture); !slices.Equal(got, []bot.PlayerID{9}) {
		t.Fatalf("capturers = %v, want [9]", got)
	}
	if got := c.Holders(bot.RedTeam, bot.RoleAttack); !slices.Equal(got, []bot.PlayerID{5, 8}) {
		t.Fatalf("attackers = %v, want [5 8]", got)
	}

	// the guard leaves; after invalidation the next lowest id takes over
	a.players = slices.DeleteFunc(a.players, func(p bot.Player) bool { return p.ID == 3 })
	robots = slices.DeleteFunc(robots, func(r *bot.Robot) bool { return r.ID == 3 })
	c.Invalidate(bot.RedTeam)
	for _, r := range robots {
		r.Tick(0.05)
	}
	if got := c.Holders(bot.RedTeam, bot.RoleGuard); !slices.Equal(got, []bot.PlayerID{5}) {
		t.Fatalf("guards after roster change = %v, want [5]", got)
	}
	if got := c.Holders(bot.RedTeam, bot.RoleCapture); !slices.Equal(got, []bot.PlayerID{9}) {
		t.Fatalf("capturers after roster change = %v, want [9]", got)
	}
}

func TestAttackerHeadsForTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newArena()
	a.add(1, bot.RedTeam, cp.Vector{X: -60, Y: -20})
	a.add(2, bot.RedTeam, cp.Vector{X: -50})
	a.add(3, bot.RedTeam, cp.Vector{X: -60, Y: 20})
	enemy := a.add(10, bot.BlueTeam, cp.Vector{X: 40, Y: 5})
	enemyPos := enemy.Position

	deps := loadDeps(t, a.world(ctrl), obstacle.NewSpace())
	r := bot.NewRobot(2, bot.RedTeam, quietActuator(ctrl), deps)
	r.Tick(0.05)

	if r.Target() != 10 {
		t.Fatalf("target = %v, want 10", r.Target())
	}
	role, motion, _, _ := r.Decisions()
	if role != "role_attack" || motion != "follow_path" {
		t.Fatalf("decisions = %s, %s", role, motion)
	}
	goal, ok := r.Path().Goal()
	if !ok || goal != enemyPos {
		t.Fatalf("attack path goal = %v, want %v", goal, enemyPos)
	}
}

func TestDropFlagTree(t *testing.T) {
	cases := []struct {
		name     string
		flag     bot.FlagKind
		flagTeam bot.Team
		pos      cp.Vector
		drop     bool
	}{
		{"empty handed", bot.FlagNone, bot.NoTeam, cp.Vector{}, false},
		{"super flag", bot.FlagLaser, bot.NoTeam, cp.Vector{}, true},
		{"own flag in the field", bot.FlagTeam, bot.RedTeam, cp.Vector{}, false},
		{"own flag at base", bot.FlagTeam, bot.RedTeam, cp.Vector{X: -78}, true},
		{"enemy flag", bot.FlagTeam, bot.BlueTeam, cp.Vector{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			a := newArena()
			self := a.add(1, bot.RedTeam, c.pos)
			self.Flag, self.FlagTeam = c.flag, c.flagTeam
			a.add(2, bot.BlueTeam, cp.Vector{X: 60, Y: 60})

			act := quietActuator(ctrl)
			if c.drop {
				act.EXPECT().DropFlag().Times(1)
			}
			r := bot.NewRobot(1, bot.RedTeam, act, loadDeps(t, a.world(ctrl), obstacle.NewSpace()))
			r.Tick(0.05)

			_, _, _, drop := r.Decisions()
			want := "do_nothing"
			if c.drop {
				want = "drop_flag"
			}
			if drop != want {
				t.Fatalf("drop decision = %q, want %q", drop, want)
			}
		})
	}
}

func TestEvadeIncomingShot(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newArena()
	a.add(1, bot.RedTeam, cp.Vector{})
	a.add(2, bot.BlueTeam, cp.Vector{X: 90, Y: 50})
	a.shots = []bot.Shot{{Owner: 2, Position: cp.Vector{X: 100}, Velocity: cp.Vector{X: -100}}}

	act := mocks.NewMockActuator(ctrl)
	var speed, turn float64
	act.EXPECT().SetSpeed(gomock.Any()).Do(func(v float64) { speed = v }).AnyTimes()
	act.EXPECT().SetAngularVelocity(gomock.Any()).Do(func(w float64) { turn = w }).AnyTimes()

	r := bot.NewRobot(1, bot.RedTeam, act, loadDeps(t, a.world(ctrl), obstacle.NewSpace()))
	r.Tick(0.05)

	_, motion, _, _ := r.Decisions()
	if motion != "evade" {
		t.Fatalf("motion = %q, want evade", motion)
	}
	if turn == 0 {
		t.Fatalf("evade issued no turn")
	}
	if speed != 1 {
		t.Fatalf("evade speed = %v", speed)
	}

	// own shots are never a threat
	a.shots[0].Owner = 1
	r.Tick(0.05)
	if _, motion, _, _ := r.Decisions(); motion == "evade" {
		t.Fatalf("evaded own shot")
	}
}

func TestShotCadence(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newArena()
	self := a.add(1, bot.RedTeam, cp.Vector{})
	self.ReadyToFire = true
	a.add(2, bot.BlueTeam, cp.Vector{X: 50})

	act := quietActuator(ctrl)
	act.EXPECT().Fire().Return(true).Times(1)

	r := bot.NewRobot(1, bot.RedTeam, act, loadDeps(t, a.world(ctrl), obstacle.NewSpace()))
	r.Tick(0.01)
	if _, _, shoot, _ := r.Decisions(); shoot != "shoot" {
		t.Fatalf("first tick shoot decision = %q", shoot)
	}
	r.Tick(0.01)
	if _, _, shoot, _ := r.Decisions(); shoot != "do_nothing" {
		t.Fatalf("second tick shoot decision = %q, want cooldown", shoot)
	}
}

func TestShotPostponedBehindBuilding(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newArena()
	self := a.add(1, bot.RedTeam, cp.Vector{})
	self.ReadyToFire = true
	a.add(2, bot.BlueTeam, cp.Vector{X: 50})

	space := obstacle.NewSpace()
	space.AddBox(cp.Vector{X: 25}, 4, 4)

	r := bot.NewRobot(1, bot.RedTeam, quietActuator(ctrl), loadDeps(t, a.world(ctrl), space))
	r.Tick(0.01)
	if _, _, shoot, _ := r.Decisions(); shoot != "postpone_shot" {
		t.Fatalf("shoot decision = %q, want postpone_shot", shoot)
	}
}

func TestGuardKeepsPathWhenGoalUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newArena()
	a.add(1, bot.RedTeam, cp.Vector{})
	a.add(2, bot.BlueTeam, cp.Vector{X: 90, Y: 90})
	a.flags[0].Position = cp.Vector{X: 50, Y: 50}

	space := obstacle.NewSpace()
	space.AddBox(cp.Vector{X: -50, Y: -50}, 40, 40)

	deps := loadDeps(t, a.world(ctrl), space)
	r := bot.NewRobot(1, bot.RedTeam, quietActuator(ctrl), deps)
	r.Tick(0.05)
	if role, _, _, _ := r.Decisions(); role != "role_guard" {
		t.Fatalf("role = %q, want role_guard", role)
	}
	before := slices.Clone(r.Path().Points)
	if len(before) == 0 {
		t.Fatalf("guard has no path")
	}

	a.flags[0].Position = cp.Vector{X: -50, Y: -50}
	self, _ := deps.World.Player(1)
	if _, err := deps.Coordinator.GuardPlan(self); !errors.Is(err, pathing.ErrNoPath) {
		t.Fatalf("GuardPlan err = %v, want ErrNoPath", err)
	}
	r.Tick(0.05)
	if !slices.Equal(r.Path().Points, before) {
		t.Fatalf("path changed after failed plan: %v -> %v", before, r.Path().Points)
	}
}

func TestTargetPriority(t *testing.T) {
	self := bot.Player{ID: 1, Team: bot.RedTeam, Alive: true}
	cases := []struct {
		name  string
		other bot.Player
		want  float64
	}{
		{"self", self, 0},
		{"teammate", bot.Player{ID: 2, Team: bot.RedTeam, Alive: true}, 0},
		{"dead enemy", bot.Player{ID: 3, Team: bot.BlueTeam}, 0},
		{"active enemy", bot.Player{ID: 4, Team: bot.BlueTeam, Alive: true}, 3},
		{"paused enemy", bot.Player{ID: 5, Team: bot.BlueTeam, Alive: true, Paused: true}, 1},
		{"far enemy", bot.Player{ID: 6, Team: bot.BlueTeam, Alive: true, Position: cp.Vector{X: 400}}, 2.75},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := bot.TargetPriority(self, c.other, 800); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("TargetPriority = %v, want %v", got, c.want)
			}
		})
	}
	rogue := bot.Player{ID: 7, Team: bot.RogueTeam, Alive: true}
	if bot.TargetPriority(rogue, bot.Player{ID: 8, Team: bot.RogueTeam, Alive: true}, 800) == 0 {
		t.Fatalf("rogues must target each other")
	}
}
