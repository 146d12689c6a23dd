package bot

import (
	"fmt"
	"sync/atomic"

	"github.com/milk9111/botcore/config"
	"github.com/milk9111/botcore/dectree"
)

// Trees is one complete behavior set.
type Trees struct {
	Role   *dectree.Tree[*Robot]
	Motion *dectree.Tree[*Robot]
	Shoot  *dectree.Tree[*Robot]
	Drop   *dectree.Tree[*Robot]
}

// TreeSet lets a reloaded behavior set replace the running one between
// ticks.
type TreeSet struct {
	p atomic.Pointer[Trees]
}

func NewTreeSet(t *Trees) *TreeSet {
	s := &TreeSet{}
	s.p.Store(t)
	return s
}

func (s *TreeSet) Load() *Trees { return s.p.Load() }

func (s *TreeSet) Store(t *Trees) { s.p.Store(t) }

// Registry names every predicate and action the trees can use.
func Registry() dectree.Registry[*Robot] {
	return dectree.Registry[*Robot]{
		Predicates: map[string]dectree.Predicate[*Robot]{
			"alive":               (*Robot).isAlive,
			"shot_coming":         (*Robot).isShotComing,
			"holding_flag":        (*Robot).isHoldingFlag,
			"holding_team_flag":   (*Robot).isHoldingTeamFlag,
			"holding_own_flag":    (*Robot).isHoldingOwnFlag,
			"at_team_base":        (*Robot).isAtTeamBase,
			"ready_to_fire":       (*Robot).isReadyToFire,
			"shot_timer_elapsed":  (*Robot).isShotTimerElapsed,
			"will_barely_miss":    (*Robot).willBarelyMiss,
			"building_in_the_way": (*Robot).isBuildingInTheWay,
			"teammate_in_the_way": (*Robot).isTeammateInTheWay,
			"lowest_id":           (*Robot).hasLowestID,
			"highest_id":          (*Robot).hasHighestID,
			"team_flags":          (*Robot).teamFlagsEnabled,
		},
		Actions: map[string]dectree.Action[*Robot]{
			"do_nothing":           (*Robot).doNothing,
			"evade":                (*Robot).evade,
			"follow_path":          (*Robot).followPath,
			"aim_at_closest_enemy": (*Robot).aimAtClosestEnemy,
			"shoot":                (*Robot).shoot,
			"postpone_shot":        (*Robot).postponeShot,
			"drop_flag":            (*Robot).dropFlag,
			"role_guard":           (*Robot).roleGuard,
			"role_capture":         (*Robot).roleCapture,
			"role_attack":          (*Robot).roleAttack,
		},
		Scripts: func(name string) ([]byte, error) {
			return config.Load("trees/" + name)
		},
	}
}

// LoadTrees compiles trees/{role,motion,shoot,drop_flag}.yaml.
func LoadTrees() (*Trees, error) {
	reg := Registry()
	load := func(name string) (*dectree.Tree[*Robot], error) {
		file := "trees/" + name + ".yaml"
		data, err := config.Load(file)
		if err != nil {
			return nil, fmt.Errorf("bot: load %s: %w", file, err)
		}
		tree, err := dectree.CompileYAML(data, reg)
		if err != nil {
			return nil, fmt.Errorf("bot: %s: %w", file, err)
		}
		return tree, nil
	}
	var (
		t   Trees
		err error
	)
	if t.Role, err = load("role"); err != nil {
		return nil, err
	}
	if t.Motion, err = load("motion"); err != nil {
		return nil, err
	}
	if t.Shoot, err = load("shoot"); err != nil {
		return nil, err
	}
	if t.Drop, err = load("drop_flag"); err != nil {
		return nil, err
	}
	return &t, nil
}
