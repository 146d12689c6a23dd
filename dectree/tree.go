// Package dectree evaluates binary decision trees whose interior nodes
// test the agent and whose leaves act on it. Trees are compiled from YAML
// data against a registry of named predicates and actions.
package dectree

// Predicate tests agent state. It may cache derived values on the agent
// but must not issue commands.
type Predicate[A any] func(agent A, dt float64) bool

// Action issues commands for the agent.
type Action[A any] func(agent A, dt float64)

type node[A any] struct {
	name string

	test    Predicate[A]
	yes, no *node[A]

	action     Action[A]
	actionName string
}

func (n *node[A]) leaf() bool { return n.action != nil }

// Tree is a compiled decision tree. Every path from the root ends in
// exactly one action.
type Tree[A any] struct {
	Name  string
	root  *node[A]
	depth int
}

// Evaluate walks the tree for agent, runs the selected action and returns
// its name.
func (t *Tree[A]) Evaluate(agent A, dt float64) string {
	n := t.root
	for !n.leaf() {
		if n.test(agent, dt) {
			n = n.yes
		} else {
			n = n.no
		}
	}
	n.action(agent, dt)
	return n.actionName
}

// Depth is the number of decisions on the longest root-to-leaf path.
func (t *Tree[A]) Depth() int { return t.depth }
