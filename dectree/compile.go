package dectree

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxDepth bounds the decisions on any root-to-leaf path.
const MaxDepth = 16

// Registry holds the named predicates and actions a tree may reference.
type Registry[A any] struct {
	Predicates map[string]Predicate[A]
	Actions    map[string]Action[A]
	// Scripts loads the source named by a script_file node.
	Scripts func(name string) ([]byte, error)
}

// RawTree is the YAML form of a tree. Nodes are referenced by name, and a
// subtree may be shared by several parents.
type RawTree struct {
	Name  string             `yaml:"name"`
	Root  string             `yaml:"root"`
	Nodes map[string]RawNode `yaml:"nodes"`
}

// RawNode is either a decision, with exactly one of If, When, Script or
// ScriptFile and both Then and Else, or a leaf naming an action in Do.
type RawNode struct {
	// If names a registered predicate.
	If string `yaml:"if,omitempty"`
	// When is an expr-lang boolean over Env.
	When string `yaml:"when,omitempty"`
	// Script is tengo source that sets `result`.
	Script string `yaml:"script,omitempty"`
	// ScriptFile names tengo source for Registry.Scripts to load.
	ScriptFile string `yaml:"script_file,omitempty"`
	Then       string `yaml:"then,omitempty"`
	Else       string `yaml:"else,omitempty"`
	Do         string `yaml:"do,omitempty"`
}

// Parse decodes a YAML tree definition.
func Parse(data []byte) (RawTree, error) {
	var raw RawTree
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return RawTree{}, fmt.Errorf("dectree: unmarshal: %w", err)
	}
	return raw, nil
}

// Compile resolves every name in raw against reg and checks that the tree
// is total: each decision has both branches, no node reaches itself, and
// no path is deeper than MaxDepth.
func Compile[A any](raw RawTree, reg Registry[A]) (*Tree[A], error) {
	if raw.Root == "" {
		return nil, fmt.Errorf("dectree: %s: no root", raw.Name)
	}
	c := &compiler[A]{
		raw:   raw,
		reg:   reg,
		built: map[string]*node[A]{},
		depth: map[string]int{},
		onStk: map[string]bool{},
	}
	root, err := c.build(raw.Root)
	if err != nil {
		return nil, fmt.Errorf("dectree: %s: %w", raw.Name, err)
	}
	if d := c.depth[raw.Root]; d > MaxDepth {
		return nil, fmt.Errorf("dectree: %s: depth %d exceeds %d", raw.Name, d, MaxDepth)
	}
	if unused := c.unused(); len(unused) > 0 {
		return nil, fmt.Errorf("dectree: %s: unreachable nodes %s", raw.Name, strings.Join(unused, ", "))
	}
	return &Tree[A]{Name: raw.Name, root: root, depth: c.depth[raw.Root]}, nil
}

// CompileYAML parses and compiles in one step.
func CompileYAML[A any](data []byte, reg Registry[A]) (*Tree[A], error) {
	raw, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Compile(raw, reg)
}

type compiler[A any] struct {
	raw   RawTree
	reg   Registry[A]
	built map[string]*node[A]
	depth map[string]int
	onStk map[string]bool
}

func (c *compiler[A]) build(name string) (*node[A], error) {
	if n, ok := c.built[name]; ok {
		return n, nil
	}
	if c.onStk[name] {
		return nil, fmt.Errorf("cycle through node %q", name)
	}
	rn, ok := c.raw.Nodes[name]
	if !ok {
		return nil, fmt.Errorf("unknown node %q", name)
	}
	c.onStk[name] = true
	defer delete(c.onStk, name)

	n := &node[A]{name: name}
	if rn.Do != "" {
		if rn.If != "" || rn.When != "" || rn.Script != "" || rn.ScriptFile != "" || rn.Then != "" || rn.Else != "" {
			return nil, fmt.Errorf("node %q: leaf may only set do", name)
		}
		act, ok := c.reg.Actions[rn.Do]
		if !ok {
			return nil, fmt.Errorf("node %q: unknown action %q", name, rn.Do)
		}
		n.action, n.actionName = act, rn.Do
		c.built[name] = n
		c.depth[name] = 0
		return n, nil
	}

	test, err := c.predicate(name, rn)
	if err != nil {
		return nil, err
	}
	if rn.Then == "" || rn.Else == "" {
		return nil, fmt.Errorf("node %q: decision needs both then and else", name)
	}
	n.test = test
	if n.yes, err = c.build(rn.Then); err != nil {
		return nil, err
	}
	if n.no, err = c.build(rn.Else); err != nil {
		return nil, err
	}
	c.built[name] = n
	c.depth[name] = 1 + max(c.depth[rn.Then], c.depth[rn.Else])
	return n, nil
}

func (c *compiler[A]) predicate(name string, rn RawNode) (Predicate[A], error) {
	set := 0
	for _, s := range []string{rn.If, rn.When, rn.Script, rn.ScriptFile} {
		if s != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return nil, fmt.Errorf("node %q: needs do, if, when or script", name)
	case set > 1:
		return nil, fmt.Errorf("node %q: only one of if, when, script or script_file", name)
	case rn.If != "":
		p, ok := c.reg.Predicates[rn.If]
		if !ok {
			return nil, fmt.Errorf("node %q: unknown predicate %q", name, rn.If)
		}
		return p, nil
	case rn.When != "":
		return compileExpr[A](name, rn.When)
	case rn.ScriptFile != "":
		if c.reg.Scripts == nil {
			return nil, fmt.Errorf("node %q: no script loader for %s", name, rn.ScriptFile)
		}
		src, err := c.reg.Scripts(rn.ScriptFile)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", name, err)
		}
		return compileScript[A](name, string(src))
	default:
		return compileScript[A](name, rn.Script)
	}
}

func (c *compiler[A]) unused() []string {
	var out []string
	for name := range c.raw.Nodes {
		if _, ok := c.built[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
