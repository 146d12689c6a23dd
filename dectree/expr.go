package dectree

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is the environment `when:` conditions run in, e.g.
// `Agent.HoldingFlag() && DT > 0`.
type Env[A any] struct {
	Agent A
	DT    float64
}

func compileExpr[A any](name, src string) (Predicate[A], error) {
	prog, err := expr.Compile(src, expr.Env(Env[A]{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("node %q: compile condition: %w", name, err)
	}
	return exprPredicate[A](name, prog), nil
}

func exprPredicate[A any](name string, prog *vm.Program) Predicate[A] {
	return func(agent A, dt float64) bool {
		out, err := vm.Run(prog, Env[A]{Agent: agent, DT: dt})
		if err != nil {
			slog.Warn("tree condition error", "node", name, "error", err)
			return false
		}
		b, _ := out.(bool)
		return b
	}
}
