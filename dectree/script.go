package dectree

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Facter exposes agent state to `script:` nodes as the `agent` map. A
// script answers by assigning a truthy value to the global `result`.
type Facter interface {
	Facts() map[string]any
}

func compileScript[A any](name, src string) (Predicate[A], error) {
	var zero A
	if _, ok := any(zero).(Facter); !ok {
		return nil, fmt.Errorf("node %q: script nodes need an agent with Facts", name)
	}
	script := tengo.NewScript([]byte(src))
	_ = script.Add("agent", map[string]any{})
	_ = script.Add("dt", 0.0)
	script.SetImports(stdlib.GetModuleMap("math"))
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("node %q: compile script: %w", name, err)
	}

	var mu sync.Mutex
	return func(agent A, dt float64) bool {
		f, ok := any(agent).(Facter)
		if !ok {
			return false
		}
		mu.Lock()
		defer mu.Unlock()
		if err := compiled.Set("agent", f.Facts()); err != nil {
			slog.Warn("tree script error", "node", name, "error", err)
			return false
		}
		if err := compiled.Set("dt", dt); err != nil {
			slog.Warn("tree script error", "node", name, "error", err)
			return false
		}
		if err := compiled.Run(); err != nil {
			slog.Warn("tree script error", "node", name, "error", err)
			return false
		}
		return compiled.Get("result").Bool()
	}, nil
}
