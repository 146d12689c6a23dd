package search

import (
	"container/heap"
	"errors"
	"slices"
)

var (
	ErrNoSeeds        = errors.New("search: no seed nodes")
	ErrNoPath         = errors.New("search: no path")
	ErrBudgetExceeded = errors.New("search: expansion budget exceeded")
)

// Problem is one planning query. Only Seeds is required.
type Problem[N comparable] struct {
	Seeds  []N
	Target N
	// Stop ends the search when it returns true for an expanded node.
	// Defaults to reaching Target.
	Stop func(N) bool
	// Store records the path to every expanded node it accepts, in addition
	// to the stopping node.
	Store func(N) bool
	// MaxPaths ends the search once that many paths are recorded. Zero
	// means no limit.
	MaxPaths int
	// MaxExpansions bounds the number of expanded nodes. Zero means no
	// limit.
	MaxExpansions int
}

type Path[N comparable] struct {
	// Nodes runs from a seed to the recorded node.
	Nodes []N
	Cost  float64
}

type Result[N comparable] struct {
	// Paths is ordered by ascending cost.
	Paths    []Path[N]
	Expanded int
}

// Best returns the cheapest path found.
func (r Result[N]) Best() Path[N] {
	if len(r.Paths) == 0 {
		return Path[N]{}
	}
	return r.Paths[0]
}

// Plan runs A* over g. Nodes already closed are reopened when a cheaper
// route to them turns up, so inconsistent heuristics still yield correct
// costs.
func Plan[N comparable](g Graph[N], p Problem[N]) (Result[N], error) {
	if len(p.Seeds) == 0 {
		return Result[N]{}, ErrNoSeeds
	}
	stop := p.Stop
	if stop == nil {
		target := p.Target
		stop = func(n N) bool { return n == target }
	}

	visited := newTable[N](g.TableSize())
	open := &frontier[N]{}
	for _, s := range p.Seeds {
		h := g.HashBin(s)
		if visited.get(h, s) != nil {
			continue
		}
		r := &record[N]{node: s, f: g.Heuristic(s, p.Target), index: -1}
		visited.put(h, r)
		heap.Push(open, r)
	}

	var (
		res  Result[N]
		succ []Successor[N]
	)
	for open.Len() > 0 {
		cur := heap.Pop(open).(*record[N])
		res.Expanded++
		if p.MaxExpansions > 0 && res.Expanded > p.MaxExpansions {
			return finish(res, ErrBudgetExceeded)
		}

		done := stop(cur.node)
		if done || (p.Store != nil && p.Store(cur.node)) {
			res.Paths = append(res.Paths, reconstruct(cur))
		}
		if done || (p.MaxPaths > 0 && len(res.Paths) >= p.MaxPaths) {
			return finish(res, nil)
		}

		succ = g.Successors(cur.node, succ)
		for _, s := range succ {
			cost := cur.g + s.Cost
			h := g.HashBin(s.Node)
			r := visited.get(h, s.Node)
			if r == nil {
				r = &record[N]{
					node:   s.Node,
					g:      cost,
					f:      cost + g.Heuristic(s.Node, p.Target),
					parent: cur,
					index:  -1,
				}
				visited.put(h, r)
				heap.Push(open, r)
				continue
			}
			if cost >= r.g {
				continue
			}
			r.f += cost - r.g
			r.g = cost
			r.parent = cur
			if r.index >= 0 {
				heap.Fix(open, r.index)
			} else {
				heap.Push(open, r)
			}
		}
	}
	return finish(res, ErrNoPath)
}

// finish sorts recorded paths. A search that recorded anything succeeds.
func finish[N comparable](res Result[N], err error) (Result[N], error) {
	if len(res.Paths) == 0 {
		if err == nil {
			err = ErrNoPath
		}
		return res, err
	}
	slices.SortStableFunc(res.Paths, func(a, b Path[N]) int {
		switch {
		case a.Cost < b.Cost:
			return -1
		case a.Cost > b.Cost:
			return 1
		}
		return 0
	})
	return res, nil
}

func reconstruct[N comparable](r *record[N]) Path[N] {
	path := Path[N]{Cost: r.g}
	for ; r != nil; r = r.parent {
		path.Nodes = append(path.Nodes, r.node)
	}
	slices.Reverse(path.Nodes)
	return path
}
