package search

type record[N comparable] struct {
	node   N
	g, f   float64
	parent *record[N]
	// index in the frontier heap, -1 when not queued
	index int
}

// table is the visited-node store, bucketed by the descriptor's hash bin.
type table[N comparable] struct {
	bins [][]*record[N]
}

func newTable[N comparable](size int) *table[N] {
	if size < 1 {
		size = 1
	}
	return &table[N]{bins: make([][]*record[N], size)}
}

func (t *table[N]) bin(h int) int {
	if h < 0 {
		h = -h
	}
	return h % len(t.bins)
}

func (t *table[N]) get(h int, n N) *record[N] {
	for _, r := range t.bins[t.bin(h)] {
		if r.node == n {
			return r
		}
	}
	return nil
}

func (t *table[N]) put(h int, r *record[N]) {
	b := t.bin(h)
	t.bins[b] = append(t.bins[b], r)
}
