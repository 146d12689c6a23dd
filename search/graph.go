// Package search is a generic A* planner over hashed graph descriptors.
package search

// Successor is a neighbor reachable from a node at the given step cost.
type Successor[N comparable] struct {
	Node N
	Cost float64
}

// Graph describes the space being searched. Heuristic must never
// overestimate the true remaining cost for Plan to return optimal paths.
// HashBin should distribute nodes over [0, TableSize()).
type Graph[N comparable] interface {
	// Successors appends the neighbors of n to buf[:0] and returns it.
	Successors(n N, buf []Successor[N]) []Successor[N]
	Heuristic(a, b N) float64
	HashBin(n N) int
	TableSize() int
}
