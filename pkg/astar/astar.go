// Package astar implements generic best-first shortest-path search (A*)
// over any weighted graph abstraction.
//
// The search is generic over the vertex type, which only needs to be
// comparable so it can serve as a map key. Costs and heuristics are
// caller-supplied functions; the search assumes costs are non-negative
// and finite for traversable vertices and makes no other assumptions
// about the cost model. With an admissible heuristic (one that never
// overestimates the true remaining cost) the returned path is optimal;
// a non-admissible heuristic degrades to a possibly suboptimal but still
// terminating search.
//
// Complexity with a consistent heuristic: O((V + E) log V) time and
// O(V + E) space, using lazy decrease-key (duplicate heap pushes made
// inert by the cost-so-far check).
package astar

import (
	"container/heap"
)

// Graph is the minimal graph view the search consumes: per-vertex
// neighbor enumeration. Implementations decide passability by omitting
// vertices from the neighbor list.
type Graph[V comparable] interface {
	// Neighbors returns the vertices adjacent to v. The order should be
	// deterministic so repeated searches return identical paths.
	Neighbors(v V) []V
}

// CostFunc returns the cost of entering vertex v. Costs must be
// non-negative and finite for traversable vertices.
type CostFunc[V comparable] func(v V) float64

// HeuristicFunc estimates the remaining cost from v to goal. It must be
// admissible for FindPath to guarantee an optimal path; the search does
// not verify this.
type HeuristicFunc[V comparable] func(v, goal V) float64

// FindPath searches g for the cheapest path from start to goal.
//
// It returns the ordered vertex sequence from start to goal inclusive,
// and true. If the goal is unreachable it returns nil and false - an
// expected, checked outcome, never an error.
//
// Ties between equal-priority frontier entries break in insertion order,
// so results are fully deterministic for a deterministic Graph.
// All working state is local to the call; concurrent FindPath calls on
// the same Graph are safe as long as the Graph itself is not mutated.
func FindPath[V comparable](g Graph[V], cost CostFunc[V], h HeuristicFunc[V], start, goal V) ([]V, bool) {
	frontier := &frontier[V]{}
	heap.Init(frontier)
	frontier.push(start, 0)

	cameFrom := map[V]V{start: start}
	costSoFar := map[V]float64{start: 0}

	found := false
	for frontier.Len() > 0 {
		current := frontier.pop()
		if current == goal {
			found = true
			break
		}

		for _, next := range g.Neighbors(current) {
			newCost := costSoFar[current] + cost(next)
			if prev, seen := costSoFar[next]; seen && newCost >= prev {
				continue
			}
			costSoFar[next] = newCost
			cameFrom[next] = current
			// Lazy decrease-key: stale duplicates stay in the heap and are
			// rendered inert by the strict cost check above.
			frontier.push(next, newCost+h(next, goal))
		}
	}

	if !found {
		return nil, false
	}
	return reconstruct(cameFrom, start, goal), true
}

// reconstruct walks the came-from links backwards from goal to start,
// then reverses so the path runs start to goal inclusive.
func reconstruct[V comparable](cameFrom map[V]V, start, goal V) []V {
	path := []V{goal}
	for v := goal; v != start; {
		v = cameFrom[v]
		path = append(path, v)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// item is one frontier entry: a vertex with its f = g + h priority and
// an insertion sequence number for stable tie-breaking.
type item[V comparable] struct {
	vertex   V
	priority float64
	seq      uint64
}

// frontier is a min-heap of items ordered by priority, then by insertion
// order for equal priorities. The secondary ordering is not semantically
// significant but keeps equal-cost paths reproducible across runs.
type frontier[V comparable] struct {
	items []item[V]
	seq   uint64
}

func (f *frontier[V]) Len() int { return len(f.items) }

func (f *frontier[V]) Less(i, j int) bool {
	if f.items[i].priority != f.items[j].priority {
		return f.items[i].priority < f.items[j].priority
	}
	return f.items[i].seq < f.items[j].seq
}

func (f *frontier[V]) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

// Push implements heap.Interface; use push instead.
func (f *frontier[V]) Push(x any) { f.items = append(f.items, x.(item[V])) }

// Pop implements heap.Interface; use pop instead.
func (f *frontier[V]) Pop() any {
	old := f.items
	n := len(old)
	it := old[n-1]
	f.items = old[:n-1]
	return it
}

func (f *frontier[V]) push(v V, priority float64) {
	f.seq++
	heap.Push(f, item[V]{vertex: v, priority: priority, seq: f.seq})
}

func (f *frontier[V]) pop() V {
	return heap.Pop(f).(item[V]).vertex
}
