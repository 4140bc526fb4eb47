// Package grid provides a weighted, 4-connected view over a rectangular
// cell space, suitable as the search space for shortest-path algorithms.
//
// A Grid assigns every cell a positive traversal cost (uniform 1 by
// default). Cells can be blocked, which removes them from neighbor
// enumeration entirely, or given a custom cost to make the search prefer
// or avoid them. The search component (pkg/astar) consumes a Grid through
// its Neighbors and Cost methods and assumes nothing about the cost model
// beyond costs being positive and finite for traversable cells.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for grid construction and mutation.
var (
	// ErrInvalidDimensions is returned by New when width or height is < 1.
	ErrInvalidDimensions = errors.New("grid: width and height must be at least 1")

	// ErrInvalidCost is returned by SetCost when the cost is not positive
	// and finite. Use Block to mark a cell impassable instead.
	ErrInvalidCost = errors.New("grid: cost must be positive and finite")
)

// Point identifies one cell by its integer coordinates. Points are
// comparable and are used directly as search-state keys.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String formats the point as "(x,y)" for logs and error messages.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Manhattan returns the L1 distance between two points. It is an
// admissible heuristic for 4-connected grids with unit traversal cost.
func Manhattan(a, b Point) float64 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return float64(dx + dy)
}

// Grid is a weighted, 4-connected rectangular cell space.
//
// The zero value is not usable - use New. Grid is safe for concurrent
// reads once mutation (SetCost/Block) has finished; it is not safe for
// concurrent mutation.
type Grid struct {
	width  int
	height int
	costs  []float64 // row-major; +Inf marks an impassable cell
}

// neighborOffsets are the 4-connected deltas: north, east, south, west.
var neighborOffsets = [4]Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// New creates a grid with the given dimensions where every cell is
// passable at uniform cost 1.
func New(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	costs := make([]float64, width*height)
	for i := range costs {
		costs[i] = 1
	}
	return &Grid{width: width, height: height, costs: costs}, nil
}

// Width returns the horizontal extent in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the vertical extent in cells.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p lies within the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// SetCost assigns a custom traversal cost to the cell at p.
// The cost applies when a path enters the cell. Returns ErrInvalidCost
// for non-positive, infinite, or NaN costs; out-of-bounds points are a
// programming error and panic.
func (g *Grid) SetCost(p Point, cost float64) error {
	if cost <= 0 || math.IsInf(cost, 0) || math.IsNaN(cost) {
		return fmt.Errorf("%w: %v at %s", ErrInvalidCost, cost, p)
	}
	g.costs[g.index(p)] = cost
	return nil
}

// Block marks the cell at p impassable. Blocked cells are excluded from
// Neighbors and can never appear on a returned path.
func (g *Grid) Block(p Point) {
	g.costs[g.index(p)] = math.Inf(1)
}

// Unblock restores the cell at p to the uniform cost 1.
func (g *Grid) Unblock(p Point) {
	g.costs[g.index(p)] = 1
}

// Blocked reports whether the cell at p is impassable.
func (g *Grid) Blocked(p Point) bool {
	return math.IsInf(g.costs[g.index(p)], 1)
}

// Cost returns the traversal cost of entering the cell at p.
// Calling Cost on a blocked cell returns +Inf; the search never does,
// because blocked cells are not enumerated by Neighbors.
func (g *Grid) Cost(p Point) float64 {
	return g.costs[g.index(p)]
}

// Neighbors returns the passable 4-connected neighbors of p in a fixed
// north, east, south, west order. Out-of-bounds and blocked cells are
// omitted. The fixed order keeps searches deterministic.
func (g *Grid) Neighbors(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, d := range neighborOffsets {
		n := Point{X: p.X + d.X, Y: p.Y + d.Y}
		if !g.InBounds(n) {
			continue
		}
		if math.IsInf(g.costs[g.index(n)], 1) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// index maps p to its row-major slice offset. Bounds are fixed at
// construction; callers handing in out-of-range points have violated the
// grid contract, so indexing panics rather than recovering.
func (g *Grid) index(p Point) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("grid: point %s outside %dx%d bounds", p, g.width, g.height))
	}
	return p.Y*g.width + p.X
}
