package dungeon

import "fmt"

// Cell identifies one slot in the CellsX x CellsZ partition of the
// dungeon. Exactly one room is placed per cell.
type Cell struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// String formats the cell as "[x,z]" for logs and error messages.
func (c Cell) String() string {
	return fmt.Sprintf("[%d,%d]", c.X, c.Z)
}

// Room is one rectangular room, positioned by its lower corner in
// absolute tile coordinates. Rooms are created once during layout
// generation and immutable thereafter; by construction a room lies
// entirely within its owning partition cell, so rooms in different
// cells can never overlap.
type Room struct {
	X      int  `json:"x"`      // lower corner, X axis
	Z      int  `json:"z"`      // lower corner, Z axis
	Width  int  `json:"width"`  // extent along X, in tiles
	Length int  `json:"length"` // extent along Z, in tiles
	Cell   Cell `json:"cell"`   // owning partition cell
}

// Contains reports whether the tile at (x, z) lies inside the room's
// footprint [X, X+Width) x [Z, Z+Length).
func (r Room) Contains(x, z int) bool {
	return x >= r.X && x < r.X+r.Width && z >= r.Z && z < r.Z+r.Length
}

// CenterX returns the horizontal midpoint of the room in absolute tiles.
func (r Room) CenterX() int { return r.X + r.Width/2 }

// CenterZ returns the vertical midpoint of the room in absolute tiles.
func (r Room) CenterZ() int { return r.Z + r.Length/2 }
