package dungeon

import (
	"encoding/json"
	"fmt"
)

// Tile classifies one grid position. Wall tiles are derived by consumers
// from the floor/empty boundary and are deliberately not stored here.
type Tile uint8

const (
	// TileEmpty is unexcavated space.
	TileEmpty Tile = iota
	// TileFloor is walkable space carved by a room or corridor.
	TileFloor
)

// TileGrid is the 2D tile classification over the full dungeon extent.
// It is mutated in place by the generation pipeline (room footprints,
// then corridor footprints) and treated as immutable once the finished
// floor plan is handed off; after that point it is safe for
// unsynchronized concurrent reads.
//
// Bounds are fixed at construction. Writing or reading outside them is
// a programming error and panics rather than returning an error.
type TileGrid struct {
	width  int
	length int
	cells  []Tile // row-major: z*width + x
}

// NewTileGrid creates an all-empty grid of the given extent.
// Dimensions must already be validated by Config.Validate.
func NewTileGrid(width, length int) *TileGrid {
	return &TileGrid{
		width:  width,
		length: length,
		cells:  make([]Tile, width*length),
	}
}

// Width returns the extent along X, in tiles.
func (t *TileGrid) Width() int { return t.width }

// Length returns the extent along Z, in tiles.
func (t *TileGrid) Length() int { return t.length }

// At returns the tile at (x, z).
func (t *TileGrid) At(x, z int) Tile {
	return t.cells[t.index(x, z)]
}

// SetFloor marks the tile at (x, z) as floor. Re-marking an existing
// floor tile is a no-op, which is what makes crossing corridors an
// idempotent union.
func (t *TileGrid) SetFloor(x, z int) {
	t.cells[t.index(x, z)] = TileFloor
}

// FloorCount returns the number of floor tiles, used by tests and stats.
func (t *TileGrid) FloorCount() int {
	n := 0
	for _, c := range t.cells {
		if c == TileFloor {
			n++
		}
	}
	return n
}

func (t *TileGrid) index(x, z int) int {
	if x < 0 || x >= t.width || z < 0 || z >= t.length {
		panic(fmt.Sprintf("dungeon: tile (%d,%d) outside %dx%d bounds", x, z, t.width, t.length))
	}
	return z*t.width + x
}

// tileGridJSON is the serialized form of a TileGrid: explicit dimensions
// plus the flat row-major cell array.
type tileGridJSON struct {
	Width  int    `json:"width"`
	Length int    `json:"length"`
	Cells  []Tile `json:"cells"`
}

// MarshalJSON serializes the grid with its dimensions so consumers can
// rebuild the 2D view.
func (t *TileGrid) MarshalJSON() ([]byte, error) {
	return json.Marshal(tileGridJSON{Width: t.width, Length: t.length, Cells: t.cells})
}

// UnmarshalJSON rebuilds a grid from its serialized form, validating
// that the cell count matches the declared dimensions.
func (t *TileGrid) UnmarshalJSON(data []byte) error {
	var raw tileGridJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Cells) != raw.Width*raw.Length {
		return fmt.Errorf("dungeon: tile grid has %d cells, want %dx%d=%d",
			len(raw.Cells), raw.Width, raw.Length, raw.Width*raw.Length)
	}
	t.width = raw.Width
	t.length = raw.Length
	t.cells = raw.Cells
	return nil
}
