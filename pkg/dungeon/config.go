package dungeon

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Config.Validate for any out-of-range
// generation parameter. Validation runs before any tile mutation, so a
// failed Generate never leaves a partially populated floor plan behind.
var ErrInvalidConfig = errors.New("dungeon: invalid configuration")

// Config holds the generation parameters. All values are supplied once
// and never mutated during a run.
type Config struct {
	// MinRoomSize and MaxRoomSize bound room sampling: each room dimension
	// is drawn uniformly from [MinRoomSize, MaxRoomSize).
	MinRoomSize int `json:"min_room_size" toml:"min_room_size"`
	MaxRoomSize int `json:"max_room_size" toml:"max_room_size"`

	// RoomSpread adds per-cell slack beyond the largest possible room,
	// leaving space for room placement jitter and corridor routing.
	// The partition cell size is MaxRoomSize + RoomSpread.
	RoomSpread int `json:"room_spread" toml:"room_spread"`

	// CellsX and CellsZ set the partition counts along each axis and thus
	// the overall dungeon extent.
	CellsX int `json:"cells_x" toml:"cells_x"`
	CellsZ int `json:"cells_z" toml:"cells_z"`
}

// DefaultConfig returns the parameters used when no config file or flags
// are supplied: a 4x4 partition of rooms sized 4-7 with spread 3.
func DefaultConfig() Config {
	return Config{
		MinRoomSize: 4,
		MaxRoomSize: 8,
		RoomSpread:  3,
		CellsX:      4,
		CellsZ:      4,
	}
}

// CellSize returns the side length of one partition cell.
func (c Config) CellSize() int {
	return c.MaxRoomSize + c.RoomSpread
}

// Width returns the total dungeon extent along X, in tiles.
func (c Config) Width() int { return c.CellsX * c.CellSize() }

// Length returns the total dungeon extent along Z, in tiles.
func (c Config) Length() int { return c.CellsZ * c.CellSize() }

// Validate checks every parameter and fails fast with a descriptive
// error before generation touches any tile. The constraints guarantee
// the room sampling ranges are non-degenerate: every room fits inside
// its cell with a non-negative placement range.
func (c Config) Validate() error {
	if c.MinRoomSize < 1 {
		return fmt.Errorf("%w: min_room_size must be at least 1, got %d", ErrInvalidConfig, c.MinRoomSize)
	}
	if c.MaxRoomSize <= c.MinRoomSize {
		return fmt.Errorf("%w: max_room_size (%d) must exceed min_room_size (%d)", ErrInvalidConfig, c.MaxRoomSize, c.MinRoomSize)
	}
	if c.RoomSpread < 0 {
		return fmt.Errorf("%w: room_spread must not be negative, got %d", ErrInvalidConfig, c.RoomSpread)
	}
	if c.CellsX < 1 || c.CellsZ < 1 {
		return fmt.Errorf("%w: cell counts must be at least 1, got %dx%d", ErrInvalidConfig, c.CellsX, c.CellsZ)
	}
	return nil
}
