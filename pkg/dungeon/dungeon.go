// Package dungeon generates procedural dungeon floor plans.
//
// The generation pipeline partitions a bounded 2D area into a grid of
// cells, places one rectangular room per cell, connects the rooms of
// grid-adjacent cells with corridors found via A* over a weighted grid,
// and records the result as a room connectivity graph plus a 2D tile
// classification (empty/floor).
//
// Generation is a pure computation: identical (Config, seed) inputs
// produce identical floor plans. It runs single-threaded with no
// suspension points - it either completes and hands off a finished
// snapshot, or fails fast on an invalid configuration before any tile
// is touched.
//
// # Usage
//
//	plan, err := dungeon.Generate(dungeon.Config{
//	    MinRoomSize: 3,
//	    MaxRoomSize: 5,
//	    RoomSpread:  2,
//	    CellsX:      2,
//	    CellsZ:      2,
//	}, 42)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(plan.Width, plan.Length, plan.Graph.Connected())
package dungeon

import (
	"math/rand"

	"github.com/dungenlab/dungen/pkg/grid"
)

// FloorPlan is the complete generated result: room list, connectivity
// graph, tile grid, and dimensions, plus the inputs that produced it.
//
// A FloorPlan is handed off by the pipeline as an immutable snapshot: no
// writers exist after generation, so it is safe for unsynchronized
// concurrent reads by any number of consumers.
type FloorPlan struct {
	// Seed and Config reproduce this exact plan when fed back to Generate.
	Seed   int64  `json:"seed"`
	Config Config `json:"config"`

	// Rooms holds one room per partition cell, in partition order
	// (Z-major, X fastest), aligned with Graph.Cells.
	Rooms []Room `json:"rooms"`

	// Graph models room connectivity: one edge per corridor the
	// connection pass successfully carved.
	Graph *RoomGraph `json:"graph"`

	// Tiles is the rasterized empty/floor classification over the full
	// Width x Length extent.
	Tiles *TileGrid `json:"tiles"`

	// Width and Length are the dungeon extent in tiles:
	// CellsX*CellSize and CellsZ*CellSize.
	Width  int `json:"width"`
	Length int `json:"length"`

	// Unconnected lists adjacent-cell pairs whose corridor search found
	// no path. Empty for every non-degenerate configuration; when
	// non-empty the dungeon is locally disconnected and Graph.Connected
	// reports false.
	Unconnected []Connection `json:"unconnected,omitempty"`
}

// RoomAt returns the room occupying partition cell c.
// Out-of-range cells panic, matching the fixed-bounds contract.
func (f *FloorPlan) RoomAt(c Cell) Room {
	return f.Rooms[c.Z*f.Config.CellsX+c.X]
}

// Generate runs the full pipeline: validate, place rooms, carve
// corridors, build the room graph, and return the finished snapshot.
//
// The random source is derived from seed and owned by this call; no
// ambient randomness is consulted, so runs are reproducible. Returns
// ErrInvalidConfig (wrapped with detail) before any allocation or tile
// mutation if the configuration is out of range.
func Generate(cfg Config, seed int64) (*FloorPlan, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	tiles := NewTileGrid(cfg.Width(), cfg.Length())
	rooms := placeRooms(cfg, rng, tiles)

	search, err := grid.New(cfg.Width(), cfg.Length())
	if err != nil {
		return nil, err
	}

	graph := NewRoomGraph(cfg.CellsX, cfg.CellsZ)
	unconnected := connectRooms(cfg, rooms, tiles, search, graph)

	return &FloorPlan{
		Seed:        seed,
		Config:      cfg,
		Rooms:       rooms,
		Graph:       graph,
		Tiles:       tiles,
		Width:       cfg.Width(),
		Length:      cfg.Length(),
		Unconnected: unconnected,
	}, nil
}
