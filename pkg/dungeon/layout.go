package dungeon

import (
	"math/rand"
)

// placeRooms partitions the dungeon extent into a CellsX x CellsZ grid
// and places one randomly sized, randomly offset room per cell,
// rasterizing each footprint into tiles as floor.
//
// Each dimension is drawn uniformly from [MinRoomSize, MaxRoomSize) and
// the room's offset within its cell uniformly from [0, cellSize-dim], so
// the room always fits entirely inside its own cell. Cells are disjoint,
// which makes inter-room overlap impossible by construction - it is
// never re-validated afterwards.
//
// Rooms are returned in partition order (Z-major), matching
// RoomGraph.Cells.
func placeRooms(cfg Config, rng *rand.Rand, tiles *TileGrid) []Room {
	cellSize := cfg.CellSize()
	rooms := make([]Room, 0, cfg.CellsX*cfg.CellsZ)

	for cz := 0; cz < cfg.CellsZ; cz++ {
		for cx := 0; cx < cfg.CellsX; cx++ {
			width := cfg.MinRoomSize + rng.Intn(cfg.MaxRoomSize-cfg.MinRoomSize)
			length := cfg.MinRoomSize + rng.Intn(cfg.MaxRoomSize-cfg.MinRoomSize)

			offsetX := rng.Intn(cellSize - width + 1)
			offsetZ := rng.Intn(cellSize - length + 1)

			room := Room{
				X:      cx*cellSize + offsetX,
				Z:      cz*cellSize + offsetZ,
				Width:  width,
				Length: length,
				Cell:   Cell{X: cx, Z: cz},
			}
			rasterizeRoom(tiles, room)
			rooms = append(rooms, room)
		}
	}
	return rooms
}

// rasterizeRoom marks every tile covered by the room's footprint as floor.
func rasterizeRoom(tiles *TileGrid, r Room) {
	for z := r.Z; z < r.Z+r.Length; z++ {
		for x := r.X; x < r.X+r.Width; x++ {
			tiles.SetFloor(x, z)
		}
	}
}
