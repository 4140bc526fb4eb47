package dungeon

import (
	"github.com/dungenlab/dungen/pkg/astar"
	"github.com/dungenlab/dungen/pkg/grid"
)

// connectRooms carves a corridor between the rooms of every pair of
// grid-adjacent partition cells (north-south and east-west, never
// diagonal), using shortest-path search over a weighted grid spanning
// the whole dungeon extent.
//
// The search grid has uniform cost and no notion of room ownership, so a
// corridor is free to cut through another room's footprint; rasterizing
// over existing floor is an idempotent union. North-south pairs are
// processed before east-west pairs, each category in partition order.
// The ordering has no semantic effect, it only keeps generation
// deterministic for a given seed.
//
// Every successful connection is recorded as an edge in g so the room
// graph models actual reachability. Pairs whose search found no path
// (possible only in degenerate configurations) are returned so callers
// can detect and handle a locally disconnected dungeon.
func connectRooms(cfg Config, rooms []Room, tiles *TileGrid, search *grid.Grid, g *RoomGraph) []Connection {
	roomAt := func(c Cell) Room {
		return rooms[c.Z*cfg.CellsX+c.X]
	}

	var unconnected []Connection

	connect := func(a, b Room, start, goal grid.Point) {
		path, ok := astar.FindPath(search, search.Cost, grid.Manhattan, start, goal)
		if !ok {
			unconnected = append(unconnected, Connection{A: a.Cell, B: b.Cell}.canonical())
			return
		}
		for _, p := range path {
			tiles.SetFloor(p.X, p.Y)
		}
		g.AddConnection(a.Cell, b.Cell)
	}

	// North-south: connect the horizontal midpoints of the two near edges
	// (lower room's top edge to upper room's bottom edge).
	for cz := 0; cz < cfg.CellsZ-1; cz++ {
		for cx := 0; cx < cfg.CellsX; cx++ {
			a := roomAt(Cell{X: cx, Z: cz})
			b := roomAt(Cell{X: cx, Z: cz + 1})
			start := grid.Point{X: a.CenterX(), Y: a.Z + a.Length - 1}
			goal := grid.Point{X: b.CenterX(), Y: b.Z}
			connect(a, b, start, goal)
		}
	}

	// East-west: symmetric rule with the vertical midpoints of near edges.
	for cz := 0; cz < cfg.CellsZ; cz++ {
		for cx := 0; cx < cfg.CellsX-1; cx++ {
			a := roomAt(Cell{X: cx, Z: cz})
			b := roomAt(Cell{X: cx + 1, Z: cz})
			start := grid.Point{X: a.X + a.Width - 1, Y: a.CenterZ()}
			goal := grid.Point{X: b.X, Y: b.CenterZ()}
			connect(a, b, start, goal)
		}
	}

	return unconnected
}
