package dungeon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"default", DefaultConfig(), true},
		{"minimal", Config{MinRoomSize: 1, MaxRoomSize: 2, RoomSpread: 0, CellsX: 1, CellsZ: 1}, true},
		{"zero min room", Config{MinRoomSize: 0, MaxRoomSize: 2, CellsX: 1, CellsZ: 1}, false},
		{"max not above min", Config{MinRoomSize: 5, MaxRoomSize: 5, CellsX: 1, CellsZ: 1}, false},
		{"negative spread", Config{MinRoomSize: 3, MaxRoomSize: 5, RoomSpread: -1, CellsX: 1, CellsZ: 1}, false},
		{"zero cells x", Config{MinRoomSize: 3, MaxRoomSize: 5, CellsX: 0, CellsZ: 2}, false},
		{"zero cells z", Config{MinRoomSize: 3, MaxRoomSize: 5, CellsX: 2, CellsZ: 0}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestGenerateRejectsInvalidConfigBeforeMutation(t *testing.T) {
	plan, err := Generate(Config{MinRoomSize: 4, MaxRoomSize: 4, CellsX: 2, CellsZ: 2}, 1)
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, plan)
}

func TestGenerateRoomBounds(t *testing.T) {
	cfg := Config{MinRoomSize: 3, MaxRoomSize: 6, RoomSpread: 2, CellsX: 4, CellsZ: 3}
	plan, err := Generate(cfg, 7)
	require.NoError(t, err)
	require.Len(t, plan.Rooms, cfg.CellsX*cfg.CellsZ)

	cellSize := cfg.CellSize()
	for _, r := range plan.Rooms {
		assert.GreaterOrEqual(t, r.Width, cfg.MinRoomSize, "room %v width below minimum", r.Cell)
		assert.Less(t, r.Width, cfg.MaxRoomSize, "room %v width at or above maximum", r.Cell)
		assert.GreaterOrEqual(t, r.Length, cfg.MinRoomSize, "room %v length below minimum", r.Cell)
		assert.Less(t, r.Length, cfg.MaxRoomSize, "room %v length at or above maximum", r.Cell)

		// The room must lie entirely inside its owning cell.
		assert.GreaterOrEqual(t, r.X, r.Cell.X*cellSize, "room %v leaks left of its cell", r.Cell)
		assert.LessOrEqual(t, r.X+r.Width, (r.Cell.X+1)*cellSize, "room %v leaks right of its cell", r.Cell)
		assert.GreaterOrEqual(t, r.Z, r.Cell.Z*cellSize, "room %v leaks below its cell", r.Cell)
		assert.LessOrEqual(t, r.Z+r.Length, (r.Cell.Z+1)*cellSize, "room %v leaks above its cell", r.Cell)
	}
}

func TestGenerateRoomFootprintsNeverOverlap(t *testing.T) {
	cfg := Config{MinRoomSize: 3, MaxRoomSize: 7, RoomSpread: 1, CellsX: 5, CellsZ: 5}
	plan, err := Generate(cfg, 99)
	require.NoError(t, err)

	for x := 0; x < plan.Width; x++ {
		for z := 0; z < plan.Length; z++ {
			owners := 0
			for _, r := range plan.Rooms {
				if r.Contains(x, z) {
					owners++
				}
			}
			if owners > 1 {
				t.Fatalf("tile (%d,%d) covered by %d rooms", x, z, owners)
			}
		}
	}
}

func TestGenerateEndToEnd2x2(t *testing.T) {
	cfg := Config{MinRoomSize: 3, MaxRoomSize: 5, RoomSpread: 2, CellsX: 2, CellsZ: 2}
	plan, err := Generate(cfg, 42)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.CellSize())
	assert.Equal(t, 14, plan.Width)
	assert.Equal(t, 14, plan.Length)
	assert.Len(t, plan.Rooms, 4)

	// Every room footprint must be rasterized as floor.
	for _, r := range plan.Rooms {
		for x := r.X; x < r.X+r.Width; x++ {
			for z := r.Z; z < r.Z+r.Length; z++ {
				require.Equal(t, TileFloor, plan.Tiles.At(x, z), "room %v tile (%d,%d) not floor", r.Cell, x, z)
			}
		}
	}

	// A 2x2 arrangement has 2 north-south and 2 east-west adjacent pairs,
	// all of which must connect on a non-degenerate configuration.
	assert.Empty(t, plan.Unconnected)
	assert.Len(t, plan.Graph.Edges(), 4)
	assert.True(t, plan.Graph.Connected())
	assert.GreaterOrEqual(t, plan.Graph.MinDegree(), 1, "every room must have at least one corridor")
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{MinRoomSize: 3, MaxRoomSize: 6, RoomSpread: 2, CellsX: 3, CellsZ: 3}

	a, err := Generate(cfg, 1234)
	require.NoError(t, err)
	b, err := Generate(cfg, 1234)
	require.NoError(t, err)

	aJSON, err := json.Marshal(a)
	require.NoError(t, err)
	bJSON, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(aJSON), string(bJSON), "identical config+seed must reproduce the plan byte for byte")

	c, err := Generate(cfg, 1235)
	require.NoError(t, err)
	cJSON, err := json.Marshal(c)
	require.NoError(t, err)
	assert.NotEqual(t, string(aJSON), string(cJSON), "different seeds should differ")
}

func TestFloorPlanJSONRoundTrip(t *testing.T) {
	plan, err := Generate(Config{MinRoomSize: 3, MaxRoomSize: 5, RoomSpread: 2, CellsX: 2, CellsZ: 3}, 5)
	require.NoError(t, err)

	data, err := json.Marshal(plan)
	require.NoError(t, err)

	var restored FloorPlan
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, plan.Seed, restored.Seed)
	assert.Equal(t, plan.Rooms, restored.Rooms)
	assert.Equal(t, plan.Width, restored.Width)
	assert.Equal(t, plan.Tiles.FloorCount(), restored.Tiles.FloorCount())
	assert.Equal(t, len(plan.Graph.Edges()), len(restored.Graph.Edges()))
	assert.Equal(t, plan.Graph.Connected(), restored.Graph.Connected())
}

func TestTileGridSetFloorIdempotent(t *testing.T) {
	g := NewTileGrid(4, 4)
	g.SetFloor(2, 2)
	before := g.FloorCount()
	g.SetFloor(2, 2) // second corridor crossing the same tile
	assert.Equal(t, before, g.FloorCount())
	assert.Equal(t, TileFloor, g.At(2, 2))
}

func TestRoomGraph(t *testing.T) {
	g := NewRoomGraph(2, 2)
	require.Len(t, g.Cells(), 4)
	assert.False(t, g.Connected(), "edgeless multi-room graph must not report connected")
	assert.Equal(t, 0, g.MinDegree())

	a, b, c, d := Cell{0, 0}, Cell{1, 0}, Cell{0, 1}, Cell{1, 1}
	g.AddConnection(a, b)
	g.AddConnection(b, a) // reversed duplicate is ignored
	assert.Len(t, g.Edges(), 1)
	assert.Equal(t, 1, g.Degree(a))
	assert.Equal(t, 1, g.Degree(b))

	g.AddConnection(a, c)
	g.AddConnection(c, d)
	assert.True(t, g.Connected())
	assert.Equal(t, 1, g.MinDegree())
}

func TestRoomAt(t *testing.T) {
	plan, err := Generate(Config{MinRoomSize: 3, MaxRoomSize: 5, RoomSpread: 2, CellsX: 3, CellsZ: 2}, 11)
	require.NoError(t, err)

	for _, r := range plan.Rooms {
		assert.Equal(t, r, plan.RoomAt(r.Cell))
	}
}
