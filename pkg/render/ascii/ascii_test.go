package ascii

import (
	"strings"
	"testing"

	"github.com/dungenlab/dungen/pkg/dungeon"
)

func testPlan(t *testing.T) *dungeon.FloorPlan {
	t.Helper()
	cfg := dungeon.Config{MinRoomSize: 3, MaxRoomSize: 5, RoomSpread: 2, CellsX: 2, CellsZ: 2}
	plan, err := dungeon.Generate(cfg, 7)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return plan
}

func TestRenderShape(t *testing.T) {
	plan := testPlan(t)
	out := Render(plan, Options{})

	if !strings.HasSuffix(out, "\n") {
		t.Error("output should end with a newline")
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != plan.Length {
		t.Fatalf("rows = %d, want %d", len(lines), plan.Length)
	}
	for i, line := range lines {
		if len([]rune(line)) != plan.Width {
			t.Errorf("row %d width = %d, want %d", i, len([]rune(line)), plan.Width)
		}
	}
}

func TestRenderGlyphsMatchTiles(t *testing.T) {
	plan := testPlan(t)
	lines := strings.Split(strings.TrimRight(Render(plan, Options{}), "\n"), "\n")

	floors := 0
	for z, line := range lines {
		for x, r := range []rune(line) {
			want := DefaultEmptyRune
			if plan.Tiles.At(x, z) == dungeon.TileFloor {
				want = DefaultFloorRune
				floors++
			}
			if r != want {
				t.Fatalf("glyph at (%d,%d) = %q, want %q", x, z, r, want)
			}
		}
	}
	if floors != plan.Tiles.FloorCount() {
		t.Errorf("rendered %d floor glyphs, plan has %d floor tiles", floors, plan.Tiles.FloorCount())
	}
}

func TestRenderCustomRunes(t *testing.T) {
	plan := testPlan(t)
	out := Render(plan, Options{FloorRune: '█', EmptyRune: ' '})
	if strings.ContainsRune(out, DefaultFloorRune) || strings.ContainsRune(out, DefaultEmptyRune) {
		t.Error("default glyphs should not appear with overrides set")
	}
	if !strings.ContainsRune(out, '█') {
		t.Error("custom floor glyph missing")
	}
}

func TestRenderColorKeepsGlyphs(t *testing.T) {
	plan := testPlan(t)
	plain := Render(plan, Options{})
	colored := Render(plan, Options{Color: true})

	// Styling may add escape sequences but must not change the glyphs.
	strip := func(s string) string {
		var sb strings.Builder
		inEscape := false
		for _, r := range s {
			switch {
			case inEscape:
				if r == 'm' {
					inEscape = false
				}
			case r == '\x1b':
				inEscape = true
			default:
				sb.WriteRune(r)
			}
		}
		return sb.String()
	}
	if strip(colored) != plain {
		t.Error("colored output glyphs differ from plain output")
	}
}
