// Package ascii renders floor plans as terminal text, one glyph per
// tile. Floor tiles default to '#' and empty tiles to '.', matching the
// usual roguelike map convention.
package ascii

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dungenlab/dungen/pkg/dungeon"
)

// Default tile glyphs.
const (
	DefaultFloorRune = '#'
	DefaultEmptyRune = '.'
)

// Options configures text rendering.
type Options struct {
	// FloorRune and EmptyRune override the tile glyphs. Zero values
	// select the defaults.
	FloorRune rune
	EmptyRune rune

	// Color styles the output with terminal colors. Off by default so
	// piped output stays plain.
	Color bool
}

var (
	floorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Render draws the plan's tile grid as rows of glyphs, north (z=0)
// first, one row per line. The returned string ends with a newline.
func Render(plan *dungeon.FloorPlan, opts Options) string {
	floor := opts.FloorRune
	if floor == 0 {
		floor = DefaultFloorRune
	}
	empty := opts.EmptyRune
	if empty == 0 {
		empty = DefaultEmptyRune
	}

	var sb strings.Builder
	sb.Grow((plan.Width + 1) * plan.Length)

	var row strings.Builder
	for z := 0; z < plan.Length; z++ {
		row.Reset()
		for x := 0; x < plan.Width; x++ {
			if plan.Tiles.At(x, z) == dungeon.TileFloor {
				row.WriteRune(floor)
			} else {
				row.WriteRune(empty)
			}
		}
		sb.WriteString(styleRow(row.String(), floor, opts.Color))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// styleRow applies terminal styling per glyph run. Runs keep escape
// sequences short compared to styling every rune.
func styleRow(row string, floor rune, color bool) string {
	if !color {
		return row
	}
	var sb strings.Builder
	var run []rune
	var runFloor bool
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runFloor {
			sb.WriteString(floorStyle.Render(string(run)))
		} else {
			sb.WriteString(emptyStyle.Render(string(run)))
		}
		run = run[:0]
	}
	for _, r := range row {
		isFloor := r == floor
		if len(run) > 0 && isFloor != runFloor {
			flush()
		}
		runFloor = isFloor
		run = append(run, r)
	}
	flush()
	return sb.String()
}
