package cli

import (
	"reflect"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"ascii"}},
		{"svg", []string{"svg"}},
		{"ascii,dot,png", []string{"ascii", "dot", "png"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		seed   int64
		want   string
	}{
		{"derive from input", "", "plans/crypt.json", 0, "plans/crypt"},
		{"strip format extension", "out.svg", "", 0, "out"},
		{"strip txt extension", "map.txt", "", 0, "map"},
		{"keep other extension", "out.backup", "", 0, "out.backup"},
		{"fall back to seed", "", "", 42, "dungeon_42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input, tt.seed); got != tt.want {
				t.Errorf("basePath(%q, %q, %d) = %q, want %q", tt.output, tt.input, tt.seed, got, tt.want)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	if got := extension("ascii"); got != "txt" {
		t.Errorf("extension(ascii) = %s, want txt", got)
	}
	if got := extension("svg"); got != "svg" {
		t.Errorf("extension(svg) = %s, want svg", got)
	}
}
