package render

import (
	"encoding/json"
	"fmt"

	"github.com/dungenlab/dungen/pkg/dungeon"
	"github.com/dungenlab/dungen/pkg/render/ascii"
	"github.com/dungenlab/dungen/pkg/render/nodelink"
)

// Artifact renders a floor plan in the named format: "ascii" for the
// tile map, "dot"/"svg"/"png" for the connectivity diagram, "json" for
// the serialized plan itself.
func Artifact(plan *dungeon.FloorPlan, format string) ([]byte, error) {
	switch format {
	case "ascii":
		return []byte(ascii.Render(plan, ascii.Options{})), nil
	case "dot":
		return []byte(nodelink.ToDOT(plan, nodelink.Options{Detailed: true})), nil
	case "svg":
		return nodelink.RenderSVG(nodelink.ToDOT(plan, nodelink.Options{Detailed: true}))
	case "png":
		return nodelink.RenderPNG(nodelink.ToDOT(plan, nodelink.Options{Detailed: true}))
	case "json":
		return json.MarshalIndent(plan, "", "  ")
	default:
		return nil, fmt.Errorf("unknown artifact format %q", format)
	}
}
