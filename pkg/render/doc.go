// Package render provides visualization rendering for floor plans.
//
// # Overview
//
// This package groups the renderers that transform generated floor
// plans into visual outputs:
//
//   - Tile maps as terminal text (in [ascii] subpackage)
//   - Room-connectivity diagrams (in [nodelink] subpackage)
//
// # Tile Maps
//
// The [ascii] subpackage draws the tile grid one glyph per tile, with
// optional terminal styling. This is the primary way to eyeball a plan
// from the CLI.
//
//	text := ascii.Render(plan, ascii.Options{Color: true})
//
// # Connectivity Diagrams
//
// The [nodelink] subpackage renders the room graph as an undirected
// node-link diagram using Graphviz. Rooms appear as boxes connected by
// corridor edges.
//
//	dot := nodelink.ToDOT(plan, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [ascii]: github.com/dungenlab/dungen/pkg/render/ascii
// [nodelink]: github.com/dungenlab/dungen/pkg/render/nodelink
package render
