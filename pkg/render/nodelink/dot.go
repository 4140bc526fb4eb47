// Package nodelink renders room-connectivity graphs as node-link
// diagrams via Graphviz. Each room is a box positioned by its partition
// cell; each corridor that was successfully carved becomes an edge.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/dungenlab/dungen/pkg/dungeon"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes room dimensions and corridor degree in node
	// labels. When false, only the cell coordinates are shown.
	Detailed bool
}

// ToDOT converts a floor plan's room graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Rooms that ended up without any corridor are rendered with dashed
// outlines and grey fill so connectivity gaps stand out.
func ToDOT(plan *dungeon.FloorPlan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\", pin=true];\n")
	buf.WriteString("\n")

	for _, c := range plan.Graph.Cells() {
		label := fmtLabel(plan, c, opts.Detailed)
		attrs := fmtAttrs(plan, c, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(c), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range plan.Graph.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", nodeID(e.A), nodeID(e.B))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(c dungeon.Cell) string {
	return fmt.Sprintf("room_%d_%d", c.X, c.Z)
}

func fmtLabel(plan *dungeon.FloorPlan, c dungeon.Cell, detailed bool) string {
	id := fmt.Sprintf("(%d,%d)", c.X, c.Z)
	if !detailed {
		return id
	}
	room := plan.RoomAt(c)
	parts := []string{
		fmt.Sprintf("size: %dx%d", room.Width, room.Length),
		fmt.Sprintf("corridors: %d", plan.Graph.Degree(c)),
	}
	return id + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(plan *dungeon.FloorPlan, c dungeon.Cell, label string) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		// Lay nodes out to mirror the partition grid; DOT's y axis
		// points up, so z is negated.
		fmt.Sprintf("pos=\"%d,%d!\"", c.X*2, -c.Z*2),
	}
	if plan.Graph.Degree(c) == 0 {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	svg, err := renderFormat(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz's built-in
// rasterizer.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
