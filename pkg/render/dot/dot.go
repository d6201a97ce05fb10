// Package dot renders symbol trees as Graphviz node-link diagrams.
//
// Convert a tree to DOT source, then render it to SVG:
//
//	src := dot.ToDOT(t, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(src)
//
// Each node is a box labeled with its symbol; each forward relation is an
// arrow labeled with the relation name. Edges under none are dashed since
// they carry no layout meaning.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/Amjad50/Fyp/pkg/relation"
	"github.com/Amjad50/Fyp/pkg/render"
	"github.com/Amjad50/Fyp/pkg/tree"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the position and bounding box to node labels.
	Detailed bool
}

// ToDOT converts a tree to Graphviz DOT format.
func ToDOT(t *tree.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=16];\n")
	buf.WriteString("\n")

	root, err := t.Root()
	for _, n := range t.Nodes() {
		attrs := fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed))
		if err == nil && n.Position == root {
			attrs += ", penwidth=2"
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(n.Position), attrs)
	}

	buf.WriteString("\n")
	for _, n := range t.Nodes() {
		for _, r := range relation.Forward {
			for _, c := range n.Links(r) {
				attrs := fmt.Sprintf("label=%q", r.String())
				if r == relation.None {
					attrs += ", style=dashed"
				}
				fmt.Fprintf(&buf, "  %s -> %s [%s];\n", nodeID(n.Position), nodeID(c), attrs)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "n" + strconv.Itoa(i) }

func fmtLabel(n *tree.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	return fmt.Sprintf("%s\n#%d %s", n.Label, n.Position, n.Box)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, src string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(src))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPNG renders DOT source as PNG via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, src string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, src)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(ctx context.Context, src string) ([]byte, error) {
	svg, err := RenderSVG(ctx, src)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
