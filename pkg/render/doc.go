// Package render holds the output renderers for parsed expressions.
//
// # Overview
//
//   - LaTeX source (in [latex] subpackage)
//   - Node-link diagrams of the symbol tree (in [dot] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	src := dot.ToDOT(t, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [latex]: github.com/Amjad50/Fyp/pkg/render/latex
// [dot]: github.com/Amjad50/Fyp/pkg/render/dot
package render
