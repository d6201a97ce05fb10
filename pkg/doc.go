// Package pkg provides the libraries behind fyp, which turns images of
// mathematical expressions into LaTeX.
//
// # Overview
//
// An expression is a set of labeled symbol boxes. The position of each box
// relative to its neighbours (beside, raised, lowered, above or below)
// decides how the symbols combine:
//
//	   2
//	  x      ->  x^2
//
//	  2
//	 ---     ->  \frac{2}{1}
//	  1
//
// # Architecture
//
// The data flow through fyp:
//
//	Image
//	  ↓
//	[segment] (connected components → symbol boxes)
//	  ↓
//	[classify] (glyph → label: shape heuristics, Tesseract OCR)
//	  ↓
//	[candidates] (every plausible pairwise relation, weighted by distance)
//	  ↓
//	[mst] (minimum spanning tree of the candidates)
//	  ↓
//	[tree] + [tree/transform] (directed symbol tree, normalized rows)
//	  ↓
//	[render/latex] or [render/dot]
//
// [pipeline] runs these stages with caching and is what the CLI calls.
//
// # Quick Start
//
// Parse labeled crops into LaTeX:
//
//	crops := []symbols.LabeledCrop{
//	    {Label: "x", Box: geometry.NewBox(0, 20, 34, 52)},
//	    {Label: "2", Box: geometry.NewBox(36, 0, 50, 23)},
//	}
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, _ := runner.Parse(ctx, pipeline.Options{Crops: crops, Simplify: true})
//	fmt.Println(res.LaTeX) // x^2
//
// Or run the stages by hand:
//
//	g, _ := candidates.NewBuilder(symbols.Default()).Build(crops)
//	spanning, _, _ := mst.FromGraph(g)
//	t, _ := tree.Build(crops, g, spanning)
//	_ = transform.Optimize(t)
//	latex, _ := latex.ToLaTeX(t, latex.Options{Simplify: true})
//
// # Main Packages
//
// [geometry], [symbols] and [relation] hold the primitives: boxes, the
// label size table and the seven spatial relations with their classifier.
//
// [io] reads and writes crops files, tree dumps and evaluation datasets.
//
// [cache] stores pipeline results in files or Redis, keyed by input hash.
//
// [observability] exposes hooks for stage timing, cache and classifier
// events.
//
// [annotate] draws boxes and tree edges over the source image.
//
// [errors] defines the coded errors every package returns.
package pkg
