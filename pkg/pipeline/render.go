package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/render/dot"
)

// RenderOptions configures [Render].
type RenderOptions struct {
	Formats []string
	// Detailed adds positions and boxes to graph node labels.
	Detailed bool
	// Scale is the PNG scale factor.
	Scale float64
}

// Render generates output artifacts for a parse result in the requested
// formats.
func Render(ctx context.Context, res *Result, opts RenderOptions) (map[string][]byte, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = []string{FormatLaTeX}
	}
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	if opts.Scale == 0 {
		opts.Scale = DefaultScale
	}

	t, err := res.Tree()
	if err != nil {
		return nil, err
	}

	var src string
	graphSrc := func() string {
		if src == "" {
			src = dot.ToDOT(t, dot.Options{Detailed: opts.Detailed})
		}
		return src
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatLaTeX:
			data = []byte(res.LaTeX + "\n")
		case FormatTree:
			data = []byte(t.String())
		case FormatJSON:
			data, err = json.MarshalIndent(res.Nodes, "", "  ")
		case FormatDOT:
			data = []byte(graphSrc())
		case FormatSVG:
			data, err = dot.RenderSVG(ctx, graphSrc())
		case FormatPNG:
			data, err = dot.RenderPNG(ctx, graphSrc(), opts.Scale)
		case FormatPDF:
			data, err = dot.RenderPDF(ctx, graphSrc())
		}

		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, errors.Wrap(errors.GetCode(err), err, "render %s", format)
			}
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
