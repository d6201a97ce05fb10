package cli

import (
	"github.com/spf13/cobra"

	"github.com/Amjad50/Fyp/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path (or base path for multiple outputs)
	formats  string  // comma-separated output formats
	detailed bool    // show positions and boxes on nodes
	raw      bool    // skip tree optimization
	scale    float64 // PNG scale factor
}

// renderCommand creates the render command for drawing the symbol tree.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render <crops.json>",
		Short: "Render the symbol tree as a graph",
		Long: `Render the symbol tree of a crops file as a Graphviz graph. Edges are
labeled with their relation; none edges are dashed.

PNG and PDF output require librsvg (rsvg-convert).`,
		Example: `  fyp render crops.json -f dot
  fyp render crops.json -f svg,png -o tree`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			formats := parseFormats(opts.formats, pipeline.FormatDOT)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			crops, err := loadCrops(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Parse(ctx, pipeline.Options{Crops: crops, Raw: opts.raw})
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Rendering...")
			spinner.Start()
			artifacts, err := pipeline.Render(ctx, res, pipeline.RenderOptions{
				Formats:  formats,
				Detailed: opts.detailed,
				Scale:    opts.scale,
			})
			spinner.Stop()
			if err != nil {
				return err
			}
			return c.writeArtifacts(artifacts, formats, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): dot (default), svg, png, pdf, json, tree, latex (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show positions and boxes")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "skip tree optimization")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}
