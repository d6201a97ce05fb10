package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	fypio "github.com/Amjad50/Fyp/pkg/io"
	"github.com/Amjad50/Fyp/pkg/pipeline"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	output     string // output file for the LaTeX
	noSimplify bool   // keep redundant braces
	raw        bool   // skip tree optimization
	tree       bool   // also print the debug dump
	json       bool   // print the full result as JSON
	refresh    bool   // ignore cached results
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse <crops.json>",
		Short: "Parse a crops file into LaTeX",
		Long: `Parse a file of labeled symbol boxes into LaTeX.

The crops file lists each symbol with its label and bounding box
(left, top, right, bottom) in image coordinates:

  {"crops": [{"label": "x", "box": [0, 20, 34, 52]},
             {"label": "2", "box": [36, 0, 50, 23]}]}

Use - to read the crops from stdin.`,
		Example: `  fyp parse crops.json
  fyp parse crops.json --no-simplify --tree
  fyp parse crops.json --json -o result.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runParse(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noSimplify, "no-simplify", false, "keep braces around single characters")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "skip tree optimization")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "also print the symbol tree")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

func (c *CLI) runParse(cmd *cobra.Command, path string, opts parseOpts) error {
	ctx := cmd.Context()
	crops, err := loadCrops(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Parse(ctx, pipeline.Options{
		Crops:    crops,
		Simplify: c.Config.LaTeX.Simplify && !opts.noSimplify,
		Raw:      opts.raw,
		Refresh:  opts.refresh,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Parsed %d symbols (%s)", res.Stats.Symbols, cacheStatus(res.CacheInfo.Hit)), "candidates", res.Stats.Candidates)

	var data []byte
	if opts.json {
		data, err = json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
	} else {
		data = []byte(res.LaTeX + "\n")
		if opts.tree {
			t, err := res.Tree()
			if err != nil {
				return err
			}
			data = append(data, t.String()...)
		}
	}

	if opts.output == "" {
		_, err = c.out.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printFile(opts.output)
	return nil
}

// loadCrops reads a crops file, or stdin when path is "-".
func loadCrops(path string) ([]symbols.LabeledCrop, error) {
	if path == "-" {
		return fypio.ReadCrops(os.Stdin)
	}
	return fypio.ImportCrops(path)
}
