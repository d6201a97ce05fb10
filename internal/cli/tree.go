package cli

import (
	"github.com/spf13/cobra"

	fypio "github.com/Amjad50/Fyp/pkg/io"
	"github.com/Amjad50/Fyp/pkg/pipeline"
)

// treeCommand creates the tree command, which prints the symbol tree.
func (c *CLI) treeCommand() *cobra.Command {
	var raw, asJSON bool

	cmd := &cobra.Command{
		Use:   "tree <crops.json>",
		Short: "Print the symbol tree of a crops file",
		Long: `Print the symbol tree built from a crops file, one line per symbol:

  x -> {power: [2]}
  2 -> {power_inverse: [x]}

With --raw the tree is printed as built from the spanning tree, before
rows are normalized.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			crops, err := loadCrops(args[0])
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Parse(ctx, pipeline.Options{Crops: crops, Raw: raw})
			if err != nil {
				return err
			}
			t, err := res.Tree()
			if err != nil {
				return err
			}
			if asJSON {
				return fypio.WriteTree(c.out, t)
			}
			_, err = c.out.Write([]byte(t.String()))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "skip tree optimization")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the tree as JSON")

	return cmd
}
