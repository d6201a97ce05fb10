package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Amjad50/Fyp/pkg/symbols"
)

// symbolsCommand creates the symbols command, which lists the labels the
// parser knows and their default sizes.
func (c *CLI) symbolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List known labels and their default sizes",
		Long: `List every label the parser accepts with its default width and height.

Sizes can be added or overridden in the [symbols.sizes] table of the
config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.out, symbolsTable(c.Config.Table()))
			return err
		},
	}
}

func symbolsTable(t symbols.Table) string {
	var rows [][]string
	for _, label := range t.Labels() {
		size, err := t.Size(label)
		if err != nil {
			continue
		}
		rows = append(rows, []string{label, fmt.Sprint(size.Width), fmt.Sprint(size.Height)})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("LABEL", "WIDTH", "HEIGHT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return StyleTitle.Padding(0, 1)
			case col > 0:
				return style.Inherit(StyleNumber).Align(lipgloss.Right)
			}
			return style
		}).
		String()
}
