package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	fypio "github.com/Amjad50/Fyp/pkg/io"
	"github.com/Amjad50/Fyp/pkg/observability"
	"github.com/Amjad50/Fyp/pkg/pipeline"
)

// evalCommand creates the eval command, which measures accuracy over a
// dataset of expressions with known LaTeX.
func (c *CLI) evalCommand() *cobra.Command {
	var (
		flags   segmentFlags
		limit   int
		asJSON  bool
		failed  bool
		noOCR   bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "eval <dataset>",
		Short: "Measure accuracy over a dataset",
		Long: `Run every entry of a dataset and compare the predicted LaTeX with the
reference after simplifying both.

The dataset is a JSON manifest:

  {"entries": [{"name": "frac", "crops": "frac.json", "expr": "\\frac{2}{1}"}]}

or a CSV file of file_basename,expr rows. Paths are relative to the
dataset file; an entry names either a crops file or an image.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			segOpts, err := c.segmentOptions(flags)
			if err != nil {
				return err
			}
			ds, err := fypio.ReadDataset(args[0])
			if err != nil {
				return err
			}

			cl, closeCl := c.newClassifier(noOCR)
			defer closeCl()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			stats := &observability.Stats{}
			observability.SetCacheHooks(stats)
			defer observability.SetCacheHooks(observability.NoopCacheHooks{})

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Evaluating %d entries...", len(ds.Entries)))
			spinner.Start()
			report, err := runner.Evaluate(ctx, ds, pipeline.BatchOptions{
				Limit:      limit,
				Classifier: cl,
				Recognize: pipeline.RecognizeOptions{
					Segment: segOpts,
					Parse:   pipeline.Options{Simplify: true, Refresh: refresh},
				},
			})
			spinner.Stop()
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.out, string(data))
				return err
			}
			fmt.Fprintln(c.out, reportTable(report, failed))
			printKeyValue("Accuracy", fmt.Sprintf("%.1f%% (%d/%d)", report.Accuracy*100, report.Correct, report.Total))
			printKeyValue("Failed", fmt.Sprint(report.Failed))
			printKeyValue("Cache hits", fmt.Sprintf("%.0f%%", stats.HitRate()*100))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "jobs", "j", pipeline.DefaultBatchLimit, "entries to run concurrently")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&failed, "failed", false, "only list wrong or failed entries")
	cmd.Flags().BoolVar(&noOCR, "no-ocr", false, "only recognize bars in image entries")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")

	return cmd
}

// reportTable renders the outcomes as a table. With onlyWrong, correct
// entries are left out.
func reportTable(r *pipeline.Report, onlyWrong bool) string {
	var rows [][]string
	for _, o := range r.Outcomes {
		if onlyWrong && o.Correct {
			continue
		}
		got := o.Predicted
		if o.Error != "" {
			got = o.Error
		}
		rows = append(rows, []string{outcomeMark(o), o.Name, o.Expected, got})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("", "NAME", "EXPECTED", "PREDICTED").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}
