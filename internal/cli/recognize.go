package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Amjad50/Fyp/pkg/annotate"
	"github.com/Amjad50/Fyp/pkg/pipeline"
)

// recognizeCommand creates the recognize command, which runs the whole
// pipeline on an image.
func (c *CLI) recognizeCommand() *cobra.Command {
	var (
		flags      segmentFlags
		noSimplify bool
		asJSON     bool
		refresh    bool
		noOCR      bool
		annotated  string
	)

	cmd := &cobra.Command{
		Use:   "recognize <image>",
		Short: "Recognize the expression in an image",
		Long: `Segment an image, classify every symbol and parse the result into LaTeX.

Symbols are classified with a shape heuristic for bars and with Tesseract
OCR for everything else. Without Tesseract only bars are recognized.`,
		Example: `  fyp recognize expr.png
  fyp recognize expr.png --annotate tree.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			segOpts, err := c.segmentOptions(flags)
			if err != nil {
				return err
			}
			img, err := openImage(args[0])
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

			spinner := newSpinnerWithContext(ctx, "Recognizing "+args[0]+"...")
			spinner.Start()
			prog := newProgress(loggerFromContext(ctx))
			res, err := runner.Recognize(ctx, img, cl, pipeline.RecognizeOptions{
				Segment: segOpts,
				Parse: pipeline.Options{
					Simplify: c.Config.LaTeX.Simplify && !noSimplify,
					Refresh:  refresh,
				},
			})
			spinner.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Recognized %d symbols", res.Stats.Symbols), "run", res.RunID)
			printStats(res)

			if annotated != "" {
				t, err := res.Tree()
				if err != nil {
					return err
				}
				if err := saveImage(annotated, annotate.Draw(img, res.Crops, annotate.TreeLinks(t))); err != nil {
					return err
				}
			}

			if asJSON {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(c.out, string(data))
				return err
			}
			_, err = fmt.Fprintln(c.out, res.LaTeX)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noSimplify, "no-simplify", false, "keep braces around single characters")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&noOCR, "no-ocr", false, "only recognize bars")
	cmd.Flags().StringVar(&annotated, "annotate", "", "also write the image with boxes and tree edges drawn")

	return cmd
}
