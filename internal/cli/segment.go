package cli

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Amjad50/Fyp/pkg/annotate"
	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/geometry"
	fypio "github.com/Amjad50/Fyp/pkg/io"
	"github.com/Amjad50/Fyp/pkg/pipeline"
	"github.com/Amjad50/Fyp/pkg/segment"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// placeholderLabel marks boxes the user still has to label.
const placeholderLabel = "?"

// segmentFlags holds the segmentation flags shared by segment and
// recognize.
type segmentFlags struct {
	threshold int
	invert    bool
	noMerge   bool
	minArea   int
}

func (f *segmentFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.threshold, "threshold", 0, "gray level below which a pixel is ink (default from config)")
	cmd.Flags().BoolVar(&f.invert, "invert", false, "treat light pixels as ink")
	cmd.Flags().BoolVar(&f.noMerge, "no-merge", false, "keep =, : and i/j parts separate")
	cmd.Flags().IntVar(&f.minArea, "min-area", -1, "drop components with fewer ink pixels (default from config)")
}

// segmentOptions merges the flags over the configured defaults.
func (c *CLI) segmentOptions(f segmentFlags) (segment.Options, error) {
	cfg := c.Config.Segment
	threshold := cfg.Threshold
	if f.threshold != 0 {
		threshold = f.threshold
	}
	if threshold < 1 || threshold > 255 {
		return segment.Options{}, errors.New(errors.ErrCodeInvalidInput, "threshold %d out of range 1-255", threshold)
	}
	minArea := cfg.MinArea
	if f.minArea >= 0 {
		minArea = f.minArea
	}
	return segment.Options{
		Threshold: uint8(threshold),
		Invert:    f.invert,
		NoMerge:   f.noMerge || !cfg.Merge,
		MinArea:   minArea,
	}, nil
}

// openImage decodes the image at path.
func openImage(path string) (image.Image, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open image %s", path)
	}
	return img, nil
}

// segmentCommand creates the segment command.
func (c *CLI) segmentCommand() *cobra.Command {
	var (
		flags     segmentFlags
		output    string
		annotated string
		label     bool
		noOCR     bool
	)

	cmd := &cobra.Command{
		Use:   "segment <image>",
		Short: "Find the symbol boxes of an image",
		Long: `Split an image into symbol boxes and write them as a crops file.

Boxes are labeled "?" so the file can be completed by hand and given to
parse. With --label every box is classified instead.`,
		Example: `  fyp segment expr.png -o crops.json
  fyp segment expr.png --label --annotate boxes.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := c.segmentOptions(flags)
			if err != nil {
				return err
			}
			img, err := openImage(args[0])
			if err != nil {
				return err
			}

			var crops []symbols.LabeledCrop
			if label {
				cl, closeCl := c.newClassifier(noOCR)
				defer closeCl()
				runner, err := c.newRunner(ctx)
				if err != nil {
					return err
				}
				defer runner.Close()
				crops, err = runner.Label(ctx, uuid.NewString(), img, cl, pipeline.RecognizeOptions{Segment: opts})
				if err != nil {
					return err
				}
			} else {
				res, err := segment.Segment(img, opts)
				if err != nil {
					return err
				}
				labels := make([]string, len(res.Symbols))
				for i := range labels {
					labels[i] = placeholderLabel
				}
				if crops, err = res.LabeledCrops(labels); err != nil {
					return err
				}
			}
			loggerFromContext(ctx).Info("segmented image", "symbols", len(crops))

			if annotated != "" {
				boxes := make([]geometry.Box, len(crops))
				for i, cr := range crops {
					boxes[i] = cr.Box
				}
				if err := saveImage(annotated, annotate.DrawBoxes(img, boxes)); err != nil {
					return err
				}
			}

			if output == "" {
				return fypio.WriteCrops(c.out, args[0], crops)
			}
			if err := fypio.ExportCrops(output, args[0], crops); err != nil {
				return err
			}
			printFile(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "crops file (default stdout)")
	cmd.Flags().StringVar(&annotated, "annotate", "", "also write the image with the boxes drawn")
	cmd.Flags().BoolVar(&label, "label", false, "classify every box")
	cmd.Flags().BoolVar(&noOCR, "no-ocr", false, "only recognize bars when labeling")

	return cmd
}

// saveImage encodes img by the extension of path.
func saveImage(path string, img image.Image) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	printFile(path)
	return nil
}
