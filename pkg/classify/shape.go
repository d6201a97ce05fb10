package classify

import (
	"context"
	"image"
	"image/color"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// Shape recognizes horizontal bars from the glyph geometry: one bar is a
// minus sign, two stacked bars of similar width are an equals sign.
type Shape struct{}

func (Shape) Name() string { return "shape" }

func (Shape) Classify(ctx context.Context, glyph image.Image) (string, error) {
	bands := inkBands(glyph)
	switch {
	case len(bands) == 1 && isBar(bands[0]):
		return symbols.Minus, nil
	case len(bands) == 2 && isBar(bands[0]) && isBar(bands[1]) &&
		abs(bands[0].Width()-bands[1].Width()) <= 3:
		return symbols.Equals, nil
	}
	return "", errors.New(errors.ErrCodeUnknownLabel, "glyph is not a bar")
}

func isBar(b geometry.Box) bool {
	return float64(b.Width())/float64(b.Height()) > 4
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// inkBands splits the glyph into horizontal bands of rows containing ink
// and returns the ink box of each band.
func inkBands(img image.Image) []geometry.Box {
	b := img.Bounds()
	var bands []geometry.Box
	var cur geometry.Box
	open := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		left, right := -1, -1
		for x := b.Min.X; x < b.Max.X; x++ {
			if dark(img.At(x, y)) {
				if left < 0 {
					left = x
				}
				right = x
			}
		}
		if left < 0 {
			if open {
				bands = append(bands, cur)
				open = false
			}
			continue
		}
		row := geometry.NewBox(left-b.Min.X, y-b.Min.Y, right-b.Min.X+1, y-b.Min.Y+1)
		if open {
			cur = cur.Union(row)
		} else {
			cur, open = row, true
		}
	}
	if open {
		bands = append(bands, cur)
	}
	return bands
}

func dark(c color.Color) bool {
	g := color.GrayModel.Convert(c).(color.Gray)
	return g.Y < 128
}

var _ Classifier = Shape{}
