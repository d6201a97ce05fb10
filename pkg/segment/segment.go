// Package segment splits an image of a handwritten or printed expression
// into symbol bounding boxes.
//
// # Overview
//
// [Segment] binarizes the image, labels every 8-connected group of ink
// pixels as a component, and then merges components that form a single
// symbol:
//
//   - two stacked dashes of equal width become =
//   - two stacked dots of equal size become :
//   - a dot above a glyph becomes i or j
//
// The boxes are returned left to right in the order the parser expects.
// [Result.Glyph] renders a single symbol on a white background, which is
// what a classifier receives.
package segment

import (
	"image"
	"image/color"
	"slices"

	"github.com/disintegration/imaging"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// Options configures segmentation.
type Options struct {
	// Threshold is the gray level below which a pixel counts as ink.
	// Defaults to 128.
	Threshold uint8
	// Invert treats light pixels as ink, for light-on-dark images.
	Invert bool
	// NoMerge disables the =, : and i/j merges.
	NoMerge bool
	// MinArea drops components with fewer ink pixels, to ignore noise.
	MinArea int
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = 128
	}
	return o
}

// Symbol is one segmented symbol: its box and the components it is made of.
type Symbol struct {
	Box        geometry.Box
	components []int32
}

// Result holds the symbols of one image.
type Result struct {
	Symbols []Symbol

	width, height int
	// labels maps each pixel to its component id + 1, or 0 for background.
	labels []int32
}

// Boxes returns the symbol boxes in order.
func (r *Result) Boxes() []geometry.Box {
	out := make([]geometry.Box, len(r.Symbols))
	for i, s := range r.Symbols {
		out[i] = s.Box
	}
	return out
}

// Segment finds the symbols of img.
func Segment(img image.Image, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image is empty")
	}

	ink := binarize(img, opts)
	res := &Result{width: b.Dx(), height: b.Dy(), labels: make([]int32, b.Dx()*b.Dy())}

	comps := res.label(ink, opts.MinArea)
	if len(comps) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image has no ink")
	}

	syms := make([]Symbol, len(comps))
	for i, c := range comps {
		syms[i] = Symbol{Box: c, components: []int32{int32(i + 1)}}
	}
	if !opts.NoMerge {
		syms = mergeSymbols(syms)
	}
	slices.SortStableFunc(syms, func(a, b Symbol) int {
		return symbols.SortKey(a.Box) - symbols.SortKey(b.Box)
	})
	res.Symbols = syms
	return res, nil
}

// binarize converts img to a bitmap with origin at (0, 0).
func binarize(img image.Image, opts Options) []bool {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	ink := make([]bool, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := gray.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			// Transparent pixels count as background.
			v := c.R
			if c.A < 128 {
				v = 255
				if opts.Invert {
					v = 0
				}
			}
			dark := v < opts.Threshold
			ink[y*b.Dx()+x] = dark != opts.Invert
		}
	}
	return ink
}

// label flood-fills 8-connected components in column-major scan order and
// returns their boxes. Components smaller than minArea are discarded.
func (r *Result) label(ink []bool, minArea int) []geometry.Box {
	var boxes []geometry.Box
	var stack []int
	var next int32 = 1
	w, h := r.width, r.height

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			start := y*w + x
			if !ink[start] || r.labels[start] != 0 {
				continue
			}

			box := geometry.NewBox(x, y, x+1, y+1)
			area := 0
			var pixels []int
			stack = append(stack[:0], start)
			r.labels[start] = next
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				pixels = append(pixels, p)
				area++
				px, py := p%w, p/w
				box = box.Union(geometry.NewBox(px, py, px+1, py+1))

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := px+dx, py+dy
						if (dx == 0 && dy == 0) || nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						q := ny*w + nx
						if ink[q] && r.labels[q] == 0 {
							r.labels[q] = next
							stack = append(stack, q)
						}
					}
				}
			}

			if area < minArea {
				for _, p := range pixels {
					r.labels[p] = -1
				}
				continue
			}
			boxes = append(boxes, box)
			next++
		}
	}
	return boxes
}

// Glyph renders symbol i as black ink on a white background, cropped to its
// box. Ink from other symbols inside the box is left out.
func (r *Result) Glyph(i int) *image.Gray {
	s := r.Symbols[i]
	out := image.NewGray(image.Rect(0, 0, s.Box.Width(), s.Box.Height()))
	for y := 0; y < s.Box.Height(); y++ {
		for x := 0; x < s.Box.Width(); x++ {
			l := r.labels[(s.Box.Top+y)*r.width+s.Box.Left+x]
			if l > 0 && slices.Contains(s.components, l) {
				out.SetGray(x, y, color.Gray{Y: 0})
			} else {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// Crop returns the region of img under box, including any other ink.
func Crop(img image.Image, box geometry.Box) *image.NRGBA {
	origin := img.Bounds().Min
	return imaging.Crop(img, image.Rect(box.Left, box.Top, box.Right, box.Bottom).Add(origin))
}

// Normalize scales a glyph to fit a size x size square, keeping its aspect
// ratio, and centers it on a white canvas with margin pixels of padding.
func Normalize(glyph image.Image, size, margin int) *image.NRGBA {
	inner := size - 2*margin
	if inner < 1 {
		inner = 1
	}
	var fitted *image.NRGBA
	if b := glyph.Bounds(); b.Dx() >= b.Dy() {
		fitted = imaging.Resize(glyph, inner, 0, imaging.Lanczos)
	} else {
		fitted = imaging.Resize(glyph, 0, inner, imaging.Lanczos)
	}
	canvas := imaging.New(size, size, color.White)
	return imaging.PasteCenter(canvas, fitted)
}

// LabeledCrops pairs the symbol boxes with labels.
func (r *Result) LabeledCrops(labels []string) ([]symbols.LabeledCrop, error) {
	if len(labels) != len(r.Symbols) {
		return nil, errors.New(errors.ErrCodeInternal, "%d labels for %d symbols", len(labels), len(r.Symbols))
	}
	out := make([]symbols.LabeledCrop, len(labels))
	for i, s := range r.Symbols {
		out[i] = symbols.LabeledCrop{Label: labels[i], Box: s.Box}
	}
	return out, nil
}
