// Package annotate draws symbol boxes and their connections over the
// source image, for checking segmentation and parse results by eye.
package annotate

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/relation"
	"github.com/Amjad50/Fyp/pkg/symbols"
	"github.com/Amjad50/Fyp/pkg/tree"
)

// LinkColor is the color of connection lines.
var LinkColor = color.NRGBA{R: 60, G: 60, B: 60, A: 255}

// Stroke widths in pixels.
const (
	BoxWidth  = 1
	LinkWidth = 3
)

// Link connects two crops by position.
type Link struct {
	From, To int
}

// TreeLinks returns one link per forward relation in t.
func TreeLinks(t *tree.Tree) []Link {
	var links []Link
	for i := 0; i < t.Len(); i++ {
		n := t.Node(i)
		for _, r := range relation.Forward {
			for _, c := range n.Links(r) {
				links = append(links, Link{From: i, To: c})
			}
		}
	}
	return links
}

// Palette returns n evenly spaced, saturated colors.
func Palette(n int) []color.NRGBA {
	out := make([]color.NRGBA, n)
	for i := range out {
		c := colorful.Hsl(float64(i)*360/float64(max(n, 1)), 0.8, 0.45).Clamped()
		r, g, b := c.RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// Draw returns a copy of img with every crop outlined in its own color and
// a line between the centers of each linked pair. Links referring to
// unknown positions are skipped. img is not modified.
func Draw(img image.Image, crops []symbols.LabeledCrop, links []Link) *image.NRGBA {
	dc := gg.NewContextForImage(img)

	palette := Palette(len(crops))
	dc.SetLineWidth(BoxWidth)
	for i, c := range crops {
		b := c.Box
		// Outlines run through pixel centers so each edge stays one pixel
		// wide.
		dc.DrawRectangle(float64(b.Left)+0.5, float64(b.Top)+0.5, float64(b.Width()-1), float64(b.Height()-1))
		dc.SetColor(palette[i])
		dc.Stroke()
	}

	dc.SetColor(LinkColor)
	dc.SetLineWidth(LinkWidth)
	for _, l := range links {
		if l.From < 0 || l.From >= len(crops) || l.To < 0 || l.To >= len(crops) {
			continue
		}
		p, q := crops[l.From].Box.Center(), crops[l.To].Box.Center()
		dc.DrawLine(p.X, p.Y, q.X, q.Y)
		dc.Stroke()
	}
	return imaging.Clone(dc.Image())
}

// DrawBoxes outlines boxes without labels or links.
func DrawBoxes(img image.Image, boxes []geometry.Box) *image.NRGBA {
	crops := make([]symbols.LabeledCrop, len(boxes))
	for i, b := range boxes {
		crops[i] = symbols.LabeledCrop{Box: b}
	}
	return Draw(img, crops, nil)
}
