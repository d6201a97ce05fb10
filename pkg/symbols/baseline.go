package symbols

import (
	"strings"

	"github.com/Amjad50/Fyp/pkg/geometry"
)

// belowBaseline maps groups of glyphs with descenders to how far, at default
// size, they reach below the baseline.
var belowBaseline = []struct {
	glyphs string
	extra  float64
}{
	{"fgjpqyQ,", 12},
	{"()[]|", 15},
}

// specialBelowBaseline covers multi-character labels.
var specialBelowBaseline = map[string]float64{
	Int: 57,
	Sum: 30,
}

func extraHeight(label string) (float64, bool) {
	if extra, ok := specialBelowBaseline[label]; ok {
		return extra, true
	}
	if len(label) != 1 {
		return 0, false
	}
	for _, g := range belowBaseline {
		if strings.Contains(g.glyphs, label) {
			return g.extra, true
		}
	}
	return 0, false
}

// BaselineHeight returns the distance from the top of c's box to its
// baseline.
//
// Flat symbols have tiny boxes, so their baseline is pushed down: an equals
// sign to one and a half times its height, a minus to six times.
func (t Table) BaselineHeight(c LabeledCrop) (float64, error) {
	h := float64(c.Box.Height())

	if extra, ok := extraHeight(c.Label); ok {
		size, err := t.Size(c.Label)
		if err != nil {
			return 0, err
		}
		return h - extra*(h/float64(size.Height)), nil
	}

	switch c.Label {
	case Equals:
		return h * 1.5, nil
	case Minus:
		return h * 6, nil
	}
	return h, nil
}

// BaselineCenter returns the point on c's baseline below its horizontal
// center.
func (t Table) BaselineCenter(c LabeledCrop) (geometry.Point, error) {
	bh, err := t.BaselineHeight(c)
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{
		X: c.Box.Center().X,
		Y: float64(c.Box.Top) + bh,
	}, nil
}

// RelativeSize returns how large c is drawn compared with its default size.
// A minus sign is measured by width alone because its height is a few
// pixels of stroke.
func (t Table) RelativeSize(c LabeledCrop) (float64, error) {
	size, err := t.Size(c.Label)
	if err != nil {
		return 0, err
	}

	w := float64(c.Box.Width()) / float64(size.Width)
	if c.Label == Minus {
		return w, nil
	}
	h := float64(c.Box.Height()) / float64(size.Height)
	return max(w, h), nil
}
