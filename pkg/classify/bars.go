package classify

import (
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// ResolveFractionBars relabels as \frac every minus sign that has another
// symbol directly above it and another directly below, within its width.
// crops is modified in place and the number of relabeled bars is returned.
func ResolveFractionBars(crops []symbols.LabeledCrop) int {
	n := 0
	for i, bar := range crops {
		if bar.Label != symbols.Minus {
			continue
		}
		above, below := false, false
		for j, o := range crops {
			if i == j || !bar.Box.XOverlaps(o.Box) {
				continue
			}
			cx := o.Box.Center().X
			if cx < float64(bar.Box.Left) || cx > float64(bar.Box.Right) {
				continue
			}
			if o.Box.Bottom <= bar.Box.Top {
				above = true
			}
			if o.Box.Top >= bar.Box.Bottom {
				below = true
			}
		}
		if above && below {
			crops[i].Label = symbols.Frac
			n++
		}
	}
	return n
}
