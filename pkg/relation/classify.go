package relation

import (
	"math"

	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// Classifier infers relations using a symbol size table.
type Classifier struct {
	Symbols symbols.Table
}

// NewClassifier returns a classifier backed by table.
func NewClassifier(table symbols.Table) *Classifier {
	return &Classifier{Symbols: table}
}

// Classify returns the relation by which b attaches to a.
//
// The second result is false when the pair is not considered at all, which
// happens when b starts to the left of a; callers evaluate both orderings.
// An error is returned only when a label is missing from the size table.
//
// The checks run in a fixed order:
//  1. b lying horizontally within a fraction, sum or integral is its upper
//     or lower operand.
//  2. A clearly smaller b sitting low or high is a subscript or power.
//  3. Symbols of clearly different size that are roughly aligned are not
//     related.
//  4. Looser angle bands decide between sub, power, left, up and down.
func (c *Classifier) Classify(a, b symbols.LabeledCrop) (Relation, bool, error) {
	box1, box2 := a.Box, b.Box
	if box1.Left > box2.Left {
		return 0, false, nil
	}

	p1, err := c.Symbols.BaselineCenter(a)
	if err != nil {
		return 0, false, err
	}
	p2, err := c.Symbols.BaselineCenter(b)
	if err != nil {
		return 0, false, err
	}
	angle := geometry.Angle(p1, p2)

	size1, err := c.Symbols.RelativeSize(a)
	if err != nil {
		return 0, false, err
	}
	size2, err := c.Symbols.RelativeSize(b)
	if err != nil {
		return 0, false, err
	}
	ratio := size2 / size1

	upDown := symbols.CanHaveUpDown(a.Label)
	if box1.ContainsX(box2) && upDown {
		if angle > 0 {
			return Up, true, nil
		}
		return Down, true, nil
	}

	aFrac, bFrac := a.Label == symbols.Frac, b.Label == symbols.Frac
	if aFrac || bFrac {
		angle = geometry.Angle(box1.Center(), box2.Center())
	}

	if ratio < 0.85 && !aFrac {
		switch {
		case within(angle, -30, -8) && CanBePowerOrSub(box1, box2):
			return Sub, true, nil
		case within(angle, 15, 60) && CanBePowerOrSub(box1, box2):
			return Power, true, nil
		}
	}

	if math.Abs(ratio-1) > 0.15 && !aFrac && !bFrac && within(angle, -30, 15) {
		return None, true, nil
	}

	minus := a.Label == symbols.Minus
	switch {
	case within(angle, -30, -12) && !minus && CanBePowerOrSub(box1, box2):
		return Sub, true, nil
	case within(angle, 25, 60) && !minus && CanBePowerOrSub(box1, box2):
		return Power, true, nil
	case within(angle, -10, 10):
		return Left, true, nil
	case within(angle, 60, 140) && upDown:
		return Up, true, nil
	case within(angle, -130, -60) && upDown:
		return Down, true, nil
	}
	return None, true, nil
}

func within(v, lo, hi float64) bool { return v >= lo && v <= hi }

// CanBePowerOrSub reports whether b is vertically close enough to a to be
// its superscript or subscript: b must not start more than a's height above
// a's top, nor more than a's height below a's bottom.
func CanBePowerOrSub(a, b geometry.Box) bool {
	h := a.Height()
	if a.Top > b.Top {
		return a.Top-h <= b.Top
	}
	return a.Bottom+h >= b.Top
}
