package segment

import (
	"math"

	"github.com/Amjad50/Fyp/pkg/geometry"
)

// mergeTolerance is the pixel slack allowed between the parts of a merged
// symbol.
const mergeTolerance = 3

func isDash(b geometry.Box) bool {
	return float64(b.Width())/float64(b.Height()) > 4
}

func isDot(b geometry.Box) bool {
	w, h := float64(b.Width()), float64(b.Height())
	return math.Abs(w/h-1) < 0.2 || math.Abs(w-h) < 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// stackedBetween reports whether some box other than a and b lies in the
// vertical gap between them and overlaps either horizontally.
func stackedBetween(a, b geometry.Box, all []Symbol) bool {
	if a.Top > b.Top {
		a, b = b, a
	}
	for _, s := range all {
		o := s.Box
		if o == a || o == b {
			continue
		}
		if a.Bottom <= o.Top && o.Top <= b.Top && (o.XOverlaps(a) || o.XOverlaps(b)) {
			return true
		}
	}
	return false
}

// alignedPair reports whether upper sits directly above lower with matching
// left edges and nothing in between.
func alignedPair(upper, lower geometry.Box, all []Symbol) bool {
	return upper.Bottom < lower.Top &&
		abs(upper.Left-lower.Left) <= mergeTolerance &&
		!stackedBetween(upper, lower, all)
}

func canBeEquals(a, b geometry.Box, all []Symbol) bool {
	return isDash(a) && isDash(b) &&
		abs(a.Width()-b.Width()) <= mergeTolerance &&
		alignedPair(a, b, all)
}

func canBeColon(a, b geometry.Box, all []Symbol) bool {
	return isDot(a) && isDot(b) &&
		abs(a.Width()-b.Width()) <= mergeTolerance &&
		abs(a.Height()-b.Height()) <= mergeTolerance &&
		alignedPair(a, b, all)
}

func canBeDotted(dot, glyph geometry.Box, all []Symbol) bool {
	return isDot(dot) && !isDot(glyph) && !isDash(glyph) &&
		dot.Top <= glyph.Top &&
		dot.XOverlaps(glyph) &&
		!stackedBetween(dot, glyph, all)
}

// mergeSymbols applies the =, : and i/j merges in that order. Each symbol
// takes part in at most one merge per rule.
func mergeSymbols(syms []Symbol) []Symbol {
	for _, can := range []func(a, b geometry.Box, all []Symbol) bool{canBeEquals, canBeColon, canBeDotted} {
		syms = mergePass(syms, can)
	}
	return syms
}

func mergePass(syms []Symbol, can func(a, b geometry.Box, all []Symbol) bool) []Symbol {
	used := make([]bool, len(syms))
	var merged []Symbol
	for i := range syms {
		for j := range syms {
			if i == j || used[i] || used[j] || !can(syms[i].Box, syms[j].Box, syms) {
				continue
			}
			used[i], used[j] = true, true
			merged = append(merged, Symbol{
				Box:        syms[i].Box.Union(syms[j].Box),
				components: append(append([]int32(nil), syms[i].components...), syms[j].components...),
			})
		}
	}
	if len(merged) == 0 {
		return syms
	}
	out := make([]Symbol, 0, len(syms)-len(merged))
	for i, s := range syms {
		if !used[i] {
			out = append(out, s)
		}
	}
	return append(out, merged...)
}
