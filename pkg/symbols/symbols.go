// Package symbols holds the static metrics of every symbol the recognizer
// can emit, and the labeled crop type passed between the pipeline stages.
//
// # Default sizes
//
// Each label has a reference (width, height) measured at the default font
// scale. The relation classifier compares an observed box against this
// reference to decide whether a symbol was written smaller (a power or
// subscript) or at the same scale (a sibling). A label without an entry
// cannot take part in relation inference; lookups fail with an
// UNKNOWN_LABEL error.
//
// # Baselines
//
// Symbols are compared at their baseline rather than at their box center.
// Most glyphs sit on the baseline with their full height. Glyphs with
// descenders and the large operators sit partly below it, so their baseline
// is raised by a label-specific extra height scaled to the observed box.
//
// # Tables
//
// [Default] returns the built-in [Table]. Tables are immutable values;
// [Table.With] derives a new table carrying additional or replaced sizes,
// which is how configuration files extend the alphabet.
package symbols

import (
	"cmp"
	"maps"
	"slices"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/geometry"
)

// Labels of the multi-character symbols with special layout rules.
const (
	Frac = `\frac`
	Sum  = `\sum`
	Int  = `\int`
	Pi   = `\pi`

	Minus  = "-"
	Equals = "="
)

// Size is a reference glyph size in pixels.
type Size struct {
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// LabeledCrop is a classified symbol instance.
type LabeledCrop struct {
	Label string       `json:"label"`
	Box   geometry.Box `json:"box"`
}

// Table maps labels to their default sizes.
type Table struct {
	sizes map[string]Size
}

var defaultSizes = map[string]Size{
	"0": {29, 48}, "1": {23, 46}, "2": {28, 46}, "3": {29, 48}, "4": {31, 47},
	"5": {28, 48}, "6": {29, 48}, "7": {30, 49}, "8": {29, 48}, "9": {29, 48},

	"a": {31, 32}, "b": {26, 49}, "c": {27, 32}, "d": {32, 49}, "e": {27, 32},
	"f": {34, 63}, "g": {32, 45}, "h": {34, 49}, "i": {18, 47}, "j": {28, 60},
	"k": {31, 49}, "l": {15, 49}, "m": {56, 32}, "n": {37, 32}, "o": {29, 32},
	"p": {36, 44}, "q": {28, 44}, "r": {28, 32}, "s": {25, 32}, "t": {21, 44},
	"u": {35, 32}, "v": {30, 32}, "w": {46, 32}, "x": {34, 32}, "y": {32, 45},
	"z": {29, 32},

	"A": {47, 49}, "B": {49, 47}, "C": {49, 51}, "D": {53, 47}, "E": {50, 47},
	"F": {49, 47}, "G": {49, 51}, "H": {58, 47}, "I": {32, 47}, "J": {39, 49},
	"K": {58, 47}, "L": {41, 47}, "M": {69, 47}, "N": {58, 47}, "O": {48, 51},
	"P": {49, 47}, "Q": {48, 62}, "R": {49, 49}, "S": {40, 51}, "T": {47, 47},
	"U": {47, 49}, "V": {49, 49}, "W": {68, 49}, "X": {57, 47}, "Y": {49, 47},
	"Z": {46, 47},

	"=": {46, 16}, "-": {42, 3}, "+": {46, 46},
	"(": {16, 69}, ")": {16, 69}, "[": {10, 69}, "]": {10, 69},
	",": {8, 20}, ".": {7, 7}, "|": {5, 69},

	Sum: {91, 97}, Pi: {37, 31}, Int: {61, 153},
	// A fraction bar stretches with its operands; only the thickness is
	// stable.
	Frac: {100, 3},
}

var defaultTable = Table{sizes: defaultSizes}

// Default returns the built-in size table.
func Default() Table { return defaultTable }

// With returns a copy of t with the given sizes added or replaced.
func (t Table) With(extra map[string]Size) Table {
	if len(extra) == 0 {
		return t
	}
	sizes := maps.Clone(t.sizes)
	maps.Copy(sizes, extra)
	return Table{sizes: sizes}
}

// Size returns the default size for label.
func (t Table) Size(label string) (Size, error) {
	s, ok := t.sizes[label]
	if !ok {
		return Size{}, errors.New(errors.ErrCodeUnknownLabel, "no default size for label %q", label)
	}
	return s, nil
}

// Has reports whether label is in the table.
func (t Table) Has(label string) bool {
	_, ok := t.sizes[label]
	return ok
}

// Labels returns every known label in sorted order.
func (t Table) Labels() []string {
	return slices.Sorted(maps.Keys(t.sizes))
}

// Len returns the number of labels in the table.
func (t Table) Len() int { return len(t.sizes) }

// CanHaveUpDown reports whether label accepts children above and below it.
func CanHaveUpDown(label string) bool {
	return label == Frac || label == Sum || label == Int
}

// CannotOptimize reports whether the sibling following label must stay in
// its own brace group. Collapsing it would glue a command to the next
// letter, e.g. \pi r into \pir.
func CannotOptimize(label string) bool {
	return label == Sum || label == Int || label == Pi
}

// SortKey orders crops left to right; among crops starting in the same
// column the wider one comes first.
func SortKey(b geometry.Box) int {
	return b.Left*1000 - b.Right
}

// Sort orders crops in place by [SortKey]. The sort is stable, so crops
// with equal keys keep their input order.
func Sort(crops []LabeledCrop) {
	slices.SortStableFunc(crops, func(a, b LabeledCrop) int {
		return cmp.Compare(SortKey(a.Box), SortKey(b.Box))
	})
}
