// Package relation defines the structural relations between two symbols of
// a handwritten expression and infers them from symbol geometry.
//
// # Relations
//
// There are six forward relations. [Left] sequences symbols on one line,
// [Power] and [Sub] attach superscripts and subscripts, [Up] and [Down]
// attach the operands of fractions and the limits of large operators, and
// [None] records that two symbols touch without a recognizable layout. Each
// forward relation has an inverse, obtained with [Relation.Inverse], used
// for the parent side of an edge.
//
// # Classification
//
// [Classifier.Classify] looks at an ordered pair of labeled crops and
// decides which relation best explains how the second is placed relative
// to the first. The decision compares the angle between the symbols'
// baselines and their sizes relative to the default glyph sizes. The
// thresholds are calibrated against the font metrics in package symbols.
package relation

import (
	"fmt"
	"strings"
)

// Relation is a directed structural relation between two symbols.
type Relation uint8

// Forward relations followed by their inverses. The order is the iteration
// order of debug dumps and exports.
const (
	Left Relation = iota
	Power
	Sub
	Up
	Down
	None

	LeftInverse
	PowerInverse
	SubInverse
	UpInverse
	DownInverse
	NoneInverse
)

// NumForward is the number of forward relations.
const NumForward = 6

// Count is the number of relations including inverses.
const Count = 2 * NumForward

var names = [Count]string{
	"left", "power", "sub", "up", "down", "none",
	"left_inverse", "power_inverse", "sub_inverse", "up_inverse", "down_inverse", "none_inverse",
}

// Forward lists the forward relations in table order.
var Forward = [NumForward]Relation{Left, Power, Sub, Up, Down, None}

// All lists every relation in table order.
var All = [Count]Relation{
	Left, Power, Sub, Up, Down, None,
	LeftInverse, PowerInverse, SubInverse, UpInverse, DownInverse, NoneInverse,
}

// Vertical lists the relations that may hold at most one child after
// optimization, in the order the optimizer visits them.
var Vertical = [4]Relation{Up, Down, Power, Sub}

// String returns the relation name used in dumps and JSON.
func (r Relation) String() string {
	if int(r) < len(names) {
		return names[r]
	}
	return fmt.Sprintf("relation(%d)", uint8(r))
}

// IsInverse reports whether r is an inverse relation.
func (r Relation) IsInverse() bool { return r >= LeftInverse && r < Count }

// Inverse returns the mirrored relation: left becomes left_inverse and
// left_inverse becomes left.
func (r Relation) Inverse() Relation {
	if r.IsInverse() {
		return r - NumForward
	}
	return r + NumForward
}

// Penalty is the weight added to the distance between two symbols when
// they are joined by r. None is effectively excluded unless nothing else
// connects the symbols.
func (r Relation) Penalty() float64 {
	if r == None {
		return 1e6
	}
	return 0
}

// Parse returns the relation named s.
func Parse(s string) (Relation, error) {
	for i, n := range names {
		if strings.EqualFold(n, s) {
			return Relation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown relation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Relation) MarshalText() ([]byte, error) {
	if int(r) >= len(names) {
		return nil, fmt.Errorf("invalid relation %d", uint8(r))
	}
	return []byte(names[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Relation) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
