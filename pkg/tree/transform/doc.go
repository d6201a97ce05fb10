// Package transform rewrites a raw symbol tree into a normalized tree that
// can be serialized as LaTeX.
//
// # Overview
//
// The spanning tree chosen over candidate relations is rarely in a form the
// LaTeX generator can use directly. A fraction bar may hold every symbol of
// its numerator under up, or hold the middle digit of a number instead of
// the first. This package provides the rewriting passes that fix this,
// leaving a tree where:
//
//   - Each node has at most one up, down, power and sub child
//   - Vertical relations attach to the first symbol of a row
//   - Adjacent exponents are not chained to each other
//
// The [Optimize] function applies the passes in the correct order.
//
// # Collapsing Children
//
// [CollapseChildren] turns several children under one relation into a row.
// The children are sorted left to right and chained with left edges; only
// the leftmost stays attached to the parent:
//
//	Before: \frac -up-> x, \frac -up-> +
//	After:  \frac -up-> x, x -left-> +
//
// # Reparenting
//
// [ReparentToOwner] moves a vertical relation from a symbol to the symbol
// that owns it through power, sub or left, repeating until the relation
// reaches the first symbol of its row:
//
//	Before: \frac -up-> 2, 1 -left-> 2
//	After:  \frac -up-> 1, 1 -left-> 2
//
// A power or sub relation is never moved to a symbol left of its parent.
//
// # Adjacent Powers
//
// [FixAdjacentPowers] handles e^2 m^3, where the exponents 2 and 3 are
// closer to each other than e is to m and end up chained by left. The chain
// link is dropped and e is linked to m instead.
//
// # Termination
//
// The passes are driven by worklists of (node, relation) pairs. Each
// rewrite strictly reduces the number of surplus children or moves a
// relation along a tree path that cannot revisit a node, so the work is
// bounded by the tree size. Exceeding the bound means the input was not a
// tree and is reported as an internal error. Running [Optimize] on an
// already normalized tree changes nothing.
//
// A pass that fails leaves the tree partially rewritten; it should be
// discarded.
package transform
