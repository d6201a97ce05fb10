// Package tree provides the symbol tree of a handwritten expression: one
// node per recognized symbol, connected by structural relations.
//
// # Overview
//
// A [Tree] is an arena of [Node] values indexed by position, the index of
// the symbol in the sorted input. Relations are stored on both endpoints:
// an edge A -power-> B is recorded in A's power list and in B's
// power_inverse list. [Tree.AddConnection] and [Tree.RemoveConnection]
// always update both sides, so the two views never disagree.
//
// # Lifecycle
//
// [Build] creates a tree from the sorted crops, the candidate graph and the
// spanning tree chosen over it. The node count is fixed from then on. The
// raw tree usually has too many children under one relation (several
// symbols above one fraction bar, for instance); [transform] rewrites
// it until every node has at most one child per relation, after which
// [latex] can serialize it.
//
// # Ownership
//
// A tree is not safe for concurrent mutation. Callers needing to share one
// should synchronize externally or work on a [Tree.Clone].
//
// [transform]: github.com/Amjad50/Fyp/pkg/tree/transform
// [latex]: github.com/Amjad50/Fyp/pkg/render/latex
package tree

import (
	"slices"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/relation"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// Node is one symbol in the tree.
type Node struct {
	Position int
	Label    string
	Box      geometry.Box

	links [relation.Count][]int
}

// Links returns the positions connected to n under r, in insertion order.
// The returned slice must not be modified.
func (n *Node) Links(r relation.Relation) []int {
	return n.links[r]
}

// Child returns the single position under forward relation r, if any.
func (n *Node) Child(r relation.Relation) (int, bool) {
	if len(n.links[r]) == 0 {
		return 0, false
	}
	return n.links[r][0], true
}

// IsRoot reports whether n has no inbound edge under any relation.
func (n *Node) IsRoot() bool {
	for _, r := range relation.Forward {
		if len(n.links[r.Inverse()]) > 0 {
			return false
		}
	}
	return true
}

// Normalized reports whether every forward relation of n holds at most one
// child.
func (n *Node) Normalized() bool {
	for _, r := range relation.Forward {
		if len(n.links[r]) > 1 {
			return false
		}
	}
	return true
}

// Tree is an arena of symbol nodes.
type Tree struct {
	nodes []*Node
}

// New returns a tree with one unconnected node per crop.
func New(crops []symbols.LabeledCrop) *Tree {
	t := &Tree{nodes: make([]*Node, len(crops))}
	for i, c := range crops {
		t.nodes[i] = &Node{Position: i, Label: c.Label, Box: c.Box}
	}
	return t
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node at position i.
func (t *Tree) Node(i int) *Node { return t.nodes[i] }

// Nodes returns all nodes in position order.
func (t *Tree) Nodes() []*Node { return t.nodes }

// Children returns the positions under forward relation r of node i.
func (t *Tree) Children(i int, r relation.Relation) []int {
	return t.nodes[i].links[r]
}

// Parents returns the positions that hold node i under forward relation r.
func (t *Tree) Parents(i int, r relation.Relation) []int {
	return t.nodes[i].links[r.Inverse()]
}

// EdgeCount returns the number of forward edges.
func (t *Tree) EdgeCount() int {
	n := 0
	for _, nd := range t.nodes {
		for _, r := range relation.Forward {
			n += len(nd.links[r])
		}
	}
	return n
}

func (t *Tree) check(from, to int, r relation.Relation) error {
	if from < 0 || from >= len(t.nodes) || to < 0 || to >= len(t.nodes) {
		return errors.New(errors.ErrCodeInvalidConnection, "connection %d -> %d out of range", from, to)
	}
	if r.IsInverse() || r >= relation.Count {
		return errors.New(errors.ErrCodeInvalidConnection, "%v is not a forward relation", r)
	}
	return nil
}

// AddConnection links from -r-> to and the matching inverse edge.
// Adding an edge that already exists is an error.
func (t *Tree) AddConnection(from, to int, r relation.Relation) error {
	if err := t.check(from, to, r); err != nil {
		return err
	}
	src, dst := t.nodes[from], t.nodes[to]
	if slices.Contains(src.links[r], to) {
		return errors.New(errors.ErrCodeInvalidConnection,
			"connection from %d to %d with relation %s already exists", from, to, r)
	}
	if slices.Contains(dst.links[r.Inverse()], from) {
		return errors.New(errors.ErrCodeInvalidConnection,
			"connection from %d to %d with relation %s already exists", to, from, r.Inverse())
	}
	src.links[r] = append(src.links[r], to)
	dst.links[r.Inverse()] = append(dst.links[r.Inverse()], from)
	return nil
}

// RemoveConnection unlinks from -r-> to and the matching inverse edge.
// Removing an edge that does not exist is an error.
func (t *Tree) RemoveConnection(from, to int, r relation.Relation) error {
	if err := t.check(from, to, r); err != nil {
		return err
	}
	src, dst := t.nodes[from], t.nodes[to]
	i := slices.Index(src.links[r], to)
	if i < 0 {
		return errors.New(errors.ErrCodeInvalidConnection,
			"node %d could not be found in relation %s of node %d", to, r, from)
	}
	j := slices.Index(dst.links[r.Inverse()], from)
	if j < 0 {
		return errors.New(errors.ErrCodeInvalidConnection,
			"node %d could not be found in relation %s of node %d", from, r.Inverse(), to)
	}
	src.links[r] = slices.Delete(src.links[r], i, i+1)
	dst.links[r.Inverse()] = slices.Delete(dst.links[r.Inverse()], j, j+1)
	return nil
}

// Root returns the position of the node with no inbound edges. Among
// several such nodes the one whose box starts furthest left wins, then the
// lowest position.
func (t *Tree) Root() (int, error) {
	root := -1
	for _, n := range t.nodes {
		if !n.IsRoot() {
			continue
		}
		if root < 0 || n.Box.Left < t.nodes[root].Box.Left {
			root = n.Position
		}
	}
	if root < 0 {
		return 0, errors.New(errors.ErrCodeNoRoot, "could not find root node among %d nodes", len(t.nodes))
	}
	return root, nil
}

// Normalized reports whether every node holds at most one child per forward
// relation.
func (t *Tree) Normalized() bool {
	for _, n := range t.nodes {
		if !n.Normalized() {
			return false
		}
	}
	return true
}

// Validate checks that every forward edge has its inverse and vice versa.
func (t *Tree) Validate() error {
	for _, n := range t.nodes {
		for _, r := range relation.All {
			for _, other := range n.links[r] {
				if other < 0 || other >= len(t.nodes) {
					return errors.New(errors.ErrCodeInternal, "node %d links to missing node %d", n.Position, other)
				}
				if !slices.Contains(t.nodes[other].links[r.Inverse()], n.Position) {
					return errors.New(errors.ErrCodeInternal,
						"edge %d -%s-> %d has no mirror", n.Position, r, other)
				}
			}
		}
	}
	return nil
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	c := &Tree{nodes: make([]*Node, len(t.nodes))}
	for i, n := range t.nodes {
		cp := &Node{Position: n.Position, Label: n.Label, Box: n.Box}
		for r := range n.links {
			cp.links[r] = slices.Clone(n.links[r])
		}
		c.nodes[i] = cp
	}
	return c
}

// Equal reports whether t and o have the same nodes and the same edges in
// the same order.
func (t *Tree) Equal(o *Tree) bool {
	if len(t.nodes) != len(o.nodes) {
		return false
	}
	for i, n := range t.nodes {
		m := o.nodes[i]
		if n.Label != m.Label || n.Box != m.Box {
			return false
		}
		for r := range n.links {
			if !slices.Equal(n.links[r], m.links[r]) {
				return false
			}
		}
	}
	return true
}
