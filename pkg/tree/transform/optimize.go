package transform

import (
	"cmp"
	"slices"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/relation"
	"github.com/Amjad50/Fyp/pkg/tree"
)

// Optimize normalizes t in place.
func Optimize(t *tree.Tree) error {
	if _, err := CollapseChildren(t); err != nil {
		return err
	}
	if _, err := ReparentToOwner(t); err != nil {
		return err
	}
	_, err := FixAdjacentPowers(t)
	return err
}

type item struct {
	node int
	rel  relation.Relation
}

func allPairs(t *tree.Tree) []item {
	items := make([]item, 0, t.Len()*len(relation.Vertical))
	for i := 0; i < t.Len(); i++ {
		for _, r := range relation.Vertical {
			items = append(items, item{i, r})
		}
	}
	return items
}

// CollapseChildren chains multiple children under one vertical relation
// into a left-linked row and keeps only the leftmost attached. It returns
// the number of rewrites.
func CollapseChildren(t *tree.Tree) (int, error) {
	surplus := 0
	for _, it := range allPairs(t) {
		surplus += max(0, len(t.Children(it.node, it.rel))-1)
	}

	rewrites := 0
	for _, it := range allPairs(t) {
		children := slices.Clone(t.Children(it.node, it.rel))
		if len(children) <= 1 {
			continue
		}
		if rewrites++; rewrites > surplus {
			return rewrites, errors.New(errors.ErrCodeInternal, "collapsing children did not converge")
		}

		sorted := slices.Clone(children)
		slices.SortStableFunc(sorted, func(a, b int) int {
			return cmp.Compare(t.Node(a).Box.Left, t.Node(b).Box.Left)
		})
		for i := 0; i+1 < len(sorted); i++ {
			if err := connectToLastLeft(t, sorted[i], sorted[i+1]); err != nil {
				return rewrites, err
			}
		}
		for _, c := range children {
			if err := t.RemoveConnection(it.node, c, it.rel); err != nil {
				return rewrites, err
			}
		}
		if err := t.AddConnection(it.node, sorted[0], it.rel); err != nil {
			return rewrites, err
		}
	}
	return rewrites, nil
}

// connectToLastLeft walks the left chain starting at from and links its
// last element to to.
func connectToLastLeft(t *tree.Tree, from, to int) error {
	cur := from
	for steps := 0; ; steps++ {
		lefts := t.Children(cur, relation.Left)
		if len(lefts) == 0 {
			break
		}
		if len(lefts) > 1 {
			return errors.New(errors.ErrCodeArity, "node %d has %d left children", cur, len(lefts))
		}
		if steps > t.Len() {
			return errors.New(errors.ErrCodeInternal, "left chain from node %d is cyclic", from)
		}
		cur = lefts[0]
	}
	if cur == to {
		return errors.New(errors.ErrCodeInternal, "node %d is already at the end of its own row", to)
	}
	return t.AddConnection(cur, to, relation.Left)
}

// owners lists the relations through which a child can belong to a row.
var owners = [3]relation.Relation{relation.Power, relation.Sub, relation.Left}

// ReparentToOwner moves each vertical relation from its child to the
// child's owner under power, sub or left, until it rests on the first
// symbol of the row. It returns the number of moves.
func ReparentToOwner(t *tree.Tree) (int, error) {
	bound := len(relation.Vertical) * t.Len() * t.Len()
	queue := allPairs(t)
	moves := 0

	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		for {
			moved, from, to, err := reparentOnce(t, it.node, it.rel)
			if err != nil {
				return moves, err
			}
			if !moved {
				break
			}
			if moves++; moves > bound {
				return moves, errors.New(errors.ErrCodeInternal, "reparenting did not converge")
			}
			queue = append(queue, holders(t, from)...)
			queue = append(queue, holders(t, to)...)
		}
	}
	return moves, nil
}

// reparentOnce moves the rel child of node one step toward its owner.
func reparentOnce(t *tree.Tree, node int, rel relation.Relation) (bool, int, int, error) {
	children := t.Children(node, rel)
	if len(children) == 0 {
		return false, 0, 0, nil
	}
	if len(children) > 1 {
		return false, 0, 0, errors.New(errors.ErrCodeArity,
			"node %d has %d %s children", node, len(children), rel)
	}
	child := children[0]

	for _, inner := range owners {
		if inner == rel {
			continue
		}
		parents := t.Parents(child, inner)
		if len(parents) == 0 {
			continue
		}
		if len(parents) > 1 {
			return false, 0, 0, errors.New(errors.ErrCodeArity,
				"node %d held by %d %s parents", child, len(parents), inner)
		}
		owner := parents[0]
		if (rel == relation.Power || rel == relation.Sub) && t.Node(owner).Box.Left < t.Node(node).Box.Left {
			continue
		}

		if err := t.RemoveConnection(node, child, rel); err != nil {
			return false, 0, 0, err
		}
		if err := t.AddConnection(node, owner, rel); err != nil {
			return false, 0, 0, err
		}
		return true, child, owner, nil
	}
	return false, 0, 0, nil
}

// holders returns the (node, relation) pairs holding n under a vertical
// relation.
func holders(t *tree.Tree, n int) []item {
	var items []item
	for _, r := range relation.Vertical {
		for _, p := range t.Parents(n, r) {
			items = append(items, item{p, r})
		}
	}
	return items
}

// FixAdjacentPowers relinks rows whose exponents were chained to each other
// instead of to their bases. It returns the number of relinked chains.
func FixAdjacentPowers(t *tree.Tree) (int, error) {
	fixes := 0
	for i := 0; i < t.Len(); i++ {
		for _, rel := range []relation.Relation{relation.Power, relation.Sub} {
			children := t.Children(i, rel)
			if len(children) == 0 {
				continue
			}
			if len(children) > 1 {
				return fixes, errors.New(errors.ErrCodeArity, "node %d has %d %s children", i, len(children), rel)
			}

			cur := children[0]
			for steps := 0; len(t.Children(cur, relation.Left)) > 0; steps++ {
				if steps > t.Len() {
					return fixes, errors.New(errors.ErrCodeInternal, "left chain from node %d is cyclic", children[0])
				}
				lefts := t.Children(cur, relation.Left)
				if len(lefts) > 1 {
					return fixes, errors.New(errors.ErrCodeArity, "node %d has %d left children", cur, len(lefts))
				}
				last := cur
				cur = lefts[0]

				bases := t.Parents(cur, relation.Power)
				if len(bases) == 0 {
					continue
				}
				if len(bases) > 1 {
					return fixes, errors.New(errors.ErrCodeArity, "node %d is the power of %d nodes", cur, len(bases))
				}
				if err := t.AddConnection(i, bases[0], relation.Left); err != nil {
					return fixes, err
				}
				if err := t.RemoveConnection(last, cur, relation.Left); err != nil {
					return fixes, err
				}
				fixes++
			}
		}
	}
	return fixes, nil
}
