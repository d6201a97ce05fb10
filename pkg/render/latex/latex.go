// Package latex serializes a normalized symbol tree as LaTeX source.
//
// # Overview
//
// Generation walks the tree from its root and produces a [Fragment], a small
// tagged representation of the output made of [Text], brace [Group] and
// [Seq] values. Each node contributes its label followed by its attached
// children:
//
//	\frac   numerator and denominator from up and down
//	\sum    limits from up or power (^) and down or sub (_)
//	\int    same as \sum
//	other   subscript from sub, then exponent from power
//
// The left sibling follows, then the none sibling, which is written the
// same way as left. After \sum, \int and \pi the sibling is wrapped in a
// protected group so the command does not run into the next letter.
//
// # Simplification
//
// [Simplify] drops the braces of unprotected groups holding one character:
//
//	x^{2}         ->  x^2
//	\frac{2}{1}   ->  \frac{2}1
//
// The numerator of \frac is protected and keeps its braces.
// [SimplifyString] applies the same rule to arbitrary LaTeX source, which
// is how reference expressions are normalized before comparison.
//
// # Errors
//
// The tree must be normalized (see the transform package): a relation
// holding more than one child, or a relation the label does not accept,
// yields an ARITY error. A tree without a root yields NO_ROOT, and a cycle
// yields INTERNAL_ERROR.
package latex

import (
	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/relation"
	"github.com/Amjad50/Fyp/pkg/symbols"
	"github.com/Amjad50/Fyp/pkg/tree"
)

// Options configures LaTeX output.
type Options struct {
	// Simplify removes redundant braces from the output.
	Simplify bool
}

// ToLaTeX generates the LaTeX source for t.
func ToLaTeX(t *tree.Tree, opts Options) (string, error) {
	f, err := Generate(t)
	if err != nil {
		return "", err
	}
	return Render(f, opts), nil
}

// Render stringifies f, simplifying it first when requested.
func Render(f Fragment, opts Options) string {
	if opts.Simplify {
		f = Simplify(f)
	}
	return String(f)
}

// Generate builds the fragment for t starting at its root.
func Generate(t *tree.Tree) (Fragment, error) {
	root, err := t.Root()
	if err != nil {
		return nil, err
	}
	g := &generator{t: t, onPath: make([]bool, t.Len())}
	return g.node(root)
}

type generator struct {
	t *tree.Tree
	// onPath marks the nodes between the root and the node being written.
	// A child shared by two parents is written once per parent.
	onPath []bool
}

func (g *generator) node(i int) (Fragment, error) {
	if g.onPath[i] {
		return nil, errors.New(errors.ErrCodeInternal, "node %d is its own descendant", i)
	}
	g.onPath[i] = true
	defer func() { g.onPath[i] = false }()

	n := g.t.Node(i)
	for _, r := range relation.Forward {
		if k := len(n.Links(r)); k > 1 {
			return nil, errors.New(errors.ErrCodeArity, "%s has %d %s children", n.Label, k, r)
		}
	}

	out := Seq{Text(n.Label)}
	var err error
	switch n.Label {
	case symbols.Frac:
		out, err = g.frac(n, out)
	case symbols.Sum, symbols.Int:
		out, err = g.limits(n, out)
	default:
		out, err = g.plain(n, out)
	}
	if err != nil {
		return nil, err
	}

	for _, r := range []relation.Relation{relation.Left, relation.None} {
		c, ok := n.Child(r)
		if !ok {
			continue
		}
		sib, err := g.node(c)
		if err != nil {
			return nil, err
		}
		if symbols.CannotOptimize(n.Label) {
			out = append(out, Group{Protected: true, Parts: Seq{sib}})
		} else {
			out = append(out, sib)
		}
	}
	return out, nil
}

// group renders child c inside a brace group.
func (g *generator) group(c int, protected bool) (Group, error) {
	f, err := g.node(c)
	if err != nil {
		return Group{}, err
	}
	return Group{Protected: protected, Parts: Seq{f}}, nil
}

// script appends prefix{child} when child exists.
func (g *generator) script(out Seq, prefix string, children ...int) (Seq, error) {
	if len(children) == 0 {
		return out, nil
	}
	grp, err := g.group(children[0], false)
	if err != nil {
		return nil, err
	}
	return append(out, Text(prefix), grp), nil
}

func reject(n *tree.Node, rels ...relation.Relation) error {
	for _, r := range rels {
		if len(n.Links(r)) > 0 {
			return errors.New(errors.ErrCodeArity, "%s cannot have a %s relation", n.Label, r)
		}
	}
	return nil
}

func (g *generator) frac(n *tree.Node, out Seq) (Seq, error) {
	if err := reject(n, relation.Power, relation.Sub); err != nil {
		return nil, err
	}
	up, okUp := n.Child(relation.Up)
	down, okDown := n.Child(relation.Down)
	if !okUp || !okDown {
		return nil, errors.New(errors.ErrCodeArity, `\frac needs both up and down relations`)
	}
	num, err := g.group(up, true)
	if err != nil {
		return nil, err
	}
	den, err := g.group(down, false)
	if err != nil {
		return nil, err
	}
	return append(out, num, den), nil
}

// limits writes the ^ and _ scripts of \sum and \int. Up and power both
// land in the upper limit, down and sub in the lower one.
func (g *generator) limits(n *tree.Node, out Seq) (Seq, error) {
	upper := append(append([]int(nil), n.Links(relation.Up)...), n.Links(relation.Power)...)
	lower := append(append([]int(nil), n.Links(relation.Down)...), n.Links(relation.Sub)...)
	if len(upper) > 1 || len(lower) > 1 {
		return nil, errors.New(errors.ErrCodeArity, `%s cannot have two upper or two lower limits`, n.Label)
	}
	out, err := g.script(out, "^", upper...)
	if err != nil {
		return nil, err
	}
	return g.script(out, "_", lower...)
}

func (g *generator) plain(n *tree.Node, out Seq) (Seq, error) {
	if err := reject(n, relation.Up, relation.Down); err != nil {
		return nil, err
	}
	out, err := g.script(out, "_", n.Links(relation.Sub)...)
	if err != nil {
		return nil, err
	}
	return g.script(out, "^", n.Links(relation.Power)...)
}
