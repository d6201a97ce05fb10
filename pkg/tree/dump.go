package tree

import (
	"encoding/json"
	"strings"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/relation"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// String returns a debug dump with one line per node:
//
//	\frac -> {up: [x], down: [y]}
//	x -> {up_inverse: [\frac]}
//
// Relations appear in table order (forward relations, then inverses);
// empty relations are omitted. Every line ends with a newline.
func (t *Tree) String() string {
	var b strings.Builder
	for _, n := range t.nodes {
		b.WriteString(n.Label)
		b.WriteString(" -> {")
		first := true
		for _, r := range relation.All {
			links := n.links[r]
			if len(links) == 0 {
				continue
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			b.WriteString(r.String())
			b.WriteString(": [")
			for i, p := range links {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(t.nodes[p].Label)
			}
			b.WriteString("]")
		}
		b.WriteString("}\n")
	}
	return b.String()
}

// NodeView is the exported form of a node: its forward relations as
// positions of the related nodes.
type NodeView struct {
	Position  int              `json:"position"`
	Label     string           `json:"label"`
	Box       [4]int           `json:"box"`
	Relations map[string][]int `json:"relations"`
}

// Export returns one [NodeView] per node in position order. Inverse
// relations and empty relations are left out.
func (t *Tree) Export() []NodeView {
	out := make([]NodeView, len(t.nodes))
	for i, n := range t.nodes {
		v := NodeView{
			Position:  n.Position,
			Label:     n.Label,
			Box:       [4]int{n.Box.Left, n.Box.Top, n.Box.Right, n.Box.Bottom},
			Relations: make(map[string][]int),
		}
		for _, r := range relation.Forward {
			if links := n.links[r]; len(links) > 0 {
				v.Relations[r.String()] = append([]int(nil), links...)
			}
		}
		out[i] = v
	}
	return out
}

// MarshalJSON encodes the tree as the array returned by [Tree.Export].
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Export())
}

// FromExport rebuilds a tree from the views returned by [Tree.Export].
// Views must be listed by position starting at 0. Relation names are
// matched without regard to case. Within a relation, children keep the
// order they are listed in.
func FromExport(views []NodeView) (*Tree, error) {
	crops := make([]symbols.LabeledCrop, len(views))
	for i, v := range views {
		if v.Position != i {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %d listed at index %d", v.Position, i)
		}
		if err := errors.ValidateLabel(v.Label); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "node %d", i)
		}
		crops[i] = symbols.LabeledCrop{
			Label: v.Label,
			Box:   geometry.NewBox(v.Box[0], v.Box[1], v.Box[2], v.Box[3]),
		}
	}

	t := New(crops)
	for _, v := range views {
		var links [relation.Count][]int
		seen := make(map[relation.Relation]bool, len(v.Relations))
		for name, children := range v.Relations {
			rel, err := relation.Parse(name)
			if err != nil || rel.IsInverse() {
				return nil, errors.New(errors.ErrCodeInvalidInput, "node %d: unknown relation %q", v.Position, name)
			}
			if seen[rel] {
				return nil, errors.New(errors.ErrCodeInvalidInput, "node %d: relation %s listed twice", v.Position, rel)
			}
			seen[rel] = true
			links[rel] = children
		}
		for _, rel := range relation.Forward {
			for _, child := range links[rel] {
				if err := t.AddConnection(v.Position, child, rel); err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", v.Position)
				}
			}
		}
	}
	return t, nil
}
