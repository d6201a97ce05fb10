package tree

import (
	"github.com/Amjad50/Fyp/pkg/candidates"
	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// Build creates the tree of crops connected by the spanning edges. The
// relation of every edge is looked up in g for that exact ordered pair;
// a spanning edge without a recorded relation means g and spanning were not
// computed from the same input.
func Build(crops []symbols.LabeledCrop, g *candidates.Graph, spanning []candidates.Edge) (*Tree, error) {
	if g.NodeCount() != len(crops) {
		return nil, errors.New(errors.ErrCodeInternal,
			"candidate graph has %d nodes for %d crops", g.NodeCount(), len(crops))
	}

	t := New(crops)
	for _, e := range spanning {
		r, ok := g.Relation(e.From, e.To)
		if !ok {
			return nil, errors.New(errors.ErrCodeNoRelation,
				"could not find relation from %d to %d", e.From, e.To)
		}
		if err := t.AddConnection(e.From, e.To, r); err != nil {
			return nil, err
		}
	}
	return t, nil
}
