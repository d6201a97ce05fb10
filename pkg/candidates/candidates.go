// Package candidates builds the weighted graph of admissible relations
// between the symbols of an expression.
//
// Every ordered pair of symbols that can see each other (no third symbol
// blocks the line between their centers) is classified. The resulting
// edges are weighted by distance plus the relation's penalty, ready for a
// minimum spanning tree.
//
// Construction takes two passes. The first pass finds which symbols are the
// superscripts and subscripts of which. A symbol's own superscripts and
// subscripts do not block its view of later siblings: in x^2 + 1 the 2 must
// not hide the + from the x. The second pass therefore reclassifies every
// pair with those symbols removed from the occluder set.
package candidates

import (
	"fmt"
	"math"

	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/relation"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

// Edge is a directed candidate relation between two symbols, identified by
// their positions in the input slice.
type Edge struct {
	From     int               `json:"from"`
	To       int               `json:"to"`
	Relation relation.Relation `json:"relation"`
	Weight   float64           `json:"weight"`
}

func (e Edge) String() string {
	return fmt.Sprintf("%d -%s-> %d (%.2f)", e.From, e.Relation, e.To, e.Weight)
}

// Graph holds the candidate edges of an expression.
type Graph struct {
	n         int
	adj       [][]Edge
	relations map[[2]int]relation.Relation
}

// NodeCount returns the number of symbols.
func (g *Graph) NodeCount() int { return g.n }

// Adjacent returns the outgoing edges of node i in ascending target order.
func (g *Graph) Adjacent(i int) []Edge { return g.adj[i] }

// Edges returns every edge ordered by source then target.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, es := range g.adj {
		out = append(out, es...)
	}
	return out
}

// EdgeCount returns the number of candidate edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, es := range g.adj {
		n += len(es)
	}
	return n
}

// Relation returns the relation recorded for the ordered pair (from, to).
func (g *Graph) Relation(from, to int) (relation.Relation, bool) {
	r, ok := g.relations[[2]int{from, to}]
	return r, ok
}

// Builder classifies symbol pairs into a [Graph].
type Builder struct {
	Classifier *relation.Classifier
}

// NewBuilder returns a builder using the given size table.
func NewBuilder(table symbols.Table) *Builder {
	return &Builder{Classifier: relation.NewClassifier(table)}
}

// Build computes the candidate graph for crops. Crops are referred to by
// index; callers should sort them with [symbols.Sort] first.
func (b *Builder) Build(crops []symbols.LabeledCrop) (*Graph, error) {
	n := len(crops)
	boxes := make([]geometry.Box, n)
	for i, c := range crops {
		boxes[i] = c.Box
	}

	consumed := make([]map[int]bool, n)
	for i := range crops {
		consumed[i] = make(map[int]bool)
		for j := range crops {
			r, ok, err := b.relate(crops, boxes, i, j)
			if err != nil {
				return nil, err
			}
			if ok && (r == relation.Sub || r == relation.Power) {
				consumed[i][j] = true
			}
		}
	}

	g := &Graph{
		n:         n,
		adj:       make([][]Edge, n),
		relations: make(map[[2]int]relation.Relation),
	}
	for i := range crops {
		occluders := boxes
		if len(consumed[i]) > 0 {
			occluders = make([]geometry.Box, 0, n)
			for k, box := range boxes {
				if !consumed[i][k] {
					occluders = append(occluders, box)
				}
			}
		}

		for j := range crops {
			r, ok, err := b.relate(crops, occluders, i, j)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			d := Distance(crops[i], crops[j])
			g.adj[i] = append(g.adj[i], Edge{From: i, To: j, Relation: r, Weight: d + r.Penalty()})
			g.relations[[2]int{i, j}] = r
		}
	}
	return g, nil
}

// relate classifies the pair (i, j) unless it is degenerate or occluded.
func (b *Builder) relate(crops []symbols.LabeledCrop, occluders []geometry.Box, i, j int) (relation.Relation, bool, error) {
	if i == j || crops[i].Box == crops[j].Box {
		return 0, false, nil
	}
	if geometry.IsAnotherInBetween(crops[i].Box, crops[j].Box, occluders) {
		return 0, false, nil
	}
	return b.Classifier.Classify(crops[i], crops[j])
}

// Distance returns how far apart two symbols are. It is the distance
// between their centers; when either symbol is a fraction bar, the distance
// to either end of the bar is also considered and the smallest value wins.
func Distance(a, b symbols.LabeledCrop) float64 {
	p, q := a.Box.Center(), b.Box.Center()
	d := geometry.Distance(p, q)

	if a.Label == symbols.Frac {
		for _, end := range barEnds(a.Box) {
			d = math.Min(d, geometry.Distance(end, q))
		}
	}
	if b.Label == symbols.Frac {
		for _, end := range barEnds(b.Box) {
			d = math.Min(d, geometry.Distance(p, end))
		}
	}
	return d
}

func barEnds(b geometry.Box) [2]geometry.Point {
	y := b.Center().Y
	return [2]geometry.Point{
		{X: float64(b.Left), Y: y},
		{X: float64(b.Right), Y: y},
	}
}
