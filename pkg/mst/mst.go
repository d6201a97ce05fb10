// Package mst selects the minimum-weight set of candidate relations that
// connects every symbol of an expression.
//
// [Kruskal] sorts all candidate edges by weight, then takes them from
// cheapest to most expensive, using a disjoint-set forest to skip edges
// whose endpoints are already connected. It stops once n-1 edges have been
// taken.
//
// Candidate edges are directed, but connectivity is not: an edge joins two
// components regardless of its direction, and the chosen edge keeps the
// direction it was recorded with so the relation between the pair can be
// looked up later.
//
// # Determinism
//
// Ties are broken by (weight, from, to), so the same candidate graph always
// yields the same tree. Relations with the none penalty are eligible but
// are taken only when nothing cheaper joins the two components.
package mst

import (
	"cmp"
	"slices"

	"github.com/Amjad50/Fyp/pkg/candidates"
	"github.com/Amjad50/Fyp/pkg/errors"
)

// Kruskal returns the spanning tree of n nodes over edges, ordered by
// (from, to), together with its total weight. It fails with a
// DISCONNECTED error when the edges do not connect all nodes.
func Kruskal(n int, edges []candidates.Edge) ([]candidates.Edge, float64, error) {
	if n <= 0 {
		return nil, 0, errors.New(errors.ErrCodeInvalidInput, "spanning tree of an empty graph")
	}

	sorted := slices.Clone(edges)
	slices.SortStableFunc(sorted, func(a, b candidates.Edge) int {
		return cmp.Or(
			cmp.Compare(a.Weight, b.Weight),
			cmp.Compare(a.From, b.From),
			cmp.Compare(a.To, b.To),
		)
	})

	uf := newUnionFind(n)
	tree := make([]candidates.Edge, 0, n-1)
	var total float64
	for _, e := range sorted {
		if len(tree) == n-1 {
			break
		}
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return nil, 0, errors.New(errors.ErrCodeInvalidInput, "edge %v references a node outside [0, %d)", e, n)
		}
		if uf.union(e.From, e.To) {
			tree = append(tree, e)
			total += e.Weight
		}
	}

	if len(tree) != n-1 {
		return nil, 0, errors.New(errors.ErrCodeDisconnected,
			"symbols form %d separate groups", n-len(tree))
	}

	slices.SortFunc(tree, func(a, b candidates.Edge) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})
	return tree, total, nil
}

// FromGraph is a convenience wrapper running [Kruskal] over a candidate
// graph.
func FromGraph(g *candidates.Graph) ([]candidates.Edge, float64, error) {
	return Kruskal(g.NodeCount(), g.Edges())
}

type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// union merges the sets of a and b and reports whether they were distinct.
func (u *unionFind) union(a, b int) bool {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return false
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		u.parent[ra] = rb
	case u.rank[ra] > u.rank[rb]:
		u.parent[rb] = ra
	default:
		u.parent[rb] = ra
		u.rank[ra]++
	}
	return true
}
