package mst

import (
	"testing"

	"github.com/Amjad50/Fyp/pkg/candidates"
	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/relation"
)

func edge(from, to int, w float64) candidates.Edge {
	return candidates.Edge{From: from, To: to, Relation: relation.Left, Weight: w}
}

func TestKruskal(t *testing.T) {
	edges := []candidates.Edge{
		edge(0, 1, 4),
		edge(0, 2, 1),
		edge(2, 1, 2),
		edge(1, 3, 5),
		edge(2, 3, 8),
	}

	tree, total, err := Kruskal(4, edges)
	if err != nil {
		t.Fatalf("Kruskal() error: %v", err)
	}
	if len(tree) != 3 {
		t.Fatalf("Kruskal() returned %d edges, want 3", len(tree))
	}
	if total != 8 {
		t.Errorf("total weight = %v, want 8", total)
	}

	want := [][2]int{{0, 2}, {1, 3}, {2, 1}}
	for i, e := range tree {
		if e.From != want[i][0] || e.To != want[i][1] {
			t.Errorf("edge %d = %d->%d, want %d->%d", i, e.From, e.To, want[i][0], want[i][1])
		}
	}
}

func TestKruskalSpansAllNodes(t *testing.T) {
	const n = 6
	var edges []candidates.Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, edge(i, j, float64((i*7+j*3)%5+1)))
		}
	}

	tree, _, err := Kruskal(n, edges)
	if err != nil {
		t.Fatal(err)
	}
	if len(tree) != n-1 {
		t.Fatalf("len(tree) = %d, want %d", len(tree), n-1)
	}

	uf := newUnionFind(n)
	for _, e := range tree {
		if !uf.union(e.From, e.To) {
			t.Errorf("edge %v closes a cycle", e)
		}
	}
}

func TestKruskalTieBreak(t *testing.T) {
	edges := []candidates.Edge{
		edge(1, 2, 1),
		edge(0, 2, 1),
		edge(0, 1, 1),
	}
	tree, _, err := Kruskal(3, edges)
	if err != nil {
		t.Fatal(err)
	}
	if tree[0].From != 0 || tree[0].To != 1 || tree[1].From != 0 || tree[1].To != 2 {
		t.Errorf("tie-break picked %v, want 0->1 and 0->2", tree)
	}
}

func TestKruskalPrefersCheapRelations(t *testing.T) {
	none := candidates.Edge{From: 0, To: 2, Relation: relation.None, Weight: 1 + relation.None.Penalty()}
	edges := []candidates.Edge{none, edge(0, 1, 50), edge(1, 2, 50)}

	tree, _, err := Kruskal(3, edges)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range tree {
		if e.Relation == relation.None {
			t.Errorf("none edge chosen over a cheaper path: %v", tree)
		}
	}

	tree, _, err = Kruskal(3, []candidates.Edge{none, edge(0, 1, 50)})
	if err != nil {
		t.Fatal(err)
	}
	if tree[1].Relation != relation.None {
		t.Errorf("none edge not used as last resort: %v", tree)
	}
}

func TestKruskalDisconnected(t *testing.T) {
	_, _, err := Kruskal(4, []candidates.Edge{edge(0, 1, 1), edge(2, 3, 1)})
	if !errors.Is(err, errors.ErrCodeDisconnected) {
		t.Errorf("Kruskal() error = %v, want DISCONNECTED", err)
	}
}

func TestKruskalSingleNode(t *testing.T) {
	tree, total, err := Kruskal(1, nil)
	if err != nil || len(tree) != 0 || total != 0 {
		t.Errorf("Kruskal(1) = %v, %v, %v", tree, total, err)
	}
	if _, _, err := Kruskal(0, nil); err == nil {
		t.Error("Kruskal(0) succeeded")
	}
}
