package graph

import (
	"slices"
	"testing"
)

// ids collects and sorts node ids, the order-free fingerprint of a result.
func ids(nodes []*Node) []NodeID {
	out := make([]NodeID, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	slices.Sort(out)
	return out
}

func TestQueryApply_MatchesTraversalFilter(t *testing.T) {
	// A grown derivation gives a tree large enough for store order and
	// traversal order to genuinely differ.
	g, err := New(NewSubgraph(cellA{}), Options{Rules: algaeRules()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for range 5 {
		if err := g.AdvanceGeneration(); err != nil {
			t.Fatalf("AdvanceGeneration() error = %v", err)
		}
	}

	q := Query{Variant: "A"}

	var want []NodeID
	for n := range g.DepthFirst() {
		if n.Variant() == "A" {
			want = append(want, n.ID())
		}
	}
	slices.Sort(want)

	got := ids(q.Apply(g))
	if !slices.Equal(got, want) {
		t.Errorf("Apply() ids = %v, want %v", got, want)
	}
}

func TestQueryApply_Idempotent(t *testing.T) {
	g := newPlant(t, Options{})
	q := Query{Variant: "leaf"}

	first := ids(q.Apply(g))
	second := ids(q.Apply(g))
	if !slices.Equal(first, second) {
		t.Errorf("repeated Apply() = %v, then %v", first, second)
	}
}

func TestQueryApply_EmptyResultIsNotAnError(t *testing.T) {
	g := newPlant(t, Options{})

	if got := (Query{Variant: "flower"}).Apply(g); got != nil {
		t.Errorf("Apply() = %v, want nil", got)
	}
}

func TestQueryApply_PredicateNarrowsByTopology(t *testing.T) {
	g := newPlant(t, Options{})

	// Leaves that grow on a non-root stem: only the inner one qualifies.
	q := Query{
		Variant: "leaf",
		Where: func(n *Node) bool {
			p, err := n.Parent()
			return err == nil && !p.IsRoot()
		},
	}
	got := q.Apply(g)
	if len(got) != 1 {
		t.Fatalf("Apply() returned %d leaves, want 1", len(got))
	}
	if p, _ := got[0].Parent(); p.Variant() != "stem" || p.IsRoot() {
		t.Error("selected leaf does not sit on an inner stem")
	}
}

func TestQuery_ReusableAcrossGraphs(t *testing.T) {
	q := Query{Variant: "leaf", Where: func(n *Node) bool {
		return n.Data().(*leaf).area > 1
	}}

	g1 := newPlant(t, Options{})
	g2 := newPlant(t, Options{})

	if n1, n2 := len(q.Apply(g1)), len(q.Apply(g2)); n1 != 1 || n2 != 1 {
		t.Errorf("Apply() across graphs = %d, %d leaves, want 1, 1", n1, n2)
	}
}

func TestSelect_DelegatesToApply(t *testing.T) {
	g := newPlant(t, Options{})
	q := Query{Variant: "bud"}

	if got, want := ids(g.Select(q)), ids(q.Apply(g)); !slices.Equal(got, want) {
		t.Errorf("Select() = %v, Apply() = %v", got, want)
	}
}
