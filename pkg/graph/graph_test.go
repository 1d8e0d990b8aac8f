package graph

import (
	"errors"
	"fmt"
	"testing"
)

// Shared payload vocabulary for the package tests. cellA/cellB drive the
// classic two-letter derivations; the plant organs exercise branching,
// payload mutation and relational queries.

type cellA struct{}

func (cellA) Variant() Variant { return "A" }

type cellB struct{}

func (cellB) Variant() Variant { return "B" }

type cellC struct{}

func (cellC) Variant() Variant { return "C" }

type stem struct{ length int }

func (*stem) Variant() Variant { return "stem" }

type leaf struct{ area int }

func (*leaf) Variant() Variant { return "leaf" }

type bud struct{}

func (bud) Variant() Variant { return "bud" }

// preorder collects the deterministic traversal for fixture indexing.
func preorder(t *testing.T, g *Graph) []*Node {
	t.Helper()
	var out []*Node
	if err := g.Traverse(func(n *Node) error {
		out = append(out, n)
		return nil
	}); err != nil {
		t.Fatalf("Traverse() error = %v", err)
	}
	return out
}

// variants renders the pre-order variant sequence, the canonical shape
// fingerprint used across these tests.
func variants(t *testing.T, g *Graph) string {
	t.Helper()
	s := ""
	for _, n := range preorder(t, g) {
		s += string(n.Variant())
	}
	return s
}

// newPlant builds the three-level fixture used by the relational tests:
//
//	stem          id 1
//	├── leaf      id 2
//	├── stem      id 3
//	│   ├── leaf  id 4
//	│   └── bud   id 5
//	└── bud       id 6
func newPlant(t *testing.T, opts Options) *Graph {
	t.Helper()
	inner := NewSubgraph(&stem{length: 5}).
		Branch(NewSubgraph(&leaf{area: 2})).
		Append(bud{})
	axiom := NewSubgraph(&stem{length: 10}).
		Branch(NewSubgraph(&leaf{area: 1})).
		Branch(inner).
		Append(bud{})
	g, err := New(axiom, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return g
}

// algaeRules is the two-letter derivation A -> AB, B -> A whose node counts
// follow the Fibonacci sequence.
func algaeRules() []Rule {
	return []Rule{
		{
			Variant: "A",
			Produce: func(*Node, []*Node) (*Subgraph, error) {
				return NewSubgraph(cellA{}).Append(cellB{}), nil
			},
		},
		{
			Variant: "B",
			Produce: func(*Node, []*Node) (*Subgraph, error) {
				return NewSubgraph(cellA{}), nil
			},
		},
	}
}

func TestNew_EmptyAxiom(t *testing.T) {
	if _, err := New(nil, Options{}); !errors.Is(err, ErrEmptySubgraph) {
		t.Errorf("New(nil) error = %v, want ErrEmptySubgraph", err)
	}
	if _, err := New(&Subgraph{}, Options{}); !errors.Is(err, ErrEmptySubgraph) {
		t.Errorf("New(empty) error = %v, want ErrEmptySubgraph", err)
	}
}

func TestNew_NilAxiomData(t *testing.T) {
	if _, err := New(NewSubgraph(nil), Options{}); !errors.Is(err, ErrNilData) {
		t.Errorf("New() error = %v, want ErrNilData", err)
	}
}

func TestNew_NilProduce(t *testing.T) {
	rules := []Rule{{Variant: "A"}}
	if _, err := New(NewSubgraph(cellA{}), Options{Rules: rules}); !errors.Is(err, ErrNilProduce) {
		t.Errorf("New() error = %v, want ErrNilProduce", err)
	}
}

func TestNew_InstantiatesAxiom(t *testing.T) {
	g := newPlant(t, Options{})

	if g.Len() != 6 {
		t.Errorf("Len() = %d, want 6", g.Len())
	}
	if g.Generation() != 0 {
		t.Errorf("Generation() = %d, want 0", g.Generation())
	}
	if got := variants(t, g); got != "stemleafstemleafbudbud" {
		t.Errorf("pre-order variants = %q, want %q", got, "stemleafstemleafbudbud")
	}
	if !g.Root().IsRoot() {
		t.Error("Root().IsRoot() = false, want true")
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestAdvanceGeneration_FibonacciGrowth(t *testing.T) {
	g, err := New(NewSubgraph(cellA{}), Options{Rules: algaeRules()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := []int{1, 2, 3, 5, 8, 13}
	for gen, n := range want {
		if g.Len() != n {
			t.Fatalf("generation %d: Len() = %d, want %d", gen, g.Len(), n)
		}
		if g.Generation() != gen {
			t.Fatalf("Generation() = %d, want %d", g.Generation(), gen)
		}
		if err := g.Validate(); err != nil {
			t.Fatalf("generation %d: Validate() error = %v", gen, err)
		}
		if gen < len(want)-1 {
			if err := g.AdvanceGeneration(); err != nil {
				t.Fatalf("AdvanceGeneration() error = %v", err)
			}
		}
	}
}

func TestAdvanceGeneration_CarriesUnmatchedNodes(t *testing.T) {
	// Only stems have a rule; leaves and buds must survive with their
	// ids and payloads intact.
	rules := []Rule{{
		Variant: "stem",
		Produce: func(n *Node, _ []*Node) (*Subgraph, error) {
			return NewSubgraph(n.Data()), nil
		},
	}}
	g := newPlant(t, Options{Rules: rules})

	leafIDs := map[NodeID]NodeData{}
	for _, n := range g.Select(Query{Variant: "leaf"}) {
		leafIDs[n.ID()] = n.Data()
	}

	if err := g.AdvanceGeneration(); err != nil {
		t.Fatalf("AdvanceGeneration() error = %v", err)
	}

	for id, data := range leafIDs {
		n, err := g.Node(id)
		if err != nil {
			t.Fatalf("Node(%d) error = %v, want carried leaf", id, err)
		}
		if n.Data() != data {
			t.Errorf("Node(%d).Data() changed across generations", id)
		}
	}
}

func TestAdvanceGeneration_AbortsAtomically(t *testing.T) {
	boom := errors.New("boom")
	rules := []Rule{
		{
			Variant: "A",
			Produce: func(*Node, []*Node) (*Subgraph, error) {
				return NewSubgraph(cellA{}).Append(cellB{}), nil
			},
		},
		{
			Variant: "B",
			Produce: func(*Node, []*Node) (*Subgraph, error) {
				return nil, boom
			},
		},
	}
	g, err := New(NewSubgraph(cellA{}).Append(cellB{}), Options{Rules: rules})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	before := variants(t, g)

	err = g.AdvanceGeneration()
	if !errors.Is(err, boom) {
		t.Fatalf("AdvanceGeneration() error = %v, want wrapped %v", err, boom)
	}
	var re *RuleError
	if !errors.As(err, &re) {
		t.Fatalf("AdvanceGeneration() error type = %T, want *RuleError", err)
	}
	if re.Variant != "B" {
		t.Errorf("RuleError.Variant = %s, want B", re.Variant)
	}

	if g.Generation() != 0 {
		t.Errorf("Generation() after failed step = %d, want 0", g.Generation())
	}
	if got := variants(t, g); got != before {
		t.Errorf("tree after failed step = %q, want untouched %q", got, before)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestAdvanceGeneration_RejectsReentrantStep(t *testing.T) {
	var inner error
	g, err := New(NewSubgraph(cellA{}), Options{Rules: []Rule{{
		Variant: "A",
		Produce: func(n *Node, _ []*Node) (*Subgraph, error) {
			inner = n.owner.graph.AdvanceGeneration()
			return NewSubgraph(cellA{}), nil
		},
	}}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := g.AdvanceGeneration(); err != nil {
		t.Fatalf("AdvanceGeneration() error = %v", err)
	}
	if !errors.Is(inner, ErrStepInProgress) {
		t.Errorf("re-entrant AdvanceGeneration() error = %v, want ErrStepInProgress", inner)
	}
}

func TestAppend_InsertsSubgraph(t *testing.T) {
	g := newPlant(t, Options{})
	root := g.Root()

	id, err := g.Append(root.ID(), NewSubgraph(&stem{length: 1}).Append(bud{}))
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	n, err := g.Node(id)
	if err != nil {
		t.Fatalf("Node(%d) error = %v", id, err)
	}
	if n.Variant() != "stem" {
		t.Errorf("appended root variant = %s, want stem", n.Variant())
	}

	kids := root.Children()
	if last := kids[len(kids)-1]; last.ID() != id {
		t.Errorf("appended subgraph at child %d, want last", last.ID())
	}
	if g.Len() != 8 {
		t.Errorf("Len() = %d, want 8", g.Len())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestAppend_Errors(t *testing.T) {
	g := newPlant(t, Options{})

	if _, err := g.Append(999, NewSubgraph(bud{})); !errors.Is(err, ErrInvalidParent) {
		t.Errorf("Append(unknown) error = %v, want ErrInvalidParent", err)
	}
	if _, err := g.Append(g.Root().ID(), nil); !errors.Is(err, ErrEmptySubgraph) {
		t.Errorf("Append(nil) error = %v, want ErrEmptySubgraph", err)
	}
	if _, err := g.Append(g.Root().ID(), NewSubgraph(nil)); !errors.Is(err, ErrNilData) {
		t.Errorf("Append(nil data) error = %v, want ErrNilData", err)
	}
}

func TestPrune_RemovesSubtree(t *testing.T) {
	g := newPlant(t, Options{})
	inner := preorder(t, g)[2] // inner stem carrying leaf and bud

	if err := g.Prune(inner.ID()); err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3", g.Len())
	}
	if _, err := g.Node(inner.ID()); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Node(pruned) error = %v, want ErrUnknownNode", err)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestPrune_Errors(t *testing.T) {
	g := newPlant(t, Options{})

	if err := g.Prune(g.Root().ID()); !errors.Is(err, ErrCannotRemoveRoot) {
		t.Errorf("Prune(root) error = %v, want ErrCannotRemoveRoot", err)
	}
	if err := g.Prune(999); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Prune(unknown) error = %v, want ErrUnknownNode", err)
	}
}

func TestVars_SharedAcrossCallbacks(t *testing.T) {
	type tally struct{ matched int }
	v := &tally{}

	rules := []Rule{{
		Variant: "A",
		Match: func(n *Node) bool {
			n.Vars().(*tally).matched++
			return true
		},
		Produce: func(*Node, []*Node) (*Subgraph, error) {
			return NewSubgraph(cellA{}).Append(cellA{}), nil
		},
	}}
	g, err := New(NewSubgraph(cellA{}), Options{Rules: rules, Vars: v})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if g.Vars().(*tally) != v {
		t.Fatal("Vars() does not return the configured value")
	}

	// 1 match in the first step, 2 in the second.
	for range 2 {
		if err := g.AdvanceGeneration(); err != nil {
			t.Fatalf("AdvanceGeneration() error = %v", err)
		}
	}
	if v.matched != 3 {
		t.Errorf("vars tally = %d, want 3", v.matched)
	}
}

func TestNode_UnknownID(t *testing.T) {
	g := newPlant(t, Options{})
	if _, err := g.Node(12345); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Node(unknown) error = %v, want ErrUnknownNode", err)
	}
}

func TestRuleError_Message(t *testing.T) {
	err := &RuleError{Variant: "stem", Node: 7, Err: errors.New("bad payload")}
	want := "rule stem rewriting node 7: bad payload"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if fmt.Sprintf("%v", errors.Unwrap(err)) != "bad payload" {
		t.Errorf("Unwrap() = %v, want bad payload", errors.Unwrap(err))
	}
}
