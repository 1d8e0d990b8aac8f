package graph

import (
	"errors"
	"testing"
)

func TestFeed_DispatchesInPreOrder(t *testing.T) {
	g := newPlant(t, Options{})

	var order []Variant
	record := func(state any, n *Node, vars any) error {
		order = append(order, n.Variant())
		return nil
	}
	set := FeedSet{"stem": record, "leaf": record, "bud": record}

	if err := g.Feed(nil, set); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	want := []Variant{"stem", "leaf", "stem", "leaf", "bud", "bud"}
	if len(order) != len(want) {
		t.Fatalf("fed %d nodes, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("feed order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestFeed_SkipsUnregisteredVariants(t *testing.T) {
	g := newPlant(t, Options{})

	type tally struct{ leaves, area int }
	acc := &tally{}
	set := FeedSet{
		"leaf": func(state any, n *Node, _ any) error {
			s := state.(*tally)
			s.leaves++
			s.area += n.Data().(*leaf).area
			return nil
		},
	}

	if err := g.Feed(acc, set); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if acc.leaves != 2 || acc.area != 3 {
		t.Errorf("tally = %d leaves, area %d, want 2 leaves, area 3", acc.leaves, acc.area)
	}
}

func TestFeed_ErrorAborts(t *testing.T) {
	g := newPlant(t, Options{})
	wilted := errors.New("wilted")

	visited := 0
	set := FeedSet{
		"leaf": func(any, *Node, any) error {
			visited++
			return wilted
		},
	}

	if err := g.Feed(nil, set); !errors.Is(err, wilted) {
		t.Fatalf("Feed() error = %v, want %v", err, wilted)
	}
	if visited != 1 {
		t.Errorf("feed continued past the error: visited = %d, want 1", visited)
	}
}

func TestFeed_PassesVars(t *testing.T) {
	type env struct{ co2 float64 }
	v := &env{co2: 410}
	g := newPlant(t, Options{Vars: v})

	var got any
	set := FeedSet{
		"stem": func(_ any, _ *Node, vars any) error {
			got = vars
			return nil
		},
	}
	if err := g.Feed(nil, set); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if got.(*env) != v {
		t.Errorf("feed vars = %p, want %p", got, v)
	}
}
