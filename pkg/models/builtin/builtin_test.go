package builtin

import (
	"testing"
)

func TestAll_CompleteAndWellFormed(t *testing.T) {
	if len(All) == 0 {
		t.Fatal("All is empty")
	}
	seen := map[string]bool{}
	for _, m := range All {
		if m.Name == "" {
			t.Error("model with empty name")
		}
		if m.Description == "" {
			t.Errorf("model %q has no description", m.Name)
		}
		if m.Build == nil {
			t.Errorf("model %q has no Build", m.Name)
		}
		if seen[m.Name] {
			t.Errorf("duplicate model name %q", m.Name)
		}
		seen[m.Name] = true
	}
}

func TestAll_EveryModelBuilds(t *testing.T) {
	for _, m := range All {
		g, err := m.Build(1)
		if err != nil {
			t.Errorf("model %q: Build() error = %v", m.Name, err)
			continue
		}
		if g.Len() == 0 {
			t.Errorf("model %q: built an empty graph", m.Name)
		}
		if err := g.Validate(); err != nil {
			t.Errorf("model %q: Validate() error = %v", m.Name, err)
		}
	}
}

func TestFind(t *testing.T) {
	if m := Find("algae"); m == nil || m.Name != "algae" {
		t.Errorf("Find(algae) = %v, want the algae model", m)
	}
	if m := Find("kelp"); m != nil {
		t.Errorf("Find(kelp) = %v, want nil", m)
	}
}

func TestNames_MatchRegistryOrder(t *testing.T) {
	names := Names()
	if len(names) != len(All) {
		t.Fatalf("Names() = %d entries, want %d", len(names), len(All))
	}
	for i, m := range All {
		if names[i] != m.Name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], m.Name)
		}
	}
}
