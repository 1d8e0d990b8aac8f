package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/AleMorales/meristem/pkg/models/algae"
	"github.com/AleMorales/meristem/pkg/models/phytomer"
)

func TestSummarize_PhytomerShoot(t *testing.T) {
	g, err := phytomer.Model.Build(1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	s := summarize(g)

	if s.Generation != 0 {
		t.Errorf("Generation = %d, want 0", s.Generation)
	}
	if s.Nodes != 15 {
		t.Errorf("Nodes = %d, want 15", s.Nodes)
	}
	if s.Depth != 3 {
		t.Errorf("Depth = %d, want 3", s.Depth)
	}

	want := []variantCount{
		{Variant: phytomer.VariantInternode, Count: 6},
		{Variant: phytomer.VariantLeaf, Count: 6},
		{Variant: phytomer.VariantBud, Count: 3},
	}
	if len(s.Variants) != len(want) {
		t.Fatalf("Variants = %v, want %v", s.Variants, want)
	}
	for i, w := range want {
		if s.Variants[i] != w {
			t.Errorf("Variants[%d] = %v, want %v", i, s.Variants[i], w)
		}
	}
}

func TestSummarize_TracksGrowth(t *testing.T) {
	g, err := algae.Model.Build(1)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := g.AdvanceGeneration(); err != nil {
			t.Fatalf("AdvanceGeneration() error = %v", err)
		}
	}

	// Generation 3 is the filament ABAAB: five cells in a chain.
	s := summarize(g)
	if s.Generation != 3 {
		t.Errorf("Generation = %d, want 3", s.Generation)
	}
	if s.Nodes != 5 {
		t.Errorf("Nodes = %d, want 5", s.Nodes)
	}
	if s.Depth != 4 {
		t.Errorf("Depth = %d, want 4", s.Depth)
	}

	want := []variantCount{{Variant: "A", Count: 3}, {Variant: "B", Count: 2}}
	if len(s.Variants) != len(want) {
		t.Fatalf("Variants = %v, want %v", s.Variants, want)
	}
	for i, w := range want {
		if s.Variants[i] != w {
			t.Errorf("Variants[%d] = %v, want %v", i, s.Variants[i], w)
		}
	}
}

func TestInspect_PrintsWithoutError(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if err := c.inspect(context.Background(), "algae", 3, 1); err != nil {
		t.Fatalf("inspect() error = %v", err)
	}
}

func TestInspect_UnknownModel(t *testing.T) {
	c := New(io.Discard, LogInfo)

	err := c.inspect(context.Background(), "kelp", 2, 1)
	if err == nil {
		t.Fatal("expected error for unknown model")
	}
	if !strings.Contains(err.Error(), "unknown model") {
		t.Errorf("error = %q, want mention of unknown model", err)
	}
}

func TestInspect_NegativeGenerations(t *testing.T) {
	c := New(io.Discard, LogInfo)

	if err := c.inspect(context.Background(), "algae", -1, 1); err == nil {
		t.Fatal("expected error for negative generations")
	}
}

func TestInspect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(io.Discard, LogInfo)
	err := c.inspect(ctx, "algae", 3, 1)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
