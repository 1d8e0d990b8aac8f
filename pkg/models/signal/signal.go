// Package signal implements a context-sensitive organism: an activation
// signal climbs a fixed chain of segments, one segment per generation.
// The propagation rule matches on the state of the parent, not of the
// segment itself, and captures the parent so the production can inherit
// an attenuated copy of its strength.
package signal

import (
	"github.com/AleMorales/meristem/pkg/graph"
	"github.com/AleMorales/meristem/pkg/models"
)

// VariantSegment tags every cell of the chain.
const VariantSegment graph.Variant = "segment"

// Attenuation is the fraction of strength a segment inherits from its
// parent when the signal reaches it.
const Attenuation = 0.9

const chainLength = 8

// Segment is one cell of the chain. Strength zero means the signal has
// not arrived yet.
type Segment struct {
	Strength float64
}

func (*Segment) Variant() graph.Variant { return VariantSegment }

// Model builds a chain of segments with an active base. The organism is
// deterministic, so the seed is ignored.
var Model = &models.Model{
	Name:        "signal",
	Description: "acropetal signal climbing a segment chain with attenuation",
	Build:       build,
}

func build(int64) (*graph.Graph, error) {
	axiom := graph.NewSubgraph(&Segment{Strength: 1})
	for i := 1; i < chainLength; i++ {
		axiom.Append(&Segment{})
	}
	return graph.New(axiom, graph.Options{Rules: Rules()})
}

// Rules returns the single propagation rule. Match admits only inactive
// segments whose parent is already active, so the wavefront advances
// exactly one segment per generation; Capture hands the parent to Produce.
func Rules() []graph.Rule {
	return []graph.Rule{{
		Variant: VariantSegment,
		Match:   reached,
		Capture: captureParent,
		Produce: activate,
	}}
}

func reached(n *graph.Node) bool {
	if n.Data().(*Segment).Strength > 0 {
		return false
	}
	parent, err := n.Parent()
	if err != nil {
		return false
	}
	return parent.Data().(*Segment).Strength > 0
}

func captureParent(n *graph.Node) ([]graph.NodeID, error) {
	parent, err := n.Parent()
	if err != nil {
		return nil, err
	}
	return []graph.NodeID{parent.ID()}, nil
}

func activate(_ *graph.Node, captured []*graph.Node) (*graph.Subgraph, error) {
	parent := captured[0].Data().(*Segment)
	return graph.NewSubgraph(&Segment{Strength: parent.Strength * Attenuation}), nil
}
