// Package tree implements a stochastic branching tree: each apex either
// forks into two lateral apices or extends the axis with a leaf, driven by
// a per-instance seeded RNG held in vars. Internodes elongate every
// generation until they reach their final length.
//
// A forest is this model run with Population > 1 through the sim runner:
// every instance receives its own seed, so crowns differ plant to plant.
package tree

import (
	"math/rand/v2"

	"github.com/AleMorales/meristem/pkg/graph"
	"github.com/AleMorales/meristem/pkg/models"
)

// Variant tags for the tree organs.
const (
	VariantApex      graph.Variant = "apex"
	VariantInternode graph.Variant = "internode"
	VariantLeaf      graph.Variant = "leaf"
)

// DefaultBranchProb is the per-generation probability that an apex forks.
const DefaultBranchProb = 0.35

const (
	initialLength   = 1.0
	growthIncrement = 0.5
	finalLength     = 3.0
	leafArea        = 1.0
)

// Apex is a growing tip. Apices are always terminal nodes.
type Apex struct{}

// Internode is a stem segment.
type Internode struct {
	Length float64
}

// Leaf is a photosynthetic organ carried by an internode.
type Leaf struct {
	Area float64
}

func (Apex) Variant() graph.Variant       { return VariantApex }
func (*Internode) Variant() graph.Variant { return VariantInternode }
func (*Leaf) Variant() graph.Variant      { return VariantLeaf }

// Vars is the per-instance state shared by every rule of one tree.
type Vars struct {
	// Rng drives the branching decision. Rules consume it in traversal
	// order, so a given seed always grows the same crown.
	Rng *rand.Rand

	// BranchProb is the per-generation probability that an apex forks.
	BranchProb float64
}

// Model grows a tree from a single apex.
var Model = &models.Model{
	Name:        "tree",
	Description: "stochastic branching tree with elongating internodes",
	Build:       build,
}

func build(seed int64) (*graph.Graph, error) {
	s := uint64(seed)
	vars := &Vars{
		Rng:        rand.New(rand.NewPCG(s, s^0xdeadbeef)),
		BranchProb: DefaultBranchProb,
	}
	return graph.New(graph.NewSubgraph(Apex{}), graph.Options{Rules: Rules(), Vars: vars})
}

// Rules returns the apex and internode rules.
func Rules() []graph.Rule {
	return []graph.Rule{
		{
			Variant: VariantApex,
			Produce: growApex,
		},
		{
			Variant: VariantInternode,
			Match: func(n *graph.Node) bool {
				return n.Data().(*Internode).Length < finalLength
			},
			Produce: elongate,
		},
	}
}

// growApex turns the apex into a new internode that either carries two
// lateral apices (fork) or a leaf plus a continuing apex (extension).
func growApex(n *graph.Node, _ []*graph.Node) (*graph.Subgraph, error) {
	vars := n.Vars().(*Vars)
	segment := graph.NewSubgraph(&Internode{Length: initialLength})
	if vars.Rng.Float64() < vars.BranchProb {
		return segment.
			Branch(graph.NewSubgraph(Apex{})).
			Branch(graph.NewSubgraph(Apex{})), nil
	}
	return segment.
		Branch(graph.NewSubgraph(&Leaf{Area: leafArea})).
		Append(Apex{}), nil
}

func elongate(n *graph.Node, _ []*graph.Node) (*graph.Subgraph, error) {
	segment := n.Data().(*Internode)
	length := min(segment.Length+growthIncrement, finalLength)
	return graph.NewSubgraph(&Internode{Length: length}), nil
}
