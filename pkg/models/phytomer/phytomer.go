// Package phytomer builds the worked example for relational queries: a
// fixed shoot of three branching orders assembled from internode, leaf
// and bud organs. The model has no rewrite rules; it exists to be
// selected over. The exported query helpers pick organs purely by
// structural motif - parent and sibling variants, child order, and
// ancestor distance - never by payload state.
package phytomer

import (
	"github.com/AleMorales/meristem/pkg/graph"
	"github.com/AleMorales/meristem/pkg/models"
)

// Variant tags for the shoot organs.
const (
	VariantInternode graph.Variant = "internode"
	VariantLeaf      graph.Variant = "leaf"
	VariantBud       graph.Variant = "bud"
)

// Internode is a stem segment of the shoot skeleton.
type Internode struct{}

// Leaf is carried by every internode.
type Leaf struct{}

// Bud closes every axis.
type Bud struct{}

func (Internode) Variant() graph.Variant { return VariantInternode }
func (Leaf) Variant() graph.Variant      { return VariantLeaf }
func (Bud) Variant() graph.Variant       { return VariantBud }

const (
	maxOrder   = 3
	axisLength = 3
)

// Model builds the static shoot. Deterministic; the seed is ignored.
var Model = &models.Model{
	Name:        "phytomer",
	Description: "static three-order shoot for relational query exercises",
	Build:       build,
}

func build(int64) (*graph.Graph, error) {
	return graph.New(Plant(), graph.Options{})
}

// Plant returns the shoot skeleton: a main axis of three phytomers whose
// first phytomer bears a lateral axis, recursively up to order three and
// one phytomer shorter per order, each axis closed by a terminal bud.
func Plant() *graph.Subgraph {
	return axis(1)
}

func axis(order int) *graph.Subgraph {
	length := axisLength - (order - 1)
	s := graph.NewSubgraph(Internode{}).Branch(graph.NewSubgraph(Leaf{}))
	for i := 1; i < length; i++ {
		if i == 1 && order < maxOrder {
			s.Branch(axis(order + 1))
		}
		s.Append(Internode{}).Branch(graph.NewSubgraph(Leaf{}))
	}
	return s.Append(Bud{})
}

// TerminalLeaves selects the leaf of each axis tip: a leaf whose carrier
// internode also bears a bud.
func TerminalLeaves(g *graph.Graph) []*graph.Node {
	return g.Select(graph.Query{
		Variant: VariantLeaf,
		Where: func(n *graph.Node) bool {
			parent, err := n.Parent()
			if err != nil {
				return false
			}
			for _, sibling := range parent.Children() {
				if sibling.Variant() == VariantBud {
					return true
				}
			}
			return false
		},
	})
}

// LateralInternodes selects the first internode of each lateral axis.
// Branches attach before the axis continuation, so a lateral is an
// internode that precedes another internode among its parent's children.
func LateralInternodes(g *graph.Graph) []*graph.Node {
	return g.Select(graph.Query{
		Variant: VariantInternode,
		Where: func(n *graph.Node) bool {
			parent, err := n.Parent()
			if err != nil {
				return false
			}
			last := graph.NodeID(0)
			for _, c := range parent.Children() {
				if c.Variant() == VariantInternode {
					last = c.ID()
				}
			}
			return n.ID() != last
		},
	})
}

// UpperLeaves selects leaves at least three links away from the root,
// composing HasAncestor's distance with a depth cut.
func UpperLeaves(g *graph.Graph) []*graph.Node {
	return g.Select(graph.Query{
		Variant: VariantLeaf,
		Where: func(n *graph.Node) bool {
			found, steps := n.HasAncestor((*graph.Node).IsRoot)
			return found && steps >= 3
		},
	})
}

// InnerInternodes selects internodes strictly inside an axis: a bud lies
// somewhere below them but not directly on them.
func InnerInternodes(g *graph.Graph) []*graph.Node {
	isBud := func(n *graph.Node) bool { return n.Variant() == VariantBud }
	return g.Select(graph.Query{
		Variant: VariantInternode,
		Where: func(n *graph.Node) bool {
			for _, c := range n.Children() {
				if isBud(c) {
					return false
				}
			}
			return n.HasDescendant(isBud)
		},
	})
}

// A Demo names one worked query so callers can run the whole exercise set.
type Demo struct {
	Name   string
	Select func(*graph.Graph) []*graph.Node
}

// Demos returns the worked queries in presentation order.
func Demos() []Demo {
	return []Demo{
		{Name: "terminal leaves", Select: TerminalLeaves},
		{Name: "lateral internodes", Select: LateralInternodes},
		{Name: "upper leaves", Select: UpperLeaves},
		{Name: "inner internodes", Select: InnerInternodes},
	}
}
