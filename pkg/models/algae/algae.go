// Package algae implements Lindenmayer's two-state filament, the classic
// first L-system: an A cell divides into an A and a B each generation, and
// a B cell matures into an A, so the filament length follows the Fibonacci
// numbers 1, 2, 3, 5, 8, 13, ...
package algae

import (
	"github.com/AleMorales/meristem/pkg/graph"
	"github.com/AleMorales/meristem/pkg/models"
)

// CellA is the mature state. It divides every generation.
type CellA struct{}

// CellB is the juvenile state. It matures into an A before dividing.
type CellB struct{}

func (CellA) Variant() graph.Variant { return "A" }
func (CellB) Variant() graph.Variant { return "B" }

// Model grows the filament from a single A cell. The organism is fully
// deterministic, so the seed is ignored.
var Model = &models.Model{
	Name:        "algae",
	Description: "Lindenmayer's Fibonacci filament of dividing cells",
	Build:       build,
}

func build(int64) (*graph.Graph, error) {
	return graph.New(graph.NewSubgraph(CellA{}), graph.Options{Rules: Rules()})
}

// Rules returns the two division rules. The replacement for an A is the
// chain A -> B with the B as insertion point, so the rest of the filament
// re-attaches below the new B and the structure stays a single unbranched
// chain.
func Rules() []graph.Rule {
	return []graph.Rule{
		{
			Variant: CellA{}.Variant(),
			Produce: func(*graph.Node, []*graph.Node) (*graph.Subgraph, error) {
				return graph.NewSubgraph(CellA{}).Append(CellB{}), nil
			},
		},
		{
			Variant: CellB{}.Variant(),
			Produce: func(*graph.Node, []*graph.Node) (*graph.Subgraph, error) {
				return graph.NewSubgraph(CellA{}), nil
			},
		},
	}
}
