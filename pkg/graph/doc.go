// Package graph provides a dynamic typed tree grown by synchronous rewriting
// rules and interrogated by relational queries, in the tradition of
// L-systems generalized from strings to branching structures.
//
// # Overview
//
// A [Graph] starts from an axiom and develops in discrete generations. Each
// call to [Graph.AdvanceGeneration] freezes the current tree, matches the
// active [Rule] set against every node, builds all replacement fragments
// against that frozen snapshot, and commits the next generation atomically.
// Because every rule observes the same snapshot, rules never interfere
// within a step, and a failing rule leaves the previous generation fully
// intact.
//
// Nodes carry typed payloads ([NodeData]) tagged with a [Variant]. Rules and
// queries dispatch on the tag with a plain string comparison; the graph
// itself never looks inside a payload.
//
// # Building an Axiom
//
// Tree fragments are described detached from any graph with [Subgraph]:
// [NewSubgraph] starts one, [Subgraph.Append] extends the spine,
// [Subgraph.Branch] hangs side branches off it and [Subgraph.Graft] splices
// whole fragments in. The same builder describes axioms, rule replacements
// and arguments to [Graph.Append]:
//
//	axiom := graph.NewSubgraph(Stem{}).
//		Branch(graph.NewSubgraph(Leaf{Area: 1})).
//		Append(Bud{})
//	g, err := graph.New(axiom, graph.Options{Rules: rules})
//
// # Rules and Generations
//
// A [Rule] claims nodes of one variant, optionally narrowed by a Match
// predicate, and produces a replacement fragment. The matched node's
// children re-hang under the replacement's insertion point, so rewriting an
// internal node preserves everything growing beyond it; rules that want the
// subtree gone set DropDescendants or produce nil to delete the node
// entirely. Context-sensitive rules name relatives through Capture and
// receive them resolved in Produce.
//
// Ids are monotonic for the lifetime of a graph and never reused, so stale
// ids from superseded generations cannot alias freshly created nodes.
//
// # Queries
//
// A [Query] pairs a variant filter with a predicate and applies to any
// graph. Predicates usually test topology through the relational operators
// on [Node]: [Node.IsRoot], [Node.Ancestor], [Node.HasAncestor],
// [Node.HasDescendant], [Node.Children]. Query results come back in
// unspecified order; [Graph.Traverse] and [Graph.DepthFirst] provide the
// deterministic pre-order walk when order matters.
//
// # Feeds
//
// [Graph.Feed] drives a pre-order visit dispatching per-variant callbacks
// from a [FeedSet], threading an accumulator through the walk. This is the
// bridge to consumers that interpret the tree - a turtle, a tally, an
// exporter - without them learning the graph's internals.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Distinct Graphs share no state;
// advancing many of them in parallel is safe and is exactly what
// [github.com/AleMorales/meristem/pkg/sim] does.
//
// # Related Packages
//
// The [models] package ships ready-made organisms built on this package, and
// [sim] runs populations of them generation by generation.
//
// [models]: github.com/AleMorales/meristem/pkg/models
// [sim]: github.com/AleMorales/meristem/pkg/sim
package graph
