// Package pkg provides the core libraries for meristem plant modelling.
//
// # Overview
//
// Meristem grows typed graphs with L-system style rewrite rules: every
// generation, all matched nodes are rewritten simultaneously and the new
// structure is queried through relational predicates over the tree. The
// pkg directory is organized into four areas:
//
//  1. [graph] - Core engine (node arena, parallel rewriting, traversal, queries)
//  2. [models] - Built-in organisms (algae, tree, signal, phytomer)
//  3. [sim] - Population runs with synchronized generations
//  4. [observability] - Derivation and simulation hooks
//
// # Architecture
//
// The typical flow through meristem:
//
//	Axiom (Subgraph)
//	     ↓
//	[graph] package (derive generations via rewrite rules)
//	     ↓
//	[sim] package (populations, barriers, aggregation)
//	     ↓
//	Queries / Feed traversal / CLI summaries
//
// # Quick Start
//
// Grow Lindenmayer's filament and count its cells:
//
//	import (
//	    "github.com/AleMorales/meristem/pkg/graph"
//	    "github.com/AleMorales/meristem/pkg/models/algae"
//	)
//
//	g, _ := algae.Model.Build(1)
//	for i := 0; i < 5; i++ {
//	    _ = g.AdvanceGeneration()
//	}
//	fmt.Println(g.Len()) // 13
//
// Select nodes by structural position:
//
//	q := graph.Query{Variant: "leaf", Where: func(n *graph.Node) bool {
//	    found, _ := n.HasAncestor(func(a *graph.Node) bool {
//	        return a.Variant() == "internode"
//	    })
//	    return found
//	}}
//	leaves := g.Select(q)
//
// # Main Packages
//
// [graph] - The derivation engine. A Graph owns an arena of typed nodes and
// an ordered rule set; AdvanceGeneration rewrites every matched node against
// a frozen snapshot and commits the next generation atomically. Traversal
// (Traverse, DepthFirst), queries (Query, HasAncestor, HasDescendant), and
// the Feed contract are the read surfaces.
//
// [models] - The Model descriptor plus one subpackage per organism. Each
// organism exports a Model value with a Build function from seed to graph;
// [models/builtin] aggregates them for registry-style lookup by name.
//
// [sim] - Runs Population independent instances through synchronized
// generations with a bounded worker pool, per-instance seeds, an aggregation
// barrier, and TOML config loading.
//
// [observability] - Hook interfaces the engine and runner emit through, with
// no-op defaults, so embedders can attach metrics or tracing without the
// core packages depending on any backend.
//
// [buildinfo] - Version metadata injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/graph/...     # Specific package
//	go test -run Example        # Examples only
//
// [graph]: https://pkg.go.dev/github.com/AleMorales/meristem/pkg/graph
// [models]: https://pkg.go.dev/github.com/AleMorales/meristem/pkg/models
// [models/builtin]: https://pkg.go.dev/github.com/AleMorales/meristem/pkg/models/builtin
// [sim]: https://pkg.go.dev/github.com/AleMorales/meristem/pkg/sim
// [observability]: https://pkg.go.dev/github.com/AleMorales/meristem/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/AleMorales/meristem/pkg/buildinfo
package pkg
