package graph

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
)

var (
	// ErrInvalidParent is returned by [Graph.Append] when the parent id does
	// not exist in the current generation, or when a second root is created.
	ErrInvalidParent = errors.New("parent node does not exist")

	// ErrUnknownNode is returned by [Graph.Node] and [Graph.Prune] when the
	// id does not exist in the current generation. Ids of removed nodes are
	// never reused, so a stale id stays unknown forever.
	ErrUnknownNode = errors.New("unknown node")

	// ErrCannotRemoveRoot is returned by [Graph.Prune] for the root node, and
	// wrapped in a [RuleError] when a rule rewrites the root to nothing.
	// A graph never shrinks below one node.
	ErrCannotRemoveRoot = errors.New("cannot remove the root node")

	// ErrInsufficientDepth is returned by [Node.Parent] and [Node.Ancestor]
	// when the walk would ascend past the root.
	ErrInsufficientDepth = errors.New("not enough ancestors above node")

	// ErrEmptySubgraph is returned by [New] and [Graph.Append] when the
	// subgraph holds no nodes. Only rewrite rules may delete by producing
	// nothing; insertion always inserts something.
	ErrEmptySubgraph = errors.New("subgraph contains no nodes")

	// ErrNilData is returned, wrapped, when a subgraph carries a nil payload.
	// Every node must hold a non-nil NodeData, if only an empty struct.
	ErrNilData = errors.New("subgraph node has nil data")

	// ErrNilProduce is returned by [New] when a rule has no produce function.
	// A rule that matches must be able to say what replaces the match.
	ErrNilProduce = errors.New("rule has no produce function")

	// ErrVariantMismatch is returned by [Node.SetData] when the replacement
	// payload declares a different variant than the stored one.
	ErrVariantMismatch = errors.New("replacement data has a different variant")

	// ErrStepInProgress is returned by the mutating Graph methods when called
	// from inside a rule callback while a derivation step is running.
	ErrStepInProgress = errors.New("derivation step already in progress")

	// ErrLinkMismatch is returned by [Graph.Validate] when parent and child
	// links disagree or a child id is listed twice. This indicates corruption.
	ErrLinkMismatch = errors.New("parent and child links disagree")

	// ErrOrphanNode is returned by [Graph.Validate] when a node is not
	// reachable from the root. This indicates corruption.
	ErrOrphanNode = errors.New("node not reachable from the root")
)

// Graph is a dynamic typed tree grown by synchronous rewriting rules and
// interrogated by relational queries. It owns its node store exclusively:
// the only ways to change structure are [Graph.AdvanceGeneration],
// [Graph.Append] and [Graph.Prune].
//
// The zero value is not usable - use [New] to create a valid Graph.
// A Graph is not safe for concurrent use; distinct Graphs share no state
// and may be advanced in parallel.
type Graph struct {
	arena      *arena
	rules      []Rule
	byVariant  map[Variant]*Rule
	vars       any
	generation int
	logger     *log.Logger
	stepping   bool
}

// Options configures a new graph. The zero value is valid: no rules, no
// shared vars, silent logging.
type Options struct {
	// Rules is the ordered active rule set. For each node variant the first
	// rule declaring that variant is the one consulted; later rules for the
	// same variant are never reached.
	Rules []Rule

	// Vars is an arbitrary shared mutable value visible to every rule, query
	// and feed callback of this graph via [Node.Vars] and [Graph.Vars]. Its
	// lifetime is the graph's; there is no process-level ambient state.
	Vars any

	// Logger receives a debug line per derivation step. Nil discards.
	Logger *log.Logger
}

// New creates a graph holding the axiom as its generation-zero content.
// The axiom must contain at least one node; its first node becomes the root.
// Rules are validated up front so that a malformed rule fails construction
// rather than the first derivation step.
func New(axiom *Subgraph, opts Options) (*Graph, error) {
	if axiom == nil || axiom.Len() == 0 {
		return nil, fmt.Errorf("axiom: %w", ErrEmptySubgraph)
	}
	if err := axiom.check(); err != nil {
		return nil, fmt.Errorf("axiom: %w", err)
	}

	rules := slices.Clone(opts.Rules)
	byVariant := make(map[Variant]*Rule, len(rules))
	for i := range rules {
		r := &rules[i]
		if r.Produce == nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r.Variant, ErrNilProduce)
		}
		if _, exists := byVariant[r.Variant]; !exists {
			byVariant[r.Variant] = r
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Graph{
		rules:     rules,
		byVariant: byVariant,
		vars:      opts.Vars,
		logger:    logger,
	}
	g.arena = newArena()
	g.arena.graph = g
	axiom.instantiate(g.arena, 0, -1)
	return g, nil
}

// Generation returns the number of completed derivation steps. A fresh graph
// is at generation 0.
func (g *Graph) Generation() int { return g.generation }

// Vars returns the shared mutable state configured by [Options.Vars].
func (g *Graph) Vars() any { return g.vars }

// Len returns the number of nodes in the current generation.
func (g *Graph) Len() int { return g.arena.len() }

// Root returns the single parentless node of the current generation.
func (g *Graph) Root() *Node { return g.arena.nodes[g.arena.root] }

// Node returns the node with the given id in the current generation, or
// ErrUnknownNode. Ids from superseded generations resolve only if the node
// was carried forward.
func (g *Graph) Node(id NodeID) (*Node, error) {
	n, ok := g.arena.get(id)
	if !ok {
		return nil, ErrUnknownNode
	}
	return n, nil
}

// Append instantiates the subgraph as a new child of parent, placed after
// the existing children, and returns the id of the subgraph's root node.
// This is the manual-editing counterpart of a rewrite: it inserts without
// replacing anything. Returns ErrInvalidParent for an unknown parent,
// ErrEmptySubgraph for an empty subgraph, and ErrStepInProgress when called
// from inside a rule callback.
func (g *Graph) Append(parent NodeID, sub *Subgraph) (NodeID, error) {
	return g.Insert(parent, -1, sub)
}

// Insert is [Graph.Append] with an explicit child position: the subgraph's
// root lands at that slot in the parent's child list, shifting later
// children right. A position of -1, or past the end, appends.
func (g *Graph) Insert(parent NodeID, position int, sub *Subgraph) (NodeID, error) {
	if g.stepping {
		return 0, ErrStepInProgress
	}
	if sub == nil || sub.Len() == 0 {
		return 0, ErrEmptySubgraph
	}
	if err := sub.check(); err != nil {
		return 0, err
	}
	if _, ok := g.arena.get(parent); !ok {
		return 0, ErrInvalidParent
	}
	root, _ := sub.instantiate(g.arena, parent, position)
	return root, nil
}

// Prune removes the node and its entire subtree from the current generation.
// Returns ErrUnknownNode for an unknown id, ErrCannotRemoveRoot for the root
// and ErrStepInProgress when called from inside a rule callback.
func (g *Graph) Prune(id NodeID) error {
	if g.stepping {
		return ErrStepInProgress
	}
	return g.arena.removeSubtree(id)
}

// Select runs the query against the current generation. It is shorthand for
// q.Apply(g).
func (g *Graph) Select(q Query) []*Node { return q.Apply(g) }

// Validate checks the rooted-tree invariant of the current generation:
// exactly one parentless node, parent and child links in agreement, and
// every node reachable from the root exactly once. A healthy graph always
// validates; a failure indicates a bug in the store or the rewrite engine.
// Returns ErrLinkMismatch or ErrOrphanNode describing the violation.
func (g *Graph) Validate() error { return g.arena.validate() }
