package graph

// Predicate is a condition over a node. Predicates passed to queries and
// relational operators must not mutate graph structure; reading structure
// and payloads, including through [Node.HasAncestor] and friends, is the
// point of them.
type Predicate func(n *Node) bool

// Query describes a reusable node selection: a mandatory variant filter and
// an optional predicate. A Query is an immutable value with no reference to
// any graph - build it once, apply it to as many graphs (or generations) as
// share the variant vocabulary.
type Query struct {
	// Variant is compared against each node's tag before anything else runs.
	Variant Variant

	// Where further narrows the selection. Nil accepts every node of the
	// variant. Predicates typically test topology: position relative to
	// ancestors, descendants, or branching structure.
	Where Predicate
}

// Apply scans the current generation and returns the nodes matching the
// query. The result order is deliberately unspecified - it follows store
// iteration, not topology - so callers must not read meaning into it; use
// [Graph.Traverse] when order matters. An empty result is a plain nil slice,
// not an error.
func (q Query) Apply(g *Graph) []*Node {
	var out []*Node
	for _, n := range g.arena.nodes {
		if n.data.Variant() != q.Variant {
			continue
		}
		if q.Where != nil && !q.Where(n) {
			continue
		}
		out = append(out, n)
	}
	return out
}
