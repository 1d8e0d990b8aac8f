package graph

// FeedFunc consumes one node during [Graph.Feed]: state is the accumulator
// threaded through the walk (a turtle, a tally, an exporter), n the node
// being visited and vars the graph's shared state. Feed callbacks must not
// mutate graph structure; mutating the accumulator, payloads and vars is
// what they are for. A non-nil error aborts the feed.
type FeedFunc func(state any, n *Node, vars any) error

// FeedSet maps variants to their feed callbacks. Variants without an entry
// are skipped silently - a feed only cares about the organs it understands.
type FeedSet map[Variant]FeedFunc

// Feed walks the current generation in deterministic pre-order and hands
// every node to the callback registered for its variant. Pre-order matters:
// a parent is always fed before its subtree, so positional state accumulated
// at the parent is in place when the children run.
func (g *Graph) Feed(state any, set FeedSet) error {
	return g.Traverse(func(n *Node) error {
		fn, ok := set[n.data.Variant()]
		if !ok {
			return nil
		}
		return fn(state, n, g.vars)
	})
}
