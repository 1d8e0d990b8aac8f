package graph

// Variant tags a payload type with a name that rules and queries filter on.
// Matching a variant is a plain string comparison - no reflection is involved,
// so a rule lookup or query filter costs O(1) per node.
type Variant string

// NodeData is the payload contract. Every payload type declares the variant
// it belongs to; the graph never inspects anything else. Payloads with no
// state are typically empty structs.
//
// Payloads are stored as-is. Pointer payloads stay shared between the node
// and the caller (and across generations for carried-forward nodes), which is
// the intended way to mutate organ state in place from queries and feeds.
type NodeData interface {
	Variant() Variant
}

// NodeID identifies a node within a single graph. Ids start at 1 and are
// assigned monotonically for the lifetime of the graph, including across
// generations: an id freed by a pruned or rewritten subtree is never handed
// out again, so a stale id cannot silently alias a newer node. The zero id
// is reserved and marks the absence of a parent.
type NodeID uint64

// Node is a vertex of a graph: an immutable identity, a payload, a weak link
// to its parent and an ordered list of children. Child order is insertion
// order from the producing rule or axiom and is semantically significant -
// traversals and feeds visit children in exactly this order.
//
// Nodes are handles into their owning graph. Structural mutation goes through
// [Graph.Append], [Graph.Prune] and the rewrite engine; a handle only reads
// structure and reads or replaces its payload. Handles obtained before a call
// to [Graph.AdvanceGeneration] keep describing the superseded generation and
// should be re-queried afterwards.
type Node struct {
	id       NodeID
	data     NodeData
	parent   NodeID // 0 for the root
	children []NodeID
	owner    *arena
}

// ID returns the node's identity within its graph.
func (n *Node) ID() NodeID { return n.id }

// Variant returns the variant tag of the node's payload.
func (n *Node) Variant() Variant { return n.data.Variant() }

// Data returns the node's payload. Callers switch on [Node.Variant] (or type
// assert) to recover the concrete type.
func (n *Node) Data() NodeData { return n.data }

// SetData replaces the node's payload with a new value of the same variant.
// Returns ErrVariantMismatch if the replacement declares a different variant;
// changing a node's variant is the job of a rewrite rule, not of a handle.
func (n *Node) SetData(data NodeData) error {
	if data == nil || data.Variant() != n.data.Variant() {
		return ErrVariantMismatch
	}
	n.data = data
	return nil
}

// Vars returns the shared mutable state of the graph this node belongs to,
// as configured by [Options.Vars]. All nodes of one graph see the same value.
func (n *Node) Vars() any { return n.owner.graph.vars }

// IsRoot reports whether the node is the single parentless node of its graph.
func (n *Node) IsRoot() bool { return n.parent == 0 }

// Parent returns the node's parent, or ErrInsufficientDepth for the root.
func (n *Node) Parent() (*Node, error) {
	return n.Ancestor(1)
}

// Ancestor walks steps links toward the root and returns the node it lands
// on. Ancestor(0) is the node itself and Ancestor(1) its parent. Walking past
// the root returns ErrInsufficientDepth.
func (n *Node) Ancestor(steps int) (*Node, error) {
	cur := n
	for ; steps > 0; steps-- {
		if cur.parent == 0 {
			return nil, ErrInsufficientDepth
		}
		cur = n.owner.nodes[cur.parent]
	}
	return cur, nil
}

// Children returns the node's children in stored order. The returned slice
// is freshly allocated; modifying it does not affect the graph.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	for i, id := range n.children {
		out[i] = n.owner.nodes[id]
	}
	return out
}

// HasAncestor walks from the node's parent toward the root and reports
// whether any ancestor satisfies cond, together with the number of links
// between the node and the first such ancestor (1 for the parent). When no
// ancestor qualifies, or the node is the root, it returns (false, 0). The
// node itself is never tested.
//
// The returned distance composes with [Node.Ancestor]: after a positive
// result, n.Ancestor(steps) lands on the qualifying node without re-walking.
func (n *Node) HasAncestor(cond Predicate) (found bool, steps int) {
	cur := n
	for cur.parent != 0 {
		cur = n.owner.nodes[cur.parent]
		steps++
		if cond(cur) {
			return true, steps
		}
	}
	return false, 0
}

// HasDescendant reports whether any node in the strict subtree below n
// satisfies cond, in pre-order and stopping at the first hit. The node
// itself is never tested.
func (n *Node) HasDescendant(cond Predicate) bool {
	for _, id := range n.children {
		c := n.owner.nodes[id]
		if cond(c) || c.HasDescendant(cond) {
			return true
		}
	}
	return false
}
