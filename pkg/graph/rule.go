package graph

import "fmt"

// Rule rewrites nodes of one variant during a derivation step. All rules of
// a generation observe the same frozen snapshot; their replacements are
// assembled off to the side and committed together, so no rule ever sees
// another rule's output from the same step.
//
// Matching is two-staged: the variant filter selects the rule, then Match
// (when set) accepts or rejects the individual node. A node whose variant
// has no rule, or whose rule rejects it, is carried into the next generation
// unchanged, subtree intact.
type Rule struct {
	// Variant selects which nodes this rule is consulted for. When several
	// rules declare the same variant, only the first one in [Options.Rules]
	// is ever consulted.
	Variant Variant

	// Match accepts or rejects a specific node. Nil accepts every node of
	// the variant. Match runs against the frozen snapshot in traversal
	// order and may read vars through [Node.Vars].
	Match func(n *Node) bool

	// Capture names context nodes the producer wants resolved ahead of time,
	// typically relatives of the matched node (its parent, an ancestor found
	// with [Node.HasAncestor]). A capture error, or a returned id unknown to
	// the snapshot, rejects the match: the node is carried forward and the
	// step continues. Nil captures nothing.
	Capture func(n *Node) ([]NodeID, error)

	// Produce builds the replacement for a matched node, observing the
	// frozen snapshot through n and the resolved captured nodes (in the
	// order Capture returned them). Returning nil deletes the node together
	// with its subtree. A non-nil error aborts the whole step; the graph is
	// left on the previous generation.
	Produce func(n *Node, captured []*Node) (*Subgraph, error)

	// DropDescendants discards the matched node's children instead of
	// re-attaching them under the replacement's insertion point. The default
	// keeps them: descendants survive a rewrite of their ancestor.
	DropDescendants bool
}

// RuleError reports a rule whose produce step failed during a derivation
// step, or produced something the graph cannot commit. The step it aborted
// had no effect: the graph still holds the previous generation.
type RuleError struct {
	Variant Variant // variant the failing rule declares
	Node    NodeID  // node the rule was rewriting
	Err     error   // underlying cause
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s rewriting node %d: %v", e.Variant, e.Node, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }
