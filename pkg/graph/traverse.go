package graph

import "iter"

// Traverse visits every node of the current generation in deterministic
// pre-order: the root first, then each subtree in stored child order. This
// is the only enumeration whose order matches construction order. A non-nil
// error from visit aborts the walk and is returned unchanged.
func (g *Graph) Traverse(visit func(n *Node) error) error {
	a := g.arena
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if err := visit(n); err != nil {
			return err
		}
		for _, c := range n.children {
			if err := walk(a.nodes[c]); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(a.nodes[a.root])
}

// DepthFirst returns the same pre-order walk as [Graph.Traverse] as a lazy,
// restartable sequence:
//
//	for n := range g.DepthFirst() {
//		...
//	}
//
// Each range over the sequence resolves the graph's current generation at
// that moment, so the one returned sequence stays valid across derivation
// steps and always retraces the live tree. A generation committed while a
// range is in flight does not disturb it: the walk completes over the
// snapshot it started on.
func (g *Graph) DepthFirst() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		a := g.arena
		var walk func(n *Node) bool
		walk = func(n *Node) bool {
			if !yield(n) {
				return false
			}
			for _, c := range n.children {
				if !walk(a.nodes[c]) {
					return false
				}
			}
			return true
		}
		walk(a.nodes[a.root])
	}
}
