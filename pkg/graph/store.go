package graph

import "slices"

// arena is the node store backing one generation of a graph. It owns every
// node of that generation and is the only place structure is mutated; the
// Graph facade and the rewrite engine are its only writers, which is how the
// rooted-tree invariant survives arbitrary caller interleavings.
//
// Nodes are held in a map so that query iteration order is deliberately
// unspecified, while ordered traversal always goes through the child slices.
type arena struct {
	nodes  map[NodeID]*Node
	root   NodeID
	nextID NodeID
	graph  *Graph
}

func newArena() *arena {
	return &arena{nodes: make(map[NodeID]*Node), nextID: 1}
}

// mint returns the next unused node id. Ids only move forward, also across
// the fresh arenas materialized by generation commits.
func (a *arena) mint() NodeID {
	id := a.nextID
	a.nextID++
	return id
}

// add links a fully formed node into the arena at the given child position
// (negative or out-of-range appends). The caller guarantees that the id is
// unused and that the parent exists, or that the arena is empty and the node
// is the root.
func (a *arena) add(n *Node, position int) {
	n.owner = a
	a.nodes[n.id] = n
	if n.id >= a.nextID {
		a.nextID = n.id + 1
	}
	if n.parent == 0 {
		a.root = n.id
		return
	}
	p := a.nodes[n.parent]
	if position < 0 || position >= len(p.children) {
		p.children = append(p.children, n.id)
		return
	}
	p.children = slices.Insert(p.children, position, n.id)
}

// insert creates a single node under parent and returns its freshly minted
// id. A zero parent is only valid while the arena is empty (the node becomes
// the root); otherwise the parent must exist. Position selects the slot in
// the parent's child list, with -1 (or any out-of-range value) appending.
// Returns ErrInvalidParent when the parent cannot accept the node.
func (a *arena) insert(data NodeData, parent NodeID, position int) (NodeID, error) {
	if parent == 0 {
		if a.root != 0 {
			return 0, ErrInvalidParent
		}
	} else if _, ok := a.nodes[parent]; !ok {
		return 0, ErrInvalidParent
	}
	n := &Node{id: a.mint(), data: data, parent: parent}
	a.add(n, position)
	return n.id, nil
}

// get returns the node with the given id, or false if the id is unknown to
// this generation.
func (a *arena) get(id NodeID) (*Node, bool) {
	n, ok := a.nodes[id]
	return n, ok
}

// removeSubtree detaches the node from its parent and deletes it together
// with all of its descendants. Returns ErrUnknownNode for an unknown id and
// ErrCannotRemoveRoot for the root: a graph never shrinks below one node.
func (a *arena) removeSubtree(id NodeID) error {
	n, ok := a.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if id == a.root {
		return ErrCannotRemoveRoot
	}
	p := a.nodes[n.parent]
	p.children = slices.DeleteFunc(p.children, func(c NodeID) bool { return c == id })
	a.drop(id)
	return nil
}

func (a *arena) drop(id NodeID) {
	for _, c := range a.nodes[id].children {
		a.drop(c)
	}
	delete(a.nodes, id)
}

func (a *arena) len() int { return len(a.nodes) }

// validate checks the rooted-tree invariant: a single parentless node, parent
// and child links agreeing, and every node reachable from the root exactly
// once. Any violation indicates arena corruption.
func (a *arena) validate() error {
	root, ok := a.nodes[a.root]
	if !ok || root.parent != 0 {
		return ErrLinkMismatch
	}
	seen := make(map[NodeID]bool, len(a.nodes))
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if seen[n.id] {
			return ErrLinkMismatch
		}
		seen[n.id] = true
		for _, c := range n.children {
			child, ok := a.nodes[c]
			if !ok || child.parent != n.id {
				return ErrLinkMismatch
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return err
	}
	if len(seen) != len(a.nodes) {
		return ErrOrphanNode
	}
	return nil
}
