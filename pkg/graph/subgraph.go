package graph

// Subgraph is a detached description of a tree fragment: the axiom of a new
// graph, the replacement produced by a rule, or the argument to
// [Graph.Append]. It records payloads and child order only - ids are minted
// when the fragment is instantiated into a graph.
//
// A Subgraph tracks two positions: its root and its insertion point. The
// insertion point is where a chain continues and, for a rule replacement,
// where the matched node's children are re-attached. [Subgraph.Append] and
// [Subgraph.Graft] advance it; [Subgraph.Branch] deliberately does not, so
// side branches hang off the spine without redirecting it.
//
// Builder methods return the receiver for chaining and copy from their
// arguments, so a grafted fragment can be reused or extended independently
// afterwards. Instantiating one Subgraph into several graphs shares pointer
// payloads between them; build a fresh Subgraph per graph when payloads are
// pointers.
type Subgraph struct {
	nodes []sgNode
	root  int
	tip   int
}

type sgNode struct {
	data     NodeData
	children []int
}

// NewSubgraph starts a fragment with a single node carrying data. That node
// is both the root and the initial insertion point.
func NewSubgraph(data NodeData) *Subgraph {
	return &Subgraph{nodes: []sgNode{{data: data}}}
}

// Append adds a node carrying data as the last child of the insertion point
// and moves the insertion point to it. Chained appends therefore build a
// spine: NewSubgraph(a).Append(b).Append(c) is the path a-b-c.
func (s *Subgraph) Append(data NodeData) *Subgraph {
	idx := len(s.nodes)
	s.nodes = append(s.nodes, sgNode{data: data})
	s.link(s.tip, idx)
	s.tip = idx
	return s
}

// Branch attaches a copy of sub as the last child of the insertion point and
// leaves the insertion point where it is. Use it for side branches that the
// spine continues past. A nil or empty sub is a no-op.
func (s *Subgraph) Branch(sub *Subgraph) *Subgraph {
	if sub == nil || len(sub.nodes) == 0 {
		return s
	}
	root, _ := s.merge(sub)
	s.link(s.tip, root)
	return s
}

// Graft attaches a copy of sub as the last child of the insertion point and
// moves the insertion point to sub's insertion point, continuing the spine
// through the grafted fragment. A nil or empty sub is a no-op.
func (s *Subgraph) Graft(sub *Subgraph) *Subgraph {
	if sub == nil || len(sub.nodes) == 0 {
		return s
	}
	root, tip := s.merge(sub)
	s.link(s.tip, root)
	s.tip = tip
	return s
}

// Len returns the number of nodes in the fragment.
func (s *Subgraph) Len() int { return len(s.nodes) }

func (s *Subgraph) link(parent, child int) {
	s.nodes[parent].children = append(s.nodes[parent].children, child)
}

// merge copies sub's nodes into s and returns the copied root and insertion
// point as local indices. Child indices are rebased; payloads are shared.
func (s *Subgraph) merge(sub *Subgraph) (root, tip int) {
	off := len(s.nodes)
	for _, n := range sub.nodes {
		kids := make([]int, len(n.children))
		for i, c := range n.children {
			kids[i] = c + off
		}
		s.nodes = append(s.nodes, sgNode{data: n.data, children: kids})
	}
	return sub.root + off, sub.tip + off
}

// check verifies that every node carries a payload. Structure cannot go
// wrong through the builder API, but payloads are caller-supplied.
func (s *Subgraph) check() error {
	for _, n := range s.nodes {
		if n.data == nil {
			return ErrNilData
		}
	}
	return nil
}

// instantiate mints real ids for the fragment's nodes and links them into
// the arena in pre-order, the fragment root going under parent at position.
// It returns the minted ids of the root and of the insertion point. The
// caller has already validated the parent and the payloads.
func (s *Subgraph) instantiate(a *arena, parent NodeID, position int) (root, tip NodeID) {
	ids := make([]NodeID, len(s.nodes))
	var place func(local int, parent NodeID, pos int)
	place = func(local int, parent NodeID, pos int) {
		id := a.mint()
		ids[local] = id
		a.add(&Node{id: id, data: s.nodes[local].data, parent: parent}, pos)
		for _, c := range s.nodes[local].children {
			place(c, id, -1)
		}
	}
	place(s.root, parent, position)
	return ids[s.root], ids[s.tip]
}
