package graph

import (
	"time"

	"github.com/AleMorales/meristem/pkg/observability"
)

// match is one node scheduled for rewriting: the rule that claimed it, the
// context nodes its capture resolved, and - after the build phase - the
// replacement fragment. A nil repl after building means deletion.
type match struct {
	node     *Node
	rule     *Rule
	captured []*Node
	repl     *Subgraph
}

// AdvanceGeneration runs one synchronous derivation step: freeze the current
// generation, match rules against every node, build all replacements against
// the frozen snapshot, then commit the next generation atomically. On any
// error the graph still holds the previous generation - node counts, ids and
// the generation counter are untouched - and the error describes the failing
// rule as a [*RuleError].
//
// Nodes created by this step are invisible to it; they are first seen by the
// following step. Unmatched nodes are carried forward with identity and
// payload preserved. Returns ErrStepInProgress when called re-entrantly from
// a rule callback.
func (g *Graph) AdvanceGeneration() error {
	if g.stepping {
		return ErrStepInProgress
	}
	g.stepping = true
	defer func() { g.stepping = false }()

	target := g.generation + 1
	hooks := observability.Derivation()
	hooks.OnGenerationStart(target)
	start := time.Now()

	matches := g.matchGeneration()
	if err := g.buildReplacements(matches); err != nil {
		hooks.OnGenerationComplete(target, len(matches), g.arena.len(), err)
		return err
	}
	next, err := g.materialize(matches)
	if err != nil {
		hooks.OnGenerationComplete(target, len(matches), g.arena.len(), err)
		return err
	}

	g.arena = next
	g.generation = target
	g.logger.Debug("generation advanced",
		"generation", g.generation,
		"matched", len(matches),
		"nodes", next.len(),
		"duration", time.Since(start))
	hooks.OnGenerationComplete(target, len(matches), next.len(), nil)
	return nil
}

// matchGeneration walks the frozen snapshot in traversal order and collects
// every node claimed by a rule. Capture failures and unresolvable captured
// ids reject the individual match, never the step.
func (g *Graph) matchGeneration() []*match {
	var matches []*match
	a := g.arena
	var walk func(n *Node)
	walk = func(n *Node) {
		if m := g.matchNode(n); m != nil {
			matches = append(matches, m)
		}
		for _, c := range n.children {
			walk(a.nodes[c])
		}
	}
	walk(a.nodes[a.root])
	return matches
}

func (g *Graph) matchNode(n *Node) *match {
	r := g.byVariant[n.data.Variant()]
	if r == nil {
		return nil
	}
	if r.Match != nil && !r.Match(n) {
		return nil
	}
	var captured []*Node
	if r.Capture != nil {
		ids, err := r.Capture(n)
		if err != nil {
			return nil
		}
		captured = make([]*Node, len(ids))
		for i, id := range ids {
			cn, ok := g.arena.get(id)
			if !ok {
				return nil
			}
			captured[i] = cn
		}
	}
	return &match{node: n, rule: r, captured: captured}
}

// buildReplacements runs every matched rule's producer against the frozen
// snapshot, in the same traversal order the matches were collected in, so
// producers that mutate vars do so deterministically. The first failure
// aborts the step.
func (g *Graph) buildReplacements(matches []*match) error {
	for _, m := range matches {
		repl, err := m.rule.Produce(m.node, m.captured)
		if err != nil {
			return &RuleError{Variant: m.rule.Variant, Node: m.node.id, Err: err}
		}
		if repl != nil {
			if err := repl.check(); err != nil {
				return &RuleError{Variant: m.rule.Variant, Node: m.node.id, Err: err}
			}
			if repl.Len() == 0 {
				repl = nil
			}
		}
		m.repl = repl
	}
	return nil
}

// materialize assembles the next generation in a fresh arena: carried nodes
// keep their ids and payloads, replacements are instantiated with newly
// minted ids, and each rewritten node's children re-hang under its
// replacement's insertion point (unless the rule drops them). The current
// arena is never touched, which is what makes the commit atomic - the swap
// happens only after the whole tree assembled cleanly.
func (g *Graph) materialize(matches []*match) (*arena, error) {
	byID := make(map[NodeID]*match, len(matches))
	for _, m := range matches {
		byID[m.node.id] = m
	}

	next := newArena()
	next.graph = g
	next.nextID = g.arena.nextID

	var place func(id, parent NodeID) error
	place = func(id, parent NodeID) error {
		n := g.arena.nodes[id]
		m := byID[id]
		if m == nil {
			next.add(&Node{id: n.id, data: n.data, parent: parent}, -1)
			for _, c := range n.children {
				if err := place(c, n.id); err != nil {
					return err
				}
			}
			return nil
		}
		if m.repl == nil {
			if id == g.arena.root {
				return &RuleError{Variant: m.rule.Variant, Node: id, Err: ErrCannotRemoveRoot}
			}
			return nil
		}
		_, tip := m.repl.instantiate(next, parent, -1)
		if m.rule.DropDescendants {
			return nil
		}
		for _, c := range n.children {
			if err := place(c, tip); err != nil {
				return err
			}
		}
		return nil
	}
	if err := place(g.arena.root, 0); err != nil {
		return nil, err
	}
	return next, nil
}
