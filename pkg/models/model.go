// Package models defines the descriptor contract for built-in organisms.
//
// Each organism subpackage (algae, tree, signal, phytomer) exports a Model
// value that names the organism and knows how to build a fresh graph
// instance for it. The aggregate registry lives in [builtin], which imports
// every organism subpackage and exposes lookup helpers for the CLI and the
// simulation runner.
//
// [builtin]: github.com/AleMorales/meristem/pkg/models/builtin
package models

import (
	"github.com/AleMorales/meristem/pkg/graph"
)

// Model describes a built-in organism and how to grow one.
//
// Model values are typically used by the CLI to dispatch commands like
// "meristem run" based on the model name, and by the simulation runner to
// build population members.
type Model struct {
	// Name is the organism identifier (e.g., "algae", "tree").
	Name string

	// Description is a one-line summary shown by "meristem models".
	Description string

	// Build constructs a fresh graph holding the organism's axiom, rules,
	// and vars. The seed drives any stochastic rules; deterministic models
	// ignore it. Each call returns an independent instance, so population
	// members share no state.
	Build func(seed int64) (*graph.Graph, error)
}

// Find returns the model with the given name, or nil if absent.
func Find(name string, models []*Model) *Model {
	for _, m := range models {
		if m.Name == name {
			return m
		}
	}
	return nil
}
