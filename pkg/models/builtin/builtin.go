// Package builtin provides the complete list of built-in organisms.
//
// This package exists to break import cycles: the individual organism
// packages (algae, tree, etc.) import pkg/models, so pkg/models cannot
// import them back. Consumers that need the full model list import this
// package instead.
//
// Usage:
//
//	import "github.com/AleMorales/meristem/pkg/models/builtin"
//
//	for _, m := range builtin.All {
//	    fmt.Println(m.Name)
//	}
package builtin

import (
	"github.com/AleMorales/meristem/pkg/models"
	"github.com/AleMorales/meristem/pkg/models/algae"
	"github.com/AleMorales/meristem/pkg/models/phytomer"
	"github.com/AleMorales/meristem/pkg/models/signal"
	"github.com/AleMorales/meristem/pkg/models/tree"
)

// All is the canonical list of built-in organisms, in presentation order.
var All = []*models.Model{
	algae.Model,
	tree.Model,
	signal.Model,
	phytomer.Model,
}

// Find returns the Model with the given name, or nil if not found.
func Find(name string) *models.Model {
	return models.Find(name, All)
}

// Names returns the model names in registry order, for error messages and
// completion.
func Names() []string {
	names := make([]string, len(All))
	for i, m := range All {
		names[i] = m.Name
	}
	return names
}
