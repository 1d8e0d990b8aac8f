// Package sim runs populations of independent graph instances through
// synchronized generations.
//
// A run builds Population instances of one model, each with its own seed,
// then advances every instance one generation at a time through a bounded
// worker pool. Generations are synchronized across the population: no
// instance starts generation n+1 before every instance finished generation
// n, and any aggregation callback observes the whole population at that
// barrier.
//
// # Usage
//
// Create a Runner and execute a run:
//
//	runner := sim.NewRunner(logger)
//	opts := sim.Options{
//	    Model:       "tree",
//	    Generations: 8,
//	    Population:  50,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.TotalNodes())
package sim

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/AleMorales/meristem/pkg/graph"
	"github.com/AleMorales/meristem/pkg/models/builtin"
	"github.com/AleMorales/meristem/pkg/observability"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Config Files
// =============================================================================

const (
	// DefaultGenerations is the number of generations a run advances.
	DefaultGenerations = 10

	// DefaultPopulation is the number of instances grown per run.
	DefaultPopulation = 1

	// DefaultWorkers is the worker pool limit for advancing instances.
	DefaultWorkers = 4

	// DefaultSeed is the default base seed for reproducibility.
	DefaultSeed = int64(42)
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for a simulation run.
type Options struct {
	// Model is the name of a built-in organism (see [builtin.All]).
	Model string

	// Build overrides the registry lookup with a custom instance builder.
	// When set, Model is only used as a label.
	Build func(seed int64) (*graph.Graph, error)

	// Generations is how many synchronized generations to advance.
	Generations int

	// Population is how many independent instances to grow.
	Population int

	// Workers bounds how many instances advance concurrently.
	Workers int

	// Seed is the base seed; instance i is built with Seed+i, so any member
	// of a population can be reproduced on its own.
	Seed int64

	// Aggregate, if set, runs after each generation barrier with the whole
	// population, on the calling goroutine. Returning an error aborts the
	// run. The graphs must not be advanced from inside the callback.
	Aggregate func(generation int, graphs []*graph.Graph) error

	// Logger receives per-generation progress. Defaults to the runner's.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Build == nil {
		if o.Model == "" {
			return fmt.Errorf("model is required")
		}
		m := builtin.Find(o.Model)
		if m == nil {
			return fmt.Errorf("unknown model %q (available: %s)",
				o.Model, strings.Join(builtin.Names(), ", "))
		}
		o.Build = m.Build
	}
	if o.Generations < 0 {
		return fmt.Errorf("generations must not be negative")
	}
	if o.Population < 0 {
		return fmt.Errorf("population must not be negative")
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}

	if o.Generations == 0 {
		o.Generations = DefaultGenerations
	}
	if o.Population == 0 {
		o.Population = DefaultPopulation
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}

	o.validated = true
	return nil
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a simulation run.
type Result struct {
	// RunID uniquely identifies the run.
	RunID string

	// Graphs holds the final population in build order. Instance i was
	// built with seed Options.Seed+i.
	Graphs []*graph.Graph

	// Generations contains per-generation statistics in order; entry i
	// describes generation i+1.
	Generations []GenerationStats

	// Duration is the total wall time of the run.
	Duration time.Duration
}

// GenerationStats describes one synchronized generation across the
// population.
type GenerationStats struct {
	Generation int
	Nodes      int // population-wide node total after the barrier
	Duration   time.Duration
}

// TotalNodes returns the population-wide node total of the final state.
func (r *Result) TotalNodes() int {
	return totalNodes(r.Graphs)
}

func totalNodes(graphs []*graph.Graph) int {
	total := 0
	for _, g := range graphs {
		total += g.Len()
	}
	return total
}

// =============================================================================
// Runner
// =============================================================================

// Runner executes simulation runs.
//
// The Runner is stateless except for the logger - it doesn't store run
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner with the given logger.
// If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete build → advance → aggregate loop.
//
// Cancellation is honored between generations: a step in flight always
// completes, so the returned population is never mid-derivation.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	observability.Simulation().OnRunStart(ctx, result.RunID, opts.Model, opts.Population)

	fail := func(err error) (*Result, error) {
		observability.Simulation().OnRunComplete(ctx, result.RunID, time.Since(start), err)
		return nil, err
	}

	graphs := make([]*graph.Graph, opts.Population)
	for i := range graphs {
		g, err := opts.Build(opts.Seed + int64(i))
		if err != nil {
			return fail(fmt.Errorf("build instance %d: %w", i, err))
		}
		graphs[i] = g
	}
	result.Graphs = graphs

	opts.Logger.Info("population built",
		"run", result.RunID,
		"model", opts.Model,
		"population", len(graphs),
		"nodes", totalNodes(graphs))

	for gen := 1; gen <= opts.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return fail(fmt.Errorf("generation %d: %w", gen, err))
		}

		genStart := time.Now()
		var eg errgroup.Group
		eg.SetLimit(opts.Workers)
		for _, g := range graphs {
			eg.Go(g.AdvanceGeneration)
		}
		if err := eg.Wait(); err != nil {
			return fail(fmt.Errorf("generation %d: %w", gen, err))
		}

		nodes := totalNodes(graphs)
		result.Generations = append(result.Generations, GenerationStats{
			Generation: gen,
			Nodes:      nodes,
			Duration:   time.Since(genStart),
		})
		observability.Simulation().OnGenerationBarrier(ctx, result.RunID, gen, nodes)
		opts.Logger.Debug("generation complete",
			"run", result.RunID,
			"generation", gen,
			"nodes", nodes,
			"duration", time.Since(genStart))

		if opts.Aggregate != nil {
			if err := opts.Aggregate(gen, graphs); err != nil {
				return fail(fmt.Errorf("aggregate generation %d: %w", gen, err))
			}
		}
	}

	result.Duration = time.Since(start)
	opts.Logger.Info("run complete",
		"run", result.RunID,
		"generations", opts.Generations,
		"nodes", result.TotalNodes(),
		"duration", result.Duration)
	observability.Simulation().OnRunComplete(ctx, result.RunID, result.Duration, nil)
	return result, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
