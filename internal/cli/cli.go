// Package cli implements the meristem command-line interface.
//
// This package provides commands for listing the built-in organisms,
// running population simulations, summarizing grown structures, and
// stepping through derivations interactively. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - models: List the built-in organisms
//   - run: Run a population simulation from a TOML config and/or flags
//   - inspect: Grow one instance and summarize its structure
//   - watch: Step through generations interactively
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Progress
// lines go to stderr; styled results go to stdout.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/AleMorales/meristem/pkg/buildinfo"
	"github.com/AleMorales/meristem/pkg/sim"
)

// appName is the application name used for display and completion.
const appName = "meristem"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Meristem grows and queries rule-based plant graphs",
		Long:         `Meristem is a CLI for growing typed graphs with L-system style rewrite rules and exploring their structure with relational queries.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.modelsCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a simulation runner for CLI use.
func (c *CLI) newRunner() *sim.Runner {
	return sim.NewRunner(c.Logger)
}
