package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleMorales/meristem/pkg/sim"
)

// runFlags holds the flag values of the run command.
type runFlags struct {
	model       string
	generations int
	population  int
	workers     int
	seed        int64
}

// runCommand creates the run command for executing simulation runs.
func (c *CLI) runCommand() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [config.toml]",
		Short: "Grow a population of an organism model",
		Long: `Run builds a population of graph instances from an organism model and
advances them through synchronized generations.

Options come from an optional TOML config file, flags, or defaults -
in that order of increasing precedence. Instance i of the population
is seeded with seed+i, so individual instances can be reproduced.`,
		Example: `  meristem run --model algae
  meristem run -m tree -g 8 --population 50 --seed 7
  meristem run forest.toml --workers 16`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts sim.Options
			if len(args) == 1 {
				cfg, err := sim.LoadConfig(args[0])
				if err != nil {
					return err
				}
				opts = cfg.Options()
				c.Logger.Debug("loaded config", "path", args[0])
			}
			mergeFlags(&opts, flags, cmd.Flags().Changed)

			return c.runSimulation(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "organism model to grow (see 'meristem models')")
	cmd.Flags().IntVarP(&flags.generations, "generations", "g", 0, fmt.Sprintf("generations to advance (default %d)", sim.DefaultGenerations))
	cmd.Flags().IntVar(&flags.population, "population", 0, fmt.Sprintf("independent instances to grow (default %d)", sim.DefaultPopulation))
	cmd.Flags().IntVar(&flags.workers, "workers", 0, fmt.Sprintf("max instances advancing concurrently (default %d)", sim.DefaultWorkers))
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, fmt.Sprintf("base random seed, instance i uses seed+i (default %d)", sim.DefaultSeed))

	return cmd
}

// mergeFlags overlays explicitly set flags onto opts. Flags win over config
// file values; unset flags leave the file's values (or the defaults) intact.
func mergeFlags(opts *sim.Options, flags runFlags, changed func(name string) bool) {
	if changed("model") {
		opts.Model = flags.model
	}
	if changed("generations") {
		opts.Generations = flags.generations
	}
	if changed("population") {
		opts.Population = flags.population
	}
	if changed("workers") {
		opts.Workers = flags.workers
	}
	if changed("seed") {
		opts.Seed = flags.seed
	}
}

// runSimulation executes a run with a progress spinner and prints the
// result summary.
func (c *CLI) runSimulation(ctx context.Context, opts sim.Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	sp := newSpinner(ctx, fmt.Sprintf("Growing %s (%d generations, population %d)...",
		opts.Model, opts.Generations, opts.Population))
	sp.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			sp.Stop()
			printInfo("Cancelled")
			return err
		}
		sp.StopWithError(fmt.Sprintf("Run failed: %v", err))
		return err
	}

	sp.StopWithSuccess(fmt.Sprintf("Grew %s to generation %d (%s)",
		opts.Model, opts.Generations, result.Duration.Round(time.Millisecond)))
	printRunSummary(opts, result)
	return nil
}

// printRunSummary prints the styled summary block for a completed run.
func printRunSummary(opts sim.Options, result *sim.Result) {
	printNewline()
	printKeyValue("Run", result.RunID)
	printKeyValue("Model", opts.Model)
	printKeyValue("Population", strconv.Itoa(opts.Population))
	printKeyValue("Nodes", strconv.Itoa(result.TotalNodes()))
	printKeyValue("Duration", result.Duration.Round(time.Millisecond).String())
	printNewline()

	rows := make([][]string, 0, len(result.Generations))
	for _, gs := range result.Generations {
		rows = append(rows, []string{
			strconv.Itoa(gs.Generation),
			strconv.Itoa(gs.Nodes),
			gs.Duration.Round(time.Microsecond).String(),
		})
	}
	fmt.Println(summaryTable([]string{"Generation", "Nodes", "Duration"}, rows))

	printNewline()
	printNextStep("Inspect the structure",
		fmt.Sprintf("meristem inspect %s --generations %d", opts.Model, opts.Generations))
}
