package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/AleMorales/meristem/pkg/graph"
	"github.com/AleMorales/meristem/pkg/models/builtin"
	"github.com/AleMorales/meristem/pkg/models/phytomer"
	"github.com/AleMorales/meristem/pkg/sim"
)

// defaultInspectGenerations keeps single-instance inspection output readable.
const defaultInspectGenerations = 5

// inspectCommand creates the inspect command for examining a grown instance.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		generations int
		seed        int64
	)

	cmd := &cobra.Command{
		Use:   "inspect <model>",
		Short: "Grow one instance and summarize its structure",
		Long: `Inspect grows a single instance of an organism model and reports its
structure: generation, node count, depth, and node totals per variant.
For the phytomer model it also runs the built-in topological queries.`,
		Example: `  meristem inspect algae
  meristem inspect tree -g 8 --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.inspect(cmd.Context(), args[0], generations, seed)
		},
	}

	cmd.Flags().IntVarP(&generations, "generations", "g", defaultInspectGenerations, "generations to advance before inspecting")
	cmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "random seed")

	return cmd
}

// inspect grows one instance of the named model and prints its summary.
func (c *CLI) inspect(ctx context.Context, name string, generations int, seed int64) error {
	m := builtin.Find(name)
	if m == nil {
		return fmt.Errorf("unknown model %q (available: %s)",
			name, strings.Join(builtin.Names(), ", "))
	}
	if generations < 0 {
		return fmt.Errorf("generations must not be negative")
	}

	p := newProgress(c.Logger)
	g, err := m.Build(seed)
	if err != nil {
		return fmt.Errorf("build %s: %w", name, err)
	}
	for i := 0; i < generations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.AdvanceGeneration(); err != nil {
			return fmt.Errorf("generation %d: %w", i+1, err)
		}
	}
	p.done(fmt.Sprintf("Grew %s to generation %d", name, g.Generation()))

	printStructure(summarize(g))
	if name == phytomer.Model.Name {
		printQueryDemos(g)
	}
	return nil
}

// =============================================================================
// Structure Summary
// =============================================================================

// structureSummary describes the shape of one grown instance.
type structureSummary struct {
	Generation int
	Nodes      int
	Depth      int
	Variants   []variantCount
}

// variantCount pairs a node variant with its population in the graph.
type variantCount struct {
	Variant graph.Variant
	Count   int
}

// summarize walks the graph once and collects its structure summary.
// Variants are listed in first-encounter (pre-order) order.
func summarize(g *graph.Graph) structureSummary {
	s := structureSummary{Generation: g.Generation(), Nodes: g.Len()}
	counts := map[graph.Variant]int{}
	var order []graph.Variant
	for n := range g.DepthFirst() {
		v := n.Variant()
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
		if _, steps := n.HasAncestor((*graph.Node).IsRoot); steps > s.Depth {
			s.Depth = steps
		}
	}
	for _, v := range order {
		s.Variants = append(s.Variants, variantCount{Variant: v, Count: counts[v]})
	}
	return s
}

// printStructure prints the styled summary block for one grown instance.
func printStructure(s structureSummary) {
	printNewline()
	printKeyValue("Generation", strconv.Itoa(s.Generation))
	printKeyValue("Nodes", strconv.Itoa(s.Nodes))
	printKeyValue("Depth", strconv.Itoa(s.Depth))
	printNewline()

	rows := make([][]string, 0, len(s.Variants))
	for _, vc := range s.Variants {
		rows = append(rows, []string{string(vc.Variant), strconv.Itoa(vc.Count)})
	}
	fmt.Println(summaryTable([]string{"Variant", "Count"}, rows))
}

// printQueryDemos runs the phytomer query demos and prints their hit counts.
func printQueryDemos(g *graph.Graph) {
	printNewline()
	fmt.Println(StyleTitle.Render("Topological queries"))
	printDetail("relational selections over the shoot")
	rows := make([][]string, 0, 4)
	for _, d := range phytomer.Demos() {
		rows = append(rows, []string{d.Name, strconv.Itoa(len(d.Select(g)))})
	}
	fmt.Println(summaryTable([]string{"Query", "Nodes"}, rows))
}

// summaryTable renders a two-column table in the house style.
func summaryTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if col == 0 {
				return StyleValue
			}
			return StyleNumber
		}).
		Render()
}
