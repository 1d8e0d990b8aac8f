package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/AleMorales/meristem/pkg/graph"
	"github.com/AleMorales/meristem/pkg/models/builtin"
	"github.com/AleMorales/meristem/pkg/sim"
)

// autoplayInterval is the delay between generations in autoplay mode.
const autoplayInterval = 400 * time.Millisecond

// watchCommand creates the watch command for stepping through a derivation.
func (c *CLI) watchCommand() *cobra.Command {
	var seed int64

	cmd := &cobra.Command{
		Use:   "watch <model>",
		Short: "Step through a derivation interactively",
		Long: `Watch grows one instance of an organism model and advances it one
generation per keypress, or continuously in autoplay mode. After every
step the view shows the structure summary of the new generation.`,
		Example: `  meristem watch algae
  meristem watch tree --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.watch(cmd.Context(), args[0], seed)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "random seed")

	return cmd
}

// watch builds an instance and hands it to the interactive program.
func (c *CLI) watch(ctx context.Context, name string, seed int64) error {
	m := builtin.Find(name)
	if m == nil {
		return fmt.Errorf("unknown model %q (available: %s)",
			name, strings.Join(builtin.Names(), ", "))
	}

	g, err := m.Build(seed)
	if err != nil {
		return fmt.Errorf("build %s: %w", name, err)
	}

	model := watchModel{name: name, graph: g, summary: summarize(g)}
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("watch %s: %w", name, err)
	}
	return nil
}

// =============================================================================
// watchModel - Interactive derivation stepping
// =============================================================================

// stepDoneMsg reports a completed derivation step.
type stepDoneMsg struct {
	summary  structureSummary
	duration time.Duration
	err      error
}

// tickMsg schedules the next step in autoplay mode.
type tickMsg time.Time

// watchModel is the bubbletea model for stepping through a derivation.
//
// Steps run in a command goroutine, so the view never reads the graph
// directly: each step delivers a fresh structureSummary and the view
// renders only that.
type watchModel struct {
	name     string
	graph    *graph.Graph
	summary  structureSummary
	last     time.Duration
	playing  bool
	stepping bool
	err      error
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

// step advances the graph one generation off the UI goroutine.
func (m watchModel) step() tea.Cmd {
	g := m.graph
	return func() tea.Msg {
		start := time.Now()
		if err := g.AdvanceGeneration(); err != nil {
			return stepDoneMsg{err: err}
		}
		return stepDoneMsg{summary: summarize(g), duration: time.Since(start)}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "enter", "n":
			if m.stepping || m.err != nil {
				return m, nil
			}
			m.stepping = true
			return m, m.step()
		case "p":
			m.playing = !m.playing
			if m.playing && !m.stepping && m.err == nil {
				m.stepping = true
				return m, m.step()
			}
		}
	case stepDoneMsg:
		m.stepping = false
		if msg.err != nil {
			m.err = msg.err
			m.playing = false
			return m, nil
		}
		m.summary = msg.summary
		m.last = msg.duration
		if m.playing {
			return m, tea.Tick(autoplayInterval, func(t time.Time) tea.Msg {
				return tickMsg(t)
			})
		}
	case tickMsg:
		if m.playing && !m.stepping && m.err == nil {
			m.stepping = true
			return m, m.step()
		}
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Watching " + m.name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("space/n step  p autoplay  q quit"))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s   %s %s   %s %s",
		StyleDim.Render("generation"), StyleNumber.Render(strconv.Itoa(m.summary.Generation)),
		StyleDim.Render("nodes"), StyleNumber.Render(strconv.Itoa(m.summary.Nodes)),
		StyleDim.Render("depth"), StyleNumber.Render(strconv.Itoa(m.summary.Depth)))
	if m.last > 0 {
		fmt.Fprintf(&b, "   %s %s",
			StyleDim.Render("step"), StyleNumber.Render(m.last.Round(time.Microsecond).String()))
	}
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.summary.Variants))
	for _, vc := range m.summary.Variants {
		rows = append(rows, []string{string(vc.Variant), strconv.Itoa(vc.Count)})
	}
	b.WriteString(summaryTable([]string{"Variant", "Count"}, rows))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString("\n" + StyleWarning.Render(fmt.Sprintf("step failed: %v", m.err)) + "\n")
	case m.stepping:
		b.WriteString("\n" + StyleDim.Render("advancing...") + "\n")
	case m.playing:
		b.WriteString("\n" + StyleHighlight.Render("autoplay") + "\n")
	}

	return b.String()
}
