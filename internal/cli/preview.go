package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dungenlab/dungen/pkg/dungeon"
	"github.com/dungenlab/dungen/pkg/pipeline"
	"github.com/dungenlab/dungen/pkg/render/ascii"
)

// previewCommand creates the preview command: an interactive terminal
// viewer for stepping through seeds.
func (c *CLI) previewCommand() *cobra.Command {
	var opts struct {
		config configFlags
		seed   int64
	}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Explore floor plans interactively in the terminal",
		Long: `Preview renders floor plans in the terminal and lets you step
through seeds with the arrow keys to find a layout you like.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config.resolve()
			if err != nil {
				return err
			}
			seed := opts.config.effectiveSeed(opts.seed)
			if seed == 0 {
				seed = pipeline.DefaultSeed
			}

			model, err := newPreviewModel(cfg, seed)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			if err != nil {
				return err
			}

			// Leave the chosen seed behind for scripting.
			if m, ok := final.(previewModel); ok {
				fmt.Printf("seed %d\n", m.seed)
			}
			return nil
		},
	}

	opts.config.register(cmd)
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "starting seed (default 42)")

	return cmd
}

// Preview styles.
var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	previewWarnStyle  = lipgloss.NewStyle().Foreground(colorYellow)
)

// previewModel is the bubbletea model for interactive seed exploration.
type previewModel struct {
	cfg  dungeon.Config
	seed int64
	plan *dungeon.FloorPlan
	err  error
}

func newPreviewModel(cfg dungeon.Config, seed int64) (previewModel, error) {
	plan, err := dungeon.Generate(cfg, seed)
	if err != nil {
		return previewModel{}, err
	}
	return previewModel{cfg: cfg, seed: seed, plan: plan}, nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "right", "l", "n":
			return m.regenerate(m.seed + 1), nil
		case "left", "h", "p":
			return m.regenerate(m.seed - 1), nil
		}
	}
	return m, nil
}

// regenerate swaps in the plan for a new seed; generation failures keep
// the current plan and surface the error in the footer.
func (m previewModel) regenerate(seed int64) previewModel {
	plan, err := dungeon.Generate(m.cfg, seed)
	if err != nil {
		m.err = err
		return m
	}
	m.seed = seed
	m.plan = plan
	m.err = nil
	return m
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(previewTitleStyle.Render(fmt.Sprintf("Seed %d", m.seed)))
	b.WriteString("  ")
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("%dx%d · %d rooms · %d corridors",
		m.plan.Width, m.plan.Length, len(m.plan.Rooms), len(m.plan.Graph.Edges()))))
	b.WriteString("\n\n")

	b.WriteString(ascii.Render(m.plan, ascii.Options{Color: true}))

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(previewWarnStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	if len(m.plan.Unconnected) > 0 {
		b.WriteString(previewWarnStyle.Render(fmt.Sprintf("%d unconnected room pairs", len(m.plan.Unconnected))))
		b.WriteString("\n")
	}
	b.WriteString(previewDimStyle.Render("←/→ step seed  ⏎ accept  q quit"))
	b.WriteString("\n")

	return b.String()
}
