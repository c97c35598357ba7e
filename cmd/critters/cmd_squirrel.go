package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/critters/render"
	"github.com/katalvlaran/critters/squirrel"
	"github.com/katalvlaran/critters/tui"
)

var (
	inputLine string
	ceiling   int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Distribute walnuts into the tree and list every trip",
	Long: `Reads an input line "walnuts,capacity,structure", for example
"25,3,ABEG)H)))C)DFIK)L))JM))))", places one walnut per hole per pass in
pre-order and prints the filled tree and the trip tokens ("3ABE" is the
third walnut, carried along A→B→E).`,
	RunE: runSimulate,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Replay a simulation interactively in the terminal",
	RunE:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{simulateCmd, playCmd} {
		c.Flags().StringVarP(&inputLine, "input", "i", "", "Input line walnuts,capacity,structure (default: configured input)")
		c.Flags().IntVar(&ceiling, "ceiling", 0, "Per-hole walnut limit (default: configured ceiling)")
	}
	simulateCmd.Flags().StringVar(&pdfPath, "pdf", "", "Also export the filled tree to this PDF file")
}

// loadTree parses --input, falling back to the configured line.
func loadTree() (squirrel.Input, *squirrel.Node, int, error) {
	line := inputLine
	if line == "" {
		line = cfg.Squirrel.Input
	}
	in, err := squirrel.ParseInput(line)
	if err != nil {
		return in, nil, 0, err
	}
	root, err := in.Tree()
	if err != nil {
		return in, nil, 0, err
	}
	limit := ceiling
	if limit == 0 {
		limit = cfg.Squirrel.Ceiling
	}

	return in, root, limit, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	in, root, limit, err := loadTree()
	if err != nil {
		return err
	}
	dist, err := squirrel.Simulate(root, in.Walnuts, squirrel.WithCeiling(limit))
	if err != nil {
		return err
	}
	logger.Info("simulated",
		zap.Int("walnuts", in.Walnuts),
		zap.Int("placed", dist.Placed()),
		zap.String("structure", squirrel.Serialize(dist.Tree)))

	theme := render.DefaultTheme()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, theme.Title.Render(in.String()))
	fmt.Fprintln(out, theme.Frame.Render(theme.Tree(dist.Tree, uuid.Nil)))
	fmt.Fprintln(out, theme.Trips(dist.Trips, 10))
	fmt.Fprintf(out, "placed %d of %d walnuts\n", dist.Placed(), dist.Requested)
	if dist.Saturated() {
		fmt.Fprintf(out, "tree is full: %d walnuts left over\n", dist.Requested-dist.Placed())
	}

	if pdfPath == "" {
		return nil
	}

	return writePDF(pdfPath, func(f *os.File) error {
		return render.TreePDF(f, in.String(), dist.Tree, dist.Trips)
	})
}

func runPlay(cmd *cobra.Command, args []string) error {
	in, root, limit, err := loadTree()
	if err != nil {
		return err
	}
	// the TUI owns the terminal, so the run logs nowhere
	run, err := squirrel.NewRun(root, in.Walnuts, squirrel.WithRunCeiling(limit))
	if err != nil {
		return err
	}
	logger.Debug("play", zap.String("input", in.String()))

	m := tui.NewSquirrel(run, tui.WithInterval(cfg.Squirrel.StepDelay))
	p := tea.NewProgram(m, tea.WithContext(commandContext(cmd)), tea.WithOutput(cmd.OutOrStdout()))
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	return nil
}
