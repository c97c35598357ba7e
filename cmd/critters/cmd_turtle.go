package main

import (
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/critters/grid"
	"github.com/katalvlaran/critters/render"
	"github.com/katalvlaran/critters/tui"
	"github.com/katalvlaran/critters/turtle"
)

var (
	matrixFile string
	animate    bool
	pdfPath    string
	spiralRow  int
	spiralCol  int
)

var zigzagCmd = &cobra.Command{
	Use:   "zigzag",
	Short: "Sweep the grid column by column, alternating direction",
	RunE:  runZigZag,
}

var spiralCmd = &cobra.Command{
	Use:   "spiral",
	Short: "Sweep the grid in a clockwise spiral from --row/--col",
	Long: `Sweeps outwards from the start cell: right, down, left, up with run
lengths 1, 1, 2, 2, 3, 3, ... until every cell is visited. A start outside
the grid yields an empty path.`,
	RunE: runSpiral,
}

var routesCmd = &cobra.Command{
	Use:   "routes [start-value] [end-value]",
	Short: "List straight routes from every start-value cell to end-value cells",
	Example: `  critters routes 2 8
  critters routes 0 9 --matrix board.yaml --pdf routes.pdf`,
	Args: cobra.ExactArgs(2),
	RunE: runRoutes,
}

func init() {
	for _, c := range []*cobra.Command{zigzagCmd, spiralCmd, routesCmd} {
		c.Flags().StringVarP(&matrixFile, "matrix", "m", "", "YAML file holding a rectangular int matrix (default: configured matrix)")
		c.Flags().StringVar(&pdfPath, "pdf", "", "Also export the result to this PDF file")
	}
	zigzagCmd.Flags().BoolVarP(&animate, "animate", "a", false, "Replay the sweep cell by cell")
	spiralCmd.Flags().BoolVarP(&animate, "animate", "a", false, "Replay the sweep cell by cell")
	spiralCmd.Flags().IntVar(&spiralRow, "row", 0, "Start row")
	spiralCmd.Flags().IntVar(&spiralCol, "col", 0, "Start column")
}

// loadGrid reads --matrix, falling back to the configured matrix.
func loadGrid() (*grid.Grid, error) {
	if matrixFile == "" {
		return cfg.Turtle.Grid()
	}
	data, err := os.ReadFile(matrixFile)
	if err != nil {
		return nil, fmt.Errorf("read matrix: %w", err)
	}
	var values [][]int
	if err = yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode matrix %s: %w", matrixFile, err)
	}

	return grid.New(values)
}

func runZigZag(cmd *cobra.Command, args []string) error {
	g, err := loadGrid()
	if err != nil {
		return err
	}
	path := turtle.ZigZagSweep(g)
	logger.Debug("zigzag sweep", zap.Int("rows", g.Rows()), zap.Int("cols", g.Cols()), zap.Int("cells", len(path)))

	return showPath(cmd, "zigzag", g, path)
}

func runSpiral(cmd *cobra.Command, args []string) error {
	g, err := loadGrid()
	if err != nil {
		return err
	}
	start := grid.Position{Row: spiralRow, Col: spiralCol}
	path := turtle.SpiralSweep(g, start)
	if len(path) == 0 {
		logger.Warn("spiral start outside the grid", zap.Stringer("start", start))
	}

	return showPath(cmd, fmt.Sprintf("spiral from %s", start), g, path)
}

// showPath animates path or prints it, then exports it when --pdf is set.
func showPath(cmd *cobra.Command, title string, g *grid.Grid, path []grid.Position) error {
	theme := render.DefaultTheme()
	if animate {
		m, err := tui.NewWalk(title, g, path, tui.WithInterval(cfg.Turtle.StepDelay), tui.WithTheme(theme))
		if err != nil {
			return err
		}
		p := tea.NewProgram(m, tea.WithContext(commandContext(cmd)), tea.WithOutput(cmd.OutOrStdout()))
		if _, err = p.Run(); err != nil {
			return fmt.Errorf("animation: %w", err)
		}
	} else {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render(title))
		fmt.Fprintln(out, theme.Grid(render.GridView{Grid: g, Visited: path}))
		fmt.Fprintln(out, theme.Path(g, path))
		fmt.Fprintf(out, "%d of %d cells\n", len(path), g.Size())
	}

	if pdfPath == "" {
		return nil
	}

	return writePDF(pdfPath, func(f *os.File) error {
		return render.GridPDF(f, title, g, path, nil)
	})
}

func runRoutes(cmd *cobra.Command, args []string) error {
	start, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("start value %q: %w", args[0], err)
	}
	end, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("end value %q: %w", args[1], err)
	}
	g, err := loadGrid()
	if err != nil {
		return err
	}

	routes := turtle.FindRoutes(g, start, end)
	logger.Debug("routes", zap.Int("start", start), zap.Int("end", end), zap.Int("found", len(routes)))

	theme := render.DefaultTheme()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("routes %d → %d", start, end)))
	fmt.Fprintln(out, theme.Routes(routes))

	if pdfPath == "" {
		return nil
	}

	return writePDF(pdfPath, func(f *os.File) error {
		return render.GridPDF(f, fmt.Sprintf("routes %d to %d", start, end), g, nil, routes)
	})
}
