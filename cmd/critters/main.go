// Command critters runs the turtle path engine and the squirrel tree
// simulator from the terminal, as a batch job or behind an HTTP server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/critters/config"
	"github.com/katalvlaran/critters/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "critters",
	Short: "Turtle grid sweeps and squirrel tree simulations",
	Long: `critters drives two small engines:

  turtle    sweeps a number grid (zigzag, spiral) and finds straight routes
            between two values.
  squirrel  parses a serialized tree of storage holes, distributes walnuts
            into it and replays the forager's trips step by step.

Configuration is read from --config (YAML), then CRITTERS_* environment
variables, e.g. CRITTERS_SQUIRREL_INPUT or CRITTERS_SERVER_ADDR.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Log, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	rootCmd.AddCommand(zigzagCmd)
	rootCmd.AddCommand(spiralCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandContext returns the command's context, or Background for commands
// invoked directly (tests).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}

// writePDF creates path and hands it to draw.
func writePDF(path string, draw func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err = draw(f); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	logger.Info("pdf written", zap.String("path", path))

	return nil
}
