package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/critters/scenario"
)

var (
	batchWorkers int
	batchOut     string
)

var batchCmd = &cobra.Command{
	Use:   "batch [scenarios.yaml]",
	Short: "Run a YAML file of scenarios concurrently and write the outcomes as YAML",
	Example: `  critters batch scenarios.yaml --workers 8 --out outcomes.yaml

scenarios.yaml:
  scenarios:
    - name: board
      kind: zigzag
    - name: forest
      kind: simulate
      input: "12,3,AB)C)"
      replay: true`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Concurrent scenarios (default: squirrel.workers)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Write outcomes here instead of stdout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenarios, err := scenario.Load(args[0])
	if err != nil {
		return err
	}
	workers := batchWorkers
	if workers == 0 {
		workers = cfg.Squirrel.Workers
	}

	outcomes, err := scenario.RunAll(commandContext(cmd), scenarios,
		scenario.WithWorkers(workers),
		scenario.WithMatrix(cfg.Turtle.Matrix),
		scenario.WithInput(cfg.Squirrel.Input),
		scenario.WithLogger(logger))
	if err != nil {
		return err
	}
	failed := 0
	for _, o := range outcomes {
		if o.Error != "" {
			failed++
		}
	}
	logger.Info("batch done", zap.Int("scenarios", len(outcomes)), zap.Int("failed", failed))

	var out io.Writer = cmd.OutOrStdout()
	if batchOut != "" {
		f, err := os.Create(batchOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", batchOut, err)
		}
		defer f.Close()
		out = f
	}

	return scenario.WriteYAML(out, outcomes)
}
