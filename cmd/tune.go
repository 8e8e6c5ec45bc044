package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/stencilbench/internal/bench"
	"github.com/cwbudde/stencilbench/internal/opt"
)

var (
	tuneN       int
	tuneIters   int
	tuneThreads int
	tuneMin     int
	tuneMax     int
	tunePop     int
	tuneTrials  int
	tuneSeed    int64
)

var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Search for the fastest tile size",
	Long: `Uses the mayfly optimizer to choose which tile sizes to time for the tiled
strategy, and reports the fastest one found.`,
	RunE: runTune,
}

func init() {
	tuneCmd.Flags().IntVar(&tuneN, "n", 1024, "Grid side length")
	tuneCmd.Flags().IntVar(&tuneIters, "iters", 5, "Iterations per timed run")
	tuneCmd.Flags().IntVar(&tuneThreads, "threads", 0, "Worker threads (0 = number of CPUs)")
	tuneCmd.Flags().IntVar(&tuneMin, "min", 4, "Smallest tile size to try")
	tuneCmd.Flags().IntVar(&tuneMax, "max", 128, "Largest tile size to try")
	tuneCmd.Flags().IntVar(&tunePop, "pop", opt.MinPopulation, "Optimizer population size")
	tuneCmd.Flags().IntVar(&tuneTrials, "trials", 10, "Optimizer iterations")
	tuneCmd.Flags().Int64Var(&tuneSeed, "seed", 42, "Random seed for the grid and optimizer")

	rootCmd.AddCommand(tuneCmd)
}

func runTune(cmd *cobra.Command, args []string) error {
	input, err := randomGrid(tuneN, tuneSeed)
	if err != nil {
		return err
	}

	h := bench.NewHarness(tuneThreads)
	h.Iterations = tuneIters

	res, err := h.TuneTileSize(context.Background(), input, opt.NewMayfly(tuneTrials, tunePop, tuneSeed), tuneMin, tuneMax)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Best tile size: %d (%.6f seconds, %d sizes tried)\n",
		res.TileSize, res.Elapsed.Seconds(), len(res.Measured))
	return nil
}
