package main

import (
	"bytes"
	"context"

	"github.com/spf13/cobra"

	"github.com/cwbudde/stencilbench/internal/bench"
	"github.com/cwbudde/stencilbench/internal/stencil"
)

var (
	benchN         int
	benchThreads   int
	benchBudget    int
	benchIters     int
	benchThreshold int
	benchTile      int
	benchLanes     int
	benchSeed      int64
	benchWeights   string
	benchJSON      bool
	benchOut       string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark every strategy on a random grid",
	Long: `Generates a random N x N grid, times the sequential baseline and then each
parallel strategy on it, and prints the speedups.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchN, "n", 282, "Grid side length")
	benchCmd.Flags().IntVar(&benchThreads, "threads", 0, "Worker threads (0 = number of CPUs)")
	benchCmd.Flags().IntVar(&benchBudget, "budget", bench.DefaultBudget, "Cell updates per strategy run")
	benchCmd.Flags().IntVar(&benchIters, "iters", 0, "Fixed iteration count (0 = derive from budget)")
	benchCmd.Flags().IntVar(&benchThreshold, "threshold", bench.DefaultSmallGridThreshold, "Grid side below which parallel strategies are skipped")
	benchCmd.Flags().IntVar(&benchTile, "tile", stencil.DefaultTileSize, "Tile side length")
	benchCmd.Flags().IntVar(&benchLanes, "lanes", 0, "Lane width 4 or 8 (0 = host default)")
	benchCmd.Flags().Int64Var(&benchSeed, "seed", 1, "Random seed for the input grid")
	benchCmd.Flags().StringVar(&benchWeights, "weights", "laplacian", "Weight preset: laplacian, smooth, edge")
	benchCmd.Flags().BoolVar(&benchJSON, "json", false, "Print the report as JSON")
	benchCmd.Flags().StringVar(&benchOut, "out", "", "Write the report to a file instead of stdout")

	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	input, err := randomGrid(benchN, benchSeed)
	if err != nil {
		return err
	}
	weights, err := stencil.LookupWeights(benchWeights)
	if err != nil {
		return err
	}

	h := bench.NewHarness(benchThreads)
	h.Budget = benchBudget
	h.Iterations = benchIters
	h.SmallGridThreshold = benchThreshold
	h.TileSize = benchTile
	h.Weights = weights
	if benchLanes != 0 {
		h.LaneWidth = benchLanes
	}

	report, err := h.Run(context.Background(), input)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if benchJSON {
		err = bench.WriteJSON(&buf, report)
	} else {
		err = bench.WriteText(&buf, report)
	}
	if err != nil {
		return err
	}
	return writeOutput(benchOut, buf.Bytes())
}
