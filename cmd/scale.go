package main

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/stencilbench/internal/bench"
)

var (
	scaleN         int
	scaleIters     int
	scaleStrategy  string
	scaleThreads   []int
	scaleSeed      int64
	scaleTolerance float64
)

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Measure how one strategy scales with thread count",
	Long: `Times one strategy at several thread counts on the same random grid and
flags any doubling of threads that made it slower than --tolerance allows.`,
	RunE: runScale,
}

func init() {
	scaleCmd.Flags().IntVar(&scaleN, "n", 1024, "Grid side length")
	scaleCmd.Flags().IntVar(&scaleIters, "iters", 10, "Iterations per run")
	scaleCmd.Flags().StringVar(&scaleStrategy, "strategy", "parallel", "Executor strategy")
	scaleCmd.Flags().IntSliceVar(&scaleThreads, "threads-list", bench.DefaultThreadCounts, "Thread counts to measure")
	scaleCmd.Flags().Int64Var(&scaleSeed, "seed", 1, "Random seed for the input grid")
	scaleCmd.Flags().Float64Var(&scaleTolerance, "tolerance", 1.25, "Allowed slowdown ratio when threads double")

	rootCmd.AddCommand(scaleCmd)
}

func runScale(cmd *cobra.Command, args []string) error {
	input, err := randomGrid(scaleN, scaleSeed)
	if err != nil {
		return err
	}

	h := bench.NewHarness(1)
	h.Iterations = scaleIters

	report, err := h.ScaleThreads(context.Background(), input, scaleStrategy, scaleThreads)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s on %dx%d, %d iterations, sequential %.6f seconds\n\n",
		report.Strategy, report.Rows, report.Cols, report.Iterations, report.Baseline.Elapsed.Seconds())

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THREADS\tSECONDS\tSPEEDUP")
	for _, p := range report.Points {
		fmt.Fprintf(w, "%d\t%.6f\t%.2fx\n", p.Threads, p.Elapsed.Seconds(), p.Speedup)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	regs := report.Regressions(scaleTolerance)
	for _, r := range regs {
		slog.Warn("Thread scaling regression", "from", r.From.Threads, "to", r.To.Threads, "ratio", fmt.Sprintf("%.2f", r.Ratio))
	}
	if len(regs) > 0 {
		return fmt.Errorf("%d thread scaling regression(s) above %.2fx", len(regs), scaleTolerance)
	}
	return nil
}
