package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/stencilbench/internal/grid"
	"github.com/cwbudde/stencilbench/internal/gridio"
	"github.com/cwbudde/stencilbench/internal/stencil"
)

var edgesPNG bool

var edgesCmd = &cobra.Command{
	Use:   "edges <input> <output> <height> <width> <threads>",
	Short: "Run edge detection on an image grid",
	Long: `Applies the edge-detection kernel once, offsets the response by 128 and
clamps it to [0, 255]. Prints the kernel time in seconds.

With --png the input and output are PNG images and the arguments are
<input> <output> <threads>.`,
	Args: edgesArgs,
	RunE: runEdges,
}

func init() {
	edgesCmd.Flags().BoolVar(&edgesPNG, "png", false, "Read and write PNG images instead of text grids")
	rootCmd.AddCommand(edgesCmd)
}

func edgesArgs(cmd *cobra.Command, args []string) error {
	if edgesPNG {
		return cobra.ExactArgs(3)(cmd, args)
	}
	return cobra.ExactArgs(5)(cmd, args)
}

func runEdges(cmd *cobra.Command, args []string) error {
	var (
		in      *grid.Grid
		threads int
		err     error
	)

	if edgesPNG {
		if threads, err = parsePositive("threads", args[2]); err != nil {
			return err
		}
		if in, err = gridio.LoadImageFile(args[0]); err != nil {
			return err
		}
	} else {
		rows, cols, n, err := parseShape(args[2], args[3], args[4])
		if err != nil {
			return err
		}
		threads = n
		if in, err = gridio.LoadFile(args[0], rows, cols); err != nil {
			return err
		}
	}

	start := time.Now()
	out, err := stencil.DetectEdges(in, threads)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	slog.Info("Edge detection complete", "rows", in.Rows, "cols", in.Cols, "threads", threads, "elapsed", elapsed)

	if edgesPNG {
		err = gridio.SaveImageFile(args[1], out)
	} else {
		err = gridio.SaveFile(args[1], out)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", elapsed.Seconds())
	return nil
}
