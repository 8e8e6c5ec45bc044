package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/cwbudde/stencilbench/internal/grid"
)

// parsePositive parses a command-line integer that must be at least 1.
func parsePositive(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", name, s)
	}
	return v, nil
}

// parseShape parses the height, width and thread-count arguments.
func parseShape(height, width, threads string) (rows, cols, n int, err error) {
	if rows, err = parsePositive("height", height); err != nil {
		return
	}
	if cols, err = parsePositive("width", width); err != nil {
		return
	}
	n, err = parsePositive("threads", threads)
	return
}

// randomGrid returns an n x n grid filled from a seeded source.
func randomGrid(n int, seed int64) (*grid.Grid, error) {
	g, err := grid.NewSquare(n)
	if err != nil {
		return nil, err
	}
	g.Randomize(rand.New(rand.NewSource(seed)))
	return g, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
