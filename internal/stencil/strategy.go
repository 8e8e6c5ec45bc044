package stencil

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy identifies an executor implementation.
type Strategy string

const (
	StrategySequential Strategy = "sequential"
	StrategyParallel   Strategy = "parallel"
	StrategyTiled      Strategy = "tiled"
	StrategyVectorized Strategy = "vectorized"
)

// ErrUnknownStrategy is returned when the name does not match a known strategy.
var ErrUnknownStrategy = errors.New("unknown execution strategy")

// NormalizeStrategy maps arbitrary user input to a canonical strategy identifier.
func NormalizeStrategy(name string) Strategy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "seq", "sequential", "serial":
		return StrategySequential
	case "par", "parallel", "omp":
		return StrategyParallel
	case "tile", "tiled", "tiling", "blocked":
		return StrategyTiled
	case "simd", "vector", "vectorized", "vec":
		return StrategyVectorized
	default:
		return Strategy(name)
	}
}

// SupportedStrategies returns the strategies understood by NewExecutor, in
// benchmark order.
func SupportedStrategies() []Strategy {
	return []Strategy{StrategySequential, StrategyParallel, StrategyTiled, StrategyVectorized}
}

// ParallelStrategies returns the strategies compared against the sequential baseline.
func ParallelStrategies() []Strategy {
	return []Strategy{StrategyParallel, StrategyTiled, StrategyVectorized}
}

// NewExecutor constructs the executor for the requested strategy.
func NewExecutor(name string) (Executor, error) {
	switch NormalizeStrategy(name) {
	case StrategySequential:
		return NewSequential(), nil
	case StrategyParallel:
		return NewParallel(), nil
	case StrategyTiled:
		return NewTiled(), nil
	case StrategyVectorized:
		return NewVectorized(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
}
