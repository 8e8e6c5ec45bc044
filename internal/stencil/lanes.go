package stencil

import (
	"log/slog"

	"golang.org/x/sys/cpu"
)

// LaneBackend indicates which vector register width the host offers.
type LaneBackend int

const (
	LaneBackendGeneric LaneBackend = iota // No usable SIMD extension detected
	LaneBackendAVX2                       // x86-64, 256-bit (4 x float64)
	LaneBackendAVX512                     // x86-64, 512-bit (8 x float64)
	LaneBackendNEON                       // ARM64, 128-bit
)

func (b LaneBackend) String() string {
	switch b {
	case LaneBackendAVX2:
		return "AVX2"
	case LaneBackendAVX512:
		return "AVX-512"
	case LaneBackendNEON:
		return "NEON"
	case LaneBackendGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// ActiveLaneBackend reports the backend detected at initialization.
var ActiveLaneBackend LaneBackend

func init() {
	switch {
	case cpu.X86.HasAVX512F:
		ActiveLaneBackend = LaneBackendAVX512
	case cpu.X86.HasAVX2:
		ActiveLaneBackend = LaneBackendAVX2
	case cpu.ARM64.HasASIMD:
		ActiveLaneBackend = LaneBackendNEON
	default:
		ActiveLaneBackend = LaneBackendGeneric
	}
	slog.Debug("Lane backend detected", "backend", ActiveLaneBackend.String(), "lanes", PreferredLaneWidth())
}

// PreferredLaneWidth returns the number of float64 lanes per vector step
// that matches the host: 8 on AVX-512, 4 otherwise.
func PreferredLaneWidth() int {
	if ActiveLaneBackend == LaneBackendAVX512 {
		return 8
	}
	return 4
}

// SupportedLaneWidths lists the lane widths the vectorized executor accepts.
func SupportedLaneWidths() []int {
	return []int{4, 8}
}
