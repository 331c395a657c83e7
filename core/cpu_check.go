package core

import (
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/cpu"
)

// UnrollWidth reports how many lanes the Hamming kernel manually unrolls its
// counting loop by. It is a pure-Go stand-in for the vectorized path: this
// package does not use cgo or actual SIMD intrinsics, but Hamming's inner
// loop in distance.go is still written as partial-sum blocks of this width
// so the compiler has a shot at auto-vectorizing it, and so the loop shape
// tracks what real SIMD registers on the host could hold. Euclidean and
// Manhattan delegate to floats.Distance and do not use this width.
func UnrollWidth() int {
	cpuOnce.Do(logCPUFeatures)
	if cpu.X86.HasAVX2 {
		return 8
	}
	if cpu.X86.HasAVX {
		return 4
	}
	return 1
}

var cpuOnce sync.Once

func logCPUFeatures() {
	log.Debug().
		Bool("avx", cpu.X86.HasAVX).
		Bool("avx2", cpu.X86.HasAVX2).
		Bool("fma", cpu.X86.HasFMA).
		Msg("detected CPU features for distance kernel unrolling")
}
