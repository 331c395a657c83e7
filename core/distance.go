package core

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

// DistanceFunc computes the distance between two vectors of equal length.
type DistanceFunc func(a, b []float64) float64

// PairwiseFunc computes the distance from every row of A to the single
// vector b, writing one distance per row of A. It is the "pairwise-to-one"
// kernel shape the ball tree builder and query engine rely on: no metric
// ever computes a full cross product between two matrices.
type PairwiseFunc func(a [][]float64, b []float64) []float64

// Euclidean computes the L2 distance between a and b.
func Euclidean(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// Manhattan computes the L1 distance between a and b.
func Manhattan(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// Hamming counts the number of coordinates at which a and b differ, using
// exact floating-point equality. It is not an Lp norm, so it cannot be
// expressed with floats.Distance and is hand-rolled here, manually unrolled
// by core.UnrollWidth lanes the same way the SIMD-shaped kernels in this
// package would be.
func Hamming(a, b []float64) float64 {
	width := UnrollWidth()
	n := len(a)
	var total float64
	i := 0
	for ; i+width <= n; i += width {
		var partial float64
		for j := 0; j < width; j++ {
			if a[i+j] != b[i+j] {
				partial++
			}
		}
		total += partial
	}
	for ; i < n; i++ {
		if a[i] != b[i] {
			total++
		}
	}
	return total
}

// EuclideanPairwise computes the Euclidean distance from b to every row of a.
func EuclideanPairwise(a [][]float64, b []float64) []float64 {
	out := make([]float64, len(a))
	for i, row := range a {
		out[i] = Euclidean(row, b)
	}
	return out
}

// ManhattanPairwise computes the Manhattan distance from b to every row of a.
func ManhattanPairwise(a [][]float64, b []float64) []float64 {
	out := make([]float64, len(a))
	for i, row := range a {
		out[i] = Manhattan(row, b)
	}
	return out
}

// HammingPairwise computes the Hamming distance from b to every row of a.
func HammingPairwise(a [][]float64, b []float64) []float64 {
	out := make([]float64, len(a))
	for i, row := range a {
		out[i] = Hamming(row, b)
	}
	return out
}

// metricEntry bundles the pointwise and pairwise-to-one forms of a metric
// under its human-readable name.
type metricEntry struct {
	name     string
	pointwise DistanceFunc
	pairwise  PairwiseFunc
}

// Metrics is a registry of the three supported distance metrics, keyed by
// name. Use Resolve to look up a metric with the spec-mandated fallback to
// euclidean for unrecognized names.
var Metrics = map[string]metricEntry{
	"euclidean": {"euclidean", Euclidean, EuclideanPairwise},
	"manhattan": {"manhattan", Manhattan, ManhattanPairwise},
	"hamming":   {"hamming", Hamming, HammingPairwise},
}

// Resolve looks up a metric by name. An empty name resolves to euclidean
// (the documented default); any other unrecognized name also falls back to
// euclidean, with a warning logged naming the offending value, per the
// external-interface contract in section 6 of the specification.
func Resolve(name string) (DistanceFunc, PairwiseFunc, string) {
	if name == "" {
		name = "euclidean"
	}
	if m, ok := Metrics[name]; ok {
		return m.pointwise, m.pairwise, m.name
	}
	log.Warn().Str("metric", name).Msg("unrecognized metric name, falling back to euclidean")
	m := Metrics["euclidean"]
	return m.pointwise, m.pairwise, m.name
}
