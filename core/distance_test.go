package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestDistanceFunctions(t *testing.T) {
	tests := []struct {
		name              string
		a, b              []float64
		expectedEuclidean float64
		expectedManhattan float64
		expectedHamming   float64
	}{
		{
			name:              "identical vectors",
			a:                 []float64{1, 2, 3, 4, 5, 6},
			b:                 []float64{1, 2, 3, 4, 5, 6},
			expectedEuclidean: 0,
			expectedManhattan: 0,
			expectedHamming:   0,
		},
		{
			name:              "opposite order",
			a:                 []float64{1, 2, 3, 4, 5, 6},
			b:                 []float64{6, 5, 4, 3, 2, 1},
			expectedEuclidean: math.Sqrt(70),
			expectedManhattan: 18,
			expectedHamming:   6,
		},
		{
			name:              "binary opposites",
			a:                 []float64{1, 0, 0, 1, 0, 1},
			b:                 []float64{0, 1, 1, 0, 1, 0},
			expectedEuclidean: math.Sqrt(6),
			expectedManhattan: 6,
			expectedHamming:   6,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			euclid := Euclidean(tt.a, tt.b)
			manhattan := Manhattan(tt.a, tt.b)
			hamming := Hamming(tt.a, tt.b)

			if !almostEqual(euclid, tt.expectedEuclidean, 1e-9) {
				t.Errorf("Euclidean(%v, %v) = %v; want %v", tt.a, tt.b, euclid, tt.expectedEuclidean)
			}
			if !almostEqual(manhattan, tt.expectedManhattan, 1e-9) {
				t.Errorf("Manhattan(%v, %v) = %v; want %v", tt.a, tt.b, manhattan, tt.expectedManhattan)
			}
			if !almostEqual(hamming, tt.expectedHamming, 1e-9) {
				t.Errorf("Hamming(%v, %v) = %v; want %v", tt.a, tt.b, hamming, tt.expectedHamming)
			}
		})
	}
}

func TestHammingExactEquality(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{1, 2, 0, 4, 9}
	assert.Equal(t, float64(2), Hamming(a, b))
}

func TestHammingNoTolerance(t *testing.T) {
	a := []float64{1.0}
	b := []float64{1.0 + 1e-15}
	// Exact equality comparison: even a tiny float difference counts as unequal.
	assert.Equal(t, float64(1), Hamming(a, b))
}

func TestPairwiseMatchesPointwise(t *testing.T) {
	rows := [][]float64{
		{0, 0},
		{1, 0},
		{0, 1},
		{3, 4},
	}
	query := []float64{0, 0}

	euclid := EuclideanPairwise(rows, query)
	manhattan := ManhattanPairwise(rows, query)
	hamming := HammingPairwise(rows, query)

	for i, row := range rows {
		assert.InDelta(t, Euclidean(row, query), euclid[i], 1e-9)
		assert.InDelta(t, Manhattan(row, query), manhattan[i], 1e-9)
		assert.Equal(t, Hamming(row, query), hamming[i])
	}
}

func TestResolveKnownMetrics(t *testing.T) {
	for _, name := range []string{"euclidean", "manhattan", "hamming"} {
		_, _, resolved := Resolve(name)
		assert.Equal(t, name, resolved)
	}
}

func TestResolveDefaultAndFallback(t *testing.T) {
	_, _, resolved := Resolve("")
	assert.Equal(t, "euclidean", resolved)

	_, _, resolved = Resolve("nonexistent-metric")
	assert.Equal(t, "euclidean", resolved)
}
