// Package balltree implements an immutable metric-space index: points are
// organized once, at construction time, into a hierarchy of bounding balls
// so that k-nearest-neighbor queries can prune large parts of the search
// space instead of scanning every indexed point.
//
// The index is built once (Build) and queried many times (Query). It does
// not support incremental insertion or deletion, is not safe to build
// concurrently, and never persists to disk — see the package-level
// specification this implementation follows for the full rationale.
package balltree

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/habedi/balltree/core"
)

// defaultLeafSize is used when WithLeafSize is not supplied. It mirrors the
// common rule-of-thumb leaf size for ball/kd-trees of modest dimensionality.
const defaultLeafSize = 40

// Tree is a ball tree index over a fixed set of 64-bit float vectors.
//
// The zero value is not usable; construct one with NewTree. Tree is safe
// for concurrent Query calls once Build has returned, but Build itself must
// not overlap with either another Build or any Query on the same instance.
type Tree struct {
	points [][]float64 // N x D, owned copy of the indexed vectors
	perm   []int       // permutation of 0..N, mutated in place during Build

	dimension int
	n         int
	leafSize  int
	seed      int64
	rnd       *rand.Rand

	metricName string
	pointwise  core.DistanceFunc
	pairwise   core.PairwiseFunc

	// Flat, array-encoded binary tree. Slot 0 is the root; node v's
	// children live at 2v+1 and 2v+2. Slots below a leaf are never reached
	// and are left at their zero value.
	dataLo    []int
	dataHi    []int
	center    [][]float64
	radius    []float64
	isLeaf    []bool
	height    int
	nodeCount int

	built bool
}

// options accumulates the values NewTree's functional options write into.
type options struct {
	leafSize int
	metric   string
	seed     *int64
}

// Option configures a Tree at construction time.
type Option func(*options)

// WithLeafSize sets the maximum number of points held in any leaf node.
// Non-positive values are ignored in favor of the default.
func WithLeafSize(n int) Option {
	return func(o *options) { o.leafSize = n }
}

// WithMetric selects the distance metric by name: "euclidean", "manhattan",
// or "hamming". Unrecognized names fall back to euclidean.
func WithMetric(name string) Option {
	return func(o *options) { o.metric = name }
}

// WithSeed fixes the random seed used to draw pivots during Build, for
// reproducible tree shapes across runs.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = &seed }
}

// NewTree validates and stores a dataset for indexing. It does not build the
// tree; call Build before issuing any Query.
func NewTree(points [][]float64, opts ...Option) (*Tree, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no points supplied", core.ErrEmptyInput)
	}

	dimension := len(points[0])
	if dimension == 0 {
		return nil, fmt.Errorf("%w: points have zero dimension", core.ErrEmptyInput)
	}
	for i, p := range points {
		if len(p) != dimension {
			return nil, fmt.Errorf("%w: row %d has dimension %d, expected %d",
				core.ErrDimensionMismatch, i, len(p), dimension)
		}
	}

	cfg := options{leafSize: defaultLeafSize, metric: "euclidean"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.leafSize <= 0 {
		cfg.leafSize = defaultLeafSize
	}

	pointwise, pairwise, resolvedMetric := core.Resolve(cfg.metric)

	owned := make([][]float64, len(points))
	firstBadRow := -1
	for i, p := range points {
		row := make([]float64, len(p))
		copy(row, p)
		if firstBadRow < 0 {
			for _, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					firstBadRow = i
					break
				}
			}
		}
		owned[i] = row
	}
	if firstBadRow >= 0 {
		log.Warn().Int("row", firstBadRow).
			Msg("non-finite coordinate in input points; affected distances will propagate NaN/Inf and degrade pruning to a linear scan")
	}

	n := len(owned)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	return &Tree{
		points:     owned,
		perm:       perm,
		dimension:  dimension,
		n:          n,
		leafSize:   cfg.leafSize,
		metricName: resolvedMetric,
		pointwise:  pointwise,
		pairwise:   pairwise,
		seed:       core.GetSeed(cfg.seed),
	}, nil
}

// Build constructs the tree. It is idempotent: calling it again on an
// already-built Tree is a no-op, since the index is immutable once built.
func (t *Tree) Build() error {
	if t.built {
		return nil
	}
	start := time.Now()

	t.rnd = rand.New(rand.NewSource(t.seed))
	t.height = computeHeight(t.n, t.leafSize)
	t.nodeCount = (1 << uint(t.height)) - 1

	t.dataLo = make([]int, t.nodeCount)
	t.dataHi = make([]int, t.nodeCount)
	t.isLeaf = make([]bool, t.nodeCount)
	t.radius = make([]float64, t.nodeCount)
	t.center = make([][]float64, t.nodeCount)

	t.buildNode(0, 0, t.n-1)
	t.built = true

	log.Info().
		Int("node_count", t.nodeCount).
		Int("height", t.height).
		Int("leaf_size", t.leafSize).
		Int("n", t.n).
		Int("dimension", t.dimension).
		Str("metric", t.metricName).
		Dur("elapsed", time.Since(start)).
		Msg("ball tree build complete")

	return nil
}

// computeHeight applies section 4.2's shape decision, including the "N < L"
// edge case where the root itself is a leaf.
func computeHeight(n, leafSize int) int {
	if n <= leafSize {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)/float64(leafSize)))) + 1
}

// Stats reports introspection metadata about the tree. Calling it before
// Build returns the portion of the metadata known from construction alone.
func (t *Tree) Stats() core.TreeStats {
	sizeBytes := t.n * 8          // perm
	sizeBytes += t.nodeCount * (2*8 + 8 + 1) // dataLo/dataHi/radius/isLeaf
	sizeBytes += t.nodeCount * t.dimension * 8 // center vectors

	return core.TreeStats{
		N:         t.n,
		Dimension: t.dimension,
		NodeCount: t.nodeCount,
		Height:    t.height,
		LeafSize:  t.leafSize,
		Metric:    t.metricName,
		SizeBytes: sizeBytes,
	}
}
