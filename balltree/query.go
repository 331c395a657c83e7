package balltree

import (
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/habedi/balltree/core"
)

// Query returns the k nearest indexed points to each row of queries.
//
// Each result row is the bounded max-heap's contents at termination:
// dist[q][0] is the largest of the row's k distances, and the remaining
// entries have no imposed order. Callers that need sorted output sort
// externally.
//
// Rows are independent and are processed across a worker pool sized to
// runtime.NumCPU — the single-row traversal itself remains a sequential
// recursion, per section 5 of the specification.
func (t *Tree) Query(queries [][]float64, k int) ([][]int, [][]float64, error) {
	if !t.built {
		return nil, nil, fmt.Errorf("%w", core.ErrNotBuilt)
	}
	if k <= 0 || k > t.n {
		return nil, nil, fmt.Errorf("%w: k=%d, n=%d", core.ErrInvalidK, k, t.n)
	}
	for qi, q := range queries {
		if len(q) != t.dimension {
			return nil, nil, fmt.Errorf("%w: query row %d has dimension %d, index has dimension %d",
				core.ErrDimensionMismatch, qi, len(q), t.dimension)
		}
	}

	start := time.Now()
	numQueries := len(queries)
	idxOut := make([][]int, numQueries)
	distOut := make([][]float64, numQueries)
	for q := 0; q < numQueries; q++ {
		idxOut[q] = make([]int, k)
		distOut[q] = make([]float64, k)
	}

	if numQueries > 0 {
		numWorkers := runtime.NumCPU()
		if numWorkers > numQueries {
			numWorkers = numQueries
		}
		if numWorkers < 1 {
			numWorkers = 1
		}
		chunk := (numQueries + numWorkers - 1) / numWorkers

		var wg sync.WaitGroup
		for w := 0; w < numWorkers; w++ {
			lo := w * chunk
			hi := lo + chunk
			if hi > numQueries {
				hi = numQueries
			}
			if lo >= hi {
				continue
			}
			wg.Add(1)
			go func(lo, hi int) {
				defer wg.Done()
				for qi := lo; qi < hi; qi++ {
					t.queryRow(queries[qi], idxOut[qi], distOut[qi])
				}
			}(lo, hi)
		}
		wg.Wait()
	}

	log.Debug().
		Int("queries", numQueries).
		Int("k", k).
		Dur("elapsed", time.Since(start)).
		Msg("ball tree batch query complete")

	return idxOut, distOut, nil
}

// queryRow runs the bounded best-first traversal for a single query vector,
// writing its result directly into the caller-owned idx/dist heap slices.
func (t *Tree) queryRow(query []float64, idx []int, dist []float64) {
	for i := range dist {
		dist[i] = math.Inf(1)
		idx[i] = 0
	}

	dc := t.pointwise(query, t.center[0])
	t.traverse(0, query, dc, idx, dist)
}

// traverse implements the pruning recursion of section 4.3: a subtree is
// entered only when its lower bound on distance to query (dc - radius)
// could still beat the current kth-best, and internal nodes descend into
// the nearer child first so the kth-best tightens before the farther
// subtree is considered.
func (t *Tree) traverse(node int, query []float64, dc float64, idx []int, dist []float64) {
	if dc-t.radius[node] > dist[0] {
		return
	}

	if t.isLeaf[node] {
		for i := t.dataLo[node]; i <= t.dataHi[node]; i++ {
			p := t.perm[i]
			d := t.pointwise(t.points[p], query)
			if d < dist[0] {
				heapReplaceRoot(dist, idx, d, p)
			}
		}
		return
	}

	left, right := 2*node+1, 2*node+2
	dcLeft := t.pointwise(query, t.center[left])
	dcRight := t.pointwise(query, t.center[right])

	if dcLeft <= dcRight {
		t.traverse(left, query, dcLeft, idx, dist)
		t.traverse(right, query, dcRight, idx, dist)
	} else {
		t.traverse(right, query, dcRight, idx, dist)
		t.traverse(left, query, dcLeft, idx, dist)
	}
}
