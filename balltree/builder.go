package balltree

import (
	"gonum.org/v1/gonum/floats"
)

// buildNode recursively partitions the inclusive perm range [lo, hi] into
// node v and, for internal nodes, its two children. Construction is
// sequential: the partition at this node must finish before either child
// starts, since each child works on its own half of t.perm as that
// partition left it. The two children are then built one after another;
// their ranges are disjoint, but both draw pivots from the single t.rnd,
// so a given seed always yields the same tree.
func (t *Tree) buildNode(v, lo, hi int) {
	n := hi - lo + 1

	if n <= t.leafSize {
		center, radius := t.computeCenterRadius(lo, hi)
		t.center[v] = center
		t.radius[v] = radius
		t.dataLo[v] = lo
		t.dataHi[v] = hi
		t.isLeaf[v] = true
		return
	}

	r := lo + t.rnd.Intn(n)
	x0 := t.points[t.perm[r]]
	x1 := t.argFarthest(lo, hi, x0)
	x2 := t.argFarthest(lo, hi, x1)

	u := make([]float64, t.dimension)
	floats.SubTo(u, x1, x2)

	proj := make([]float64, n)
	for i := 0; i < n; i++ {
		proj[i] = floats.Dot(t.points[t.perm[lo+i]], u)
	}

	m := n / 2
	quickselectPartition(proj, t.perm, lo, m, t.rnd)

	center, radius := t.computeCenterRadius(lo, hi)
	t.center[v] = center
	t.radius[v] = radius
	t.dataLo[v] = lo
	t.dataHi[v] = hi
	t.isLeaf[v] = false

	left, right := 2*v+1, 2*v+2
	t.buildNode(left, lo, lo+m-1)
	t.buildNode(right, lo+m, hi)
}

// gatherRows collects the point vectors addressed by perm[lo..hi], in perm
// order. The returned slice aliases the underlying point vectors; it is
// never mutated by callers.
func (t *Tree) gatherRows(lo, hi int) [][]float64 {
	rows := make([][]float64, hi-lo+1)
	for i := lo; i <= hi; i++ {
		rows[i-lo] = t.points[t.perm[i]]
	}
	return rows
}

// argFarthest returns the point vector in perm[lo..hi] farthest from x under
// the tree's pairwise kernel, breaking ties by keeping the first point
// encountered when scanning lo..hi in order.
func (t *Tree) argFarthest(lo, hi int, x []float64) []float64 {
	rows := t.gatherRows(lo, hi)
	dists := t.pairwise(rows, x)

	bestIdx, bestDist := 0, dists[0]
	for i := 1; i < len(dists); i++ {
		if dists[i] > bestDist {
			bestDist = dists[i]
			bestIdx = i
		}
	}
	return rows[bestIdx]
}

// computeCenterRadius computes the coordinate-wise mean of perm[lo..hi] and
// the maximum distance from that mean to any point in the range, per
// section 4.2 steps 1 and 2(f).
func (t *Tree) computeCenterRadius(lo, hi int) ([]float64, float64) {
	rows := t.gatherRows(lo, hi)

	center := make([]float64, t.dimension)
	for _, row := range rows {
		floats.Add(center, row)
	}
	floats.Scale(1/float64(len(rows)), center)

	dists := t.pairwise(rows, center)
	radius := 0.0
	for _, d := range dists {
		if d > radius {
			radius = d
		}
	}
	return center, radius
}
