package balltree

// heapReplaceRoot overwrites the root of the bounded max-heap stored in
// dist/idx (both length k) with (value, index) and sifts it down to restore
// the max-heap property. This is the only mutation the heap supports: there
// is no general push, and no size field — the heap is initialized with +Inf
// sentinels by the caller, and the first k replacements displace those
// sentinels one at a time.
func heapReplaceRoot(dist []float64, idx []int, value float64, index int) {
	dist[0] = value
	idx[0] = index
	siftDown(dist, idx, 0)
}

// siftDown restores the max-heap property at i, per section 4.4: the larger
// of the two children is promoted whenever it exceeds the parent, and the
// walk stops as soon as neither child does.
func siftDown(dist []float64, idx []int, i int) {
	k := len(dist)
	for {
		l, r := 2*i+1, 2*i+2
		if l >= k {
			return
		}
		c := l
		if r < k && dist[r] > dist[l] {
			c = r
		}
		if dist[c] <= dist[i] {
			return
		}
		dist[i], dist[c] = dist[c], dist[i]
		idx[i], idx[c] = idx[c], idx[i]
		i = c
	}
}
