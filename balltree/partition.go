package balltree

import "math/rand"

// quickselectPartition rearranges proj (length n = hi-lo+1, local indices
// 0..n-1) and the corresponding slots perm[lo+i] in lockstep so that, on
// return:
//
//   - perm is still a permutation of its original contents over [lo, hi];
//   - every i < target has proj[i] <= proj[target];
//   - every i >= target has proj[i] >= proj[target];
//   - the target/n-target split is exact, regardless of duplicate values.
//
// This is the "safer spec" selection from the design notes' open question
// on pivot duplicates: rather than picking a pivot value and then running a
// separate partition pass whose resulting split size depends on how many
// elements equal the pivot, this selects by position directly (an
// nth_element-style quickselect built on repeated Hoare partitioning), so
// the target/n-target split is exact even when every element is equal —
// the degenerate case in section 8 scenario S6.
func quickselectPartition(proj []float64, perm []int, lo, target int, rnd *rand.Rand) {
	n := len(proj)
	loLocal, hiLocal := 0, n-1

	for loLocal < hiLocal {
		pivotLocal := loLocal + rnd.Intn(hiLocal-loLocal+1)
		pivotVal := proj[pivotLocal]

		i, j := loLocal, hiLocal
		for {
			for proj[i] < pivotVal {
				i++
			}
			for proj[j] > pivotVal {
				j--
			}
			if i >= j {
				break
			}
			proj[i], proj[j] = proj[j], proj[i]
			perm[lo+i], perm[lo+j] = perm[lo+j], perm[lo+i]
			i++
			j--
		}

		if target <= j {
			hiLocal = j
		} else {
			loLocal = j + 1
		}
	}
}
