package evolve

// fitnessLookup resolves the fitness of the individual currently addressed by
// a handle. Handles are payload-slot indices; see store.go.
type fitnessLookup func(handle int) int64

// partialSort ranks handles[lo:hi] by fitness so that, afterward, every
// position in [0, survivors) holds the correctly ranked individuals. Based on
// base spec §4.1: quicksort with a median-of-three pivot down to subarrays
// smaller than cutoff, then insertion sort; ties are broken by handle index
// ascending so results are reproducible for a fixed PRNG seed (§9 Open
// Questions). Positions at or past survivors are partitioned but not
// necessarily fully ordered among themselves — the spec permits exploiting
// this, so recursion into ranges entirely at or past survivors is skipped.
func partialSort(handles []int, lo, hi, survivors, cutoff int, sortMax bool, fitness fitnessLookup) {
	if lo >= survivors {
		// Nothing left in this range needs to be correctly ranked.
		return
	}
	// partition needs at least three elements for its median-of-three pivot.
	if hi-lo < cutoff || hi-lo < 3 {
		insertionSort(handles, lo, hi, sortMax, fitness)
		return
	}
	p := partition(handles, lo, hi, sortMax, fitness)
	partialSort(handles, lo, p, survivors, cutoff, sortMax, fitness)
	if p+1 < survivors {
		partialSort(handles, p+1, hi, survivors, cutoff, sortMax, fitness)
	}
}

// less reports whether handle a should sort strictly before handle b under
// the configured ordering, with handle-index tie-breaking.
func less(a, b int, sortMax bool, fitness fitnessLookup) bool {
	fa, fb := fitness(a), fitness(b)
	if fa == fb {
		return a < b
	}
	if sortMax {
		return fa > fb
	}
	return fa < fb
}

func insertionSort(handles []int, lo, hi int, sortMax bool, fitness fitnessLookup) {
	for i := lo + 1; i < hi; i++ {
		v := handles[i]
		j := i - 1
		for j >= lo && less(v, handles[j], sortMax, fitness) {
			handles[j+1] = handles[j]
			j--
		}
		handles[j+1] = v
	}
}

// partition performs a single Lomuto-style partition step around a
// median-of-three pivot, returning the final index of the pivot element.
func partition(handles []int, lo, hi int, sortMax bool, fitness fitnessLookup) int {
	mid := lo + (hi-lo)/2
	last := hi - 1
	medianOfThree(handles, lo, mid, last, sortMax, fitness)
	pivot := handles[mid]
	// Move pivot out of the way to the second-to-last position.
	handles[mid], handles[last-1] = handles[last-1], handles[mid]

	i := lo
	for j := lo; j < last-1; j++ {
		if less(handles[j], pivot, sortMax, fitness) {
			handles[i], handles[j] = handles[j], handles[i]
			i++
		}
	}
	handles[i], handles[last-1] = handles[last-1], handles[i]
	return i
}

// medianOfThree orders handles[a], handles[b], handles[c] so that the median
// value ends up at index b, used as the pivot candidate.
func medianOfThree(handles []int, a, b, c int, sortMax bool, fitness fitnessLookup) {
	if less(handles[b], handles[a], sortMax, fitness) {
		handles[a], handles[b] = handles[b], handles[a]
	}
	if less(handles[c], handles[a], sortMax, fitness) {
		handles[a], handles[c] = handles[c], handles[a]
	}
	if less(handles[c], handles[b], sortMax, fitness) {
		handles[b], handles[c] = handles[c], handles[b]
	}
}
