package evolve

// store owns the backing payload slots for one evolutionary run and the
// handle array used to address them. Base spec §3: "Addressing is always by
// a parallel array of handles into the backing store, enabling O(1)
// reordering without moving payloads."
//
// In discard mode slots has exactly PopulationSize entries and offspring
// overwrite a dying individual's slot in place. In keep mode slots has
// 2*PopulationSize entries, arranged as PopulationSize mirrored pairs
// (slot i and slot i+PopulationSize are partners); a survivor's slot is
// never touched, and an offspring replacing the individual at logical
// position i is always written into that position's *other* mirror slot,
// so the predecessor (read for the improvement comparison, base spec
// §4.4.2) is simply the slot the handle pointed to before the write. This
// realizes the spec's "two physical halves" double buffering without a
// global swap: which physical half backs a given logical position is a
// per-position fact that flips only when that position's individual dies,
// exactly the "survivors stay put" behavior §4.4.3 calls for.
type store struct {
	cfg *Config

	// slots holds every live payload, indexed by slot index.
	slots []Individual

	// handles[i] is the slot index currently addressed at logical
	// population position i. It is always a permutation-compatible mapping
	// (no two logical positions share a slot) across len(handles) == P.
	handles []int

	keepMode bool
}

// newStore allocates the backing slots and handle array for cfg but does not
// populate any payloads; callers fill them via InitIndividual.
func newStore(cfg *Config) *store {
	p := cfg.PopulationSize
	s := &store{cfg: cfg, keepMode: cfg.KeepLastGeneration}
	if s.keepMode {
		s.slots = make([]Individual, 2*p)
	} else {
		s.slots = make([]Individual, p)
	}
	s.handles = make([]int, p)
	for i := 0; i < p; i++ {
		s.handles[i] = i
	}
	return s
}

// totalSlots is the number of payload slots that must be initialized at
// construction (P in discard mode, 2P in keep mode).
func (s *store) totalSlots() int {
	return len(s.slots)
}

// at returns the individual currently addressed at logical position i.
func (s *store) at(i int) *Individual {
	return &s.slots[s.handles[i]]
}

// fitnessOfSlot implements fitnessLookup: given a slot index (a value stored
// in s.handles), it returns that slot's cached fitness. The sorter permutes
// s.handles directly and compares via this function.
func (s *store) fitnessOfSlot(slotIndex int) int64 {
	return s.slots[slotIndex].Fitness
}

// mirror returns the partner slot for slot h in keep mode: slot h and slot
// mirror(h) are never both addressed by a handle at the same time.
func (s *store) mirror(h int) int {
	p := s.cfg.PopulationSize
	if h < p {
		return h + p
	}
	return h - p
}

// spawnDestination returns the slot offspring replacing the individual at
// logical position i should be written into, and the predecessor individual
// to compare the offspring's fitness against (base spec §4.4.2/§4.4.3).
//
// In discard mode the destination is the same slot, overwritten in place;
// the caller must read the predecessor's fitness before writing.
// In keep mode the destination is the mirror slot; the predecessor is simply
// the individual currently at position i.
func (s *store) spawnDestination(i int) (destSlot int, predecessor *Individual) {
	current := s.handles[i]
	if !s.keepMode {
		return current, &s.slots[current]
	}
	return s.mirror(current), &s.slots[current]
}

// commitSpawn finalizes the offspring written into destSlot as the new
// occupant of logical position i. Discard mode is a no-op since destSlot ==
// the existing handle already.
func (s *store) commitSpawn(i, destSlot int) {
	s.handles[i] = destSlot
}

// indexRange partitions the death region [survivors, P) evenly across
// numThreads workers, with the remainder going to the final worker, per base
// spec §4.2.
func indexRange(survivors, populationSize, thread, numThreads int) (start, end int) {
	total := populationSize - survivors
	base := total / numThreads
	start = survivors + thread*base
	if thread == numThreads-1 {
		end = populationSize
	} else {
		end = start + base
	}
	return start, end
}

// scoreRange partitions the full population [0, P) evenly across
// numThreads workers for the SCORE phase, with the remainder going to the
// final worker.
func scoreRange(populationSize, thread, numThreads int) (start, end int) {
	return indexRange(0, populationSize, thread, numThreads)
}

// allHandles returns the live handle slice, exposed for the partial sorter.
func (s *store) allHandles() []int {
	return s.handles
}
