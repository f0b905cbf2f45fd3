package evolve

// PRNG is a small, fast, non-cryptographic xorshift128+ generator. Each
// worker in the pool owns exactly one instance; there is no locking and no
// cross-worker sharing, satisfying the base spec's requirement (§9) for "a
// small fast PRNG (128-bit state, xorshift-class)". The shift constants
// (23, 17, 26) are the canonical xorshift128+ parameters; an equivalent
// generator would serve just as well, per the same spec note.
type PRNG struct {
	s0, s1 uint64
}

// NewPRNG seeds a PRNG from a single 64-bit seed, expanding it into the two
// words of 128-bit state with SplitMix64 so that nearby seeds (e.g.
// consecutive worker indices) still diverge quickly.
func NewPRNG(seed uint64) *PRNG {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	sm := splitMix64{state: seed}
	return &PRNG{s0: sm.next(), s1: sm.next()}
}

// splitMix64 is used only to spread a single seed into two well-distributed
// 64-bit words for PRNG initialization; it is not used as the run-time
// generator.
type splitMix64 struct{ state uint64 }

func (s *splitMix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Uint64 returns the next pseudo-random 64-bit value and advances the state.
func (p *PRNG) Uint64() uint64 {
	x := p.s0
	y := p.s1
	p.s0 = y
	x ^= x << 23
	x ^= x >> 17
	x ^= y ^ (y >> 26)
	p.s1 = x
	return x + y
}

// Intn returns a pseudo-random integer in [0, n). Panics if n <= 0.
func (p *PRNG) Intn(n int) int {
	if n <= 0 {
		panic("evolve: Intn called with n <= 0")
	}
	return int(p.Uint64() % uint64(n))
}

// Float64 returns a pseudo-random value in [0, 1).
func (p *PRNG) Float64() float64 {
	// Use the top 53 bits for a uniformly distributed double, mirroring the
	// standard library's math/rand approach.
	return float64(p.Uint64()>>11) / (1 << 53)
}

// prngPool is the set of per-worker PRNGs, indexed by worker id. Workers index
// exclusively into their own slot; the pool performs no synchronization.
type prngPool struct {
	rngs []*PRNG
}

// newPRNGPool creates one PRNG per worker, each seeded deterministically from
// masterSeed so that fixed seeds and a fixed thread count reproduce identical
// results across runs (base spec §8, Determinism law).
func newPRNGPool(masterSeed int64, numThreads int) *prngPool {
	rngs := make([]*PRNG, numThreads)
	sm := splitMix64{state: uint64(masterSeed)}
	for i := range rngs {
		rngs[i] = NewPRNG(sm.next())
	}
	return &prngPool{rngs: rngs}
}

func (p *prngPool) forWorker(i int) *PRNG {
	return p.rngs[i]
}
