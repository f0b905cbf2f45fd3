package evolve

import (
	"context"
	"math"
	"os"
	"time"
)

// Engine drives one evolutionary run: a population of Individuals managed by
// a store, scored and spawned by a persistent worker pool, ranked by the
// partial sorter, and terminated by a generation budget or ContinueFunc.
// Construct one with NewEngine and drive it with Run, or use Evolve for the
// single-call convenience path described in base spec §4.6.
type Engine struct {
	cfg       *Config
	callbacks Callbacks
	continueEv ContinueFunc

	store *store
	pool  *pool
	rngs  *prngPool

	verbosity Verbosity

	mutationThreshold uint64

	info       EvolutionInfo
	generation int
	bestFitness int64
	bestKnown  bool
}

// NewEngine validates cfg, allocates the individual store, PRNG pool, and
// worker pool, and initializes every payload slot via callbacks.InitIndividual
// -- the full construction sequence of base spec §4.6. opts is the caller's
// per-thread options slice; opts[k % len(opts)] is handed to worker k and
// never touched by any other worker.
func NewEngine(cfg *Config, callbacks Callbacks, opts []interface{}, continueEv ContinueFunc) (*Engine, error) {
	c := *cfg
	if err := c.Validate(); err != nil {
		return nil, wrap(err, "invalid evolve Config")
	}
	if callbacks == nil {
		return nil, errorf("callbacks must not be nil")
	}

	seed := c.RandSeed
	if seed == 0 {
		seed = defaultSeed()
	}

	e := &Engine{
		cfg:        &c,
		callbacks:  callbacks,
		continueEv: continueEv,
		store:      newStore(&c),
		rngs:       newPRNGPool(seed, c.NumThreads),
		verbosity:  c.verbosity(),
		mutationThreshold: mutationThreshold(c.MutationProbability),
	}
	e.pool = newPool(c.NumThreads, e.rngs, opts)

	e.initPopulation()

	return e, nil
}

// defaultSeed is overridable in tests; production code derives it from the
// wall clock so unseeded runs are still pseudo-random across processes.
var defaultSeed = func() int64 {
	return nanoTime()
}

// mutationThreshold precomputes base spec §4.4.1's
// "i_mut_probability = floor(P_mut * RAND_MAX)" against the PRNG's full
// uint64 range, so the hot path does an integer compare instead of a
// floating-point one. float64(math.MaxUint64) rounds up to exactly 2**64,
// so naively multiplying p by it and converting back to uint64 overflows at
// p == 1.0 (the float->uint64 conversion of a value >= 2**64 is
// implementation-defined); p == 1.0 is special-cased to math.MaxUint64 so
// "always mutate" compares true against every possible Uint64() draw (see
// the <= comparisons at the call sites).
func mutationThreshold(p float64) uint64 {
	if p >= 1.0 {
		return math.MaxUint64
	}
	if p <= 0.0 {
		return 0
	}
	return uint64(p * float64(math.MaxUint64))
}

// initPopulation allocates every payload slot (P in discard mode, 2P in keep
// mode) in parallel across the worker pool, per base spec §4.6 "Allocates:
// the individual store...".
func (e *Engine) initPopulation() {
	total := e.store.totalSlots()
	e.pool.dispatch(func(w *workerArgs) {
		start, end := indexRange(0, total, w.index, e.cfg.NumThreads)
		for i := start; i < end; i++ {
			e.store.slots[i] = Individual{Payload: e.callbacks.InitIndividual(w.opts)}
		}
	})
}

// Close tears down the worker pool and frees every remaining individual
// except the one the caller intends to keep (pass nil to free everything).
// The base spec's "the single best individual survives teardown; everything
// else is freed" (§4.6) contract.
func (e *Engine) Close(keep *Individual) {
	e.pool.dispatch(func(w *workerArgs) {
		start, end := indexRange(0, len(e.store.slots), w.index, e.cfg.NumThreads)
		for i := start; i < end; i++ {
			ind := &e.store.slots[i]
			if keep != nil && ind == keep {
				continue
			}
			if keep != nil && ind.Payload == keep.Payload {
				continue
			}
			e.callbacks.FreeIndividual(ind.Payload, w.opts)
		}
	})
	e.pool.close()
}

// Run executes generations until the configured budget is exhausted or
// ContinueFunc returns false, implementing the state machine of base spec
// §4.4: SCORE -> SORT -> TERMINATE? -> SPAWN -> COMMIT -> repeat. It returns
// the best individual found (a copy safe to use after Close).
func (e *Engine) Run(ctx context.Context) (Individual, error) {
	ctx = NewContext(ctx, e.cfg)

	if e.cfg.UseGreedy {
		return e.runGreedy(ctx)
	}

	survivors := e.cfg.survivors()

	for {
		select {
		case <-ctx.Done():
			return e.currentBest(survivors), ctx.Err()
		default:
		}

		e.score()
		e.sort(survivors)

		if e.shouldTerminate() {
			return e.currentBest(survivors), nil
		}

		e.spawn(survivors)
		e.commit()
	}
}

// score recomputes fitness for every individual currently in the
// population, in parallel (base spec §4.4 step 1).
func (e *Engine) score() {
	p := e.cfg.PopulationSize
	e.pool.dispatch(func(w *workerArgs) {
		start, end := scoreRange(p, w.index, e.cfg.NumThreads)
		for i := start; i < end; i++ {
			ind := e.store.at(i)
			ind.Fitness = e.callbacks.Fitness(ind.Payload, w.opts)
		}
		e.verbosity.logUltra("worker %d scored [%d, %d)", w.index, start, end)
	})
}

// sort ranks the handle array so [0, survivors) holds the top-ranked
// individuals (base spec §4.4 step 2 / §4.1).
func (e *Engine) sort(survivors int) {
	start := time.Now()
	handles := e.store.allHandles()
	partialSort(handles, 0, len(handles), survivors, e.cfg.QuicksortCutoff, e.cfg.SortMax, e.store.fitnessOfSlot)
	e.verbosity.logHigh("sort: survivors=%d deaths=%d took=%s",
		survivors, len(handles)-survivors, time.Since(start))
}

// shouldTerminate implements base spec §4.4 step 3.
func (e *Engine) shouldTerminate() bool {
	best := e.store.at(0).Fitness
	e.bestFitness = best
	e.bestKnown = true

	e.verbosity.logOneline("generation %d: best=%d improvements=%d",
		e.generation, best, e.info.Improvements)
	e.verbosity.logHigh("%s", e.String())
	if e.verbosity >= VerboseUltra {
		if err := e.Inspect(os.Stdout); err != nil {
			e.verbosity.logHigh("inspect: %s", err)
		}
	}

	if e.cfg.GenerationLimit > 0 && e.generation >= e.cfg.GenerationLimit {
		return true
	}
	if e.cfg.UseAbortRequirement && e.continueEv != nil {
		view := &EngineView{Info: e.info, Generation: e.generation, BestFitness: best, engine: e}
		if !e.continueEv(view) {
			return true
		}
	}
	return false
}

// spawn fills the death region [survivors, P) by producing offspring in
// parallel, per base spec §4.4 step 4 / §4.4.1.
func (e *Engine) spawn(survivors int) {
	p := e.cfg.PopulationSize
	e.pool.dispatch(func(w *workerArgs) {
		w.improvements = 0
		start, end := indexRange(survivors, p, w.index, e.cfg.NumThreads)
		e.verbosity.logUltra("worker %d spawning [%d, %d)", w.index, start, end)
		for i := start; i < end; i++ {
			e.spawnOne(w, i, survivors)
		}
	})
}

// spawnOne produces the offspring for death-region logical position i,
// dispatching on the feature-flag table in base spec §4.4.1, then performs
// the improvement comparison of §4.4.2.
func (e *Engine) spawnOne(w *workerArgs, i, survivors int) {
	destSlot, predecessor := e.store.spawnDestination(i)
	predecessorFitness := predecessor.Fitness

	p1Pos := w.rng.Intn(survivors)
	p2Pos := w.rng.Intn(survivors)
	p1 := e.store.at(p1Pos).Payload
	p2 := e.store.at(p2Pos).Payload

	dst := &e.store.slots[destSlot]

	switch {
	case e.cfg.UseRecombination && e.cfg.UseMutation && e.cfg.AlwaysMutate:
		e.callbacks.Recombinate(p1, p2, dst.Payload, w.opts)
		e.callbacks.Mutate(dst.Payload, w.opts)
	case e.cfg.UseRecombination && e.cfg.UseMutation:
		e.callbacks.Recombinate(p1, p2, dst.Payload, w.opts)
		if w.rng.Uint64() <= e.mutationThreshold {
			e.callbacks.Mutate(dst.Payload, w.opts)
		}
	case e.cfg.UseRecombination:
		e.callbacks.Recombinate(p1, p2, dst.Payload, w.opts)
	case e.cfg.UseMutation && e.cfg.AlwaysMutate:
		e.callbacks.CloneIndividual(dst.Payload, p1, w.opts)
		e.callbacks.Mutate(dst.Payload, w.opts)
	case e.cfg.UseMutation:
		e.callbacks.CloneIndividual(dst.Payload, p1, w.opts)
		if w.rng.Uint64() <= e.mutationThreshold {
			e.callbacks.Mutate(dst.Payload, w.opts)
		}
	}

	dst.Fitness = e.callbacks.Fitness(dst.Payload, w.opts)

	if betterThan(dst.Fitness, predecessorFitness, e.cfg.SortMax) {
		w.improvements++
	}

	e.store.commitSpawn(i, destSlot)
}

// betterThan reports whether a is strictly better than b under the
// configured ordering (base spec §4.4.2).
func betterThan(a, b int64, sortMax bool) bool {
	if sortMax {
		return a > b
	}
	return a < b
}

// commit sums worker improvement counters, advances the generation counter,
// and (in keep mode) the mirrored half-swap happens implicitly through
// store.commitSpawn during SPAWN -- see store.go's doc comment. Base spec
// §4.4 step 5.
func (e *Engine) commit() {
	total := 0
	for _, w := range e.pool.workers {
		total += w.improvements
	}
	e.info.Improvements = total
	e.info.GenerationsProgressed++
	e.generation++
}

// currentBest returns a copy of the best-ranked individual. survivors is
// guaranteed >= 1 by Config.Validate, which rejects any PopulationSize/
// DeathPercentage combination that would leave zero survivors.
func (e *Engine) currentBest(survivors int) Individual {
	return *e.store.at(0)
}

// Info returns the current EvolutionInfo snapshot.
func (e *Engine) Info() EvolutionInfo {
	return e.info
}

// Generation returns the number of generations completed so far.
func (e *Engine) Generation() int {
	return e.generation
}

// Evolve is the single-call convenience entry point of base spec §4.6:
// construct -> run -> extract-best -> teardown, in one call. It is
// equivalent to NewEngine followed by Run and Close, for callers who don't
// need to inspect the Engine between generations.
func Evolve(ctx context.Context, cfg *Config, callbacks Callbacks, opts []interface{}, continueEv ContinueFunc) (Individual, error) {
	e, err := NewEngine(cfg, callbacks, opts, continueEv)
	if err != nil {
		return Individual{}, err
	}

	best, runErr := e.Run(ctx)
	e.Close(&best)
	return best, runErr
}
