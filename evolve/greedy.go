package evolve

import "context"

// runGreedy implements the alternate top-level loop of base spec §4.5: each
// worker repeatedly alternates between a seed-search phase (create
// GreedyIndividuals fresh candidates, keep the worker's local best) and an
// exploit phase (mutate/recombine a private sub-population of size
// GreedySize seeded from the global best). The global best is updated after
// each of the two phases from the best of all workers' local bests. Orthogonal to
// KeepLastGeneration: greedy mode never consults the store's keep/discard
// machinery, since each worker owns its sub-population outright.
//
// The global best lives in its own payload slot (bestPayload below),
// allocated once and updated only via CloneIndividual, rather than aliasing
// whichever worker produced it: a worker's own gw.best/gw.pop entries are
// freed and replaced every generation (see greedySeedSearch/greedyExploit),
// so aliasing the returned best directly into one of those slices would
// leave it pointing at freed memory the moment that worker's next round
// starts.
func (e *Engine) runGreedy(ctx context.Context) (Individual, error) {
	workers := make([]greedyWorker, e.cfg.NumThreads)
	for i := range workers {
		workers[i].pop = make([]Individual, 0, e.cfg.GreedySize)
	}

	bestOpts := e.pool.workers[0].opts
	bestPayload := e.callbacks.InitIndividual(bestOpts)
	var bestFitness int64
	haveBest := false

	updateBest := func(candidate Individual) {
		e.callbacks.CloneIndividual(bestPayload, candidate.Payload, bestOpts)
		bestFitness = candidate.Fitness
		haveBest = true
	}

	for {
		select {
		case <-ctx.Done():
			return Individual{Payload: bestPayload, Fitness: bestFitness}, ctx.Err()
		default:
		}

		e.greedySeedSearch(workers)
		if seeded, ok := bestOfWorkers(workers, e.cfg.SortMax); ok && (!haveBest || betterThan(seeded.Fitness, bestFitness, e.cfg.SortMax)) {
			updateBest(seeded)
		}

		e.greedyExploit(workers, Individual{Payload: bestPayload, Fitness: bestFitness}, haveBest)
		if exploited, ok := bestOfWorkers(workers, e.cfg.SortMax); ok && (!haveBest || betterThan(exploited.Fitness, bestFitness, e.cfg.SortMax)) {
			updateBest(exploited)
		}

		e.generation++
		e.info.GenerationsProgressed++
		e.bestFitness = bestFitness
		e.bestKnown = haveBest

		e.verbosity.logOneline("greedy generation %d: best=%d", e.generation, bestFitness)
		e.verbosity.logHigh("%s", e.String())

		if e.cfg.GenerationLimit > 0 && e.generation >= e.cfg.GenerationLimit {
			return Individual{Payload: bestPayload, Fitness: bestFitness}, nil
		}
		if e.cfg.UseAbortRequirement && e.continueEv != nil {
			view := &EngineView{Info: e.info, Generation: e.generation, BestFitness: bestFitness, engine: e}
			if !e.continueEv(view) {
				return Individual{Payload: bestPayload, Fitness: bestFitness}, nil
			}
		}
	}
}

// greedyWorker is one worker's private sub-population in greedy mode; it
// never touches the shared store.
type greedyWorker struct {
	pop  []Individual
	best Individual
	have bool
}

// greedySeedSearch has every worker create GreedyIndividuals fresh candidates
// via InitIndividual, score each, and keep the local winner. Candidates are
// transient (freed as soon as a better one supersedes them); the winner is
// cloned into the worker's dedicated gw.best slot and then freed itself,
// preserving the same "gw.best is never aliased" invariant greedyExploit
// relies on.
func (e *Engine) greedySeedSearch(workers []greedyWorker) {
	e.pool.dispatch(func(w *workerArgs) {
		gw := &workers[w.index]
		var winner Individual
		haveWinner := false
		for k := 0; k < e.cfg.GreedyIndividuals; k++ {
			payload := e.callbacks.InitIndividual(w.opts)
			fitness := e.callbacks.Fitness(payload, w.opts)
			if !haveWinner || betterThan(fitness, winner.Fitness, e.cfg.SortMax) {
				if haveWinner {
					e.callbacks.FreeIndividual(winner.Payload, w.opts)
				}
				winner = Individual{Payload: payload, Fitness: fitness}
				haveWinner = true
			} else {
				e.callbacks.FreeIndividual(payload, w.opts)
			}
		}
		if haveWinner {
			if !gw.have {
				gw.best.Payload = e.callbacks.InitIndividual(w.opts)
			}
			e.callbacks.CloneIndividual(gw.best.Payload, winner.Payload, w.opts)
			gw.best.Fitness = winner.Fitness
			gw.have = true
			e.callbacks.FreeIndividual(winner.Payload, w.opts)
		}
	})
}

// greedyExploit has every worker build a private, transient sub-population
// of size GreedySize from the global best, run one round of mutate/recombine
// across it, then clone whichever individual comes out best into the
// worker's own standalone gw.best slot before freeing every transient
// candidate. Slot 0 is always a verbatim clone of the global best (so the
// global best can never regress within a generation); the remaining slots
// are produced by recombinating the global best with a fresh individual
// (when UseRecombination) and/or mutating the result (when UseMutation),
// mirroring the original greedy description: "mutates and/or recombinates
// the best with a new [individual]".
//
// gw.best is never aliased into gw.pop: it is a dedicated payload, allocated
// once and thereafter only ever written to via CloneIndividual, exactly
// like runGreedy's own bestPayload. That keeps every gw.pop entry safe to
// free unconditionally at the end of each round, whether or not it won.
func (e *Engine) greedyExploit(workers []greedyWorker, globalBest Individual, haveGlobalBest bool) {
	if !haveGlobalBest {
		return
	}
	e.pool.dispatch(func(w *workerArgs) {
		gw := &workers[w.index]
		if cap(gw.pop) < e.cfg.GreedySize {
			gw.pop = make([]Individual, 0, e.cfg.GreedySize)
		}
		gw.pop = gw.pop[:0]
		for k := 0; k < e.cfg.GreedySize; k++ {
			payload := e.callbacks.InitIndividual(w.opts)
			switch {
			case k == 0:
				e.callbacks.CloneIndividual(payload, globalBest.Payload, w.opts)
			case e.cfg.UseRecombination:
				mate := e.callbacks.InitIndividual(w.opts)
				e.callbacks.Recombinate(globalBest.Payload, mate, payload, w.opts)
				e.callbacks.FreeIndividual(mate, w.opts)
				if e.cfg.UseMutation && (e.cfg.AlwaysMutate || w.rng.Uint64() <= e.mutationThreshold) {
					e.callbacks.Mutate(payload, w.opts)
				}
			case e.cfg.UseMutation:
				e.callbacks.CloneIndividual(payload, globalBest.Payload, w.opts)
				if e.cfg.AlwaysMutate || w.rng.Uint64() <= e.mutationThreshold {
					e.callbacks.Mutate(payload, w.opts)
				}
			default:
				e.callbacks.CloneIndividual(payload, globalBest.Payload, w.opts)
			}
			fitness := e.callbacks.Fitness(payload, w.opts)
			gw.pop = append(gw.pop, Individual{Payload: payload, Fitness: fitness})
		}

		var winner Individual
		haveWinner := false
		for _, ind := range gw.pop {
			if !haveWinner || betterThan(ind.Fitness, winner.Fitness, e.cfg.SortMax) {
				winner, haveWinner = ind, true
			}
		}
		if haveWinner {
			if !gw.have {
				gw.best.Payload = e.callbacks.InitIndividual(w.opts)
			}
			e.callbacks.CloneIndividual(gw.best.Payload, winner.Payload, w.opts)
			gw.best.Fitness = winner.Fitness
			gw.have = true
		}

		for _, ind := range gw.pop {
			e.callbacks.FreeIndividual(ind.Payload, w.opts)
		}
	})
}

// bestOfWorkers returns the best individual across every worker that has one.
func bestOfWorkers(workers []greedyWorker, sortMax bool) (Individual, bool) {
	var best Individual
	have := false
	for i := range workers {
		w := &workers[i]
		if !w.have {
			continue
		}
		if !have || betterThan(w.best.Fitness, best.Fitness, sortMax) {
			best = w.best
			have = true
		}
	}
	return best, have
}
