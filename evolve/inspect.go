package evolve

import (
	"fmt"
	"io"
	"unsafe"
)

// Inspect writes a snapshot of the engine's tuning knobs and current
// counters to w, in the style of the original C library's ev_inspect. It is
// intended for the high/ultra verbosity levels; callers at lower verbosity
// should not call it on a hot path.
func (e *Engine) Inspect(w io.Writer) error {
	survivors := e.cfg.survivors()
	_, err := fmt.Fprintf(w,
		"population_size=%d survivors=%d deaths=%d num_threads=%d generation=%d improvements=%d keep_last_generation=%t use_greedy=%t\n",
		e.cfg.PopulationSize, survivors, e.cfg.PopulationSize-survivors, e.cfg.NumThreads,
		e.generation, e.info.Improvements, e.cfg.KeepLastGeneration, e.cfg.UseGreedy)
	return err
}

// String renders a shorter one-line summary than Inspect (generation, best
// fitness, survivors out of the population, improvements), for use in log
// lines.
func (e *Engine) String() string {
	survivors := e.cfg.survivors()
	return fmt.Sprintf("generation=%d best=%d survivors=%d/%d improvements=%d",
		e.generation, e.bestFitness, survivors, e.cfg.PopulationSize, e.info.Improvements)
}

// EstimateCapacity returns the approximate number of bytes the engine's
// backing store will occupy for cfg, given the caller's payload size. It
// mirrors the original library's ev_size: population_size individuals in
// discard mode, double that in keep mode, plus one handle per logical
// position.
func EstimateCapacity(cfg Config, sizeofIndividual uintptr) uintptr {
	slots := uintptr(cfg.PopulationSize)
	if cfg.KeepLastGeneration {
		slots *= 2
	}
	handles := uintptr(cfg.PopulationSize) * unsafe.Sizeof(int(0))
	return slots*sizeofIndividual + handles
}
