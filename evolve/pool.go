package evolve

import "sync"

// workerTask is the unit of work a worker performs on a single dispatch; the
// engine sets a different one before each phase (score/spawn/greedy seed
// search/greedy exploit) and wakes every worker once.
type workerTask func(w *workerArgs)

// workerArgs is a single worker's private state. Base spec §4.3/§9: "Each
// worker has a dedicated argument slot ... allocated on its own cache line to
// avoid false sharing." The padding field below reserves space so that two
// workers' hot fields (start/end/improvements) don't share a cache line; Go
// gives no portable alignment-to-cache-line directive short of padding
// bytes, so this is the idiomatic approximation of the teacher's comment in
// neat/genetics population_epoch.go about per-goroutine argument structs.
type workerArgs struct {
	index       int
	start, end  int
	improvements int
	rng         *PRNG
	opts        interface{}
	task        workerTask

	// _pad makes each workerArgs (allocated individually by newPool) span
	// more than a cache line, keeping different workers' hot fields apart; false sharing on `improvements` is
	// exactly the contention pattern base spec §9 calls out.
	_pad [64]byte
}

// pool is a fixed set of long-lived worker goroutines, reused across
// generations rather than spawned per generation (base spec §1, a deliberate
// performance choice). Each worker suspends on its own wake channel between
// dispatches and signals completion through a shared WaitGroup.
type pool struct {
	workers []*workerArgs
	wake    []chan struct{}
	wg      sync.WaitGroup
	done    chan struct{}
}

// newPool starts numThreads persistent goroutines. Each worker blocks on its
// wake channel until dispatch, runs the currently assigned task exactly
// once, then blocks again. The pool is torn down by closing done.
func newPool(numThreads int, rngs *prngPool, opts []interface{}) *pool {
	p := &pool{
		workers: make([]*workerArgs, numThreads),
		wake:    make([]chan struct{}, numThreads),
		done:    make(chan struct{}),
	}
	for i := 0; i < numThreads; i++ {
		var o interface{}
		if len(opts) > 0 {
			o = opts[i%len(opts)]
		}
		w := &workerArgs{index: i, rng: rngs.forWorker(i), opts: o}
		p.workers[i] = w
		p.wake[i] = make(chan struct{})
		go p.runWorker(w, p.wake[i])
	}
	return p
}

func (p *pool) runWorker(w *workerArgs, wake <-chan struct{}) {
	for {
		select {
		case <-p.done:
			return
		case <-wake:
			w.task(w)
			p.wg.Done()
		}
	}
}

// dispatch assigns task to every worker and blocks until all have completed
// one invocation of it. This is the engine's only per-generation
// synchronization point beyond the main-thread sort (base spec §5).
func (p *pool) dispatch(task workerTask) {
	p.wg.Add(len(p.workers))
	for i, w := range p.workers {
		w.task = task
		p.wake[i] <- struct{}{}
	}
	p.wg.Wait()
}

// close stops every worker goroutine. The pool must not be used afterward.
func (p *pool) close() {
	close(p.done)
}
